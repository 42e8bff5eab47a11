package blob

import (
	"context"
)

// FileRef points at a stored file and the URLs a browser can use to reach it.
type FileRef struct {
	ID          string `json:"id"`
	ViewURL     string `json:"view_url"`
	DownloadURL string `json:"download_url"`
}

// Store holds uploaded files (vendor logos, contracts, invoices, receipts).
// FetchAsBlob returns (nil, nil) when the caller may not read the file, so
// viewers can render a placeholder instead of erroring.
type Store interface {
	Upload(ctx context.Context, name, contentType string, data []byte, shareWith []string) (*FileRef, error)
	Delete(ctx context.Context, id string) error
	FetchAsBlob(ctx context.Context, id string) ([]byte, error)
}
