package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/blob"
)

const maxUploadBytes = 20 << 20 // 20 MiB

type FileHandler struct {
	store  *blob.PostgresStore
	logger *zap.Logger
}

func NewFileHandler(store *blob.PostgresStore, logger *zap.Logger) *FileHandler {
	return &FileHandler{store: store, logger: logger}
}

func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(c, err)
		return
	}

	shareWith := c.PostFormArray("share_with")
	ref, err := h.store.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, shareWith)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"file": ref})
}

// Serve streams the file bytes. A missing or unreadable file renders 404
// rather than an error page, matching the placeholder behavior viewers
// expect.
func (h *FileHandler) Serve(c *gin.Context) {
	id := c.Param("id")
	data, err := h.store.FetchAsBlob(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	name, contentType, err := h.store.Meta(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if c.Query("download") != "" {
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	}
	c.Data(http.StatusOK, contentType, data)
}

func (h *FileHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
