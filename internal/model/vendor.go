package model

import "time"

type Vendor struct {
	ID             int64     `json:"id"`
	ProjectID      int64     `json:"project_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	ContactName    string    `json:"contact_name,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	ContractAmount *float64  `json:"contract_amount,omitempty"`
	Rating         int       `json:"rating"` // 1-5, 0 when unrated
	BankName       string    `json:"bank_name,omitempty"`
	BankBranch     string    `json:"bank_branch,omitempty"`
	BankAccount    string    `json:"bank_account,omitempty"`
	LogoFileID     string    `json:"logo_file_id,omitempty"`
	ContractFileID string    `json:"contract_file_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (v *Vendor) Validate() error {
	if v.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if v.Rating < 0 || v.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be in [0,5]"}
	}
	return nil
}
