package model

// OwnerContactRole classifies a project contact record. Distinct from the
// membership Role: contacts are phonebook entries, not accounts.
type OwnerContactRole string

const (
	ContactPrimaryOwner OwnerContactRole = "PRIMARY_OWNER"
	ContactCoOwner      OwnerContactRole = "CO_OWNER"
	ContactOther        OwnerContactRole = "OTHER_CONTACT"
)

type OwnerContact struct {
	ID        int64            `json:"id"`
	ProjectID int64            `json:"project_id"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone,omitempty"`
	Email     string           `json:"email,omitempty"`
	Role      OwnerContactRole `json:"role"`
	Notes     string           `json:"notes,omitempty"`
}

func (c *OwnerContact) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	return nil
}
