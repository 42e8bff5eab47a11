package model

import "time"

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentPlanned PaymentStatus = "planned"
)

type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheck        PaymentMethod = "CHECK"
	MethodCreditCard   PaymentMethod = "CREDIT_CARD"
	MethodCash         PaymentMethod = "CASH"
	MethodOther        PaymentMethod = "OTHER"
)

// Payment records money owed or paid to a vendor. Exactly one of Date and
// EstimatedDate is meaningful: Date when status is paid, EstimatedDate
// otherwise.
type Payment struct {
	ID              int64         `json:"id"`
	ProjectID       int64         `json:"project_id"`
	VendorID        int64         `json:"vendor_id"`
	Amount          float64       `json:"amount"`
	Method          PaymentMethod `json:"method"`
	Status          PaymentStatus `json:"status"`
	Date            *time.Time    `json:"date,omitempty"`
	EstimatedDate   *time.Time    `json:"estimated_date,omitempty"`
	InvoiceFileID   string        `json:"invoice_file_id,omitempty"`
	ReceiptFileID   string        `json:"receipt_file_id,omitempty"`
	Description     string        `json:"description,omitempty"`
	ProgressPercent *float64      `json:"progress_percentage,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ParsePaymentStatus decodes a stored status, accepting the legacy Hebrew
// labels still present in older documents.
func ParsePaymentStatus(v string) PaymentStatus {
	switch v {
	case string(PaymentPaid), "שולם":
		return PaymentPaid
	case string(PaymentPending), "ממתין":
		return PaymentPending
	case string(PaymentPlanned), "מתוכנן":
		return PaymentPlanned
	}
	return PaymentPlanned
}

// NormalizeDates enforces the date XOR estimated-date rule for the current
// status. Switching pending to paid moves the estimate into the paid date
// rather than leaving both populated.
func (p *Payment) NormalizeDates(now time.Time) {
	if p.Status == PaymentPaid {
		if p.Date == nil {
			if p.EstimatedDate != nil {
				p.Date = p.EstimatedDate
			} else {
				d := now
				p.Date = &d
			}
		}
		p.EstimatedDate = nil
		return
	}

	if p.EstimatedDate == nil && p.Date != nil {
		p.EstimatedDate = p.Date
	}
	p.Date = nil
}

func (p *Payment) Validate() error {
	if p.VendorID == 0 {
		return &ValidationError{Field: "vendor_id", Reason: "required"}
	}
	if p.Amount < 0 {
		return &ValidationError{Field: "amount", Reason: "must be >= 0"}
	}
	return nil
}
