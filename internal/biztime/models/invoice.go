package models

import "time"

// Invoice defines the domain model for an invoice.
type Invoice struct {
	ID       int64      `json:"id"`
	CompCode string     `json:"comp_code"`
	Amt      float64    `json:"amt"`
	Paid     bool       `json:"paid"`
	AddDate  time.Time  `json:"add_date"`
	PaidDate *time.Time `json:"paid_date"`
}

// InvoiceSummary is the shallow form used by listings.
type InvoiceSummary struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

// InvoiceDetail is an invoice together with its owning company.
type InvoiceDetail struct {
	Invoice
	Company Company `json:"company"`
}

// InvoiceUpdate carries a new amount and, optionally, a new paid state.
// A nil Paid keeps the stored value.
type InvoiceUpdate struct {
	ID   int64
	Amt  float64
	Paid *bool
}

// NextPaidDate derives the paid date that follows setting paid on an invoice
// whose current paid date is prev. The first transition to paid stamps now,
// unpaying clears it, and staying paid keeps prev.
func NextPaidDate(prev *time.Time, paid bool, now time.Time) *time.Time {
	switch {
	case !paid:
		return nil
	case prev == nil:
		return &now
	default:
		return prev
	}
}
