// Package models defines the domain models for companies, invoices,
// industries and the company-industry association.
package models

// Company defines the domain model for a company.
type Company struct {
	// Code is the unique identifier, derived from Name at creation.
	Code string `json:"code"`
	// Name is the company's display name.
	Name string `json:"name"`
	// Description is optional.
	Description *string `json:"description"`
}

// CompanyDetail is a company with its related industries and invoice ids.
type CompanyDetail struct {
	Company
	// Industry is the first associated industry label, nil when there is none.
	Industry *string `json:"industry"`
	// Industries holds every associated industry label.
	Industries []string `json:"industries"`
	// Invoices holds the ids of the company's invoices.
	Invoices []int64 `json:"invoices"`
}

// CompanyUpdate replaces the mutable fields of the company identified by Code.
type CompanyUpdate struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
