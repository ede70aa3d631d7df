package handlers

import (
	"time"

	"github.com/gartstein/biztime/internal/biztime/models"
)

type companyResponse struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type companyDetailResponse struct {
	companyResponse
	Industry   *string  `json:"industry"`
	Industries []string `json:"industries"`
	Invoices   []int64  `json:"invoices"`
}

type invoiceSummaryResponse struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

type invoiceResponse struct {
	ID       int64      `json:"id"`
	CompCode string     `json:"comp_code"`
	Amt      float64    `json:"amt"`
	Paid     bool       `json:"paid"`
	AddDate  time.Time  `json:"add_date"`
	PaidDate *time.Time `json:"paid_date"`
}

// invoiceDetailResponse nests the company in place of comp_code.
type invoiceDetailResponse struct {
	ID       int64           `json:"id"`
	Amt      float64         `json:"amt"`
	Paid     bool            `json:"paid"`
	AddDate  time.Time       `json:"add_date"`
	PaidDate *time.Time      `json:"paid_date"`
	Company  companyResponse `json:"company"`
}

type industryResponse struct {
	Code     string `json:"code"`
	Industry string `json:"industry"`
}

type associationResponse struct {
	CompCode string `json:"comp_code"`
	IndCode  string `json:"ind_code"`
}

func companyToResponse(c *models.Company) companyResponse {
	return companyResponse{Code: c.Code, Name: c.Name, Description: c.Description}
}

func companiesToResponse(companies []models.Company) []companyResponse {
	out := make([]companyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, companyToResponse(&companies[i]))
	}
	return out
}

func companyDetailToResponse(d *models.CompanyDetail) companyDetailResponse {
	resp := companyDetailResponse{
		companyResponse: companyToResponse(&d.Company),
		Industry:        d.Industry,
		Industries:      d.Industries,
		Invoices:        d.Invoices,
	}
	if resp.Industries == nil {
		resp.Industries = []string{}
	}
	if resp.Invoices == nil {
		resp.Invoices = []int64{}
	}
	return resp
}

func invoiceSummariesToResponse(invoices []models.InvoiceSummary) []invoiceSummaryResponse {
	out := make([]invoiceSummaryResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, invoiceSummaryResponse{ID: inv.ID, CompCode: inv.CompCode})
	}
	return out
}

func invoiceToResponse(inv *models.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:       inv.ID,
		CompCode: inv.CompCode,
		Amt:      inv.Amt,
		Paid:     inv.Paid,
		AddDate:  inv.AddDate,
		PaidDate: inv.PaidDate,
	}
}

func invoiceDetailToResponse(d *models.InvoiceDetail) invoiceDetailResponse {
	return invoiceDetailResponse{
		ID:       d.ID,
		Amt:      d.Amt,
		Paid:     d.Paid,
		AddDate:  d.AddDate,
		PaidDate: d.PaidDate,
		Company:  companyToResponse(&d.Company),
	}
}

func industryToResponse(ind *models.Industry) industryResponse {
	return industryResponse{Code: ind.Code, Industry: ind.Industry}
}

func associationToResponse(a *models.Association) associationResponse {
	return associationResponse{CompCode: a.CompCode, IndCode: a.IndCode}
}

// industriesToResponse guarantees a JSON list, never null, for every industry.
func industriesToResponse(byCode map[string][]string) map[string][]string {
	out := make(map[string][]string, len(byCode))
	for code, companies := range byCode {
		if companies == nil {
			companies = []string{}
		}
		out[code] = companies
	}
	return out
}
