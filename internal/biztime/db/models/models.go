// Package models holds the gorm row types backing the biztime tables.
package models

import "time"

// Company is a row of the companies table.
type Company struct {
	Code        string `gorm:"primaryKey"`
	Name        string `gorm:"not null;unique"`
	Description *string
}

func (Company) TableName() string { return "companies" }

// Invoice is a row of the invoices table.
type Invoice struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	CompCode string    `gorm:"not null;index"`
	Company  Company   `gorm:"foreignKey:CompCode;references:Code;constraint:OnDelete:CASCADE"`
	Amt      float64   `gorm:"not null;check:amt > 0"`
	Paid     bool      `gorm:"not null;default:false"`
	AddDate  time.Time `gorm:"not null"`
	PaidDate *time.Time
}

func (Invoice) TableName() string { return "invoices" }

// Industry is a row of the industries table.
type Industry struct {
	Code     string `gorm:"primaryKey"`
	Industry string `gorm:"not null;unique"`
}

func (Industry) TableName() string { return "industries" }

// CompanyIndustry is a row of the companies_industries join table.
type CompanyIndustry struct {
	CompCode string   `gorm:"primaryKey"`
	IndCode  string   `gorm:"primaryKey"`
	Company  Company  `gorm:"foreignKey:CompCode;references:Code;constraint:OnDelete:CASCADE"`
	Industry Industry `gorm:"foreignKey:IndCode;references:Code;constraint:OnDelete:CASCADE"`
}

func (CompanyIndustry) TableName() string { return "companies_industries" }

// All lists every row type in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{&Company{}, &Industry{}, &Invoice{}, &CompanyIndustry{}}
}
