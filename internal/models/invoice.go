package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	InvoiceStatusSent  InvoiceStatus = "SENT"
	InvoiceStatusPaid  InvoiceStatus = "PAID"
)

// Invoice represents a client invoice. The engine reads invoices and their
// payments; the only field it writes is the status, promoted to PAID once
// payments plus validated reconciliations cover the total.
type Invoice struct {
	ID         uint            `json:"id" gorm:"primarykey"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
	CompanyID  uint            `json:"company_id" gorm:"not null;index"`
	Number     string          `json:"number" gorm:"type:varchar(64);not null;index"`
	ClientName string          `json:"client_name" gorm:"type:varchar(255);not null"`
	IssueDate  time.Time       `json:"issue_date" gorm:"not null"`
	Total      decimal.Decimal `json:"total" gorm:"type:decimal(15,2);not null"`
	Status     InvoiceStatus   `json:"status" gorm:"type:varchar(16);not null;default:'DRAFT'"`

	Company  Company   `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:InvoiceID"`
}

// TableName overrides the table name used by Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// PaidAmount sums the invoice's recorded payments
func (i *Invoice) PaidAmount() decimal.Decimal {
	total := decimal.Zero
	for _, p := range i.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Remainder returns the amount still due on the invoice
func (i *Invoice) Remainder() decimal.Decimal {
	return i.Total.Sub(i.PaidAmount())
}

// IsPaid checks if the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// Payment represents a payment recorded against an invoice
type Payment struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	CreatedAt time.Time       `json:"created_at"`
	InvoiceID uint            `json:"invoice_id" gorm:"not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null;check:amount > 0"`
	Date      time.Time       `json:"date" gorm:"not null"`
	Reference string          `json:"reference" gorm:"type:varchar(255)"`
}

// TableName overrides the table name used by Payment
func (Payment) TableName() string {
	return "payments"
}
