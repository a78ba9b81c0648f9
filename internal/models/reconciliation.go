package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationKind identifies the counterpart type of a reconciliation
type ReconciliationKind string

const (
	ReconciliationKindEntry   ReconciliationKind = "ENTRY"
	ReconciliationKindInvoice ReconciliationKind = "INVOICE"
)

// ReconciliationStatus represents the lifecycle state of a reconciliation
type ReconciliationStatus string

const (
	ReconciliationStatusPending   ReconciliationStatus = "PENDING"
	ReconciliationStatusValidated ReconciliationStatus = "VALIDATED"
	ReconciliationStatusRejected  ReconciliationStatus = "REJECTED"
)

// Reconciliation links a bank transaction to one accounting entry or one
// invoice (optionally a specific payment). ActiveKey backs the invariant that
// at most one PENDING/VALIDATED reconciliation exists per (transaction, kind):
// it is "<txid>:<kind>" while active and NULL once rejected, so the unique
// index turns concurrent double-creates into a duplicate-key error.
type Reconciliation struct {
	ID            uint                 `json:"id" gorm:"primarykey"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	CompanyID     uint                 `json:"company_id" gorm:"not null;index"`
	TransactionID uint                 `json:"transaction_id" gorm:"not null;index"`
	Kind          ReconciliationKind   `json:"kind" gorm:"type:varchar(16);not null"`
	EntryID       *uint                `json:"entry_id,omitempty" gorm:"index"`
	InvoiceID     *uint                `json:"invoice_id,omitempty" gorm:"index"`
	PaymentID     *uint                `json:"payment_id,omitempty"`
	Amount        decimal.Decimal      `json:"amount" gorm:"type:decimal(15,2);not null"`
	Score         *int                 `json:"score,omitempty"` // nil for manually created links
	Notes         string               `json:"notes" gorm:"type:text"`
	Status        ReconciliationStatus `json:"status" gorm:"type:varchar(16);not null;default:'PENDING'"`
	ActiveKey     *string              `json:"-" gorm:"type:varchar(32);uniqueIndex"`

	Transaction BankTransaction  `json:"transaction,omitempty" gorm:"foreignKey:TransactionID"`
	Entry       *AccountingEntry `json:"entry,omitempty" gorm:"foreignKey:EntryID"`
	Invoice     *Invoice         `json:"invoice,omitempty" gorm:"foreignKey:InvoiceID"`
}

// TableName overrides the table name used by Reconciliation
func (Reconciliation) TableName() string {
	return "reconciliations"
}

// ActiveKeyFor builds the uniqueness key guarding one active reconciliation
// per (transaction, counterpart kind)
func ActiveKeyFor(transactionID uint, kind ReconciliationKind) string {
	return fmt.Sprintf("%d:%s", transactionID, kind)
}

// IsTerminal checks if the reconciliation reached a final state
func (r *Reconciliation) IsTerminal() bool {
	return r.Status == ReconciliationStatusValidated || r.Status == ReconciliationStatusRejected
}

// IsActive checks if the reconciliation still claims its transaction
func (r *Reconciliation) IsActive() bool {
	return r.Status == ReconciliationStatusPending || r.Status == ReconciliationStatusValidated
}
