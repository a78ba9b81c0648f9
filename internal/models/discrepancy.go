package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscrepancyType classifies the probable cause of a balance gap
type DiscrepancyType string

const (
	DiscrepancyTypeDuplicate       DiscrepancyType = "DUPLICATE"
	DiscrepancyTypeMissingMovement DiscrepancyType = "MISSING_MOVEMENT"
	DiscrepancyTypeMiscEntry       DiscrepancyType = "MISC_ENTRY"
	DiscrepancyTypeOther           DiscrepancyType = "OTHER"
)

// Discrepancy is a diagnostic finding produced by discrepancy detection.
// Findings overlay each other rather than partitioning the gap: the same
// transaction may back both a DUPLICATE and a MISSING_MOVEMENT report.
// Discrepancies are never auto-deleted; stale ones are resolved manually.
type Discrepancy struct {
	ID                uint            `json:"id" gorm:"primarykey"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	CompanyID         uint            `json:"company_id" gorm:"not null;index"`
	BankAccountID     uint            `json:"bank_account_id" gorm:"not null;index"`
	Date              time.Time       `json:"date" gorm:"not null"`
	AccountingBalance decimal.Decimal `json:"accounting_balance" gorm:"type:decimal(15,2);not null"`
	BankBalance       decimal.Decimal `json:"bank_balance" gorm:"type:decimal(15,2);not null"`
	Gap               decimal.Decimal `json:"gap" gorm:"type:decimal(15,2);not null"`
	Type              DiscrepancyType `json:"type" gorm:"type:varchar(32);not null"`
	Description       string          `json:"description" gorm:"type:text"`
	// EvidenceIDs holds the transaction or entry ids backing the finding,
	// JSON-encoded for operator review
	EvidenceIDs string `json:"evidence_ids" gorm:"type:json"`
	Resolved    bool   `json:"resolved" gorm:"not null;default:false;index"`
}

// TableName overrides the table name used by Discrepancy
func (Discrepancy) TableName() string {
	return "discrepancies"
}
