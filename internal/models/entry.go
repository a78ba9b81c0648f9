package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account code prefixes from the French chart of accounts
const (
	ExceptionalChargePrefix = "67" // charges exceptionnelles
	ExceptionalIncomePrefix = "77" // produits exceptionnels
)

// AccountingEntry represents a double-entry ledger record. The engine reads
// the ones touching the company's bank control account; the only entries it
// ever writes are the postings created by assign-account matching rules.
type AccountingEntry struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
	CompanyID     uint            `json:"company_id" gorm:"not null;index"`
	Date          time.Time       `json:"date" gorm:"not null;index"`
	DebitAccount  string          `json:"debit_account" gorm:"type:varchar(16);not null;index"`
	CreditAccount string          `json:"credit_account" gorm:"type:varchar(16);not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null;check:amount > 0"`
	Label         string          `json:"label" gorm:"type:varchar(255);not null"`
	DocumentRef   string          `json:"document_ref" gorm:"type:varchar(255)"`

	Company Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
}

// TableName overrides the table name used by AccountingEntry
func (AccountingEntry) TableName() string {
	return "accounting_entries"
}

// Touches checks whether the entry posts to the given account code on either side
func (e *AccountingEntry) Touches(accountCode string) bool {
	return e.DebitAccount == accountCode || e.CreditAccount == accountCode
}

// CounterpartAccount returns the account opposite the given one, or "" when
// the entry does not touch it
func (e *AccountingEntry) CounterpartAccount(accountCode string) string {
	switch accountCode {
	case e.DebitAccount:
		return e.CreditAccount
	case e.CreditAccount:
		return e.DebitAccount
	default:
		return ""
	}
}

// IsExceptional checks whether the counterpart of the given account is an
// exceptional charge (67x) or exceptional income (77x) account
func (e *AccountingEntry) IsExceptional(accountCode string) bool {
	counterpart := e.CounterpartAccount(accountCode)
	return strings.HasPrefix(counterpart, ExceptionalChargePrefix) ||
		strings.HasPrefix(counterpart, ExceptionalIncomePrefix)
}
