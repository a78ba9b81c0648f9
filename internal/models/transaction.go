package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType represents the direction of a bank statement movement
type TransactionType string

// Transaction type constants
const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

// BankTransaction represents a single normalized bank-statement movement.
// Import/normalization produces them; the reconciliation engine only ever
// flips the reconciled flag and the counterpart links.
type BankTransaction struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
	BankAccountID uint            `json:"bank_account_id" gorm:"not null;index"`
	Date          time.Time       `json:"date" gorm:"not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null;check:amount > 0"`
	Type          TransactionType `json:"type" gorm:"type:varchar(16);not null"`
	Label         string          `json:"label" gorm:"type:varchar(255);not null"`
	Reference     string          `json:"reference" gorm:"type:varchar(255);index"`
	Category      string          `json:"category" gorm:"type:varchar(64)"`
	Reconciled    bool            `json:"reconciled" gorm:"not null;default:false;index"`
	// At most one settled counterpart per kind
	MatchedEntryID   *uint `json:"matched_entry_id,omitempty" gorm:"index"`
	MatchedInvoiceID *uint `json:"matched_invoice_id,omitempty" gorm:"index"`

	BankAccount    BankAccount     `json:"bank_account,omitempty" gorm:"foreignKey:BankAccountID"`
	MatchedEntry   *AccountingEntry `json:"matched_entry,omitempty" gorm:"foreignKey:MatchedEntryID"`
	MatchedInvoice *Invoice         `json:"matched_invoice,omitempty" gorm:"foreignKey:MatchedInvoiceID"`
}

// TableName overrides the table name used by BankTransaction
func (BankTransaction) TableName() string {
	return "bank_transactions"
}

// IsCredit checks if the movement is money coming into the account
func (t *BankTransaction) IsCredit() bool {
	return t.Type == TransactionTypeCredit
}

// SignedAmount returns the amount signed by direction (credits positive, debits negative)
func (t *BankTransaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
