package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BankAccount represents a bank account whose statement lines are imported as transactions
type BankAccount struct {
	ID             uint            `json:"id" gorm:"primarykey"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
	CompanyID      uint            `json:"company_id" gorm:"not null;index"`
	Name           string          `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
	IBAN           string          `json:"iban" gorm:"type:varchar(34)"`
	Currency       string          `json:"currency" gorm:"type:varchar(3);not null;default:'EUR'"`
	OpeningBalance decimal.Decimal `json:"opening_balance" gorm:"type:decimal(15,2);not null;default:0.00"`

	// Relationships
	Company      Company           `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Transactions []BankTransaction `json:"transactions,omitempty" gorm:"foreignKey:BankAccountID"`
}

// TableName overrides the table name used by BankAccount
func (BankAccount) TableName() string {
	return "bank_accounts"
}
