package models

import (
	"time"

	"gorm.io/gorm"
)

// Company represents a tenant of the accounting service
type Company struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
	// BankControlAccount is the plan-comptable code of the bank control account
	// (512 in the French chart). Empty until provisioned during onboarding.
	BankControlAccount string `json:"bank_control_account" gorm:"type:varchar(16)"`

	// Relationships
	Users        []User        `json:"users,omitempty" gorm:"foreignKey:CompanyID"`
	BankAccounts []BankAccount `json:"bank_accounts,omitempty" gorm:"foreignKey:CompanyID"`
}

// TableName overrides the table name used by Company
func (Company) TableName() string {
	return "companies"
}

// HasControlAccount reports whether the bank control account code is provisioned
func (c *Company) HasControlAccount() bool {
	return c.BankControlAccount != ""
}
