package repositories

import (
	"time"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionFilter narrows bank transaction listings
type TransactionFilter struct {
	From        *time.Time
	To          *time.Time
	Reconciled  *bool
	Type        models.TransactionType
	Category    string
	LabelSearch string
}

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	Create(company *models.Company) error
	GetByID(id uint) (*models.Company, error)
	Update(company *models.Company) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

// BankAccountRepository defines the interface for bank account data operations
type BankAccountRepository interface {
	Create(account *models.BankAccount) error
	GetByID(companyID, id uint) (*models.BankAccount, error)
	ListByCompany(companyID uint) ([]models.BankAccount, error)
}

// TransactionRepository defines the interface for bank transaction data
// operations. Writes are limited to the reconciled flag and counterpart links.
type TransactionRepository interface {
	Create(transaction *models.BankTransaction) error
	GetByID(companyID, id uint) (*models.BankTransaction, error)
	ListByAccount(accountID uint, filter TransactionFilter) ([]models.BankTransaction, error)
	ListUnreconciled(accountID uint) ([]models.BankTransaction, error)
	Update(transaction *models.BankTransaction) error
}

// EntryRepository defines the interface for accounting ledger reads, plus the
// single write path used by assign-account rules
type EntryRepository interface {
	Create(entry *models.AccountingEntry) error
	GetByID(companyID, id uint) (*models.AccountingEntry, error)
	ListTouchingAccount(companyID uint, accountCode string, from, to *time.Time) ([]models.AccountingEntry, error)
}

// InvoiceRepository defines the interface for invoice reads; the engine only
// ever writes the status field
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	GetByID(companyID, id uint) (*models.Invoice, error)
	ListOpen(companyID uint) ([]models.Invoice, error)
	UpdateStatus(id uint, status models.InvoiceStatus) error
}

// ReconciliationRepository defines the interface for reconciliation records.
// Create is a conditional insert: the unique index on active_key turns a
// second active record for the same (transaction, kind) into
// gorm.ErrDuplicatedKey, so the duplicate guard holds under concurrency.
type ReconciliationRepository interface {
	Create(rec *models.Reconciliation) error
	GetByID(companyID, id uint) (*models.Reconciliation, error)
	Update(rec *models.Reconciliation) error
	ListByCompany(companyID uint, status models.ReconciliationStatus, offset, limit int) ([]models.Reconciliation, error)
	GetActiveByTransaction(transactionID uint, kind models.ReconciliationKind) (*models.Reconciliation, error)
	HasActivePair(transactionID, invoiceID uint) (bool, error)
	ActiveEntryIDs(companyID uint) ([]uint, error)
	SumValidatedForInvoice(invoiceID uint) (decimal.Decimal, error)
}

// DiscrepancyRepository defines the interface for persisted discrepancies
type DiscrepancyRepository interface {
	Create(d *models.Discrepancy) error
	GetByID(companyID, id uint) (*models.Discrepancy, error)
	ListByAccount(companyID, accountID uint) ([]models.Discrepancy, error)
	Update(d *models.Discrepancy) error
}

// RuleRepository defines the interface for matching rule configuration
type RuleRepository interface {
	Create(rule *models.MatchingRule) error
	GetByID(companyID, id uint) (*models.MatchingRule, error)
	Update(rule *models.MatchingRule) error
	Delete(companyID, id uint) error
	ListByCompany(companyID uint) ([]models.MatchingRule, error)
	ListActiveByCompany(companyID uint) ([]models.MatchingRule, error)
}

// TxManager runs a unit of work atomically: every repository call made through
// the Repositories handed to fn commits or rolls back as one step
type TxManager interface {
	Do(fn func(r *Repositories) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Company        CompanyRepository
	User           UserRepository
	BankAccount    BankAccountRepository
	Transaction    TransactionRepository
	Entry          EntryRepository
	Invoice        InvoiceRepository
	Reconciliation ReconciliationRepository
	Discrepancy    DiscrepancyRepository
	Rule           RuleRepository
	Tx             TxManager
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Company:        NewCompanyRepository(db),
		User:           NewUserRepository(db),
		BankAccount:    NewBankAccountRepository(db),
		Transaction:    NewTransactionRepository(db),
		Entry:          NewEntryRepository(db),
		Invoice:        NewInvoiceRepository(db),
		Reconciliation: NewReconciliationRepository(db),
		Discrepancy:    NewDiscrepancyRepository(db),
		Rule:           NewRuleRepository(db),
		Tx:             &gormTxManager{db: db},
	}
}

type gormTxManager struct {
	db *gorm.DB
}

func (m *gormTxManager) Do(fn func(r *Repositories) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
