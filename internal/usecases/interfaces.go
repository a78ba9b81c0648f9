package usecases

import (
	"time"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/repositories"
	"github.com/shopspring/decimal"
)

// UserUseCase defines the interface for user and company administration
type UserUseCase interface {
	Register(companyName, controlAccount, name, email, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

// AccountUseCase defines bank account administration and the filtered
// transaction listing
type AccountUseCase interface {
	CreateAccount(account *models.BankAccount) (*models.BankAccount, error)
	ListAccounts(companyID uint) ([]models.BankAccount, error)
	ListTransactions(companyID, accountID uint, filter repositories.TransactionFilter) ([]models.BankTransaction, error)
}

// BalanceUseCase defines the balance calculator contracts. Both are pure
// replays over their inputs; a missing account yields balance zero.
type BalanceUseCase interface {
	BankBalance(companyID, accountID uint, asOf time.Time) (decimal.Decimal, error)
	AccountingBalance(companyID uint, asOf time.Time) (decimal.Decimal, error)
}

// DiscrepancyUseCase defines discrepancy detection and the manual resolve action
type DiscrepancyUseCase interface {
	Detect(companyID, accountID uint, asOf time.Time) ([]models.Discrepancy, error)
	ListByAccount(companyID, accountID uint) ([]models.Discrepancy, error)
	Resolve(companyID, id uint) (*models.Discrepancy, error)
}

// EntryCandidate is a scored accounting entry proposed for a transaction
type EntryCandidate struct {
	Entry models.AccountingEntry `json:"entry"`
	Score int                    `json:"score"`
}

// InvoiceCandidate is a scored invoice proposed for a credit transaction
type InvoiceCandidate struct {
	Invoice models.Invoice `json:"invoice"`
	Score   int            `json:"score"`
}

// MatchingUseCase defines the scorer-backed candidate searches and the
// rule-driven automatic lettrage pass
type MatchingUseCase interface {
	EntryCandidates(companyID, transactionID uint) ([]EntryCandidate, error)
	InvoiceCandidates(companyID, transactionID uint) ([]InvoiceCandidate, error)
	// ApplyRules evaluates the company's active rules in priority order and
	// returns the reconciliation produced by the first winning rule, or nil
	// when no rule produced one
	ApplyRules(companyID uint, transaction *models.BankTransaction) (*models.Reconciliation, error)
}

// RuleUseCase defines matching rule configuration management
type RuleUseCase interface {
	CreateRule(rule *models.MatchingRule) (*models.MatchingRule, error)
	UpdateRule(companyID, id uint, rule *models.MatchingRule) (*models.MatchingRule, error)
	DeleteRule(companyID, id uint) error
	ListRules(companyID uint) ([]models.MatchingRule, error)
}

// CreateReconciliationInput carries a manual or engine-proposed link
type CreateReconciliationInput struct {
	TransactionID uint
	Kind          models.ReconciliationKind
	EntryID       *uint
	InvoiceID     *uint
	PaymentID     *uint
	Amount        decimal.Decimal
	Score         *int
	Notes         string
}

// BatchResult reports a batch auto-reconciliation run: failures on single
// transactions never abort the batch
type BatchResult struct {
	Processed int      `json:"processed"`
	Matched   int      `json:"matched"`
	Errors    []string `json:"errors"`
}

// ReconciliationUseCase defines the reconciliation lifecycle manager
type ReconciliationUseCase interface {
	Create(companyID uint, input CreateReconciliationInput) (*models.Reconciliation, error)
	Validate(companyID, id uint) (*models.Reconciliation, error)
	Reject(companyID, id uint) (*models.Reconciliation, error)
	List(companyID uint, status models.ReconciliationStatus, page, pageSize int) ([]models.Reconciliation, error)
	AutoReconcileAccount(companyID, accountID uint) (*BatchResult, error)
	Unlink(companyID, transactionID uint) error
}

// UseCases holds all use case interfaces
type UseCases struct {
	User           UserUseCase
	Account        AccountUseCase
	Balance        BalanceUseCase
	Discrepancy    DiscrepancyUseCase
	Matching       MatchingUseCase
	Rule           RuleUseCase
	Reconciliation ReconciliationUseCase
}

// NewUseCases creates a new instance of all use cases
func NewUseCases(repos *repositories.Repositories) *UseCases {
	balanceUC := NewBalanceUseCase(repos)
	matchingUC := NewMatchingUseCase(repos)
	reconciliationUC := NewReconciliationUseCase(repos, matchingUC)

	return &UseCases{
		User:           NewUserUseCase(repos),
		Account:        NewAccountUseCase(repos),
		Balance:        balanceUC,
		Discrepancy:    NewDiscrepancyUseCase(repos, balanceUC),
		Matching:       matchingUC,
		Rule:           NewRuleUseCase(repos),
		Reconciliation: reconciliationUC,
	}
}
