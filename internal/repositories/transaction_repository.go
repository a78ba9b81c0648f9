package repositories

import (
	"github.com/bigy003/Compta-sub000/internal/models"
	"gorm.io/gorm"
)

type bankAccountRepository struct {
	db *gorm.DB
}

// NewBankAccountRepository creates a new bank account repository
func NewBankAccountRepository(db *gorm.DB) BankAccountRepository {
	return &bankAccountRepository{db: db}
}

func (r *bankAccountRepository) Create(account *models.BankAccount) error {
	return r.db.Create(account).Error
}

func (r *bankAccountRepository) GetByID(companyID, id uint) (*models.BankAccount, error) {
	var account models.BankAccount
	err := r.db.Where("company_id = ?", companyID).First(&account, id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *bankAccountRepository) ListByCompany(companyID uint) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	err := r.db.Where("company_id = ?", companyID).Order("id").Find(&accounts).Error
	return accounts, err
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new bank transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(transaction *models.BankTransaction) error {
	return r.db.Create(transaction).Error
}

func (r *transactionRepository) GetByID(companyID, id uint) (*models.BankTransaction, error) {
	var transaction models.BankTransaction
	err := r.db.
		Joins("JOIN bank_accounts ON bank_accounts.id = bank_transactions.bank_account_id").
		Where("bank_accounts.company_id = ?", companyID).
		First(&transaction, "bank_transactions.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepository) ListByAccount(accountID uint, filter TransactionFilter) ([]models.BankTransaction, error) {
	query := r.db.Where("bank_account_id = ?", accountID)

	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.Reconciled != nil {
		query = query.Where("reconciled = ?", *filter.Reconciled)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.LabelSearch != "" {
		query = query.Where("label LIKE ?", "%"+filter.LabelSearch+"%")
	}

	var transactions []models.BankTransaction
	err := query.Order("date, id").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepository) ListUnreconciled(accountID uint) ([]models.BankTransaction, error) {
	var transactions []models.BankTransaction
	err := r.db.
		Where("bank_account_id = ? AND reconciled = ?", accountID, false).
		Order("date, id").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepository) Update(transaction *models.BankTransaction) error {
	return r.db.Save(transaction).Error
}
