package usecases

import (
	"errors"
	"fmt"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/repositories"
	"gorm.io/gorm"
)

type accountUseCase struct {
	repos *repositories.Repositories
}

// NewAccountUseCase creates a new bank account use case
func NewAccountUseCase(repos *repositories.Repositories) AccountUseCase {
	return &accountUseCase{repos: repos}
}

func (uc *accountUseCase) CreateAccount(account *models.BankAccount) (*models.BankAccount, error) {
	if err := uc.repos.BankAccount.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (uc *accountUseCase) ListAccounts(companyID uint) ([]models.BankAccount, error) {
	return uc.repos.BankAccount.ListByCompany(companyID)
}

// ListTransactions returns the account's transactions, ordered by date then
// id, narrowed by the filter. The account lookup doubles as the company guard.
func (uc *accountUseCase) ListTransactions(companyID, accountID uint, filter repositories.TransactionFilter) ([]models.BankTransaction, error) {
	if _, err := uc.repos.BankAccount.GetByID(companyID, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bank account %d", ErrNotFound, accountID)
		}
		return nil, err
	}
	return uc.repos.Transaction.ListByAccount(accountID, filter)
}
