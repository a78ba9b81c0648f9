package usecases

import (
	"errors"
	"time"

	"github.com/bigy003/Compta-sub000/internal/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type balanceUseCase struct {
	repos *repositories.Repositories
}

// NewBalanceUseCase creates a new balance use case
func NewBalanceUseCase(repos *repositories.Repositories) BalanceUseCase {
	return &balanceUseCase{repos: repos}
}

// BankBalance replays every movement on the account dated up to asOf on top
// of the opening balance. A missing account is a legitimate onboarding state
// and yields zero, not an error.
func (uc *balanceUseCase) BankBalance(companyID, accountID uint, asOf time.Time) (decimal.Decimal, error) {
	account, err := uc.repos.BankAccount.GetByID(companyID, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	transactions, err := uc.repos.Transaction.ListByAccount(accountID, repositories.TransactionFilter{To: &asOf})
	if err != nil {
		return decimal.Zero, err
	}

	balance := account.OpeningBalance
	for i := range transactions {
		balance = balance.Add(transactions[i].SignedAmount())
	}
	return balance, nil
}

// AccountingBalance replays every ledger entry touching the bank control
// account dated up to asOf. The control account is an asset: money in when it
// is debited, money out when it is credited.
func (uc *balanceUseCase) AccountingBalance(companyID uint, asOf time.Time) (decimal.Decimal, error) {
	company, err := uc.repos.Company.GetByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrNotFound
		}
		return decimal.Zero, err
	}
	if !company.HasControlAccount() {
		return decimal.Zero, ErrConfigurationMissing
	}

	entries, err := uc.repos.Entry.ListTouchingAccount(companyID, company.BankControlAccount, nil, &asOf)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for i := range entries {
		if entries[i].DebitAccount == company.BankControlAccount {
			balance = balance.Add(entries[i].Amount)
		} else {
			balance = balance.Sub(entries[i].Amount)
		}
	}
	return balance, nil
}
