package usecases

import (
	"errors"
	"fmt"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/repositories"
	"gorm.io/gorm"
)

type matchingUseCase struct {
	repos *repositories.Repositories
}

// NewMatchingUseCase creates a new matching use case
func NewMatchingUseCase(repos *repositories.Repositories) MatchingUseCase {
	return &matchingUseCase{repos: repos}
}

// controlAccountFor resolves the company's bank control account code,
// distinguishing the unprovisioned case from a zero balance
func controlAccountFor(repos *repositories.Repositories, companyID uint) (string, error) {
	company, err := repos.Company.GetByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if !company.HasControlAccount() {
		return "", ErrConfigurationMissing
	}
	return company.BankControlAccount, nil
}

// activeEntrySetFor collects entry ids already claimed by an active reconciliation
func activeEntrySetFor(repos *repositories.Repositories, companyID uint) (map[uint]bool, error) {
	ids, err := repos.Reconciliation.ActiveEntryIDs(companyID)
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (uc *matchingUseCase) EntryCandidates(companyID, transactionID uint) ([]EntryCandidate, error) {
	transaction, err := uc.repos.Transaction.GetByID(companyID, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, transactionID)
		}
		return nil, err
	}

	code, err := controlAccountFor(uc.repos, companyID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.repos.Entry.ListTouchingAccount(companyID, code, nil, nil)
	if err != nil {
		return nil, err
	}

	excluded, err := activeEntrySetFor(uc.repos, companyID)
	if err != nil {
		return nil, err
	}

	return rankEntryCandidates(transaction, entries, excluded), nil
}

func (uc *matchingUseCase) InvoiceCandidates(companyID, transactionID uint) ([]InvoiceCandidate, error) {
	transaction, err := uc.repos.Transaction.GetByID(companyID, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, transactionID)
		}
		return nil, err
	}

	if !transaction.IsCredit() {
		return nil, nil
	}

	// A transaction already actively linked to an invoice gets no offers
	if _, err := uc.repos.Reconciliation.GetActiveByTransaction(transaction.ID, models.ReconciliationKindInvoice); err == nil {
		return nil, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	invoices, err := uc.repos.Invoice.ListOpen(companyID)
	if err != nil {
		return nil, err
	}

	// Pairs already carrying an active reconciliation are never re-offered
	excluded := make(map[uint]bool)
	for i := range invoices {
		active, err := uc.repos.Reconciliation.HasActivePair(transaction.ID, invoices[i].ID)
		if err != nil {
			return nil, err
		}
		if active {
			excluded[invoices[i].ID] = true
		}
	}

	return rankInvoiceCandidates(transaction, invoices, excluded), nil
}

// ApplyRules runs the automatic lettrage pass: active rules in ascending
// priority order, first rule whose action produces a reconciliation wins.
// A scorer rule whose best candidate stays below the auto threshold does not
// stop evaluation; the next rule gets its turn.
func (uc *matchingUseCase) ApplyRules(companyID uint, transaction *models.BankTransaction) (*models.Reconciliation, error) {
	rules, err := uc.repos.Rule.ListActiveByCompany(companyID)
	if err != nil {
		return nil, err
	}

	for i := range rules {
		if !rules[i].Matches(transaction) {
			continue
		}

		switch rules[i].Action {
		case models.RuleActionAssignAccount:
			rec, err := uc.assignToAccount(companyID, transaction, &rules[i])
			if err != nil {
				return nil, err
			}
			return rec, nil

		case models.RuleActionScorer:
			rec, err := uc.scorerAssisted(companyID, transaction)
			if err != nil {
				return nil, err
			}
			if rec != nil {
				return rec, nil
			}

		default:
			return nil, fmt.Errorf("%w: rule %d has unknown action %q", ErrInvalidRule, rules[i].ID, rules[i].Action)
		}
	}

	return nil, nil
}

// assignToAccount posts the transaction against the rule's target account and
// reconciles it in one atomic unit: the new ledger entry and the PENDING
// reconciliation commit together or not at all.
func (uc *matchingUseCase) assignToAccount(companyID uint, transaction *models.BankTransaction, rule *models.MatchingRule) (*models.Reconciliation, error) {
	code, err := controlAccountFor(uc.repos, companyID)
	if err != nil {
		return nil, err
	}

	entry := &models.AccountingEntry{
		CompanyID:   companyID,
		Date:        transaction.Date,
		Amount:      transaction.Amount,
		Label:       transaction.Label,
		DocumentRef: transaction.Reference,
	}
	if transaction.IsCredit() {
		entry.DebitAccount = code
		entry.CreditAccount = rule.TargetAccount
	} else {
		entry.DebitAccount = rule.TargetAccount
		entry.CreditAccount = code
	}

	score := assignAccountConfidence
	rec := &models.Reconciliation{
		CompanyID:     companyID,
		TransactionID: transaction.ID,
		Kind:          models.ReconciliationKindEntry,
		Amount:        transaction.Amount,
		Score:         &score,
		Notes:         fmt.Sprintf("rule %q: assigned to account %s", rule.Name, rule.TargetAccount),
	}

	err = uc.repos.Tx.Do(func(r *repositories.Repositories) error {
		if err := r.Entry.Create(entry); err != nil {
			return err
		}
		rec.EntryID = &entry.ID
		return createReconciliation(r, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// scorerAssisted runs the scored entry search and applies the top candidate
// only when it reaches the auto threshold; otherwise it reports no result.
func (uc *matchingUseCase) scorerAssisted(companyID uint, transaction *models.BankTransaction) (*models.Reconciliation, error) {
	candidates, err := uc.EntryCandidates(companyID, transaction.ID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 || candidates[0].Score < AutoApplyThreshold {
		return nil, nil
	}

	best := candidates[0]
	score := best.Score
	rec := &models.Reconciliation{
		CompanyID:     companyID,
		TransactionID: transaction.ID,
		Kind:          models.ReconciliationKindEntry,
		EntryID:       &best.Entry.ID,
		Amount:        best.Entry.Amount,
		Score:         &score,
		Notes:         "scorer-assisted match",
	}
	if err := createReconciliation(uc.repos, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
