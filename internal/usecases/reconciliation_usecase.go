package usecases

import (
	"errors"
	"fmt"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/repositories"
	"gorm.io/gorm"
)

type reconciliationUseCase struct {
	repos    *repositories.Repositories
	matching MatchingUseCase
}

// NewReconciliationUseCase creates a new reconciliation lifecycle use case
func NewReconciliationUseCase(repos *repositories.Repositories, matching MatchingUseCase) ReconciliationUseCase {
	return &reconciliationUseCase{repos: repos, matching: matching}
}

// createReconciliation persists a new PENDING reconciliation. The active key
// makes the insert conditional: when another active record already claims the
// (transaction, kind) pair, the unique index rejects this one and the caller
// gets ErrConflict. Check and insert are a single statement, so exactly one
// of two concurrent creates wins.
func createReconciliation(repos *repositories.Repositories, rec *models.Reconciliation) error {
	key := models.ActiveKeyFor(rec.TransactionID, rec.Kind)
	rec.ActiveKey = &key
	rec.Status = models.ReconciliationStatusPending

	if err := repos.Reconciliation.Create(rec); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: transaction %d already has an active %s reconciliation",
				ErrConflict, rec.TransactionID, rec.Kind)
		}
		return err
	}
	return nil
}

func (uc *reconciliationUseCase) Create(companyID uint, input CreateReconciliationInput) (*models.Reconciliation, error) {
	transaction, err := uc.repos.Transaction.GetByID(companyID, input.TransactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, input.TransactionID)
		}
		return nil, err
	}

	rec := &models.Reconciliation{
		CompanyID:     companyID,
		TransactionID: transaction.ID,
		Kind:          input.Kind,
		Amount:        input.Amount,
		Score:         input.Score,
		Notes:         input.Notes,
	}
	if rec.Amount.IsZero() {
		rec.Amount = transaction.Amount
	}

	switch input.Kind {
	case models.ReconciliationKindEntry:
		if input.EntryID == nil {
			return nil, fmt.Errorf("%w: entry id required", ErrNotFound)
		}
		if _, err := uc.repos.Entry.GetByID(companyID, *input.EntryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: entry %d", ErrNotFound, *input.EntryID)
			}
			return nil, err
		}
		rec.EntryID = input.EntryID

	case models.ReconciliationKindInvoice:
		if input.InvoiceID == nil {
			return nil, fmt.Errorf("%w: invoice id required", ErrNotFound)
		}
		invoice, err := uc.repos.Invoice.GetByID(companyID, *input.InvoiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: invoice %d", ErrNotFound, *input.InvoiceID)
			}
			return nil, err
		}
		if input.PaymentID != nil {
			found := false
			for _, p := range invoice.Payments {
				if p.ID == *input.PaymentID {
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("%w: payment %d on invoice %d", ErrNotFound, *input.PaymentID, invoice.ID)
			}
		}
		rec.InvoiceID = input.InvoiceID
		rec.PaymentID = input.PaymentID

	default:
		return nil, fmt.Errorf("%w: unknown reconciliation kind %q", ErrNotFound, input.Kind)
	}

	if err := createReconciliation(uc.repos, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate transitions a PENDING reconciliation to VALIDATED and applies the
// cross-entity side effects in the same committed step: the transaction's
// reconciled flag and counterpart link, and the invoice promotion to PAID
// when payments plus validated reconciliations cover the total. A partial
// write here would be a correctness bug, hence the single transaction.
func (uc *reconciliationUseCase) Validate(companyID, id uint) (*models.Reconciliation, error) {
	var validated *models.Reconciliation

	err := uc.repos.Tx.Do(func(r *repositories.Repositories) error {
		rec, err := r.Reconciliation.GetByID(companyID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reconciliation %d", ErrNotFound, id)
			}
			return err
		}
		if rec.IsTerminal() {
			return fmt.Errorf("%w: reconciliation %d is already %s", ErrConflict, id, rec.Status)
		}

		rec.Status = models.ReconciliationStatusValidated
		if err := r.Reconciliation.Update(rec); err != nil {
			return err
		}

		transaction, err := r.Transaction.GetByID(companyID, rec.TransactionID)
		if err != nil {
			return err
		}
		// Idempotent: the flag may already be set through the other
		// counterpart kind, which is allowed
		transaction.Reconciled = true
		switch rec.Kind {
		case models.ReconciliationKindEntry:
			transaction.MatchedEntryID = rec.EntryID
		case models.ReconciliationKindInvoice:
			transaction.MatchedInvoiceID = rec.InvoiceID
		}
		if err := r.Transaction.Update(transaction); err != nil {
			return err
		}

		if rec.Kind == models.ReconciliationKindInvoice && rec.InvoiceID != nil {
			invoice, err := r.Invoice.GetByID(companyID, *rec.InvoiceID)
			if err != nil {
				return err
			}
			reconciled, err := r.Reconciliation.SumValidatedForInvoice(invoice.ID)
			if err != nil {
				return err
			}
			if reconciled.Add(invoice.PaidAmount()).GreaterThanOrEqual(invoice.Total) {
				if err := r.Invoice.UpdateStatus(invoice.ID, models.InvoiceStatusPaid); err != nil {
					return err
				}
			}
		}

		validated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return validated, nil
}

// Reject transitions a PENDING reconciliation to REJECTED and releases its
// active key so the transaction can be re-proposed. A validated
// reconciliation cannot be unwound through rejection.
func (uc *reconciliationUseCase) Reject(companyID, id uint) (*models.Reconciliation, error) {
	var rejected *models.Reconciliation

	err := uc.repos.Tx.Do(func(r *repositories.Repositories) error {
		rec, err := r.Reconciliation.GetByID(companyID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reconciliation %d", ErrNotFound, id)
			}
			return err
		}
		if rec.IsTerminal() {
			return fmt.Errorf("%w: reconciliation %d is already %s", ErrConflict, id, rec.Status)
		}

		rec.Status = models.ReconciliationStatusRejected
		rec.ActiveKey = nil
		if err := r.Reconciliation.Update(rec); err != nil {
			return err
		}

		rejected = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

func (uc *reconciliationUseCase) List(companyID uint, status models.ReconciliationStatus, page, pageSize int) ([]models.Reconciliation, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return uc.repos.Reconciliation.ListByCompany(companyID, status, offset, pageSize)
}

// AutoReconcileAccount walks the account's unreconciled transactions and
// applies, in order: the rule pass, the exact-amount direct match, and the
// scored search at the auto threshold. A transaction that survives all three
// stays unreconciled; a failure on one transaction never aborts the batch.
func (uc *reconciliationUseCase) AutoReconcileAccount(companyID, accountID uint) (*BatchResult, error) {
	if _, err := uc.repos.BankAccount.GetByID(companyID, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bank account %d", ErrNotFound, accountID)
		}
		return nil, err
	}

	// The control account gates the whole run, not individual items
	code, err := controlAccountFor(uc.repos, companyID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.repos.Transaction.ListUnreconciled(accountID)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for i := range transactions {
		transaction := &transactions[i]
		result.Processed++

		rec, err := uc.matching.ApplyRules(companyID, transaction)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("transaction %d: %v", transaction.ID, err))
			continue
		}
		if rec == nil {
			rec, err = uc.fallbackMatch(companyID, code, transaction)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("transaction %d: %v", transaction.ID, err))
				continue
			}
		}
		if rec != nil {
			result.Matched++
		}
	}
	return result, nil
}

// fallbackMatch implements the two fallbacks behind the rule pass: a strict
// exact-amount match at confidence 90 (no date or label considered), then the
// scored search applied only at the auto threshold.
func (uc *reconciliationUseCase) fallbackMatch(companyID uint, controlAccount string, transaction *models.BankTransaction) (*models.Reconciliation, error) {
	entries, err := uc.repos.Entry.ListTouchingAccount(companyID, controlAccount, nil, nil)
	if err != nil {
		return nil, err
	}
	excluded, err := activeEntrySetFor(uc.repos, companyID)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if excluded[entries[i].ID] {
			continue
		}
		if entries[i].Amount.Equal(transaction.Amount) {
			score := exactAmountConfidence
			rec := &models.Reconciliation{
				CompanyID:     companyID,
				TransactionID: transaction.ID,
				Kind:          models.ReconciliationKindEntry,
				EntryID:       &entries[i].ID,
				Amount:        entries[i].Amount,
				Score:         &score,
				Notes:         "exact amount match",
			}
			if err := createReconciliation(uc.repos, rec); err != nil {
				return nil, err
			}
			return rec, nil
		}
	}

	candidates := rankEntryCandidates(transaction, entries, excluded)
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

// Unlink rejects the transaction's pending reconciliations so it can be
// matched afresh. Validated links are not unwound here; reversing a validated
// reconciliation is a separate explicit operation.
func (uc *reconciliationUseCase) Unlink(companyID, transactionID uint) error {
	return uc.repos.Tx.Do(func(r *repositories.Repositories) error {
		if _, err := r.Transaction.GetByID(companyID, transactionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: transaction %d", ErrNotFound, transactionID)
			}
			return err
		}

		for _, kind := range []models.ReconciliationKind{models.ReconciliationKindEntry, models.ReconciliationKindInvoice} {
			rec, err := r.Reconciliation.GetActiveByTransaction(transactionID, kind)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if rec.Status == models.ReconciliationStatusValidated {
				return fmt.Errorf("%w: transaction %d has a validated %s reconciliation", ErrConflict, transactionID, kind)
			}

			rec.Status = models.ReconciliationStatusRejected
			rec.ActiveKey = nil
			if err := r.Reconciliation.Update(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
