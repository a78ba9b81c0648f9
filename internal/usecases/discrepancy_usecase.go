package usecases

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/repositories"
	"github.com/bigy003/Compta-sub000/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discrepancy detection constants
const (
	// duplicateLabelKeyLength is the label truncation used in the grouping key
	duplicateLabelKeyLength = 50
	// missingMovementWindowDays bounds the ledger search around a transaction
	missingMovementWindowDays = 7
)

// balanceGapTolerance absorbs rounding noise: gaps of one currency unit or
// less are not discrepancies
var balanceGapTolerance = decimal.NewFromInt(1)

type discrepancyUseCase struct {
	repos   *repositories.Repositories
	balance BalanceUseCase
}

// NewDiscrepancyUseCase creates a new discrepancy use case
func NewDiscrepancyUseCase(repos *repositories.Repositories, balance BalanceUseCase) DiscrepancyUseCase {
	return &discrepancyUseCase{repos: repos, balance: balance}
}

// Detect explains the gap between the bank and accounting balances as of a
// date. Findings are diagnostic overlays: the same transaction may back
// several of them. When nothing specific explains a persisting gap, one OTHER
// finding carrying the raw gap is produced and persisted, so the gap is never
// silently dropped.
func (uc *discrepancyUseCase) Detect(companyID, accountID uint, asOf time.Time) ([]models.Discrepancy, error) {
	bankBalance, err := uc.balance.BankBalance(companyID, accountID, asOf)
	if err != nil {
		return nil, err
	}
	accountingBalance, err := uc.balance.AccountingBalance(companyID, asOf)
	if err != nil {
		return nil, err
	}

	gap := accountingBalance.Sub(bankBalance)
	if gap.Abs().LessThanOrEqual(balanceGapTolerance) {
		return nil, nil
	}

	company, err := uc.repos.Company.GetByID(companyID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.repos.Transaction.ListByAccount(accountID, repositories.TransactionFilter{To: &asOf})
	if err != nil {
		return nil, err
	}

	base := models.Discrepancy{
		CompanyID:         companyID,
		BankAccountID:     accountID,
		Date:              asOf,
		AccountingBalance: accountingBalance,
		BankBalance:       bankBalance,
	}

	var findings []models.Discrepancy
	findings = append(findings, uc.detectDuplicates(base, transactions)...)

	missing, err := uc.detectMissingMovements(base, company.BankControlAccount, transactions)
	if err != nil {
		return nil, err
	}
	findings = append(findings, missing...)

	misc, err := uc.detectMiscEntries(base, company.BankControlAccount, asOf)
	if err != nil {
		return nil, err
	}
	findings = append(findings, misc...)

	if len(findings) == 0 {
		other := base
		other.Type = models.DiscrepancyTypeOther
		other.Gap = gap
		other.Description = fmt.Sprintf("unexplained gap of %s between accounting (%s) and bank (%s)",
			gap.String(), accountingBalance.String(), bankBalance.String())
		if err := uc.repos.Discrepancy.Create(&other); err != nil {
			return nil, err
		}
		findings = append(findings, other)
	}

	return findings, nil
}

// detectDuplicates groups transactions by calendar day, exact amount and
// truncated label; any group with more than one member is a duplicate
// candidate, reported with the combined amount and all member ids.
func (uc *discrepancyUseCase) detectDuplicates(base models.Discrepancy, transactions []models.BankTransaction) []models.Discrepancy {
	type group struct {
		ids      []uint
		combined decimal.Decimal
		first    *models.BankTransaction
	}

	groups := make(map[string]*group)
	var order []string
	for i := range transactions {
		t := &transactions[i]
		key := fmt.Sprintf("%s|%s|%s",
			t.Date.Format("2006-01-02"),
			t.Amount.String(),
			utils.TruncateLabel(t.Label, duplicateLabelKeyLength))
		g, ok := groups[key]
		if !ok {
			g = &group{combined: decimal.Zero, first: t}
			groups[key] = g
			order = append(order, key)
		}
		g.ids = append(g.ids, t.ID)
		g.combined = g.combined.Add(t.SignedAmount())
	}

	var findings []models.Discrepancy
	for _, key := range order {
		g := groups[key]
		if len(g.ids) < 2 {
			continue
		}
		d := base
		d.Type = models.DiscrepancyTypeDuplicate
		d.Gap = g.combined
		d.Description = fmt.Sprintf("%d transactions of %s on %s share the label %q",
			len(g.ids), g.first.Amount.String(), g.first.Date.Format("2006-01-02"),
			utils.TruncateLabel(g.first.Label, duplicateLabelKeyLength))
		d.EvidenceIDs = encodeEvidence(g.ids)
		findings = append(findings, d)
	}
	return findings
}

// detectMissingMovements reports unreconciled transactions with no ledger
// entry of a matching amount within the search window around their date.
func (uc *discrepancyUseCase) detectMissingMovements(base models.Discrepancy, controlAccount string, transactions []models.BankTransaction) ([]models.Discrepancy, error) {
	var findings []models.Discrepancy
	for i := range transactions {
		t := &transactions[i]
		if t.Reconciled {
			continue
		}

		from := t.Date.AddDate(0, 0, -missingMovementWindowDays)
		to := t.Date.AddDate(0, 0, missingMovementWindowDays)
		entries, err := uc.repos.Entry.ListTouchingAccount(base.CompanyID, controlAccount, &from, &to)
		if err != nil {
			return nil, err
		}

		matched := false
		for j := range entries {
			if entries[j].Amount.Sub(t.Amount).Abs().LessThanOrEqual(exactAmountTolerance) {
				matched = true
				break
			}
		}
		if !matched {
			d := base
			d.Type = models.DiscrepancyTypeMissingMovement
			d.Gap = t.SignedAmount()
			d.Description = fmt.Sprintf("transaction %q of %s on %s has no accounting entry",
				t.Label, t.Amount.String(), t.Date.Format("2006-01-02"))
			d.EvidenceIDs = encodeEvidence([]uint{t.ID})
			findings = append(findings, d)
		}
	}
	return findings, nil
}

// detectMiscEntries reports unreconciled control-account entries whose
// counterpart is an exceptional charge (67x) or income (77x) account.
func (uc *discrepancyUseCase) detectMiscEntries(base models.Discrepancy, controlAccount string, asOf time.Time) ([]models.Discrepancy, error) {
	entries, err := uc.repos.Entry.ListTouchingAccount(base.CompanyID, controlAccount, nil, &asOf)
	if err != nil {
		return nil, err
	}

	reconciled, err := activeEntrySetFor(uc.repos, base.CompanyID)
	if err != nil {
		return nil, err
	}

	var findings []models.Discrepancy
	for i := range entries {
		e := &entries[i]
		if reconciled[e.ID] || !e.IsExceptional(controlAccount) {
			continue
		}
		d := base
		d.Type = models.DiscrepancyTypeMiscEntry
		d.Gap = e.Amount
		d.Description = fmt.Sprintf("unreconciled OD entry %q of %s against account %s",
			e.Label, e.Amount.String(), e.CounterpartAccount(controlAccount))
		d.EvidenceIDs = encodeEvidence([]uint{e.ID})
		findings = append(findings, d)
	}
	return findings, nil
}

func (uc *discrepancyUseCase) ListByAccount(companyID, accountID uint) ([]models.Discrepancy, error) {
	return uc.repos.Discrepancy.ListByAccount(companyID, accountID)
}

// Resolve marks a persisted discrepancy as handled; discrepancies are never
// auto-deleted
func (uc *discrepancyUseCase) Resolve(companyID, id uint) (*models.Discrepancy, error) {
	d, err := uc.repos.Discrepancy.GetByID(companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: discrepancy %d", ErrNotFound, id)
		}
		return nil, err
	}

	d.Resolved = true
	if err := uc.repos.Discrepancy.Update(d); err != nil {
		return nil, err
	}
	return d, nil
}

func encodeEvidence(ids []uint) string {
	encoded, _ := json.Marshal(ids)
	return string(encoded)
}
