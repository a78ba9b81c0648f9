package usecases

import (
	"sort"
	"time"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/utils"
	"github.com/shopspring/decimal"
)

// Scoring thresholds. A candidate below the admission threshold is never
// surfaced; the auto threshold gates applying a match without human review.
const (
	EntryAdmissionThreshold   = 30
	InvoiceAdmissionThreshold = 40
	AutoApplyThreshold        = 70

	assignAccountConfidence = 80
	exactAmountConfidence   = 90
)

var (
	exactAmountTolerance = decimal.NewFromFloat(0.01)
	closeDeviation       = decimal.NewFromFloat(0.05)
	looseDeviation       = decimal.NewFromFloat(0.10)
)

// amountPoints grades how closely two amounts agree: exact within a cent,
// then within 5%, then within 10% relative deviation.
func amountPoints(a, b decimal.Decimal, exact, close, loose int) int {
	diff := a.Sub(b).Abs()
	if diff.LessThanOrEqual(exactAmountTolerance) {
		return exact
	}
	if a.IsZero() {
		return 0
	}
	deviation := diff.Div(a.Abs())
	if deviation.LessThanOrEqual(closeDeviation) {
		return close
	}
	if deviation.LessThanOrEqual(looseDeviation) {
		return loose
	}
	return 0
}

// calendarDayGap returns the absolute distance between two dates in calendar
// days, ignoring the time-of-day component
func calendarDayGap(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	gap := int(da.Sub(db).Hours() / 24)
	if gap < 0 {
		gap = -gap
	}
	return gap
}

// ScoreEntryMatch computes the confidence score between a bank transaction
// and an accounting entry. Additive, 0-100:
//   - amount: exact +50, within 5% +30, within 10% +15
//   - date: same day +30, one day apart +20, up to three days +10
//   - label: +5 per shared significant token, capped at +20
func ScoreEntryMatch(t *models.BankTransaction, e *models.AccountingEntry) int {
	score := amountPoints(t.Amount, e.Amount, 50, 30, 15)

	switch gap := calendarDayGap(t.Date, e.Date); {
	case gap == 0:
		score += 30
	case gap <= 1:
		score += 20
	case gap <= 3:
		score += 10
	}

	shared := utils.SharedTokenCount(utils.TokenizeLabel(t.Label), e.Label)
	labelPoints := 5 * shared
	if labelPoints > 20 {
		labelPoints = 20
	}
	score += labelPoints

	return score
}

// rankEntryCandidates scores the entries against the transaction, keeps the
// ones at or above the admission threshold, and orders them by descending
// score with ascending entry id as the explicit tie-break.
func rankEntryCandidates(t *models.BankTransaction, entries []models.AccountingEntry, excluded map[uint]bool) []EntryCandidate {
	var candidates []EntryCandidate
	for i := range entries {
		if excluded[entries[i].ID] {
			continue
		}
		score := ScoreEntryMatch(t, &entries[i])
		if score >= EntryAdmissionThreshold {
			candidates = append(candidates, EntryCandidate{Entry: entries[i], Score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Entry.ID < candidates[j].Entry.ID
	})
	return candidates
}
