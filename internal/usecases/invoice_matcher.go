package usecases

import (
	"sort"
	"strings"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/utils"
)

// ScoreInvoiceMatch computes the confidence score between a credit bank
// transaction and an open invoice. The weights differ from the entry scorer
// because this pairing crosses two independent ledgers with weaker natural
// correlation, hence the higher admission threshold:
//   - remainder: exact +50, within 5% +30, within 10% +15
//   - issue-date proximity: within 3 days +30, 7 days +15, 30 days +5
//   - invoice number found in the label +20
//   - client name found in the label +10
//   - any payment reference found in the label +15
func ScoreInvoiceMatch(t *models.BankTransaction, invoice *models.Invoice) int {
	score := amountPoints(t.Amount, invoice.Remainder(), 50, 30, 15)

	switch gap := calendarDayGap(t.Date, invoice.IssueDate); {
	case gap <= 3:
		score += 30
	case gap <= 7:
		score += 15
	case gap <= 30:
		score += 5
	}

	label := utils.NormalizeLabel(t.Label)

	if number := utils.NormalizeLabel(invoice.Number); number != "" && strings.Contains(label, number) {
		score += 20
	}

	if client := utils.NormalizeLabel(invoice.ClientName); len(client) > utils.MinTokenLength && strings.Contains(label, client) {
		score += 10
	}

	for _, payment := range invoice.Payments {
		if ref := utils.NormalizeLabel(payment.Reference); ref != "" && strings.Contains(label, ref) {
			score += 15
			break
		}
	}

	return score
}

// rankInvoiceCandidates scores open invoices against a credit transaction,
// keeps the ones at or above the admission threshold, and orders them by
// descending score with ascending invoice id as the explicit tie-break.
// Invoices without a positive remainder never qualify.
func rankInvoiceCandidates(t *models.BankTransaction, invoices []models.Invoice, excluded map[uint]bool) []InvoiceCandidate {
	var candidates []InvoiceCandidate
	if !t.IsCredit() {
		return candidates
	}

	for i := range invoices {
		if excluded[invoices[i].ID] || !invoices[i].Remainder().IsPositive() {
			continue
		}
		score := ScoreInvoiceMatch(t, &invoices[i])
		if score >= InvoiceAdmissionThreshold {
			candidates = append(candidates, InvoiceCandidate{Invoice: invoices[i], Score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Invoice.ID < candidates[j].Invoice.ID
	})
	return candidates
}
