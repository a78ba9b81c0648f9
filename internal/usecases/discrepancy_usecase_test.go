package usecases

import (
	"errors"
	"strings"
	"testing"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/repositories"
	"github.com/shopspring/decimal"
)

func newDiscrepancyFixture() (*repositories.Repositories, DiscrepancyUseCase) {
	repos := newTestRepositories()
	repos.Company.Create(&models.Company{ID: 1, Name: "Test Co", BankControlAccount: "512"})
	repos.BankAccount.Create(&models.BankAccount{ID: 1, CompanyID: 1, Name: "Compte courant"})
	return repos, NewDiscrepancyUseCase(repos, NewBalanceUseCase(repos))
}

func findingsOfType(findings []models.Discrepancy, t models.DiscrepancyType) []models.Discrepancy {
	matching := make([]models.Discrepancy, 0)
	for _, f := range findings {
		if f.Type == t {
			matching = append(matching, f)
		}
	}
	return matching
}

func TestDiscrepancyUseCase_Detect(t *testing.T) {
	t.Run("should report nothing when the balances agree", func(t *testing.T) {
		_, discrepancyUC := newDiscrepancyFixture()
		findings, err := discrepancyUC.Detect(1, 1, testDate(15))
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("Expected no findings, got: %d", len(findings))
		}
	})

	t.Run("should group same-day same-amount same-label transactions as duplicates", func(t *testing.T) {
		repos, discrepancyUC := newDiscrepancyFixture()
		repos.Transaction.Create(&models.BankTransaction{
			ID: 1, BankAccountID: 1, Date: testDate(10),
			Amount: decimal.NewFromFloat(25000.00),
			Type:   models.TransactionTypeCredit, Label: "VIREMENT CLIENT",
		})
		repos.Transaction.Create(&models.BankTransaction{
			ID: 2, BankAccountID: 1, Date: testDate(10),
			Amount: decimal.NewFromFloat(25000.00),
			Type:   models.TransactionTypeCredit, Label: "VIREMENT CLIENT",
		})
		repos.Transaction.Create(&models.BankTransaction{
			ID: 3, BankAccountID: 1, Date: testDate(11),
			Amount: decimal.NewFromFloat(25000.00),
			Type:   models.TransactionTypeCredit, Label: "VIREMENT CLIENT",
		})

		findings, err := discrepancyUC.Detect(1, 1, testDate(15))
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		duplicates := findingsOfType(findings, models.DiscrepancyTypeDuplicate)
		if len(duplicates) != 1 {
			t.Fatalf("Expected exactly 1 duplicate finding, got: %d", len(duplicates))
		}
		if !duplicates[0].Gap.Equal(decimal.NewFromFloat(50000.00)) {
			t.Errorf("Expected combined gap 50000.00, got: %v", duplicates[0].Gap)
		}
		if duplicates[0].EvidenceIDs != "[1,2]" {
			t.Errorf("Expected evidence [1,2], got: %s", duplicates[0].EvidenceIDs)
		}
	})

	t.Run("should report an unreconciled transaction with no ledger echo", func(t *testing.T) {
		repos, discrepancyUC := newDiscrepancyFixture()
		repos.Transaction.Create(&models.BankTransaction{
			ID: 1, BankAccountID: 1, Date: testDate(10),
			Amount: decimal.NewFromFloat(10000.00),
			Type:   models.TransactionTypeCredit, Label: "VIREMENT INCONNU",
		})

		findings, err := discrepancyUC.Detect(1, 1, testDate(15))
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		missing := findingsOfType(findings, models.DiscrepancyTypeMissingMovement)
		if len(missing) != 1 {
			t.Fatalf("Expected 1 missing movement, got: %d", len(missing))
		}
		if !missing[0].Gap.Equal(decimal.NewFromFloat(10000.00)) {
			t.Errorf("Expected gap 10000.00, got: %v", missing[0].Gap)
		}
		if missing[0].EvidenceIDs != "[1]" {
			t.Errorf("Expected evidence [1], got: %s", missing[0].EvidenceIDs)
		}
	})

	t.Run("should accept a matching entry within the window and persist the rest as OTHER", func(t *testing.T) {
		repos, discrepancyUC := newDiscrepancyFixture()
		account, _ := repos.BankAccount.GetByID(1, 1)
		account.OpeningBalance = decimal.NewFromFloat(5000.00)

		repos.Transaction.Create(&models.BankTransaction{
			ID: 1, BankAccountID: 1, Date: testDate(10),
			Amount: decimal.NewFromFloat(10000.00),
			Type:   models.TransactionTypeCredit, Label: "VIREMENT CLIENT",
		})
		// Two days after the transaction, same amount: not a missing movement
		repos.Entry.Create(&models.AccountingEntry{
			ID: 1, CompanyID: 1, Date: testDate(12),
			DebitAccount: "512", CreditAccount: "706",
			Amount: decimal.NewFromFloat(10000.00), Label: "FACTURE CLIENT",
		})

		findings, err := discrepancyUC.Detect(1, 1, testDate(15))
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if n := len(findingsOfType(findings, models.DiscrepancyTypeMissingMovement)); n != 0 {
			t.Errorf("Expected no missing movement, got: %d", n)
		}
		others := findingsOfType(findings, models.DiscrepancyTypeOther)
		if len(others) != 1 {
			t.Fatalf("Expected the opening-balance gap reported as OTHER, got: %d", len(others))
		}
		if !others[0].Gap.Equal(decimal.NewFromFloat(-5000.00)) {
			t.Errorf("Expected gap -5000.00, got: %v", others[0].Gap)
		}

		// OTHER findings are persisted so the gap survives the request
		persisted, _ := repos.Discrepancy.ListByAccount(1, 1)
		if len(persisted) != 1 {
			t.Errorf("Expected 1 persisted discrepancy, got: %d", len(persisted))
		}
	})

	t.Run("should flag unreconciled entries against exceptional accounts", func(t *testing.T) {
		repos, discrepancyUC := newDiscrepancyFixture()
		repos.Entry.Create(&models.AccountingEntry{
			ID: 1, CompanyID: 1, Date: testDate(5),
			DebitAccount: "512", CreditAccount: "771",
			Amount: decimal.NewFromFloat(800.00), Label: "PRODUIT EXCEPTIONNEL",
		})

		findings, err := discrepancyUC.Detect(1, 1, testDate(15))
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		misc := findingsOfType(findings, models.DiscrepancyTypeMiscEntry)
		if len(misc) != 1 {
			t.Fatalf("Expected 1 misc entry finding, got: %d", len(misc))
		}
		if !strings.Contains(misc[0].Description, "771") {
			t.Errorf("Expected the counterpart account in the description, got: %q", misc[0].Description)
		}
	})

	t.Run("should refuse to run without a control account", func(t *testing.T) {
		repos := newTestRepositories()
		repos.Company.Create(&models.Company{ID: 1, Name: "Unconfigured Co"})
		repos.BankAccount.Create(&models.BankAccount{ID: 1, CompanyID: 1})
		discrepancyUC := NewDiscrepancyUseCase(repos, NewBalanceUseCase(repos))

		if _, err := discrepancyUC.Detect(1, 1, testDate(15)); !errors.Is(err, ErrConfigurationMissing) {
			t.Errorf("Expected ErrConfigurationMissing, got: %v", err)
		}
	})
}

func TestDiscrepancyUseCase_Resolve(t *testing.T) {
	repos, discrepancyUC := newDiscrepancyFixture()
	repos.Discrepancy.Create(&models.Discrepancy{
		ID: 1, CompanyID: 1, BankAccountID: 1,
		Type: models.DiscrepancyTypeOther, Date: testDate(15),
		Gap: decimal.NewFromFloat(-5000.00),
	})

	t.Run("should mark the discrepancy resolved", func(t *testing.T) {
		resolved, err := discrepancyUC.Resolve(1, 1)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if !resolved.Resolved {
			t.Error("Expected the discrepancy to be resolved")
		}
	})

	t.Run("should fail for an unknown discrepancy", func(t *testing.T) {
		if _, err := discrepancyUC.Resolve(1, 999); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got: %v", err)
		}
	})
}
