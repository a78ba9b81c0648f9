package usecases

import (
	"sort"
	"strings"
	"time"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MockCompanyRepository implements CompanyRepository interface for testing
type MockCompanyRepository struct {
	companies map[uint]*models.Company
}

func NewMockCompanyRepository() *MockCompanyRepository {
	return &MockCompanyRepository{companies: make(map[uint]*models.Company)}
}

func (m *MockCompanyRepository) Create(company *models.Company) error {
	if company.ID == 0 {
		company.ID = uint(len(m.companies) + 1)
	}
	m.companies[company.ID] = company
	return nil
}

func (m *MockCompanyRepository) GetByID(id uint) (*models.Company, error) {
	if company, ok := m.companies[id]; ok {
		return company, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCompanyRepository) Update(company *models.Company) error {
	m.companies[company.ID] = company
	return nil
}

// MockUserRepository implements UserRepository interface for testing
type MockUserRepository struct {
	users  map[uint]*models.User
	emails map[string]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]*models.User),
		emails: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(user *models.User) error {
	if user.ID == 0 {
		user.ID = uint(len(m.users) + 1)
	}
	m.users[user.ID] = user
	m.emails[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	if user, ok := m.emails[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) Update(user *models.User) error {
	m.users[user.ID] = user
	m.emails[user.Email] = user
	return nil
}

// MockBankAccountRepository implements BankAccountRepository interface for testing
type MockBankAccountRepository struct {
	accounts map[uint]*models.BankAccount
}

func NewMockBankAccountRepository() *MockBankAccountRepository {
	return &MockBankAccountRepository{accounts: make(map[uint]*models.BankAccount)}
}

func (m *MockBankAccountRepository) Create(account *models.BankAccount) error {
	if account.ID == 0 {
		account.ID = uint(len(m.accounts) + 1)
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockBankAccountRepository) GetByID(companyID, id uint) (*models.BankAccount, error) {
	if account, ok := m.accounts[id]; ok && account.CompanyID == companyID {
		return account, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockBankAccountRepository) ListByCompany(companyID uint) ([]models.BankAccount, error) {
	accounts := make([]models.BankAccount, 0)
	for _, account := range m.accounts {
		if account.CompanyID == companyID {
			accounts = append(accounts, *account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

// MockTransactionRepository implements TransactionRepository interface for
// testing. Transactions are stored in a slice to preserve the date ordering
// the gorm implementation guarantees; tests insert them in date order.
type MockTransactionRepository struct {
	transactions []*models.BankTransaction
	accounts     *MockBankAccountRepository
	idCounter    uint
}

func NewMockTransactionRepository(accounts *MockBankAccountRepository) *MockTransactionRepository {
	return &MockTransactionRepository{accounts: accounts}
}

func (m *MockTransactionRepository) Create(transaction *models.BankTransaction) error {
	if transaction.ID == 0 {
		m.idCounter++
		transaction.ID = m.idCounter
	} else if transaction.ID > m.idCounter {
		m.idCounter = transaction.ID
	}
	m.transactions = append(m.transactions, transaction)
	return nil
}

func (m *MockTransactionRepository) GetByID(companyID, id uint) (*models.BankTransaction, error) {
	for _, transaction := range m.transactions {
		if transaction.ID != id {
			continue
		}
		account, ok := m.accounts.accounts[transaction.BankAccountID]
		if !ok || account.CompanyID != companyID {
			return nil, gorm.ErrRecordNotFound
		}
		return transaction, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockTransactionRepository) ListByAccount(accountID uint, filter repositories.TransactionFilter) ([]models.BankTransaction, error) {
	transactions := make([]models.BankTransaction, 0)
	for _, transaction := range m.transactions {
		if transaction.BankAccountID != accountID {
			continue
		}
		if filter.From != nil && transaction.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && transaction.Date.After(*filter.To) {
			continue
		}
		if filter.Reconciled != nil && transaction.Reconciled != *filter.Reconciled {
			continue
		}
		if filter.Type != "" && transaction.Type != filter.Type {
			continue
		}
		if filter.Category != "" && transaction.Category != filter.Category {
			continue
		}
		if filter.LabelSearch != "" &&
			!strings.Contains(strings.ToUpper(transaction.Label), strings.ToUpper(filter.LabelSearch)) {
			continue
		}
		transactions = append(transactions, *transaction)
	}
	return transactions, nil
}

func (m *MockTransactionRepository) ListUnreconciled(accountID uint) ([]models.BankTransaction, error) {
	transactions := make([]models.BankTransaction, 0)
	for _, transaction := range m.transactions {
		if transaction.BankAccountID == accountID && !transaction.Reconciled {
			transactions = append(transactions, *transaction)
		}
	}
	return transactions, nil
}

func (m *MockTransactionRepository) Update(transaction *models.BankTransaction) error {
	for i, stored := range m.transactions {
		if stored.ID == transaction.ID {
			m.transactions[i] = transaction
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// MockEntryRepository implements EntryRepository interface for testing
type MockEntryRepository struct {
	entries   []*models.AccountingEntry
	idCounter uint
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Create(entry *models.AccountingEntry) error {
	if entry.ID == 0 {
		m.idCounter++
		entry.ID = m.idCounter
	} else if entry.ID > m.idCounter {
		m.idCounter = entry.ID
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) GetByID(companyID, id uint) (*models.AccountingEntry, error) {
	for _, entry := range m.entries {
		if entry.ID == id && entry.CompanyID == companyID {
			return entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockEntryRepository) ListTouchingAccount(companyID uint, accountCode string, from, to *time.Time) ([]models.AccountingEntry, error) {
	entries := make([]models.AccountingEntry, 0)
	for _, entry := range m.entries {
		if entry.CompanyID != companyID || !entry.Touches(accountCode) {
			continue
		}
		if from != nil && entry.Date.Before(*from) {
			continue
		}
		if to != nil && entry.Date.After(*to) {
			continue
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// MockInvoiceRepository implements InvoiceRepository interface for testing
type MockInvoiceRepository struct {
	invoices  []*models.Invoice
	idCounter uint
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{}
}

func (m *MockInvoiceRepository) Create(invoice *models.Invoice) error {
	if invoice.ID == 0 {
		m.idCounter++
		invoice.ID = m.idCounter
	} else if invoice.ID > m.idCounter {
		m.idCounter = invoice.ID
	}
	m.invoices = append(m.invoices, invoice)
	return nil
}

func (m *MockInvoiceRepository) GetByID(companyID, id uint) (*models.Invoice, error) {
	for _, invoice := range m.invoices {
		if invoice.ID == id && invoice.CompanyID == companyID {
			return invoice, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockInvoiceRepository) ListOpen(companyID uint) ([]models.Invoice, error) {
	invoices := make([]models.Invoice, 0)
	for _, invoice := range m.invoices {
		if invoice.CompanyID == companyID && invoice.Status != models.InvoiceStatusPaid {
			invoices = append(invoices, *invoice)
		}
	}
	return invoices, nil
}

func (m *MockInvoiceRepository) UpdateStatus(id uint, status models.InvoiceStatus) error {
	for _, invoice := range m.invoices {
		if invoice.ID == id {
			invoice.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// MockReconciliationRepository implements ReconciliationRepository interface
// for testing. Create enforces the active_key unique index the way the
// database does, returning gorm.ErrDuplicatedKey on a collision.
type MockReconciliationRepository struct {
	reconciliations []*models.Reconciliation
	idCounter       uint
}

func NewMockReconciliationRepository() *MockReconciliationRepository {
	return &MockReconciliationRepository{}
}

func (m *MockReconciliationRepository) Create(rec *models.Reconciliation) error {
	if rec.ActiveKey != nil {
		for _, stored := range m.reconciliations {
			if stored.ActiveKey != nil && *stored.ActiveKey == *rec.ActiveKey {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	if rec.ID == 0 {
		m.idCounter++
		rec.ID = m.idCounter
	} else if rec.ID > m.idCounter {
		m.idCounter = rec.ID
	}
	m.reconciliations = append(m.reconciliations, rec)
	return nil
}

func (m *MockReconciliationRepository) GetByID(companyID, id uint) (*models.Reconciliation, error) {
	for _, rec := range m.reconciliations {
		if rec.ID == id && rec.CompanyID == companyID {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockReconciliationRepository) Update(rec *models.Reconciliation) error {
	for i, stored := range m.reconciliations {
		if stored.ID == rec.ID {
			m.reconciliations[i] = rec
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *MockReconciliationRepository) ListByCompany(companyID uint, status models.ReconciliationStatus, offset, limit int) ([]models.Reconciliation, error) {
	matching := make([]models.Reconciliation, 0)
	for _, rec := range m.reconciliations {
		if rec.CompanyID != companyID {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		matching = append(matching, *rec)
	}
	if offset >= len(matching) {
		return []models.Reconciliation{}, nil
	}
	end := offset + limit
	if end > len(matching) {
		end = len(matching)
	}
	return matching[offset:end], nil
}

func (m *MockReconciliationRepository) GetActiveByTransaction(transactionID uint, kind models.ReconciliationKind) (*models.Reconciliation, error) {
	key := models.ActiveKeyFor(transactionID, kind)
	for _, rec := range m.reconciliations {
		if rec.ActiveKey != nil && *rec.ActiveKey == key {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockReconciliationRepository) HasActivePair(transactionID, invoiceID uint) (bool, error) {
	for _, rec := range m.reconciliations {
		if rec.TransactionID == transactionID && rec.InvoiceID != nil && *rec.InvoiceID == invoiceID && rec.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockReconciliationRepository) ActiveEntryIDs(companyID uint) ([]uint, error) {
	ids := make([]uint, 0)
	for _, rec := range m.reconciliations {
		if rec.CompanyID == companyID && rec.ActiveKey != nil && rec.EntryID != nil {
			ids = append(ids, *rec.EntryID)
		}
	}
	return ids, nil
}

func (m *MockReconciliationRepository) SumValidatedForInvoice(invoiceID uint) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, rec := range m.reconciliations {
		if rec.InvoiceID != nil && *rec.InvoiceID == invoiceID && rec.Status == models.ReconciliationStatusValidated {
			total = total.Add(rec.Amount)
		}
	}
	return total, nil
}

// MockDiscrepancyRepository implements DiscrepancyRepository interface for testing
type MockDiscrepancyRepository struct {
	discrepancies []*models.Discrepancy
	idCounter     uint
}

func NewMockDiscrepancyRepository() *MockDiscrepancyRepository {
	return &MockDiscrepancyRepository{}
}

func (m *MockDiscrepancyRepository) Create(d *models.Discrepancy) error {
	if d.ID == 0 {
		m.idCounter++
		d.ID = m.idCounter
	}
	m.discrepancies = append(m.discrepancies, d)
	return nil
}

func (m *MockDiscrepancyRepository) GetByID(companyID, id uint) (*models.Discrepancy, error) {
	for _, d := range m.discrepancies {
		if d.ID == id && d.CompanyID == companyID {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDiscrepancyRepository) ListByAccount(companyID, accountID uint) ([]models.Discrepancy, error) {
	discrepancies := make([]models.Discrepancy, 0)
	for _, d := range m.discrepancies {
		if d.CompanyID == companyID && d.BankAccountID == accountID {
			discrepancies = append(discrepancies, *d)
		}
	}
	return discrepancies, nil
}

func (m *MockDiscrepancyRepository) Update(d *models.Discrepancy) error {
	for i, stored := range m.discrepancies {
		if stored.ID == d.ID {
			m.discrepancies[i] = d
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// MockRuleRepository implements RuleRepository interface for testing
type MockRuleRepository struct {
	rules     []*models.MatchingRule
	idCounter uint
}

func NewMockRuleRepository() *MockRuleRepository {
	return &MockRuleRepository{}
}

func (m *MockRuleRepository) Create(rule *models.MatchingRule) error {
	if rule.ID == 0 {
		m.idCounter++
		rule.ID = m.idCounter
	} else if rule.ID > m.idCounter {
		m.idCounter = rule.ID
	}
	m.rules = append(m.rules, rule)
	return nil
}

func (m *MockRuleRepository) GetByID(companyID, id uint) (*models.MatchingRule, error) {
	for _, rule := range m.rules {
		if rule.ID == id && rule.CompanyID == companyID {
			return rule, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRuleRepository) Update(rule *models.MatchingRule) error {
	for i, stored := range m.rules {
		if stored.ID == rule.ID {
			m.rules[i] = rule
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *MockRuleRepository) Delete(companyID, id uint) error {
	for i, rule := range m.rules {
		if rule.ID == id && rule.CompanyID == companyID {
			m.rules = append(m.rules[:i], m.rules[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *MockRuleRepository) ListByCompany(companyID uint) ([]models.MatchingRule, error) {
	rules := make([]models.MatchingRule, 0)
	for _, rule := range m.rules {
		if rule.CompanyID == companyID {
			rules = append(rules, *rule)
		}
	}
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Priority < rules[j].Priority })
	return rules, nil
}

func (m *MockRuleRepository) ListActiveByCompany(companyID uint) ([]models.MatchingRule, error) {
	rules := make([]models.MatchingRule, 0)
	for _, rule := range m.rules {
		if rule.CompanyID == companyID && rule.Active {
			rules = append(rules, *rule)
		}
	}
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Priority < rules[j].Priority })
	return rules, nil
}

// MockTxManager implements TxManager by handing the same repositories back to
// the unit of work; mock writes are immediate, so there is nothing to roll back
type MockTxManager struct {
	repos *repositories.Repositories
}

func (m *MockTxManager) Do(fn func(r *repositories.Repositories) error) error {
	return fn(m.repos)
}

// newTestRepositories wires a full mock repository set for use case tests
func newTestRepositories() *repositories.Repositories {
	accountRepo := NewMockBankAccountRepository()
	repos := &repositories.Repositories{
		Company:        NewMockCompanyRepository(),
		User:           NewMockUserRepository(),
		BankAccount:    accountRepo,
		Transaction:    NewMockTransactionRepository(accountRepo),
		Entry:          NewMockEntryRepository(),
		Invoice:        NewMockInvoiceRepository(),
		Reconciliation: NewMockReconciliationRepository(),
		Discrepancy:    NewMockDiscrepancyRepository(),
		Rule:           NewMockRuleRepository(),
	}
	repos.Tx = &MockTxManager{repos: repos}
	return repos
}
