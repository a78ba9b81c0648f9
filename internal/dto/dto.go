package dto

import (
	"time"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/usecases"
	"github.com/shopspring/decimal"
)

// UserResponse represents user response data
type UserResponse struct {
	ID        uint      `json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	CompanyID uint      `json:"company_id" example:"1"`
	Name      string    `json:"name" example:"Jeanne Martin"`
	Email     string    `json:"email" example:"jeanne.martin@example.com"`
} //@name UserResponse

// RegisterRequest represents company + first user registration
type RegisterRequest struct {
	CompanyName    string `json:"company_name" binding:"required" example:"Atelier Dupont SARL"`
	ControlAccount string `json:"control_account" example:"512"`
	Name           string `json:"name" binding:"required" example:"Jeanne Martin"`
	Email          string `json:"email" binding:"required,email" example:"jeanne.martin@example.com"`
	Password       string `json:"password" binding:"required,min=6" example:"password123"`
} //@name RegisterRequest

// LoginRequest represents user login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jeanne.martin@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
} //@name LoginRequest

// LoginResponse represents user login response
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
} //@name LoginResponse

// ChangePasswordRequest represents password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required" example:"oldpassword123"`
	NewPassword     string `json:"new_password" binding:"required,min=6" example:"newpassword123"`
} //@name ChangePasswordRequest

// CreateAccountRequest represents bank account creation data
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required" example:"Compte courant"`
	IBAN           string          `json:"iban" example:"FR7630006000011234567890189"`
	Currency       string          `json:"currency" example:"EUR"`
	OpeningBalance decimal.Decimal `json:"opening_balance" example:"0.00"`
} //@name CreateAccountRequest

// BankAccountResponse represents bank account response data
type BankAccountResponse struct {
	ID             uint            `json:"id" example:"1"`
	Name           string          `json:"name" example:"Compte courant"`
	IBAN           string          `json:"iban,omitempty" example:"FR7630006000011234567890189"`
	Currency       string          `json:"currency" example:"EUR"`
	OpeningBalance decimal.Decimal `json:"opening_balance" example:"0.00"`
} //@name BankAccountResponse

// BankBalanceResponse represents the replayed bank-side balance of an account
type BankBalanceResponse struct {
	BankAccountID uint            `json:"bank_account_id" example:"1"`
	AsOf          time.Time       `json:"as_of" example:"2023-01-31T00:00:00Z"`
	Balance       decimal.Decimal `json:"balance" example:"10250.00"`
} //@name BankBalanceResponse

// AccountingBalanceResponse represents the control-account balance on the
// accounting side
type AccountingBalanceResponse struct {
	AsOf    time.Time       `json:"as_of" example:"2023-01-31T00:00:00Z"`
	Balance decimal.Decimal `json:"balance" example:"10250.00"`
} //@name AccountingBalanceResponse

// TransactionResponse represents bank transaction response data
type TransactionResponse struct {
	ID               uint            `json:"id" example:"1"`
	BankAccountID    uint            `json:"bank_account_id" example:"1"`
	Date             time.Time       `json:"date" example:"2023-01-15T00:00:00Z"`
	Amount           decimal.Decimal `json:"amount" example:"1500.00"`
	Type             string          `json:"type" example:"CREDIT"`
	Label            string          `json:"label" example:"VIREMENT CLIENT DUPONT"`
	Reference        string          `json:"reference,omitempty" example:"REF123456"`
	Category         string          `json:"category,omitempty" example:"SALES"`
	Reconciled       bool            `json:"reconciled" example:"false"`
	MatchedEntryID   *uint           `json:"matched_entry_id,omitempty"`
	MatchedInvoiceID *uint           `json:"matched_invoice_id,omitempty"`
} //@name TransactionResponse

// EntryResponse represents accounting entry response data
type EntryResponse struct {
	ID            uint            `json:"id" example:"1"`
	Date          time.Time       `json:"date" example:"2023-01-15T00:00:00Z"`
	DebitAccount  string          `json:"debit_account" example:"512"`
	CreditAccount string          `json:"credit_account" example:"706"`
	Amount        decimal.Decimal `json:"amount" example:"1500.00"`
	Label         string          `json:"label" example:"FACTURE 2023-001 DUPONT"`
	DocumentRef   string          `json:"document_ref,omitempty" example:"FAC-2023-001"`
} //@name EntryResponse

// EntryCandidateResponse represents a scored entry match proposal
type EntryCandidateResponse struct {
	Entry EntryResponse `json:"entry"`
	Score int           `json:"score" example:"85"`
} //@name EntryCandidateResponse

// InvoiceResponse represents invoice response data
type InvoiceResponse struct {
	ID         uint            `json:"id" example:"1"`
	Number     string          `json:"number" example:"2023-001"`
	ClientName string          `json:"client_name" example:"DUPONT SAS"`
	IssueDate  time.Time       `json:"issue_date" example:"2023-01-10T00:00:00Z"`
	Total      decimal.Decimal `json:"total" example:"120000.00"`
	Status     string          `json:"status" example:"SENT"`
	Remainder  decimal.Decimal `json:"remainder" example:"120000.00"`
} //@name InvoiceResponse

// InvoiceCandidateResponse represents a scored invoice match proposal
type InvoiceCandidateResponse struct {
	Invoice InvoiceResponse `json:"invoice"`
	Score   int             `json:"score" example:"100"`
} //@name InvoiceCandidateResponse

// DiscrepancyResponse represents a detected or persisted discrepancy
type DiscrepancyResponse struct {
	ID                uint            `json:"id" example:"1"`
	BankAccountID     uint            `json:"bank_account_id" example:"1"`
	Date              time.Time       `json:"date" example:"2023-01-31T00:00:00Z"`
	Type              string          `json:"type" example:"DUPLICATE"`
	AccountingBalance decimal.Decimal `json:"accounting_balance" example:"10250.00"`
	BankBalance       decimal.Decimal `json:"bank_balance" example:"35250.00"`
	Gap               decimal.Decimal `json:"gap" example:"-25000.00"`
	Description       string          `json:"description" example:"2 transactions of 25000 on 2023-01-15 share the label \"VIREMENT CLIENT\""`
	EvidenceIDs       string          `json:"evidence_ids,omitempty" example:"[12,13]"`
	Resolved          bool            `json:"resolved" example:"false"`
} //@name DiscrepancyResponse

// CreateReconciliationRequest represents a manual reconciliation proposal
type CreateReconciliationRequest struct {
	TransactionID uint            `json:"transaction_id" binding:"required" example:"1"`
	Kind          string          `json:"kind" binding:"required,oneof=ENTRY INVOICE" example:"ENTRY"`
	EntryID       *uint           `json:"entry_id,omitempty" example:"1"`
	InvoiceID     *uint           `json:"invoice_id,omitempty"`
	PaymentID     *uint           `json:"payment_id,omitempty"`
	Amount        decimal.Decimal `json:"amount" example:"1500.00"`
	Notes         string          `json:"notes" example:"manual match"`
} //@name CreateReconciliationRequest

// ReconciliationResponse represents reconciliation response data
type ReconciliationResponse struct {
	ID            uint            `json:"id" example:"1"`
	CreatedAt     time.Time       `json:"created_at" example:"2023-01-01T00:00:00Z"`
	TransactionID uint            `json:"transaction_id" example:"1"`
	Kind          string          `json:"kind" example:"ENTRY"`
	EntryID       *uint           `json:"entry_id,omitempty"`
	InvoiceID     *uint           `json:"invoice_id,omitempty"`
	PaymentID     *uint           `json:"payment_id,omitempty"`
	Amount        decimal.Decimal `json:"amount" example:"1500.00"`
	Score         *int            `json:"score,omitempty" example:"85"`
	Status        string          `json:"status" example:"PENDING"`
	Notes         string          `json:"notes,omitempty" example:"scorer-assisted match"`
} //@name ReconciliationResponse

// BatchReconcileResponse represents a batch auto-reconciliation run
type BatchReconcileResponse struct {
	Processed int      `json:"processed" example:"42"`
	Matched   int      `json:"matched" example:"30"`
	Errors    []string `json:"errors,omitempty"`
} //@name BatchReconcileResponse

// RuleRequest represents matching rule creation/update data
type RuleRequest struct {
	Name          string           `json:"name" binding:"required" example:"Bank fees"`
	Priority      int              `json:"priority" example:"10"`
	Active        *bool            `json:"active,omitempty" example:"true"`
	MinAmount     *decimal.Decimal `json:"min_amount,omitempty" example:"0.00"`
	MaxAmount     *decimal.Decimal `json:"max_amount,omitempty" example:"50.00"`
	Type          string           `json:"type,omitempty" binding:"omitempty,oneof=CREDIT DEBIT" example:"DEBIT"`
	Category      string           `json:"category,omitempty" example:"FEES"`
	Keywords      string           `json:"keywords,omitempty" example:"FRAIS,COMMISSION"`
	Action        string           `json:"action" binding:"required,oneof=ASSIGN_ACCOUNT SCORER" example:"ASSIGN_ACCOUNT"`
	TargetAccount string           `json:"target_account,omitempty" example:"627"`
} //@name RuleRequest

// RuleResponse represents matching rule response data
type RuleResponse struct {
	ID            uint             `json:"id" example:"1"`
	Name          string           `json:"name" example:"Bank fees"`
	Priority      int              `json:"priority" example:"10"`
	Active        bool             `json:"active" example:"true"`
	MinAmount     *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount     *decimal.Decimal `json:"max_amount,omitempty"`
	Type          string           `json:"type,omitempty" example:"DEBIT"`
	Category      string           `json:"category,omitempty" example:"FEES"`
	Keywords      string           `json:"keywords,omitempty" example:"FRAIS,COMMISSION"`
	Action        string           `json:"action" example:"ASSIGN_ACCOUNT"`
	TargetAccount string           `json:"target_account,omitempty" example:"627"`
} //@name RuleResponse

// PaginationMeta represents pagination metadata
type PaginationMeta struct {
	Page     int `json:"page" example:"1"`
	PageSize int `json:"page_size" example:"20"`
} //@name PaginationMeta

// ReconciliationListResponse represents a paginated reconciliation listing
type ReconciliationListResponse struct {
	Reconciliations []ReconciliationResponse `json:"reconciliations"`
	Pagination      PaginationMeta           `json:"pagination"`
} //@name ReconciliationListResponse

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"Operation successful"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty" example:""`
} //@name APIResponse

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Operation failed"`
	Error   string `json:"error" example:"Validation error"`
} //@name ErrorResponse

// Helper functions to convert models to DTOs
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		CreatedAt: user.CreatedAt,
		CompanyID: user.CompanyID,
		Name:      user.Name,
		Email:     user.Email,
	}
}

func ToBankAccountResponse(account *models.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:             account.ID,
		Name:           account.Name,
		IBAN:           account.IBAN,
		Currency:       account.Currency,
		OpeningBalance: account.OpeningBalance,
	}
}

func ToTransactionResponse(t *models.BankTransaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID,
		BankAccountID:    t.BankAccountID,
		Date:             t.Date,
		Amount:           t.Amount,
		Type:             string(t.Type),
		Label:            t.Label,
		Reference:        t.Reference,
		Category:         t.Category,
		Reconciled:       t.Reconciled,
		MatchedEntryID:   t.MatchedEntryID,
		MatchedInvoiceID: t.MatchedInvoiceID,
	}
}

func ToEntryResponse(e *models.AccountingEntry) EntryResponse {
	return EntryResponse{
		ID:            e.ID,
		Date:          e.Date,
		DebitAccount:  e.DebitAccount,
		CreditAccount: e.CreditAccount,
		Amount:        e.Amount,
		Label:         e.Label,
		DocumentRef:   e.DocumentRef,
	}
}

func ToEntryCandidateResponse(c usecases.EntryCandidate) EntryCandidateResponse {
	return EntryCandidateResponse{
		Entry: ToEntryResponse(&c.Entry),
		Score: c.Score,
	}
}

func ToInvoiceResponse(inv *models.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		ClientName: inv.ClientName,
		IssueDate:  inv.IssueDate,
		Total:      inv.Total,
		Status:     string(inv.Status),
		Remainder:  inv.Remainder(),
	}
}

func ToInvoiceCandidateResponse(c usecases.InvoiceCandidate) InvoiceCandidateResponse {
	return InvoiceCandidateResponse{
		Invoice: ToInvoiceResponse(&c.Invoice),
		Score:   c.Score,
	}
}

func ToDiscrepancyResponse(d *models.Discrepancy) DiscrepancyResponse {
	return DiscrepancyResponse{
		ID:                d.ID,
		BankAccountID:     d.BankAccountID,
		Date:              d.Date,
		Type:              string(d.Type),
		AccountingBalance: d.AccountingBalance,
		BankBalance:       d.BankBalance,
		Gap:               d.Gap,
		Description:       d.Description,
		EvidenceIDs:       d.EvidenceIDs,
		Resolved:          d.Resolved,
	}
}

func ToReconciliationResponse(rec *models.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ID:            rec.ID,
		CreatedAt:     rec.CreatedAt,
		TransactionID: rec.TransactionID,
		Kind:          string(rec.Kind),
		EntryID:       rec.EntryID,
		InvoiceID:     rec.InvoiceID,
		PaymentID:     rec.PaymentID,
		Amount:        rec.Amount,
		Score:         rec.Score,
		Status:        string(rec.Status),
		Notes:         rec.Notes,
	}
}

func ToRuleResponse(rule *models.MatchingRule) RuleResponse {
	return RuleResponse{
		ID:            rule.ID,
		Name:          rule.Name,
		Priority:      rule.Priority,
		Active:        rule.Active,
		MinAmount:     rule.MinAmount,
		MaxAmount:     rule.MaxAmount,
		Type:          string(rule.Type),
		Category:      rule.Category,
		Keywords:      rule.Keywords,
		Action:        string(rule.Action),
		TargetAccount: rule.TargetAccount,
	}
}
