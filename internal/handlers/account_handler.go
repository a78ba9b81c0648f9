package handlers

import (
	"net/http"

	"github.com/bigy003/Compta-sub000/internal/dto"
	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/repositories"
	"github.com/bigy003/Compta-sub000/internal/usecases"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountUseCase usecases.AccountUseCase
}

func NewAccountHandler(accountUseCase usecases.AccountUseCase) *AccountHandler {
	return &AccountHandler{accountUseCase: accountUseCase}
}

// CreateAccount godoc
// @Summary Create a bank account
// @Description Register a bank account for the authenticated company
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param account body dto.CreateAccountRequest true "Bank account data"
// @Success 201 {object} dto.APIResponse{data=dto.BankAccountResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account := &models.BankAccount{
		CompanyID:      cid,
		Name:           req.Name,
		IBAN:           req.IBAN,
		Currency:       req.Currency,
		OpeningBalance: req.OpeningBalance,
	}
	if account.Currency == "" {
		account.Currency = "EUR"
	}

	created, err := h.accountUseCase.CreateAccount(account)
	if err != nil {
		respondError(c, err, "Failed to create bank account")
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{
		Success: true,
		Message: "Bank account created successfully",
		Data:    dto.ToBankAccountResponse(created),
	})
}

// ListAccounts godoc
// @Summary List bank accounts
// @Description Retrieve the authenticated company's bank accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.BankAccountResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}

	accounts, err := h.accountUseCase.ListAccounts(cid)
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}

	responses := make([]dto.BankAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = dto.ToBankAccountResponse(&accounts[i])
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Bank accounts retrieved successfully",
		Data:    responses,
	})
}

// ListTransactions godoc
// @Summary List bank transactions
// @Description Retrieve an account's transactions filtered by date range, reconciled flag, type, category or label search
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bank account ID"
// @Param from query string false "Start date (inclusive)"
// @Param to query string false "End date (inclusive)"
// @Param reconciled query bool false "Reconciled flag"
// @Param type query string false "Transaction type (CREDIT or DEBIT)"
// @Param category query string false "Category"
// @Param q query string false "Label search"
// @Success 200 {object} dto.APIResponse{data=[]dto.TransactionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /accounts/{id}/transactions [get]
func (h *AccountHandler) ListTransactions(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	filter := repositories.TransactionFilter{
		Type:        models.TransactionType(c.Query("type")),
		Category:    c.Query("category"),
		LabelSearch: c.Query("q"),
	}
	if filter.From, ok = dateQuery(c, "from"); !ok {
		return
	}
	if filter.To, ok = dateQuery(c, "to"); !ok {
		return
	}
	if raw := c.Query("reconciled"); raw != "" {
		reconciled := raw == "true" || raw == "1"
		filter.Reconciled = &reconciled
	}

	transactions, err := h.accountUseCase.ListTransactions(cid, accountID, filter)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}

	responses := make([]dto.TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = dto.ToTransactionResponse(&transactions[i])
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Transactions retrieved successfully",
		Data:    responses,
	})
}
