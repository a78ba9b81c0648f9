package handlers

import (
	"net/http"
	"strconv"

	"github.com/bigy003/Compta-sub000/internal/dto"
	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/usecases"
	"github.com/gin-gonic/gin"
)

type ReconciliationHandler struct {
	reconciliationUseCase usecases.ReconciliationUseCase
}

func NewReconciliationHandler(reconciliationUseCase usecases.ReconciliationUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUseCase: reconciliationUseCase}
}

// CreateReconciliation godoc
// @Summary Create a reconciliation
// @Description Propose a link between a bank transaction and an accounting entry or an invoice; the record starts PENDING
// @Tags reconciliations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reconciliation body dto.CreateReconciliationRequest true "Reconciliation data"
// @Success 201 {object} dto.APIResponse{data=dto.ReconciliationResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Transaction already has an active reconciliation of this kind"
// @Failure 500 {object} dto.ErrorResponse
// @Router /reconciliations [post]
func (h *ReconciliationHandler) CreateReconciliation(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}

	var req dto.CreateReconciliationRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.reconciliationUseCase.Create(cid, usecases.CreateReconciliationInput{
		TransactionID: req.TransactionID,
		Kind:          models.ReconciliationKind(req.Kind),
		EntryID:       req.EntryID,
		InvoiceID:     req.InvoiceID,
		PaymentID:     req.PaymentID,
		Amount:        req.Amount,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err, "Failed to create reconciliation")
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{
		Success: true,
		Message: "Reconciliation created successfully",
		Data:    dto.ToReconciliationResponse(rec),
	})
}

// ValidateReconciliation godoc
// @Summary Validate a reconciliation
// @Description Confirm a pending reconciliation; the transaction is flagged reconciled and a fully covered invoice is promoted to PAID
// @Tags reconciliations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reconciliation ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReconciliationResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Reconciliation is already terminal"
// @Failure 500 {object} dto.ErrorResponse
// @Router /reconciliations/{id}/validate [post]
func (h *ReconciliationHandler) ValidateReconciliation(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rec, err := h.reconciliationUseCase.Validate(cid, id)
	if err != nil {
		respondError(c, err, "Failed to validate reconciliation")
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Reconciliation validated successfully",
		Data:    dto.ToReconciliationResponse(rec),
	})
}

// RejectReconciliation godoc
// @Summary Reject a reconciliation
// @Description Reject a pending reconciliation, releasing the transaction for new proposals
// @Tags reconciliations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reconciliation ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReconciliationResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Reconciliation is already terminal"
// @Failure 500 {object} dto.ErrorResponse
// @Router /reconciliations/{id}/reject [post]
func (h *ReconciliationHandler) RejectReconciliation(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rec, err := h.reconciliationUseCase.Reject(cid, id)
	if err != nil {
		respondError(c, err, "Failed to reject reconciliation")
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Reconciliation rejected successfully",
		Data:    dto.ToReconciliationResponse(rec),
	})
}

// ListReconciliations godoc
// @Summary List reconciliations
// @Description Retrieve the company's reconciliations, optionally filtered by status
// @Tags reconciliations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (PENDING, VALIDATED or REJECTED)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.ReconciliationListResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reconciliations [get]
func (h *ReconciliationHandler) ListReconciliations(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}

	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	pageSize := 20
	if ps := c.Query("limit"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}

	status := models.ReconciliationStatus(c.Query("status"))

	reconciliations, err := h.reconciliationUseCase.List(cid, status, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to list reconciliations")
		return
	}

	responses := make([]dto.ReconciliationResponse, len(reconciliations))
	for i := range reconciliations {
		responses[i] = dto.ToReconciliationResponse(&reconciliations[i])
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Reconciliations retrieved successfully",
		Data: dto.ReconciliationListResponse{
			Reconciliations: responses,
			Pagination: dto.PaginationMeta{
				Page:     page,
				PageSize: pageSize,
			},
		},
	})
}

// ReconcileAccount godoc
// @Summary Auto-reconcile an account
// @Description Run the automatic lettrage pass over the account's unreconciled transactions: rules first, then exact-amount match, then the scorer at the auto threshold
// @Tags reconciliations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bank account ID"
// @Success 200 {object} dto.APIResponse{data=dto.BatchReconcileResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 412 {object} dto.ErrorResponse "Bank control account not configured"
// @Failure 500 {object} dto.ErrorResponse
// @Router /accounts/{id}/reconcile [post]
func (h *ReconciliationHandler) ReconcileAccount(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.reconciliationUseCase.AutoReconcileAccount(cid, accountID)
	if err != nil {
		respondError(c, err, "Failed to auto-reconcile account")
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Auto-reconciliation completed",
		Data: dto.BatchReconcileResponse{
			Processed: result.Processed,
			Matched:   result.Matched,
			Errors:    result.Errors,
		},
	})
}

// UnlinkTransaction godoc
// @Summary Unlink a transaction
// @Description Reject the transaction's pending reconciliations so it can be matched afresh
// @Tags reconciliations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Transaction has a validated reconciliation"
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/{id}/unlink [post]
func (h *ReconciliationHandler) UnlinkTransaction(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.reconciliationUseCase.Unlink(cid, transactionID); err != nil {
		respondError(c, err, "Failed to unlink transaction")
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Transaction unlinked successfully",
	})
}
