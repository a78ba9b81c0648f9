package handlers

import (
	"net/http"

	"github.com/bigy003/Compta-sub000/internal/dto"
	"github.com/bigy003/Compta-sub000/internal/usecases"
	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	matchingUseCase usecases.MatchingUseCase
}

func NewMatchingHandler(matchingUseCase usecases.MatchingUseCase) *MatchingHandler {
	return &MatchingHandler{matchingUseCase: matchingUseCase}
}

// GetEntryCandidates godoc
// @Summary Get entry match candidates
// @Description Score the company's control-account entries against the transaction and return admissible candidates, best first
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.EntryCandidateResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 412 {object} dto.ErrorResponse "Bank control account not configured"
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/{id}/candidates/entries [get]
func (h *MatchingHandler) GetEntryCandidates(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	candidates, err := h.matchingUseCase.EntryCandidates(cid, transactionID)
	if err != nil {
		respondError(c, err, "Failed to compute entry candidates")
		return
	}

	responses := make([]dto.EntryCandidateResponse, len(candidates))
	for i, candidate := range candidates {
		responses[i] = dto.ToEntryCandidateResponse(candidate)
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Entry candidates computed successfully",
		Data:    responses,
	})
}

// GetInvoiceCandidates godoc
// @Summary Get invoice match candidates
// @Description Score the company's open invoices against a credit transaction and return admissible candidates, best first
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.InvoiceCandidateResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/{id}/candidates/invoices [get]
func (h *MatchingHandler) GetInvoiceCandidates(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	candidates, err := h.matchingUseCase.InvoiceCandidates(cid, transactionID)
	if err != nil {
		respondError(c, err, "Failed to compute invoice candidates")
		return
	}

	responses := make([]dto.InvoiceCandidateResponse, len(candidates))
	for i, candidate := range candidates {
		responses[i] = dto.ToInvoiceCandidateResponse(candidate)
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Invoice candidates computed successfully",
		Data:    responses,
	})
}
