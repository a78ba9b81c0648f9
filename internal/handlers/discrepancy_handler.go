package handlers

import (
	"net/http"

	"github.com/bigy003/Compta-sub000/internal/dto"
	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/usecases"
	"github.com/gin-gonic/gin"
)

type DiscrepancyHandler struct {
	discrepancyUseCase usecases.DiscrepancyUseCase
}

func NewDiscrepancyHandler(discrepancyUseCase usecases.DiscrepancyUseCase) *DiscrepancyHandler {
	return &DiscrepancyHandler{discrepancyUseCase: discrepancyUseCase}
}

// GetDiscrepancies godoc
// @Summary Detect or list discrepancies
// @Description With as_of, run discrepancy detection between the bank and accounting balances; without it, list the account's persisted discrepancies
// @Tags discrepancies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bank account ID"
// @Param as_of query string false "Detection as-of date (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]dto.DiscrepancyResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 412 {object} dto.ErrorResponse "Bank control account not configured"
// @Failure 500 {object} dto.ErrorResponse
// @Router /accounts/{id}/discrepancies [get]
func (h *DiscrepancyHandler) GetDiscrepancies(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var findings []models.Discrepancy
	var err error
	if c.Query("as_of") != "" {
		asOf, ok := asOfQuery(c)
		if !ok {
			return
		}
		findings, err = h.discrepancyUseCase.Detect(cid, accountID, asOf)
	} else {
		findings, err = h.discrepancyUseCase.ListByAccount(cid, accountID)
	}
	if err != nil {
		respondError(c, err, "Failed to retrieve discrepancies")
		return
	}

	responses := make([]dto.DiscrepancyResponse, len(findings))
	for i := range findings {
		responses[i] = dto.ToDiscrepancyResponse(&findings[i])
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Discrepancies retrieved successfully",
		Data:    responses,
	})
}

// ResolveDiscrepancy godoc
// @Summary Resolve a discrepancy
// @Description Mark a persisted discrepancy as handled
// @Tags discrepancies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discrepancy ID"
// @Success 200 {object} dto.APIResponse{data=dto.DiscrepancyResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /discrepancies/{id}/resolve [post]
func (h *DiscrepancyHandler) ResolveDiscrepancy(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resolved, err := h.discrepancyUseCase.Resolve(cid, id)
	if err != nil {
		respondError(c, err, "Failed to resolve discrepancy")
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Discrepancy resolved successfully",
		Data:    dto.ToDiscrepancyResponse(resolved),
	})
}
