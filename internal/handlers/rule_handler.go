package handlers

import (
	"net/http"

	"github.com/bigy003/Compta-sub000/internal/dto"
	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/usecases"
	"github.com/gin-gonic/gin"
)

type RuleHandler struct {
	ruleUseCase usecases.RuleUseCase
}

func NewRuleHandler(ruleUseCase usecases.RuleUseCase) *RuleHandler {
	return &RuleHandler{ruleUseCase: ruleUseCase}
}

func ruleFromRequest(companyID uint, req *dto.RuleRequest) *models.MatchingRule {
	rule := &models.MatchingRule{
		CompanyID:     companyID,
		Name:          req.Name,
		Priority:      req.Priority,
		Active:        true,
		MinAmount:     req.MinAmount,
		MaxAmount:     req.MaxAmount,
		Type:          models.TransactionType(req.Type),
		Category:      req.Category,
		Keywords:      req.Keywords,
		Action:        models.RuleActionType(req.Action),
		TargetAccount: req.TargetAccount,
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}
	return rule
}

// CreateRule godoc
// @Summary Create a matching rule
// @Description Register an automation rule for the lettrage pass; malformed rules are rejected
// @Tags rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rule body dto.RuleRequest true "Rule data"
// @Success 201 {object} dto.APIResponse{data=dto.RuleResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Malformed rule"
// @Failure 500 {object} dto.ErrorResponse
// @Router /rules [post]
func (h *RuleHandler) CreateRule(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}

	var req dto.RuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.ruleUseCase.CreateRule(ruleFromRequest(cid, &req))
	if err != nil {
		respondError(c, err, "Failed to create rule")
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{
		Success: true,
		Message: "Rule created successfully",
		Data:    dto.ToRuleResponse(rule),
	})
}

// UpdateRule godoc
// @Summary Update a matching rule
// @Description Replace a rule's criteria, priority and action; the replacement is validated as a whole
// @Tags rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rule ID"
// @Param rule body dto.RuleRequest true "Rule data"
// @Success 200 {object} dto.APIResponse{data=dto.RuleResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Malformed rule"
// @Failure 500 {object} dto.ErrorResponse
// @Router /rules/{id} [put]
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.RuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.ruleUseCase.UpdateRule(cid, id, ruleFromRequest(cid, &req))
	if err != nil {
		respondError(c, err, "Failed to update rule")
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Rule updated successfully",
		Data:    dto.ToRuleResponse(rule),
	})
}

// DeleteRule godoc
// @Summary Delete a matching rule
// @Tags rules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rule ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /rules/{id} [delete]
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.ruleUseCase.DeleteRule(cid, id); err != nil {
		respondError(c, err, "Failed to delete rule")
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Rule deleted successfully",
	})
}

// ListRules godoc
// @Summary List matching rules
// @Description Retrieve the company's rules, active and inactive, ordered by priority
// @Tags rules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RuleResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /rules [get]
func (h *RuleHandler) ListRules(c *gin.Context) {
	cid, ok := companyID(c)
	if !ok {
		return
	}

	rules, err := h.ruleUseCase.ListRules(cid)
	if err != nil {
		respondError(c, err, "Failed to list rules")
		return
	}

	responses := make([]dto.RuleResponse, len(rules))
	for i := range rules {
		responses[i] = dto.ToRuleResponse(&rules[i])
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "Rules retrieved successfully",
		Data:    responses,
	})
}
