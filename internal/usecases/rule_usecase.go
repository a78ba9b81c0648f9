package usecases

import (
	"errors"
	"fmt"

	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/bigy003/Compta-sub000/internal/repositories"
	"gorm.io/gorm"
)

type ruleUseCase struct {
	repos *repositories.Repositories
}

// NewRuleUseCase creates a new matching rule use case
func NewRuleUseCase(repos *repositories.Repositories) RuleUseCase {
	return &ruleUseCase{repos: repos}
}

func (uc *ruleUseCase) CreateRule(rule *models.MatchingRule) (*models.MatchingRule, error) {
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if err := uc.repos.Rule.Create(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// UpdateRule replaces the stored rule's mutable fields with the submitted
// ones; the replacement is validated as a whole before anything is written
func (uc *ruleUseCase) UpdateRule(companyID, id uint, rule *models.MatchingRule) (*models.MatchingRule, error) {
	existing, err := uc.repos.Rule.GetByID(companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: rule %d", ErrNotFound, id)
		}
		return nil, err
	}

	existing.Name = rule.Name
	existing.Priority = rule.Priority
	existing.Active = rule.Active
	existing.MinAmount = rule.MinAmount
	existing.MaxAmount = rule.MaxAmount
	existing.Type = rule.Type
	existing.Category = rule.Category
	existing.Keywords = rule.Keywords
	existing.Action = rule.Action
	existing.TargetAccount = rule.TargetAccount

	if err := existing.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if err := uc.repos.Rule.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *ruleUseCase) DeleteRule(companyID, id uint) error {
	if err := uc.repos.Rule.Delete(companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: rule %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (uc *ruleUseCase) ListRules(companyID uint) ([]models.MatchingRule, error) {
	return uc.repos.Rule.ListByCompany(companyID)
}
