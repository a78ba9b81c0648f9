package usecases

import (
	"errors"
	"testing"

	"github.com/bigy003/Compta-sub000/internal/models"
)

func TestRuleUseCase_CreateRule(t *testing.T) {
	repos := newTestRepositories()
	ruleUC := NewRuleUseCase(repos)

	t.Run("should create a well-formed rule", func(t *testing.T) {
		rule, err := ruleUC.CreateRule(&models.MatchingRule{
			CompanyID: 1, Name: "loyer", Priority: 10, Active: true,
			Keywords: "LOYER", Action: models.RuleActionAssignAccount, TargetAccount: "613",
		})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if rule.ID == 0 {
			t.Error("Expected the rule to be persisted")
		}
	})

	t.Run("should refuse a rule without criteria", func(t *testing.T) {
		_, err := ruleUC.CreateRule(&models.MatchingRule{
			CompanyID: 1, Name: "empty", Priority: 10, Active: true,
			Action: models.RuleActionAssignAccount, TargetAccount: "613",
		})
		if !errors.Is(err, ErrInvalidRule) {
			t.Errorf("Expected ErrInvalidRule, got: %v", err)
		}
	})

	t.Run("should refuse a scorer rule with a target account", func(t *testing.T) {
		_, err := ruleUC.CreateRule(&models.MatchingRule{
			CompanyID: 1, Name: "bad-scorer", Priority: 10, Active: true,
			Keywords: "VIREMENT", Action: models.RuleActionScorer, TargetAccount: "613",
		})
		if !errors.Is(err, ErrInvalidRule) {
			t.Errorf("Expected ErrInvalidRule, got: %v", err)
		}
	})

	t.Run("should refuse an assign rule without a target account", func(t *testing.T) {
		_, err := ruleUC.CreateRule(&models.MatchingRule{
			CompanyID: 1, Name: "bad-assign", Priority: 10, Active: true,
			Keywords: "VIREMENT", Action: models.RuleActionAssignAccount,
		})
		if !errors.Is(err, ErrInvalidRule) {
			t.Errorf("Expected ErrInvalidRule, got: %v", err)
		}
	})
}

func TestRuleUseCase_UpdateRule(t *testing.T) {
	repos := newTestRepositories()
	ruleUC := NewRuleUseCase(repos)

	created, err := ruleUC.CreateRule(&models.MatchingRule{
		CompanyID: 1, Name: "loyer", Priority: 10, Active: true,
		Keywords: "LOYER", Action: models.RuleActionAssignAccount, TargetAccount: "613",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	t.Run("should apply the incoming fields", func(t *testing.T) {
		updated, err := ruleUC.UpdateRule(1, created.ID, &models.MatchingRule{
			Name: "loyer agence", Priority: 5, Active: false,
			Keywords: "LOYER,AGENCE", Action: models.RuleActionAssignAccount, TargetAccount: "613",
		})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if updated.Name != "loyer agence" || updated.Priority != 5 || updated.Active {
			t.Errorf("Expected the update to be applied, got: %+v", updated)
		}
	})

	t.Run("should validate the updated rule", func(t *testing.T) {
		_, err := ruleUC.UpdateRule(1, created.ID, &models.MatchingRule{
			Name: "broken", Action: models.RuleActionAssignAccount,
		})
		if !errors.Is(err, ErrInvalidRule) {
			t.Errorf("Expected ErrInvalidRule, got: %v", err)
		}
	})

	t.Run("should fail for an unknown rule", func(t *testing.T) {
		_, err := ruleUC.UpdateRule(1, 999, &models.MatchingRule{
			Name: "ghost", Keywords: "X", Action: models.RuleActionScorer,
		})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got: %v", err)
		}
	})
}

func TestRuleUseCase_DeleteRule(t *testing.T) {
	repos := newTestRepositories()
	ruleUC := NewRuleUseCase(repos)

	created, _ := ruleUC.CreateRule(&models.MatchingRule{
		CompanyID: 1, Name: "loyer", Priority: 10, Active: true,
		Keywords: "LOYER", Action: models.RuleActionAssignAccount, TargetAccount: "613",
	})

	if err := ruleUC.DeleteRule(1, created.ID); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := ruleUC.DeleteRule(1, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after deletion, got: %v", err)
	}
}

func TestRuleUseCase_ListRules(t *testing.T) {
	repos := newTestRepositories()
	ruleUC := NewRuleUseCase(repos)

	ruleUC.CreateRule(&models.MatchingRule{
		CompanyID: 1, Name: "catch-all", Priority: 100, Active: true,
		Keywords: "VIREMENT", Action: models.RuleActionScorer,
	})
	ruleUC.CreateRule(&models.MatchingRule{
		CompanyID: 1, Name: "loyer", Priority: 10, Active: true,
		Keywords: "LOYER", Action: models.RuleActionAssignAccount, TargetAccount: "613",
	})
	ruleUC.CreateRule(&models.MatchingRule{
		CompanyID: 2, Name: "other-company", Priority: 1, Active: true,
		Keywords: "X", Action: models.RuleActionScorer,
	})

	rules, err := ruleUC.ListRules(1)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("Expected 2 rules, got: %d", len(rules))
	}
	if rules[0].Name != "loyer" {
		t.Errorf("Expected the lowest priority number first, got: %s", rules[0].Name)
	}
}
