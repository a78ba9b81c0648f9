package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RuleActionType is the closed set of actions a matching rule can take
type RuleActionType string

const (
	// RuleActionAssignAccount posts the transaction against a fixed
	// accounting account and reconciles it with confidence 80
	RuleActionAssignAccount RuleActionType = "ASSIGN_ACCOUNT"
	// RuleActionScorer defers to the scored entry search; the match is
	// applied only when the top candidate reaches the auto threshold
	RuleActionScorer RuleActionType = "SCORER"
)

// MatchingRule is an ordered automation policy for the auto-lettrage pass.
// Rules are configuration data: criteria and action are a closed set of typed
// fields so malformed rules are rejected at write time instead of silently
// no-opping during evaluation.
type MatchingRule struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	CompanyID uint           `json:"company_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Priority  int            `json:"priority" gorm:"not null;default:100;index"` // lower runs first
	Active    bool           `json:"active" gorm:"not null;default:true;index"`

	// Criteria; nil/empty means "don't care"
	MinAmount *decimal.Decimal `json:"min_amount,omitempty" gorm:"type:decimal(15,2)"`
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty" gorm:"type:decimal(15,2)"`
	Type      TransactionType  `json:"type,omitempty" gorm:"type:varchar(16)"`
	Category  string           `json:"category,omitempty" gorm:"type:varchar(64)"`
	// Keywords is a comma-separated list; the rule matches when any keyword
	// appears in the transaction label, case-insensitive
	Keywords string `json:"keywords,omitempty" gorm:"type:varchar(512)"`

	Action        RuleActionType `json:"action" gorm:"type:varchar(32);not null"`
	TargetAccount string         `json:"target_account,omitempty" gorm:"type:varchar(16)"`
}

// TableName overrides the table name used by MatchingRule
func (MatchingRule) TableName() string {
	return "matching_rules"
}

// Validate checks the rule's criteria and action for malformations
func (r *MatchingRule) Validate() error {
	switch r.Action {
	case RuleActionAssignAccount:
		if strings.TrimSpace(r.TargetAccount) == "" {
			return errors.New("assign-account rule requires a target account code")
		}
	case RuleActionScorer:
		if r.TargetAccount != "" {
			return errors.New("scorer rule must not carry a target account")
		}
	default:
		return errors.New("unknown rule action")
	}

	if r.Type != "" && r.Type != TransactionTypeCredit && r.Type != TransactionTypeDebit {
		return errors.New("unknown transaction type criterion")
	}

	if r.MinAmount != nil && r.MinAmount.IsNegative() {
		return errors.New("minimum amount must not be negative")
	}
	if r.MinAmount != nil && r.MaxAmount != nil && r.MaxAmount.LessThan(*r.MinAmount) {
		return errors.New("maximum amount is below minimum amount")
	}

	if r.MinAmount == nil && r.MaxAmount == nil && r.Type == "" && r.Category == "" &&
		strings.TrimSpace(r.Keywords) == "" {
		return errors.New("rule has no criteria")
	}

	return nil
}

// Matches evaluates the rule's criteria against a transaction,
// short-circuiting on the first failing predicate
func (r *MatchingRule) Matches(t *BankTransaction) bool {
	if r.MinAmount != nil && t.Amount.LessThan(*r.MinAmount) {
		return false
	}
	if r.MaxAmount != nil && t.Amount.GreaterThan(*r.MaxAmount) {
		return false
	}
	if r.Type != "" && t.Type != r.Type {
		return false
	}
	if r.Category != "" && t.Category != r.Category {
		return false
	}
	if keywords := strings.TrimSpace(r.Keywords); keywords != "" {
		label := strings.ToLower(t.Label)
		found := false
		for _, kw := range strings.Split(keywords, ",") {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(label, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
