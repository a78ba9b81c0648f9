package repositories

import (
	"github.com/bigy003/Compta-sub000/internal/models"
	"gorm.io/gorm"
)

type discrepancyRepository struct {
	db *gorm.DB
}

// NewDiscrepancyRepository creates a new discrepancy repository
func NewDiscrepancyRepository(db *gorm.DB) DiscrepancyRepository {
	return &discrepancyRepository{db: db}
}

func (r *discrepancyRepository) Create(d *models.Discrepancy) error {
	return r.db.Create(d).Error
}

func (r *discrepancyRepository) GetByID(companyID, id uint) (*models.Discrepancy, error) {
	var d models.Discrepancy
	err := r.db.Where("company_id = ?", companyID).First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *discrepancyRepository) ListByAccount(companyID, accountID uint) ([]models.Discrepancy, error) {
	var ds []models.Discrepancy
	err := r.db.
		Where("company_id = ? AND bank_account_id = ?", companyID, accountID).
		Order("created_at DESC").
		Find(&ds).Error
	return ds, err
}

func (r *discrepancyRepository) Update(d *models.Discrepancy) error {
	return r.db.Save(d).Error
}

type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a new matching rule repository
func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Create(rule *models.MatchingRule) error {
	return r.db.Create(rule).Error
}

func (r *ruleRepository) GetByID(companyID, id uint) (*models.MatchingRule, error) {
	var rule models.MatchingRule
	err := r.db.Where("company_id = ?", companyID).First(&rule, id).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) Update(rule *models.MatchingRule) error {
	return r.db.Save(rule).Error
}

func (r *ruleRepository) Delete(companyID, id uint) error {
	result := r.db.Where("company_id = ?", companyID).Delete(&models.MatchingRule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ruleRepository) ListByCompany(companyID uint) ([]models.MatchingRule, error) {
	var rules []models.MatchingRule
	err := r.db.Where("company_id = ?", companyID).
		Order("priority, id").
		Find(&rules).Error
	return rules, err
}

func (r *ruleRepository) ListActiveByCompany(companyID uint) ([]models.MatchingRule, error) {
	var rules []models.MatchingRule
	err := r.db.Where("company_id = ? AND active = ?", companyID, true).
		Order("priority, id").
		Find(&rules).Error
	return rules, err
}
