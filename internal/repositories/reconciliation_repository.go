package repositories

import (
	"github.com/bigy003/Compta-sub000/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reconciliationRepository struct {
	db *gorm.DB
}

// NewReconciliationRepository creates a new reconciliation repository
func NewReconciliationRepository(db *gorm.DB) ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

func (r *reconciliationRepository) Create(rec *models.Reconciliation) error {
	// The unique index on active_key is the duplicate guard; the caller maps
	// gorm.ErrDuplicatedKey to a conflict.
	return r.db.Create(rec).Error
}

func (r *reconciliationRepository) GetByID(companyID, id uint) (*models.Reconciliation, error) {
	var rec models.Reconciliation
	err := r.db.Where("company_id = ?", companyID).First(&rec, id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *reconciliationRepository) Update(rec *models.Reconciliation) error {
	return r.db.Save(rec).Error
}

func (r *reconciliationRepository) ListByCompany(companyID uint, status models.ReconciliationStatus, offset, limit int) ([]models.Reconciliation, error) {
	query := r.db.Where("company_id = ?", companyID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var recs []models.Reconciliation
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&recs).Error
	return recs, err
}

func (r *reconciliationRepository) GetActiveByTransaction(transactionID uint, kind models.ReconciliationKind) (*models.Reconciliation, error) {
	var rec models.Reconciliation
	err := r.db.
		Where("active_key = ?", models.ActiveKeyFor(transactionID, kind)).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *reconciliationRepository) HasActivePair(transactionID, invoiceID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Reconciliation{}).
		Where("transaction_id = ? AND invoice_id = ? AND status IN ?",
			transactionID, invoiceID,
			[]models.ReconciliationStatus{models.ReconciliationStatusPending, models.ReconciliationStatusValidated}).
		Count(&count).Error
	return count > 0, err
}

func (r *reconciliationRepository) ActiveEntryIDs(companyID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Reconciliation{}).
		Where("company_id = ? AND entry_id IS NOT NULL AND status IN ?", companyID,
			[]models.ReconciliationStatus{models.ReconciliationStatusPending, models.ReconciliationStatusValidated}).
		Pluck("entry_id", &ids).Error
	return ids, err
}

func (r *reconciliationRepository) SumValidatedForInvoice(invoiceID uint) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.Model(&models.Reconciliation{}).
		Where("invoice_id = ? AND status = ?", invoiceID, models.ReconciliationStatusValidated).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
