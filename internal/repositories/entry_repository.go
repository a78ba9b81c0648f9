package repositories

import (
	"time"

	"github.com/bigy003/Compta-sub000/internal/models"
	"gorm.io/gorm"
)

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new accounting entry repository
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(entry *models.AccountingEntry) error {
	return r.db.Create(entry).Error
}

func (r *entryRepository) GetByID(companyID, id uint) (*models.AccountingEntry, error) {
	var entry models.AccountingEntry
	err := r.db.Where("company_id = ?", companyID).First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) ListTouchingAccount(companyID uint, accountCode string, from, to *time.Time) ([]models.AccountingEntry, error) {
	query := r.db.
		Where("company_id = ?", companyID).
		Where("debit_account = ? OR credit_account = ?", accountCode, accountCode)

	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	var entries []models.AccountingEntry
	err := query.Order("date, id").Find(&entries).Error
	return entries, err
}
