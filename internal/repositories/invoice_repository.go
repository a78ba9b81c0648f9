package repositories

import (
	"github.com/bigy003/Compta-sub000/internal/models"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

func (r *invoiceRepository) GetByID(companyID, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("Payments").Where("company_id = ?", companyID).First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) ListOpen(companyID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Preload("Payments").
		Where("company_id = ? AND status <> ?", companyID, models.InvoiceStatusPaid).
		Order("issue_date, id").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) UpdateStatus(id uint, status models.InvoiceStatus) error {
	return r.db.Model(&models.Invoice{}).Where("id = ?", id).Update("status", status).Error
}
