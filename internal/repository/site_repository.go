package repository

import (
	"clinicsite-backend/internal/models"

	"gorm.io/gorm"
)

type SiteRepository interface {
	Create(record *models.SiteRecord) error
	GetByClinicID(clinicID uint) (*models.SiteRecord, error)
	// UpdateDocument replaces the draft document iff the stored revision still
	// matches expectedRevision. Returns the number of rows updated so the
	// caller can distinguish a conflict from success.
	UpdateDocument(clinicID uint, expectedRevision int64, document models.SiteDocument) (int64, error)
	Publish(record *models.SiteRecord) error
}

type siteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) SiteRepository {
	return &siteRepository{db: db}
}

func (r *siteRepository) Create(record *models.SiteRecord) error {
	return r.db.Create(record).Error
}

func (r *siteRepository) GetByClinicID(clinicID uint) (*models.SiteRecord, error) {
	var record models.SiteRecord
	if err := r.db.Where("clinic_id = ?", clinicID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *siteRepository) UpdateDocument(clinicID uint, expectedRevision int64, document models.SiteDocument) (int64, error) {
	result := r.db.Model(&models.SiteRecord{}).
		Where("clinic_id = ? AND revision = ?", clinicID, expectedRevision).
		Updates(map[string]interface{}{
			"document": document,
			"revision": gorm.Expr("revision + 1"),
		})
	return result.RowsAffected, result.Error
}

func (r *siteRepository) Publish(record *models.SiteRecord) error {
	return r.db.Model(&models.SiteRecord{}).
		Where("clinic_id = ?", record.ClinicID).
		Updates(map[string]interface{}{
			"published_document": record.PublishedDocument,
			"published_revision": record.PublishedRevision,
			"published_at":       record.PublishedAt,
		}).Error
}
