package repository

import (
	"clinicsite-backend/internal/models"

	"gorm.io/gorm"
)

type ClinicRepository interface {
	Create(clinic *models.Clinic) error
	Update(clinic *models.Clinic) error
	GetByID(id uint) (*models.Clinic, error)
	GetBySubdomain(subdomain string) (*models.Clinic, error)
	ExistsBySubdomain(subdomain string) (bool, error)
	GetAll() ([]models.Clinic, error)
}

type clinicRepository struct {
	db *gorm.DB
}

func NewClinicRepository(db *gorm.DB) ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) Create(clinic *models.Clinic) error {
	return r.db.Create(clinic).Error
}

func (r *clinicRepository) Update(clinic *models.Clinic) error {
	return r.db.Save(clinic).Error
}

func (r *clinicRepository) GetByID(id uint) (*models.Clinic, error) {
	var clinic models.Clinic
	if err := r.db.First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) GetBySubdomain(subdomain string) (*models.Clinic, error) {
	var clinic models.Clinic
	if err := r.db.Where("subdomain = ?", subdomain).First(&clinic).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) ExistsBySubdomain(subdomain string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Clinic{}).Where("subdomain = ?", subdomain).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *clinicRepository) GetAll() ([]models.Clinic, error) {
	var clinics []models.Clinic
	if err := r.db.Order("clinics.created_at").Find(&clinics).Error; err != nil {
		return nil, err
	}
	return clinics, nil
}
