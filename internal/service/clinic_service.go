package service

import (
	"errors"
	"fmt"
	"strings"

	"clinicsite-backend/internal/models"
	"clinicsite-backend/internal/repository"
	"clinicsite-backend/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrClinicNotFound = errors.New("clinic not found")
	ErrSubdomainInUse = errors.New("subdomain is already in use")
	ErrInvalidClinic  = errors.New("clinic name and subdomain are required")
)

type ClinicService struct {
	clinicRepo repository.ClinicRepository
}

func NewClinicService(clinicRepo repository.ClinicRepository) *ClinicService {
	return &ClinicService{clinicRepo: clinicRepo}
}

func (s *ClinicService) Create(req models.CreateClinicRequest) (*models.Clinic, error) {
	name := strings.TrimSpace(req.Name)
	subdomain := utils.NormalizeSlug(req.Subdomain)
	if name == "" || subdomain == "" {
		return nil, ErrInvalidClinic
	}

	exists, err := s.clinicRepo.ExistsBySubdomain(subdomain)
	if err != nil {
		return nil, fmt.Errorf("failed to check subdomain: %w", err)
	}
	if exists {
		return nil, ErrSubdomainInUse
	}

	clinic := &models.Clinic{
		Name:         name,
		Subdomain:    subdomain,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
	}
	if err := s.clinicRepo.Create(clinic); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", err)
	}
	return clinic, nil
}

func (s *ClinicService) GetByID(id uint) (*models.Clinic, error) {
	clinic, err := s.clinicRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClinicNotFound
		}
		return nil, err
	}
	return clinic, nil
}

func (s *ClinicService) GetBySubdomain(subdomain string) (*models.Clinic, error) {
	clinic, err := s.clinicRepo.GetBySubdomain(utils.NormalizeSlug(subdomain))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClinicNotFound
		}
		return nil, err
	}
	return clinic, nil
}

func (s *ClinicService) GetAll() ([]models.Clinic, error) {
	return s.clinicRepo.GetAll()
}
