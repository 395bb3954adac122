package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinicsite-backend/internal/builder"
	"clinicsite-backend/internal/models"
	"clinicsite-backend/internal/repository"
	"clinicsite-backend/pkg/cache"
	"clinicsite-backend/pkg/logger"

	"gorm.io/gorm"
)

var (
	ErrSiteNotFound     = errors.New("site not found")
	ErrRevisionConflict = errors.New("site was modified by another session")
	ErrNotPublished     = errors.New("site has not been published")
	ErrInvalidDocument  = errors.New("site document is malformed")
)

// SiteService owns the draft/published lifecycle of clinic site documents. The
// draft is saved wholesale under an optimistic revision check; publishing
// freezes the current draft for the public renderer.
type SiteService struct {
	siteRepo   repository.SiteRepository
	clinicRepo repository.ClinicRepository
	cache      *cache.Cache
}

func NewSiteService(siteRepo repository.SiteRepository, clinicRepo repository.ClinicRepository, cacheService *cache.Cache) *SiteService {
	return &SiteService{
		siteRepo:   siteRepo,
		clinicRepo: clinicRepo,
		cache:      cacheService,
	}
}

// Load returns the clinic's draft document and revision, creating a fresh
// single-page site on first access.
func (s *SiteService) Load(clinicID uint) (*models.SiteRecord, error) {
	record, err := s.siteRepo.GetByClinicID(clinicID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load site: %w", err)
	}

	if _, err := s.clinicRepo.GetByID(clinicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("failed to load clinic: %w", err)
	}

	document, err := json.Marshal(builder.NewSite(clinicID))
	if err != nil {
		return nil, fmt.Errorf("failed to build default site: %w", err)
	}

	record = &models.SiteRecord{
		ClinicID: clinicID,
		Revision: 1,
		Document: models.SiteDocument(document),
	}
	if err := s.siteRepo.Create(record); err != nil {
		// Another request may have created it concurrently.
		if existing, getErr := s.siteRepo.GetByClinicID(clinicID); getErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create site: %w", err)
	}

	logger.Info("Created default site", map[string]interface{}{"clinic_id": clinicID})
	return record, nil
}

// Save replaces the draft document. The stored revision must still equal
// req.Revision or the save is rejected with ErrRevisionConflict; the server
// never merges documents.
func (s *SiteService) Save(clinicID uint, req models.SaveSiteRequest) (*models.SiteRecord, error) {
	var site builder.Site
	if err := json.Unmarshal(req.Document, &site); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if site.HomePage() == nil {
		return nil, fmt.Errorf("%w: missing home page", ErrInvalidDocument)
	}

	rows, err := s.siteRepo.UpdateDocument(clinicID, req.Revision, models.SiteDocument(req.Document))
	if err != nil {
		return nil, fmt.Errorf("failed to save site: %w", err)
	}
	if rows == 0 {
		if _, getErr := s.siteRepo.GetByClinicID(clinicID); getErr != nil {
			if errors.Is(getErr, gorm.ErrRecordNotFound) {
				return nil, ErrSiteNotFound
			}
			return nil, fmt.Errorf("failed to load site: %w", getErr)
		}
		return nil, ErrRevisionConflict
	}

	if s.cache != nil {
		s.cache.InvalidateDraftSite(clinicID)
	}

	record, err := s.siteRepo.GetByClinicID(clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload site: %w", err)
	}
	return record, nil
}

// Publish freezes the current draft as the live document. Re-publishing an
// already-published revision is a no-op that reports success.
func (s *SiteService) Publish(clinicID uint) (*models.SiteRecord, error) {
	record, err := s.siteRepo.GetByClinicID(clinicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("failed to load site: %w", err)
	}

	if record.PublishedRevision == record.Revision && record.PublishedAt != nil {
		return record, nil
	}

	now := time.Now().UTC()
	record.PublishedDocument = record.Document
	record.PublishedRevision = record.Revision
	record.PublishedAt = &now

	if err := s.siteRepo.Publish(record); err != nil {
		return nil, fmt.Errorf("failed to publish site: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidatePublishedSite(clinicID)
		s.cache.CachePublishedSite(clinicID, record.PublishedDocument)
	}

	logger.Info("Published site", map[string]interface{}{
		"clinic_id": clinicID,
		"revision":  record.Revision,
	})
	return record, nil
}

// Published returns the live document for the public renderer.
func (s *SiteService) Published(clinicID uint) (models.SiteDocument, *time.Time, error) {
	if s.cache != nil {
		var document models.SiteDocument
		if err := s.cache.GetCachedPublishedSite(clinicID, &document); err == nil && len(document) > 0 {
			return document, nil, nil
		}
	}

	record, err := s.siteRepo.GetByClinicID(clinicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSiteNotFound
		}
		return nil, nil, fmt.Errorf("failed to load site: %w", err)
	}
	if record.PublishedAt == nil || len(record.PublishedDocument) == 0 {
		return nil, nil, ErrNotPublished
	}

	if s.cache != nil {
		s.cache.CachePublishedSite(clinicID, record.PublishedDocument)
	}

	return record.PublishedDocument, record.PublishedAt, nil
}
