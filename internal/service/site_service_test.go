package service

import (
	"encoding/json"
	"errors"
	"testing"

	"clinicsite-backend/internal/builder"
	"clinicsite-backend/internal/models"

	"gorm.io/gorm"
)

type fakeSiteRepo struct {
	records   map[uint]*models.SiteRecord
	publishes int
}

func newFakeSiteRepo() *fakeSiteRepo {
	return &fakeSiteRepo{records: make(map[uint]*models.SiteRecord)}
}

func (r *fakeSiteRepo) Create(record *models.SiteRecord) error {
	if _, exists := r.records[record.ClinicID]; exists {
		return errors.New("duplicate key")
	}
	copied := *record
	r.records[record.ClinicID] = &copied
	return nil
}

func (r *fakeSiteRepo) GetByClinicID(clinicID uint) (*models.SiteRecord, error) {
	record, ok := r.records[clinicID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakeSiteRepo) UpdateDocument(clinicID uint, expectedRevision int64, document models.SiteDocument) (int64, error) {
	record, ok := r.records[clinicID]
	if !ok || record.Revision != expectedRevision {
		return 0, nil
	}
	record.Document = document
	record.Revision++
	return 1, nil
}

func (r *fakeSiteRepo) Publish(record *models.SiteRecord) error {
	stored, ok := r.records[record.ClinicID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.PublishedDocument = record.PublishedDocument
	stored.PublishedRevision = record.PublishedRevision
	stored.PublishedAt = record.PublishedAt
	r.publishes++
	return nil
}

type fakeClinicRepo struct {
	clinics map[uint]*models.Clinic
}

func newFakeClinicRepo(ids ...uint) *fakeClinicRepo {
	r := &fakeClinicRepo{clinics: make(map[uint]*models.Clinic)}
	for _, id := range ids {
		r.clinics[id] = &models.Clinic{ID: id, Name: "Clinic", Subdomain: "clinic"}
	}
	return r
}

func (r *fakeClinicRepo) Create(clinic *models.Clinic) error { r.clinics[clinic.ID] = clinic; return nil }
func (r *fakeClinicRepo) Update(clinic *models.Clinic) error { r.clinics[clinic.ID] = clinic; return nil }

func (r *fakeClinicRepo) GetByID(id uint) (*models.Clinic, error) {
	clinic, ok := r.clinics[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clinic, nil
}

func (r *fakeClinicRepo) GetBySubdomain(subdomain string) (*models.Clinic, error) {
	for _, clinic := range r.clinics {
		if clinic.Subdomain == subdomain {
			return clinic, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeClinicRepo) ExistsBySubdomain(subdomain string) (bool, error) {
	_, err := r.GetBySubdomain(subdomain)
	return err == nil, nil
}

func (r *fakeClinicRepo) GetAll() ([]models.Clinic, error) { return nil, nil }

func newTestSiteService(clinicIDs ...uint) (*SiteService, *fakeSiteRepo) {
	siteRepo := newFakeSiteRepo()
	return NewSiteService(siteRepo, newFakeClinicRepo(clinicIDs...), nil), siteRepo
}

func validDocument(t *testing.T, clinicID uint) json.RawMessage {
	t.Helper()
	document, err := json.Marshal(builder.NewSite(clinicID))
	if err != nil {
		t.Fatalf("failed to marshal site: %v", err)
	}
	return document
}

func TestLoadCreatesDefaultSite(t *testing.T) {
	s, _ := newTestSiteService(1)

	record, err := s.Load(1)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if record.Revision != 1 {
		t.Fatalf("expected revision 1, got %d", record.Revision)
	}

	var site builder.Site
	if err := json.Unmarshal(record.Document, &site); err != nil {
		t.Fatalf("default document does not decode: %v", err)
	}
	if site.HomePage() == nil {
		t.Fatal("default site must have a home page")
	}
}

func TestLoadUnknownClinic(t *testing.T) {
	s, _ := newTestSiteService()

	if _, err := s.Load(9); !errors.Is(err, ErrSiteNotFound) {
		t.Fatalf("expected ErrSiteNotFound, got %v", err)
	}
}

func TestSaveAdvancesRevision(t *testing.T) {
	s, _ := newTestSiteService(1)
	s.Load(1)

	record, err := s.Save(1, models.SaveSiteRequest{Revision: 1, Document: validDocument(t, 1)})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if record.Revision != 2 {
		t.Fatalf("expected revision 2, got %d", record.Revision)
	}
}

func TestSaveStaleRevisionConflicts(t *testing.T) {
	s, _ := newTestSiteService(1)
	s.Load(1)
	s.Save(1, models.SaveSiteRequest{Revision: 1, Document: validDocument(t, 1)})

	_, err := s.Save(1, models.SaveSiteRequest{Revision: 1, Document: validDocument(t, 1)})
	if !errors.Is(err, ErrRevisionConflict) {
		t.Fatalf("expected ErrRevisionConflict, got %v", err)
	}
}

func TestSaveRejectsMalformedDocument(t *testing.T) {
	s, _ := newTestSiteService(1)
	s.Load(1)

	cases := []json.RawMessage{
		json.RawMessage(`{"pages": "nope"}`),
		json.RawMessage(`{"clinic_id": 1, "pages": []}`), // no home page
	}
	for _, document := range cases {
		if _, err := s.Save(1, models.SaveSiteRequest{Revision: 1, Document: document}); !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("expected ErrInvalidDocument for %s, got %v", document, err)
		}
	}
}

func TestPublishFreezesDraft(t *testing.T) {
	s, repo := newTestSiteService(1)
	s.Load(1)

	record, err := s.Publish(1)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if record.PublishedAt == nil || record.PublishedRevision != 1 {
		t.Fatalf("publish state not set: %+v", record)
	}

	document, publishedAt, err := s.Published(1)
	if err != nil {
		t.Fatalf("Published failed: %v", err)
	}
	if len(document) == 0 || publishedAt == nil {
		t.Fatal("published document missing")
	}

	// Saving a new draft must not change the live copy until the next publish.
	s.Save(1, models.SaveSiteRequest{Revision: 1, Document: validDocument(t, 1)})
	stored, _ := repo.GetByClinicID(1)
	if stored.PublishedRevision != 1 {
		t.Fatal("saving a draft must not republish")
	}
}

func TestPublishIsIdempotent(t *testing.T) {
	s, repo := newTestSiteService(1)
	s.Load(1)

	first, _ := s.Publish(1)
	second, err := s.Publish(1)
	if err != nil {
		t.Fatalf("second Publish failed: %v", err)
	}

	if repo.publishes != 1 {
		t.Fatalf("expected one repository publish, got %d", repo.publishes)
	}
	if !second.PublishedAt.Equal(*first.PublishedAt) {
		t.Fatal("re-publishing the same revision must not move the publish time")
	}
}

func TestPublishedBeforePublish(t *testing.T) {
	s, _ := newTestSiteService(1)
	s.Load(1)

	if _, _, err := s.Published(1); !errors.Is(err, ErrNotPublished) {
		t.Fatalf("expected ErrNotPublished, got %v", err)
	}
}
