package seed

import (
	"encoding/json"
	"errors"

	"clinicsite-backend/internal/builder"
	"clinicsite-backend/internal/models"
	"clinicsite-backend/internal/sections"
	"clinicsite-backend/internal/service"
	"clinicsite-backend/pkg/logger"
)

const demoSubdomain = "demo-clinic"

// EnsureDemoClinic creates a demo clinic with a starter site so a fresh
// install has something to open in the editor. Safe to call on every boot.
func EnsureDemoClinic(clinics *service.ClinicService, sites *service.SiteService) {
	if clinics == nil || sites == nil {
		return
	}

	if _, err := clinics.GetBySubdomain(demoSubdomain); err == nil {
		return
	} else if !errors.Is(err, service.ErrClinicNotFound) {
		logger.Error(err, "Failed to check for demo clinic", nil)
		return
	}

	clinic, err := clinics.Create(models.CreateClinicRequest{
		Name:      "Demo Clinic",
		Subdomain: demoSubdomain,
	})
	if err != nil {
		logger.Error(err, "Failed to create demo clinic", nil)
		return
	}

	record, err := sites.Load(clinic.ID)
	if err != nil {
		logger.Error(err, "Failed to create demo site", nil)
		return
	}

	document, err := demoDocument(clinic.ID)
	if err != nil {
		logger.Error(err, "Failed to build demo site", nil)
		return
	}

	if _, err := sites.Save(clinic.ID, models.SaveSiteRequest{
		Revision: record.Revision,
		Document: document,
	}); err != nil {
		logger.Error(err, "Failed to save demo site", nil)
		return
	}

	logger.Info("Seeded demo clinic", map[string]interface{}{"clinic_id": clinic.ID})
}

// demoDocument assembles the starter home page through the editor so seeded
// content goes through the same defaults and validation as user edits.
func demoDocument(clinicID uint) (json.RawMessage, error) {
	editor := builder.NewEditor(sections.Builtin(), builder.NewSite(clinicID), builder.DefaultHistoryLimit)

	for _, typ := range []sections.Type{
		sections.TypeHero,
		sections.TypeServices,
		sections.TypeContact,
	} {
		if _, err := editor.AddSection(typ, -1); err != nil {
			return nil, err
		}
	}

	if _, err := editor.CreateFromTemplate("contact"); err != nil {
		return nil, err
	}

	return json.Marshal(editor.Site())
}
