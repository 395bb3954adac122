package builder

import (
	"fmt"

	"clinicsite-backend/internal/sections"
	"clinicsite-backend/pkg/utils"
)

// PageTemplate is a named, fixed section list a new page can start from.
type PageTemplate struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Icon         string                 `json:"icon"`
	Title        sections.LocalizedText `json:"title"`
	SectionTypes []sections.Type        `json:"section_types"`
}

// Templates returns the page templates available to every clinic.
func Templates() []PageTemplate {
	return []PageTemplate{
		{
			ID:          "blank",
			Name:        "Blank Page",
			Description: "Start from scratch",
			Icon:        "file",
			Title:       sections.LocalizedText{EN: "New Page"},
		},
		{
			ID:          "services",
			Name:        "Services",
			Description: "Service listing with booking call-to-action",
			Icon:        "grid",
			Title:       sections.LocalizedText{EN: "Services", NE: "सेवाहरू"},
			SectionTypes: []sections.Type{
				sections.TypeHero,
				sections.TypeServices,
				sections.TypeBooking,
			},
		},
		{
			ID:          "doctors",
			Name:        "Our Doctors",
			Description: "Doctor profiles with OPD schedule",
			Icon:        "users",
			Title:       sections.LocalizedText{EN: "Our Doctors", NE: "हाम्रा चिकित्सकहरू"},
			SectionTypes: []sections.Type{
				sections.TypeDoctors,
				sections.TypeOPD,
				sections.TypeBooking,
			},
		},
		{
			ID:          "contact",
			Name:        "Contact",
			Description: "Contact details, map and enquiry form",
			Icon:        "phone",
			Title:       sections.LocalizedText{EN: "Contact", NE: "सम्पर्क"},
			SectionTypes: []sections.Type{
				sections.TypeContact,
				sections.TypeMap,
				sections.TypeFAQ,
			},
		},
		{
			ID:          "about",
			Name:        "About Us",
			Description: "Clinic story with photo gallery and reviews",
			Icon:        "info",
			Title:       sections.LocalizedText{EN: "About Us", NE: "हाम्रोबारे"},
			SectionTypes: []sections.Type{
				sections.TypeText,
				sections.TypeGallery,
				sections.TypeReviews,
			},
		},
	}
}

func templateByID(templateID string) (PageTemplate, bool) {
	for _, tmpl := range Templates() {
		if tmpl.ID == templateID {
			return tmpl, true
		}
	}
	return PageTemplate{}, false
}

// templateSlug derives a unique slug for a template instance, appending a
// numeric suffix on collision.
func templateSlug(site *Site, tmpl PageTemplate) string {
	base := utils.NormalizeSlug(tmpl.Name)
	if base == "" {
		base = "page"
	}

	slug := base
	for i := 2; site.PageBySlug(slug) != nil || slugReserved(slug); i++ {
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return slug
}
