package builder

import (
	"encoding/json"

	"github.com/google/uuid"

	"clinicsite-backend/internal/sections"
)

// Site is the full set of a clinic's page documents plus the sibling records
// (navbar, footer, theme) that are edited by separate panels. Navbar and
// footer are carried as opaque JSON; they version together with the pages but
// have their own schemas.
type Site struct {
	ClinicID uint            `json:"clinic_id"`
	ThemeID  string          `json:"theme_id"`
	Navbar   json.RawMessage `json:"navbar,omitempty"`
	Footer   json.RawMessage `json:"footer,omitempty"`
	Pages    []PageDocument  `json:"pages"`
}

// NewSite creates a site with the single implicit home page every clinic has.
func NewSite(clinicID uint) *Site {
	return &Site{
		ClinicID: clinicID,
		ThemeID:  "default",
		Pages: []PageDocument{
			{
				ID:      newPageID(),
				Slug:    nil,
				Title:   sections.LocalizedText{EN: "Home"},
				Enabled: true,
			},
		},
	}
}

// HomePage returns the page with a nil slug. Every well-formed site has
// exactly one.
func (s *Site) HomePage() *PageDocument {
	for i := range s.Pages {
		if s.Pages[i].IsHome() {
			return &s.Pages[i]
		}
	}
	return nil
}

// Page returns the page with the given id, or nil.
func (s *Site) Page(pageID string) *PageDocument {
	for i := range s.Pages {
		if s.Pages[i].ID == pageID {
			return &s.Pages[i]
		}
	}
	return nil
}

// PageBySlug returns the non-home page with the given slug, or nil.
func (s *Site) PageBySlug(slug string) *PageDocument {
	for i := range s.Pages {
		if s.Pages[i].Slug != nil && *s.Pages[i].Slug == slug {
			return &s.Pages[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the site.
func (s *Site) Clone() *Site {
	cloned := *s
	cloned.Navbar = append(json.RawMessage(nil), s.Navbar...)
	cloned.Footer = append(json.RawMessage(nil), s.Footer...)
	cloned.Pages = make([]PageDocument, len(s.Pages))
	for i := range s.Pages {
		cloned.Pages[i] = s.Pages[i].Clone()
	}
	return &cloned
}

func newPageID() string {
	return uuid.New().String()
}

func newSectionID() string {
	return uuid.New().String()
}
