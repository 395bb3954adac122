package builder

import (
	"clinicsite-backend/internal/sections"
	"clinicsite-backend/pkg/utils"
)

// reservedSlugs can never be page slugs: they collide with routing for the
// home page, the API and static assets.
var reservedSlugs = map[string]bool{
	"home":    true,
	"preview": true,
	"api":     true,
	"admin":   true,
	"uploads": true,
	"assets":  true,
}

func slugReserved(slug string) bool {
	return reservedSlugs[slug]
}

// CreatePage adds a blank non-home page. The slug candidate is normalized
// (lowercased, characters outside [a-z0-9-] stripped); creation is rejected
// when the normalized slug is empty, reserved, or collides with another page.
// One site-level history commit on success.
func (e *Editor) CreatePage(slugCandidate, titleEN, titleNE string) (string, error) {
	if err := e.Flush(); err != nil {
		return "", err
	}

	slug, err := e.validateSlug(slugCandidate, "")
	if err != nil {
		return "", err
	}
	if titleEN == "" {
		return "", newValidationError("title.en", "title is required")
	}

	page := PageDocument{
		ID:      newPageID(),
		Slug:    &slug,
		Title:   sections.LocalizedText{EN: titleEN, NE: titleNE},
		Enabled: true,
	}
	e.site.Pages = append(e.site.Pages, page)

	e.activePageID = page.ID
	e.selectedSectionID = ""
	e.commit()
	return page.ID, nil
}

// DeletePage removes a non-home page. Deleting the active page switches the
// editor back to home. The home document itself is protected.
func (e *Editor) DeletePage(pageID string) error {
	if err := e.Flush(); err != nil {
		return err
	}

	idx := -1
	for i := range e.site.Pages {
		if e.site.Pages[i].ID == pageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPageNotFound
	}
	if e.site.Pages[idx].IsHome() {
		return ErrHomePageProtected
	}

	e.site.Pages = append(e.site.Pages[:idx], e.site.Pages[idx+1:]...)

	if e.activePageID == pageID {
		if home := e.site.HomePage(); home != nil {
			e.activePageID = home.ID
		}
		e.selectedSectionID = ""
	}
	e.commit()
	return nil
}

// RenamePageOptions carries the optional fields of a rename. Nil fields are
// left unchanged.
type RenamePageOptions struct {
	TitleEN *string
	TitleNE *string
	Slug    *string
}

// RenamePage updates titles and/or slug of a page. Slug validation matches
// CreatePage, except the page's own current slug is not a collision. The home
// page can be retitled but keeps its nil slug.
func (e *Editor) RenamePage(pageID string, opts RenamePageOptions) error {
	if err := e.Flush(); err != nil {
		return err
	}

	page := e.site.Page(pageID)
	if page == nil {
		return ErrPageNotFound
	}

	if opts.Slug != nil {
		if page.IsHome() {
			return newValidationError("slug", "the home page has no slug")
		}
		slug, err := e.validateSlug(*opts.Slug, *page.Slug)
		if err != nil {
			return err
		}
		page.Slug = &slug
	}
	if opts.TitleEN != nil {
		if *opts.TitleEN == "" {
			return newValidationError("title.en", "title is required")
		}
		page.Title.EN = *opts.TitleEN
	}
	if opts.TitleNE != nil {
		page.Title.NE = *opts.TitleNE
	}

	e.commit()
	return nil
}

// SetPageEnabled toggles whether a page is served on the public site.
func (e *Editor) SetPageEnabled(pageID string, enabled bool) error {
	if err := e.Flush(); err != nil {
		return err
	}

	page := e.site.Page(pageID)
	if page == nil {
		return ErrPageNotFound
	}

	page.Enabled = enabled
	e.commit()
	return nil
}

// CreateFromTemplate instantiates a template's section list as a new page.
// The slug derives from the template name, disambiguated with a numeric
// suffix on collision.
func (e *Editor) CreateFromTemplate(templateID string) (string, error) {
	if err := e.Flush(); err != nil {
		return "", err
	}

	tmpl, ok := templateByID(templateID)
	if !ok {
		return "", ErrTemplateNotFound
	}

	slug := templateSlug(e.site, tmpl)
	page := PageDocument{
		ID:      newPageID(),
		Slug:    &slug,
		Title:   tmpl.Title,
		Enabled: true,
	}
	for _, typ := range tmpl.SectionTypes {
		if _, err := page.AddSection(e.registry, typ, -1); err != nil {
			return "", err
		}
	}

	e.site.Pages = append(e.site.Pages, page)
	e.activePageID = page.ID
	e.selectedSectionID = ""
	e.commit()
	return page.ID, nil
}

// validateSlug normalizes the candidate and checks emptiness, reserved words
// and collisions. currentSlug excludes the page's own slug during rename.
func (e *Editor) validateSlug(candidate, currentSlug string) (string, error) {
	slug := utils.NormalizeSlug(candidate)
	if slug == "" {
		return "", newValidationError("slug", "slug cannot be empty")
	}
	if slugReserved(slug) {
		return "", newValidationError("slug", "slug is reserved")
	}
	if slug != currentSlug && e.site.PageBySlug(slug) != nil {
		return "", newValidationError("slug", "slug is already in use")
	}
	return slug, nil
}
