package builder

import (
	"clinicsite-backend/internal/sections"
	"clinicsite-backend/pkg/validator"
)

// Editor is the interactive editing surface over one clinic's site. All
// mutations happen synchronously on the single working copy; each committed
// edit pushes one snapshot onto the history.
type Editor struct {
	registry *sections.Registry
	site     *Site
	history  *History

	activePageID      string
	selectedSectionID string
	pending           *pendingEdit
}

// pendingEdit buffers field changes while the user is typing. It flushes to a
// single history commit on blur or settle, so undo granularity stays at "one
// meaningful edit" rather than one keystroke.
type pendingEdit struct {
	pageID    string
	sectionID string
	patch     map[string]interface{}
}

// NewEditor wraps a hydrated site. The site becomes the history baseline and
// the home page becomes the active document.
func NewEditor(reg *sections.Registry, site *Site, historyLimit int) *Editor {
	e := &Editor{
		registry: reg,
		site:     site,
		history:  NewHistory(site, historyLimit),
	}
	if home := site.HomePage(); home != nil {
		e.activePageID = home.ID
	}
	return e
}

func (e *Editor) Site() *Site {
	return e.site
}

func (e *Editor) Registry() *sections.Registry {
	return e.registry
}

// ActivePage returns the document currently open in the editor.
func (e *Editor) ActivePage() *PageDocument {
	return e.site.Page(e.activePageID)
}

// SetActivePage switches the document being edited, flushing any pending
// field edits on the old page first.
func (e *Editor) SetActivePage(pageID string) error {
	if e.site.Page(pageID) == nil {
		return ErrPageNotFound
	}
	if err := e.Flush(); err != nil {
		return err
	}
	e.activePageID = pageID
	e.selectedSectionID = ""
	return nil
}

// SelectedSection returns the id of the selected section, empty when nothing
// is selected.
func (e *Editor) SelectedSection() string {
	return e.selectedSectionID
}

// SelectSection opens the editing form for a section on the active page.
// Switching selection flushes buffered edits of the previous section.
func (e *Editor) SelectSection(sectionID string) error {
	page := e.ActivePage()
	if page == nil {
		return ErrPageNotFound
	}
	if page.Section(sectionID) == nil {
		return ErrSectionNotFound
	}
	if err := e.Flush(); err != nil {
		return err
	}
	e.selectedSectionID = sectionID
	return nil
}

// Deselect closes the section form. Buffered edits are flushed first, never
// discarded.
func (e *Editor) Deselect() error {
	if err := e.Flush(); err != nil {
		return err
	}
	e.selectedSectionID = ""
	return nil
}

// StageContentEdit buffers field changes for the selected section. Rich-text
// fields are normalized through the HTML sanitizer before buffering. Nothing
// is committed until Flush.
func (e *Editor) StageContentEdit(fields map[string]interface{}) error {
	if e.selectedSectionID == "" {
		return ErrNoSelection
	}
	page := e.ActivePage()
	if page == nil {
		return ErrPageNotFound
	}
	section := page.Section(e.selectedSectionID)
	if section == nil {
		return ErrSectionNotFound
	}

	desc, ok := e.registry.Get(section.Type)
	if !ok {
		return &sections.SchemaError{Type: section.Type}
	}

	if e.pending == nil {
		e.pending = &pendingEdit{
			pageID:    page.ID,
			sectionID: section.ID,
			patch:     make(map[string]interface{}),
		}
	}

	for key, value := range fields {
		if isRichTextField(desc, key) {
			value = sanitizeRichText(value)
		}
		e.pending.patch[key] = value
	}
	return nil
}

// Flush applies the buffered patch as one document mutation and one history
// commit. A no-op when nothing is buffered.
func (e *Editor) Flush() error {
	if e.pending == nil || len(e.pending.patch) == 0 {
		e.pending = nil
		return nil
	}

	pending := e.pending
	e.pending = nil

	page := e.site.Page(pending.pageID)
	if page == nil {
		return ErrPageNotFound
	}
	if err := page.UpdateSectionContent(e.registry, pending.sectionID, pending.patch); err != nil {
		return err
	}

	e.commit()
	return nil
}

// AddSection appends (or inserts) a fresh section on the active page and
// selects it.
func (e *Editor) AddSection(typ sections.Type, atIndex int) (string, error) {
	if err := e.Flush(); err != nil {
		return "", err
	}
	page := e.ActivePage()
	if page == nil {
		return "", ErrPageNotFound
	}

	id, err := page.AddSection(e.registry, typ, atIndex)
	if err != nil {
		return "", err
	}

	e.selectedSectionID = id
	e.commit()
	return id, nil
}

func (e *Editor) RemoveSection(sectionID string) error {
	if err := e.Flush(); err != nil {
		return err
	}
	page := e.ActivePage()
	if page == nil {
		return ErrPageNotFound
	}

	if err := page.RemoveSection(sectionID); err != nil {
		return err
	}

	if e.selectedSectionID == sectionID {
		e.selectedSectionID = ""
	}
	e.commit()
	return nil
}

// MoveSection shifts a section one step. Boundary moves are silent no-ops and
// produce no history entry.
func (e *Editor) MoveSection(sectionID string, dir Direction) error {
	if err := e.Flush(); err != nil {
		return err
	}
	page := e.ActivePage()
	if page == nil {
		return ErrPageNotFound
	}

	moved, err := page.MoveSection(sectionID, dir)
	if err != nil {
		return err
	}
	if moved {
		e.commit()
	}
	return nil
}

func (e *Editor) DuplicateSection(sectionID string) (string, error) {
	if err := e.Flush(); err != nil {
		return "", err
	}
	page := e.ActivePage()
	if page == nil {
		return "", ErrPageNotFound
	}

	id, err := page.DuplicateSection(sectionID)
	if err != nil {
		return "", err
	}

	e.commit()
	return id, nil
}

func (e *Editor) ToggleVisibility(sectionID string) error {
	if err := e.Flush(); err != nil {
		return err
	}
	page := e.ActivePage()
	if page == nil {
		return ErrPageNotFound
	}

	if err := page.ToggleVisibility(sectionID); err != nil {
		return err
	}

	e.commit()
	return nil
}

func (e *Editor) UpdateSectionStyle(sectionID string, style sections.StyleProps) error {
	if err := e.Flush(); err != nil {
		return err
	}
	page := e.ActivePage()
	if page == nil {
		return ErrPageNotFound
	}

	if err := page.UpdateSectionStyle(sectionID, style); err != nil {
		return err
	}

	e.commit()
	return nil
}

// AddGalleryPhoto appends a photo to a manual-mode gallery section. Each
// add is its own history commit.
func (e *Editor) AddGalleryPhoto(sectionID string, photo sections.GalleryPhoto) error {
	if err := e.Flush(); err != nil {
		return err
	}
	gallery, err := e.gallerySection(sectionID)
	if err != nil {
		return err
	}

	gallery.Photos = append(gallery.Photos, photo)
	e.commit()
	return nil
}

// RemoveGalleryPhoto removes the photo at the given position.
func (e *Editor) RemoveGalleryPhoto(sectionID string, index int) error {
	if err := e.Flush(); err != nil {
		return err
	}
	gallery, err := e.gallerySection(sectionID)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(gallery.Photos) {
		return newValidationError("photos", "photo index out of range")
	}
	gallery.Photos = append(gallery.Photos[:index], gallery.Photos[index+1:]...)
	e.commit()
	return nil
}

func (e *Editor) gallerySection(sectionID string) (*sections.GalleryContent, error) {
	page := e.ActivePage()
	if page == nil {
		return nil, ErrPageNotFound
	}
	section := page.Section(sectionID)
	if section == nil {
		return nil, ErrSectionNotFound
	}
	gallery, ok := section.Content.(*sections.GalleryContent)
	if !ok {
		return nil, newValidationError("content", "section is not a gallery")
	}
	if gallery.Mode != sections.GalleryManual {
		return nil, newValidationError("mode", "photos can only be managed in manual mode")
	}
	return gallery, nil
}

// Undo restores the previous snapshot. Pending edits are flushed first so the
// half-typed change becomes the entry being undone. Returns false when there
// is nothing to undo.
func (e *Editor) Undo() (bool, error) {
	if err := e.Flush(); err != nil {
		return false, err
	}

	snapshot, ok := e.history.Undo()
	if !ok {
		return false, nil
	}
	e.restore(snapshot)
	return true, nil
}

// Redo re-applies the next snapshot. Returns false at the tail.
func (e *Editor) Redo() (bool, error) {
	if err := e.Flush(); err != nil {
		return false, err
	}

	snapshot, ok := e.history.Redo()
	if !ok {
		return false, nil
	}
	e.restore(snapshot)
	return true, nil
}

func (e *Editor) CanUndo() bool {
	return e.history.CanUndo() || (e.pending != nil && len(e.pending.patch) > 0)
}

func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// History exposes the snapshot stack for inspection.
func (e *Editor) History() *History {
	return e.history
}

// ValidateForPublish checks every enabled page's visible sections against the
// registry's required-field rules.
func (e *Editor) ValidateForPublish() *ValidationError {
	var all []sections.FieldError
	for i := range e.site.Pages {
		page := &e.site.Pages[i]
		if !page.Enabled {
			continue
		}
		for _, fe := range page.ValidateForPublish(e.registry) {
			all = append(all, sections.FieldError{
				Field:   pageFieldPrefix(page) + "." + fe.Field,
				Message: fe.Message,
			})
		}
	}
	if len(all) == 0 {
		return nil
	}
	return &ValidationError{Fields: all}
}

// restore swaps in a history snapshot, repairing active page and selection if
// the snapshot no longer contains them.
func (e *Editor) restore(snapshot *Site) {
	e.site = snapshot

	if e.site.Page(e.activePageID) == nil {
		if home := e.site.HomePage(); home != nil {
			e.activePageID = home.ID
		} else {
			e.activePageID = ""
		}
		e.selectedSectionID = ""
	}
	if e.selectedSectionID != "" {
		page := e.ActivePage()
		if page == nil || page.Section(e.selectedSectionID) == nil {
			e.selectedSectionID = ""
		}
	}
}

func (e *Editor) commit() {
	e.history.Commit(e.site)
}

func pageFieldPrefix(page *PageDocument) string {
	if page.Slug == nil {
		return "pages[home]"
	}
	return "pages[" + *page.Slug + "]"
}

func isRichTextField(desc sections.Descriptor, key string) bool {
	for _, field := range desc.RichText {
		if field == key {
			return true
		}
	}
	return false
}

// sanitizeRichText cleans every string leaf under a rich-text field. Values
// arrive as decoded JSON, so they may be plain strings, localized objects or
// lists of objects.
func sanitizeRichText(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return validator.SanitizeHTML(v)
	case map[string]interface{}:
		cleaned := make(map[string]interface{}, len(v))
		for key, inner := range v {
			cleaned[key] = sanitizeRichText(inner)
		}
		return cleaned
	case []interface{}:
		cleaned := make([]interface{}, len(v))
		for i, inner := range v {
			cleaned[i] = sanitizeRichText(inner)
		}
		return cleaned
	default:
		return value
	}
}
