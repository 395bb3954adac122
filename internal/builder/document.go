package builder

import (
	"encoding/json"
	"fmt"

	"clinicsite-backend/internal/sections"
)

// PageDocument is the ordered list of sections plus metadata for one routable
// page of a clinic's microsite. A nil Slug marks the home page.
type PageDocument struct {
	ID       string                 `json:"id"`
	Slug     *string                `json:"slug"`
	Title    sections.LocalizedText `json:"title"`
	Enabled  bool                   `json:"enabled"`
	Sections []sections.Section     `json:"sections"`
}

func (d *PageDocument) IsHome() bool {
	return d.Slug == nil
}

// Direction of a single-step section move.
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
)

// AddSection inserts a fresh section of the given type at the given index and
// renumbers. atIndex < 0 or beyond the end appends.
func (d *PageDocument) AddSection(reg *sections.Registry, typ sections.Type, atIndex int) (string, error) {
	section, err := reg.Defaults(typ)
	if err != nil {
		return "", err
	}

	if atIndex < 0 || atIndex > len(d.Sections) {
		atIndex = len(d.Sections)
	}

	d.Sections = append(d.Sections, sections.Section{})
	copy(d.Sections[atIndex+1:], d.Sections[atIndex:])
	d.Sections[atIndex] = section

	d.renumber()
	return section.ID, nil
}

// RemoveSection deletes the section and closes the order gap.
func (d *PageDocument) RemoveSection(sectionID string) error {
	idx := d.sectionIndex(sectionID)
	if idx < 0 {
		return ErrSectionNotFound
	}

	d.Sections = append(d.Sections[:idx], d.Sections[idx+1:]...)
	d.renumber()
	return nil
}

// MoveSection swaps the section with its neighbour in the given direction.
// Returns false without error when the section is already at the boundary.
func (d *PageDocument) MoveSection(sectionID string, dir Direction) (bool, error) {
	idx := d.sectionIndex(sectionID)
	if idx < 0 {
		return false, ErrSectionNotFound
	}

	target := idx - 1
	if dir == MoveDown {
		target = idx + 1
	}
	if target < 0 || target >= len(d.Sections) {
		return false, nil
	}

	d.Sections[idx], d.Sections[target] = d.Sections[target], d.Sections[idx]
	d.renumber()
	return true, nil
}

// DuplicateSection deep-clones the section under a new id and inserts the copy
// immediately after the source.
func (d *PageDocument) DuplicateSection(sectionID string) (string, error) {
	idx := d.sectionIndex(sectionID)
	if idx < 0 {
		return "", ErrSectionNotFound
	}

	duplicate := d.Sections[idx].Clone()
	duplicate.ID = newSectionID()

	insertAt := idx + 1
	d.Sections = append(d.Sections, sections.Section{})
	copy(d.Sections[insertAt+1:], d.Sections[insertAt:])
	d.Sections[insertAt] = duplicate

	d.renumber()
	return duplicate.ID, nil
}

func (d *PageDocument) ToggleVisibility(sectionID string) error {
	idx := d.sectionIndex(sectionID)
	if idx < 0 {
		return ErrSectionNotFound
	}

	d.Sections[idx].Visible = !d.Sections[idx].Visible
	return nil
}

// UpdateSectionContent shallow-merges the patch into the section's content.
// The merge is permissive: required fields may be empty while the user is
// still typing. Validation is enforced separately at publish time.
func (d *PageDocument) UpdateSectionContent(reg *sections.Registry, sectionID string, patch map[string]interface{}) error {
	idx := d.sectionIndex(sectionID)
	if idx < 0 {
		return ErrSectionNotFound
	}
	section := &d.Sections[idx]

	current, err := json.Marshal(section.Content)
	if err != nil {
		return fmt.Errorf("encode current content: %w", err)
	}

	merged := make(map[string]interface{})
	if err := json.Unmarshal(current, &merged); err != nil {
		return fmt.Errorf("decode current content: %w", err)
	}
	for key, value := range patch {
		merged[key] = value
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode merged content: %w", err)
	}

	content, err := reg.DecodeContent(section.Type, raw)
	if err != nil {
		return err
	}

	section.Content = content
	return nil
}

// UpdateSectionStyle replaces the section's style properties.
func (d *PageDocument) UpdateSectionStyle(sectionID string, style sections.StyleProps) error {
	idx := d.sectionIndex(sectionID)
	if idx < 0 {
		return ErrSectionNotFound
	}

	d.Sections[idx].Style = style
	return nil
}

// Section returns the section with the given id, or nil.
func (d *PageDocument) Section(sectionID string) *sections.Section {
	idx := d.sectionIndex(sectionID)
	if idx < 0 {
		return nil
	}
	return &d.Sections[idx]
}

// ValidateForPublish runs the registry's required-field checks over every
// visible section. Hidden sections are not rendered, so they may stay
// incomplete.
func (d *PageDocument) ValidateForPublish(reg *sections.Registry) []sections.FieldError {
	var errs []sections.FieldError
	for _, section := range d.Sections {
		if !section.Visible {
			continue
		}
		fieldErrs, err := reg.Validate(section.Type, section.Content)
		if err != nil {
			errs = append(errs, sections.FieldError{
				Field:   fmt.Sprintf("sections[%d]", section.Order),
				Message: err.Error(),
			})
			continue
		}
		for _, fe := range fieldErrs {
			errs = append(errs, sections.FieldError{
				Field:   fmt.Sprintf("sections[%d].%s", section.Order, fe.Field),
				Message: fe.Message,
			})
		}
	}
	return errs
}

// Clone returns a deep copy of the document.
func (d *PageDocument) Clone() PageDocument {
	cloned := *d
	if d.Slug != nil {
		slug := *d.Slug
		cloned.Slug = &slug
	}
	cloned.Sections = make([]sections.Section, len(d.Sections))
	for i, section := range d.Sections {
		cloned.Sections[i] = section.Clone()
	}
	return cloned
}

func (d *PageDocument) sectionIndex(sectionID string) int {
	for i := range d.Sections {
		if d.Sections[i].ID == sectionID {
			return i
		}
	}
	return -1
}

// renumber restores the order invariant: section orders are exactly 0..n-1 in
// slice order after every mutation.
func (d *PageDocument) renumber() {
	for i := range d.Sections {
		d.Sections[i].Order = i
	}
}
