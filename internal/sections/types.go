package sections

import (
	"encoding/json"
	"fmt"
)

// Type identifies one of the fixed set of section kinds a clinic page can
// contain. The set is closed: content payloads are decoded by dispatching on
// this value and an unknown type is a schema error, not user input.
type Type string

const (
	TypeHero     Type = "hero"
	TypeText     Type = "text"
	TypeServices Type = "services"
	TypeDoctors  Type = "doctors"
	TypeGallery  Type = "gallery"
	TypeContact  Type = "contact"
	TypeReviews  Type = "reviews"
	TypeFAQ      Type = "faq"
	TypeBooking  Type = "booking"
	TypeOPD      Type = "opd"
	TypeMap      Type = "map"
	TypeDivider  Type = "divider"
	TypeButton   Type = "button"
	TypeImage    Type = "image"
)

type Padding string

const (
	PaddingSmall  Padding = "small"
	PaddingMedium Padding = "medium"
	PaddingLarge  Padding = "large"
)

type Layout string

const (
	LayoutFull      Layout = "full"
	LayoutContained Layout = "contained"
)

// StyleProps are the presentation properties shared by every section.
type StyleProps struct {
	Background string  `json:"background"`
	Padding    Padding `json:"padding"`
	Layout     Layout  `json:"layout"`
}

// LocalizedText holds an English/Nepali string pair. English is the canonical
// value; Nepali is optional everywhere.
type LocalizedText struct {
	EN string `json:"en"`
	NE string `json:"ne,omitempty"`
}

// Content is the type-specific payload of a section. Each section type has
// exactly one concrete content struct.
type Content interface {
	SectionType() Type
	Clone() Content
}

// Section is one visual block within a page.
type Section struct {
	ID      string     `json:"id"`
	Type    Type       `json:"type"`
	Order   int        `json:"order"`
	Visible bool       `json:"visible"`
	Style   StyleProps `json:"style"`
	Content Content    `json:"content"`
}

// Clone returns a deep copy of the section, keeping the same id.
func (s Section) Clone() Section {
	cloned := s
	if s.Content != nil {
		cloned.Content = s.Content.Clone()
	}
	return cloned
}

type sectionEnvelope struct {
	ID      string          `json:"id"`
	Type    Type            `json:"type"`
	Order   int             `json:"order"`
	Visible bool            `json:"visible"`
	Style   StyleProps      `json:"style"`
	Content json.RawMessage `json:"content"`
}

// UnmarshalJSON decodes the content payload into the concrete struct for the
// section's type using the built-in registry.
func (s *Section) UnmarshalJSON(data []byte) error {
	var env sectionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	content, err := Builtin().DecodeContent(env.Type, env.Content)
	if err != nil {
		return fmt.Errorf("section %s: %w", env.ID, err)
	}

	s.ID = env.ID
	s.Type = env.Type
	s.Order = env.Order
	s.Visible = env.Visible
	s.Style = env.Style
	s.Content = content
	return nil
}

// FieldError describes a single invalid content field. Validation returns
// these as values; it never panics on user input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SchemaError indicates a section type unknown to the registry. It points at a
// schema/version mismatch between editor and backend, not at user input.
type SchemaError struct {
	Type Type
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unknown section type %q", e.Type)
}
