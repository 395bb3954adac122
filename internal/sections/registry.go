package sections

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Descriptor declares everything the builder needs to know about one section
// type: UI metadata, style and content defaults, the concrete content struct,
// and the publish-time validation rules.
type Descriptor struct {
	Type        Type
	Name        string
	Description string
	Icon        string
	Category    string

	DefaultStyle   StyleProps
	NewContent     func() Content
	DefaultContent func() Content
	Validate       func(Content) []FieldError

	// RichText lists top-level content fields carrying user-authored HTML.
	// The editor sanitizes these before merging an edit into the document.
	RichText []string
}

// Registry stores the mapping between section types and their descriptors.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[Type]Descriptor
}

// NewRegistry creates an empty section registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[Type]Descriptor)}
}

// Register adds a descriptor under its normalised type. It returns an error
// when the descriptor is incomplete.
func (r *Registry) Register(desc Descriptor) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}

	desc.Type = Type(strings.TrimSpace(strings.ToLower(string(desc.Type))))
	if desc.Type == "" {
		return fmt.Errorf("section type is empty")
	}
	if desc.NewContent == nil {
		return fmt.Errorf("NewContent is nil for type %s", desc.Type)
	}
	if desc.DefaultContent == nil {
		desc.DefaultContent = desc.NewContent
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.descriptors == nil {
		r.descriptors = make(map[Type]Descriptor)
	}
	r.descriptors[desc.Type] = desc
	return nil
}

// MustRegister registers the descriptor and panics if registration fails.
func (r *Registry) MustRegister(desc Descriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Get retrieves the descriptor for the provided section type if it exists.
func (r *Registry) Get(sectionType Type) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}

	sectionType = Type(strings.TrimSpace(strings.ToLower(string(sectionType))))

	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descriptors[sectionType]
	return desc, ok
}

// Types returns all registered types in stable order.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]Type, 0, len(r.descriptors))
	for t := range r.descriptors {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Defaults returns a fresh section of the given type with a new id, the
// registry default style and placeholder content. Order is left unset; the
// document assigns it on insert.
func (r *Registry) Defaults(sectionType Type) (Section, error) {
	desc, ok := r.Get(sectionType)
	if !ok {
		return Section{}, &SchemaError{Type: sectionType}
	}

	return Section{
		ID:      uuid.New().String(),
		Type:    desc.Type,
		Visible: true,
		Style:   desc.DefaultStyle,
		Content: desc.DefaultContent(),
	}, nil
}

// Validate applies the publish-time rules for the given type. A nil result
// means the content is acceptable. Unknown types return a SchemaError since
// they indicate a version mismatch rather than bad user input.
func (r *Registry) Validate(sectionType Type, content Content) ([]FieldError, error) {
	desc, ok := r.Get(sectionType)
	if !ok {
		return nil, &SchemaError{Type: sectionType}
	}
	if desc.Validate == nil {
		return nil, nil
	}
	return desc.Validate(content), nil
}

// DecodeContent unmarshals a raw content payload into the concrete struct for
// the given type. Empty payloads decode to the zero content.
func (r *Registry) DecodeContent(sectionType Type, raw json.RawMessage) (Content, error) {
	desc, ok := r.Get(sectionType)
	if !ok {
		return nil, &SchemaError{Type: sectionType}
	}

	content := desc.NewContent()
	if len(raw) == 0 || string(raw) == "null" {
		return content, nil
	}
	if err := json.Unmarshal(raw, content); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", sectionType, err)
	}
	return content, nil
}

var (
	builtinOnce sync.Once
	builtin     *Registry
)

// Builtin returns the registry pre-populated with all built-in section types.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		builtin = NewRegistry()
		RegisterDefaults(builtin)
	})
	return builtin
}
