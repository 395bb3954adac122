package sections

// TypeConfig describes a section type to the builder UI.
type TypeConfig struct {
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
}

// BuilderConfig is the full palette served to the builder UI: the available
// section types plus the style options every section shares.
type BuilderConfig struct {
	AvailableSections []TypeConfig `json:"available_sections"`
	PaddingOptions    []Padding    `json:"padding_options"`
	LayoutOptions     []Layout     `json:"layout_options"`
	BackgroundTokens  []string     `json:"background_tokens"`
}

// Config returns the builder palette for this registry.
func (r *Registry) Config() BuilderConfig {
	types := r.Types()

	configs := make([]TypeConfig, 0, len(types))
	for _, t := range types {
		desc, _ := r.Get(t)
		configs = append(configs, TypeConfig{
			Type:        desc.Type,
			Name:        desc.Name,
			Description: desc.Description,
			Category:    desc.Category,
			Icon:        desc.Icon,
		})
	}

	return BuilderConfig{
		AvailableSections: configs,
		PaddingOptions:    []Padding{PaddingSmall, PaddingMedium, PaddingLarge},
		LayoutOptions:     []Layout{LayoutFull, LayoutContained},
		BackgroundTokens:  []string{"none", "primary", "muted", "accent"},
	}
}
