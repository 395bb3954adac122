package sections

type MapContent struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Zoom      int           `json:"zoom"`
	Label     LocalizedText `json:"label"`
}

func (c *MapContent) SectionType() Type { return TypeMap }

func (c *MapContent) Clone() Content {
	cloned := *c
	return &cloned
}

type DividerContent struct {
	Variant string `json:"variant"` // line or space
}

func (c *DividerContent) SectionType() Type { return TypeDivider }

func (c *DividerContent) Clone() Content {
	cloned := *c
	return &cloned
}

type ButtonContent struct {
	Label   LocalizedText `json:"label"`
	URL     string        `json:"url"`
	Variant string        `json:"variant"` // primary, secondary or outline
}

func (c *ButtonContent) SectionType() Type { return TypeButton }

func (c *ButtonContent) Clone() Content {
	cloned := *c
	return &cloned
}

type ImageContent struct {
	URL     string        `json:"url"`
	Alt     LocalizedText `json:"alt"`
	Caption LocalizedText `json:"caption"`
}

func (c *ImageContent) SectionType() Type { return TypeImage }

func (c *ImageContent) Clone() Content {
	cloned := *c
	return &cloned
}

func RegisterMap(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeMap,
		Name:        "Map",
		Description: "Embedded location map",
		Icon:        "map-pin",
		Category:    "widget",
		DefaultStyle: StyleProps{
			Background: "none",
			Padding:    PaddingSmall,
			Layout:     LayoutFull,
		},
		NewContent: func() Content { return &MapContent{Zoom: 15} },
	})
}

func RegisterDivider(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeDivider,
		Name:        "Divider",
		Description: "Horizontal rule or spacer",
		Icon:        "minus",
		Category:    "layout",
		DefaultStyle: StyleProps{
			Background: "none",
			Padding:    PaddingSmall,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &DividerContent{Variant: "line"} },
	})
}

func RegisterButton(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeButton,
		Name:        "Button",
		Description: "Standalone call-to-action button",
		Icon:        "mouse-pointer",
		Category:    "content",
		DefaultStyle: StyleProps{
			Background: "none",
			Padding:    PaddingSmall,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &ButtonContent{Variant: "primary"} },
		Validate: func(content Content) []FieldError {
			c, ok := content.(*ButtonContent)
			if !ok {
				return []FieldError{{Field: "content", Message: "unexpected payload"}}
			}
			var errs []FieldError
			if c.Label.EN == "" {
				errs = append(errs, FieldError{Field: "label.en", Message: "label is required"})
			}
			if c.URL == "" {
				errs = append(errs, FieldError{Field: "url", Message: "url is required"})
			}
			return errs
		},
	})
}

func RegisterImage(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeImage,
		Name:        "Image",
		Description: "Single image with caption",
		Icon:        "image",
		Category:    "media",
		DefaultStyle: StyleProps{
			Background: "none",
			Padding:    PaddingSmall,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &ImageContent{} },
		Validate: func(content Content) []FieldError {
			c, ok := content.(*ImageContent)
			if !ok {
				return []FieldError{{Field: "content", Message: "unexpected payload"}}
			}
			if c.URL == "" {
				return []FieldError{{Field: "url", Message: "image url is required"}}
			}
			return nil
		},
	})
}
