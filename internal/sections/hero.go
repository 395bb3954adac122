package sections

// HeroContent is the banner block at the top of most clinic pages.
type HeroContent struct {
	Heading    LocalizedText `json:"heading"`
	Subheading LocalizedText `json:"subheading"`
	ImageURL   string        `json:"image_url"`
	CTALabel   LocalizedText `json:"cta_label"`
	CTALink    string        `json:"cta_link"`
}

func (c *HeroContent) SectionType() Type { return TypeHero }

func (c *HeroContent) Clone() Content {
	cloned := *c
	return &cloned
}

func RegisterHero(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeHero,
		Name:        "Hero",
		Description: "Large banner with heading, subheading and call to action",
		Icon:        "layout",
		Category:    "content",
		DefaultStyle: StyleProps{
			Background: "primary",
			Padding:    PaddingLarge,
			Layout:     LayoutFull,
		},
		NewContent: func() Content { return &HeroContent{} },
		DefaultContent: func() Content {
			return &HeroContent{
				Heading:  LocalizedText{EN: "Welcome to our clinic"},
				CTALabel: LocalizedText{EN: "Book an appointment"},
			}
		},
		Validate: func(content Content) []FieldError {
			c, ok := content.(*HeroContent)
			if !ok {
				return []FieldError{{Field: "content", Message: "unexpected payload"}}
			}
			var errs []FieldError
			if c.Heading.EN == "" {
				errs = append(errs, FieldError{Field: "heading.en", Message: "heading is required"})
			}
			if c.CTALabel.EN != "" && c.CTALink == "" {
				errs = append(errs, FieldError{Field: "cta_link", Message: "link is required when a label is set"})
			}
			return errs
		},
	})
}
