package sections

// TextContent carries free-form rich text authored in the WYSIWYG editor. The
// body is stored as sanitized HTML per language.
type TextContent struct {
	Body LocalizedText `json:"body"`
}

func (c *TextContent) SectionType() Type { return TypeText }

func (c *TextContent) Clone() Content {
	cloned := *c
	return &cloned
}

func RegisterText(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeText,
		Name:        "Text",
		Description: "Free-form rich text block",
		Icon:        "align-left",
		Category:    "content",
		DefaultStyle: StyleProps{
			Background: "none",
			Padding:    PaddingMedium,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &TextContent{} },
		RichText:   []string{"body"},
		Validate: func(content Content) []FieldError {
			c, ok := content.(*TextContent)
			if !ok {
				return []FieldError{{Field: "content", Message: "unexpected payload"}}
			}
			if c.Body.EN == "" {
				return []FieldError{{Field: "body.en", Message: "text body is required"}}
			}
			return nil
		},
	})
}
