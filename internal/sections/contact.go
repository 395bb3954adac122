package sections

type ContactContent struct {
	Phone    string        `json:"phone"`
	Email    string        `json:"email"`
	Address  LocalizedText `json:"address"`
	ShowForm bool          `json:"show_form"`
}

func (c *ContactContent) SectionType() Type { return TypeContact }

func (c *ContactContent) Clone() Content {
	cloned := *c
	return &cloned
}

func RegisterContact(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeContact,
		Name:        "Contact",
		Description: "Contact details with optional enquiry form",
		Icon:        "phone",
		Category:    "widget",
		DefaultStyle: StyleProps{
			Background: "none",
			Padding:    PaddingMedium,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &ContactContent{ShowForm: true} },
		Validate: func(content Content) []FieldError {
			c, ok := content.(*ContactContent)
			if !ok {
				return []FieldError{{Field: "content", Message: "unexpected payload"}}
			}
			if c.Phone == "" && c.Email == "" {
				return []FieldError{{Field: "phone", Message: "a phone number or email is required"}}
			}
			return nil
		},
	})
}
