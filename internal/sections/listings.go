package sections

// ServiceItem is one entry in a services listing.
type ServiceItem struct {
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	IconURL     string        `json:"icon_url,omitempty"`
}

type ServicesContent struct {
	Heading LocalizedText `json:"heading"`
	Items   []ServiceItem `json:"items"`
}

func (c *ServicesContent) SectionType() Type { return TypeServices }

func (c *ServicesContent) Clone() Content {
	cloned := *c
	cloned.Items = append([]ServiceItem(nil), c.Items...)
	return &cloned
}

// DoctorItem is one entry in a doctors listing.
type DoctorItem struct {
	Name       string        `json:"name"`
	Speciality LocalizedText `json:"speciality"`
	PhotoURL   string        `json:"photo_url,omitempty"`
	NMCNumber  string        `json:"nmc_number,omitempty"`
}

type DoctorsContent struct {
	Heading LocalizedText `json:"heading"`
	Doctors []DoctorItem  `json:"doctors"`
}

func (c *DoctorsContent) SectionType() Type { return TypeDoctors }

func (c *DoctorsContent) Clone() Content {
	cloned := *c
	cloned.Doctors = append([]DoctorItem(nil), c.Doctors...)
	return &cloned
}

// ReviewsContent configures the patient reviews block. Review records live in
// their own subsystem; the section only selects how many to show.
type ReviewsContent struct {
	Heading LocalizedText `json:"heading"`
	Limit   int           `json:"limit"`
}

func (c *ReviewsContent) SectionType() Type { return TypeReviews }

func (c *ReviewsContent) Clone() Content {
	cloned := *c
	return &cloned
}

func RegisterServices(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeServices,
		Name:        "Services",
		Description: "Grid of services the clinic offers",
		Icon:        "grid",
		Category:    "listing",
		DefaultStyle: StyleProps{
			Background: "none",
			Padding:    PaddingMedium,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &ServicesContent{} },
		DefaultContent: func() Content {
			return &ServicesContent{Heading: LocalizedText{EN: "Our Services"}}
		},
		Validate: func(content Content) []FieldError {
			c, ok := content.(*ServicesContent)
			if !ok {
				return []FieldError{{Field: "content", Message: "unexpected payload"}}
			}
			var errs []FieldError
			for i, item := range c.Items {
				if item.Name.EN == "" {
					errs = append(errs, FieldError{
						Field:   fieldAt("items", i, "name.en"),
						Message: "service name is required",
					})
				}
			}
			return errs
		},
	})
}

func RegisterDoctors(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeDoctors,
		Name:        "Doctors",
		Description: "Profiles of the clinic's doctors",
		Icon:        "users",
		Category:    "listing",
		DefaultStyle: StyleProps{
			Background: "muted",
			Padding:    PaddingMedium,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &DoctorsContent{} },
		DefaultContent: func() Content {
			return &DoctorsContent{Heading: LocalizedText{EN: "Our Doctors"}}
		},
		Validate: func(content Content) []FieldError {
			c, ok := content.(*DoctorsContent)
			if !ok {
				return []FieldError{{Field: "content", Message: "unexpected payload"}}
			}
			var errs []FieldError
			for i, doc := range c.Doctors {
				if doc.Name == "" {
					errs = append(errs, FieldError{
						Field:   fieldAt("doctors", i, "name"),
						Message: "doctor name is required",
					})
				}
			}
			return errs
		},
	})
}

func RegisterReviews(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeReviews,
		Name:        "Reviews",
		Description: "Recent patient reviews",
		Icon:        "star",
		Category:    "listing",
		DefaultStyle: StyleProps{
			Background: "none",
			Padding:    PaddingMedium,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &ReviewsContent{} },
		DefaultContent: func() Content {
			return &ReviewsContent{Heading: LocalizedText{EN: "What patients say"}, Limit: 6}
		},
	})
}
