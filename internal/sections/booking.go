package sections

// BookingContent embeds the appointment booking widget. The booking flow
// itself belongs to the appointment subsystem; the section carries only copy.
type BookingContent struct {
	Heading LocalizedText `json:"heading"`
	Note    LocalizedText `json:"note"`
}

func (c *BookingContent) SectionType() Type { return TypeBooking }

func (c *BookingContent) Clone() Content {
	cloned := *c
	return &cloned
}

// OPDRow is one line of the outpatient department schedule.
type OPDRow struct {
	Day    string `json:"day"`
	Opens  string `json:"opens"`
	Closes string `json:"closes"`
}

type OPDContent struct {
	Heading  LocalizedText `json:"heading"`
	Schedule []OPDRow      `json:"schedule"`
}

func (c *OPDContent) SectionType() Type { return TypeOPD }

func (c *OPDContent) Clone() Content {
	cloned := *c
	cloned.Schedule = append([]OPDRow(nil), c.Schedule...)
	return &cloned
}

func RegisterBooking(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeBooking,
		Name:        "Booking",
		Description: "Appointment booking widget",
		Icon:        "calendar",
		Category:    "widget",
		DefaultStyle: StyleProps{
			Background: "primary",
			Padding:    PaddingMedium,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &BookingContent{} },
		DefaultContent: func() Content {
			return &BookingContent{Heading: LocalizedText{EN: "Book an appointment"}}
		},
	})
}

func RegisterOPD(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeOPD,
		Name:        "OPD Hours",
		Description: "Outpatient department schedule table",
		Icon:        "clock",
		Category:    "widget",
		DefaultStyle: StyleProps{
			Background: "muted",
			Padding:    PaddingMedium,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &OPDContent{} },
		DefaultContent: func() Content {
			return &OPDContent{Heading: LocalizedText{EN: "OPD Hours"}}
		},
		Validate: func(content Content) []FieldError {
			c, ok := content.(*OPDContent)
			if !ok {
				return []FieldError{{Field: "content", Message: "unexpected payload"}}
			}
			var errs []FieldError
			for i, row := range c.Schedule {
				if row.Day == "" {
					errs = append(errs, FieldError{
						Field:   fieldAt("schedule", i, "day"),
						Message: "day is required",
					})
				}
			}
			return errs
		},
	})
}
