package sections

type GalleryMode string

const (
	// GalleryAuto shows the clinic's uploaded photos newest-first.
	GalleryAuto GalleryMode = "auto"
	// GalleryManual shows an explicitly ordered photo list.
	GalleryManual GalleryMode = "manual"
)

type GalleryPhoto struct {
	URL     string        `json:"url"`
	Caption LocalizedText `json:"caption"`
}

type GalleryContent struct {
	Mode   GalleryMode    `json:"mode"`
	Photos []GalleryPhoto `json:"photos"`
}

func (c *GalleryContent) SectionType() Type { return TypeGallery }

func (c *GalleryContent) Clone() Content {
	cloned := *c
	cloned.Photos = append([]GalleryPhoto(nil), c.Photos...)
	return &cloned
}

func RegisterGallery(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeGallery,
		Name:        "Gallery",
		Description: "Photo gallery, automatic or hand-picked",
		Icon:        "image",
		Category:    "media",
		DefaultStyle: StyleProps{
			Background: "none",
			Padding:    PaddingMedium,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &GalleryContent{} },
		DefaultContent: func() Content {
			return &GalleryContent{Mode: GalleryAuto}
		},
		Validate: func(content Content) []FieldError {
			c, ok := content.(*GalleryContent)
			if !ok {
				return []FieldError{{Field: "content", Message: "unexpected payload"}}
			}
			var errs []FieldError
			if c.Mode != GalleryAuto && c.Mode != GalleryManual {
				errs = append(errs, FieldError{Field: "mode", Message: "mode must be auto or manual"})
			}
			if c.Mode == GalleryManual {
				for i, photo := range c.Photos {
					if photo.URL == "" {
						errs = append(errs, FieldError{
							Field:   fieldAt("photos", i, "url"),
							Message: "photo url is required",
						})
					}
				}
			}
			return errs
		},
	})
}
