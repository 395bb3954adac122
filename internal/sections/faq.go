package sections

type FAQItem struct {
	Question LocalizedText `json:"question"`
	Answer   LocalizedText `json:"answer"`
}

// FAQContent is an ordered list of question/answer pairs. Answers are rich
// text; questions are plain strings.
type FAQContent struct {
	Heading LocalizedText `json:"heading"`
	Items   []FAQItem     `json:"items"`
}

func (c *FAQContent) SectionType() Type { return TypeFAQ }

func (c *FAQContent) Clone() Content {
	cloned := *c
	cloned.Items = append([]FAQItem(nil), c.Items...)
	return &cloned
}

func RegisterFAQ(reg *Registry) {
	reg.MustRegister(Descriptor{
		Type:        TypeFAQ,
		Name:        "FAQ",
		Description: "Frequently asked questions",
		Icon:        "help-circle",
		Category:    "content",
		DefaultStyle: StyleProps{
			Background: "none",
			Padding:    PaddingMedium,
			Layout:     LayoutContained,
		},
		NewContent: func() Content { return &FAQContent{} },
		DefaultContent: func() Content {
			return &FAQContent{Heading: LocalizedText{EN: "Frequently Asked Questions"}}
		},
		RichText: []string{"items"},
		Validate: func(content Content) []FieldError {
			c, ok := content.(*FAQContent)
			if !ok {
				return []FieldError{{Field: "content", Message: "unexpected payload"}}
			}
			var errs []FieldError
			for i, item := range c.Items {
				if item.Question.EN == "" {
					errs = append(errs, FieldError{
						Field:   fieldAt("items", i, "question.en"),
						Message: "question is required",
					})
				}
				if item.Answer.EN == "" {
					errs = append(errs, FieldError{
						Field:   fieldAt("items", i, "answer.en"),
						Message: "answer is required",
					})
				}
			}
			return errs
		},
	})
}
