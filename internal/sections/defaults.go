package sections

import "fmt"

// RegisterDefaults adds all built-in section descriptors to the registry.
func RegisterDefaults(reg *Registry) {
	if reg == nil {
		return
	}

	// Content sections
	RegisterHero(reg)
	RegisterText(reg)
	RegisterFAQ(reg)
	RegisterButton(reg)
	RegisterImage(reg)
	RegisterDivider(reg)

	// Clinic listings
	RegisterServices(reg)
	RegisterDoctors(reg)
	RegisterReviews(reg)

	// Widgets
	RegisterGallery(reg)
	RegisterContact(reg)
	RegisterBooking(reg)
	RegisterOPD(reg)
	RegisterMap(reg)
}

func fieldAt(list string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, index, field)
}
