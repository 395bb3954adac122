package builder

import (
	"errors"
	"math/rand"
	"testing"

	"clinicsite-backend/internal/sections"
)

func testRegistry() *sections.Registry {
	return sections.Builtin()
}

func emptyDoc() *PageDocument {
	return &PageDocument{ID: "page-1", Title: sections.LocalizedText{EN: "Home"}, Enabled: true}
}

func assertContiguousOrder(t *testing.T, doc *PageDocument) {
	t.Helper()
	for i, section := range doc.Sections {
		if section.Order != i {
			t.Fatalf("order invariant broken at index %d: got order %d, sections: %d", i, section.Order, len(doc.Sections))
		}
	}
}

func TestAddSectionToEmptyDocument(t *testing.T) {
	doc := emptyDoc()

	id, err := doc.AddSection(testRegistry(), sections.TypeHero, -1)
	if err != nil {
		t.Fatalf("AddSection failed: %v", err)
	}

	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Order != 0 {
		t.Fatalf("expected order 0, got %d", doc.Sections[0].Order)
	}
	if doc.Sections[0].Type != sections.TypeHero {
		t.Fatalf("expected hero section, got %s", doc.Sections[0].Type)
	}
	if doc.Sections[0].ID != id {
		t.Fatalf("returned id %s does not match section id %s", id, doc.Sections[0].ID)
	}
}

func TestAddSectionAtIndex(t *testing.T) {
	doc := emptyDoc()
	reg := testRegistry()

	doc.AddSection(reg, sections.TypeHero, -1)
	doc.AddSection(reg, sections.TypeText, -1)
	id, err := doc.AddSection(reg, sections.TypeDivider, 1)
	if err != nil {
		t.Fatalf("AddSection failed: %v", err)
	}

	if doc.Sections[1].ID != id {
		t.Fatalf("expected divider at index 1, got %s", doc.Sections[1].Type)
	}
	assertContiguousOrder(t, doc)
}

func TestMoveSectionUp(t *testing.T) {
	doc := emptyDoc()
	reg := testRegistry()

	doc.AddSection(reg, sections.TypeHero, -1)
	dividerID, _ := doc.AddSection(reg, sections.TypeDivider, -1)

	moved, err := doc.MoveSection(dividerID, MoveUp)
	if err != nil {
		t.Fatalf("MoveSection failed: %v", err)
	}
	if !moved {
		t.Fatal("expected the divider to move")
	}

	if doc.Sections[0].Type != sections.TypeDivider || doc.Sections[1].Type != sections.TypeHero {
		t.Fatalf("unexpected layout: [%s %s]", doc.Sections[0].Type, doc.Sections[1].Type)
	}
	if doc.Sections[0].Order != 0 || doc.Sections[1].Order != 1 {
		t.Fatalf("unexpected orders: [%d %d]", doc.Sections[0].Order, doc.Sections[1].Order)
	}
}

func TestMoveSectionAtBoundaryIsNoop(t *testing.T) {
	doc := emptyDoc()
	heroID, _ := doc.AddSection(testRegistry(), sections.TypeHero, -1)

	moved, err := doc.MoveSection(heroID, MoveUp)
	if err != nil {
		t.Fatalf("MoveSection failed: %v", err)
	}
	if moved {
		t.Fatal("moving the only section up should be a no-op")
	}
}

func TestRemoveSectionClosesGap(t *testing.T) {
	doc := emptyDoc()
	reg := testRegistry()

	doc.AddSection(reg, sections.TypeHero, -1)
	textID, _ := doc.AddSection(reg, sections.TypeText, -1)
	doc.AddSection(reg, sections.TypeContact, -1)

	if err := doc.RemoveSection(textID); err != nil {
		t.Fatalf("RemoveSection failed: %v", err)
	}

	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	assertContiguousOrder(t, doc)
}

func TestRemoveSectionNotFound(t *testing.T) {
	doc := emptyDoc()

	err := doc.RemoveSection("missing")
	if !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestDuplicateSectionInsertsAfterSource(t *testing.T) {
	doc := emptyDoc()
	reg := testRegistry()

	heroID, _ := doc.AddSection(reg, sections.TypeHero, -1)
	doc.AddSection(reg, sections.TypeContact, -1)

	hero := doc.Section(heroID)
	hero.Content.(*sections.HeroContent).Heading = sections.LocalizedText{EN: "City Dental"}

	dupID, err := doc.DuplicateSection(heroID)
	if err != nil {
		t.Fatalf("DuplicateSection failed: %v", err)
	}

	if dupID == heroID {
		t.Fatal("duplicate must get a new id")
	}
	if doc.Sections[1].ID != dupID {
		t.Fatal("duplicate should sit immediately after the source")
	}
	if doc.Sections[1].Content.(*sections.HeroContent).Heading.EN != "City Dental" {
		t.Fatal("duplicate should copy content")
	}
	assertContiguousOrder(t, doc)

	// Mutating the duplicate must not touch the source.
	doc.Sections[1].Content.(*sections.HeroContent).Heading.EN = "Changed"
	if doc.Sections[0].Content.(*sections.HeroContent).Heading.EN != "City Dental" {
		t.Fatal("duplicate shares content with source")
	}
}

func TestOrderInvariantUnderRandomOperations(t *testing.T) {
	doc := emptyDoc()
	reg := testRegistry()
	rng := rand.New(rand.NewSource(7))
	types := []sections.Type{sections.TypeHero, sections.TypeText, sections.TypeDivider, sections.TypeFAQ}

	for i := 0; i < 300; i++ {
		switch op := rng.Intn(4); {
		case op == 0 || len(doc.Sections) == 0:
			doc.AddSection(reg, types[rng.Intn(len(types))], rng.Intn(len(doc.Sections)+2)-1)
		case op == 1:
			target := doc.Sections[rng.Intn(len(doc.Sections))].ID
			doc.RemoveSection(target)
		case op == 2:
			target := doc.Sections[rng.Intn(len(doc.Sections))].ID
			dir := MoveUp
			if rng.Intn(2) == 0 {
				dir = MoveDown
			}
			doc.MoveSection(target, dir)
		default:
			target := doc.Sections[rng.Intn(len(doc.Sections))].ID
			doc.DuplicateSection(target)
		}

		assertContiguousOrder(t, doc)

		seen := make(map[string]bool, len(doc.Sections))
		for _, section := range doc.Sections {
			if seen[section.ID] {
				t.Fatalf("duplicate section id %s after %d operations", section.ID, i+1)
			}
			seen[section.ID] = true
		}
	}
}

func TestUpdateSectionContentShallowMerge(t *testing.T) {
	doc := emptyDoc()
	reg := testRegistry()

	heroID, _ := doc.AddSection(reg, sections.TypeHero, -1)

	err := doc.UpdateSectionContent(reg, heroID, map[string]interface{}{
		"heading":  map[string]interface{}{"en": "Valley Clinic", "ne": "उपत्यका क्लिनिक"},
		"cta_link": "/book",
	})
	if err != nil {
		t.Fatalf("UpdateSectionContent failed: %v", err)
	}

	hero := doc.Section(heroID).Content.(*sections.HeroContent)
	if hero.Heading.EN != "Valley Clinic" || hero.Heading.NE != "उपत्यका क्लिनिक" {
		t.Fatalf("heading not merged: %+v", hero.Heading)
	}
	if hero.CTALink != "/book" {
		t.Fatalf("cta_link not merged: %s", hero.CTALink)
	}
	// Untouched default survives the merge.
	if hero.CTALabel.EN != "Book an appointment" {
		t.Fatalf("unrelated field lost: %+v", hero.CTALabel)
	}
}

func TestUpdateSectionContentPermissiveButPublishStrict(t *testing.T) {
	doc := emptyDoc()
	reg := testRegistry()

	heroID, _ := doc.AddSection(reg, sections.TypeHero, -1)

	// Blanking a required field succeeds at interactive time.
	err := doc.UpdateSectionContent(reg, heroID, map[string]interface{}{
		"heading": map[string]interface{}{"en": ""},
	})
	if err != nil {
		t.Fatalf("interactive update should be permissive, got %v", err)
	}

	// The same content is rejected at publish time.
	errs := doc.ValidateForPublish(reg)
	if len(errs) == 0 {
		t.Fatal("expected publish validation to reject the empty heading")
	}
}

func TestValidateForPublishSkipsHiddenSections(t *testing.T) {
	doc := emptyDoc()
	reg := testRegistry()

	imgID, _ := doc.AddSection(reg, sections.TypeImage, -1)

	if errs := doc.ValidateForPublish(reg); len(errs) == 0 {
		t.Fatal("visible image without url should fail publish validation")
	}

	doc.ToggleVisibility(imgID)
	if errs := doc.ValidateForPublish(reg); len(errs) != 0 {
		t.Fatalf("hidden sections should be skipped, got %v", errs)
	}
}
