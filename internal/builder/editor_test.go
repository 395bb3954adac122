package builder

import (
	"strings"
	"testing"

	"clinicsite-backend/internal/sections"
	"clinicsite-backend/pkg/validator"
)

func init() {
	validator.Init()
}

func newTestEditor() *Editor {
	return NewEditor(sections.Builtin(), NewSite(1), 20)
}

func TestStagedEditsFlushAsSingleCommit(t *testing.T) {
	e := newTestEditor()
	textID, err := e.AddSection(sections.TypeText, -1)
	if err != nil {
		t.Fatalf("AddSection failed: %v", err)
	}
	lenAfterAdd := e.History().Len()

	// Simulate per-keystroke staging of a text body.
	body := ""
	for _, chunk := range []string{"<p>We ", "are ", "open ", "daily</p>"} {
		body += chunk
		if err := e.StageContentEdit(map[string]interface{}{
			"body": map[string]interface{}{"en": body},
		}); err != nil {
			t.Fatalf("StageContentEdit failed: %v", err)
		}
	}

	if e.History().Len() != lenAfterAdd {
		t.Fatal("staging must not create history entries")
	}

	if err := e.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if e.History().Len() != lenAfterAdd+1 {
		t.Fatalf("expected exactly one commit from flush, got %d new entries", e.History().Len()-lenAfterAdd)
	}

	text := e.ActivePage().Section(textID).Content.(*sections.TextContent)
	if text.Body.EN != "<p>We are open daily</p>" {
		t.Fatalf("unexpected body: %q", text.Body.EN)
	}
}

func TestDeselectFlushesPendingEdits(t *testing.T) {
	e := newTestEditor()
	textID, _ := e.AddSection(sections.TypeText, -1)

	e.StageContentEdit(map[string]interface{}{
		"body": map[string]interface{}{"en": "<p>draft</p>"},
	})

	if err := e.Deselect(); err != nil {
		t.Fatalf("Deselect failed: %v", err)
	}

	if e.SelectedSection() != "" {
		t.Fatal("expected selection to be cleared")
	}
	text := e.ActivePage().Section(textID).Content.(*sections.TextContent)
	if text.Body.EN != "<p>draft</p>" {
		t.Fatal("deselect must flush, not discard, pending edits")
	}
}

func TestRichTextIsSanitizedOnStage(t *testing.T) {
	e := newTestEditor()
	textID, _ := e.AddSection(sections.TypeText, -1)

	e.StageContentEdit(map[string]interface{}{
		"body": map[string]interface{}{
			"en": `<p>hello</p><script>alert("x")</script>`,
		},
	})
	if err := e.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	text := e.ActivePage().Section(textID).Content.(*sections.TextContent)
	if strings.Contains(text.Body.EN, "<script") {
		t.Fatalf("script tag survived sanitization: %q", text.Body.EN)
	}
	if !strings.Contains(text.Body.EN, "<p>hello</p>") {
		t.Fatalf("benign markup was stripped: %q", text.Body.EN)
	}
}

func TestUndoRestoresPreviousDocument(t *testing.T) {
	e := newTestEditor()

	e.AddSection(sections.TypeHero, -1)

	undone, err := e.Undo()
	if err != nil || !undone {
		t.Fatalf("Undo failed: %v %v", undone, err)
	}
	if len(e.ActivePage().Sections) != 0 {
		t.Fatal("undo should remove the added section")
	}

	redone, err := e.Redo()
	if err != nil || !redone {
		t.Fatalf("Redo failed: %v %v", redone, err)
	}
	if len(e.ActivePage().Sections) != 1 {
		t.Fatal("redo should restore the added section")
	}
}

func TestUndoClearsSelectionWhenSectionDisappears(t *testing.T) {
	e := newTestEditor()

	id, _ := e.AddSection(sections.TypeHero, -1)
	if err := e.SelectSection(id); err != nil {
		t.Fatalf("SelectSection failed: %v", err)
	}

	e.Undo()

	if e.SelectedSection() != "" {
		t.Fatal("selection should be cleared when the section is undone away")
	}
}

func TestMoveAtBoundaryAddsNoHistoryEntry(t *testing.T) {
	e := newTestEditor()
	heroID, _ := e.AddSection(sections.TypeHero, -1)
	before := e.History().Len()

	if err := e.MoveSection(heroID, MoveUp); err != nil {
		t.Fatalf("MoveSection failed: %v", err)
	}

	if e.History().Len() != before {
		t.Fatal("a boundary move must not commit")
	}
}

func TestGalleryPhotoOperationsCommitIndividually(t *testing.T) {
	e := newTestEditor()
	galleryID, _ := e.AddSection(sections.TypeGallery, -1)
	e.StageContentEdit(map[string]interface{}{"mode": "manual"})
	if err := e.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	before := e.History().Len()

	if err := e.AddGalleryPhoto(galleryID, sections.GalleryPhoto{
		URL:     "/uploads/waiting-room.jpg",
		Caption: sections.LocalizedText{EN: "Waiting room"},
	}); err != nil {
		t.Fatalf("AddGalleryPhoto failed: %v", err)
	}
	if err := e.AddGalleryPhoto(galleryID, sections.GalleryPhoto{URL: "/uploads/lab.jpg"}); err != nil {
		t.Fatalf("AddGalleryPhoto failed: %v", err)
	}
	if err := e.RemoveGalleryPhoto(galleryID, 0); err != nil {
		t.Fatalf("RemoveGalleryPhoto failed: %v", err)
	}

	if got := e.History().Len() - before; got != 3 {
		t.Fatalf("expected 3 history commits for 3 photo operations, got %d", got)
	}

	gallery := e.ActivePage().Section(galleryID).Content.(*sections.GalleryContent)
	if len(gallery.Photos) != 1 || gallery.Photos[0].URL != "/uploads/lab.jpg" {
		t.Fatalf("unexpected photos: %+v", gallery.Photos)
	}
}

func TestGalleryPhotoRequiresManualMode(t *testing.T) {
	e := newTestEditor()
	galleryID, _ := e.AddSection(sections.TypeGallery, -1)

	err := e.AddGalleryPhoto(galleryID, sections.GalleryPhoto{URL: "/uploads/x.jpg"})
	if !IsValidationError(err) {
		t.Fatalf("expected validation error in auto mode, got %v", err)
	}
}

func TestStageWithoutSelectionStillTargetsAddedSection(t *testing.T) {
	e := newTestEditor()

	// AddSection selects the new section, so staging works immediately.
	if _, err := e.AddSection(sections.TypeText, -1); err != nil {
		t.Fatalf("AddSection failed: %v", err)
	}
	if err := e.StageContentEdit(map[string]interface{}{
		"body": map[string]interface{}{"en": "x"},
	}); err != nil {
		t.Fatalf("StageContentEdit after add failed: %v", err)
	}

	if err := e.Deselect(); err != nil {
		t.Fatalf("Deselect failed: %v", err)
	}
	if err := e.StageContentEdit(nil); err != ErrNoSelection {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestValidateForPublishAggregatesAcrossPages(t *testing.T) {
	e := newTestEditor()
	e.AddSection(sections.TypeImage, -1) // image without url on home

	if _, err := e.CreatePage("team", "Team", ""); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	e.AddSection(sections.TypeButton, -1) // button without label/url on team

	verr := e.ValidateForPublish()
	if verr == nil {
		t.Fatal("expected publish validation to fail")
	}

	var sawHome, sawTeam bool
	for _, fe := range verr.Fields {
		if strings.HasPrefix(fe.Field, "pages[home]") {
			sawHome = true
		}
		if strings.HasPrefix(fe.Field, "pages[team]") {
			sawTeam = true
		}
	}
	if !sawHome || !sawTeam {
		t.Fatalf("expected errors from both pages, got %+v", verr.Fields)
	}
}
