// ABOUTME: Tests for the form list screen
// ABOUTME: Covers filtering, confirmation, and emitted intents

package formlist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/collabform/collabform-cli/internal/api"
)

func testForms() []api.Form {
	return []api.Form{
		{ID: 1, Title: "Customer Survey", Description: "Quarterly", Active: true},
		{ID: 2, Title: "Event RSVP", Active: false},
		{ID: 3, Title: "Bug Survey", Active: true},
	}
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{}
}

// runCmd executes a command and returns the resulting message
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestNew_StartsLoading(t *testing.T) {
	l := New(ModeMine)
	if !l.loading {
		t.Error("expected new list to be loading")
	}
	if l.VisibleCount() != 0 {
		t.Errorf("expected no visible forms, got %d", l.VisibleCount())
	}
}

func TestSetForms_ClearsLoadingAndError(t *testing.T) {
	l := New(ModeMine)
	l.SetError("boom")
	l.SetForms(testForms())

	if l.loading || l.errMsg != "" {
		t.Error("expected loading and error cleared")
	}
	if l.VisibleCount() != 3 {
		t.Errorf("expected 3 visible forms, got %d", l.VisibleCount())
	}
}

func TestSearch_FiltersWithoutRefetch(t *testing.T) {
	l := New(ModeMine)
	l.SetForms(testForms())

	l.Update(key("/"))
	for _, r := range "survey" {
		l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	l.Update(key("esc"))

	if l.VisibleCount() != 2 {
		t.Errorf("expected 2 matches, got %d", l.VisibleCount())
	}
	// Underlying data is untouched
	if len(l.all) != 3 {
		t.Errorf("loaded set was mutated, len %d", len(l.all))
	}
}

func TestActiveOnlyToggle(t *testing.T) {
	l := New(ModeMine)
	l.SetForms(testForms())

	l.Update(key("a"))
	if l.VisibleCount() != 2 {
		t.Errorf("expected 2 active forms, got %d", l.VisibleCount())
	}

	l.Update(key("a"))
	if l.VisibleCount() != 3 {
		t.Errorf("expected toggle back to 3, got %d", l.VisibleCount())
	}
}

func TestFilter_ClampsCursor(t *testing.T) {
	l := New(ModeMine)
	l.SetForms(testForms())
	l.Update(key("j"))
	l.Update(key("j"))
	if l.cursor != 2 {
		t.Fatalf("expected cursor at 2, got %d", l.cursor)
	}

	l.Update(key("/"))
	for _, r := range "rsvp" {
		l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if l.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", l.cursor)
	}
}

func TestEnter_EmitsOpen(t *testing.T) {
	l := New(ModeMine)
	l.SetForms(testForms())
	l.Update(key("j"))

	_, cmd := l.Update(key("enter"))
	msg, ok := runCmd(cmd).(OpenMsg)
	if !ok {
		t.Fatal("expected OpenMsg")
	}
	if msg.ID != 2 {
		t.Errorf("expected form 2, got %d", msg.ID)
	}
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	l := New(ModeMine)
	l.SetForms(testForms())

	_, cmd := l.Update(key("d"))
	if cmd != nil {
		t.Fatal("expected no intent before confirmation")
	}
	if l.state != stateConfirmDelete {
		t.Fatal("expected confirmation state")
	}

	_, cmd = l.Update(key("y"))
	msg, ok := runCmd(cmd).(DeleteMsg)
	if !ok {
		t.Fatal("expected DeleteMsg after confirmation")
	}
	if msg.ID != 1 {
		t.Errorf("expected form 1, got %d", msg.ID)
	}
}

func TestDelete_Declined(t *testing.T) {
	l := New(ModeMine)
	l.SetForms(testForms())

	l.Update(key("d"))
	_, cmd := l.Update(key("n"))
	if cmd != nil {
		t.Error("expected no intent when declined")
	}
	if l.state != stateList {
		t.Error("expected return to list state")
	}
}

func TestSharedMode_NoEditOrDelete(t *testing.T) {
	l := New(ModeShared)
	l.SetForms(testForms())

	_, cmd := l.Update(key("e"))
	if cmd != nil {
		t.Error("expected edit to be unavailable for shared forms")
	}

	l.Update(key("d"))
	if l.state == stateConfirmDelete {
		t.Error("expected delete to be unavailable for shared forms")
	}

	_, cmd = l.Update(key("n"))
	if cmd != nil {
		t.Error("expected new-form to be unavailable for shared forms")
	}
}

func TestRefresh_EmitsModeAwareIntent(t *testing.T) {
	l := New(ModeShared)
	l.SetForms(testForms())

	_, cmd := l.Update(key("r"))
	msg, ok := runCmd(cmd).(RefreshMsg)
	if !ok {
		t.Fatal("expected RefreshMsg")
	}
	if !msg.Shared {
		t.Error("expected shared refresh")
	}
	if !l.loading {
		t.Error("expected list back in loading state")
	}
}
