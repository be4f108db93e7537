package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

func pickerItems() []methodItem {
	return []methodItem{
		{Method: standardize.MethodPseudo, Description: "two-level", Usable: false},
		{Method: standardize.MethodBasic, Description: "design matrix", Usable: true},
		{Method: standardize.MethodSmart, Description: "variables", Usable: true},
	}
}

func press(m MethodListModel, key string) (MethodListModel, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(MethodListModel), cmd
}

func TestMethodListModelStartsOnUsable(t *testing.T) {
	m := NewMethodListModel(pickerItems())
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want the first usable item", m.Cursor)
	}
}

func TestMethodListModelNavigation(t *testing.T) {
	m := NewMethodListModel(pickerItems())

	m, _ = press(m, "j")
	m, _ = press(m, "j")
	if m.Cursor != 2 {
		t.Errorf("Cursor after moving past the end = %d, want 2", m.Cursor)
	}
	m, _ = press(m, "k")
	m, _ = press(m, "k")
	m, _ = press(m, "k")
	if m.Cursor != 0 {
		t.Errorf("Cursor after moving past the start = %d, want 0", m.Cursor)
	}

	m, cmd := press(m, "enter")
	if m.Selected != nil || cmd != nil {
		t.Error("enter on an unusable method should do nothing")
	}

	m, _ = press(m, "j")
	m, cmd = press(m, "enter")
	if m.Selected == nil || *m.Selected != standardize.MethodBasic {
		t.Errorf("Selected = %v, want basic", m.Selected)
	}
	if cmd == nil {
		t.Error("selection should quit the program")
	}
}

func TestMethodListModelQuit(t *testing.T) {
	m, cmd := press(NewMethodListModel(pickerItems()), "q")
	if m.Selected != nil {
		t.Error("quit should not select")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestMethodListModelView(t *testing.T) {
	view := NewMethodListModel(pickerItems()).View()
	for _, want := range []string{"Select Method", "pseudo", "basic", "falls back to basic"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestMethodItems(t *testing.T) {
	for _, it := range methodItems(nil) {
		if !it.Usable {
			t.Errorf("%s should be usable without a model", it.Method)
		}
		if it.Description == "" {
			t.Errorf("%s has no description", it.Method)
		}
	}
}
