package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyRegistryScopeMatch(t *testing.T) {
	reg := NewKeyRegistry([]KeyBinding{
		{Keys: []string{"ctrl+k"}, Action: "palette", Scopes: []string{"pane:available"}},
		{Keys: []string{"q"}, Action: "quit", Scopes: []string{"*"}},
		{Keys: []string{"esc"}, Action: "leave", Scopes: []string{"filter:*"}},
	})
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "pane:available") {
		t.Fatalf("expected ctrl+k in pane:available")
	}
	if reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "pane:selected") {
		t.Fatalf("did not expect ctrl+k in pane:selected")
	}
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "quit", "pane:selected") {
		t.Fatalf("expected q to match wildcard scope")
	}
	if got := reg.Action("esc", "filter:selected"); got != "leave" {
		t.Fatalf("prefix scope: got %q, want leave", got)
	}
	if got := reg.Action("esc", "pane:selected"); got != "" {
		t.Fatalf("prefix scope leaked into pane scope: %q", got)
	}
}

func TestKeyRegistryKeepsCaseOfSingleKeys(t *testing.T) {
	reg := NewKeyRegistry(DefaultKeyBindings())
	if got := reg.Action("k", ScopeSelectedPane); got != ActionCursorUp {
		t.Fatalf("k: got %q, want %q", got, ActionCursorUp)
	}
	if got := reg.Action("K", ScopeSelectedPane); got != ActionMoveUp {
		t.Fatalf("K: got %q, want %q", got, ActionMoveUp)
	}
	if got := reg.Action(" ", ScopeAvailablePane); got != ActionMove {
		t.Fatalf("space: got %q, want %q", got, ActionMove)
	}
	if got := reg.Action("Enter", ScopeSelectionFilter); got != ActionSubmit {
		t.Fatalf("named keys fold case: got %q", got)
	}
}
