package core

import "strings"

const (
	ScopeAvailablePane   = "pane:available"
	ScopeSelectedPane    = "pane:selected"
	ScopeAvailableFilter = "filter:available"
	ScopeSelectionFilter = "filter:selected"
)

const (
	ActionCursorUp    = "cursor-up"
	ActionCursorDown  = "cursor-down"
	ActionToggle      = "toggle-highlight"
	ActionMove        = "move"
	ActionActivate    = "activate"
	ActionAdd         = "add"
	ActionRemove      = "remove"
	ActionAddAll      = "add-all"
	ActionRemoveAll   = "remove-all"
	ActionMoveUp      = "move-up"
	ActionMoveDown    = "move-down"
	ActionFocusNext   = "focus-next"
	ActionFocusPrev   = "focus-prev"
	ActionFocusFilter = "focus-filter"
	ActionLeaveFilter = "leave-filter"
	ActionClearFilter = "clear-filter"
	ActionSubmit      = "submit"
	ActionCancel      = "cancel"
	ActionHelp        = "help"
)

func DefaultKeyBindings() []KeyBinding {
	panes := []string{"pane:*"}
	filters := []string{"filter:*"}
	return []KeyBinding{
		{Keys: []string{"k", "up"}, Action: ActionCursorUp, Description: "up", Scopes: panes},
		{Keys: []string{"j", "down"}, Action: ActionCursorDown, Description: "down", Scopes: panes},
		{Keys: []string{"x"}, Action: ActionToggle, Description: "mark", Scopes: panes},
		{Keys: []string{"space"}, Action: ActionMove, Description: "move", Scopes: panes},
		{Keys: []string{"o"}, Action: ActionActivate, Description: "move one", Scopes: panes},
		{Keys: []string{"l", "right"}, Action: ActionAdd, Description: "add", Scopes: []string{ScopeAvailablePane}},
		{Keys: []string{"h", "left"}, Action: ActionRemove, Description: "remove", Scopes: []string{ScopeSelectedPane}},
		{Keys: []string{"A"}, Action: ActionAddAll, Description: "add all", Scopes: panes},
		{Keys: []string{"R"}, Action: ActionRemoveAll, Description: "remove all", Scopes: panes},
		{Keys: []string{"K", "shift+up"}, Action: ActionMoveUp, Description: "move up", Scopes: []string{ScopeSelectedPane}},
		{Keys: []string{"J", "shift+down"}, Action: ActionMoveDown, Description: "move down", Scopes: []string{ScopeSelectedPane}},
		{Keys: []string{"/"}, Action: ActionFocusFilter, Description: "filter", Scopes: panes},
		{Keys: []string{"ctrl+u"}, Action: ActionClearFilter, Description: "clear filter", Scopes: filters},
		{Keys: []string{"esc", "down"}, Action: ActionLeaveFilter, Description: "back", Scopes: filters},
		{Keys: []string{"tab"}, Action: ActionFocusNext, Description: "next pane", Scopes: []string{"*"}},
		{Keys: []string{"shift+tab"}, Action: ActionFocusPrev, Description: "prev pane", Scopes: []string{"*"}},
		{Keys: []string{"enter"}, Action: ActionSubmit, Description: "save", Scopes: []string{"*"}},
		{Keys: []string{"?"}, Action: ActionHelp, Description: "keys", Scopes: panes},
		{Keys: []string{"esc", "q"}, Action: ActionCancel, Description: "cancel", Scopes: panes},
		{Keys: []string{"ctrl+c"}, Action: ActionCancel, Description: "quit", Scopes: []string{"*"}},
	}
}

func DefaultKeybindingsByAction(bindings []KeyBinding) map[string][]string {
	out := make(map[string][]string, len(bindings))
	for _, b := range bindings {
		if strings.TrimSpace(b.Action) == "" || len(b.Keys) == 0 {
			continue
		}
		if _, exists := out[b.Action]; exists {
			continue
		}
		out[b.Action] = append([]string(nil), b.Keys...)
	}
	return out
}

// ApplyActionKeybindings replaces the keys of every binding whose action has
// an override.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}
