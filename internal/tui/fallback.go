package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/jask/dualpick/core/element"
	"github.com/jask/dualpick/internal/binding"
)

var ErrNothingToPick = errors.New("no options to pick from")

// fallbackOptions lists each value once, keeping the first occurrence and
// the element's selected flags.
func fallbackOptions(el *element.Element) []huh.Option[string] {
	var out []huh.Option[string]
	seen := make(map[string]bool)
	for _, o := range el.Options {
		if seen[o.Value] {
			continue
		}
		seen[o.Value] = true
		label := o.Label
		if label == "" {
			label = o.Value
		}
		out = append(out, huh.NewOption(label, o.Value).Selected(o.Selected))
	}
	return out
}

func fallbackForm(el *element.Element, title string, selected *[]string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(title).
				Description("Space to toggle, Enter to confirm").
				Options(fallbackOptions(el)...).
				Value(selected),
		),
	)
}

// RunFallback edits the element with a plain multi-select form when the
// two-pane picker cannot attach. The chosen values are applied to el and
// written through b.
func RunFallback(ctx context.Context, el *element.Element, title string, b binding.Binding) ([]string, error) {
	if el == nil || len(el.Options) == 0 {
		return nil, ErrNothingToPick
	}
	selected := el.SelectedValues()
	if err := fallbackForm(el, title, &selected).RunWithContext(ctx); err != nil {
		return nil, err
	}
	el.Apply(selected)
	if b != nil {
		if err := b.WriteSelection(ctx, selected); err != nil {
			return nil, err
		}
	}
	return selected, nil
}
