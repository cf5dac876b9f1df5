// Package element models the plain multi-select list a picker enhances. The
// element alone is enough to select and submit values; a picker only keeps
// its selected set and order in sync.
package element

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jask/dualpick/core/selection"
)

var (
	ErrMissingID      = errors.New("element: missing id")
	ErrDuplicateValue = errors.New("element: duplicate option value")
)

// Option is one entry of the list. Index is the ordinal position assigned
// when the list was rendered; it survives reordering of Options.
type Option struct {
	Value      string
	Label      string
	Index      int
	FilterText string
	Selected   bool
}

type Element struct {
	ID      string
	Name    string
	Options []Option
}

func (e *Element) Validate() error {
	if e == nil || strings.TrimSpace(e.ID) == "" {
		return ErrMissingID
	}
	seen := make(map[string]bool, len(e.Options))
	for _, o := range e.Options {
		if seen[o.Value] {
			return fmt.Errorf("%w: %q", ErrDuplicateValue, o.Value)
		}
		seen[o.Value] = true
	}
	return nil
}

func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := *e
	c.Options = slices.Clone(e.Options)
	return &c
}

// SelectedValues returns the selected values in list order, which is the
// order a form submission carries them in.
func (e *Element) SelectedValues() []string {
	if e == nil {
		return nil
	}
	var out []string
	for _, o := range e.Options {
		if o.Selected {
			out = append(out, o.Value)
		}
	}
	return out
}

// Apply selects exactly values and moves them, in the given order, to the
// front of the list. Values that are not in the list are ignored.
func (e *Element) Apply(values []string) {
	if e == nil {
		return
	}
	pos := make(map[string]int, len(e.Options))
	for i, o := range e.Options {
		pos[o.Value] = i
	}
	front := make([]Option, 0, len(values))
	taken := make(map[string]bool, len(values))
	for _, v := range values {
		i, ok := pos[v]
		if !ok || taken[v] {
			continue
		}
		taken[v] = true
		o := e.Options[i]
		o.Selected = true
		front = append(front, o)
	}
	rest := make([]Option, 0, len(e.Options)-len(front))
	for _, o := range e.Options {
		if taken[o.Value] {
			continue
		}
		o.Selected = false
		rest = append(rest, o)
	}
	e.Options = append(front, rest...)
}

// Selection converts the list into picker options and the initial selection.
func (e *Element) Selection() ([]selection.Option, []string) {
	if e == nil {
		return nil, nil
	}
	opts := make([]selection.Option, 0, len(e.Options))
	for _, o := range e.Options {
		opts = append(opts, selection.Option{
			Key:         o.Value,
			Label:       o.Label,
			Index:       o.Index,
			FilterWords: strings.Fields(o.FilterText),
		})
	}
	return opts, e.SelectedValues()
}
