// Package web serves option sets as plain HTML multi-select forms and
// accepts their postbacks. The browser side enhancement reads the JSON
// configuration rendered next to each element.
package web

import (
	"github.com/jask/dualpick/core/element"
	"github.com/jask/dualpick/core/filtering"
)

// ChoiceRenderer extracts the value, label and filter words of a choice.
type ChoiceRenderer[T any] interface {
	ID(choice T) string
	Display(choice T) string
	FilterWords(choice T) []string
}

// BuildElement renders choices into a plain list element. Index follows
// choice order. Selected choices are marked and moved to the front in the
// order given. Filter words are only kept when filter is on.
func BuildElement[T any](id, name string, choices, selected []T, r ChoiceRenderer[T], filter bool) *element.Element {
	el := &element.Element{ID: id, Name: name}
	for i, c := range choices {
		o := element.Option{Value: r.ID(c), Label: r.Display(c), Index: i}
		if filter {
			o.FilterText = filtering.FilterText(r.FilterWords(c))
		}
		el.Options = append(el.Options, o)
	}
	keys := make([]string, 0, len(selected))
	for _, s := range selected {
		keys = append(keys, r.ID(s))
	}
	el.Apply(keys)
	return el
}

// ParseSelection keeps the posted values that belong to el, in posted
// order, dropping unknown values and repeats.
func ParseSelection(el *element.Element, posted []string) []string {
	known := make(map[string]bool)
	if el != nil {
		for _, o := range el.Options {
			known[o.Value] = true
		}
	}
	out := make([]string, 0, len(posted))
	seen := make(map[string]bool, len(posted))
	for _, v := range posted {
		if !known[v] || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
