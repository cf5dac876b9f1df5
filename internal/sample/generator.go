// Package sample builds synthetic option sets for demos and load tests.
package sample

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/dualpick/internal/catalog"
)

var (
	adjectives = []string{"Amber", "Brisk", "Cobalt", "Dusty", "Early", "Frosted", "Golden", "Hidden", "Ivory", "Jade"}
	nouns      = []string{"Harbor", "Meadow", "Summit", "Canyon", "Orchard", "Glacier", "Prairie", "Lagoon", "Thicket", "Delta"}
	tags       = []string{"north", "south", "coastal", "inland", "archived", "featured", "seasonal"}
)

// namespace keeps generated keys stable for a given set name and index.
var namespace = uuid.MustParse("6f1c2a8e-3b7d-4c55-9a0e-2d4f8b61c903")

// Set returns a set of n options. The same name, n and seed always give the
// same set. Roughly one option in ten starts selected.
func Set(name string, n int, seed uint64) catalog.Set {
	r := rand.New(rand.NewPCG(seed, uint64(n)))
	s := catalog.Set{
		Name:  name,
		Title: fmt.Sprintf("Generated %s", name),
	}
	for i := range n {
		key := uuid.NewSHA1(namespace, []byte(fmt.Sprintf("%s/%d", name, i))).String()
		label := fmt.Sprintf("%s %s %d", adjectives[r.IntN(len(adjectives))], nouns[r.IntN(len(nouns))], i+1)
		o := catalog.Option{Key: key, Label: label}
		for range r.IntN(3) {
			o.Filter = append(o.Filter, tags[r.IntN(len(tags))])
		}
		s.Options = append(s.Options, o)
		if r.IntN(10) == 0 {
			s.Selected = append(s.Selected, key)
		}
	}
	return s
}

// Labels returns the labels of s in order.
func Labels(s catalog.Set) []string {
	out := make([]string, len(s.Options))
	for i, o := range s.Options {
		out[i] = o.Label
	}
	return out
}

// Query picks a search term that matches at least one option of s.
func Query(s catalog.Set) string {
	if len(s.Options) == 0 {
		return ""
	}
	return strings.ToLower(strings.Fields(s.Options[len(s.Options)/2].Label)[1])
}
