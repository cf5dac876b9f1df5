package core

import "github.com/jask/dualpick/core/element"

// StatusMsg replaces the status bar text.
type StatusMsg struct {
	Text  string
	IsErr bool
}

// ReattachMsg carries freshly scanned markup after the source may have been
// replaced. A nil Element with a nil Err means there was nothing to scan.
type ReattachMsg struct {
	Element *element.Element
	Err     error
}

// SelectionSavedMsg reports the result of writing a submission.
type SelectionSavedMsg struct {
	Keys []string
	Err  error
}
