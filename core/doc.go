// Package core contains the two-pane picker controller and its contracts.
//
// Allowed here:
// - the picker state machine (attach, reattach, destroy, gestures)
// - key registry and default bindings, message types, shared styles
//
// Not allowed here:
// - terminal program wiring (see internal/tui)
// - persistence and transport (see internal/database, internal/web)
package core
