// Package tui is the interaction coordinator of the gallery client: it
// owns the modal dialog lifecycle, wires form validation to submit
// affordances, and sequences every mutating flow as validate → busy →
// one remote call → view update and dialog close on success, or logged
// error with the dialog left open on failure.
//
// All state mutation happens on the bubbletea update loop. Remote calls
// run as commands and re-enter the loop as typed messages, so the UI stays
// responsive while calls are in flight and unrelated flows may interleave.
package tui
