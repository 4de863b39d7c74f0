// Package types defines the wire and domain types shared between the
// remote store client and the TUI: users, cards, and their like sets.
package types
