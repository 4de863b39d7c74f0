// Package session holds the transient cross-flow state of one client run:
// the current user's id and the pending-deletion slot.
package session

import "sync"

// PendingDeletion links the delete-confirm dialog to the card slated for
// removal. It exists only between "delete requested" and "delete confirmed
// or cancelled".
type PendingDeletion struct {
	CardID string
	NodeID string
}

// Context is the process-lifetime session state. The user id is written
// once after the initial profile fetch; the pending-deletion slot is owned
// by the delete flow alone, with last-request-wins semantics on overwrite.
type Context struct {
	mu sync.RWMutex

	currentUserID string
	pending       *PendingDeletion
}

// NewContext returns an empty session context.
func NewContext() *Context {
	return &Context{}
}

// SetCurrentUser records the user id from the initial load. Later calls are
// ignored; the id is immutable after session start.
func (c *Context) SetCurrentUser(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentUserID == "" {
		c.currentUserID = id
	}
}

// CurrentUser returns the current user id, empty before the initial load.
func (c *Context) CurrentUser() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentUserID
}

// SetPending stores the deletion target, replacing any previous one.
func (c *Context) SetPending(cardID, nodeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &PendingDeletion{CardID: cardID, NodeID: nodeID}
}

// Pending returns the current deletion target, or nil when none is pending.
func (c *Context) Pending() *PendingDeletion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending
}

// ClearPending empties the slot. Called on both successful deletion and
// cancellation so a stale target can never be acted on.
func (c *Context) ClearPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}
