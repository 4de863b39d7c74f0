// Package gallery keeps the card view nodes in sync with the latest known
// remote state. Node construction is pure: a node is a function of the
// server card, the current user id, and the capability record wired in by
// the coordinator.
package gallery

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/okulov/photocards/internal/types"
)

// Callbacks is the capability record bound to a node at construction time.
// Each callback returns the command to run for that affordance.
type Callbacks struct {
	OnPreview func(*CardNode) tea.Cmd
	OnLike    func(*CardNode) tea.Cmd
	OnDelete  func(*CardNode) tea.Cmd
}

// CardNode is one rendered card. Liked and LikeCount mirror the last
// server-returned like set; they are never inferred from local toggling.
type CardNode struct {
	Card      types.Card
	Liked     bool
	LikeCount int
	CanDelete bool

	// LikeBusy is set while this card's like call is outstanding; a second
	// activation is ignored until the response arrives.
	LikeBusy bool

	cb Callbacks
}

// NewNode builds a view node for card. The delete affordance is shown only
// to the card's owner; the like affordance starts active if currentUserID
// is in the like set. No network effect.
func NewNode(card types.Card, currentUserID string, cb Callbacks) *CardNode {
	return &CardNode{
		Card:      card,
		Liked:     card.LikedBy(currentUserID),
		LikeCount: card.LikeCount(),
		CanDelete: card.OwnedBy(currentUserID),
		cb:        cb,
	}
}

// ID returns the node's card identifier.
func (n *CardNode) ID() string { return n.Card.ID }

// Preview runs the preview capability.
func (n *CardNode) Preview() tea.Cmd {
	if n.cb.OnPreview == nil {
		return nil
	}
	return n.cb.OnPreview(n)
}

// Like runs the like capability unless a like call is already outstanding.
func (n *CardNode) Like() tea.Cmd {
	if n.LikeBusy || n.cb.OnLike == nil {
		return nil
	}
	return n.cb.OnLike(n)
}

// Delete runs the delete capability; only meaningful for owned cards.
func (n *CardNode) Delete() tea.Cmd {
	if !n.CanDelete || n.cb.OnDelete == nil {
		return nil
	}
	return n.cb.OnDelete(n)
}

// ApplyServerCard replaces the node's like state with the server-returned
// truth after a like round trip. Count and membership come from the
// returned like set, guarding against drift from concurrent likes.
func (n *CardNode) ApplyServerCard(card types.Card, currentUserID string) {
	n.Card.Likes = card.Likes
	n.Liked = card.LikedBy(currentUserID)
	n.LikeCount = card.LikeCount()
}

// List is the ordered card container. Initial population appends in server
// order; user-created cards prepend (most-recent-first).
type List struct {
	mu    sync.RWMutex
	nodes []*CardNode
}

// NewList returns an empty card list.
func NewList() *List {
	return &List{}
}

// Prepend inserts node at the front.
func (l *List) Prepend(node *CardNode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nodes = append([]*CardNode{node}, l.nodes...)
}

// Append inserts node at the back.
func (l *List) Append(node *CardNode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nodes = append(l.nodes, node)
}

// Remove detaches the node with the given card id. Used only after the
// remote store confirms deletion.
func (l *List) Remove(cardID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, n := range l.nodes {
		if n.Card.ID == cardID {
			l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the node with the given card id, or nil.
func (l *List) Find(cardID string) *CardNode {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, n := range l.nodes {
		if n.Card.ID == cardID {
			return n
		}
	}
	return nil
}

// Nodes returns the nodes in display order.
func (l *List) Nodes() []*CardNode {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*CardNode, len(l.nodes))
	copy(out, l.nodes)
	return out
}

// Len returns the number of nodes.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.nodes)
}

// Reset replaces the whole list, used by the initial load.
func (l *List) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nodes = nil
}
