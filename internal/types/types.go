package types

import "time"

// User is a gallery account as returned by the remote service.
type User struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
}

// Card is a single gallery entry. Everything except the like set is
// immutable; the like set is only ever replaced wholesale with the
// server-returned value after a like round trip.
type Card struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     User      `json:"owner"`
	Likes     []User    `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeCount returns the displayed like count: the size of the like set.
func (c *Card) LikeCount() int {
	return len(c.Likes)
}

// LikedBy reports whether userID is in the card's like set.
func (c *Card) LikedBy(userID string) bool {
	for _, u := range c.Likes {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// OwnedBy reports whether userID owns the card.
func (c *Card) OwnedBy(userID string) bool {
	return c.Owner.ID == userID
}
