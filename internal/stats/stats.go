// Package stats aggregates a card collection into summary statistics for
// the read-only stats dialog. Pure; no mutation, no I/O.
package stats

import (
	"time"

	"github.com/okulov/photocards/internal/types"
)

// Summary describes the whole card collection.
type Summary struct {
	TotalCards    int
	FirstCreated  time.Time
	LastCreated   time.Time
	DistinctUsers int
	MaxByOneUser  int
	UserNames     []string
}

// Aggregate folds the collection into a Summary. Owner names are reported
// in first-seen order. With an empty collection the date fields stay zero.
func Aggregate(cards []types.Card) Summary {
	s := Summary{TotalCards: len(cards)}

	counts := make(map[string]int)
	seen := make(map[string]bool)

	for _, c := range cards {
		if s.FirstCreated.IsZero() || c.CreatedAt.Before(s.FirstCreated) {
			s.FirstCreated = c.CreatedAt
		}
		if c.CreatedAt.After(s.LastCreated) {
			s.LastCreated = c.CreatedAt
		}

		ownerID := c.Owner.ID
		counts[ownerID]++
		if !seen[ownerID] {
			seen[ownerID] = true
			s.UserNames = append(s.UserNames, c.Owner.Name)
		}
	}

	s.DistinctUsers = len(seen)
	for _, n := range counts {
		if n > s.MaxByOneUser {
			s.MaxByOneUser = n
		}
	}

	return s
}
