package gallery

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/okulov/photocards/internal/types"
)

func testCard(id, ownerID string, likers ...string) types.Card {
	c := types.Card{
		ID:    id,
		Name:  "card " + id,
		Link:  "https://example.com/" + id + ".jpg",
		Owner: types.User{ID: ownerID, Name: "owner " + ownerID},
	}
	for _, l := range likers {
		c.Likes = append(c.Likes, types.User{ID: l})
	}
	return c
}

func TestNewNode(t *testing.T) {
	card := testCard("c1", "me", "u2", "u3")
	node := NewNode(card, "me", Callbacks{})

	if !node.CanDelete {
		t.Error("owner must get the delete affordance")
	}
	if node.Liked {
		t.Error("like affordance must start inactive for a non-liker")
	}
	if node.LikeCount != 2 {
		t.Errorf("LikeCount = %d, want 2", node.LikeCount)
	}

	other := NewNode(testCard("c2", "someone-else", "me"), "me", Callbacks{})
	if other.CanDelete {
		t.Error("non-owner must not get the delete affordance")
	}
	if !other.Liked {
		t.Error("like affordance must start active for a liker")
	}
}

func TestNode_ApplyServerCard(t *testing.T) {
	node := NewNode(testCard("c1", "owner"), "me", Callbacks{})

	// Server returns a like set that also contains a concurrent like from u9
	updated := testCard("c1", "owner", "me", "u9")
	node.ApplyServerCard(updated, "me")

	if !node.Liked {
		t.Error("membership must follow the server-returned like set")
	}
	if node.LikeCount != 2 {
		t.Errorf("LikeCount = %d, want server-returned 2", node.LikeCount)
	}
}

func TestNode_LikeIgnoredWhileBusy(t *testing.T) {
	calls := 0
	node := NewNode(testCard("c1", "owner"), "me", Callbacks{
		OnLike: func(n *CardNode) tea.Cmd {
			calls++
			n.LikeBusy = true
			return nil
		},
	})

	node.Like()
	node.Like()

	if calls != 1 {
		t.Errorf("like invoked %d times while busy, want 1", calls)
	}
}

func TestNode_DeleteRequiresOwnership(t *testing.T) {
	calls := 0
	node := NewNode(testCard("c1", "someone-else"), "me", Callbacks{
		OnDelete: func(*CardNode) tea.Cmd {
			calls++
			return nil
		},
	})

	node.Delete()
	if calls != 0 {
		t.Error("delete must not fire for a card the user does not own")
	}
}

func TestList_Ordering(t *testing.T) {
	l := NewList()

	// Initial population appends in server order
	l.Append(NewNode(testCard("a", "o"), "me", Callbacks{}))
	l.Append(NewNode(testCard("b", "o"), "me", Callbacks{}))

	// New creations prepend
	l.Prepend(NewNode(testCard("c", "o"), "me", Callbacks{}))

	got := l.Nodes()
	if len(got) != 3 {
		t.Fatalf("Len = %d, want 3", len(got))
	}
	want := []string{"c", "a", "b"}
	for i, id := range want {
		if got[i].ID() != id {
			t.Errorf("nodes[%d] = %s, want %s", i, got[i].ID(), id)
		}
	}
}

func TestList_RemoveAndFind(t *testing.T) {
	l := NewList()
	l.Append(NewNode(testCard("a", "o"), "me", Callbacks{}))
	l.Append(NewNode(testCard("b", "o"), "me", Callbacks{}))

	if l.Find("a") == nil {
		t.Fatal("expected to find node a")
	}

	if !l.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if l.Find("a") != nil {
		t.Error("node a must be detached after removal")
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}

	if l.Remove("missing") {
		t.Error("removing an unknown id must report false")
	}
}

func TestList_Reset(t *testing.T) {
	l := NewList()
	l.Append(NewNode(testCard("a", "o"), "me", Callbacks{}))
	l.Reset()

	if l.Len() != 0 {
		t.Errorf("Len = %d after reset, want 0", l.Len())
	}
}
