package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/okulov/photocards/internal/gallery"
	"github.com/okulov/photocards/internal/stats"
	"github.com/okulov/photocards/internal/types"
)

// loadInitial fetches the profile and the card collection concurrently;
// nothing renders as loaded until both complete.
func (m *Model) loadInitial() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		g, ctx := errgroup.WithContext(context.Background())

		var user *types.User
		var cards []types.Card

		g.Go(func() error {
			u, err := store.GetUserInfo(ctx)
			user = u
			return err
		})
		g.Go(func() error {
			c, err := store.GetCardList(ctx)
			cards = c
			return err
		})

		if err := g.Wait(); err != nil {
			return remoteFailedMsg{flow: flowInitialLoad, err: err}
		}
		return initialLoadedMsg{user: user, cards: cards}
	}
}

// cardCallbacks is the capability record wired into every card node.
func (m *Model) cardCallbacks() gallery.Callbacks {
	return gallery.Callbacks{
		OnPreview: m.openPreview,
		OnLike:    m.toggleLike,
		OnDelete:  m.requestDelete,
	}
}

// openPreview shows the image-preview dialog for a card. No remote call.
func (m *Model) openPreview(node *gallery.CardNode) tea.Cmd {
	m.previewName = node.Card.Name
	m.previewLink = node.Card.Link
	m.modals.Open(ModalPreview)
	return nil
}

// toggleLike issues a like/unlike carrying the current (pre-toggle) liked
// state. The view changes only when the server-returned card arrives.
func (m *Model) toggleLike(node *gallery.CardNode) tea.Cmd {
	node.LikeBusy = true
	store := m.store
	cardID := node.ID()
	liked := node.Liked

	return func() tea.Msg {
		card, err := store.ChangeLikeStatus(context.Background(), cardID, liked)
		if err != nil {
			return remoteFailedMsg{flow: flowLikeToggle, cardID: cardID, err: err}
		}
		return likeToggledMsg{cardID: cardID, card: card}
	}
}

// requestDelete is phase one of the two-phase delete: store the pending
// target and open the confirmation dialog. The remote store is not called.
func (m *Model) requestDelete(node *gallery.CardNode) tea.Cmd {
	m.sess.SetPending(node.ID(), node.ID())
	m.modals.Open(ModalDeleteConfirm)
	return nil
}

// confirmDelete is phase two: issue exactly one delete for the stored id.
// With no pending target it no-ops rather than calling the store.
func (m *Model) confirmDelete() tea.Cmd {
	pending := m.sess.Pending()
	if pending == nil || m.deleteBusy {
		return nil
	}
	m.deleteBusy = true
	store := m.store
	cardID := pending.CardID

	return func() tea.Msg {
		if err := store.DeleteCard(context.Background(), cardID); err != nil {
			return remoteFailedMsg{flow: flowCardDelete, cardID: cardID, err: err}
		}
		return cardDeletedMsg{cardID: cardID}
	}
}

// cancelDelete dismisses the confirmation dialog and clears the pending
// target so it can never go stale.
func (m *Model) cancelDelete() {
	m.sess.ClearPending()
	m.modals.Close(ModalDeleteConfirm)
}

// submitProfile saves the profile form.
func (m *Model) submitProfile() tea.Cmd {
	if !m.profileForm.Valid() || m.profileSaving {
		return nil
	}
	m.profileSaving = true
	store := m.store
	name := strings.TrimSpace(m.profileForm.Value(fieldName))
	about := strings.TrimSpace(m.profileForm.Value(fieldAbout))

	return func() tea.Msg {
		user, err := store.SetUserInfo(context.Background(), name, about)
		if err != nil {
			return remoteFailedMsg{flow: flowProfileSave, err: err}
		}
		return profileSavedMsg{user: user}
	}
}

// submitAvatar saves the avatar form.
func (m *Model) submitAvatar() tea.Cmd {
	if !m.avatarForm.Valid() || m.avatarSaving {
		return nil
	}
	m.avatarSaving = true
	store := m.store
	avatar := strings.TrimSpace(m.avatarForm.Value(fieldAvatar))

	return func() tea.Msg {
		user, err := store.SetUserAvatar(context.Background(), avatar)
		if err != nil {
			return remoteFailedMsg{flow: flowAvatarSave, err: err}
		}
		return avatarSavedMsg{user: user}
	}
}

// submitCard creates a new card; on success the node is prepended so the
// newest card renders first.
func (m *Model) submitCard() tea.Cmd {
	if !m.cardForm.Valid() || m.cardCreating {
		return nil
	}
	m.cardCreating = true
	store := m.store
	name := strings.TrimSpace(m.cardForm.Value(fieldName))
	link := strings.TrimSpace(m.cardForm.Value(fieldLink))

	return func() tea.Msg {
		card, err := store.AddNewCard(context.Background(), name, link)
		if err != nil {
			return remoteFailedMsg{flow: flowCardCreate, err: err}
		}
		return cardCreatedMsg{card: card}
	}
}

// openStats fetches a fresh card list and aggregates it; the stats dialog
// opens when the data arrives. Pure read, no mutation.
func (m *Model) openStats() tea.Cmd {
	if m.statsLoading {
		return nil
	}
	m.statsLoading = true
	store := m.store

	return func() tea.Msg {
		cards, err := store.GetCardList(context.Background())
		if err != nil {
			return remoteFailedMsg{flow: flowStats, err: err}
		}
		return statsLoadedMsg{summary: stats.Aggregate(cards)}
	}
}

// openActivity loads the recent local activity log entries.
func (m *Model) openActivity() tea.Cmd {
	if m.activity == nil {
		m.errorMsg = "Activity log is disabled"
		return nil
	}
	mgr := m.activity

	return func() tea.Msg {
		entries, err := mgr.Load(100)
		if err != nil {
			return errorStatusMsg(err.Error())
		}
		return activityLoadedMsg{entries: entries}
	}
}

// copyPreviewLink puts the previewed image URL on the system clipboard.
func (m *Model) copyPreviewLink() {
	if m.previewLink == "" {
		return
	}
	if err := clipboard.WriteAll(m.previewLink); err != nil {
		m.errorMsg = "Failed to copy link"
		return
	}
	m.statusMsg = "Link copied"
}

// refreshSearchMatches recomputes the fuzzy caption filter.
func (m *Model) refreshSearchMatches() {
	if m.searchQuery == "" {
		m.searchMatches = nil
		return
	}
	nodes := m.cards.Nodes()
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Card.Name
	}
	matches := fuzzy.Find(m.searchQuery, names)
	m.searchMatches = make([]int, len(matches))
	for i, match := range matches {
		m.searchMatches[i] = match.Index
	}
}

// visibleNodes returns the card nodes after the caption filter.
func (m *Model) visibleNodes() []*gallery.CardNode {
	nodes := m.cards.Nodes()
	if m.searchQuery == "" {
		return nodes
	}
	out := make([]*gallery.CardNode, 0, len(m.searchMatches))
	for _, i := range m.searchMatches {
		if i < len(nodes) {
			out = append(out, nodes[i])
		}
	}
	return out
}

// selectedNode returns the highlighted card, nil when the list is empty.
func (m *Model) selectedNode() *gallery.CardNode {
	nodes := m.visibleNodes()
	if m.cardIndex < 0 || m.cardIndex >= len(nodes) {
		return nil
	}
	return nodes[m.cardIndex]
}

// navigateCards moves the selection up or down with wrap-around.
func (m *Model) navigateCards(delta int) {
	n := len(m.visibleNodes())
	if n == 0 {
		return
	}

	m.cardIndex += delta
	if m.cardIndex < 0 {
		m.cardIndex = n - 1
	} else if m.cardIndex >= n {
		m.cardIndex = 0
	}

	pageSize := m.cardPageSize()
	if m.cardIndex < m.cardOffset {
		m.cardOffset = m.cardIndex
	} else if m.cardIndex >= m.cardOffset+pageSize {
		m.cardOffset = m.cardIndex - pageSize + 1
	}
}
