package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/okulov/photocards/internal/gallery"
	"github.com/okulov/photocards/internal/history"
	"github.com/okulov/photocards/internal/session"
	"github.com/okulov/photocards/internal/stats"
	"github.com/okulov/photocards/internal/types"
)

// Store is the remote gallery service as seen by the coordinator. Failure
// for any operation is a single generic kind; callers retry only through a
// fresh user action.
type Store interface {
	GetUserInfo(ctx context.Context) (*types.User, error)
	GetCardList(ctx context.Context) ([]types.Card, error)
	SetUserInfo(ctx context.Context, name, about string) (*types.User, error)
	SetUserAvatar(ctx context.Context, avatar string) (*types.User, error)
	AddNewCard(ctx context.Context, name, link string) (*types.Card, error)
	DeleteCard(ctx context.Context, cardID string) error
	ChangeLikeStatus(ctx context.Context, cardID string, liked bool) (*types.Card, error)
}

// Model is the TUI state. All mutation happens on the update loop; remote
// calls run as commands and re-enter the loop as the messages below.
type Model struct {
	store    Store
	sess     *session.Context
	modals   *ModalManager
	logger   *zap.Logger
	activity *history.Manager // nil when the activity log is disabled

	// Profile display nodes
	profileName   string
	profileAbout  string
	profileAvatar string

	// Card list
	cards      *gallery.List
	cardIndex  int
	cardOffset int

	// Caption search
	searchActive  bool
	searchQuery   string
	searchMatches []int // indices into the card list, nil = no filter

	// Forms
	profileForm *formModel
	avatarForm  *formModel
	cardForm    *formModel

	// Busy flags, one per mutating flow
	profileSaving bool
	avatarSaving  bool
	cardCreating  bool
	deleteBusy    bool
	statsLoading  bool

	// Preview state
	previewName string
	previewLink string

	// Stats / activity modal content
	statsSummary    *stats.Summary
	activityEntries []history.Entry

	loaded  bool // initial load completed
	loading bool // initial load in flight

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
}

// NewModel creates the coordinator. activity may be nil.
func NewModel(store Store, sess *session.Context, logger *zap.Logger, activity *history.Manager) *Model {
	return &Model{
		store:       store,
		sess:        sess,
		modals:      NewModalManager(),
		logger:      logger,
		activity:    activity,
		cards:       gallery.NewList(),
		profileForm: newProfileForm(),
		avatarForm:  newAvatarForm(),
		cardForm:    newCardForm(),
	}
}

// Init starts the concurrent initial load of profile and card collection.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.loadInitial()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case initialLoadedMsg:
		m.applyInitialLoad(msg)

	case profileSavedMsg:
		m.profileSaving = false
		m.profileName = msg.user.Name
		m.profileAbout = msg.user.About
		m.modals.Close(ModalProfileEdit)
		m.statusMsg = "Profile updated"
		m.recordActivity(history.ActionProfileSaved, "", msg.user.Name)

	case avatarSavedMsg:
		m.avatarSaving = false
		m.profileAvatar = msg.user.Avatar
		m.avatarForm.Clear()
		m.modals.Close(ModalAvatarEdit)
		m.statusMsg = "Avatar updated"
		m.recordActivity(history.ActionAvatarSaved, "", msg.user.Avatar)

	case cardCreatedMsg:
		m.cardCreating = false
		node := gallery.NewNode(*msg.card, m.sess.CurrentUser(), m.cardCallbacks())
		m.cards.Prepend(node)
		m.cardIndex = 0
		m.cardOffset = 0
		m.cardForm.Clear()
		m.modals.Close(ModalNewCard)
		m.statusMsg = "Card created: " + msg.card.Name
		m.recordActivity(history.ActionCardCreated, msg.card.ID, msg.card.Name)

	case cardDeletedMsg:
		m.deleteBusy = false
		m.cards.Remove(msg.cardID)
		m.sess.ClearPending()
		m.clampCardIndex()
		m.refreshSearchMatches()
		m.modals.Close(ModalDeleteConfirm)
		m.statusMsg = "Card deleted"
		m.recordActivity(history.ActionCardDeleted, msg.cardID, "")

	case likeToggledMsg:
		// The node may have been deleted while the call was in flight.
		if node := m.cards.Find(msg.cardID); node != nil {
			node.LikeBusy = false
			wasLiked := node.Liked
			node.ApplyServerCard(*msg.card, m.sess.CurrentUser())
			action := history.ActionCardLiked
			if wasLiked {
				action = history.ActionCardUnliked
			}
			m.recordActivity(action, msg.cardID, msg.card.Name)
		}

	case statsLoadedMsg:
		m.statsLoading = false
		summary := msg.summary
		m.statsSummary = &summary
		m.modals.Open(ModalStats)

	case activityLoadedMsg:
		m.activityEntries = msg.entries
		m.modals.Open(ModalActivity)

	case remoteFailedMsg:
		m.applyRemoteFailure(msg)

	case errorStatusMsg:
		m.errorMsg = string(msg)

	case clearStatusMsg:
		m.statusMsg = ""
	}

	return m, cmd
}

// applyInitialLoad populates profile nodes and the card list in server
// order. Rendering waited on both fetches completing.
func (m *Model) applyInitialLoad(msg initialLoadedMsg) {
	m.loading = false
	m.loaded = true
	m.sess.SetCurrentUser(msg.user.ID)
	m.profileName = msg.user.Name
	m.profileAbout = msg.user.About
	m.profileAvatar = msg.user.Avatar

	m.cards.Reset()
	for _, card := range msg.cards {
		m.cards.Append(gallery.NewNode(card, m.sess.CurrentUser(), m.cardCallbacks()))
	}
	m.cardIndex = 0
	m.cardOffset = 0
	m.statusMsg = "Loaded"
}

// applyRemoteFailure restores the failed flow's affordance and leaves its
// dialog open so the user may retry. The error is logged and shown in the
// footer only.
func (m *Model) applyRemoteFailure(msg remoteFailedMsg) {
	if m.logger != nil {
		m.logger.Error("remote operation failed",
			zap.String("flow", msg.flow.String()),
			zap.String("cardId", msg.cardID),
			zap.Error(msg.err))
	}

	switch msg.flow {
	case flowInitialLoad:
		m.loading = false
	case flowProfileSave:
		m.profileSaving = false
	case flowAvatarSave:
		m.avatarSaving = false
	case flowCardCreate:
		m.cardCreating = false
	case flowCardDelete:
		m.deleteBusy = false
	case flowLikeToggle:
		if node := m.cards.Find(msg.cardID); node != nil {
			node.LikeBusy = false
		}
	case flowStats:
		m.statsLoading = false
	}

	m.errorMsg = msg.err.Error()
}

// recordActivity appends to the local activity log; failures there must
// never disturb the session.
func (m *Model) recordActivity(action history.Action, cardID, detail string) {
	if m.activity == nil {
		return
	}
	if err := m.activity.Record(action, cardID, detail); err != nil && m.logger != nil {
		m.logger.Warn("failed to record activity", zap.Error(err))
	}
}

// clampCardIndex keeps the selection inside the visible list.
func (m *Model) clampCardIndex() {
	n := len(m.visibleNodes())
	if m.cardIndex >= n {
		m.cardIndex = n - 1
	}
	if m.cardIndex < 0 {
		m.cardIndex = 0
	}
	if m.cardOffset > m.cardIndex {
		m.cardOffset = m.cardIndex
	}
}

// Cleanup releases resources owned by the model.
func (m *Model) Cleanup() {
	if m.activity != nil {
		if err := m.activity.Close(); err != nil && m.logger != nil {
			m.logger.Warn("failed to close activity log", zap.Error(err))
		}
	}
	if m.logger != nil {
		_ = m.logger.Sync()
	}
}

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.modals.Active() {
	case ModalProfileEdit:
		return m.renderFormModal(m.profileForm, m.profileSaving)
	case ModalAvatarEdit:
		return m.renderFormModal(m.avatarForm, m.avatarSaving)
	case ModalNewCard:
		return m.renderFormModal(m.cardForm, m.cardCreating)
	case ModalPreview:
		return m.renderPreviewModal()
	case ModalDeleteConfirm:
		return m.renderDeleteConfirmModal()
	case ModalStats:
		return m.renderStatsModal()
	case ModalActivity:
		return m.renderActivityModal()
	case ModalHelp:
		return m.renderHelpModal()
	default:
		return m.renderMain()
	}
}

// Message types carrying remote completions back onto the update loop.

type initialLoadedMsg struct {
	user  *types.User
	cards []types.Card
}

type profileSavedMsg struct {
	user *types.User
}

type avatarSavedMsg struct {
	user *types.User
}

type cardCreatedMsg struct {
	card *types.Card
}

type cardDeletedMsg struct {
	cardID string
}

type likeToggledMsg struct {
	cardID string
	card   *types.Card
}

type statsLoadedMsg struct {
	summary stats.Summary
}

type activityLoadedMsg struct {
	entries []history.Entry
}

type remoteFailedMsg struct {
	flow   flowKind
	cardID string
	err    error
}

type clearStatusMsg struct{}

// errorStatusMsg surfaces a local (non-remote) failure in the footer.
type errorStatusMsg string

// flowKind names the mutating flow a completion belongs to, so the right
// busy affordance is restored on both success and failure paths.
type flowKind int

const (
	flowInitialLoad flowKind = iota
	flowProfileSave
	flowAvatarSave
	flowCardCreate
	flowCardDelete
	flowLikeToggle
	flowStats
)

func (f flowKind) String() string {
	switch f {
	case flowInitialLoad:
		return "initialLoad"
	case flowProfileSave:
		return "profileSave"
	case flowAvatarSave:
		return "avatarSave"
	case flowCardCreate:
		return "cardCreate"
	case flowCardDelete:
		return "cardDelete"
	case flowLikeToggle:
		return "likeToggle"
	case flowStats:
		return "stats"
	default:
		return "unknown"
	}
}
