package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress routes key presses based on the active dialog.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	switch m.modals.Active() {
	case ModalProfileEdit:
		return m.handleFormKeys(msg, m.profileForm, ModalProfileEdit, m.submitProfile)
	case ModalAvatarEdit:
		return m.handleFormKeys(msg, m.avatarForm, ModalAvatarEdit, m.submitAvatar)
	case ModalNewCard:
		return m.handleFormKeys(msg, m.cardForm, ModalNewCard, m.submitCard)
	case ModalPreview:
		return m.handlePreviewKeys(msg)
	case ModalDeleteConfirm:
		return m.handleDeleteConfirmKeys(msg)
	case ModalStats, ModalActivity, ModalHelp:
		return m.handleInfoModalKeys(msg)
	default:
		if m.searchActive {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles the main gallery view.
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.Cleanup()
		return tea.Quit

	case "up", "k":
		m.navigateCards(-1)

	case "down", "j":
		m.navigateCards(1)

	case "enter", "p":
		if node := m.selectedNode(); node != nil {
			return node.Preview()
		}

	case "l", " ":
		if node := m.selectedNode(); node != nil {
			return node.Like()
		}

	case "d", "x":
		if node := m.selectedNode(); node != nil {
			if !node.CanDelete {
				m.statusMsg = "Only your own cards can be deleted"
				return nil
			}
			return node.Delete()
		}

	case "e":
		m.profileForm.SetValues(map[string]string{
			fieldName:  m.profileName,
			fieldAbout: m.profileAbout,
		})
		m.modals.Open(ModalProfileEdit)

	case "a":
		m.avatarForm.Clear()
		m.modals.Open(ModalAvatarEdit)

	case "n":
		m.cardForm.Clear()
		m.modals.Open(ModalNewCard)

	case "s":
		return m.openStats()

	case "h":
		return m.openActivity()

	case "/":
		m.searchActive = true
		m.searchQuery = ""
		m.searchMatches = nil
		m.cardIndex = 0
		m.cardOffset = 0

	case "?":
		m.modals.Open(ModalHelp)

	case "r":
		if !m.loaded && !m.loading {
			m.loading = true
			m.errorMsg = ""
			return m.loadInitial()
		}

	case "esc":
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.searchMatches = nil
			m.clampCardIndex()
		}
	}

	return nil
}

// handleFormKeys drives the three submit forms. Esc dismisses; enter
// submits when the form's validation allows it.
func (m *Model) handleFormKeys(msg tea.KeyMsg, f *formModel, modal Modal, submit func() tea.Cmd) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.modals.Close(modal)
		return nil
	case "tab", "down":
		f.NextField()
		return nil
	case "shift+tab", "up":
		f.PrevField()
		return nil
	case "enter":
		return submit()
	}
	return f.Update(msg)
}

// handlePreviewKeys drives the image-preview dialog.
func (m *Model) handlePreviewKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "enter":
		m.modals.Close(ModalPreview)
	case "c":
		m.copyPreviewLink()
	}
	return nil
}

// handleDeleteConfirmKeys drives the delete confirmation dialog.
func (m *Model) handleDeleteConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "y":
		return m.confirmDelete()
	case "esc", "n", "q":
		m.cancelDelete()
	}
	return nil
}

// handleInfoModalKeys drives the read-only dialogs (stats, activity, help).
func (m *Model) handleInfoModalKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "enter":
		m.modals.CloseActive()
	}
	return nil
}

// handleSearchKeys edits the caption filter in the footer.
func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.searchActive = false
		m.searchQuery = ""
		m.searchMatches = nil
		m.clampCardIndex()
		return nil
	case "enter":
		m.searchActive = false
		return nil
	case "backspace":
		if len(m.searchQuery) > 0 {
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-1]
			m.refreshSearchMatches()
			m.cardIndex = 0
			m.cardOffset = 0
		}
		return nil
	}

	if msg.Type == tea.KeyRunes {
		m.searchQuery += string(msg.Runes)
		m.refreshSearchMatches()
		m.cardIndex = 0
		m.cardOffset = 0
	}
	return nil
}
