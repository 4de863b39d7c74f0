package tui

import (
	"sync"
)

// Modal identifies a dialog. At most one is open at a time.
type Modal int

const (
	ModalNone Modal = iota
	ModalProfileEdit
	ModalAvatarEdit
	ModalNewCard
	ModalPreview
	ModalDeleteConfirm
	ModalStats
	ModalActivity
	ModalHelp
)

// ModalManager owns which dialog is currently visible and enforces the
// single-active-dialog discipline: opening a dialog replaces any open one,
// dialogs never stack.
type ModalManager struct {
	mu sync.RWMutex

	active Modal
}

// NewModalManager starts with no dialog open.
func NewModalManager() *ModalManager {
	return &ModalManager{active: ModalNone}
}

// Open makes modal the only visible dialog. Any previously open dialog is
// closed first.
func (m *ModalManager) Open(modal Modal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = modal
}

// Close closes modal if it is the currently open dialog; closing a dialog
// that is not active is a no-op.
func (m *ModalManager) Close(modal Modal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == modal {
		m.active = ModalNone
	}
}

// CloseActive closes whichever dialog is open; a no-op when none is.
func (m *ModalManager) CloseActive() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = ModalNone
}

// Active returns the open dialog, ModalNone when the view is unobstructed.
func (m *ModalManager) Active() Modal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// IsOpen reports whether any dialog is open.
func (m *ModalManager) IsOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active != ModalNone
}
