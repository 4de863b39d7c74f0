package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okulov/photocards/internal/gallery"
	"github.com/okulov/photocards/internal/history"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleLiked = lipgloss.NewStyle().
			Foreground(colorRed)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// cardPageSize returns how many card rows fit in the list area.
func (m *Model) cardPageSize() int {
	// Header (4 lines), borders, footer
	size := m.height - 10
	if size < 1 {
		size = 1
	}
	return size
}

// renderMain renders the gallery: profile header, card list, status bar.
func (m *Model) renderMain() string {
	var b strings.Builder

	// Profile header
	name := m.profileName
	if name == "" {
		name = "(loading)"
	}
	b.WriteString(styleTitle.Render(name))
	if m.profileAbout != "" {
		b.WriteString("  " + styleSubtle.Render(m.profileAbout))
	}
	b.WriteString("\n")
	if m.profileAvatar != "" {
		b.WriteString(styleSubtle.Render("avatar: "+truncate(m.profileAvatar, m.width-12)) + "\n")
	}
	b.WriteString("\n")

	// Card list
	nodes := m.visibleNodes()
	if m.loading {
		b.WriteString(styleSubtle.Render("Loading gallery...") + "\n")
	} else if !m.loaded {
		b.WriteString(styleError.Render("Load failed.") + " " + styleSubtle.Render("Press r to retry") + "\n")
	} else if len(nodes) == 0 {
		if m.searchQuery != "" {
			b.WriteString(styleSubtle.Render("No cards match the filter") + "\n")
		} else {
			b.WriteString(styleSubtle.Render("No cards yet. Press n to create one") + "\n")
		}
	} else {
		pageSize := m.cardPageSize()
		endIdx := m.cardOffset + pageSize
		if endIdx > len(nodes) {
			endIdx = len(nodes)
		}
		for i := m.cardOffset; i < endIdx; i++ {
			b.WriteString(m.renderCardRow(nodes[i], i == m.cardIndex))
			b.WriteString("\n")
		}
		if len(nodes) > pageSize {
			b.WriteString(styleSubtle.Render(fmt.Sprintf("[%d/%d]", m.cardIndex+1, len(nodes))) + "\n")
		}
	}

	content := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - 2).
		Height(m.height - 2).
		Padding(0, 1).
		Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

// renderCardRow renders one card line: like state, count, caption, owner
// and delete markers.
func (m *Model) renderCardRow(n *gallery.CardNode, selected bool) string {
	heart := "♡"
	if n.Liked {
		heart = styleLiked.Render("♥")
	}
	if n.LikeBusy {
		heart = styleSubtle.Render("…")
	}

	owner := styleSubtle.Render(n.Card.Owner.Name)
	marker := "  "
	if n.CanDelete {
		marker = styleSubtle.Render("d ")
	}

	line := fmt.Sprintf("%s %-3d %s  %s %s",
		heart, n.LikeCount, truncate(n.Card.Name, 40), owner, marker)

	if selected {
		return styleSelected.Render("> " + line)
	}
	return "  " + line
}

// renderStatusBar renders the one-line footer.
func (m *Model) renderStatusBar() string {
	if m.searchActive {
		return styleWarning.Render("Search: "+m.searchQuery+"█") + styleSubtle.Render("  (enter: keep, esc: clear)")
	}

	var left string
	switch {
	case m.errorMsg != "":
		left = styleError.Render(truncate(m.errorMsg, m.width-40))
	case m.statusMsg != "":
		left = styleSuccess.Render(truncate(m.statusMsg, m.width-40))
	}

	keys := styleSubtle.Render("n: new | l: like | d: delete | e: profile | a: avatar | s: stats | /: search | ?: help | q: quit")
	if left == "" {
		return keys
	}
	return left + "  " + keys
}

// renderModal centers a bordered dialog box over the view.
func (m *Model) renderModal(title, content string, width, height int) string {
	if width > m.width-4 {
		width = m.width - 4
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(styleTitle.Render(title) + "\n\n" + content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

// renderFormModal renders one of the submit forms, with inline validation
// errors and a busy-aware submit affordance.
func (m *Model) renderFormModal(f *formModel, busy bool) string {
	var b strings.Builder

	for i := range f.fields {
		field := &f.fields[i]
		label := field.label
		if i == f.focus {
			label = styleTitle.Render(label)
		}
		b.WriteString(label + "\n")
		b.WriteString(field.input.View() + "\n")
		if errMsg := f.FieldError(field.name); errMsg != "" {
			b.WriteString(styleError.Render(errMsg) + "\n")
		}
		b.WriteString("\n")
	}

	// Submit affordance: disabled while invalid, busy label while a call
	// is outstanding.
	label := f.submitLabel
	switch {
	case busy:
		b.WriteString(styleWarning.Render("[ " + f.busyLabel + " ]"))
	case f.Valid():
		b.WriteString(styleSuccess.Render("[ " + label + " ]") + styleSubtle.Render("  (enter)"))
	default:
		b.WriteString(styleSubtle.Render("[ " + label + " ]"))
	}

	b.WriteString("\n\n" + styleSubtle.Render("tab: next field | enter: submit | esc: cancel"))

	return m.renderModal(f.title, b.String(), 60, 7+len(f.fields)*4)
}

// renderPreviewModal renders the image-preview dialog.
func (m *Model) renderPreviewModal() string {
	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		styleTitle.Render(m.previewName),
		truncate(m.previewLink, 64),
		styleSubtle.Render("c: copy link | esc: close"))
	return m.renderModal("Preview", content, 70, 10)
}

// renderDeleteConfirmModal renders the two-phase delete confirmation.
func (m *Model) renderDeleteConfirmModal() string {
	caption := ""
	if pending := m.sess.Pending(); pending != nil {
		if node := m.cards.Find(pending.CardID); node != nil {
			caption = node.Card.Name
		}
	}

	var b strings.Builder
	b.WriteString("Delete this card?\n")
	if caption != "" {
		b.WriteString(styleTitle.Render(caption) + "\n")
	}
	b.WriteString("\n")
	if m.deleteBusy {
		b.WriteString(styleWarning.Render("[ Deleting... ]"))
	} else {
		b.WriteString(styleError.Render("[ Yes ]") + styleSubtle.Render("  (enter/y)"))
	}
	b.WriteString("\n\n" + styleSubtle.Render("esc/n: cancel"))

	return m.renderModal("Confirm", b.String(), 50, 10)
}

// renderStatsModal renders the collection statistics.
func (m *Model) renderStatsModal() string {
	if m.statsSummary == nil {
		return m.renderModal("Statistics", "No data", 50, 8)
	}
	s := m.statsSummary

	first, last := "-", "-"
	if !s.FirstCreated.IsZero() {
		first = s.FirstCreated.Format("2 January 2006")
	}
	if !s.LastCreated.IsZero() {
		last = s.LastCreated.Format("2 January 2006")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total cards:          %d\n", s.TotalCards))
	b.WriteString(fmt.Sprintf("First created:        %s\n", first))
	b.WriteString(fmt.Sprintf("Last created:         %s\n", last))
	b.WriteString(fmt.Sprintf("Distinct users:       %d\n", s.DistinctUsers))
	b.WriteString(fmt.Sprintf("Max cards by one:     %d\n", s.MaxByOneUser))
	b.WriteString("\n" + styleTitle.Render("All users:") + "\n")
	for _, name := range s.UserNames {
		b.WriteString("  " + name + "\n")
	}
	b.WriteString("\n" + styleSubtle.Render("esc: close"))

	height := 14 + len(s.UserNames)
	if height > m.height-4 {
		height = m.height - 4
	}
	return m.renderModal("Statistics", b.String(), 50, height)
}

// renderActivityModal renders the local activity log.
func (m *Model) renderActivityModal() string {
	var b strings.Builder
	if len(m.activityEntries) == 0 {
		b.WriteString(styleSubtle.Render("No recorded activity") + "\n")
	}
	max := len(m.activityEntries)
	visible := m.height - 10
	if visible > 0 && max > visible {
		max = visible
	}
	for _, e := range m.activityEntries[:max] {
		ts := e.Timestamp.Format("2006-01-02 15:04")
		b.WriteString(fmt.Sprintf("%s  %-14s %s\n",
			styleSubtle.Render(ts), describeAction(e.Action), truncate(e.Detail, 30)))
	}
	b.WriteString("\n" + styleSubtle.Render("esc: close"))

	return m.renderModal("Activity", b.String(), 70, m.height-4)
}

func describeAction(a history.Action) string {
	switch a {
	case history.ActionProfileSaved:
		return "profile saved"
	case history.ActionAvatarSaved:
		return "avatar saved"
	case history.ActionCardCreated:
		return "card created"
	case history.ActionCardDeleted:
		return "card deleted"
	case history.ActionCardLiked:
		return "card liked"
	case history.ActionCardUnliked:
		return "card unliked"
	default:
		return string(a)
	}
}

// renderHelpModal renders the keyboard shortcut reference.
func (m *Model) renderHelpModal() string {
	help := `Gallery
  up/k, down/j    move selection
  enter, p        preview card
  l, space        like / unlike
  d, x            delete own card
  /               filter by caption
  r               retry initial load

Profile
  e               edit name and about
  a               update avatar

Other
  n               new card
  s               collection statistics
  h               local activity log
  q, ctrl+c       quit`

	return m.renderModal("Keyboard Shortcuts", help+"\n\n"+styleSubtle.Render("esc: close"), 50, 24)
}

// truncate shortens s to max display characters.
func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
