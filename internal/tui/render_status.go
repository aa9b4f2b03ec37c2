package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"surgetop/internal/i18n"
)

// renderStatusBar draws the bottom line: search prompt or latest toast on
// the left, test spinner and help hint on the right.
func (m *Model) renderStatusBar(width int) string {
	var left string
	switch {
	case m.searchMode:
		buffer := m.searchQuery
		if m.detailSearchTargeted() {
			buffer = m.detailSearchQuery
		}
		left = m.tr.T(i18n.KeySearchPrompt) + buffer + "█"
	case m.activeToast() != nil:
		toast := m.activeToast()
		left = notificationStyle(toast.Level).Render(toast.Message)
	case m.searchQuery != "":
		left = dimStyle.Render(m.tr.T(i18n.KeySearchPrompt) + m.searchQuery)
	default:
		left = dimStyle.Render(m.view.String())
	}

	var right string
	if m.testingGroup != nil {
		right = m.spinner.View() + " " + *m.testingGroup + "  "
	}
	if m.groupedMode && (m.view == ViewRequests || m.view == ViewConnections) {
		right += dimStyle.Render(m.tr.T(i18n.KeyGrouped)) + "  "
	}
	right += dimStyle.Render(m.tr.T(i18n.KeyHelpHint))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return statusBarStyle.Width(width).Render(left + fmt.Sprintf("%*s", gap, "") + right)
}

// activeToast returns the newest notification while it is still fresh.
func (m *Model) activeToast() *Notification {
	if len(m.notifications) == 0 {
		return nil
	}
	latest := &m.notifications[len(m.notifications)-1]
	if time.Since(latest.Time) > toastDuration {
		return nil
	}
	return latest
}
