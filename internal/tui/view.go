package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"surgetop/internal/i18n"
)

// View renders the whole dashboard frame.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height
	if height <= 0 {
		height = 24
	}

	header := m.renderHeader(width)
	status := m.renderStatusBar(width)

	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	switch {
	case m.killConfirmID != nil:
		body = m.renderKillConfirm(width, bodyHeight)
	case m.showHelp:
		body = m.renderHelp(width, bodyHeight)
	case m.showNotifHistory:
		body = m.renderNotifHistory(width, bodyHeight)
	case m.showDevtools:
		body = m.renderDevtools(width, bodyHeight)
	default:
		body = m.renderView(width, bodyHeight)
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, status))
}

func (m *Model) renderHeader(width int) string {
	tabs := []struct {
		view ViewMode
		key  string
	}{
		{ViewOverview, i18n.KeyTabOverview},
		{ViewPolicies, i18n.KeyTabPolicies},
		{ViewRequests, i18n.KeyTabRequests},
		{ViewConnections, i18n.KeyTabConnections},
		{ViewDNS, i18n.KeyTabDNS},
	}

	parts := []string{titleStyle.Render(m.tr.T(i18n.KeyAppTitle))}
	for i, tab := range tabs {
		label := m.tr.T(tab.key)
		if m.view == tab.view {
			parts = append(parts, activeTabStyle.Render(intToKey(i+1)+" "+label))
		} else {
			parts = append(parts, tabStyle.Render(intToKey(i+1)+" "+label))
		}
	}
	return truncateLine(lipgloss.JoinHorizontal(lipgloss.Center, parts...), width)
}

func intToKey(n int) string {
	return string(rune('0' + n))
}

func (m *Model) renderView(width, height int) string {
	switch m.view {
	case ViewPolicies:
		return m.renderPolicies(width, height)
	case ViewRequests, ViewConnections:
		return m.renderRequests(width, height)
	case ViewDNS:
		return m.renderDNS(width, height)
	default:
		return m.renderOverview(width, height)
	}
}

// truncate shortens s to the given display width, unicode aware.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// truncateLine trims a rendered line without breaking ANSI sequences badly;
// only used for plain-ish lines.
func truncateLine(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return s
}

// pad right-pads s to a display width.
func pad(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}

func joinRows(rows []string, height int) string {
	if len(rows) > height && height > 0 {
		rows = rows[:height]
	}
	return strings.Join(rows, "\n")
}

// visibleWindow slices rows so the cursor stays on screen.
func visibleWindow(rows []string, cursor, height int) []string {
	if height <= 0 || len(rows) <= height {
		return rows
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := start + height
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
