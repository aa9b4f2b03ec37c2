package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"surgetop/internal/i18n"
)

func centerOverlay(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderKillConfirm(width, height int) string {
	text := m.tr.Tf(i18n.KeyKillConfirm, *m.killConfirmID)
	return centerOverlay(killConfirmStyle.Render(text), width, height)
}

func (m *Model) renderHelp(width, height int) string {
	bindings := []key.Binding{
		m.keymap.ViewKeys,
		m.keymap.Up,
		m.keymap.Down,
		m.keymap.Left,
		m.keymap.Right,
		m.keymap.Enter,
		m.keymap.Search,
		m.keymap.Group,
		m.keymap.Test,
		m.keymap.Kill,
		m.keymap.FlushDNS,
		m.keymap.Outbound,
		m.keymap.MITM,
		m.keymap.Capture,
		m.keymap.Start,
		m.keymap.Reload,
		m.keymap.Copy,
		m.keymap.Notifs,
		m.keymap.Devtools,
		m.keymap.Esc,
		m.keymap.Quit,
	}

	lines := []string{headerRowStyle.Render(m.tr.T(i18n.KeyHelpTitle)), ""}
	for _, binding := range bindings {
		help := binding.Help()
		lines = append(lines, fmt.Sprintf("%s  %s", pad(help.Key, 8), help.Desc))
	}
	return centerOverlay(overlayStyle.Render(strings.Join(lines, "\n")), width, height)
}

func (m *Model) renderNotifHistory(width, height int) string {
	title := headerRowStyle.Render(m.tr.T(i18n.KeyNotifHistoryTitle))
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.notifViewport.View())
	return centerOverlay(overlayStyle.Render(content), width, height)
}

func (m *Model) renderDevtools(width, height int) string {
	title := headerRowStyle.Render(m.tr.T(i18n.KeyDevtoolsTitle))
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.devtoolsViewport.View())
	return centerOverlay(overlayStyle.Render(content), width, height)
}

func (m *Model) renderNotificationList() string {
	if len(m.notifications) == 0 {
		return dimStyle.Render(m.tr.T(i18n.KeyNoData))
	}
	lines := make([]string, 0, len(m.notifications))
	for _, n := range m.notifications {
		stamp := dimStyle.Render(n.Time.Format("15:04:05"))
		lines = append(lines, fmt.Sprintf("%s %s", stamp, notificationStyle(n.Level).Render(n.Message)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDevtoolsList() string {
	if len(m.devtoolsLogs) == 0 {
		return dimStyle.Render(m.tr.T(i18n.KeyNoData))
	}
	lines := make([]string, 0, len(m.devtoolsLogs))
	for _, entry := range m.devtoolsLogs {
		stamp := dimStyle.Render(entry.Timestamp.Format("15:04:05"))
		line := fmt.Sprintf("%s %-5s [%s] %s", stamp, entry.Level, entry.Subsystem, entry.Message)
		if entry.Err != nil {
			line += dimStyle.Render(fmt.Sprintf(" (%v)", entry.Err))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
