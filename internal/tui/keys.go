package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"surgetop/internal/i18n"
	"surgetop/internal/surge"
)

// handleKey dispatches a key press with strict precedence: the kill-confirm
// dialog beats every other overlay, overlays beat search interception, and
// search beats the normal view bindings.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.killConfirmID != nil {
		return m.handleKillConfirmKey(msg)
	}
	if m.showHelp || m.showNotifHistory || m.showDevtools {
		return m.handleOverlayKey(msg)
	}
	if m.searchMode {
		return m.handleSearchKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleKillConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		id := *m.killConfirmID
		m.killConfirmID = nil
		return m, m.killConnectionCmd(id)
	case tea.KeyEsc:
		m.killConfirmID = nil
	}
	// Everything else is swallowed while the dialog is up.
	return m, nil
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()

	// Closing: Escape, q, or the overlay's own toggle key.
	closing := msg.Type == tea.KeyEsc || s == "q" ||
		(m.showNotifHistory && s == "n") ||
		(m.showDevtools && (s == "`" || s == "~")) ||
		(m.showHelp && s == "?")
	if closing {
		m.showHelp = false
		m.showNotifHistory = false
		m.showDevtools = false
		return m, nil
	}

	// Scrolling stays inside the overlay; nothing reaches the views below.
	var cmd tea.Cmd
	switch {
	case m.showNotifHistory:
		m.notifViewport, cmd = m.notifViewport.Update(msg)
	case m.showDevtools:
		m.devtoolsViewport, cmd = m.devtoolsViewport.Update(msg)
	}
	return m, cmd
}

// handleSearchKey edits the contextually chosen buffer. Every key is either
// an edit or blocked; no shortcut fires while searching.
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	buffer := &m.searchQuery
	if m.detailSearchTargeted() {
		buffer = &m.detailSearchQuery
	}

	switch msg.Type {
	case tea.KeyEsc:
		*buffer = ""
		m.searchMode = false
		m.resetSearchCursor()
	case tea.KeyEnter:
		// Exit search but keep the filter.
		m.searchMode = false
	case tea.KeyBackspace:
		if len(*buffer) > 0 {
			runes := []rune(*buffer)
			*buffer = string(runes[:len(runes)-1])
			m.resetSearchCursor()
		}
	case tea.KeySpace:
		*buffer += " "
		m.resetSearchCursor()
	case tea.KeyRunes:
		*buffer += string(msg.Runes)
		m.resetSearchCursor()
	}
	return m, nil
}

// resetSearchCursor pulls the relevant cursor back to the top after the
// filter changed.
func (m *Model) resetSearchCursor() {
	if m.detailSearchTargeted() {
		idx := 0
		m.detailIndex = &idx
		return
	}
	m.cursor = 0
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keymap

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Search):
		if m.view != ViewOverview {
			m.searchMode = true
			// Entering search starts from an empty buffer.
			if m.detailSearchTargeted() {
				m.detailSearchQuery = ""
			} else {
				m.searchQuery = ""
			}
		}
		return m, nil

	case key.Matches(msg, keys.Esc):
		return m.handleBackOut()

	case key.Matches(msg, keys.Notifs):
		m.showNotifHistory = true
		m.notifViewport.SetContent(m.renderNotificationList())
		m.notifViewport.GotoBottom()
		return m, nil

	case key.Matches(msg, keys.Devtools):
		m.showDevtools = true
		m.devtoolsViewport.SetContent(m.renderDevtoolsList())
		m.devtoolsViewport.GotoBottom()
		return m, nil

	case key.Matches(msg, keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, keys.ViewKeys):
		m.switchView(msg.String())
		return m, nil

	case key.Matches(msg, keys.Group):
		if m.view == ViewRequests || m.view == ViewConnections {
			m.groupedMode = !m.groupedMode
			m.groupedIndex = 0
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, keys.Kill):
		if m.view == ViewConnections {
			if req := m.selectedRequest(); req != nil {
				id := req.ID
				m.killConfirmID = &id
			}
		}
		return m, nil

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, keys.Left):
		m.moveGroupedIndex(-1)
		return m, nil

	case key.Matches(msg, keys.Right):
		m.moveGroupedIndex(1)
		return m, nil

	case key.Matches(msg, keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, keys.Test):
		return m.handleTestShortcut()

	case key.Matches(msg, keys.FlushDNS):
		if m.view == ViewDNS && m.snapshot.HTTPAvailable {
			return m, m.flushDNSCmd()
		}
		return m, nil

	case key.Matches(msg, keys.Outbound):
		if m.snapshot.HTTPAvailable {
			current := surge.OutboundRule
			if m.snapshot.OutboundMode != nil {
				current = *m.snapshot.OutboundMode
			}
			return m, m.setOutboundCmd(current.Next())
		}
		return m, nil

	case key.Matches(msg, keys.MITM):
		if m.view == ViewOverview && m.snapshot.HTTPAvailable {
			enable := m.snapshot.MITMEnabled == nil || !*m.snapshot.MITMEnabled
			return m, m.toggleMITMCmd(enable)
		}
		return m, nil

	case key.Matches(msg, keys.Capture):
		if m.view == ViewOverview && m.snapshot.HTTPAvailable {
			enable := m.snapshot.CaptureEnabled == nil || !*m.snapshot.CaptureEnabled
			return m, m.toggleCaptureCmd(enable)
		}
		return m, nil

	case key.Matches(msg, keys.Start):
		if m.firstAlertAction() == surge.ActionStartService {
			return m, m.startServiceCmd()
		}
		return m, nil

	case key.Matches(msg, keys.Reload):
		if m.hasReloadAlert() {
			return m, m.reloadConfigCmd()
		}
		// Plain manual refresh otherwise.
		return m, m.refreshCmd()

	case key.Matches(msg, keys.Copy):
		return m.handleCopy()
	}

	return m, nil
}

// handleBackOut unwinds one layer per press: detail search, then list
// search, then the group drill-down, then quit.
func (m *Model) handleBackOut() (tea.Model, tea.Cmd) {
	switch {
	case m.detailSearchTargeted() && m.detailSearchQuery != "":
		m.detailSearchQuery = ""
	case m.searchQuery != "":
		m.searchQuery = ""
		m.cursor = 0
	case m.detailIndex != nil:
		m.detailIndex = nil
		m.detailSearchQuery = ""
	default:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) switchView(k string) {
	views := map[string]ViewMode{
		"1": ViewOverview,
		"2": ViewPolicies,
		"3": ViewRequests,
		"4": ViewConnections,
		"5": ViewDNS,
	}
	view, ok := views[k]
	if !ok || view == m.view {
		return
	}
	m.view = view
	m.cursor = 0
	m.detailIndex = nil
	m.detailSearchQuery = ""
}

func (m *Model) moveCursor(delta int) {
	if m.view == ViewPolicies && m.detailIndex != nil {
		n := len(m.visibleDetailItems())
		if n == 0 {
			return
		}
		idx := *m.detailIndex + delta
		if idx < 0 {
			idx = 0
		}
		if idx >= n {
			idx = n - 1
		}
		m.detailIndex = &idx
		return
	}

	n := m.currentListLen()
	if n == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

// moveGroupedIndex steps between app partitions, wrapping, and always
// resets the inner cursor.
func (m *Model) moveGroupedIndex(delta int) {
	if !m.groupedMode || (m.view != ViewRequests && m.view != ViewConnections) {
		return
	}
	n := len(m.visiblePartitions())
	if n == 0 {
		return
	}
	m.groupedIndex = (m.groupedIndex + delta + n) % n
	m.cursor = 0
}

func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.view != ViewPolicies {
		return m, nil
	}
	group := m.currentGroup()
	if group == nil {
		return m, nil
	}

	if m.detailIndex == nil {
		// Drill in, starting at the group's current selection.
		idx := 0
		if group.Selected != nil {
			for i, item := range filterPolicyItems(group.Policies, "") {
				if item.Name == *group.Selected {
					idx = i
					break
				}
			}
		}
		m.detailIndex = &idx
		return m, nil
	}

	items := m.visibleDetailItems()
	if *m.detailIndex >= len(items) {
		return m, nil
	}
	return m, m.selectPolicyCmd(group.Name, items[*m.detailIndex].Name)
}

func (m *Model) handleTestShortcut() (tea.Model, tea.Cmd) {
	if m.view != ViewPolicies {
		return m, nil
	}
	if m.testingGroup != nil {
		// One test at a time; re-issuing is rejected, not queued.
		m.notify(NotifWarning, m.tr.T(i18n.KeyNotifTestInFlight))
		return m, nil
	}
	group := m.currentGroup()
	if group == nil {
		return m, nil
	}
	return m, m.startTestCmd(group.Name)
}

func (m *Model) handleCopy() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewRequests, ViewConnections:
		if req := m.selectedRequest(); req != nil {
			text := req.URL
			if text == "" {
				text = req.RemoteHost
			}
			if text != "" {
				return m, m.copyCmd(text)
			}
		}
	case ViewDNS:
		records := m.visibleDNSRecords()
		if m.cursor < len(records) {
			return m, m.copyCmd(records[m.cursor].Domain)
		}
	}
	return m, nil
}
