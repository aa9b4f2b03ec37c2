package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"surgetop/internal/i18n"
	"surgetop/internal/surge"
)

// Update is the single message dispatcher for the dashboard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.notifViewport.Width = overlayWidth(msg.Width)
		m.notifViewport.Height = overlayHeight(msg.Height)
		m.devtoolsViewport.Width = overlayWidth(msg.Width)
		m.devtoolsViewport.Height = overlayHeight(msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.keySinceTick = true
		return m.handleKey(msg)

	case tickMsg:
		cmds := []tea.Cmd{m.tickCmd()}
		if m.keySinceTick {
			// A key arrived since the last tick; skip this refresh so the
			// list does not change under the user's cursor.
			m.keySinceTick = false
		} else {
			cmds = append(cmds, m.refreshCmd())
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(msg.snapshot)
		return m, nil

	case testStartedMsg, testCompletedMsg, testFailedMsg:
		m.handleTestEvent(msg)
		return m, m.listenForTestEvents()

	case actionDoneMsg:
		m.pushNotification(msg.notification)
		if msg.refresh {
			return m, m.refreshCmd()
		}
		return m, nil

	case logEntryMsg:
		m.appendDevtoolsLog(msg)
		return m, m.listenForLogs()

	case logChannelClosedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// applySnapshot installs a fresh snapshot: cache overlay first, then cursor
// clamping against the new filtered list lengths.
func (m *Model) applySnapshot(snap surge.Snapshot) {
	m.snapshot = overlayPolicies(snap, m.latencyCache)
	m.clampCursor()
}

func (m *Model) handleTestEvent(msg tea.Msg) {
	switch ev := msg.(type) {
	case testStartedMsg:
		group := ev.group
		m.testingGroup = &group
		m.notify(NotifInfo, m.tr.Tf(i18n.KeyNotifTestStarted, group))

	case testCompletedMsg:
		storeTestResults(m.latencyCache, ev.results)
		// Immediate display; the next refresh re-applies the same values
		// through the overlay.
		m.snapshot.Policies = ev.results
		if group := findGroup(m.snapshot, ev.group); group != nil {
			group.AvailablePolicies = availableInGroup(*group, ev.results)
		}
		m.testingGroup = nil
		m.notify(NotifSuccess, m.tr.Tf(i18n.KeyNotifTestCompleted, ev.group, len(ev.results)))

	case testFailedMsg:
		m.testingGroup = nil
		m.notify(NotifError, m.tr.Tf(i18n.KeyNotifTestFailed, ev.group, ev.err))
	}
}

func (m *Model) notify(level NotificationLevel, message string) {
	m.pushNotification(Notification{Level: level, Message: message, Time: time.Now()})
}

func (m *Model) pushNotification(n Notification) {
	m.notifications = append(m.notifications, n)
	if len(m.notifications) > maxNotifications {
		m.notifications = m.notifications[len(m.notifications)-maxNotifications:]
	}
	if m.showNotifHistory {
		m.notifViewport.SetContent(m.renderNotificationList())
		m.notifViewport.GotoBottom()
	}
}

func (m *Model) appendDevtoolsLog(msg logEntryMsg) {
	m.devtoolsLogs = append(m.devtoolsLogs, msg.entry)
	if len(m.devtoolsLogs) > maxDevtoolsLogs {
		m.devtoolsLogs = m.devtoolsLogs[len(m.devtoolsLogs)-maxDevtoolsLogs:]
	}
	if m.showDevtools {
		m.devtoolsViewport.SetContent(m.renderDevtoolsList())
		m.devtoolsViewport.GotoBottom()
	}
}
