package tui

import (
	"time"

	"surgetop/internal/surge"
	"surgetop/pkg/logging"
)

// ---- Refresh cycle ----

// tickMsg fires once per refresh interval.
type tickMsg time.Time

// snapshotMsg carries a freshly built snapshot.
type snapshotMsg struct {
	snapshot surge.Snapshot
}

// ---- Background latency test lifecycle ----

type testStartedMsg struct {
	group string
}

type testCompletedMsg struct {
	group   string
	results []surge.PolicyDetail
}

type testFailedMsg struct {
	group string
	err   error
}

// ---- Foreground operation results ----

// actionDoneMsg reports the outcome of a blocking facade operation. When
// refresh is set the model schedules an immediate snapshot re-fetch.
type actionDoneMsg struct {
	notification Notification
	refresh      bool
}

// ---- Logging ----

// logEntryMsg delivers one pkg/logging entry to the devtools buffer.
type logEntryMsg struct {
	entry logging.LogEntry
}

// logChannelClosedMsg stops the log listener on shutdown.
type logChannelClosedMsg struct{}
