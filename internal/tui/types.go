package tui

import (
	"time"

	"surgetop/internal/surge"
)

// ViewMode selects which dashboard view is active. Views are exclusive.
type ViewMode int

const (
	ViewOverview ViewMode = iota
	ViewPolicies
	ViewRequests
	ViewConnections
	ViewDNS
)

func (v ViewMode) String() string {
	switch v {
	case ViewOverview:
		return "Overview"
	case ViewPolicies:
		return "Policies"
	case ViewRequests:
		return "Requests"
	case ViewConnections:
		return "Connections"
	case ViewDNS:
		return "DNS"
	default:
		return "Unknown"
	}
}

// NotificationLevel grades a toast notification.
type NotificationLevel int

const (
	NotifInfo NotificationLevel = iota
	NotifSuccess
	NotifWarning
	NotifError
)

// Notification is one toast entry. The newest one doubles as the status-bar
// toast until it ages out; all of them live in the capped history.
type Notification struct {
	Level   NotificationLevel
	Message string
	Time    time.Time
}

const (
	// maxNotifications bounds the notification history.
	maxNotifications = 50
	// maxDevtoolsLogs bounds the devtools log buffer.
	maxDevtoolsLogs = 200
	// maxGroupedRows bounds rows shown per app partition.
	maxGroupedRows = 50
	// toastDuration is how long the newest notification stays in the
	// status bar.
	toastDuration = 5 * time.Second
)

// appPartition is one bucket of requests grouped by application.
type appPartition struct {
	Name     string
	Requests []surge.Request
}
