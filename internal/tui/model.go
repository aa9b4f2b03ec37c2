package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"surgetop/internal/i18n"
	"surgetop/internal/surge"
	"surgetop/pkg/logging"
)

// Model is the bubbletea model for the dashboard. It owns every piece of
// UI-visible mutable state; nothing here is shared with other goroutines.
// The background latency test talks to the model exclusively through testCh.
type Model struct {
	client *surge.Client
	tr     i18n.Translator

	refreshInterval time.Duration
	maxRequests     int

	// Current snapshot, replaced wholesale each refresh.
	snapshot surge.Snapshot

	// View navigation.
	view        ViewMode
	cursor      int
	detailIndex *int // set while drilled into a policy group

	// Search. Two independent buffers: one for the group list, one for the
	// drill-down detail list.
	searchMode        bool
	searchQuery       string
	detailSearchQuery string

	// Request grouping.
	groupedMode  bool
	groupedIndex int

	// Overlays.
	showHelp         bool
	showNotifHistory bool
	showDevtools     bool
	killConfirmID    *uint64

	// Background latency test. testingGroup doubles as the in-flight guard:
	// a second test is rejected while it is set.
	testingGroup *string
	testCh       chan tea.Msg

	// latencyCache outlives snapshots. Only completed tests write to it;
	// every fresh snapshot gets its values overlaid before display.
	latencyCache map[string]surge.PolicyDetail

	notifications []Notification
	devtoolsLogs  []logging.LogEntry
	logCh         <-chan logging.LogEntry

	notifViewport    viewport.Model
	devtoolsViewport viewport.Model
	spinner          spinner.Model

	keymap KeyMap

	width, height int

	// keySinceTick suppresses the refresh a tick would trigger, so the list
	// never changes under an actively navigating cursor.
	keySinceTick bool
	quitting     bool
}

// New assembles the dashboard model.
func New(client *surge.Client, tr i18n.Translator, refreshInterval time.Duration, maxRequests int, logCh <-chan logging.LogEntry) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		client:          client,
		tr:              tr,
		refreshInterval: refreshInterval,
		maxRequests:     maxRequests,
		testCh:          make(chan tea.Msg, 1),
		latencyCache:    make(map[string]surge.PolicyDetail),
		logCh:           logCh,
		spinner:         sp,
		keymap:          DefaultKeyMap(),
	}
}

// Init fetches the first snapshot and starts the clocks and listeners.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.refreshCmd(),
		m.tickCmd(),
		m.listenForTestEvents(),
		m.spinner.Tick,
	}
	if m.logCh != nil {
		cmds = append(cmds, m.listenForLogs())
	}
	return tea.Batch(cmds...)
}
