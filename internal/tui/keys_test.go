package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surgetop/internal/i18n"
	"surgetop/internal/surge"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(nil, i18n.ForLocale("en-US"), time.Second, 100, nil)
	m.snapshot = surge.Snapshot{
		Running:       true,
		HTTPAvailable: true,
		PolicyGroups: []surge.PolicyGroup{
			{
				Name:     "Proxy",
				Selected: strPtr("JP-1"),
				Policies: []surge.PolicyItem{
					{Name: "HK-1"},
					{Name: "JP-1"},
					{Name: "US-West"},
				},
			},
			{Name: "Streaming", Selected: strPtr("HK-1")},
		},
		RecentRequests: []surge.Request{
			{ID: 1, URL: "https://example.com", ProcessPath: "/usr/bin/curl", PolicyName: "Proxy"},
			{ID: 2, RemoteHost: "10.0.0.2:443", ProcessPath: "/usr/bin/curl"},
		},
		ActiveConnections: []surge.Request{
			{ID: 7, URL: "https://stream.example.com", ProcessPath: "/Applications/TV.app/Contents/MacOS/TV"},
		},
		DNSCache: []surge.DnsRecord{
			{Domain: "example.com", IPs: []string{"93.184.216.34"}, Server: "8.8.8.8"},
		},
	}
	return m
}

func pressRune(t *testing.T, m *Model, r rune) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

func press(t *testing.T, m *Model, kt tea.KeyType) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(tea.KeyMsg{Type: kt})
	return cmd
}

func TestKillConfirmBeatsOverlaysAndSearch(t *testing.T) {
	m := newTestModel(t)
	id := uint64(7)
	m.killConfirmID = &id
	m.showHelp = true
	m.searchMode = true

	// Arbitrary keys are swallowed by the dialog.
	cmd := pressRune(t, m, 't')
	assert.Nil(t, cmd)
	assert.NotNil(t, m.killConfirmID)
	assert.True(t, m.showHelp)

	// Escape cancels only the dialog.
	press(t, m, tea.KeyEsc)
	assert.Nil(t, m.killConfirmID)
	assert.True(t, m.showHelp)
}

func TestKillConfirmEnterIssuesKill(t *testing.T) {
	m := newTestModel(t)
	id := uint64(7)
	m.killConfirmID = &id

	cmd := press(t, m, tea.KeyEnter)

	assert.Nil(t, m.killConfirmID)
	assert.NotNil(t, cmd)
}

func TestOverlaySwallowsViewShortcuts(t *testing.T) {
	m := newTestModel(t)
	m.showNotifHistory = true

	pressRune(t, m, '3')
	assert.Equal(t, ViewOverview, m.view)

	// The overlay's own toggle key closes it.
	pressRune(t, m, 'n')
	assert.False(t, m.showNotifHistory)
}

func TestSearchModeInterceptsEveryKey(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewRequests
	m.searchMode = true

	// 'q' must edit the buffer, never quit.
	pressRune(t, m, 'q')
	assert.False(t, m.quitting)
	assert.Equal(t, "q", m.searchQuery)

	press(t, m, tea.KeySpace)
	pressRune(t, m, 'x')
	assert.Equal(t, "q x", m.searchQuery)

	press(t, m, tea.KeyBackspace)
	assert.Equal(t, "q ", m.searchQuery)

	// Enter leaves search mode but keeps the filter.
	press(t, m, tea.KeyEnter)
	assert.False(t, m.searchMode)
	assert.Equal(t, "q ", m.searchQuery)
}

func TestSearchEscClearsFilter(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewDNS
	m.searchMode = true
	m.searchQuery = "exam"
	m.cursor = 3

	press(t, m, tea.KeyEsc)

	assert.False(t, m.searchMode)
	assert.Empty(t, m.searchQuery)
	assert.Zero(t, m.cursor)
}

func TestSearchTargetsDetailBufferWhileDrilledIn(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewPolicies
	idx := 2
	m.detailIndex = &idx
	m.searchQuery = "stream"

	pressRune(t, m, '/')
	require.True(t, m.searchMode)
	pressRune(t, m, 'h')
	pressRune(t, m, 'k')

	assert.Equal(t, "hk", m.detailSearchQuery)
	// The group-level filter is untouched.
	assert.Equal(t, "stream", m.searchQuery)
	// Filter edits pull the detail cursor back to the top.
	require.NotNil(t, m.detailIndex)
	assert.Zero(t, *m.detailIndex)
}

func TestBackOutUnwindsOneLayerPerPress(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewPolicies
	idx := 1
	m.detailIndex = &idx
	m.detailSearchQuery = "hk"
	m.searchQuery = "pro"

	press(t, m, tea.KeyEsc)
	assert.Empty(t, m.detailSearchQuery)
	assert.NotNil(t, m.detailIndex)

	press(t, m, tea.KeyEsc)
	assert.Empty(t, m.searchQuery)
	assert.NotNil(t, m.detailIndex)

	press(t, m, tea.KeyEsc)
	assert.Nil(t, m.detailIndex)
	assert.False(t, m.quitting)

	cmd := press(t, m, tea.KeyEsc)
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

func TestSwitchViewResetsNavigationState(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewPolicies
	m.cursor = 1
	idx := 2
	m.detailIndex = &idx
	m.detailSearchQuery = "hk"

	pressRune(t, m, '3')

	assert.Equal(t, ViewRequests, m.view)
	assert.Zero(t, m.cursor)
	assert.Nil(t, m.detailIndex)
	assert.Empty(t, m.detailSearchQuery)
}

func TestGroupedIndexWrapsAndResetsCursor(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewRequests

	pressRune(t, m, 'g')
	require.True(t, m.groupedMode)

	// One partition: curl holds both recent requests.
	parts := m.visiblePartitions()
	require.Len(t, parts, 1)

	m.snapshot.RecentRequests = append(m.snapshot.RecentRequests,
		surge.Request{ID: 3, ProcessPath: "/usr/sbin/ssh"})
	require.Len(t, m.visiblePartitions(), 2)

	m.cursor = 1
	pressRune(t, m, 'l')
	assert.Equal(t, 1, m.groupedIndex)
	assert.Zero(t, m.cursor)

	// Wrapping in both directions.
	pressRune(t, m, 'l')
	assert.Zero(t, m.groupedIndex)
	pressRune(t, m, 'h')
	assert.Equal(t, 1, m.groupedIndex)
}

func TestEnterDrillsInAtSelectedPolicy(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewPolicies

	press(t, m, tea.KeyEnter)

	require.NotNil(t, m.detailIndex)
	// Proxy's selection is JP-1, the second member.
	assert.Equal(t, 1, *m.detailIndex)
}

func TestEnterOnDetailItemIssuesSelect(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewPolicies
	idx := 0
	m.detailIndex = &idx

	cmd := press(t, m, tea.KeyEnter)

	assert.NotNil(t, cmd)
}

func TestSecondTestIsRejectedWhileOneRuns(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewPolicies
	m.testingGroup = strPtr("Proxy")

	cmd := pressRune(t, m, 't')

	assert.Nil(t, cmd)
	require.Len(t, m.notifications, 1)
	assert.Equal(t, NotifWarning, m.notifications[0].Level)
}

func TestTestShortcutOnlyOnPoliciesView(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewRequests

	cmd := pressRune(t, m, 't')

	assert.Nil(t, cmd)
	assert.Empty(t, m.notifications)
}

func TestKillShortcutOnlyOnConnections(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewRequests
	pressRune(t, m, 'k')
	assert.Nil(t, m.killConfirmID)

	m.view = ViewConnections
	pressRune(t, m, 'k')
	require.NotNil(t, m.killConfirmID)
	assert.Equal(t, uint64(7), *m.killConfirmID)
}

func TestFlushDNSGatedOnViewAndBackend(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewDNS
	m.snapshot.HTTPAvailable = false
	assert.Nil(t, pressRune(t, m, 'f'))

	m.snapshot.HTTPAvailable = true
	assert.NotNil(t, pressRune(t, m, 'f'))
}

func TestCursorClampAfterSnapshotShrinks(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewDNS
	m.cursor = 5

	m.applySnapshot(surge.Snapshot{
		Running:       true,
		HTTPAvailable: true,
		DNSCache:      []surge.DnsRecord{{Domain: "a.com"}, {Domain: "b.com"}},
	})
	assert.Equal(t, 1, m.cursor)

	m.applySnapshot(surge.Snapshot{Running: true})
	assert.Zero(t, m.cursor)
}

func TestCursorMovementClampsAtEdges(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewPolicies

	press(t, m, tea.KeyUp)
	assert.Zero(t, m.cursor)

	press(t, m, tea.KeyDown)
	assert.Equal(t, 1, m.cursor)
	press(t, m, tea.KeyDown)
	assert.Equal(t, 1, m.cursor)
}
