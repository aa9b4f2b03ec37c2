package tui

import "surgetop/internal/surge"

// visibleGroups is the policy-group list after the group-level search.
func (m *Model) visibleGroups() []surge.PolicyGroup {
	return filterGroups(m.snapshot.PolicyGroups, m.searchQuery)
}

// currentGroup is the group under the cursor, or nil.
func (m *Model) currentGroup() *surge.PolicyGroup {
	groups := m.visibleGroups()
	if m.cursor < 0 || m.cursor >= len(groups) {
		return nil
	}
	return &groups[m.cursor]
}

// visibleDetailItems is the drilled-into group's member list after the
// detail-level search.
func (m *Model) visibleDetailItems() []surge.PolicyItem {
	group := m.currentGroup()
	if group == nil {
		return nil
	}
	return filterPolicyItems(group.Policies, m.detailSearchQuery)
}

// requestsForView returns the raw request list backing the active view.
// Recent requests are capped to the configured maximum.
func (m *Model) requestsForView() []surge.Request {
	switch m.view {
	case ViewRequests:
		requests := m.snapshot.RecentRequests
		if m.maxRequests > 0 && len(requests) > m.maxRequests {
			requests = requests[:m.maxRequests]
		}
		return requests
	case ViewConnections:
		return m.snapshot.ActiveConnections
	default:
		return nil
	}
}

// visiblePartitions are the app partitions in grouped mode, with the
// grouped-mode search applied before counting.
func (m *Model) visiblePartitions() []appPartition {
	return partitionByApp(filterRequestsGrouped(m.requestsForView(), m.searchQuery))
}

// visibleRequestRows is the flat row list for the active request view.
func (m *Model) visibleRequestRows() []surge.Request {
	if m.groupedMode {
		parts := m.visiblePartitions()
		if len(parts) == 0 {
			return nil
		}
		idx := m.groupedIndex
		if idx >= len(parts) {
			idx = len(parts) - 1
		}
		rows := parts[idx].Requests
		if len(rows) > maxGroupedRows {
			rows = rows[:maxGroupedRows]
		}
		return rows
	}
	return filterRequests(m.requestsForView(), m.searchQuery)
}

// selectedRequest is the request under the cursor, or nil.
func (m *Model) selectedRequest() *surge.Request {
	rows := m.visibleRequestRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return &rows[m.cursor]
}

func (m *Model) visibleDNSRecords() []surge.DnsRecord {
	return filterDNSRecords(m.snapshot.DNSCache, m.searchQuery)
}

// currentListLen is the length of whatever list the cursor navigates in the
// active view.
func (m *Model) currentListLen() int {
	switch m.view {
	case ViewPolicies:
		if m.detailIndex != nil {
			return len(m.visibleDetailItems())
		}
		return len(m.visibleGroups())
	case ViewRequests, ViewConnections:
		return len(m.visibleRequestRows())
	case ViewDNS:
		return len(m.visibleDNSRecords())
	default:
		return 0
	}
}

// clampCursor pulls the cursor back inside the filtered list after a
// refresh shrank it. Never negative.
func (m *Model) clampCursor() {
	if n := m.currentListLen(); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	if m.detailIndex != nil {
		if n := len(m.visibleDetailItems()); *m.detailIndex >= n {
			idx := max(0, n-1)
			m.detailIndex = &idx
		}
	}
	if m.groupedMode {
		if n := len(m.visiblePartitions()); m.groupedIndex >= n {
			m.groupedIndex = max(0, n-1)
		}
	}
}

// detailSearchTargeted reports whether search edits the drill-down buffer.
func (m *Model) detailSearchTargeted() bool {
	return m.view == ViewPolicies && m.detailIndex != nil
}

// firstAlertAction is the remedial action of the leading alert, if any.
func (m *Model) firstAlertAction() surge.AlertAction {
	if len(m.snapshot.Alerts) == 0 {
		return surge.ActionNone
	}
	return m.snapshot.Alerts[0].Action
}

func (m *Model) hasReloadAlert() bool {
	for _, alert := range m.snapshot.Alerts {
		if alert.Action == surge.ActionReloadConfig {
			return true
		}
	}
	return false
}
