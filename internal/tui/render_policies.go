package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"surgetop/internal/i18n"
	"surgetop/internal/surge"
)

// renderPolicies draws the two-pane policy view: groups on the left, the
// selected (or drilled-into) group's members on the right.
func (m *Model) renderPolicies(width, height int) string {
	paneWidth := width/2 - 2
	innerHeight := height - 2

	left := m.renderGroupList(paneWidth, innerHeight)
	right := m.renderGroupDetail(paneWidth, innerHeight)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(paneWidth).Render(left),
		paneStyle.Width(paneWidth).Render(right),
	)
}

func (m *Model) renderGroupList(width, height int) string {
	groups := m.visibleGroups()
	if len(groups) == 0 {
		return dimStyle.Render(m.tr.T(i18n.KeyNoData))
	}

	rows := make([]string, 0, len(groups))
	for i, group := range groups {
		selected := m.tr.T(i18n.KeyNoData)
		if group.Selected != nil {
			selected = *group.Selected
		}
		line := fmt.Sprintf("%s  %s %s", pad(group.Name, width/2), dimStyle.Render(m.tr.T(i18n.KeySelectedPolicy)+":"), selected)
		line = truncate(line, width)
		if i == m.cursor && m.detailIndex == nil {
			line = selectedRowStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return joinRows(visibleWindow(rows, m.cursor, height), height)
}

func (m *Model) renderGroupDetail(width, height int) string {
	group := m.currentGroup()
	if group == nil {
		return dimStyle.Render(m.tr.T(i18n.KeyNoData))
	}

	effective := m.tr.T(i18n.KeyNoData)
	if leaf, ok := resolveEffectivePolicy(m.snapshot, group.Name); ok {
		effective = leaf
	}
	header := fmt.Sprintf("%s  %s: %s", headerRowStyle.Render(group.Name), m.tr.T(i18n.KeyEffectivePolicy), effective)

	items := m.visibleDetailItems()
	rows := []string{header}
	if m.detailSearchQuery != "" {
		rows = append(rows, dimStyle.Render(m.tr.T(i18n.KeySearchPrompt)+m.detailSearchQuery))
	}

	for i, item := range items {
		rows = append(rows, m.renderPolicyRow(group, item, width, m.detailIndex != nil && i == *m.detailIndex))
	}

	cursor := 0
	if m.detailIndex != nil {
		cursor = *m.detailIndex
	}
	return joinRows(visibleWindow(rows, cursor+1, height), height)
}

func (m *Model) renderPolicyRow(group *surge.PolicyGroup, item surge.PolicyItem, width int, selected bool) string {
	marker := "  "
	if group.Selected != nil && item.Name == *group.Selected {
		marker = "▸ "
	}

	latency := dimStyle.Render("-")
	status := ""
	if detail, ok := m.policyDetail(item.Name); ok {
		if detail.LatencyMs != nil {
			latency = latencyStyle(*detail.LatencyMs).Render(fmt.Sprintf("%d ms", *detail.LatencyMs))
		}
		if detail.Alive {
			status = successTextStyle.Render(m.tr.T(i18n.KeyAvailableTag))
		} else {
			status = errorTextStyle.Render(m.tr.T(i18n.KeyUnavailableTag))
		}
	} else if len(group.AvailablePolicies) > 0 {
		// No per-policy detail; fall back to group test membership.
		if containsString(group.AvailablePolicies, item.Name) {
			status = successTextStyle.Render(m.tr.T(i18n.KeyAvailableTag))
		} else {
			status = errorTextStyle.Render(m.tr.T(i18n.KeyUnavailableTag))
		}
	}

	line := fmt.Sprintf("%s%s %s %s %s", marker, pad(item.Name, width/3), dimStyle.Render(pad(item.TypeDescription, width/5)), latency, status)
	if selected {
		return selectedRowStyle.Render(truncate(line, width))
	}
	return line
}

// policyDetail looks a policy up in the current snapshot's tested list.
func (m *Model) policyDetail(name string) (surge.PolicyDetail, bool) {
	for _, detail := range m.snapshot.Policies {
		if detail.Name == name {
			return detail, true
		}
	}
	return surge.PolicyDetail{}, false
}

func containsString(items []string, want string) bool {
	for _, s := range items {
		if s == want {
			return true
		}
	}
	return false
}
