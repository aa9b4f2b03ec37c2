package tui

import (
	"fmt"

	"surgetop/internal/i18n"
	"surgetop/internal/surge"
)

func (m *Model) renderOverview(width, height int) string {
	var lines []string

	for _, alert := range m.snapshot.Alerts {
		lines = append(lines, m.renderAlert(alert))
	}
	if len(m.snapshot.Alerts) > 0 {
		lines = append(lines, "")
	}

	state := m.tr.T(i18n.KeyStatusStopped)
	stateStyle := errorTextStyle
	if m.snapshot.Running {
		state = m.tr.T(i18n.KeyStatusRunning)
		stateStyle = successTextStyle
	}
	lines = append(lines, fmt.Sprintf("Surge: %s", stateStyle.Render(state)))

	backend := m.tr.T(i18n.KeyModeCLI)
	if m.snapshot.HTTPAvailable {
		backend = m.tr.T(i18n.KeyModeHTTP)
	}
	lines = append(lines, fmt.Sprintf("Backend: %s", backend))

	outbound := m.tr.T(i18n.KeyNoData)
	if m.snapshot.OutboundMode != nil {
		outbound = string(*m.snapshot.OutboundMode)
	}
	lines = append(lines, fmt.Sprintf("%s: %s", m.tr.T(i18n.KeyOutboundMode), outbound))

	lines = append(lines,
		fmt.Sprintf("%s: %s", m.tr.T(i18n.KeyMITM), m.renderToggle(m.snapshot.MITMEnabled)),
		fmt.Sprintf("%s: %s", m.tr.T(i18n.KeyCapture), m.renderToggle(m.snapshot.CaptureEnabled)),
		"",
		fmt.Sprintf("%s: %d  %s: %d  %s: %d",
			m.tr.T(i18n.KeyTabRequests), len(m.snapshot.RecentRequests),
			m.tr.T(i18n.KeyTabConnections), len(m.snapshot.ActiveConnections),
			m.tr.T(i18n.KeyTabDNS), len(m.snapshot.DNSCache)),
	)

	// One line per group with its effective leaf policy.
	if len(m.snapshot.PolicyGroups) > 0 {
		lines = append(lines, "", headerRowStyle.Render(m.tr.T(i18n.KeyTabPolicies)))
		for _, group := range m.snapshot.PolicyGroups {
			effective := m.tr.T(i18n.KeyNoData)
			if leaf, ok := resolveEffectivePolicy(m.snapshot, group.Name); ok {
				effective = leaf
			}
			lines = append(lines, fmt.Sprintf("  %s → %s", group.Name, effective))
		}
	}

	return paneStyle.Width(width - 2).Render(joinRows(lines, height-2))
}

func (m *Model) renderAlert(alert surge.Alert) string {
	text := m.tr.T(alert.MessageKey)
	switch alert.Level {
	case surge.AlertError:
		return errorTextStyle.Render("✖ " + text)
	case surge.AlertWarning:
		return warningTextStyle.Render("⚠ " + text)
	default:
		return infoTextStyle.Render("ℹ " + text)
	}
}

func (m *Model) renderToggle(enabled *bool) string {
	if enabled == nil {
		return dimStyle.Render(m.tr.T(i18n.KeyNoData))
	}
	if *enabled {
		return successTextStyle.Render(m.tr.T(i18n.KeyEnabled))
	}
	return dimStyle.Render(m.tr.T(i18n.KeyDisabled))
}
