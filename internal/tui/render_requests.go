package tui

import (
	"fmt"

	"surgetop/internal/i18n"
	"surgetop/internal/surge"
)

func (m *Model) renderRequests(width, height int) string {
	innerHeight := height - 2
	var rows []string

	if m.groupedMode {
		rows = append(rows, m.renderPartitionBar(width))
		innerHeight--
	}

	header := fmt.Sprintf("%s %s %s %s %s",
		pad(m.tr.T(i18n.KeyColApp), 14),
		pad(m.tr.T(i18n.KeyColMethod), 7),
		pad(m.tr.T(i18n.KeyColURL), width/2-10),
		pad(m.tr.T(i18n.KeyColPolicy), 14),
		m.tr.T(i18n.KeyColBytes),
	)
	rows = append(rows, headerRowStyle.Render(truncate(header, width-4)))

	requests := m.visibleRequestRows()
	if len(requests) == 0 {
		rows = append(rows, dimStyle.Render(m.tr.T(i18n.KeyNoData)))
	}
	body := make([]string, 0, len(requests))
	for i, req := range requests {
		line := m.renderRequestRow(req, width-4)
		if i == m.cursor {
			line = selectedRowStyle.Render(line)
		}
		body = append(body, line)
	}
	rows = append(rows, visibleWindow(body, m.cursor, innerHeight-len(rows))...)

	return paneStyle.Width(width - 2).Render(joinRows(rows, innerHeight))
}

// renderPartitionBar draws the app-group strip in grouped mode.
func (m *Model) renderPartitionBar(width int) string {
	parts := m.visiblePartitions()
	if len(parts) == 0 {
		return dimStyle.Render(m.tr.T(i18n.KeyNoData))
	}
	var segs []string
	for i, part := range parts {
		label := fmt.Sprintf("%s(%d)", part.Name, len(part.Requests))
		if i == m.groupedIndex {
			segs = append(segs, activeTabStyle.Render(label))
		} else {
			segs = append(segs, tabStyle.Render(label))
		}
	}
	line := segs[0]
	for _, seg := range segs[1:] {
		line += " " + seg
	}
	return truncateLine(line, width-4)
}

func (m *Model) renderRequestRow(req surge.Request, width int) string {
	target := req.URL
	if target == "" {
		target = req.RemoteHost
	}
	status := ""
	switch {
	case req.Failed:
		status = errorTextStyle.Render(m.tr.T(i18n.KeyColFailed))
	case !req.Completed:
		status = infoTextStyle.Render(m.tr.T(i18n.KeyColActive))
	}
	line := fmt.Sprintf("%s %s %s %s %s %s",
		pad(req.AppName(), 14),
		pad(req.Method, 7),
		pad(target, width/2-10),
		pad(req.PolicyName, 14),
		formatBytes(req.InBytes+req.OutBytes),
		status,
	)
	return truncate(line, width)
}

func formatBytes(n uint64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1fGB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
