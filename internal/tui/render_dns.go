package tui

import (
	"fmt"
	"strings"
	"time"

	"surgetop/internal/i18n"
)

func (m *Model) renderDNS(width, height int) string {
	innerHeight := height - 2

	header := fmt.Sprintf("%s %s %s %s",
		pad(m.tr.T(i18n.KeyColDomain), width/3),
		pad(m.tr.T(i18n.KeyColAddresses), width/3),
		pad(m.tr.T(i18n.KeyColServer), 16),
		m.tr.T(i18n.KeyColTTL),
	)
	rows := []string{headerRowStyle.Render(truncate(header, width-4))}

	records := m.visibleDNSRecords()
	if len(records) == 0 {
		rows = append(rows, dimStyle.Render(m.tr.T(i18n.KeyNoData)))
	}
	body := make([]string, 0, len(records))
	for i, rec := range records {
		ttl := "-"
		if rec.Expires != nil {
			remaining := time.Until(time.Unix(int64(*rec.Expires), 0))
			if remaining > 0 {
				ttl = fmt.Sprintf("%ds", int(remaining.Seconds()))
			} else {
				ttl = "expired"
			}
		}
		line := fmt.Sprintf("%s %s %s %s",
			pad(rec.Domain, width/3),
			pad(strings.Join(rec.IPs, ", "), width/3),
			pad(rec.Server, 16),
			ttl,
		)
		line = truncate(line, width-4)
		if i == m.cursor {
			line = selectedRowStyle.Render(line)
		}
		body = append(body, line)
	}
	rows = append(rows, visibleWindow(body, m.cursor, innerHeight-1)...)

	return paneStyle.Width(width - 2).Render(joinRows(rows, innerHeight))
}
