package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surgetop/internal/surge"
)

func TestPartitionByAppOrdersByCountThenName(t *testing.T) {
	requests := []surge.Request{
		{ID: 1, ProcessPath: "/Applications/Safari.app/Contents/MacOS/Safari"},
		{ID: 2, ProcessPath: "/usr/bin/curl"},
		{ID: 3, ProcessPath: "/usr/bin/curl"},
		{ID: 4},                               // no process path
		{ID: 5, ProcessPath: "/usr/sbin/ssh"}, // ties Safari on count
	}

	parts := partitionByApp(requests)

	require.Len(t, parts, 4)
	assert.Equal(t, "curl", parts[0].Name)
	// Equal counts fall back to name order.
	assert.Equal(t, "Safari", parts[1].Name)
	assert.Equal(t, surge.UnknownApp, parts[2].Name)
	assert.Equal(t, "ssh", parts[3].Name)
	assert.Len(t, parts[0].Requests, 2)
}

func TestMatchesRequestSearchesURLPolicyAndProcess(t *testing.T) {
	req := surge.Request{
		URL:         "https://example.com/path",
		PolicyName:  "Proxy",
		ProcessPath: "/usr/bin/curl",
	}

	assert.True(t, matchesRequest(req, "EXAMPLE"))
	assert.True(t, matchesRequest(req, "proxy"))
	assert.True(t, matchesRequest(req, "curl"))
	assert.False(t, matchesRequest(req, "firefox"))
	assert.True(t, matchesRequest(req, ""))
}

func TestMatchesRequestGroupedIgnoresProcessPath(t *testing.T) {
	req := surge.Request{
		URL:         "https://example.com/path",
		PolicyName:  "Proxy",
		ProcessPath: "/usr/bin/curl",
	}

	assert.True(t, matchesRequestGrouped(req, "example"))
	assert.False(t, matchesRequestGrouped(req, "curl"))
}

func TestFilterGroupsCaseInsensitive(t *testing.T) {
	groups := []surge.PolicyGroup{
		{Name: "Proxy"},
		{Name: "Streaming"},
	}

	out := filterGroups(groups, "prox")

	require.Len(t, out, 1)
	assert.Equal(t, "Proxy", out[0].Name)
}

func TestFilterDNSRecordsMatchesDomainOrServer(t *testing.T) {
	records := []surge.DnsRecord{
		{Domain: "example.com", Server: "8.8.8.8"},
		{Domain: "other.net", Server: "1.1.1.1"},
	}

	byDomain := filterDNSRecords(records, "example")
	require.Len(t, byDomain, 1)
	assert.Equal(t, "example.com", byDomain[0].Domain)

	byServer := filterDNSRecords(records, "1.1")
	require.Len(t, byServer, 1)
	assert.Equal(t, "other.net", byServer[0].Domain)
}
