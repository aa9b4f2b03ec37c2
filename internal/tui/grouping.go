package tui

import (
	"sort"
	"strings"

	"surgetop/internal/surge"
)

// partitionByApp buckets requests by derived application name. Partitions
// are ordered by descending request count, ties broken by ascending name,
// so the display stays stable across refreshes.
func partitionByApp(requests []surge.Request) []appPartition {
	buckets := make(map[string][]surge.Request)
	for _, r := range requests {
		app := r.AppName()
		buckets[app] = append(buckets[app], r)
	}

	partitions := make([]appPartition, 0, len(buckets))
	for name, reqs := range buckets {
		partitions = append(partitions, appPartition{Name: name, Requests: reqs})
	}
	sort.Slice(partitions, func(i, j int) bool {
		if len(partitions[i].Requests) != len(partitions[j].Requests) {
			return len(partitions[i].Requests) > len(partitions[j].Requests)
		}
		return partitions[i].Name < partitions[j].Name
	})
	return partitions
}

// matchesRequest filters requests by URL, policy or process path.
func matchesRequest(r surge.Request, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.URL), q) ||
		strings.Contains(strings.ToLower(r.PolicyName), q) ||
		strings.Contains(strings.ToLower(r.ProcessPath), q)
}

// matchesRequestGrouped is the grouped-mode filter. Process path is what the
// partitioning is keyed on, so it is excluded from the match.
func matchesRequestGrouped(r surge.Request, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.URL), q) ||
		strings.Contains(strings.ToLower(r.PolicyName), q)
}

func filterRequestsGrouped(requests []surge.Request, query string) []surge.Request {
	if query == "" {
		return requests
	}
	var out []surge.Request
	for _, r := range requests {
		if matchesRequestGrouped(r, query) {
			out = append(out, r)
		}
	}
	return out
}

func filterRequests(requests []surge.Request, query string) []surge.Request {
	if query == "" {
		return requests
	}
	var out []surge.Request
	for _, r := range requests {
		if matchesRequest(r, query) {
			out = append(out, r)
		}
	}
	return out
}

func filterGroups(groups []surge.PolicyGroup, query string) []surge.PolicyGroup {
	if query == "" {
		return groups
	}
	q := strings.ToLower(query)
	var out []surge.PolicyGroup
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.Name), q) {
			out = append(out, g)
		}
	}
	return out
}

func filterPolicyItems(items []surge.PolicyItem, query string) []surge.PolicyItem {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	var out []surge.PolicyItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			out = append(out, item)
		}
	}
	return out
}

func filterDNSRecords(records []surge.DnsRecord, query string) []surge.DnsRecord {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)
	var out []surge.DnsRecord
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Domain), q) ||
			strings.Contains(strings.ToLower(rec.Server), q) {
			out = append(out, rec)
		}
	}
	return out
}
