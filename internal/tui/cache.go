package tui

import (
	"sort"

	"surgetop/internal/surge"
)

// overlayPolicies replaces a snapshot's policy list with the cache contents.
// The snapshot path never carries latency, so without this step every
// refresh would wipe the last test results. Pure: the input snapshot is
// returned unchanged when the cache is empty, and applying the overlay twice
// equals applying it once.
func overlayPolicies(snap surge.Snapshot, cache map[string]surge.PolicyDetail) surge.Snapshot {
	if len(cache) == 0 {
		return snap
	}
	policies := make([]surge.PolicyDetail, 0, len(cache))
	for _, detail := range cache {
		policies = append(policies, detail)
	}
	sort.Slice(policies, func(i, j int) bool { return policies[i].Name < policies[j].Name })
	snap.Policies = policies
	return snap
}

// storeTestResults writes completed-test results into the cache, overwriting
// only the tested names.
func storeTestResults(cache map[string]surge.PolicyDetail, results []surge.PolicyDetail) {
	for _, detail := range results {
		cache[detail.Name] = detail
	}
}

// availableInGroup joins test results against a group's member names: a
// policy is available when it tested alive and the group lists it. Groups
// and results come from different backends, so the join is by name only.
func availableInGroup(group surge.PolicyGroup, results []surge.PolicyDetail) []string {
	members := make(map[string]bool, len(group.Policies))
	for _, item := range group.Policies {
		members[item.Name] = true
	}
	var available []string
	for _, detail := range results {
		if detail.Alive && members[detail.Name] {
			available = append(available, detail.Name)
		}
	}
	return available
}
