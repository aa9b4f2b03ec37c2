package tui

import "surgetop/internal/surge"

// maxResolveDepth caps nested group chains; anything deeper is treated as
// unresolvable.
const maxResolveDepth = 10

// resolveEffectivePolicy follows a group's selection chain to the leaf
// policy it ultimately points at. A group may select another group, so the
// walk continues until the name is not a group. Cycles and missing
// selections return ok=false ("no data"), never an error.
func resolveEffectivePolicy(snap surge.Snapshot, name string) (string, bool) {
	visited := make(map[string]bool)
	return resolveChain(snap, name, visited)
}

func resolveChain(snap surge.Snapshot, name string, visited map[string]bool) (string, bool) {
	if visited[name] || len(visited) > maxResolveDepth {
		return "", false
	}
	visited[name] = true

	group := findGroup(snap, name)
	if group == nil {
		// Not a group: this is the leaf policy.
		return name, true
	}
	if group.Selected == nil {
		return "", false
	}
	return resolveChain(snap, *group.Selected, visited)
}

func findGroup(snap surge.Snapshot, name string) *surge.PolicyGroup {
	for i := range snap.PolicyGroups {
		if snap.PolicyGroups[i].Name == name {
			return &snap.PolicyGroups[i]
		}
	}
	return nil
}
