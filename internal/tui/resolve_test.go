package tui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surgetop/internal/surge"
)

func strPtr(s string) *string { return &s }

func groupSnapshot(groups ...surge.PolicyGroup) surge.Snapshot {
	return surge.Snapshot{PolicyGroups: groups}
}

func TestResolveEffectivePolicyFollowsNestedGroups(t *testing.T) {
	snap := groupSnapshot(
		surge.PolicyGroup{Name: "Proxy", Selected: strPtr("Auto")},
		surge.PolicyGroup{Name: "Auto", Selected: strPtr("HK-1")},
	)

	leaf, ok := resolveEffectivePolicy(snap, "Proxy")

	require.True(t, ok)
	assert.Equal(t, "HK-1", leaf)
}

func TestResolveEffectivePolicyLeafResolvesToItself(t *testing.T) {
	leaf, ok := resolveEffectivePolicy(groupSnapshot(), "HK-1")

	require.True(t, ok)
	assert.Equal(t, "HK-1", leaf)
}

func TestResolveEffectivePolicyNoSelection(t *testing.T) {
	snap := groupSnapshot(surge.PolicyGroup{Name: "Proxy"})

	_, ok := resolveEffectivePolicy(snap, "Proxy")

	assert.False(t, ok)
}

func TestResolveEffectivePolicyCycle(t *testing.T) {
	snap := groupSnapshot(
		surge.PolicyGroup{Name: "A", Selected: strPtr("B")},
		surge.PolicyGroup{Name: "B", Selected: strPtr("A")},
	)

	_, ok := resolveEffectivePolicy(snap, "A")

	assert.False(t, ok)
}

func TestResolveEffectivePolicyDepthCapped(t *testing.T) {
	var groups []surge.PolicyGroup
	for i := 0; i < 15; i++ {
		groups = append(groups, surge.PolicyGroup{
			Name:     fmt.Sprintf("G%d", i),
			Selected: strPtr(fmt.Sprintf("G%d", i+1)),
		})
	}
	snap := groupSnapshot(groups...)

	_, ok := resolveEffectivePolicy(snap, "G0")

	assert.False(t, ok)
}

func TestFindGroupReturnsPointerIntoSnapshot(t *testing.T) {
	snap := groupSnapshot(surge.PolicyGroup{Name: "Proxy"})

	group := findGroup(snap, "Proxy")

	require.NotNil(t, group)
	group.AvailablePolicies = []string{"HK-1"}
	assert.Equal(t, []string{"HK-1"}, snap.PolicyGroups[0].AvailablePolicies)

	assert.Nil(t, findGroup(snap, "missing"))
}
