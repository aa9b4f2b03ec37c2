package surge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemClientIsRunning(t *testing.T) {
	var gotName string
	var gotArgs []string
	orig := runSystemCommand
	defer func() { runSystemCommand = orig }()

	runSystemCommand = func(ctx context.Context, name string, args ...string) (string, string, error) {
		gotName = name
		gotArgs = args
		return "1234\n", "", nil
	}
	assert.True(t, NewSystemClient().IsRunning(context.Background()))
	assert.Equal(t, "pgrep", gotName)
	assert.Equal(t, []string{"-x", "Surge"}, gotArgs)

	runSystemCommand = func(ctx context.Context, name string, args ...string) (string, string, error) {
		return "", "", errors.New("exit status 1")
	}
	assert.False(t, NewSystemClient().IsRunning(context.Background()))
}

func TestSystemClientStartWaitsGracePeriod(t *testing.T) {
	origRun := runSystemCommand
	origSleep := sleepFor
	defer func() {
		runSystemCommand = origRun
		sleepFor = origSleep
	}()

	var slept time.Duration
	sleepFor = func(d time.Duration) { slept = d }
	runSystemCommand = func(ctx context.Context, name string, args ...string) (string, string, error) {
		assert.Equal(t, "open", name)
		assert.Equal(t, []string{"-a", "Surge"}, args)
		return "", "", nil
	}

	require.NoError(t, NewSystemClient().Start(context.Background()))
	assert.Equal(t, startGracePeriod, slept)
}

func TestSystemClientStopNoMatchingProcessesIsSuccess(t *testing.T) {
	orig := runSystemCommand
	defer func() { runSystemCommand = orig }()

	runSystemCommand = func(ctx context.Context, name string, args ...string) (string, string, error) {
		return "", "No matching processes belonging to you were found", errors.New("exit status 1")
	}
	assert.NoError(t, NewSystemClient().Stop(context.Background()))

	runSystemCommand = func(ctx context.Context, name string, args ...string) (string, string, error) {
		return "", "Operation not permitted", errors.New("exit status 1")
	}
	err := NewSystemClient().Stop(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindExecutionFailed))
}
