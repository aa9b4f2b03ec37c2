package surge

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

// serviceName is the process and application name Surge runs under.
const serviceName = "Surge"

// startGracePeriod is how long to wait after launching the app before
// reporting success. Launching is trusted rather than polled.
const startGracePeriod = 2 * time.Second

// For mocking in tests.
var runSystemCommand = func(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

var sleepFor = time.Sleep

// SystemClient controls the Surge process at the OS level. Stateless and
// safe to share.
type SystemClient struct{}

// NewSystemClient returns a process-control client.
func NewSystemClient() *SystemClient {
	return &SystemClient{}
}

// IsRunning checks for a process with the exact service name. Existence is
// the whole contract; a hung process still counts as running.
func (s *SystemClient) IsRunning(ctx context.Context) bool {
	_, _, err := runSystemCommand(ctx, "pgrep", "-x", serviceName)
	return err == nil
}

// Start launches the Surge app and waits a fixed grace period.
func (s *SystemClient) Start(ctx context.Context) error {
	_, stderr, err := runSystemCommand(ctx, "open", "-a", serviceName)
	if err != nil {
		return errExecutionFailed("open -a "+serviceName, strings.TrimSpace(stderr))
	}
	sleepFor(startGracePeriod)
	return nil
}

// Stop terminates Surge by name. An already-stopped service is success.
func (s *SystemClient) Stop(ctx context.Context) error {
	_, stderr, err := runSystemCommand(ctx, "killall", serviceName)
	if err != nil {
		if strings.Contains(stderr, "No matching processes") {
			return nil
		}
		return errExecutionFailed("killall "+serviceName, strings.TrimSpace(stderr))
	}
	return nil
}
