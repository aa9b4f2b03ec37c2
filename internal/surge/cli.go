package surge

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"surgetop/pkg/logging"
)

// CLIClient drives the surge-cli executable. It covers the subset of
// operations the HTTP API cannot, plus fallbacks for when the API is down.
// The struct only holds the executable path, so it is safe to share.
type CLIClient struct {
	path string
}

// NewCLIClient builds a client for the executable at path.
func NewCLIClient(path string) *CLIClient {
	return &CLIClient{path: path}
}

// execute runs surge-cli with args and returns its stdout. A non-zero exit
// status becomes a KindExecutionFailed error carrying stderr.
func (c *CLIClient) execute(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Debug("CLI", "running %s %s", c.path, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", errExecutionFailed("surge-cli "+strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

// executeRaw runs a JSON-producing subcommand with the --raw flag prepended.
func (c *CLIClient) executeRaw(ctx context.Context, args ...string) (string, error) {
	return c.execute(ctx, append([]string{"--raw"}, args...)...)
}

// DumpKind selects what `surge-cli dump` emits.
type DumpKind string

const (
	DumpActive  DumpKind = "active"
	DumpRequest DumpKind = "request"
	DumpRule    DumpKind = "rule"
	DumpPolicy  DumpKind = "policy"
	DumpDNS     DumpKind = "dns"
	DumpProfile DumpKind = "profile"
)

// Dump returns the raw JSON dump of the given kind.
func (c *CLIClient) Dump(ctx context.Context, kind DumpKind) (string, error) {
	return c.executeRaw(ctx, "dump", string(kind))
}

// Reload re-reads the active profile from disk.
func (c *CLIClient) Reload(ctx context.Context) error {
	_, err := c.execute(ctx, "reload")
	return err
}

// SwitchProfile activates a different profile by name.
func (c *CLIClient) SwitchProfile(ctx context.Context, name string) error {
	_, err := c.execute(ctx, "switch-profile", name)
	return err
}

// TestNetwork runs Surge's connectivity self-test.
func (c *CLIClient) TestNetwork(ctx context.Context) (string, error) {
	return c.execute(ctx, "test-network")
}

// TestPolicy probes a single policy.
func (c *CLIClient) TestPolicy(ctx context.Context, name string) error {
	_, err := c.execute(ctx, "test-policy", name)
	return err
}

// TestGroup re-tests all members of a policy group.
func (c *CLIClient) TestGroup(ctx context.Context, name string) error {
	_, err := c.execute(ctx, "test-group", name)
	return err
}

// FlushDNS clears the DNS cache.
func (c *CLIClient) FlushDNS(ctx context.Context) error {
	_, err := c.execute(ctx, "flush", "dns")
	return err
}

// KillConnection terminates the connection with the given id.
func (c *CLIClient) KillConnection(ctx context.Context, id uint64) error {
	_, err := c.execute(ctx, "kill", strconv.FormatUint(id, 10))
	return err
}

// Stop shuts the Surge engine down.
func (c *CLIClient) Stop(ctx context.Context) error {
	_, err := c.execute(ctx, "stop")
	return err
}

// TestResult is one line of test-all-policies output.
type TestResult struct {
	Name      string
	LatencyMs *int
	Alive     bool
}

// TestAllPolicies probes every policy and returns the parsed results. This
// can take tens of seconds; callers run it off the UI loop.
func (c *CLIClient) TestAllPolicies(ctx context.Context) ([]TestResult, error) {
	out, err := c.execute(ctx, "test-all-policies")
	if err != nil {
		return nil, err
	}
	return parseTestOutput(out), nil
}

// parseTestOutput parses the line-oriented test-all-policies output. Blank
// and malformed lines are dropped silently; this boundary is lenient on
// purpose so one odd line never fails a whole test run.
func parseTestOutput(out string) []TestResult {
	var results []TestResult
	for _, line := range strings.Split(out, "\n") {
		if r, ok := parseTestLine(line); ok {
			results = append(results, r)
		}
	}
	return results
}

// parseTestLine parses one line of the form
// "<name>: RTT <n> ms, Total <m> ms" or "<name>: Failed".
func parseTestLine(line string) (TestResult, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return TestResult{}, false
	}
	name, rest, found := strings.Cut(line, ":")
	if !found {
		return TestResult{}, false
	}
	name = strings.TrimSpace(name)
	rest = strings.TrimSpace(rest)

	if rest == "Failed" {
		return TestResult{Name: name, Alive: false}, true
	}
	if after, ok := strings.CutPrefix(rest, "RTT "); ok {
		msIdx := strings.Index(after, " ms")
		if msIdx < 0 {
			return TestResult{}, false
		}
		rtt, err := strconv.Atoi(after[:msIdx])
		if err != nil {
			return TestResult{}, false
		}
		return TestResult{Name: name, LatencyMs: &rtt, Alive: true}, true
	}
	return TestResult{}, false
}

// SetLogLevel changes the engine log level (verbose, info, notify, warning).
func (c *CLIClient) SetLogLevel(ctx context.Context, level string) error {
	_, err := c.execute(ctx, "set-log-level", level)
	return err
}

// Diagnostics asks the engine for a diagnostics report.
func (c *CLIClient) Diagnostics(ctx context.Context) (string, error) {
	return c.execute(ctx, "diagnostics")
}
