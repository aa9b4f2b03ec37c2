package surge

import (
	"context"

	"surgetop/pkg/logging"
)

// Client is the unified facade over the three backends. It prefers the HTTP
// API and degrades to surge-cli when the API is unreachable. Operations the
// CLI has no equivalent for return a KindBackendUnavailable error in CLI
// mode instead of attempting an HTTP call.
//
// The adapters are stateless and shared freely; mode is written only by
// DetectMode, which runs on the UI goroutine.
type Client struct {
	http *HTTPClient
	cli  *CLIClient
	sys  *SystemClient
	mode Mode
}

// NewClient assembles a facade from the three adapters.
func NewClient(http *HTTPClient, cli *CLIClient, sys *SystemClient) *Client {
	return &Client{http: http, cli: cli, sys: sys, mode: ModeCLI}
}

// DetectMode probes the HTTP API and records the backend to use. Its only
// side effect is the mode flag.
func (c *Client) DetectMode(ctx context.Context) Mode {
	if c.http.IsAvailable(ctx) {
		c.mode = ModeHTTPAPI
	} else {
		c.mode = ModeCLI
	}
	return c.mode
}

// Mode returns the backend chosen by the last DetectMode call.
func (c *Client) Mode() Mode {
	return c.mode
}

func (c *Client) httpOnly(op string) error {
	return errBackendUnavailable(op + " requires the HTTP API, which is not reachable")
}

// IsRunning reports whether a Surge process exists.
func (c *Client) IsRunning(ctx context.Context) bool {
	return c.sys.IsRunning(ctx)
}

// StartService launches the Surge app.
func (c *Client) StartService(ctx context.Context) error {
	return c.sys.Start(ctx)
}

// StopService terminates Surge, preferring a clean engine stop via the CLI.
func (c *Client) StopService(ctx context.Context) error {
	if err := c.cli.Stop(ctx); err == nil {
		return nil
	}
	return c.sys.Stop(ctx)
}

// GetOutboundMode reads the global outbound mode. HTTP only.
func (c *Client) GetOutboundMode(ctx context.Context) (OutboundMode, error) {
	if c.mode != ModeHTTPAPI {
		return "", c.httpOnly("get outbound mode")
	}
	return c.http.GetOutboundMode(ctx)
}

// SetOutboundMode switches the global outbound mode. HTTP only.
func (c *Client) SetOutboundMode(ctx context.Context, mode OutboundMode) error {
	if c.mode != ModeHTTPAPI {
		return c.httpOnly("set outbound mode")
	}
	return c.http.SetOutboundMode(ctx, mode)
}

// SelectPolicyGroup sets a group's active policy. HTTP only.
func (c *Client) SelectPolicyGroup(ctx context.Context, group, policy string) error {
	if c.mode != ModeHTTPAPI {
		return c.httpOnly("select policy group")
	}
	return c.http.SelectPolicyGroup(ctx, group, policy)
}

// GetDNSCache reads the DNS cache contents. HTTP only.
func (c *Client) GetDNSCache(ctx context.Context) ([]DnsRecord, error) {
	if c.mode != ModeHTTPAPI {
		return nil, c.httpOnly("read DNS cache")
	}
	return c.http.GetDNSCache(ctx)
}

// GetMITMStatus reads the MITM toggle. HTTP only.
func (c *Client) GetMITMStatus(ctx context.Context) (bool, error) {
	if c.mode != ModeHTTPAPI {
		return false, c.httpOnly("read MITM status")
	}
	return c.http.GetMITMStatus(ctx)
}

// SetMITMStatus writes the MITM toggle. HTTP only.
func (c *Client) SetMITMStatus(ctx context.Context, enabled bool) error {
	if c.mode != ModeHTTPAPI {
		return c.httpOnly("set MITM status")
	}
	return c.http.SetMITMStatus(ctx, enabled)
}

// GetCaptureStatus reads the capture toggle. HTTP only.
func (c *Client) GetCaptureStatus(ctx context.Context) (bool, error) {
	if c.mode != ModeHTTPAPI {
		return false, c.httpOnly("read capture status")
	}
	return c.http.GetCaptureStatus(ctx)
}

// SetCaptureStatus writes the capture toggle. HTTP only.
func (c *Client) SetCaptureStatus(ctx context.Context, enabled bool) error {
	if c.mode != ModeHTTPAPI {
		return c.httpOnly("set capture status")
	}
	return c.http.SetCaptureStatus(ctx, enabled)
}

// GetCurrentProfile reads the active profile. HTTP only.
func (c *Client) GetCurrentProfile(ctx context.Context, showSensitive bool) (ProfileInfo, error) {
	if c.mode != ModeHTTPAPI {
		return ProfileInfo{}, c.httpOnly("read current profile")
	}
	return c.http.GetCurrentProfile(ctx, showSensitive)
}

// TestPolicy probes one policy via whichever backend is active.
func (c *Client) TestPolicy(ctx context.Context, name string) error {
	if c.mode == ModeHTTPAPI {
		return c.http.TestPolicies(ctx, []string{name})
	}
	return c.cli.TestPolicy(ctx, name)
}

// TestPolicyGroup re-tests a group. The HTTP path returns the names that
// passed; the CLI path runs the test without reporting membership.
func (c *Client) TestPolicyGroup(ctx context.Context, group string) ([]string, error) {
	if c.mode == ModeHTTPAPI {
		return c.http.TestPolicyGroup(ctx, group)
	}
	return nil, c.cli.TestGroup(ctx, group)
}

// KillConnection terminates a connection via whichever backend is active.
func (c *Client) KillConnection(ctx context.Context, id uint64) error {
	if c.mode == ModeHTTPAPI {
		return c.http.KillConnection(ctx, id)
	}
	return c.cli.KillConnection(ctx, id)
}

// ReloadConfig re-reads the active profile from disk.
func (c *Client) ReloadConfig(ctx context.Context) error {
	if c.mode == ModeHTTPAPI {
		return c.http.ReloadProfile(ctx)
	}
	return c.cli.Reload(ctx)
}

// SwitchProfile activates another profile. CLI only; the HTTP API cannot
// switch profiles.
func (c *Client) SwitchProfile(ctx context.Context, name string) error {
	return c.cli.SwitchProfile(ctx, name)
}

// FlushDNS clears the DNS cache via whichever backend is active.
func (c *Client) FlushDNS(ctx context.Context) error {
	if c.mode == ModeHTTPAPI {
		return c.http.FlushDNS(ctx)
	}
	return c.cli.FlushDNS(ctx)
}

// TestAllPoliciesWithLatency probes every policy. Always CLI: the HTTP API
// has no bulk latency endpoint. The returned details carry a placeholder
// direct type; the true type is known only to the group listings.
//
// The test runs detached from the snapshot that triggered it, so liveness is
// re-checked here rather than trusted.
func (c *Client) TestAllPoliciesWithLatency(ctx context.Context) ([]PolicyDetail, error) {
	if !c.IsRunning(ctx) {
		return nil, errServiceNotRunning()
	}
	results, err := c.cli.TestAllPolicies(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]PolicyDetail, 0, len(results))
	for _, r := range results {
		details = append(details, PolicyDetail{
			Name:      r.Name,
			Type:      PolicyDirect,
			Alive:     r.Alive,
			LatencyMs: r.LatencyMs,
		})
	}
	return details, nil
}

// Snapshot pulls one consistent view of Surge's state. It never returns an
// error: failures degrade to empty fields, a log line, or an alert.
//
// Order matters. A dead service short-circuits everything, and feature and
// data fetches only run when the HTTP API answered the mode probe.
func (c *Client) Snapshot(ctx context.Context) Snapshot {
	var snap Snapshot

	snap.Running = c.IsRunning(ctx)
	if !snap.Running {
		snap.Alerts = append(snap.Alerts, NewServiceNotRunningAlert())
		return snap
	}

	mode := c.DetectMode(ctx)
	snap.HTTPAvailable = mode == ModeHTTPAPI
	if !snap.HTTPAvailable {
		snap.Alerts = append(snap.Alerts, NewHTTPAPIDisabledAlert())
	}

	if outbound, err := c.GetOutboundMode(ctx); err == nil {
		snap.OutboundMode = &outbound
	}

	if snap.HTTPAvailable {
		if mitm, err := c.http.GetMITMStatus(ctx); err == nil {
			snap.MITMEnabled = &mitm
		}
		if capture, err := c.http.GetCaptureStatus(ctx); err == nil {
			snap.CaptureEnabled = &capture
		}

		if groups, err := c.http.GetPolicyGroups(ctx); err == nil {
			snap.PolicyGroups = groups
		} else {
			logging.Error("Snapshot", err, "fetching policy groups failed")
		}
		if requests, err := c.http.GetRecentRequests(ctx); err == nil {
			snap.RecentRequests = requests
		} else {
			logging.Error("Snapshot", err, "fetching recent requests failed")
		}
		if conns, err := c.http.GetActiveConnections(ctx); err == nil {
			snap.ActiveConnections = conns
		} else {
			logging.Error("Snapshot", err, "fetching active connections failed")
		}
		if records, err := c.http.GetDNSCache(ctx); err == nil {
			snap.DNSCache = records
		} else {
			logging.Error("Snapshot", err, "fetching DNS cache failed")
		}
	}

	return snap
}
