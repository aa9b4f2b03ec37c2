package surge

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode identifies which backend the unified client is currently using.
type Mode int

const (
	// ModeHTTPAPI talks to Surge's HTTP API. Preferred.
	ModeHTTPAPI Mode = iota
	// ModeCLI shells out to surge-cli. Fallback when the HTTP API is
	// disabled or unreachable.
	ModeCLI
)

func (m Mode) String() string {
	if m == ModeCLI {
		return "cli"
	}
	return "http"
}

// OutboundMode is Surge's global traffic handling mode.
type OutboundMode string

const (
	OutboundDirect OutboundMode = "direct"
	OutboundProxy  OutboundMode = "proxy"
	OutboundRule   OutboundMode = "rule"
)

// Next returns the mode the 'm' shortcut cycles to.
func (m OutboundMode) Next() OutboundMode {
	switch m {
	case OutboundDirect:
		return OutboundProxy
	case OutboundProxy:
		return OutboundRule
	default:
		return OutboundDirect
	}
}

func (m *OutboundMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch OutboundMode(strings.ToLower(s)) {
	case OutboundDirect, OutboundProxy, OutboundRule:
		*m = OutboundMode(strings.ToLower(s))
		return nil
	}
	return fmt.Errorf("unknown outbound mode %q", s)
}

// PolicyType classifies a proxy policy.
type PolicyType string

const (
	PolicyShadowsocks PolicyType = "ss"
	PolicyVMess       PolicyType = "vmess"
	PolicyTrojan      PolicyType = "trojan"
	PolicyHTTP        PolicyType = "http"
	PolicySocks5      PolicyType = "socks5"
	PolicyDirect      PolicyType = "direct"
	PolicyReject      PolicyType = "reject"
	PolicySelect      PolicyType = "select"
	PolicyURLTest     PolicyType = "url-test"
	PolicyFallback    PolicyType = "fallback"
	PolicyLoadBalance PolicyType = "load-balance"
	PolicyUnknown     PolicyType = "unknown"
)

// ParsePolicyType is tolerant: anything unrecognized maps to PolicyUnknown.
func ParsePolicyType(s string) PolicyType {
	switch t := PolicyType(strings.ToLower(s)); t {
	case PolicyShadowsocks, PolicyVMess, PolicyTrojan, PolicyHTTP, PolicySocks5,
		PolicyDirect, PolicyReject, PolicySelect, PolicyURLTest, PolicyFallback,
		PolicyLoadBalance:
		return t
	}
	return PolicyUnknown
}

func (t *PolicyType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParsePolicyType(s)
	return nil
}

// PolicyDetail is the tested state of a single policy. LatencyMs is nil when
// the policy has never been tested or the test failed.
type PolicyDetail struct {
	Name       string     `json:"name"`
	Type       PolicyType `json:"type"`
	Alive      bool       `json:"alive"`
	LatencyMs  *int       `json:"latency,omitempty"`
	LastTestAt string     `json:"last_test_at,omitempty"`
}

// PolicyItem is one entry of a policy group as reported by the API.
type PolicyItem struct {
	IsGroup         bool   `json:"isGroup"`
	Name            string `json:"name"`
	TypeDescription string `json:"typeDescription"`
	LineHash        string `json:"lineHash"`
	Enabled         bool   `json:"enabled"`
}

// PolicyGroup is a named selector over policies or other groups. Selected may
// itself name another group; AvailablePolicies is populated only after an
// explicit latency test of the group.
type PolicyGroup struct {
	Name              string
	Policies          []PolicyItem
	Selected          *string
	AvailablePolicies []string
}

// Request is one proxied request or connection.
type Request struct {
	ID                    uint64   `json:"id"`
	ProcessPath           string   `json:"processPath,omitempty"`
	Rule                  string   `json:"rule,omitempty"`
	PolicyName            string   `json:"policyName,omitempty"`
	RemoteHost            string   `json:"remoteHost,omitempty"`
	URL                   string   `json:"URL,omitempty"`
	Method                string   `json:"method,omitempty"`
	Status                string   `json:"status,omitempty"`
	StartDate             float64  `json:"startDate,omitempty"`
	InBytes               uint64   `json:"inBytes,omitempty"`
	OutBytes              uint64   `json:"outBytes,omitempty"`
	Completed             bool     `json:"completed,omitempty"`
	Failed                bool     `json:"failed,omitempty"`
	Notes                 []string `json:"notes,omitempty"`
	StreamHasRequestBody  bool     `json:"streamHasRequestBody,omitempty"`
	StreamHasResponseBody bool     `json:"streamHasResponseBody,omitempty"`
}

// UnknownApp is the grouping bucket for requests without a process path.
const UnknownApp = "Unknown"

// AppName derives the application name from the process path, e.g.
// "/Applications/Safari.app/.../Safari" -> "Safari".
func (r Request) AppName() string {
	if r.ProcessPath == "" {
		return UnknownApp
	}
	if idx := strings.LastIndex(r.ProcessPath, "/"); idx >= 0 {
		if name := r.ProcessPath[idx+1:]; name != "" {
			return name
		}
		return UnknownApp
	}
	return r.ProcessPath
}

// DnsRecord is one entry of Surge's DNS cache.
type DnsRecord struct {
	Domain   string   `json:"domain"`
	IPs      []string `json:"data"`
	Expires  *float64 `json:"expiresTime,omitempty"`
	Server   string   `json:"server,omitempty"`
	Logs     []string `json:"logs,omitempty"`
	Path     string   `json:"path,omitempty"`
	TimeCost *float64 `json:"timeCost,omitempty"`
}

// ProfileInfo names the currently loaded Surge profile.
type ProfileInfo struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

// TrafficStats is a point-in-time traffic summary.
type TrafficStats struct {
	Upload        uint64 `json:"upload"`
	Download      uint64 `json:"download"`
	UploadSpeed   uint64 `json:"uploadSpeed"`
	DownloadSpeed uint64 `json:"downloadSpeed"`
}

// AlertLevel grades an Alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertError
)

// AlertAction is the remedial action a user can take from an alert.
type AlertAction int

const (
	ActionNone AlertAction = iota
	ActionStartService
	ActionReloadConfig
)

// Alert is a persistent, user-visible condition. It carries a stable message
// key rather than prerendered text; the presentation layer owns the wording.
type Alert struct {
	Level      AlertLevel
	MessageKey string
	Action     AlertAction
}

// Stable alert keys.
const (
	AlertKeyNotRunning      = "surge_not_running"
	AlertKeyHTTPAPIDisabled = "http_api_disabled"
)

// NewServiceNotRunningAlert is raised when no Surge process exists.
func NewServiceNotRunningAlert() Alert {
	return Alert{Level: AlertError, MessageKey: AlertKeyNotRunning, Action: ActionStartService}
}

// NewHTTPAPIDisabledAlert is raised when Surge runs but its HTTP API does
// not answer.
func NewHTTPAPIDisabledAlert() Alert {
	return Alert{Level: AlertError, MessageKey: AlertKeyHTTPAPIDisabled, Action: ActionReloadConfig}
}

// Snapshot is one consistent pull of everything the dashboard displays.
// Built fresh each refresh tick and treated as immutable afterwards; the
// only later mutation is the latency-cache overlay applied by the UI.
type Snapshot struct {
	Running           bool
	HTTPAvailable     bool
	OutboundMode      *OutboundMode
	MITMEnabled       *bool
	CaptureEnabled    *bool
	Policies          []PolicyDetail
	PolicyGroups      []PolicyGroup
	RecentRequests    []Request
	ActiveConnections []Request
	DNSCache          []DnsRecord
	Alerts            []Alert
}
