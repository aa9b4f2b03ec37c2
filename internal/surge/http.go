package surge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"
)

const httpRequestTimeout = 10 * time.Second

// testProbeURL is what Surge fetches when asked to test a policy.
const testProbeURL = "http://www.gstatic.com/generate_204"

// HTTPClient talks to Surge's HTTP API. Every request carries the X-Key
// header. The zero value is not usable; construct with NewHTTPClient.
// All fields are set once, so one instance is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client for http://{host}:{port}.
func NewHTTPClient(host string, port int, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: fmt.Sprintf("http://%s:%d", host, port),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: httpRequestTimeout},
	}
}

// IsAvailable reports whether the HTTP API answers. Availability is defined
// as a successful outbound-mode read.
func (c *HTTPClient) IsAvailable(ctx context.Context) bool {
	_, err := c.GetOutboundMode(ctx)
	return err == nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errParseFailure("request body", err)
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errTransportFailure(err)
	}
	req.Header.Set("X-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errBackendUnavailable(fmt.Sprintf("HTTP API unreachable: %v", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errPermissionDenied(fmt.Sprintf("HTTP %s rejected the API key (status %d)", path, resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound("endpoint", path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return errBackendUnavailable(fmt.Sprintf("HTTP %s returned status %d", path, resp.StatusCode))
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errParseFailure("HTTP "+path, err)
	}
	return nil
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

type outboundModeResponse struct {
	Mode OutboundMode `json:"mode"`
}

// GetOutboundMode reads the global outbound mode.
func (c *HTTPClient) GetOutboundMode(ctx context.Context) (OutboundMode, error) {
	var resp outboundModeResponse
	if err := c.get(ctx, "/v1/outbound", &resp); err != nil {
		return "", err
	}
	return resp.Mode, nil
}

// SetOutboundMode switches the global outbound mode.
func (c *HTTPClient) SetOutboundMode(ctx context.Context, mode OutboundMode) error {
	return c.post(ctx, "/v1/outbound", map[string]string{"mode": string(mode)}, nil)
}

type policiesResponse struct {
	Proxies      []string `json:"proxies"`
	PolicyGroups []string `json:"policy-groups"`
}

// GetPolicyNames returns all policy names, proxies first then group names.
func (c *HTTPClient) GetPolicyNames(ctx context.Context) ([]string, error) {
	var resp policiesResponse
	if err := c.get(ctx, "/v1/policies", &resp); err != nil {
		return nil, err
	}
	return append(resp.Proxies, resp.PolicyGroups...), nil
}

// GetPolicyDetail reads the tested state of one policy.
func (c *HTTPClient) GetPolicyDetail(ctx context.Context, name string) (PolicyDetail, error) {
	var detail PolicyDetail
	path := "/v1/policies/detail?policy_name=" + url.QueryEscape(name)
	if err := c.get(ctx, path, &detail); err != nil {
		return PolicyDetail{}, err
	}
	return detail, nil
}

// TestPolicies asks Surge to probe the named policies. Results are not
// returned; Surge records them internally.
func (c *HTTPClient) TestPolicies(ctx context.Context, names []string) error {
	body := map[string]any{"policy_names": names, "url": testProbeURL}
	return c.post(ctx, "/v1/policies/test", body, nil)
}

type policyGroupSelectResponse struct {
	Policy string `json:"policy"`
}

// GetPolicyGroups lists every policy group with its current selection.
// Groups are returned in sorted name order for stable display.
func (c *HTTPClient) GetPolicyGroups(ctx context.Context) ([]PolicyGroup, error) {
	var resp map[string][]PolicyItem
	if err := c.get(ctx, "/v1/policy_groups", &resp); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(resp))
	for name := range resp {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]PolicyGroup, 0, len(names))
	for _, name := range names {
		group := PolicyGroup{Name: name, Policies: resp[name]}
		// Selection read is best-effort; a group with no answer just
		// renders without one.
		var sel policyGroupSelectResponse
		path := "/v1/policy_groups/select?group_name=" + url.QueryEscape(name)
		if err := c.get(ctx, path, &sel); err == nil && sel.Policy != "" {
			selected := sel.Policy
			group.Selected = &selected
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// SelectPolicyGroup sets a group's active policy.
func (c *HTTPClient) SelectPolicyGroup(ctx context.Context, group, policy string) error {
	body := map[string]string{"group_name": group, "policy": policy}
	return c.post(ctx, "/v1/policy_groups/select", body, nil)
}

type policyGroupTestResponse struct {
	Available []string `json:"available"`
}

// TestPolicyGroup re-tests one group and returns the names that passed.
func (c *HTTPClient) TestPolicyGroup(ctx context.Context, group string) ([]string, error) {
	var resp policyGroupTestResponse
	body := map[string]string{"group_name": group}
	if err := c.post(ctx, "/v1/policy_groups/test", body, &resp); err != nil {
		return nil, err
	}
	return resp.Available, nil
}

type requestsResponse struct {
	Requests []Request `json:"requests"`
}

// GetRecentRequests lists recently completed and in-flight requests.
func (c *HTTPClient) GetRecentRequests(ctx context.Context) ([]Request, error) {
	var resp requestsResponse
	if err := c.get(ctx, "/v1/requests/recent", &resp); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

// GetActiveConnections lists currently open connections.
func (c *HTTPClient) GetActiveConnections(ctx context.Context) ([]Request, error) {
	var resp requestsResponse
	if err := c.get(ctx, "/v1/requests/active", &resp); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

// KillConnection terminates the connection with the given id.
func (c *HTTPClient) KillConnection(ctx context.Context, id uint64) error {
	return c.post(ctx, "/v1/requests/kill", map[string]uint64{"id": id}, nil)
}

// ReloadProfile re-reads the active Surge profile from disk.
func (c *HTTPClient) ReloadProfile(ctx context.Context) error {
	return c.post(ctx, "/v1/profiles/reload", nil, nil)
}

// GetCurrentProfile reads the active profile. Sensitive values are masked
// unless showSensitive is set.
func (c *HTTPClient) GetCurrentProfile(ctx context.Context, showSensitive bool) (ProfileInfo, error) {
	var info ProfileInfo
	path := fmt.Sprintf("/v1/profiles/current?sensitive=%t", showSensitive)
	if err := c.get(ctx, path, &info); err != nil {
		return ProfileInfo{}, err
	}
	return info, nil
}

// FlushDNS clears Surge's DNS cache.
func (c *HTTPClient) FlushDNS(ctx context.Context) error {
	return c.post(ctx, "/v1/dns/flush", nil, nil)
}

type dnsResponse struct {
	Records []DnsRecord `json:"dnsCache"`
}

// GetDNSCache reads the current DNS cache contents.
func (c *HTTPClient) GetDNSCache(ctx context.Context) ([]DnsRecord, error) {
	var resp dnsResponse
	if err := c.get(ctx, "/v1/dns", &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

type featureStatus struct {
	Enabled bool `json:"enabled"`
}

func (c *HTTPClient) getFeature(ctx context.Context, feature string) (bool, error) {
	var status featureStatus
	if err := c.get(ctx, "/v1/features/"+feature, &status); err != nil {
		return false, err
	}
	return status.Enabled, nil
}

func (c *HTTPClient) setFeature(ctx context.Context, feature string, enabled bool) error {
	return c.post(ctx, "/v1/features/"+feature, map[string]bool{"enabled": enabled}, nil)
}

// GetMITMStatus reports whether MITM is enabled.
func (c *HTTPClient) GetMITMStatus(ctx context.Context) (bool, error) {
	return c.getFeature(ctx, "mitm")
}

// SetMITMStatus enables or disables MITM.
func (c *HTTPClient) SetMITMStatus(ctx context.Context, enabled bool) error {
	return c.setFeature(ctx, "mitm", enabled)
}

// GetCaptureStatus reports whether HTTP capture is enabled.
func (c *HTTPClient) GetCaptureStatus(ctx context.Context) (bool, error) {
	return c.getFeature(ctx, "capture")
}

// SetCaptureStatus enables or disables HTTP capture.
func (c *HTTPClient) SetCaptureStatus(ctx context.Context, enabled bool) error {
	return c.setFeature(ctx, "capture", enabled)
}
