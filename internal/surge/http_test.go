package surge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

// newTestAPI spins up a fake Surge HTTP API and a client pointed at it.
func newTestAPI(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Key") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return NewHTTPClient(u.Hostname(), port, testAPIKey)
}

func TestHTTPClientAuthHeaderSent(t *testing.T) {
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"mode":"rule"}`)
	})

	mode, err := client.GetOutboundMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutboundRule, mode)

	// Wrong key trips the guard in newTestAPI.
	bad := NewHTTPClient("127.0.0.1", 1, "wrong")
	bad.baseURL = client.baseURL
	_, err = bad.GetOutboundMode(context.Background())
	assert.True(t, IsKind(err, KindPermissionDenied))
}

func TestHTTPClientRejectedKeyIsPermissionDenied(t *testing.T) {
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := client.FlushDNS(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindPermissionDenied))
}

func TestHTTPClientMissingEndpointIsNotFound(t *testing.T) {
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetPolicyDetail(context.Background(), "Tokyo")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestHTTPClientNon2xxIsBackendUnavailable(t *testing.T) {
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.GetRecentRequests(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindBackendUnavailable))
}

func TestHTTPClientDecodeFailureIsParseFailure(t *testing.T) {
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"requests": "not-an-array"}`)
	})

	_, err := client.GetRecentRequests(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindParseFailure))
}

func TestHTTPClientUnreachableIsBackendUnavailable(t *testing.T) {
	// Reserved port with nothing listening.
	client := NewHTTPClient("127.0.0.1", 1, testAPIKey)
	_, err := client.GetOutboundMode(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindBackendUnavailable))
	assert.False(t, client.IsAvailable(context.Background()))
}

func TestHTTPClientGetPolicyGroups(t *testing.T) {
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1/policy_groups":
			fmt.Fprint(w, `{
				"Streaming": [{"isGroup": false, "name": "Hong Kong", "typeDescription": "ss", "lineHash": "a1", "enabled": true}],
				"Auto": [{"isGroup": true, "name": "Streaming", "typeDescription": "url-test", "lineHash": "b2", "enabled": true}]
			}`)
		case r.URL.Path == "/v1/policy_groups/select" && r.Method == http.MethodGet:
			group := r.URL.Query().Get("group_name")
			if group == "Streaming" {
				fmt.Fprint(w, `{"policy": "Hong Kong"}`)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	groups, err := client.GetPolicyGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Sorted by name for stable display.
	assert.Equal(t, "Auto", groups[0].Name)
	assert.Equal(t, "Streaming", groups[1].Name)

	// Selection read is best-effort: Auto's 404 leaves Selected nil.
	assert.Nil(t, groups[0].Selected)
	require.NotNil(t, groups[1].Selected)
	assert.Equal(t, "Hong Kong", *groups[1].Selected)
	require.Len(t, groups[1].Policies, 1)
	assert.Equal(t, "Hong Kong", groups[1].Policies[0].Name)
	assert.False(t, groups[1].Policies[0].IsGroup)
}

func TestHTTPClientSelectPolicyGroupPostsBody(t *testing.T) {
	var got map[string]string
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/policy_groups/select", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	err := client.SelectPolicyGroup(context.Background(), "Streaming", "Tokyo")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"group_name": "Streaming", "policy": "Tokyo"}, got)
}

func TestHTTPClientTestPoliciesUsesProbeURL(t *testing.T) {
	var got map[string]any
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/policies/test", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	require.NoError(t, client.TestPolicies(context.Background(), []string{"Hong Kong"}))
	assert.Equal(t, testProbeURL, got["url"])
}

func TestHTTPClientRequestsAndDNS(t *testing.T) {
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/requests/recent":
			fmt.Fprint(w, `{"requests": [{"id": 42, "processPath": "/Applications/Safari.app/Contents/MacOS/Safari", "URL": "https://example.com", "inBytes": 100, "outBytes": 20, "policyName": "DIRECT"}]}`)
		case "/v1/dns":
			fmt.Fprint(w, `{"dnsCache": [{"domain": "example.com", "data": ["93.184.216.34"], "expiresTime": 1700000000.5, "timeCost": 0.012}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	requests, err := client.GetRecentRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, uint64(42), requests[0].ID)
	assert.Equal(t, "Safari", requests[0].AppName())
	assert.Equal(t, uint64(100), requests[0].InBytes)

	records, err := client.GetDNSCache(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "example.com", records[0].Domain)
	assert.Equal(t, []string{"93.184.216.34"}, records[0].IPs)
	require.NotNil(t, records[0].Expires)
}

func TestHTTPClientFeatures(t *testing.T) {
	enabled := map[string]bool{"mitm": true, "capture": false}
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		feature := strings.TrimPrefix(r.URL.Path, "/v1/features/")
		if r.Method == http.MethodPost {
			var body featureStatus
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			enabled[feature] = body.Enabled
			return
		}
		json.NewEncoder(w).Encode(featureStatus{Enabled: enabled[feature]})
	})

	mitm, err := client.GetMITMStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, mitm)

	capture, err := client.GetCaptureStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, capture)

	require.NoError(t, client.SetCaptureStatus(context.Background(), true))
	assert.True(t, enabled["capture"])
}
