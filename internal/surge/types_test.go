package surge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestAppName(t *testing.T) {
	assert.Equal(t, "Safari", Request{ProcessPath: "/Applications/Safari.app/Contents/MacOS/Safari"}.AppName())
	assert.Equal(t, "node", Request{ProcessPath: "node"}.AppName())
	assert.Equal(t, UnknownApp, Request{}.AppName())
	assert.Equal(t, UnknownApp, Request{ProcessPath: "/usr/bin/"}.AppName())
}

func TestOutboundModeCycle(t *testing.T) {
	assert.Equal(t, OutboundProxy, OutboundDirect.Next())
	assert.Equal(t, OutboundRule, OutboundProxy.Next())
	assert.Equal(t, OutboundDirect, OutboundRule.Next())
}

func TestParsePolicyType(t *testing.T) {
	assert.Equal(t, PolicyShadowsocks, ParsePolicyType("ss"))
	assert.Equal(t, PolicyURLTest, ParsePolicyType("url-test"))
	assert.Equal(t, PolicyUnknown, ParsePolicyType("quantum-tunnel"))
	assert.Equal(t, PolicyUnknown, ParsePolicyType(""))
}

func TestPolicyDetailJSONRoundTrip(t *testing.T) {
	raw := `{"name": "Hong Kong", "type": "ss", "alive": true, "latency": 87}`
	var detail PolicyDetail
	require.NoError(t, json.Unmarshal([]byte(raw), &detail))
	assert.Equal(t, "Hong Kong", detail.Name)
	assert.Equal(t, PolicyShadowsocks, detail.Type)
	require.NotNil(t, detail.LatencyMs)
	assert.Equal(t, 87, *detail.LatencyMs)
}

func TestAlertConstructors(t *testing.T) {
	notRunning := NewServiceNotRunningAlert()
	assert.Equal(t, AlertError, notRunning.Level)
	assert.Equal(t, AlertKeyNotRunning, notRunning.MessageKey)
	assert.Equal(t, ActionStartService, notRunning.Action)

	apiDown := NewHTTPAPIDisabledAlert()
	assert.Equal(t, AlertError, apiDown.Level)
	assert.Equal(t, AlertKeyHTTPAPIDisabled, apiDown.MessageKey)
	assert.Equal(t, ActionReloadConfig, apiDown.Action)
}
