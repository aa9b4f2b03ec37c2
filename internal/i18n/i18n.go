// Package i18n provides the display-string strategy for the dashboard. A
// Translator is chosen once at startup from the configured locale and passed
// into every rendering call; domain code never formats user-facing text.
package i18n

import "fmt"

// Translator resolves stable message keys to localized text.
type Translator interface {
	// T returns the text for key, or the key itself when untranslated.
	T(key string) string
	// Tf formats the text for key with args.
	Tf(key string, args ...any) string
	// Locale names the locale, e.g. "en-US".
	Locale() string
}

// Message keys. Alerts reuse the keys carried on the Alert values.
const (
	KeyAppTitle = "app_title"

	KeyTabOverview    = "tab_overview"
	KeyTabPolicies    = "tab_policies"
	KeyTabRequests    = "tab_requests"
	KeyTabConnections = "tab_connections"
	KeyTabDNS         = "tab_dns"

	KeyAlertNotRunning  = "surge_not_running"
	KeyAlertHTTPAPIDown = "http_api_disabled"

	KeyStatusRunning    = "status_running"
	KeyStatusStopped    = "status_stopped"
	KeyModeHTTP         = "mode_http"
	KeyModeCLI          = "mode_cli"
	KeyOutboundMode     = "outbound_mode"
	KeyMITM             = "mitm"
	KeyCapture          = "capture"
	KeyEnabled          = "enabled"
	KeyDisabled         = "disabled"
	KeyNoData           = "no_data"
	KeyGrouped          = "grouped"
	KeySearchPrompt     = "search_prompt"
	KeyHelpHint         = "help_hint"
	KeySelectedPolicy   = "selected_policy"
	KeyEffectivePolicy  = "effective_policy"
	KeyAvailableTag     = "available_tag"
	KeyUnavailableTag   = "unavailable_tag"
	KeyColPolicy        = "col_policy"
	KeyColType          = "col_type"
	KeyColLatency       = "col_latency"
	KeyColURL           = "col_url"
	KeyColMethod        = "col_method"
	KeyColApp           = "col_app"
	KeyColRule          = "col_rule"
	KeyColBytes         = "col_bytes"
	KeyColDomain        = "col_domain"
	KeyColAddresses     = "col_addresses"
	KeyColServer        = "col_server"
	KeyColTTL           = "col_ttl"
	KeyColStatus        = "col_status"
	KeyColFailed        = "col_failed"
	KeyColActive        = "col_active"

	KeyNotifTestStarted   = "notif_test_started"
	KeyNotifTestCompleted = "notif_test_completed"
	KeyNotifTestFailed    = "notif_test_failed"
	KeyNotifTestInFlight  = "notif_test_in_flight"
	KeyNotifKilled        = "notif_killed"
	KeyNotifKillFailed    = "notif_kill_failed"
	KeyNotifReloaded      = "notif_reloaded"
	KeyNotifReloadFailed  = "notif_reload_failed"
	KeyNotifDNSFlushed    = "notif_dns_flushed"
	KeyNotifFlushFailed   = "notif_flush_failed"
	KeyNotifOutboundSet   = "notif_outbound_set"
	KeyNotifSelected      = "notif_selected"
	KeyNotifFeatureSet    = "notif_feature_set"
	KeyNotifStarting      = "notif_starting"
	KeyNotifStartFailed   = "notif_start_failed"
	KeyNotifCopied        = "notif_copied"
	KeyNotifCopyFailed    = "notif_copy_failed"
	KeyNotifOpFailed      = "notif_op_failed"

	KeyKillConfirm       = "kill_confirm"
	KeyHelpTitle         = "help_title"
	KeyNotifHistoryTitle = "notif_history_title"
	KeyDevtoolsTitle     = "devtools_title"
)

var enTable = map[string]string{
	KeyAppTitle: "surgetop",

	KeyTabOverview:    "Overview",
	KeyTabPolicies:    "Policies",
	KeyTabRequests:    "Requests",
	KeyTabConnections: "Connections",
	KeyTabDNS:         "DNS",

	KeyAlertNotRunning:  "Surge is not running. Press 's' to start it.",
	KeyAlertHTTPAPIDown: "The HTTP API is not responding. Enable http-api in your profile and press 'r' to reload.",

	KeyStatusRunning:   "running",
	KeyStatusStopped:   "stopped",
	KeyModeHTTP:        "HTTP API",
	KeyModeCLI:         "CLI fallback",
	KeyOutboundMode:    "Outbound",
	KeyMITM:            "MITM",
	KeyCapture:         "Capture",
	KeyEnabled:         "on",
	KeyDisabled:        "off",
	KeyNoData:          "no data",
	KeyGrouped:         "grouped",
	KeySearchPrompt:    "Search: ",
	KeyHelpHint:        "? help",
	KeySelectedPolicy:  "selected",
	KeyEffectivePolicy: "effective",
	KeyAvailableTag:    "[Available]",
	KeyUnavailableTag:  "[Unavailable]",
	KeyColPolicy:       "Policy",
	KeyColType:         "Type",
	KeyColLatency:      "Latency",
	KeyColURL:          "URL",
	KeyColMethod:       "Method",
	KeyColApp:          "App",
	KeyColRule:         "Rule",
	KeyColBytes:        "Traffic",
	KeyColDomain:       "Domain",
	KeyColAddresses:    "Addresses",
	KeyColServer:       "Server",
	KeyColTTL:          "TTL",
	KeyColStatus:       "Status",
	KeyColFailed:       "failed",
	KeyColActive:       "active",

	KeyNotifTestStarted:   "Testing policy group %s...",
	KeyNotifTestCompleted: "Test of %s finished: %d policies checked",
	KeyNotifTestFailed:    "Test of %s failed: %v",
	KeyNotifTestInFlight:  "A latency test is already running",
	KeyNotifKilled:        "Connection %d killed",
	KeyNotifKillFailed:    "Killing connection %d failed: %v",
	KeyNotifReloaded:      "Profile reloaded",
	KeyNotifReloadFailed:  "Profile reload failed: %v",
	KeyNotifDNSFlushed:    "DNS cache flushed",
	KeyNotifFlushFailed:   "DNS flush failed: %v",
	KeyNotifOutboundSet:   "Outbound mode set to %s",
	KeyNotifSelected:      "%s now uses %s",
	KeyNotifFeatureSet:    "%s turned %s",
	KeyNotifStarting:      "Starting Surge...",
	KeyNotifStartFailed:   "Starting Surge failed: %v",
	KeyNotifCopied:        "Copied %s",
	KeyNotifCopyFailed:    "Copy failed: %v",
	KeyNotifOpFailed:      "Operation failed: %v",

	KeyKillConfirm:       "Kill connection %d? Enter to confirm, Esc to cancel",
	KeyHelpTitle:         "Keyboard shortcuts",
	KeyNotifHistoryTitle: "Notifications",
	KeyDevtoolsTitle:     "Devtools",
}

var zhTable = map[string]string{
	KeyAppTitle: "surgetop",

	KeyTabOverview:    "概览",
	KeyTabPolicies:    "策略",
	KeyTabRequests:    "请求",
	KeyTabConnections: "连接",
	KeyTabDNS:         "DNS",

	KeyAlertNotRunning:  "Surge 未运行。按 's' 启动。",
	KeyAlertHTTPAPIDown: "HTTP API 无响应。请在配置中启用 http-api 后按 'r' 重载。",

	KeyStatusRunning:   "运行中",
	KeyStatusStopped:   "已停止",
	KeyModeHTTP:        "HTTP API",
	KeyModeCLI:         "CLI 回退",
	KeyOutboundMode:    "出站模式",
	KeyMITM:            "MITM",
	KeyCapture:         "抓包",
	KeyEnabled:         "开",
	KeyDisabled:        "关",
	KeyNoData:          "无数据",
	KeyGrouped:         "分组",
	KeySearchPrompt:    "搜索: ",
	KeyHelpHint:        "? 帮助",
	KeySelectedPolicy:  "已选",
	KeyEffectivePolicy: "生效",
	KeyAvailableTag:    "[可用]",
	KeyUnavailableTag:  "[不可用]",
	KeyColPolicy:       "策略",
	KeyColType:         "类型",
	KeyColLatency:      "延迟",
	KeyColURL:          "URL",
	KeyColMethod:       "方法",
	KeyColApp:          "应用",
	KeyColRule:         "规则",
	KeyColBytes:        "流量",
	KeyColDomain:       "域名",
	KeyColAddresses:    "地址",
	KeyColServer:       "服务器",
	KeyColTTL:          "TTL",
	KeyColStatus:       "状态",
	KeyColFailed:       "失败",
	KeyColActive:       "活跃",

	KeyNotifTestStarted:   "正在测试策略组 %s...",
	KeyNotifTestCompleted: "%s 测试完成：共测试 %d 个策略",
	KeyNotifTestFailed:    "%s 测试失败：%v",
	KeyNotifTestInFlight:  "延迟测试已在进行中",
	KeyNotifKilled:        "连接 %d 已断开",
	KeyNotifKillFailed:    "断开连接 %d 失败：%v",
	KeyNotifReloaded:      "配置已重载",
	KeyNotifReloadFailed:  "配置重载失败：%v",
	KeyNotifDNSFlushed:    "DNS 缓存已清空",
	KeyNotifFlushFailed:   "清空 DNS 失败：%v",
	KeyNotifOutboundSet:   "出站模式已切换为 %s",
	KeyNotifSelected:      "%s 已切换到 %s",
	KeyNotifFeatureSet:    "%s 已%s",
	KeyNotifStarting:      "正在启动 Surge...",
	KeyNotifStartFailed:   "启动 Surge 失败：%v",
	KeyNotifCopied:        "已复制 %s",
	KeyNotifCopyFailed:    "复制失败：%v",
	KeyNotifOpFailed:      "操作失败：%v",

	KeyKillConfirm:       "断开连接 %d？Enter 确认，Esc 取消",
	KeyHelpTitle:         "快捷键",
	KeyNotifHistoryTitle: "通知",
	KeyDevtoolsTitle:     "开发工具",
}

type table struct {
	locale  string
	strings map[string]string
}

func (t *table) T(key string) string {
	if s, ok := t.strings[key]; ok {
		return s
	}
	// Untranslated keys fall back to English, then to the key itself so a
	// missing entry is visible instead of blank.
	if s, ok := enTable[key]; ok {
		return s
	}
	return key
}

func (t *table) Tf(key string, args ...any) string {
	return fmt.Sprintf(t.T(key), args...)
}

func (t *table) Locale() string {
	return t.locale
}

// ForLocale returns the Translator for a locale tag. Unknown tags get en-US.
func ForLocale(locale string) Translator {
	switch locale {
	case "zh-CN", "zh", "zh-Hans":
		return &table{locale: "zh-CN", strings: zhTable}
	default:
		return &table{locale: "en-US", strings: enTable}
	}
}
