package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"surgetop/internal/i18n"
	"surgetop/internal/surge"
	"surgetop/pkg/logging"
)

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd builds a snapshot off the UI goroutine.
func (m *Model) refreshCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return snapshotMsg{snapshot: client.Snapshot(context.Background())}
	}
}

// listenForTestEvents delivers the next background-test message. The update
// handler re-issues it after each event, so the listener is the channel's
// only consumer and events are processed strictly in send order.
func (m *Model) listenForTestEvents() tea.Cmd {
	ch := m.testCh
	return func() tea.Msg {
		return <-ch
	}
}

func (m *Model) listenForLogs() tea.Cmd {
	ch := m.logCh
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return logChannelClosedMsg{}
		}
		return logEntryMsg{entry: entry}
	}
}

// startTestCmd spawns the detached latency test for a group. The goroutine
// owns nothing but the shared client and the channel; it emits Started
// first, then exactly one of Completed or Failed.
func (m *Model) startTestCmd(group string) tea.Cmd {
	client := m.client
	ch := m.testCh
	return func() tea.Msg {
		go func() {
			ch <- testStartedMsg{group: group}
			results, err := client.TestAllPoliciesWithLatency(context.Background())
			if err != nil {
				logging.Error("Test", err, "latency test for %s failed", group)
				ch <- testFailedMsg{group: group, err: err}
				return
			}
			ch <- testCompletedMsg{group: group, results: results}
		}()
		return nil
	}
}

func notifyAction(level NotificationLevel, message string, refresh bool) actionDoneMsg {
	return actionDoneMsg{
		notification: Notification{Level: level, Message: message, Time: time.Now()},
		refresh:      refresh,
	}
}

// actionCmd wraps a blocking facade call into a command producing a toast.
func (m *Model) actionCmd(run func(ctx context.Context) error, successKey string, successArgs []any, failKey string) tea.Cmd {
	tr := m.tr
	return func() tea.Msg {
		if err := run(context.Background()); err != nil {
			args := append(append([]any{}, successArgs...), err)
			return notifyAction(NotifError, tr.Tf(failKey, args...), false)
		}
		return notifyAction(NotifSuccess, tr.Tf(successKey, successArgs...), true)
	}
}

func (m *Model) killConnectionCmd(id uint64) tea.Cmd {
	client := m.client
	return m.actionCmd(func(ctx context.Context) error {
		return client.KillConnection(ctx, id)
	}, i18n.KeyNotifKilled, []any{id}, i18n.KeyNotifKillFailed)
}

func (m *Model) reloadConfigCmd() tea.Cmd {
	client := m.client
	return m.actionCmd(func(ctx context.Context) error {
		return client.ReloadConfig(ctx)
	}, i18n.KeyNotifReloaded, nil, i18n.KeyNotifReloadFailed)
}

func (m *Model) flushDNSCmd() tea.Cmd {
	client := m.client
	return m.actionCmd(func(ctx context.Context) error {
		return client.FlushDNS(ctx)
	}, i18n.KeyNotifDNSFlushed, nil, i18n.KeyNotifFlushFailed)
}

func (m *Model) startServiceCmd() tea.Cmd {
	client := m.client
	tr := m.tr
	return func() tea.Msg {
		if err := client.StartService(context.Background()); err != nil {
			return notifyAction(NotifError, tr.Tf(i18n.KeyNotifStartFailed, err), false)
		}
		return notifyAction(NotifSuccess, tr.T(i18n.KeyNotifStarting), true)
	}
}

func (m *Model) setOutboundCmd(mode surge.OutboundMode) tea.Cmd {
	client := m.client
	return m.actionCmd(func(ctx context.Context) error {
		return client.SetOutboundMode(ctx, mode)
	}, i18n.KeyNotifOutboundSet, []any{string(mode)}, i18n.KeyNotifOpFailed)
}

func (m *Model) toggleMITMCmd(enable bool) tea.Cmd {
	client := m.client
	return m.featureCmd(i18n.KeyMITM, enable, func(ctx context.Context) error {
		return client.SetMITMStatus(ctx, enable)
	})
}

func (m *Model) toggleCaptureCmd(enable bool) tea.Cmd {
	client := m.client
	return m.featureCmd(i18n.KeyCapture, enable, func(ctx context.Context) error {
		return client.SetCaptureStatus(ctx, enable)
	})
}

func (m *Model) featureCmd(featureKey string, enable bool, run func(ctx context.Context) error) tea.Cmd {
	tr := m.tr
	stateKey := i18n.KeyDisabled
	if enable {
		stateKey = i18n.KeyEnabled
	}
	return m.actionCmd(run, i18n.KeyNotifFeatureSet, []any{tr.T(featureKey), tr.T(stateKey)}, i18n.KeyNotifOpFailed)
}

func (m *Model) selectPolicyCmd(group, policy string) tea.Cmd {
	client := m.client
	return m.actionCmd(func(ctx context.Context) error {
		return client.SelectPolicyGroup(ctx, group, policy)
	}, i18n.KeyNotifSelected, []any{group, policy}, i18n.KeyNotifOpFailed)
}

// copyCmd puts text on the system clipboard.
func (m *Model) copyCmd(text string) tea.Cmd {
	tr := m.tr
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return notifyAction(NotifError, tr.Tf(i18n.KeyNotifCopyFailed, err), false)
		}
		short := text
		if len(short) > 40 {
			short = fmt.Sprintf("%.37s...", short)
		}
		return notifyAction(NotifInfo, tr.Tf(i18n.KeyNotifCopied, short), false)
	}
}
