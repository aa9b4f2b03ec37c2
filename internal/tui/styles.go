package tui

import "github.com/charmbracelet/lipgloss"

// Latency coloring thresholds in milliseconds.
const (
	latencyGoodMs = 100
	latencyFairMs = 300
)

// Styles for the dashboard, defined with lipgloss.
var (
	appStyle = lipgloss.NewStyle().Margin(0, 0)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
			Background(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#303030"}).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#606060", Dark: "#909090"})

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("63"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#A0A0A0", Dark: "#505050"}).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("63"))

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#606060"})

	errorTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoTextStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	latencyGoodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	latencyFairStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	latencyBadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#303030", Dark: "#C0C0C0"}).
			Background(lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#202020"})

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	killConfirmStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("9")).
				Padding(1, 2).
				Bold(true)
)

// latencyStyle grades a latency value for display.
func latencyStyle(ms int) lipgloss.Style {
	switch {
	case ms < latencyGoodMs:
		return latencyGoodStyle
	case ms < latencyFairMs:
		return latencyFairStyle
	default:
		return latencyBadStyle
	}
}

func notificationStyle(level NotificationLevel) lipgloss.Style {
	switch level {
	case NotifError:
		return errorTextStyle
	case NotifWarning:
		return warningTextStyle
	case NotifSuccess:
		return successTextStyle
	default:
		return infoTextStyle
	}
}

func overlayWidth(termWidth int) int {
	w := termWidth - 10
	if w < 20 {
		w = 20
	}
	if w > 100 {
		w = 100
	}
	return w
}

func overlayHeight(termHeight int) int {
	h := termHeight - 8
	if h < 5 {
		h = 5
	}
	return h
}
