package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"surgetop/internal/config"
	"surgetop/internal/i18n"
	"surgetop/internal/surge"
	"surgetop/internal/tui"
	"surgetop/pkg/logging"
)

var (
	configPath   string
	langFlag     string
	debugLogPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "surgetop",
	Short: "Terminal dashboard for monitoring and controlling Surge",
	Long: `surgetop is a terminal dashboard for a local Surge instance. It shows
policy groups, recent requests, active connections and the DNS cache,
and lets you switch policies, kill connections, run latency tests and
toggle features like MITM and capture, all from the keyboard.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid configuration, unreachable backends)
	SilenceUsage: true,
	RunE:         runDashboard,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "surgetop version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if langFlag != "" {
		cfg.UI.Language = langFlag
	}
	if err := cfg.Validate(); err != nil {
		if surge.IsKind(err, surge.KindConfigInvalid) {
			fmt.Fprintf(os.Stderr, "%v\n\nExample configuration:\n\n%s\n", err, config.ExampleConfig)
			return fmt.Errorf("invalid configuration")
		}
		return err
	}

	var debugOut io.Writer
	level := logging.LevelInfo
	if debugLogPath != "" {
		f, err := os.OpenFile(debugLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open debug log %s: %w", debugLogPath, err)
		}
		defer f.Close()
		debugOut = f
		level = logging.LevelDebug
	}
	logCh := logging.InitForTUI(level, debugOut)
	defer logging.CloseTUIChannel()

	client := surge.NewClient(
		surge.NewHTTPClient(cfg.HTTPAPI.Host, cfg.HTTPAPI.Port, cfg.HTTPAPI.Key),
		surge.NewCLIClient(cfg.CLI.Path),
		surge.NewSystemClient(),
	)

	model := tui.New(client, i18n.ForLocale(cfg.UI.Language), cfg.UI.RefreshInterval, cfg.UI.MaxRequests, logCh)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file to use instead of the user/project lookup")
	rootCmd.Flags().StringVar(&langFlag, "lang", "", "UI language (en-US or zh-CN), overrides the config file")
	rootCmd.Flags().StringVar(&debugLogPath, "debug", "", "Write debug logs to this file (viewable in the devtools overlay)")
}
