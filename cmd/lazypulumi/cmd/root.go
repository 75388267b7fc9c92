package cmd

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lazypulumi/internal/config"
	"lazypulumi/internal/logging"
	"lazypulumi/internal/pulumi"
	"lazypulumi/internal/tui"
)

var (
	orgFlag       string
	apiURLFlag    string
	logLevelFlag  string
	logFilterFlag string
	logFileFlag   string

	// Version info - set via SetVersion()
	appVersion string
	appCommit  string
	appDate    string
)

var rootCmd = &cobra.Command{
	Use:   "lazypulumi",
	Short: "A terminal UI for Pulumi Cloud",
	Long: `lazypulumi is a terminal UI for Pulumi Cloud: browse stacks and their
update history, inspect and open ESC environments, talk to the Pulumi
agent, and explore registry packages, templates, services and resources.

Authentication uses PULUMI_ACCESS_TOKEN, the same token the pulumi CLI
uses.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initConfig()
	},
	RunE: runTUI,
}

// Execute runs the root command. Cobra's own error printing is silenced so
// the message lands exactly once on stderr, after bubbletea has restored
// the terminal.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

func init() {
	rootCmd.PersistentFlags().StringVar(&orgFlag, "org", "",
		"organization to scope to (default: pulumi CLI default org)")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "",
		"Pulumi Cloud API base URL (default: https://api.pulumi.com)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFilterFlag, "log-filter", "",
		"per-component log filter, e.g. \"api=debug,tui=warn\" or a bare level")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "",
		"log file path (default: the user cache directory)")

	_ = viper.BindPFlag("org", rootCmd.PersistentFlags().Lookup("org"))
	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_filter", rootCmd.PersistentFlags().Lookup("log-filter"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig maps the environment the pulumi CLI already uses onto the
// settings keys. Flags win over the environment.
func initConfig() error {
	_ = viper.BindEnv("access_token", "PULUMI_ACCESS_TOKEN")
	_ = viper.BindEnv("api_url", "PULUMI_API_URL")
	_ = viper.BindEnv("org", "PULUMI_ORG")
	_ = viper.BindEnv("log_filter", "PULUMI_LOG_FILTER", "LOG_FILTER")
	return nil
}

func loadSettings() (config.Settings, error) {
	var s config.Settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("loading settings: %w", err)
	}
	return s, nil
}

func runTUI(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logPath := settings.LogFile
	if logPath == "" {
		logPath, err = config.LogFilePath()
		if err != nil {
			return fmt.Errorf("resolving log path: %w", err)
		}
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	// Stderr belongs to the alternate screen while the UI runs, so records
	// go to the log file and to the in-app log viewer instead.
	filterExpr := settings.LogFilter
	if filterExpr == "" {
		filterExpr = settings.LogLevel
	}
	filter := logging.ParseFilter(filterExpr)

	buffer := tui.NewLogBuffer(500)
	handler := logging.NewFanoutHandler(
		slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: filter.MinLevel()}),
		tui.NewBufferHandler(buffer, filter.MinLevel()),
	)
	// The log file is shared across runs; a session id ties one run's
	// records together.
	logger := logging.NewWithHandler(handler, filter).With("session", uuid.NewString()[:8])

	clientOpts := []pulumi.Option{pulumi.WithLogger(logger.WithComponent("api"))}
	if settings.APIURL != "" {
		clientOpts = append(clientOpts, pulumi.WithBaseURL(settings.APIURL))
	}
	// A missing token is reported by the splash screen checks, which also
	// keep anything from being loaded, so a nil client is never used.
	var client *pulumi.Client
	if settings.AccessToken != "" {
		client, err = pulumi.New(settings.AccessToken, clientOpts...)
		if err != nil {
			return err
		}
		if settings.Organization != "" {
			client.SetDefaultOrg(settings.Organization)
		}
	}

	prefs, err := config.LoadPreferences()
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", "error", err)
	}

	model := tui.NewModel(tui.Options{
		Client:      client,
		Logger:      logger,
		LogBuffer:   buffer,
		Preferences: prefs,
		Version:     appVersion,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	logger.Info("starting", "version", appVersion)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
