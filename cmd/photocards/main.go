package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/okulov/photocards/internal/api"
	"github.com/okulov/photocards/internal/config"
	"github.com/okulov/photocards/internal/history"
	"github.com/okulov/photocards/internal/logging"
	"github.com/okulov/photocards/internal/session"
	"github.com/okulov/photocards/internal/tui"
)

var (
	version = "0.1.0"
)

var (
	flagServer string
	flagToken  string
)

var rootCmd = &cobra.Command{
	Use:   "photocards",
	Short: "Terminal client for a shared photo-card gallery",
	Long: `photocards is a terminal client for a shared photo-card gallery service.

It shows your profile and the card collection, and lets you create,
preview, like, and delete cards, edit your profile, and browse
collection statistics without leaving the terminal.

The server URL and token live in ~/.photocards/config.yaml and can be
overridden per run with --server and --token.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		settings, err := config.Load()
		if err != nil {
			return err
		}
		if flagServer != "" {
			settings.ServerURL = flagServer
		}
		if flagToken != "" {
			settings.Token = flagToken
		}
		if settings.ServerURL == "" {
			return fmt.Errorf("no server configured: set server_url in %s or pass --server", config.ConfigFile)
		}

		logger, err := logging.NewFileLogger(config.LogFile)
		if err != nil {
			return err
		}
		logger.Info("starting", zap.String("version", version), zap.String("server", settings.ServerURL))

		var activity *history.Manager
		if settings.HistoryOn() {
			activity, err = history.NewManager(config.DatabasePath)
			if err != nil {
				// The activity log is an extra; run without it
				logger.Warn("activity log unavailable", zap.Error(err))
				activity = nil
			}
		}

		client := api.New(settings.ServerURL, settings.Token)
		model := tui.NewModel(client, session.NewContext(), logger, activity)

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			model.Cleanup()
			return fmt.Errorf("failed to run program: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "gallery service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagToken, "token", "t", "", "authorization token (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
