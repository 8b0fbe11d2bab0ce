package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faizmokh/hadbit/internal/config"
	"github.com/faizmokh/hadbit/internal/files"
	"github.com/faizmokh/hadbit/internal/logbook"
	"github.com/faizmokh/hadbit/internal/logging"
	"github.com/faizmokh/hadbit/internal/settings"
	"github.com/faizmokh/hadbit/internal/store"
	"github.com/faizmokh/hadbit/internal/ui"
	"github.com/faizmokh/hadbit/internal/version"
)

// app carries the collaborators shared by every command.
type app struct {
	store      *store.Store
	prefs      settings.Store
	cfg        *config.Config
	configPath string
	logger     *zap.Logger
}

func (a *app) reader() *logbook.Reader {
	return logbook.NewReader(a.store, a.prefs)
}

func (a *app) writer() *logbook.Writer {
	return logbook.NewWriter(a.store, a.logger)
}

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hadbit",
		Short:   "Track habits and their template-driven logs from your terminal.",
		Version: version.Info(),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ui.NewModel(ctx, a.reader(), a.writer(), today())
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newItemCommand(ctx, a),
		newTemplateCommand(ctx, a),
		newLogCommand(ctx, a),
		newRecordCommand(ctx, a),
		newEditCommand(ctx, a),
		newDeleteCommand(ctx, a),
		newTodayCommand(ctx, a),
		newPrevCommand(ctx, a),
		newNextCommand(ctx, a),
		newJumpCommand(ctx, a),
		newListCommand(ctx, a),
		newSearchCommand(ctx, a),
		newAnalyticsCommand(ctx, a),
		newIconsCommand(),
		newConfigCommand(a),
		newVersionCommand(),
	)

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "hadbit %s\n", version.Info())
			return nil
		},
	}
}

// ExecuteCommand wires configuration, logging and storage, then executes the
// Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	manager, err := files.NewManager("")
	if err != nil {
		return err
	}
	if _, err := manager.EnsureBaseDir(); err != nil {
		return err
	}

	cfg, err := config.Load(manager.ConfigPath())
	if err != nil {
		return err
	}

	logger, err := logging.New(manager.LogPath(), cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	dbPath := cfg.DatabasePath
	if dbPath == "" {
		dbPath = manager.DatabasePath()
	}
	s, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Debug("hadbit starting",
		zap.String("version", version.Resolved()),
		zap.String("db", dbPath))

	a := &app{
		store:      s,
		prefs:      settings.NewFile(manager.SettingsPath()),
		cfg:        cfg,
		configPath: manager.ConfigPath(),
		logger:     logger,
	}
	cmd := NewRootCommand(ctx, a)
	if err := cmd.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		return err
	}
	return nil
}

// Main is a helper used by cmd/hadbit/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
