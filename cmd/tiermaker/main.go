package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/tiermaker/internal/config"
	"github.com/jask/tiermaker/internal/logging"
	"github.com/jask/tiermaker/internal/service"
	"github.com/jask/tiermaker/internal/store"
	"github.com/jask/tiermaker/internal/testdata"
	"github.com/jask/tiermaker/internal/tierlist"
	"github.com/jask/tiermaker/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	slot       string
	demo       bool
	pretty     bool
	force      bool
}

// env is everything a command needs, built from config.
type env struct {
	cfg         config.Config
	logger      *zap.Logger
	store       store.Store
	session     *service.Session
	ingest      *service.IngestService
	maintenance *service.MaintenanceService
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// loadConfig reads config with the --config and --slot flags applied.
func loadConfig(opts *options) (config.Config, error) {
	if opts.configPath != "" {
		if err := os.Setenv("TIERMAKER_CONFIG", opts.configPath); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	if opts.slot != "" {
		cfg.Storage.Slot = opts.slot
	}
	return cfg, nil
}

func setup(ctx context.Context, opts *options) (*env, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	st, err := store.Open(ctx, cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}
	logger.Info("store opened", zap.String("backend", cfg.Storage.Backend), zap.String("slot", cfg.Storage.Slot))

	session := service.NewSession(st, service.SessionOptions{
		Slot:         cfg.Storage.Slot,
		ShareBaseURL: cfg.Share.BaseURL,
		WarnBytes:    cfg.Share.WarnBytes,
	}, logger)
	return &env{
		cfg:         cfg,
		logger:      logger,
		store:       st,
		session:     session,
		ingest:      &service.IngestService{Session: session},
		maintenance: &service.MaintenanceService{Store: st, Slot: cfg.Storage.Slot},
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "tiermaker",
		Short:         "Rank things into tiers from the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts, "")
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/tiermaker/config.toml)")
	root.PersistentFlags().StringVar(&opts.slot, "slot", "", "storage slot to use instead of storage.slot")
	root.Flags().BoolVar(&opts.demo, "demo", false, "replace the board with a sample board")

	root.AddCommand(
		&cobra.Command{
			Use:   "open <url|token>",
			Short: "Open a shared board in the editor",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTUI(cmd.Context(), opts, args[0])
			},
		},
		&cobra.Command{
			Use:   "share",
			Short: "Print the share link of the saved board",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runShare(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "import <file.csv>",
			Short: "Add one text item per CSV line (text[,label]) to the unranked area",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runImport(cmd, opts, args[0])
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Delete the saved board",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runReset(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "slots",
			Short: "List saved boards; * marks the current slot",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runSlots(cmd, opts)
			},
		},
		newExportCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective config (defaults, env and flags) to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, opts)
		},
	}
	initCmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing config file")
	cmd.AddCommand(initCmd)
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the saved board as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the JSON")
	return cmd
}

func runTUI(ctx context.Context, opts *options, link string) error {
	e, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	res := e.session.Load(ctx, link)
	status := ""
	if res.LinkErr != nil {
		status = "share link could not be read; showing the saved board"
	}
	if opts.demo {
		demo, err := testdata.Seed(tierlist.NewBoard(), 1)
		if err != nil {
			return err
		}
		e.session.Replace(demo)
		if err := e.session.Save(ctx, e.session.Snapshot()); err != nil {
			return err
		}
		status = "demo board loaded"
	}

	app := tui.New(ctx, e.cfg, tui.Services{Session: e.session, Ingest: e.ingest, Maintenance: e.maintenance}, e.logger)
	app.SetStatus(status)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	// last word on persistence, in case a save command was still in flight
	if err := e.session.Save(context.WithoutCancel(ctx), e.session.Snapshot()); err != nil {
		return err
	}
	return nil
}
