package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/app"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/config"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/logger"
)

type options struct {
	backend    string
	sqlitePath string
	seed       int64
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "democtl",
		Short: "Manage the Kanso offline demo dataset",
		Long: `democtl initializes, inspects and wipes the synthetic 90-day demo dataset
in the storage backend selected by the usual configuration (CONFIG_FILE,
STORAGE_BACKEND, SQLITE_PATH, REDIS_*, DB_*).`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "override STORAGE_BACKEND (memory, sqlite, redis, postgres)")
	root.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite-path", "", "override SQLITE_PATH")
	root.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "override DEMO_SEED (0 keeps the configured value)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate the dataset unless a fresh one exists",
		RunE: withDemo(opts, func(ctx context.Context, demo *services.DemoStore, out io.Writer) error {
			run := demo.Initialize
			if force {
				run = demo.Reset
			}
			if err := run(ctx); err != nil {
				return err
			}
			return printStatus(ctx, demo, out)
		}),
	}
	initCmd.Flags().BoolVar(&force, "force", false, "regenerate even if the dataset is fresh")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and regenerate the dataset",
		RunE: withDemo(opts, func(ctx context.Context, demo *services.DemoStore, out io.Writer) error {
			if err := demo.Reset(ctx); err != nil {
				return err
			}
			return printStatus(ctx, demo, out)
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every demo collection",
		RunE: withDemo(opts, func(ctx context.Context, demo *services.DemoStore, out io.Writer) error {
			if err := demo.Clear(ctx); err != nil {
				return err
			}
			_, err := fmt.Fprintln(out, "demo data cleared")
			return err
		}),
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show marker age and collection sizes",
		RunE: withDemo(opts, func(ctx context.Context, demo *services.DemoStore, out io.Writer) error {
			return printStatus(ctx, demo, out)
		}),
	}

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard payload",
		RunE: withDemo(opts, func(ctx context.Context, demo *services.DemoStore, out io.Writer) error {
			dash, err := demo.GetDashboard(ctx)
			if err != nil {
				return err
			}
			return printJSON(out, dash)
		}),
	}

	root.AddCommand(initCmd, resetCmd, clearCmd, statusCmd, dashboardCmd)
	return root
}

type demoFunc func(ctx context.Context, demo *services.DemoStore, out io.Writer) error

// withDemo opens the configured backend in demo mode for the duration of one command.
func withDemo(opts *options, fn demoFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.Mode = config.ModeDemo
		if opts.backend != "" {
			cfg.Storage.Backend = opts.backend
		}
		if opts.sqlitePath != "" {
			cfg.Storage.SQLitePath = opts.sqlitePath
		}
		if opts.seed != 0 {
			cfg.Demo.Seed = opts.seed
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level := "warn"
		if opts.verbose {
			level = "debug"
		}
		log, err := logger.New(level)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		res, err := app.Open(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer res.Close()

		_, demo, err := app.NewClient(cfg, res, log)
		if err != nil {
			return err
		}

		if err := fn(ctx, demo, cmd.OutOrStdout()); err != nil {
			log.Debug("command failed", zap.String("command", cmd.Name()), zap.Error(err))
			return err
		}
		return nil
	}
}

func printStatus(ctx context.Context, demo *services.DemoStore, out io.Writer) error {
	status, err := demo.Status(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, status)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
