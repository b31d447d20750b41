package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wizqo2024/wizqo-sub002/internal/api"
	"github.com/wizqo2024/wizqo-sub002/internal/videos"
	"github.com/wizqo2024/wizqo-sub002/shared/config"
	"github.com/wizqo2024/wizqo-sub002/shared/logging"
	"github.com/wizqo2024/wizqo-sub002/shared/scheduler"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "wizqo",
		Short:        "Wizqo hobby plan service",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newSelectVideoCommand())
	rootCmd.AddCommand(newPruneHistoryCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and wires services for a command.
func setup(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logging.New(cfg.Logging.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	a, err := newApp(ctx, cfg, log, opts)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

func newServeCommand() *cobra.Command {
	var opts appOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and maintenance scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := setup(ctx, opts)
			if err != nil {
				return err
			}
			defer a.log.Sync()
			defer a.Close()

			s := scheduler.New(a.monitor, a.log.With("component", "scheduler"))
			s.Add(a.cfg.Schedule.HistoryPrune, &scheduler.HistoryPruneJob{History: a.history})
			s.Add(a.cfg.Schedule.CacheSweep, &scheduler.CacheSweepJob{Cache: a.cache})
			schedErr := make(chan error, 1)
			go func() { schedErr <- s.Start(ctx) }()

			server := api.NewServer(api.Deps{
				Validator:      a.validator,
				Planner:        a.planner,
				Plans:          a.plans,
				Progress:       a.progress,
				Monitor:        a.monitor,
				Metrics:        a.metrics,
				Logger:         a.log.With("component", "http"),
				JWTSecret:      a.cfg.Auth.JWTSecret,
				AllowedOrigins: a.cfg.Server.AllowedOrigins,
			})
			if err := server.ListenAndServe(ctx, ":"+a.cfg.Server.Port); err != nil {
				cancel()
				return err
			}

			// Start returns ctx.Err() on a normal shutdown.
			if err := <-schedErr; err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.ensureSchema, "ensure-schema", false, "Create the plan and progress tables if they do not exist")
	return cmd
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <hobby>",
		Short: "Validate a hobby and print the result as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			result, tier := a.validator.Check(ctx, strings.Join(args, " "))
			return printJSON(cmd, map[string]any{"tier": tier, "result": result})
		},
	}
}

func newSelectVideoCommand() *cobra.Command {
	var day int

	cmd := &cobra.Command{
		Use:   "select-video <hobby>",
		Short: "Search YouTube for a hobby tutorial and print the chosen video",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			hobby := strings.Join(args, " ")
			video, err := a.selector.SelectVideo(ctx, hobby, day)
			if err != nil {
				fallback := videos.FallbackVideoID(hobby, day)
				a.log.Warn("video search failed", "error", err, "fallback", fallback)
				return printJSON(cmd, map[string]any{"source": "fallback", "id": fallback})
			}
			return printJSON(cmd, map[string]any{"source": "search", "video": video, "url": video.URL()})
		},
	}

	cmd.Flags().IntVarP(&day, "day", "d", 1, "Plan day (1-7) used to pick the search topic, 0 for none")
	return cmd
}

func newPruneHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune-history",
		Short: "Drop video history entries outside the history window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			s := scheduler.New(a.monitor, a.log)
			return s.RunOnce(ctx, &scheduler.HistoryPruneJob{History: a.history})
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
