package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/rpq/jobs"
	"github.com/katalvlaran/rpq/model"
	"github.com/katalvlaran/rpq/observability"
	"github.com/katalvlaran/rpq/report"
	"github.com/katalvlaran/rpq/solver"
)

func newRootCmd() *cobra.Command {
	v := newViper()

	root := &cobra.Command{
		Use:          "rpq",
		Short:        "Exact single-machine scheduling with release and delivery times",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.String(keyLogLevel, "info", "log level: debug, info, warn, error")
	pf.String(keyLogFormat, "text", "log format: text or json")
	_ = v.BindPFlags(pf)

	root.AddCommand(newSolveCmd(v), newBoundCmd(v))

	return root
}

func newSolveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve an instance with every selected engine and cross-check the optima",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			return runSolve(cmd, cfg, args[0])
		},
	}
	f := cmd.Flags()
	f.Duration(keyTimeLimit, 30*time.Second, "time limit per engine solve")
	f.Int(keyNodeLimit, 0, "search node limit per engine solve (0 = none)")
	f.StringSlice(keyEngines, []string{engineLinear, enginePropagation}, "engines to run")
	f.String(keyEncoding, "big-m", "disjunct encoding of the propagation engine: big-m or native")
	f.Bool(keySeeding, true, "seed both engines with a Schrage schedule")
	f.Int(keyEscalations, 1, "solve attempts per engine, doubling the time limit while unproven")
	f.String(keyMetricsAddr, "", "serve Prometheus metrics on this address while solving")
	_ = v.BindPFlags(f)

	return cmd
}

func newBoundCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "bound FILE",
		Short: "Print the big-M bound and the Schrage heuristic schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := jobs.Load(args[0])
			if err != nil {
				return err
			}
			bound, err := model.EstimateBound(set)
			if err != nil {
				return err
			}
			sched := jobs.Schrage(set)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "jobs=%d bound=%d schrage=%d order=%v\n",
				set.Len(), bound, sched.Makespan, sched.Order)

			return err
		},
	}
}

func runSolve(cmd *cobra.Command, cfg config, path string) error {
	var (
		ctx    = cmd.Context()
		logger = newLogger(cfg, cmd.ErrOrStderr())
	)
	if ctx == nil {
		ctx = context.Background()
	}

	set, err := jobs.Load(path)
	if err != nil {
		return err
	}
	m, err := model.BuildFromJobs(set)
	if err != nil {
		return err
	}
	logger.Info("model built",
		slog.String("file", path),
		slog.Int("jobs", set.Len()),
		slog.Int("bound", m.Bound()),
		slog.Int("pairs", m.PairCount()),
	)

	opts := []solver.Option{
		solver.WithLogger(logger),
		solver.WithNodeLimit(cfg.NodeLimit),
		solver.WithSeeding(cfg.Seeding),
		solver.WithEncoding(cfg.Encoding),
	}
	if cfg.MetricsAddr != "" {
		metrics, stop, err := serveMetrics(ctx, cfg.MetricsAddr, logger)
		if err != nil {
			return err
		}
		defer stop()
		opts = append(opts, solver.WithRecorder(metrics))
	}

	solvers := make([]solver.Solver, 0, len(cfg.Engines))
	for _, name := range cfg.Engines {
		solvers = append(solvers, newEscalating(name, cfg, opts, logger))
	}

	results, err := solver.SolveAll(ctx, m, solvers...)
	if err != nil {
		return err
	}
	_, err = report.New(cmd.OutOrStdout(), logger).Report(results)

	return err
}

// escalating adapts solver.Escalate to the Solver interface so escalated
// engines can still run side by side in SolveAll.
type escalating struct {
	name     string
	build    func(time.Duration) solver.Solver
	budget   solver.Budget
	attempts int
	log      *slog.Logger
}

func newEscalating(name string, cfg config, opts []solver.Option, logger *slog.Logger) solver.Solver {
	return &escalating{
		name: name,
		build: func(limit time.Duration) solver.Solver {
			o := append(append([]solver.Option(nil), opts...), solver.WithTimeLimit(limit))
			if name == engineLinear {
				return solver.NewLinearInteger(o...)
			}

			return solver.NewConstraintPropagation(o...)
		},
		budget:   solver.NewExponential(cfg.TimeLimit, 0),
		attempts: cfg.Escalations,
		log:      logger,
	}
}

func (e *escalating) Name() string { return e.name }

func (e *escalating) Solve(ctx context.Context, m *model.DecisionModel) (solver.Result, error) {
	return solver.Escalate(ctx, m, e.build, e.budget, e.attempts, e.log)
}

// serveMetrics exposes the metrics handler on addr until stop is called.
func serveMetrics(ctx context.Context, addr string, logger *slog.Logger) (*observability.Metrics, func(), error) {
	metrics, handler, err := observability.NewMetrics(ctx)
	if err != nil {
		return nil, nil, err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", slog.Any("error", err))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", ln.Addr().String()))

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = metrics.Shutdown(shutdownCtx)
	}

	return metrics, stop, nil
}
