package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ludum-hq/fate/pkg/cli"
	"ludum-hq/fate/pkg/config"
	"ludum-hq/fate/pkg/formula"
	"ludum-hq/fate/pkg/formula/cache"
	"ludum-hq/fate/pkg/library"
	"ludum-hq/fate/pkg/library/source"
	"ludum-hq/fate/pkg/telemetry/logging"
	"ludum-hq/fate/pkg/telemetry/metrics"
)

var runFlags struct {
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the formula service",
	Long: `Load the configured formula library and keep it fresh.

The service loads every configured source, watches formula files for
changes, optionally refreshes on a schedule, and serves Prometheus
metrics and a health endpoint when enabled.

Examples:
  # Run with default config
  fate run

  # Run with custom config
  fate run --config /etc/fate/config.yaml

  # Validate config and sources without staying up
  fate run --dry-run`,
	RunE: runService,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config and load sources once, then exit")
}

func runService(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	sources, closeSources, err := buildSources(&cfg.Library, logger)
	if err != nil {
		return err
	}
	defer closeSources()

	if len(sources) == 0 {
		return fmt.Errorf("no formula sources configured")
	}

	lib := library.New(sources, prototypeContext(cfg), logger)

	ctx := cli.SetupSignalHandler()

	collector := metrics.NewCollector(&cfg.Metrics, nil)

	reload := func() error {
		failures, err := lib.Load(ctx)
		if err != nil {
			return err
		}
		collector.RecordLibraryLoad(lib.Len(), len(failures))
		return nil
	}

	if err := reload(); err != nil {
		return fmt.Errorf("initial library load failed: %w", err)
	}

	logger.Info("formula service started",
		"revision", lib.Revision(),
		"formula_count", lib.Len(),
	)

	if runFlags.dryRun {
		fmt.Printf("configuration valid, %d formula(s) loaded\n", lib.Len())
		return nil
	}

	if cfg.Library.Watch {
		watcher, err := library.NewWatcherForLibrary(lib, &library.WatcherConfig{
			DebounceInterval: cfg.Library.DebounceInterval,
		}, logger)
		if err != nil {
			logger.Warn("file watching unavailable", "error", err)
		} else {
			go func() {
				if err := watcher.Watch(ctx, reload); err != nil {
					logger.Error("file watcher exited", "error", err)
				}
			}()
		}
	}

	if cfg.Library.RefreshSchedule != "" {
		refresher := library.NewRefresher(lib, cfg.Library.RefreshSchedule, logger)
		if err := refresher.Start(ctx); err != nil {
			return err
		}
	}

	var adhoc *cache.Cache
	if cfg.Cache.Enabled {
		adhoc = cache.New(cache.Config{Size: cfg.Cache.Size, TTL: cfg.Cache.TTL})
		adhoc.SetRecorder(collector.Cache())
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = startHTTPServer(cfg, collector, lib, adhoc, logger)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	return nil
}

// prototypeContext builds the context formulas compile against.
func prototypeContext(cfg *config.Config) *formula.Context {
	proto := formula.NewContext()
	if cfg.Library.SeedConstants {
		if err := proto.SeedConstants(); err != nil {
			slog.Warn("failed to seed constants", "error", err)
		}
	}
	return proto
}

// buildSources creates the configured formula sources. The returned
// cleanup closes any sources holding resources.
func buildSources(cfg *config.LibraryConfig, logger *slog.Logger) ([]source.Source, func(), error) {
	var sources []source.Source
	var closers []func() error

	for _, path := range cfg.Paths {
		sources = append(sources, source.NewFileSource(path, logger))
	}

	if cfg.SQLite.Path != "" {
		db, err := source.NewSQLiteSource(source.SQLiteSourceConfig{
			Path:  cfg.SQLite.Path,
			Table: cfg.SQLite.Table,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open formula database: %w", err)
		}
		sources = append(sources, db)
		closers = append(closers, db.Close)
	}

	cleanup := func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				logger.Warn("failed to close formula source", "error", err)
			}
		}
	}
	return sources, cleanup, nil
}

// startHTTPServer serves the Prometheus endpoint, a health check
// reporting the current library revision, and an ad-hoc evaluation
// endpoint backed by the formula cache.
func startHTTPServer(cfg *config.Config, collector *metrics.Collector, lib *library.Library, adhoc *cache.Cache, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, collector.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","revision":%q,"formulas":%d}`, lib.Revision(), lib.Len())
	})
	mux.HandleFunc("POST /eval", evalHandler(lib, adhoc, collector))

	server := &http.Server{
		Addr:         cfg.Metrics.ListenAddress,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("metrics server listening",
			"address", cfg.Metrics.ListenAddress,
			"path", cfg.Metrics.Path,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return server
}

// evalRequest is the JSON body of an ad-hoc evaluation request. Either a
// formula name from the library or an expression must be given.
type evalRequest struct {
	Formula    string             `json:"formula,omitempty"`
	Expression string             `json:"expression,omitempty"`
	Variables  map[string]float64 `json:"variables,omitempty"`
}

// evalResponse carries the evaluation outcome. Result is omitted when
// the value is NaN or infinite, since JSON cannot represent those;
// Formatted always holds the printable form.
type evalResponse struct {
	Result    *float64 `json:"result,omitempty"`
	Formatted string   `json:"formatted,omitempty"`
	Revision  string   `json:"revision,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// evalHandler evaluates a named formula or an ad-hoc expression against
// the current library revision. Ad-hoc expressions go through the cache
// when one is configured.
func evalHandler(lib *library.Library, adhoc *cache.Cache, collector *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req evalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeEvalError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if (req.Formula == "") == (req.Expression == "") {
			writeEvalError(w, http.StatusBadRequest, "exactly one of formula or expression must be set")
			return
		}

		c := lib.NewContext()
		for name, value := range req.Variables {
			if err := c.Define(name, value); err != nil {
				writeEvalError(w, http.StatusBadRequest, fmt.Sprintf("variable %q: %v", name, err))
				return
			}
		}

		var f *formula.Formula
		label := req.Formula
		if req.Formula != "" {
			entry, ok := lib.Get(req.Formula)
			if !ok {
				writeEvalError(w, http.StatusNotFound, fmt.Sprintf("unknown formula %q", req.Formula))
				return
			}
			f = entry.Formula
		} else {
			label = "adhoc"
			var err error
			start := time.Now()
			if adhoc != nil {
				f, err = adhoc.GetOrCompile(c, req.Expression)
			} else {
				f, err = formula.Compile(c, req.Expression)
			}
			if err != nil {
				collector.RecordCompile("error", time.Since(start))
				writeEvalError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			collector.RecordCompile("success", time.Since(start))
		}

		start := time.Now()
		result := f.Execute(c)
		collector.RecordExecution(label, time.Since(start))

		resp := evalResponse{
			Formatted: formula.Format(result, -1),
			Revision:  lib.Revision(),
		}
		if !formula.IsNaN(result) && !formula.IsInf(result) {
			resp.Result = &result
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func writeEvalError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(evalResponse{Error: msg})
}
