// Predators catalog command
// Loads the predator dataset once and renders filtered, sorted and searched views
package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/nainya/predators/internal/config"
	"github.com/nainya/predators/internal/logger"
	"github.com/nainya/predators/internal/metrics"
	"github.com/nainya/predators/pkg/catalog"
)

// app carries the shared state built in PersistentPreRunE
type app struct {
	cfg      config.Config
	log      *logger.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		dataset     string
		logLevel    string
		pretty      bool
		metricsAddr string
	)

	root := &cobra.Command{
		Use:           "predators",
		Short:         "Browse the apex predator catalog",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("dataset") {
				cfg.Dataset = dataset
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("pretty") {
				cfg.LogPretty = pretty
			}
			if flags.Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			a.cfg = cfg
			logger.InitGlobalLogger(logger.Config{
				Level:  cfg.LogLevel,
				Pretty: cfg.LogPretty,
				Output: cmd.ErrOrStderr(),
			})
			a.log = logger.GetGlobalLogger()
			a.registry = prometheus.NewRegistry()
			a.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			a.metrics = metrics.NewMetrics(a.registry)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&dataset, "dataset", "", "dataset JSON path (default: embedded dataset)")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.BoolVar(&pretty, "pretty", false, "human-readable logs")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "observability listen address for serve, e.g. :9090")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newStatsCmd(a),
		newServeCmd(a),
	)

	return root
}

// openCatalog loads the configured dataset. The catalog is returned even on
// failure so callers can render an unavailable state.
func (a *app) openCatalog() (*catalog.Catalog, error) {
	opts := catalog.Options{Logger: a.log, Metrics: a.metrics}
	if a.cfg.Dataset == "" {
		return catalog.New(opts)
	}
	return catalog.Open(a.cfg.Dataset, opts)
}
