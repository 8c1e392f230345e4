package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/okian/maturity/internal/adapters/repository"
	"github.com/okian/maturity/internal/adapters/suggest"
	service "github.com/okian/maturity/internal/app"
	"github.com/okian/maturity/internal/config"
	"github.com/okian/maturity/internal/domain/framework"
	"github.com/okian/maturity/pkg/logger"
	"github.com/okian/maturity/pkg/metrics"
)

func main() {
	// Default Go collectors live on the default registry; ours are custom.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var configFile string

	serveC := serveCmd()
	root := &cobra.Command{
		Use:          "maturity",
		Short:        "Weighted maturity framework and assessment tracker",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if configFile != "" {
				return os.Setenv(config.EnvConfigFile, configFile)
			}
			return nil
		},
		RunE: serveC.RunE,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (overrides "+config.EnvConfigFile+")")
	root.SetOut(out)
	root.AddCommand(serveC, frameworkCmd(), historyCmd(), seedCmd())
	return root
}

// setup loads configuration and initializes logging.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(os.Stderr)); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(context.Background(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	metrics.Configure(metricsOptions(cfg)...)
	return cfg, nil
}

func metricsOptions(cfg *config.Config) []metrics.Option {
	return []metrics.Option{
		metrics.WithEnabled(cfg.MetricsEnabled),
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithPrefix(cfg.MetricsPrefix),
		metrics.WithConstLabels(cfg.MetricsLabels),
		metrics.WithBuckets(cfg.MetricsBuckets),
		metrics.WithRefreshInterval(cfg.MetricsRefreshInterval),
	}
}

// newService builds a started service over the configured store.
func newService(ctx context.Context, cfg *config.Config, sg suggest.Suggester) (*service.Service, error) {
	st, err := repository.Open(ctx, cfg.StoreBackend, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	opts := []service.Option{
		service.WithLogger(logger.Named("app")),
		service.WithStore(st),
		service.WithSuggester(sg),
	}
	if cfg.FrameworkFile != "" {
		dims, err := framework.LoadFile(cfg.FrameworkFile)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		opts = append(opts, service.WithDefaultFramework(dims))
	}

	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to start service: %w", err)
	}
	return svc, nil
}
