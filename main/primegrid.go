package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"primegrid/config"
	"primegrid/engine"
	"primegrid/log"
	"primegrid/output"
)

const envPrefix = "PRIMEGRID"

// errDelivery marks runs whose computation succeeded but whose output could
// not be written. The result is valid in memory, the delivery failed.
var errDelivery = errors.New("result delivery failed")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, errDelivery) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "primegrid",
		Short:         "Compute all primes in [2, tasks*chunk] across a worker pool",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v)
		},
	}

	flags := cmd.Flags()
	flags.Int(config.KeyTotalTasks, config.DefaultTotalTasks, "number of sub-range tasks")
	flags.Int(config.KeyChunkSize, config.DefaultChunkSize, "numbers per task")
	flags.Int(config.KeyNumWorkers, config.DefaultNumWorkers, "worker goroutines")
	flags.Int(config.KeyMaxChunkSize, config.DefaultMaxChunkSize, "ceiling applied to chunk-size")
	flags.Int64(config.KeyProgressEvery, config.DefaultProgressEvery, "log progress every N completed tasks (0 disables)")
	flags.String(config.KeyOutputPath, config.DefaultOutputPath, "result file path")
	flags.String(config.KeyMetricsAddr, "", "listen address for prometheus metrics (disabled when empty)")
	flags.String(config.KeyLogLevel, "info", "log level")
	flags.String(config.KeyLogFile, "", "rotating log file name (console only when empty)")

	config.SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	return cmd
}

func run(v *viper.Viper) error {
	logger := log.NewZapLogger(v.GetString(config.KeyLogFile), log.ParseLevel(v.GetString(config.KeyLogLevel)))
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg := config.Load(v, logger)

	registry := prometheus.NewRegistry()
	metrics := engine.NewMetrics(registry)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				sugar.Warnf("Metrics listener stopped: %v", err)
			}
		}()
		sugar.Infof("Serving metrics on %s/metrics", cfg.MetricsAddr)
	}

	scheduler := engine.NewScheduler(engine.Options{
		TotalTasks:    cfg.TotalTasks,
		ChunkSize:     cfg.ChunkSize,
		NumWorkers:    cfg.NumWorkers,
		ProgressEvery: cfg.ProgressEvery,
	}, logger, metrics)

	begin := time.Now()
	progress, results, err := scheduler.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(begin)

	maxPrimes := 0
	for _, result := range results {
		if len(result.Primes) > maxPrimes {
			maxPrimes = len(result.Primes)
		}
	}
	sugar.Infof("Computed %d primes in %d tasks (max %d in one task) in %s",
		progress.TotalPrimes, progress.Completed, maxPrimes, elapsed)

	if err := output.WriteFile(cfg.OutputPath, results); err != nil {
		sugar.Errorf("Failed to write %s: %v", cfg.OutputPath, err)
		return fmt.Errorf("%w: %v", errDelivery, err)
	}
	sugar.Infof("Wrote %d task results to %s", len(results), cfg.OutputPath)
	return nil
}
