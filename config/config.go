// Package config resolves run parameters from flags, environment and
// defaults via viper. Invalid values are recovered locally, never fatal:
// non-positive counts fall back to the defaults and an oversized chunk is
// clamped to the configured ceiling with a warning.
package config

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Defaults, matching the documented one-shot configuration {20, 100000, 4}.
const (
	DefaultTotalTasks    = 20
	DefaultChunkSize     = 100000
	DefaultNumWorkers    = 4
	DefaultMaxChunkSize  = 100000
	DefaultProgressEvery = 10
	DefaultOutputPath    = "primes.csv"
)

// Viper keys.
const (
	KeyTotalTasks    = "tasks"
	KeyChunkSize     = "chunk-size"
	KeyNumWorkers    = "workers"
	KeyMaxChunkSize  = "max-chunk-size"
	KeyProgressEvery = "progress-every"
	KeyOutputPath    = "output"
	KeyMetricsAddr   = "metrics-addr"
	KeyLogLevel      = "log-level"
	KeyLogFile       = "log-file"
)

// Config holds the resolved run parameters.
type Config struct {
	TotalTasks    int
	ChunkSize     uint64
	NumWorkers    int
	ProgressEvery int64
	OutputPath    string
	MetricsAddr   string
	LogLevel      string
	LogFile       string
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTotalTasks, DefaultTotalTasks)
	v.SetDefault(KeyChunkSize, DefaultChunkSize)
	v.SetDefault(KeyNumWorkers, DefaultNumWorkers)
	v.SetDefault(KeyMaxChunkSize, DefaultMaxChunkSize)
	v.SetDefault(KeyProgressEvery, DefaultProgressEvery)
	v.SetDefault(KeyOutputPath, DefaultOutputPath)
	v.SetDefault(KeyMetricsAddr, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
}

// Load reads and validates the configuration from v. logger may be nil.
func Load(v *viper.Viper, logger *zap.Logger) Config {
	if logger == nil {
		logger = zap.NewNop()
	}
	sugar := logger.Sugar()

	cfg := Config{
		TotalTasks:    v.GetInt(KeyTotalTasks),
		NumWorkers:    v.GetInt(KeyNumWorkers),
		ProgressEvery: v.GetInt64(KeyProgressEvery),
		OutputPath:    v.GetString(KeyOutputPath),
		MetricsAddr:   v.GetString(KeyMetricsAddr),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFile:       v.GetString(KeyLogFile),
	}

	if cfg.TotalTasks <= 0 {
		sugar.Warnf("Invalid task count %d, using default %d", cfg.TotalTasks, DefaultTotalTasks)
		cfg.TotalTasks = DefaultTotalTasks
	}
	if cfg.NumWorkers <= 0 {
		sugar.Warnf("Invalid worker count %d, using default %d", cfg.NumWorkers, DefaultNumWorkers)
		cfg.NumWorkers = DefaultNumWorkers
	}

	chunk := v.GetInt64(KeyChunkSize)
	if chunk <= 0 {
		sugar.Warnf("Invalid chunk size %d, using default %d", chunk, DefaultChunkSize)
		chunk = DefaultChunkSize
	}
	maxChunk := v.GetInt64(KeyMaxChunkSize)
	if maxChunk <= 0 {
		maxChunk = DefaultMaxChunkSize
	}
	if chunk > maxChunk {
		sugar.Warnf("Chunk size %d exceeds ceiling %d, clamping", chunk, maxChunk)
		chunk = maxChunk
	}
	cfg.ChunkSize = uint64(chunk)

	return cfg
}
