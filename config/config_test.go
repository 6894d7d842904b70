package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load(newViper(), nil)
	assert.Equal(t, DefaultTotalTasks, cfg.TotalTasks)
	assert.Equal(t, uint64(DefaultChunkSize), cfg.ChunkSize)
	assert.Equal(t, DefaultNumWorkers, cfg.NumWorkers)
	assert.Equal(t, int64(DefaultProgressEvery), cfg.ProgressEvery)
	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
}

func TestLoadNonPositiveFallsBack(t *testing.T) {
	v := newViper()
	v.Set(KeyTotalTasks, -5)
	v.Set(KeyNumWorkers, 0)
	v.Set(KeyChunkSize, -1)

	cfg := Load(v, nil)
	assert.Equal(t, DefaultTotalTasks, cfg.TotalTasks)
	assert.Equal(t, DefaultNumWorkers, cfg.NumWorkers)
	assert.Equal(t, uint64(DefaultChunkSize), cfg.ChunkSize)
}

func TestLoadClampsChunkSize(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	v := newViper()
	v.Set(KeyChunkSize, 250000)

	cfg := Load(v, zap.New(core))
	assert.Equal(t, uint64(DefaultMaxChunkSize), cfg.ChunkSize)

	entries := logs.FilterMessageSnippet("clamping").All()
	assert.Len(t, entries, 1)
}

func TestLoadCustomCeiling(t *testing.T) {
	v := newViper()
	v.Set(KeyChunkSize, 250000)
	v.Set(KeyMaxChunkSize, 500000)

	cfg := Load(v, nil)
	assert.Equal(t, uint64(250000), cfg.ChunkSize)
}

func TestLoadValidValuesKept(t *testing.T) {
	v := newViper()
	v.Set(KeyTotalTasks, 7)
	v.Set(KeyNumWorkers, 3)
	v.Set(KeyChunkSize, 1234)

	cfg := Load(v, nil)
	assert.Equal(t, 7, cfg.TotalTasks)
	assert.Equal(t, 3, cfg.NumWorkers)
	assert.Equal(t, uint64(1234), cfg.ChunkSize)
}
