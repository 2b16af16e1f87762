package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/memtachyon"
)

const defaultMaster = "tachyon://" + memtachyon.DefaultMaster

// config is the optional YAML configuration file.
type config struct {
	Master         string        `yaml:"master"`
	Masters        []string      `yaml:"masters"`
	BlockSizeBytes int64         `yaml:"block_size_bytes"`
	CallTimeout    time.Duration `yaml:"call_timeout"`
	MaxLocalRefs   int           `yaml:"max_local_refs"`
	LogLevel       string        `yaml:"log_level"`
	KVStore        string        `yaml:"kv_store"`
}

func defaultConfig() *config {
	return &config{
		Master:   defaultMaster,
		LogLevel: "warn",
		KVStore:  "tfs",
	}
}

func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *config) engineConfig() *engine.Config {
	return &engine.Config{
		MaxLocalRefs: c.MaxLocalRefs,
		CallTimeout:  c.CallTimeout,
	}
}

// clusterOptions registers the configured masters, always including the
// authority of the master the CLI connects to.
func (c *config) clusterOptions() *memtachyon.Options {
	masters := append([]string(nil), c.Masters...)
	if a := authority(c.Master); a != "" && !slices.Contains(masters, a) {
		masters = append(masters, a)
	}
	return &memtachyon.Options{
		Masters:        masters,
		BlockSizeBytes: c.BlockSizeBytes,
	}
}

func (c *config) logger(verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if verbose {
		zc = zap.NewDevelopmentConfig()
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func authority(uri string) string {
	_, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return ""
	}
	host, _, _ := strings.Cut(rest, "/")
	return host
}
