package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/tachyon-bridge/memtachyon"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultMaster, cfg.Master)
	assert.Equal(t, "warn", cfg.LogLevel)

	opts := cfg.clusterOptions()
	assert.Equal(t, []string{memtachyon.DefaultMaster}, opts.Masters)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tfs.yaml")
	data := []byte(`
master: tachyon://m1:19998
masters: [m2:19998]
block_size_bytes: 4096
call_timeout: 2s
max_local_refs: 64
log_level: debug
kv_store: cache
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tachyon://m1:19998", cfg.Master)
	assert.Equal(t, 2*time.Second, cfg.CallTimeout)
	assert.Equal(t, "cache", cfg.KVStore)

	ec := cfg.engineConfig()
	assert.Equal(t, 64, ec.MaxLocalRefs)
	assert.Equal(t, 2*time.Second, ec.CallTimeout)

	opts := cfg.clusterOptions()
	assert.Equal(t, []string{"m2:19998", "m1:19998"}, opts.Masters)
	assert.Equal(t, int64(4096), opts.BlockSizeBytes)

	log, err := cfg.logger(false)
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("master: [unclosed"), 0o600))
	_, err = loadConfig(path)
	require.Error(t, err)

	cfg := defaultConfig()
	cfg.LogLevel = "loud"
	_, err = cfg.logger(false)
	require.Error(t, err)
}

func TestAuthority(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"tachyon://localhost:19998", "localhost:19998"},
		{"tachyon-ft://h:1/some/path", "h:1"},
		{"localhost:19998", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, authority(tt.uri))
		})
	}
}
