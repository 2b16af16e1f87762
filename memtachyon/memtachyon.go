package memtachyon

import (
	"context"
	_ "embed"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

//go:embed tachyon.js
var classSource string

const (
	// DefaultMaster is registered when Options lists no masters.
	DefaultMaster = "localhost:19998"

	// DefaultBlockSizeBytes is the block size of files written without an
	// explicit setting.
	DefaultBlockSizeBytes = 64 << 20
)

// Options configures the in-process cluster.
type Options struct {
	// Masters lists the authorities (host:port) a client can connect to.
	// Each master has its own namespace.
	Masters []string

	// BlockSizeBytes splits files into blocks for readByteBuffer.
	// 0 means DefaultBlockSizeBytes.
	BlockSizeBytes int64
}

func (o *Options) withDefaults() Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if len(out.Masters) == 0 {
		out.Masters = []string{DefaultMaster}
	}
	if out.BlockSizeBytes <= 0 {
		out.BlockSizeBytes = DefaultBlockSizeBytes
	}
	return out
}

// Load installs the Tachyon client classes into eng and registers the
// masters. Loading again resets every namespace.
func Load(eng *engine.GojaEngine, opts *Options) error {
	o := opts.withDefaults()
	for _, m := range o.Masters {
		if m == "" || strings.ContainsAny(m, ",/") {
			return errors.InvalidInput(errors.PhaseLoad, "invalid master address "+m)
		}
	}

	if err := eng.LoadScript("tachyon.js", classSource); err != nil {
		return err
	}
	n, err := eng.CallGlobal("__tachyonInstall", strings.Join(o.Masters, ","), o.BlockSizeBytes)
	if err != nil {
		return err
	}
	Logger().Debug("tachyon classes installed",
		zap.Strings("masters", o.Masters),
		zap.Any("registered", n),
		zap.Int64("block_size", o.BlockSizeBytes))
	return nil
}

// NewEngine creates a goja engine with the Tachyon classes loaded.
func NewEngine(ctx context.Context, cfg *engine.Config, opts *Options) (*engine.GojaEngine, error) {
	eng, err := engine.NewGojaEngineWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := Load(eng, opts); err != nil {
		_ = eng.Close(ctx)
		return nil, err
	}
	return eng, nil
}
