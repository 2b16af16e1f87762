package bridge

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// RuntimeFactory creates the runtime of a lazy Provider.
type RuntimeFactory func(ctx context.Context) (engine.Runtime, error)

// Provider hands out Envs for one runtime.
//
// A lazy provider creates its runtime on first use. Concurrent first use is
// safe; a failed initialisation is reported as not_attached and attempted
// again by the next Acquire.
type Provider struct {
	rt      engine.Runtime
	factory RuntimeFactory
	mu      sync.Mutex
	closed  bool
}

// NewProvider returns a provider for an existing runtime.
func NewProvider(rt engine.Runtime) *Provider {
	return &Provider{rt: rt}
}

// NewLazyProvider returns a provider that creates its runtime on first use.
func NewLazyProvider(factory RuntimeFactory) *Provider {
	return &Provider{factory: factory}
}

func (p *Provider) runtime(ctx context.Context) (engine.Runtime, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, errors.NotAttached("provider closed", nil)
	}
	if p.rt != nil {
		return p.rt, nil
	}
	if p.factory == nil {
		return nil, errors.NotAttached("provider has no runtime", nil)
	}

	rt, err := p.factory(ctx)
	if err != nil {
		Logger().Warn("runtime initialisation failed", zap.Error(err))
		return nil, errors.NotAttached("initialise runtime", err)
	}
	if rt == nil {
		return nil, errors.NotAttached("runtime factory returned nil", nil)
	}
	p.rt = rt
	Logger().Debug("runtime initialised")
	return rt, nil
}

// Acquire returns the Env bound to ctx, or attaches a new one.
func (p *Provider) Acquire(ctx context.Context) (engine.Env, error) {
	if env, ok := EnvFrom(ctx); ok {
		return env, nil
	}
	rt, err := p.runtime(ctx)
	if err != nil {
		return nil, err
	}
	env, err := rt.Attach()
	if err != nil {
		if errors.KindOf(err) == errors.KindNotAttached {
			return nil, err
		}
		return nil, errors.NotAttached("attach", err)
	}
	return env, nil
}

// Attach acquires an Env and returns a context carrying it, so later
// acquisitions from the same call chain reuse it.
func (p *Provider) Attach(ctx context.Context) (context.Context, engine.Env, error) {
	env, err := p.Acquire(ctx)
	if err != nil {
		return ctx, nil, err
	}
	return WithEnv(ctx, env), env, nil
}

// Close tears the runtime down. It is optional; a process may simply exit.
func (p *Provider) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	if p.rt == nil {
		return nil
	}
	return p.rt.Close(ctx)
}

var defaultProvider atomic.Pointer[Provider]

// SetDefault installs the process-wide provider.
func SetDefault(p *Provider) {
	defaultProvider.Store(p)
}

// Default returns the process-wide provider, or nil.
func Default() *Provider {
	return defaultProvider.Load()
}

type providerKey struct{}
type envKey struct{}

// WithProvider returns a context that resolves Envs through p.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// ProviderFrom returns the provider carried by ctx.
func ProviderFrom(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	return p, ok && p != nil
}

// WithEnv binds env to ctx.
func WithEnv(ctx context.Context, env engine.Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// EnvFrom returns the Env bound to ctx.
func EnvFrom(ctx context.Context) (engine.Env, bool) {
	env, ok := ctx.Value(envKey{}).(engine.Env)
	return env, ok && env != nil
}

// Acquire returns an Env for ctx: the one bound to it, else one from the
// context's provider, else one from the default provider.
func Acquire(ctx context.Context) (engine.Env, error) {
	if env, ok := EnvFrom(ctx); ok {
		return env, nil
	}
	if p, ok := ProviderFrom(ctx); ok {
		return p.Acquire(ctx)
	}
	if p := Default(); p != nil {
		return p.Acquire(ctx)
	}
	return nil, errors.NotAttached("no runtime provider", nil)
}
