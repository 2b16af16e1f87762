package engine

import (
	"context"
	_ "embed"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dop251/goja"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/tachyon-bridge/errors"
	"github.com/wippyai/tachyon-bridge/resource"
)

//go:embed prelude.js
var preludeSource string

const (
	// DefaultMaxLocalRefs bounds the live local refs of one Env.
	DefaultMaxLocalRefs = 1024

	// DefaultMaxArrayLength bounds strings and byte arrays created from Go.
	DefaultMaxArrayLength = 64 << 20
)

// Config holds configuration for engine creation
type Config struct {
	// MaxLocalRefs limits live local refs per Env.
	// 0 means DefaultMaxLocalRefs.
	MaxLocalRefs int

	// MaxArrayLength limits the length of strings and byte arrays allocated
	// through an Env. 0 means DefaultMaxArrayLength.
	MaxArrayLength int

	// CallTimeout interrupts a single remote call that runs longer.
	// The interrupted call fails with java/lang/InterruptedException.
	// 0 disables the timeout.
	CallTimeout time.Duration
}

func (c *Config) withDefaults() Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.MaxLocalRefs <= 0 {
		out.MaxLocalRefs = DefaultMaxLocalRefs
	}
	if out.MaxArrayLength <= 0 {
		out.MaxArrayLength = DefaultMaxArrayLength
	}
	return out
}

// Stats reports live reference counts.
type Stats struct {
	Envs       int
	LocalRefs  int
	GlobalRefs int
}

// GojaEngine implements Runtime on top of a goja JavaScript VM hosting a
// class-based object model.
//
// The VM is single threaded; every entry into it is serialised by the
// engine, so Envs on different goroutines may be used concurrently.
type GojaEngine struct {
	vm      *goja.Runtime
	globals *resource.Table
	helpers helpers
	cfg     Config

	mu        sync.Mutex
	closed    atomic.Bool
	envs      atomic.Int64
	localRefs atomic.Int64
}

type helpers struct {
	classes     *goja.Object
	classOf     goja.Callable
	lookup      goja.Callable
	newInstance goja.Callable
	byteArray   goja.Callable
	isByteArray goja.Callable
	describe    goja.Callable
}

// NewGojaEngine creates a new engine with the default configuration.
func NewGojaEngine(ctx context.Context) (*GojaEngine, error) {
	return NewGojaEngineWithConfig(ctx, nil)
}

// NewGojaEngineWithConfig creates a new engine with custom configuration
func NewGojaEngineWithConfig(ctx context.Context, cfg *Config) (*GojaEngine, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NotAttached("create engine", err)
	}

	e := &GojaEngine{
		vm:      goja.New(),
		globals: resource.NewTable(),
		cfg:     cfg.withDefaults(),
	}
	e.globals.Subscribe(resource.ObserverFunc(func(ev resource.Event) {
		Logger().Debug("global ref",
			zap.Stringer("event", ev.Type),
			zap.Stringer("ref", globalRef(ev.Handle)))
	}))

	e.installConsole()
	if err := e.LoadScript("prelude.js", preludeSource); err != nil {
		return nil, err
	}
	if err := e.bindHelpers(); err != nil {
		return nil, err
	}

	Logger().Debug("engine created",
		zap.Int("max_local_refs", e.cfg.MaxLocalRefs),
		zap.Int("max_array_length", e.cfg.MaxArrayLength),
		zap.Duration("call_timeout", e.cfg.CallTimeout))
	return e, nil
}

func (e *GojaEngine) installConsole() {
	console := e.vm.NewObject()
	logAt := func(level func(string, ...zap.Field)) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			args := make([]any, len(call.Arguments))
			for i, arg := range call.Arguments {
				args[i] = arg.Export()
			}
			level(fmt.Sprint(args...), zap.String("source", "script"))
			return goja.Undefined()
		}
	}
	_ = console.Set("log", logAt(func(msg string, f ...zap.Field) { Logger().Debug(msg, f...) }))
	_ = console.Set("warn", logAt(func(msg string, f ...zap.Field) { Logger().Warn(msg, f...) }))
	_ = console.Set("error", logAt(func(msg string, f ...zap.Field) { Logger().Error(msg, f...) }))
	_ = e.vm.Set("console", console)
}

func (e *GojaEngine) bindHelpers() error {
	b, ok := e.vm.Get("__bridge").(*goja.Object)
	if !ok {
		return errors.Load("prelude did not define __bridge", nil)
	}
	fn := func(name string) (goja.Callable, error) {
		f, ok := goja.AssertFunction(b.Get(name))
		if !ok {
			return nil, errors.NotFound(errors.PhaseLoad, "prelude function", name)
		}
		return f, nil
	}

	var err error
	if e.helpers.classes, ok = b.Get("classes").(*goja.Object); !ok {
		return errors.Load("prelude did not define the class registry", nil)
	}
	for name, dst := range map[string]*goja.Callable{
		"classOf":     &e.helpers.classOf,
		"lookup":      &e.helpers.lookup,
		"newInstance": &e.helpers.newInstance,
		"byteArray":   &e.helpers.byteArray,
		"isByteArray": &e.helpers.isByteArray,
		"describe":    &e.helpers.describe,
	} {
		if *dst, err = fn(name); err != nil {
			return err
		}
	}
	return nil
}

// LoadScript compiles and runs a script in the engine's global scope.
// Scripts are strict mode and define classes with defineClass/defineEnum.
func (e *GojaEngine) LoadScript(name, src string) error {
	prg, err := goja.Compile(name, src, true)
	if err != nil {
		return errors.Load("compile "+name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.Load() {
		return errors.NotAttached("engine closed", nil)
	}
	if _, err := e.vm.RunProgram(prg); err != nil {
		return errors.Load("run "+name, err)
	}
	Logger().Debug("script loaded", zap.String("name", name), zap.Int("bytes", len(src)))
	return nil
}

// CallGlobal calls a global script function with Go arguments and returns
// its exported result.
func (e *GojaEngine) CallGlobal(name string, args ...any) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.Load() {
		return nil, errors.NotAttached("engine closed", nil)
	}
	fn, ok := goja.AssertFunction(e.vm.Get(name))
	if !ok {
		return nil, errors.NotFound(errors.PhaseLoad, "global function", name)
	}
	jsArgs := make([]goja.Value, len(args))
	for i, a := range args {
		jsArgs[i] = e.vm.ToValue(a)
	}
	res, err := fn(goja.Undefined(), jsArgs...)
	if err != nil {
		return nil, errors.Load("call "+name, err)
	}
	if res == nil {
		return nil, nil
	}
	return res.Export(), nil
}

// Attach returns a new Env. Envs are not detached explicitly; one dropped
// by its caller is reclaimed together with its local refs.
func (e *GojaEngine) Attach() (Env, error) {
	if e.closed.Load() {
		return nil, errors.NotAttached("engine closed", nil)
	}

	env := &GojaEnv{
		id:     uuid.NewString(),
		eng:    e,
		locals: resource.NewTableWithLimit(e.cfg.MaxLocalRefs),
	}
	env.locals.Subscribe(resource.ObserverFunc(func(ev resource.Event) {
		switch ev.Type {
		case resource.EventCreated:
			e.localRefs.Add(1)
		case resource.EventDropped:
			e.localRefs.Add(-1)
		}
	}))
	e.envs.Add(1)
	runtime.AddCleanup(env, func(locals *resource.Table) {
		e.localRefs.Add(-int64(locals.Len()))
		e.envs.Add(-1)
	}, env.locals)

	Logger().Debug("env attached", zap.String("env", env.id))
	return env, nil
}

// Close releases every global ref and refuses further attaches.
// Existing Envs fail allocations with OutOfMemoryError and calls with
// IllegalStateException afterwards.
func (e *GojaEngine) Close(ctx context.Context) error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.globals.Len()
	err := e.globals.Close()
	Logger().Debug("engine closed", zap.Int("released_globals", n))
	return err
}

// Stats returns a snapshot of live reference counts.
func (e *GojaEngine) Stats() Stats {
	return Stats{
		Envs:       int(e.envs.Load()),
		LocalRefs:  int(e.localRefs.Load()),
		GlobalRefs: e.globals.Len(),
	}
}

// run calls fn under the call timeout. It returns the thrown value instead
// of an error. The caller holds e.mu.
func (e *GojaEngine) run(fn goja.Callable, this goja.Value, args []goja.Value) (goja.Value, goja.Value) {
	var (
		timer *time.Timer
		fired chan struct{}
	)
	if e.cfg.CallTimeout > 0 {
		fired = make(chan struct{})
		timer = time.AfterFunc(e.cfg.CallTimeout, func() {
			defer close(fired)
			e.vm.Interrupt("call timeout after " + e.cfg.CallTimeout.String())
		})
	}

	res, err := fn(this, args...)

	if timer != nil && !timer.Stop() {
		<-fired
		e.vm.ClearInterrupt()
	}
	if err != nil {
		return nil, e.thrown(err)
	}
	return res, nil
}

func (e *GojaEngine) thrown(err error) goja.Value {
	switch x := err.(type) {
	case *goja.Exception:
		if v := x.Value(); v != nil {
			return v
		}
		return e.vm.ToValue(x.Error())
	case *goja.InterruptedError:
		return e.newThrowable("java/lang/InterruptedException", fmt.Sprint(x.Value()))
	}
	return e.newThrowable("java/lang/RuntimeException", err.Error())
}

// newThrowable builds an instance of a throwable class. If the class
// cannot be instantiated the message is returned as a raw string value.
func (e *GojaEngine) newThrowable(class, msg string) goja.Value {
	v, err := e.helpers.newInstance(goja.Undefined(),
		e.vm.ToValue(class), e.vm.ToValue("(Ljava/lang/String;)V"), e.vm.ToValue(msg))
	if err != nil {
		return e.vm.ToValue(class + ": " + msg)
	}
	return v
}

func (e *GojaEngine) call(fn goja.Callable, args ...goja.Value) goja.Value {
	v, err := fn(goja.Undefined(), args...)
	if err != nil {
		return nil
	}
	return v
}

func (e *GojaEngine) classOf(v goja.Value) *goja.Object {
	cls, _ := e.call(e.helpers.classOf, v).(*goja.Object)
	return cls
}

func (e *GojaEngine) isByteArray(v goja.Value) bool {
	return truthy(e.call(e.helpers.isByteArray, v))
}

func (e *GojaEngine) lookup(cls *goja.Object, table, key string) (goja.Callable, bool) {
	if cls == nil {
		return nil, false
	}
	return goja.AssertFunction(e.call(e.helpers.lookup, cls, e.vm.ToValue(table), e.vm.ToValue(key)))
}

func (e *GojaEngine) describe(v goja.Value) string {
	r := e.call(e.helpers.describe, v)
	if r == nil {
		return "<undescribable>"
	}
	return r.String()
}

func truthy(v goja.Value) bool {
	return v != nil && v.ToBoolean()
}

func isNullish(v goja.Value) bool {
	return v == nil || goja.IsNull(v) || goja.IsUndefined(v)
}
