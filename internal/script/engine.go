package script

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/dassana-io/web-utils/internal/event"
	"github.com/dassana-io/web-utils/internal/theme"
)

// Engine owns a sandboxed Lua state bound to an emitter.
//
// Runs are serialized. A script must not trigger another run on the same
// engine from a handler of an event it emits.
type Engine struct {
	mu      sync.Mutex
	L       *lua.LState
	closed  bool
	runCtx  context.Context
	emitter *event.Emitter
	themes  ThemeSource
	logger  zerolog.Logger
	timeout time.Duration
}

// Chunk is a compiled script.
type Chunk struct {
	name  string
	proto *lua.FunctionProto
}

// Name returns the chunk name used in error messages.
func (c *Chunk) Name() string {
	return c.name
}

// New creates an engine that emits on e.
func New(e *event.Emitter, opts ...Option) (*Engine, error) {
	if e == nil {
		return nil, ErrNilEmitter
	}
	eng := &Engine{
		emitter: e,
		logger:  zerolog.Nop(),
		timeout: DefaultTimeout,
		runCtx:  context.Background(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	eng.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(eng.L)
	eng.L.SetGlobal("notify", eng.L.NewFunction(eng.luaNotify))
	eng.L.SetGlobal("emit", eng.L.NewFunction(eng.luaEmit))
	eng.L.SetGlobal("theme", eng.L.NewFunction(eng.luaTheme))
	eng.L.SetGlobal("log", eng.L.NewFunction(eng.luaLog))
	return eng, nil
}

func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Compile parses src without running it.
func Compile(name, src string) (*Chunk, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyScript
	}
	stmts, err := parse.Parse(strings.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	proto, err := lua.Compile(stmts, name)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return &Chunk{name: name, proto: proto}, nil
}

// Run compiles and executes src.
func (e *Engine) Run(ctx context.Context, src string) error {
	c, err := Compile("<string>", src)
	if err != nil {
		return err
	}
	return e.Exec(ctx, c)
}

// Exec executes a compiled chunk. The run stops when ctx is done or the
// engine timeout elapses.
func (e *Engine) Exec(ctx context.Context, c *Chunk) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	e.runCtx = ctx
	e.L.SetContext(ctx)
	defer func() {
		e.L.RemoveContext()
		e.runCtx = context.Background()
	}()

	return e.doWithRecovery(func() error {
		e.L.Push(e.L.NewFunctionFromProto(c.proto))
		return e.L.PCall(0, lua.MultRet, nil)
	})
}

func (e *Engine) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	if err = fn(); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// Close releases the Lua state. Close is idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}

// IsClosed reports whether Close was called.
func (e *Engine) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Global returns a global variable converted to a Go value.
func (e *Engine) Global(name string) any {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	return toGo(e.L.GetGlobal(name), nil)
}

func (e *Engine) luaNotify(L *lua.LState) int {
	sev, err := event.ParseSeverity(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	msg := L.OptString(2, "")
	if err := e.emitter.EmitNotification(e.runCtx, sev, msg); err != nil {
		L.RaiseError("notify: %s", err.Error())
	}
	return 0
}

func (e *Engine) luaEmit(L *lua.LState) int {
	topic := L.CheckString(1)
	if topic == "" {
		L.ArgError(1, "empty topic")
		return 0
	}
	payload := toGo(L.Get(2), nil)
	if err := e.emitter.Emit(e.runCtx, event.Topic(topic), payload); err != nil {
		L.RaiseError("emit %s: %s", topic, err.Error())
	}
	return 0
}

func (e *Engine) luaTheme(L *lua.LState) int {
	t := theme.Default
	if e.themes != nil {
		t = e.themes.Current()
	}
	L.Push(lua.LString(t.String()))
	return 1
}

func (e *Engine) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	e.logger.Info().Str("source", "script").Msg(strings.Join(parts, " "))
	return 0
}
