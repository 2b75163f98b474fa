package script

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/voxtune/internal/editor"
	"github.com/dshills/voxtune/internal/engine/history"
)

// DefaultMaxEdits bounds the edit calls of a single run.
const DefaultMaxEdits = 100_000

// Runner executes edit scripts against one editor session.
type Runner struct {
	session *editor.Session
	state   *State

	maxEdits int
	edits    int
	limited  bool

	timeout time.Duration
	output  io.Writer
	logger  *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithMaxEdits sets the maximum number of edit calls per run.
// A non-positive value removes the limit.
func WithMaxEdits(n int) Option {
	return func(r *Runner) {
		r.maxEdits = n
	}
}

// WithTimeout sets the deadline of each run.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithPrintOutput redirects the script's print calls.
func WithPrintOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.output = w
	}
}

// WithLogger sets the logger used by the log global.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a runner bound to session.
func NewRunner(session *editor.Session, opts ...Option) *Runner {
	r := &Runner{
		session:  session,
		maxEdits: DefaultMaxEdits,
		timeout:  DefaultTimeout,
		output:   io.Discard,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}

	r.state = NewState(WithStateTimeout(r.timeout), WithOutput(r.output))
	r.register()
	return r
}

// Edits returns the number of successful edit calls made by the last run.
func (r *Runner) Edits() int {
	return r.edits
}

// Run executes a chunk of Lua code.
func (r *Runner) Run(ctx context.Context, code string) error {
	return r.run(func() error {
		return r.state.DoString(ctx, code)
	})
}

// RunFile executes a Lua file.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.run(func() error {
		return r.state.DoFile(ctx, path)
	})
}

func (r *Runner) run(fn func() error) error {
	r.edits = 0
	r.limited = false
	cp := r.session.Checkpoint()

	err := fn()
	if err == nil && r.limited {
		// The limit error was caught by pcall inside the script.
		err = fmt.Errorf("%w: %d edits", ErrEditLimit, r.maxEdits)
	} else if err != nil && r.limited {
		err = fmt.Errorf("%w: %d edits: %w", ErrEditLimit, r.maxEdits, err)
	}

	h := r.session.History()
	if err != nil {
		if r.edits > 0 {
			r.logger.Warn("reverting script edits", "edits", r.edits)
		}
		r.session.RevertTo(cp)
		return err
	}
	if h.PendingCount() > 0 {
		r.session.Release()
	}
	r.logger.Debug("script finished", "edits", r.edits, "undo", h.UndoCount())
	return nil
}

// Close releases the Lua state.
func (r *Runner) Close() error {
	return r.state.Close()
}

func (r *Runner) register() {
	r.state.RegisterFunc("set", r.luaSet)
	r.state.RegisterFunc("get", r.luaGet)
	r.state.RegisterFunc("commit", func(*lua.LState) int {
		r.session.Release()
		return 0
	})
	r.state.RegisterFunc("cancel", func(*lua.LState) int {
		r.session.Cancel()
		return 0
	})
	r.state.RegisterFunc("undo", func(L *lua.LState) int {
		L.Push(lua.LBool(r.session.Undo()))
		return 1
	})
	r.state.RegisterFunc("redo", func(L *lua.LState) int {
		L.Push(lua.LBool(r.session.Redo()))
		return 1
	})
	r.state.RegisterFunc("lines", r.luaLines)
	r.state.RegisterFunc("history", r.luaHistory)
	r.state.RegisterFunc("add_line", r.luaAddLine)
	r.state.RegisterFunc("remove_line", r.luaRemoveLine)
	r.state.RegisterFunc("log", func(L *lua.LState) int {
		r.logger.Info(L.CheckString(1))
		return 0
	})
}

// checkEditLimit raises a Lua error once the edit limit is reached.
// Callers count the edit only after it succeeds.
func (r *Runner) checkEditLimit(L *lua.LState) {
	if r.maxEdits > 0 && r.edits >= r.maxEdits {
		r.limited = true
		L.RaiseError("edit limit of %d reached", r.maxEdits)
	}
}

func checkKind(L *lua.LState, n int) history.Kind {
	kind, err := history.ParseKind(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return kind
}

func (r *Runner) luaSet(L *lua.LState) int {
	kind := checkKind(L, 1)
	key := L.CheckString(2)
	v, err := toValue(kind, L.CheckAny(3))
	if err != nil {
		L.ArgError(3, err.Error())
	}
	r.checkEditLimit(L)

	if _, err := r.session.Edit(kind, key, v); err != nil {
		L.RaiseError("%s", err.Error())
	}
	r.edits++
	return 0
}

func (r *Runner) luaGet(L *lua.LState) int {
	kind := checkKind(L, 1)
	v, ok := r.session.Value(kind, L.CheckString(2))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(toLua(v))
	return 1
}

func (r *Runner) luaLines(L *lua.LState) int {
	p := r.session.Project()
	tbl := L.NewTable()
	for _, key := range p.Keys() {
		item, _ := p.Item(key)
		line := L.NewTable()
		line.RawSetString("key", lua.LString(key))
		line.RawSetString("text", lua.LString(item.Text))
		line.RawSetString("style", lua.LNumber(item.StyleID))
		tbl.Append(line)
	}
	L.Push(tbl)
	return 1
}

func (r *Runner) luaHistory(L *lua.LState) int {
	view := r.session.History().View()
	tbl := L.NewTable()
	for _, e := range view.Entries {
		tbl.Append(lua.LString(e.Label))
	}
	L.Push(tbl)
	L.Push(lua.LNumber(view.Current + 1))
	return 2
}

func (r *Runner) luaAddLine(L *lua.LState) int {
	text := L.CheckString(1)
	style := L.OptInt(2, 0)
	r.checkEditLimit(L)

	L.Push(lua.LString(r.session.AddLine(text, style, nil)))
	r.edits++
	return 1
}

func (r *Runner) luaRemoveLine(L *lua.LState) int {
	key := L.CheckString(1)
	r.checkEditLimit(L)

	removed := r.session.RemoveLine(key)
	if removed {
		r.edits++
	}
	L.Push(lua.LBool(removed))
	return 1
}

// toValue converts a Lua argument into an edit value for kind.
func toValue(kind history.Kind, lv lua.LValue) (history.Value, error) {
	switch v := lv.(type) {
	case lua.LString:
		return history.StringValue(string(v)), nil
	case lua.LNumber:
		f := float64(v)
		if kind == history.KindStyle && f == float64(int(f)) {
			return history.IntValue(int(f)), nil
		}
		return history.FloatValue(f), nil
	default:
		return history.Value{}, fmt.Errorf("unsupported value type %s", lv.Type())
	}
}

// toLua converts a field value into a Lua value.
func toLua(v history.Value) lua.LValue {
	switch x := v.Interface().(type) {
	case string:
		return lua.LString(x)
	case float64:
		return lua.LNumber(x)
	case int:
		return lua.LNumber(x)
	default:
		return lua.LNil
	}
}
