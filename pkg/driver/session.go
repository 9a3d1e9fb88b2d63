package driver

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"mysorescript/pkg/ast"
	"mysorescript/pkg/backend"
	"mysorescript/pkg/interpreter"
	"mysorescript/pkg/parser"
	"mysorescript/pkg/rt"
)

// Session is one persistent interpreter context plus the diagnostics
// options that apply across every batch it runs. File mode uses one
// Session for its single batch; REPL mode reuses the same Session, and
// therefore the same globals and class table, across every prompt.
type Session struct {
	ctx    *interpreter.Context
	Timing bool
	Memory bool
	Out    io.Writer
	Err    io.Writer

	// programs retains every parsed batch's AST for the session's
	// lifetime. REPL mode needs this because a closure or method built in
	// an earlier batch keeps referencing its declaration node (§5
	// Lifecycles: "AST nodes... in REPL mode, retained across prompts
	// because methods and closures reference them") — the interpreter
	// itself only holds onto nodes indirectly, through the closures and
	// methods built from them, so the driver keeps the root of each batch
	// alive explicitly rather than relying on that to pin every node.
	programs []*parsedBatch
}

type parsedBatch struct {
	name string
	tree *ast.Statements
}

// NewSession builds a session from a loaded Config.
func NewSession(cfg *Config, out, errw io.Writer) *Session {
	ctx := interpreter.NewContext(nil)
	if cfg.Backend == "reference" {
		ctx.Backend = backend.New(ctx)
	}
	if cfg.CompileThreshold > 0 {
		interpreter.CompileThreshold = cfg.CompileThreshold
	}
	return &Session{ctx: ctx, Out: out, Err: errw}
}

// RunSource parses and interprets one batch of source against the
// session's persistent context (§5 "each batch is parsed into a top-level
// statements node and interpreted against a persistent context").
func (s *Session) RunSource(name, src string) error {
	start := time.Now()
	var memBefore runtime.MemStats
	if s.Memory {
		runtime.ReadMemStats(&memBefore)
	}

	p, err := parser.New(src)
	if err != nil {
		return err
	}
	prog, err := p.ParseProgram()
	if err != nil {
		return err
	}
	s.programs = append(s.programs, &parsedBatch{name: name, tree: prog})

	if err := s.ctx.Interpret(prog); err != nil {
		return err
	}

	if s.Timing {
		fmt.Fprintf(s.Err, "mysorescript: %s took %s\n", name, time.Since(start))
	}
	if s.Memory {
		var memAfter runtime.MemStats
		runtime.ReadMemStats(&memAfter)
		fmt.Fprintf(s.Err, "mysorescript: %s heap delta %d bytes (total %d)\n",
			name, int64(memAfter.HeapAlloc)-int64(memBefore.HeapAlloc), memAfter.HeapAlloc)
	}
	return nil
}

// Context exposes the underlying interpreter context, mainly for tests
// and for a REPL prompt that wants to print the value of the last
// top-level expression.
func (s *Session) Context() *interpreter.Context { return s.ctx }

// FormatValue renders a Value for REPL/diagnostic output. It is not part
// of the language itself — MysoreScript has no printing construct in the
// core (§1 non-goals put I/O outside the interpreted language) — this is
// purely the driver's own debugging aid.
func FormatValue(ctx *interpreter.Context, v rt.Value) string {
	if v == rt.Null {
		return "null"
	}
	if rt.IsInteger(v) {
		return fmt.Sprintf("%d", rt.Unbox(v))
	}
	obj := ctx.HeapGet(v)
	switch o := obj.(type) {
	case *rt.String:
		return fmt.Sprintf("%q", o.Value)
	default:
		return fmt.Sprintf("#<%s>", obj.Class().Name)
	}
}
