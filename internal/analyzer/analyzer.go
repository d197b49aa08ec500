// Package analyzer implements Hexen's semantic analysis (spec §1-§4): given
// an already-parsed AST, it determines whether a program is well-formed and
// assigns a type to every expression, producing a list of structured
// diagnostics. It never panics out to its caller and it never stops at the
// first error (spec §7).
package analyzer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/config"
	"github.com/kiinaq/hexen/internal/diag"
	"github.com/kiinaq/hexen/internal/symbols"
	"github.com/kiinaq/hexen/internal/typesystem"
)

// Analyzer owns every piece of mutable state a single analysis run touches:
// the symbol table, the diagnostic sink, and the small amount of ambient
// context (current loop nesting, configuration, logger). A flat struct
// holding state and calling helper methods directly, rather than a set of
// cooperating objects wired by callbacks (spec §9, Design Notes).
type Analyzer struct {
	table *symbols.Table
	sink  *diag.Sink
	opts  config.AnalyzerOptions
	log   *logrus.Logger

	// TypeMap records the type assigned to every analyzed expression and
	// the binding type of every variable declaration, keyed by AST node
	// identity. It is exported so an embedder (or a test) can inspect
	// exactly what the analyzer decided, matching the teacher's own
	// Analyzer.TypeMap.
	TypeMap map[ast.Node]typesystem.Type

	loopDepth int
}

// Result is what a call to Analyze returns: the correlation ID for this
// run plus the diagnostics produced.
type Result struct {
	RunID       string
	Diagnostics []*diag.Diagnostic
}

// Ok reports whether the run found no errors.
func (r Result) Ok() bool { return len(r.Diagnostics) == 0 }

// New creates an Analyzer. A nil logger disables debug tracing; passing
// config.Default() is correct for callers with no configuration file.
func New(opts config.AnalyzerOptions, log *logrus.Logger) *Analyzer {
	if log == nil {
		log = logrus.New()
		log.SetOutput(discardWriter{})
	}
	return &Analyzer{
		table:   symbols.NewTable(log),
		sink:    diag.NewSink(opts.MaxErrors),
		opts:    opts,
		log:     log,
		TypeMap: make(map[ast.Node]typesystem.Type),
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Analyze runs semantic analysis on a full program: a pre-pass registers
// every function signature (spec §4.6, enabling mutual reference and
// recursion), then each function body and each top-level statement is
// analyzed in source order.
func (a *Analyzer) Analyze(prog *ast.Program) Result {
	runID := uuid.NewString()
	a.log.WithField("run", runID).Debug("analyzer: starting run")

	a.safely(func() { a.registerFunctionSignatures(prog) })

	for _, fn := range prog.Functions {
		a.safely(func() { a.analyzeFunctionDeclaration(fn) })
	}
	for _, stmt := range prog.Statements {
		a.safely(func() { a.analyzeStatement(stmt) })
	}

	a.log.WithField("run", runID).Debugf("analyzer: finished, scope depth=%d", a.table.Depth())

	return Result{RunID: runID, Diagnostics: a.sink.Diagnostics()}
}

// safely runs fn, converting any panic into a KindInternal diagnostic so a
// bug in one sub-analyzer can never prevent the rest of the program from
// being analyzed (spec §7, category 6).
func (a *Analyzer) safely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.sink.Add(&diag.Diagnostic{
				Kind:    diag.KindInternal,
				Code:    diag.CodeInternal,
				Message: fmt.Sprintf("internal analyzer error: %v", r),
			})
		}
	}()
	fn()
}

// addError is the single entry point every sub-analyzer uses to report a
// finding; it never stops analysis (spec §7).
func (a *Analyzer) addError(kind diag.Kind, code string, node ast.Node, format string, args ...interface{}) {
	a.sink.Add(diag.New(kind, code, node, format, args...))
}

// setType records the type assigned to node and returns it, so call sites
// can write `return a.setType(node, t)`.
func (a *Analyzer) setType(node ast.Node, t typesystem.Type) typesystem.Type {
	a.TypeMap[node] = t
	return t
}
