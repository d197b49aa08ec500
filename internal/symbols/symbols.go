// Package symbols implements Hexen's scoped symbol table (spec §4.1): a
// stack of scope frames for variables and parameters, a stack of active loop
// labels, plus a separate global function-signature table populated by a pre-pass so that
// mutual reference between functions works without forward-declaration
// syntax.
package symbols

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kiinaq/hexen/internal/typesystem"
)

// Kind distinguishes why a name is bound.
type Kind int

const (
	VariableKind Kind = iota
	ParameterKind
)

// Symbol is one binding: a name, its declared type, whether it is mutable,
// and (for parameters) whether it has been assigned to in the current
// function body.
type Symbol struct {
	Name     string
	Type     typesystem.Type
	Mutable  bool
	Kind     Kind
	Modified bool
	// IsLoopVar marks a for-in loop variable, so an attempted assignment
	// to it can be reported with a more specific message than the
	// ordinary immutable-variable case (spec §4.10).
	IsLoopVar bool
}

// Param describes one entry in a function signature.
type Param struct {
	Name    string
	Type    typesystem.Type
	Mutable bool
}

// Signature is a function's name, ordered parameters, and return type.
type Signature struct {
	Name       string
	Parameters []Param
	ReturnType typesystem.Type
}

type scope struct {
	symbols map[string]*Symbol
	labels  map[string]bool
}

func newScope() *scope {
	return &scope{symbols: make(map[string]*Symbol), labels: make(map[string]bool)}
}

// Table is the analyzer's shared scope stack plus the global function table.
// It is owned exclusively by one Analyzer instance; sub-analyzers are given
// a reference to it rather than consulting package-level state (spec §5).
type Table struct {
	scopes    []*scope
	functions map[string]*Signature

	// currentReturnType is non-nil iff analysis is currently inside a
	// function body (spec §3 invariant).
	currentReturnType typesystem.Type
	inFunction        bool
	modifiedParams    map[string]bool

	// activeLabels is the stack of labels belonging to loops currently
	// being analyzed, innermost last, used to validate break/continue
	// label targets and to reject duplicate labels across overlapping
	// loop ranges.
	activeLabels []string

	log *logrus.Logger
}

// NewTable creates a Table with a single global scope. A nil logger
// disables debug tracing.
func NewTable(log *logrus.Logger) *Table {
	if log == nil {
		log = logrus.New()
		log.SetOutput(discardWriter{})
	}
	return &Table{
		scopes:    []*scope{newScope()},
		functions: make(map[string]*Signature),
		log:       log,
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Depth returns the number of scope frames currently on the stack.
// After top-level analysis completes this must equal 1 (spec §3 invariant).
func (t *Table) Depth() int { return len(t.scopes) }

// EnterScope pushes a fresh block scope.
func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, newScope())
	t.log.Debugf("symbols: enter scope, depth=%d", len(t.scopes))
}

// ExitScope pops the innermost scope. Calling it with no non-global scope
// on the stack is a programming error in the caller and is a no-op here so
// a bug in a sub-analyzer's exit path can't corrupt the global scope.
func (t *Table) ExitScope() {
	if len(t.scopes) <= 1 {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
	t.log.Debugf("symbols: exit scope, depth=%d", len(t.scopes))
}

func (t *Table) innermost() *scope { return t.scopes[len(t.scopes)-1] }

// DeclareVariable binds name in the innermost scope. It fails if name is
// already bound in that same scope (shadowing a name from an outer scope is
// permitted).
func (t *Table) DeclareVariable(name string, typ typesystem.Type, mutable bool) error {
	return t.declare(name, &Symbol{Name: name, Type: typ, Mutable: mutable, Kind: VariableKind})
}

// DeclareParameter binds a function parameter in the innermost scope.
func (t *Table) DeclareParameter(name string, typ typesystem.Type, mutable bool) error {
	return t.declare(name, &Symbol{Name: name, Type: typ, Mutable: mutable, Kind: ParameterKind})
}

// DeclareLoopVariable binds a for-in loop variable: always immutable, and
// tagged so assignment analysis can name it specifically (spec §4.10).
func (t *Table) DeclareLoopVariable(name string, typ typesystem.Type) error {
	return t.declare(name, &Symbol{Name: name, Type: typ, Mutable: false, Kind: VariableKind, IsLoopVar: true})
}

func (t *Table) declare(name string, sym *Symbol) error {
	s := t.innermost()
	if _, exists := s.symbols[name]; exists {
		return fmt.Errorf("duplicate declaration of %q in this scope", name)
	}
	s.symbols[name] = sym
	return nil
}

// Lookup finds name in the innermost scope that binds it, searching
// outward. It is the only way sub-analyzers resolve identifiers.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// IsParameter reports whether name resolves to a parameter binding.
func (t *Table) IsParameter(name string) bool {
	sym, ok := t.Lookup(name)
	return ok && sym.Kind == ParameterKind
}

// SetParameterModified marks name as assigned-to within the current
// function body. It is a no-op if name does not resolve to a parameter.
func (t *Table) SetParameterModified(name string) {
	if sym, ok := t.Lookup(name); ok && sym.Kind == ParameterKind {
		sym.Modified = true
		if t.modifiedParams == nil {
			t.modifiedParams = make(map[string]bool)
		}
		t.modifiedParams[name] = true
	}
}

// DeclareFunction registers a signature in the global function table. It is
// called during the pre-pass (spec §4.6) so mutual reference between
// functions is possible.
func (t *Table) DeclareFunction(sig Signature) error {
	if _, exists := t.functions[sig.Name]; exists {
		return fmt.Errorf("duplicate function declaration: %q", sig.Name)
	}
	t.functions[sig.Name] = &sig
	t.log.Debugf("symbols: registered function %q (%d params)", sig.Name, len(sig.Parameters))
	return nil
}

// LookupFunction resolves a function name against the global table.
func (t *Table) LookupFunction(name string) (*Signature, bool) {
	sig, ok := t.functions[name]
	return sig, ok
}

// EnterFunction records the enclosing function's declared return type and
// resets the modified-parameter set, both scoped to this function body
// (spec §3 invariant; spec §4.7).
func (t *Table) EnterFunction(returnType typesystem.Type) {
	t.currentReturnType = returnType
	t.inFunction = true
	t.modifiedParams = make(map[string]bool)
	t.log.Debugf("symbols: enter function body, return type=%s", returnType.String())
}

// ExitFunction clears the function-body context.
func (t *Table) ExitFunction() {
	t.currentReturnType = nil
	t.inFunction = false
	t.modifiedParams = nil
}

// InFunction reports whether analysis is currently inside a function body.
func (t *Table) InFunction() bool { return t.inFunction }

// CurrentReturnType returns the enclosing function's declared return type.
// Only meaningful when InFunction() is true.
func (t *Table) CurrentReturnType() typesystem.Type { return t.currentReturnType }

// ModifiedParameters returns the names of parameters (mut or not) assigned to
// so far in the current function body, in unspecified order.
func (t *Table) ModifiedParameters() []string {
	names := make([]string, 0, len(t.modifiedParams))
	for name := range t.modifiedParams {
		names = append(names, name)
	}
	return names
}

// DeclareLabel pushes a loop label onto the active-label stack, failing if
// the label is already active (a loop may not be labeled the same as one of
// its own enclosing loops).
func (t *Table) DeclareLabel(name string) error {
	if name == "" {
		return nil
	}
	for _, l := range t.activeLabels {
		if l == name {
			return fmt.Errorf("duplicate label %q", name)
		}
	}
	t.activeLabels = append(t.activeLabels, name)
	return nil
}

// ExitLabel pops the innermost active label. It is a no-op for the
// unlabeled case.
func (t *Table) ExitLabel(name string) {
	if name == "" || len(t.activeLabels) == 0 {
		return
	}
	t.activeLabels = t.activeLabels[:len(t.activeLabels)-1]
}

// HasLabel reports whether name is an active (enclosing) loop label.
func (t *Table) HasLabel(name string) bool {
	for _, l := range t.activeLabels {
		if l == name {
			return true
		}
	}
	return false
}
