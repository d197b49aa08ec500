// Package diag implements the analyzer's structured error sink (spec §7):
// a taxonomy of diagnostic kinds, stable codes, and a collect-don't-stop
// sink that every sub-analyzer writes into.
package diag

import (
	"fmt"
	"sort"

	"github.com/kiinaq/hexen/internal/ast"
	"github.com/kiinaq/hexen/internal/token"
)

// Kind is the top-level diagnostic category (spec §7).
type Kind int

const (
	KindStructural Kind = iota
	KindScope
	KindMutability
	KindType
	KindContract
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindScope:
		return "scope"
	case KindMutability:
		return "mutability"
	case KindType:
		return "type"
	case KindContract:
		return "contract"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Stable diagnostic codes. Embedding tools can filter or suppress by code
// without pattern-matching the message text.
const (
	CodeUnknownNode           = "E-STRUCT-001"
	CodeMissingChild          = "E-STRUCT-002"
	CodeYieldOutsideExprBlock = "E-STRUCT-003"
	CodeReturnValueInVoid     = "E-STRUCT-004"
	CodeBareReturnInExprBlock = "E-STRUCT-005"
	CodeBreakOutsideLoop      = "E-STRUCT-006"
	CodeContinueOutsideLoop   = "E-STRUCT-007"
	CodeBlockFallsThrough     = "E-STRUCT-008"

	CodeUndefinedIdentifier = "E-SCOPE-001"
	CodeUndefinedFunction   = "E-SCOPE-002"
	CodeDuplicateDecl       = "E-SCOPE-003"
	CodeDuplicateParam      = "E-SCOPE-004"
	CodeDuplicateLabel      = "E-SCOPE-005"
	CodeUnknownLabel        = "E-SCOPE-006"

	CodeAssignImmutableVar   = "E-MUT-001"
	CodeAssignImmutableParam = "E-MUT-002"
	CodeAssignLoopVar        = "E-MUT-003"

	CodeTypeMismatch        = "E-TYPE-001"
	CodeMixedConcrete       = "E-TYPE-002"
	CodeBadConversion       = "E-TYPE-003"
	CodeArraySizeMismatch   = "E-TYPE-004"
	CodeArrayDimMismatch    = "E-TYPE-005"
	CodeArrayElemMismatch   = "E-TYPE-006"
	CodeFlattenNeedsCopy    = "E-TYPE-007"
	CodeArgCountMismatch    = "E-TYPE-008"

	CodeVoidMutParamModified   = "E-CONTRACT-001"
	CodeRuntimeBlockNoAnnot    = "E-CONTRACT-002"
	CodeUnboundedRangeInExpr   = "E-CONTRACT-003"
	CodeNonBoolWhileCondition  = "E-CONTRACT-004"
	CodeNonBoolIfCondition     = "E-CONTRACT-005"
	CodeVoidParam              = "E-CONTRACT-006"

	CodeInternal = "E-INTERNAL-001"
)

// Diagnostic is one analyzer finding. It implements error so it composes
// with ordinary Go error-handling idioms.
type Diagnostic struct {
	Kind    Kind
	Code    string
	Message string
	Pos     token.Position
	Node    ast.Node
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s [%s]: %s", d.Pos.String(), d.Code, d.Message)
}

// New builds a Diagnostic anchored to node's position.
func New(kind Kind, code string, node ast.Node, format string, args ...interface{}) *Diagnostic {
	pos := token.Position{}
	if node != nil {
		pos = node.Pos()
	}
	return &Diagnostic{
		Kind:    kind,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		Node:    node,
	}
}

// Sink accumulates diagnostics without ever aborting analysis (spec §7:
// "collect, don't stop"). MaxErrors, when positive, caps how many findings
// are retained — it never changes which errors are detected, only how many
// of them the caller keeps.
type Sink struct {
	items    []*Diagnostic
	maxItems int
}

// NewSink creates a Sink. maxErrors <= 0 means unbounded.
func NewSink(maxErrors int) *Sink {
	return &Sink{maxItems: maxErrors}
}

// Add records a diagnostic.
func (s *Sink) Add(d *Diagnostic) {
	if s.maxItems > 0 && len(s.items) >= s.maxItems {
		return
	}
	s.items = append(s.items, d)
}

// Empty reports whether no diagnostics have been recorded.
func (s *Sink) Empty() bool { return len(s.items) == 0 }

// Diagnostics returns all recorded diagnostics sorted by source position,
// so output is stable regardless of the order sub-analyzers ran in (spec §5).
func (s *Sink) Diagnostics() []*Diagnostic {
	out := make([]*Diagnostic, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pos.Less(out[j].Pos)
	})
	return out
}
