package poly

import (
	"fmt"
	"strings"

	"github.com/lumen-lang/lumen/internal/ir"
)

// RefKind distinguishes an array write from an array read.
type RefKind int

const (
	Write RefKind = iota
	Read
)

func (k RefKind) String() string {
	if k == Write {
		return "write"
	}
	return "read"
}

// FuncPoly is one reference to an array — a Provide (write) or a Call
// (read) — captured with a snapshot of the domain and schedule at the
// point it occurred (spec.md §3, §4.3). It is immutable after
// construction.
type FuncPoly struct {
	Name     string
	Kind     RefKind
	Args     []ir.Expr
	Domain   PolytopeDomain
	Schedule PolytopeSchedule

	// ArgsAreLinear is the conjunction, across all arguments, of "mentions
	// zero or exactly one enclosing loop variable."
	ArgsAreLinear bool

	// ArgLoopVar[i] is the sole enclosing loop variable appearing in
	// Args[i], or "" if Args[i] is constant in the domain.
	ArgLoopVar []string

	// ArgRemainder[i] is Args[i] with ArgLoopVar[i] substituted by 0 and
	// simplified: the constant offset, assuming Args[i] has the form
	// v + c (spec.md §4.3 step 3, §9 "affine assumption").
	ArgRemainder []ir.Expr
}

// NewFuncPoly constructs a reference and classifies its arguments
// (spec.md §4.3). domain and schedule are cloned so later Builder
// mutation cannot retroactively change a published reference.
func NewFuncPoly(name string, kind RefKind, args []ir.Expr, domain PolytopeDomain, schedule PolytopeSchedule) *FuncPoly {
	f := &FuncPoly{
		Name:          name,
		Kind:          kind,
		Args:          args,
		Domain:        domain.Clone(),
		Schedule:      schedule.Clone(),
		ArgsAreLinear: true,
		ArgLoopVar:    make([]string, len(args)),
		ArgRemainder:  make([]ir.Expr, len(args)),
	}
	f.checkArgs()
	return f
}

func (f *FuncPoly) checkArgs() {
	for i, arg := range f.Args {
		vars := deriveDomainVars(arg, f.Domain)

		switch len(vars) {
		case 0:
			f.ArgLoopVar[i] = ""
			f.ArgRemainder[i] = arg

		case 1:
			v := vars[0]
			f.ArgLoopVar[i] = v
			f.ArgRemainder[i] = ir.Simplify(ir.Substitute(v, ir.Int(0), arg))

		default:
			f.ArgsAreLinear = false
			f.ArgLoopVar[i] = ""
			f.ArgRemainder[i] = arg
		}
	}
}

// deriveDomainVars returns, in order of first occurrence, every domain
// loop variable referenced by expr, each once (spec.md §4.3 step 1).
// Grounded on original_source/src/Polytope.cpp's FuncPoly::DeriveVars.
func deriveDomainVars(expr ir.Expr, domain PolytopeDomain) []string {
	var found []string
	seen := make(map[string]bool)
	var visit func(ir.Expr)
	visit = func(e ir.Expr) {
		if e == nil {
			return
		}
		if v, ok := e.(*ir.Variable); ok {
			if domain.Include(v.Name) && !seen[v.Name] {
				seen[v.Name] = true
				found = append(found, v.Name)
			}
			return
		}
		for _, child := range ir.ExprChildren(e) {
			visit(child)
		}
	}
	visit(expr)
	return found
}

// Overlaps searches, for every domain loop variable, whether it is
// referenced anywhere in the reference's schedule — which would mean the
// same statement instance executes at more than one point in that
// variable's range — but its result is discarded: the method always
// returns true regardless of what the search finds (spec.md §9, an open
// question left explicitly undecided by spec.md). The original performs
// exactly this search and still falls through to an unconditional
// `return true`, so every reference is conservatively treated as
// possibly overlapping at the same schedule point — which in turn
// promotes every Equal aggregate direction to Greater (spec.md §4.4 step
// 4). SPEC_FULL.md §8 records the decision to preserve this rather than
// silently "fix" it into the evidently intended (but unimplemented)
// check. Grounded on original_source/src/Polytope.cpp's
// FuncPoly::overlapped.
func (f *FuncPoly) Overlaps() bool {
	for _, d := range f.Domain.Entries {
		found := false
		for _, e := range f.Schedule.Entries {
			if FindOccurrence(e, d.Var, nil, true) {
				found = true
				break
			}
		}
		if !found {
			return true
		}
	}
	return true
}

func (f *FuncPoly) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(args, ", "))
}
