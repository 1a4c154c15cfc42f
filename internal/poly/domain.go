package poly

import (
	"fmt"
	"strings"

	"github.com/lumen-lang/lumen/internal/diag"
	"github.com/lumen-lang/lumen/internal/ir"
)

// Domain is one enclosing loop's variable and its [Min, Max] bound
// (spec.md §3). Max is derived as simplify(min + extent - 1), so the
// invariant Max - Min >= 0 holds whenever the loop runs at least once.
type Domain struct {
	Var string
	Min ir.Expr
	Max ir.Expr
}

func (d Domain) String() string {
	return fmt.Sprintf("[%s, %s]", d.Min, d.Max)
}

// PolytopeDomain is the stack of enclosing loop variables with their
// bounds, outermost first (spec.md §3). It is mutated only by the
// Builder via balanced PushFor/PopFor calls.
type PolytopeDomain struct {
	Entries []Domain
}

func (d PolytopeDomain) Size() int { return len(d.Entries) }

// Include reports whether loopvar is one of the currently enclosing loops.
func (d PolytopeDomain) Include(loopvar string) bool {
	for _, e := range d.Entries {
		if e.Var == loopvar {
			return true
		}
	}
	return false
}

// PushFor opens a new domain level for the loop variable of f.
func (d *PolytopeDomain) PushFor(f *ir.For) {
	max := ir.Simplify(&ir.Sub{
		A: &ir.Add{A: f.Min, B: f.Extent},
		B: ir.Int(1),
	})
	d.Entries = append(d.Entries, Domain{Var: f.Var, Min: f.Min, Max: max})
}

// PopFor closes the innermost domain level.
func (d *PolytopeDomain) PopFor() {
	diag.Assert(len(d.Entries) > 0, diag.StagePoly, diag.CodeEmptyDomain, "pop_for called on an empty domain")
	d.Entries = d.Entries[:len(d.Entries)-1]
}

func (d PolytopeDomain) String() string {
	parts := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// Clone returns an independent copy, used when a reference (FuncPoly)
// captures a snapshot of the domain at the point it is constructed
// (spec.md §3: "a snapshot of domain and schedule at point of capture").
func (d PolytopeDomain) Clone() PolytopeDomain {
	entries := make([]Domain, len(d.Entries))
	copy(entries, d.Entries)
	return PolytopeDomain{Entries: entries}
}
