// Package autopar rewrites serial For loops to parallel ones wherever the
// polyhedral model proves it safe (spec.md §4.5).
package autopar

import (
	"github.com/lumen-lang/lumen/internal/diag"
	"github.com/lumen-lang/lumen/internal/ir"
	"github.com/lumen-lang/lumen/internal/poly"
)

// pass is an ir.Mutator that overrides only the For case; every other
// node kind falls through to ir.BaseMutator's default recursion.
type pass struct {
	ir.BaseMutator
	model *poly.Polytope
	log   *diag.Logger
}

// Apply rewrites every For loop s's polyhedral model proves carries no
// loop-carried dependence into a parallel loop, leaving everything else
// unchanged (spec.md §4.5 steps 1-3).
func Apply(s ir.Stmt, model *poly.Polytope, log *diag.Logger) ir.Stmt {
	p := &pass{model: model, log: log}
	p.Self = p
	return p.MutateStmt(s)
}

func (p *pass) MutateStmt(s ir.Stmt) ir.Stmt {
	n, ok := s.(*ir.For)
	if !ok {
		return p.BaseMutator.MutateStmt(s)
	}

	body := p.MutateStmt(n.Body)

	if n.ForType != ir.Serial || !p.model.CanParallelize(n.Var) {
		if body == n.Body {
			return n
		}
		return &ir.For{Var: n.Var, Min: n.Min, Extent: n.Extent, ForType: n.ForType, DeviceAPI: n.DeviceAPI, Body: body}
	}

	if p.log != nil {
		p.log.Debug(1, "parallelizing loop %s", n.Var)
	}
	return &ir.For{Var: n.Var, Min: n.Min, Extent: n.Extent, ForType: ir.Parallel, DeviceAPI: n.DeviceAPI, Body: body}
}
