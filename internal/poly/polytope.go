package poly

import (
	"github.com/lumen-lang/lumen/internal/diag"
	"github.com/lumen-lang/lumen/internal/ir"
)

// Polytope is the complete polyhedral model of a statement tree: every
// analyzable array's references, every statement's domain/schedule
// summary, and every dependence between references to the same array
// (spec.md §3, §4).
type Polytope struct {
	Funcs map[string][]*FuncPoly
	All   []*FuncPoly // every reference in discovery order, regardless of array name
	Stmts []*StmtPoly
	Deps  []*DependencyPolyhedra
}

// Analyze builds the Builder's reference lists from s and derives every
// pairwise dependence between them (spec.md §4.2, §4.4).
func Analyze(s ir.Stmt, log *diag.Logger) *Polytope {
	b := NewBuilder(log)
	b.Build(s)

	p := &Polytope{
		Funcs: b.funcs,
		All:   b.all,
		Stmts: b.stmts,
	}
	p.computeDependencies(log)
	return p
}

// computeDependencies walks every reference in discovery order, pairing
// each write with every other same-named reference: a write/write pair
// is only considered once (in the earlier-indexed orientation), and a
// read never serves as the pairing's outer reference, since a read
// cannot be a dependence's sole distinguishing write. Grounded on
// original_source/src/Polytope.cpp's Polytope::compute_dependency.
func (p *Polytope) computeDependencies(log *diag.Logger) {
	for i, a := range p.All {
		if a.Kind == Read {
			continue
		}
		for j, b := range p.All {
			if i == j || a.Name != b.Name {
				continue
			}
			if b.Kind == Write && i > j {
				continue
			}
			dep := NewDependency(a, b)
			if log != nil {
				log.Debug(3, "%s: candidate pair (%d,%d) -> %s", a.Name, i, j, dep)
			}
			p.Deps = append(p.Deps, dep)
		}
	}
}

// DependenciesInvolving returns every dependence whose source and target
// both still enclose loopvar (spec.md §4.5): the set the
// auto-parallelization pass consults to decide whether a loop can run in
// parallel. Selection is by domain membership, not by whether loopvar
// happens to be one of the dependence's array arguments, so a dependence
// with no resolvable direction at all (an Unknown aggregate from a
// non-linear reference) still surfaces here instead of silently vanishing.
// Grounded on original_source/src/Polytope.cpp's Polytope::get_dependencies.
func (p *Polytope) DependenciesInvolving(loopvar string) []*DependencyPolyhedra {
	var out []*DependencyPolyhedra
	for _, dep := range p.Deps {
		if dep.Source.Domain.Include(loopvar) && dep.Target.Domain.Include(loopvar) {
			out = append(out, dep)
		}
	}
	return out
}

// CanParallelize reports whether every dependence touching loopvar
// carries an Equal direction at loopvar's shared schedule position
// (spec.md §4.5, §8 "Parallelization soundness"): no statement instance
// in the loop depends on a different instance of itself. A dependence
// whose Directions vector doesn't reach that position at all — the
// non-linear-reference case, where Directions is empty — conservatively
// blocks, since there is no Equal to find. Grounded on
// original_source/src/AutoParallelize.cpp's can_parallelize.
func (p *Polytope) CanParallelize(loopvar string) bool {
	for _, dep := range p.DependenciesInvolving(loopvar) {
		si, sok := dep.Source.Schedule.IndexOf(loopvar)
		ti, tok := dep.Target.Schedule.IndexOf(loopvar)
		diag.Assert(sok && tok && si == ti, diag.StageAutopar, diag.CodeSchedulePositionMismatch,
			"%s: loop variable %s occupies different schedule positions in the dependence's source and target", dep.Name, loopvar)

		if si >= len(dep.Directions) || dep.Directions[si] != DirEqual {
			return false
		}
	}
	return true
}
