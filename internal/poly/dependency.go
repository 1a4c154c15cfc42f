package poly

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/diag"
	"github.com/lumen-lang/lumen/internal/ir"
)

// Direction classifies how a dependence's source schedule coordinate,
// rewritten into the target's index space, compares to the target's own
// schedule coordinate at one shared position (spec.md §4.4).
type Direction int

const (
	// DirEqual means both references conflict at the same point of that
	// schedule position: no instance of the loop there is waiting on a
	// different instance of itself.
	DirEqual Direction = iota
	// DirLess means the source's rewritten coordinate always precedes the
	// target's: a forward, loop-carried dependence.
	DirLess
	// DirGreater means the source's rewritten coordinate always follows
	// the target's.
	DirGreater
	// DirUnknown means the difference between the two coordinates could
	// not be resolved to a constant.
	DirUnknown
)

func (d Direction) String() string {
	switch d {
	case DirEqual:
		return "="
	case DirLess:
		return "-"
	case DirGreater:
		return "+"
	default:
		return "*"
	}
}

// Kind classifies a dependence by the read/write pattern of its two
// references, in program order (spec.md §4.4).
type Kind int

const (
	KindNone Kind = iota
	KindFlow
	KindAnti
	KindOutput
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFlow:
		return "flow"
	case KindAnti:
		return "anti"
	case KindOutput:
		return "output"
	default:
		return "unknown"
	}
}

// DependencyPolyhedra is one candidate dependence between two references
// to the same array (spec.md §4.4). Source and Target start out as the
// two references passed to NewDependency and may be swapped by
// fixSourceTarget once the aggregate Direction is known.
type DependencyPolyhedra struct {
	Name   string
	Source *FuncPoly
	Target *FuncPoly
	Kind   Kind

	// IterReplacement[i] rewrites Source's sole loop variable at argument
	// position i into Target's index space: Target.Args[i] minus
	// Source's constant remainder there (spec.md §4.4 step 2).
	IterReplacement []ir.Expr

	// ReplacedSchedule is a clone of Source.Schedule with every one of
	// Source's arg_loopvars substituted by its IterReplacement entry
	// (spec.md §4.4 step 2). Schedule positions that hold some other
	// loop variable — one that never appears as a Source argument, such
	// as a reduction variable — pass through unsubstituted.
	ReplacedSchedule PolytopeSchedule

	// Directions[i] is the direction this dependence carries at shared
	// schedule position i, for the positions ReplacedSchedule and
	// Target.Schedule have in common (spec.md §4.4 step 3). This is what
	// parallelization actually consults (spec.md §4.5 step 2).
	Directions []Direction

	// Aggregate is the first non-Equal entry of Directions, or DirEqual
	// if every shared position agrees. The same-point overlap promotion
	// (spec.md §4.4 step 4) only ever touches Aggregate, so it has no
	// effect on parallelization, which reads Directions instead.
	Aggregate Direction

	forced bool // true once Kind has been set to Unknown directly, bypassing Read/Write classification
}

// NewDependency builds and classifies the dependence between two
// references to the same array (spec.md §4.4). a and b are taken
// literally as an initial (source, target) pair; fixSourceTarget may
// reorient them once Aggregate is known.
func NewDependency(a, b *FuncPoly) *DependencyPolyhedra {
	diag.Assert(a.Name == b.Name, diag.StagePoly, diag.CodeMismatchedArity,
		"dependency requested between references to different arrays %s and %s", a.Name, b.Name)
	diag.Assert(len(a.Args) == len(b.Args), diag.StagePoly, diag.CodeMismatchedArity,
		"%s: reference arity mismatch (%d vs %d args)", a.Name, len(a.Args), len(b.Args))

	dep := &DependencyPolyhedra{
		Name:   a.Name,
		Source: a,
		Target: b,
	}

	if !a.ArgsAreLinear || !b.ArgsAreLinear {
		dep.Aggregate = DirUnknown
		dep.Kind = KindUnknown
		dep.forced = true
		return dep
	}

	dep.computeIterReplacement()
	dep.computeDirections()
	dep.fixSourceTarget()
	dep.detectKind()
	return dep
}

// computeIterReplacement solves, for each of Source's affine arguments,
// what value of Source's loop variable would line that argument up with
// Target's argument at the same position, then substitutes that solution
// into a clone of Source's schedule (spec.md §4.4 step 2). Grounded on
// original_source/src/Polytope.cpp's compute_iter_replacement.
func (dep *DependencyPolyhedra) computeIterReplacement() {
	source, target := dep.Source, dep.Target

	dep.IterReplacement = make([]ir.Expr, len(source.Args))
	replacements := make(map[string]ir.Expr, len(source.Args))
	for i := range source.Args {
		dep.IterReplacement[i] = ir.Simplify(&ir.Sub{A: target.Args[i], B: source.ArgRemainder[i]})
		replacements[source.ArgLoopVar[i]] = dep.IterReplacement[i]
	}

	dep.ReplacedSchedule = source.Schedule.Clone()
	for i, e := range dep.ReplacedSchedule.Entries {
		dep.ReplacedSchedule.Entries[i] = ir.Simplify(ir.SubstituteAll(replacements, e))
	}
}

// computeDirections compares ReplacedSchedule against Target.Schedule
// position by position, latching Aggregate to the first non-Equal
// direction found, then — if every shared position agreed — promotes
// Aggregate alone to Greater whenever either reference may overlap
// itself (spec.md §4.4 steps 3-4). Grounded on
// original_source/src/Polytope.cpp's compute_directions/compute_direction.
func (dep *DependencyPolyhedra) computeDirections() {
	a, b := dep.ReplacedSchedule, dep.Target.Schedule

	dep.Aggregate = DirEqual
	common := min(a.Size(), b.Size())
	dep.Directions = make([]Direction, common)
	for i := 0; i < common; i++ {
		d := computeDirection(a.Entries[i], b.Entries[i])
		dep.Directions[i] = d
		if dep.Aggregate == DirEqual {
			dep.Aggregate = d
		}
	}

	if dep.Aggregate == DirEqual {
		diag.Assert(a.Size() == b.Size(), diag.StagePoly, diag.CodeUnsupportedScheduleShape,
			"%s: two different size schedules should not compare equal", dep.Name)
		if dep.Source.Overlaps() || dep.Target.Overlaps() {
			dep.Aggregate = DirGreater
		}
	}
}

func computeDirection(a, b ir.Expr) Direction {
	diff, ok := ir.AsConstInt(ir.Simplify(&ir.Sub{A: b, B: a}))
	if !ok {
		return DirUnknown
	}
	switch {
	case diff > 0:
		return DirLess
	case diff < 0:
		return DirGreater
	default:
		return DirEqual
	}
}

// fixSourceTarget reorients Source/Target once Aggregate is known,
// mirroring original_source/src/Polytope.cpp's fix_source_target. The
// Equal branch below is unreachable in practice since Overlaps always
// returns true (spec.md §9), so Aggregate never survives computeDirections
// as Equal; it is kept to match the original's shape exactly.
func (dep *DependencyPolyhedra) fixSourceTarget() {
	switch {
	case dep.Aggregate == DirGreater:
		dep.Source, dep.Target = dep.Target, dep.Source
		for i, d := range dep.Directions {
			switch d {
			case DirLess:
				dep.Directions[i] = DirGreater
			case DirGreater:
				dep.Directions[i] = DirLess
			}
		}

	case dep.Aggregate == DirEqual && dep.Source.Kind == Write && dep.Target.Kind == Read:
		dep.Source, dep.Target = dep.Target, dep.Source
	}
}

func (dep *DependencyPolyhedra) detectKind() {
	switch {
	case dep.Aggregate == DirUnknown:
		dep.Kind = KindUnknown
	case dep.Aggregate == DirEqual:
		dep.Kind = KindNone
	case dep.Source.Kind == Write && dep.Target.Kind == Read:
		dep.Kind = KindFlow
	case dep.Source.Kind == Read && dep.Target.Kind == Write:
		dep.Kind = KindAnti
	case dep.Source.Kind == Write && dep.Target.Kind == Write:
		dep.Kind = KindOutput
	default:
		dep.Kind = KindUnknown
	}
}

func (dep *DependencyPolyhedra) String() string {
	return fmt.Sprintf("%s: %s -> %s [%s] %v", dep.Name, dep.Source, dep.Target, dep.Kind, dep.Directions)
}
