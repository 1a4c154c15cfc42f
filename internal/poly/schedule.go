package poly

import (
	"strings"

	"github.com/lumen-lang/lumen/internal/diag"
	"github.com/lumen-lang/lumen/internal/ir"
)

// PolytopeSchedule is the lexicographic coordinate locating a statement
// instance within its enclosing loop nest (spec.md §3): an odd-length
// sequence [s0, v1, s1, v2, s2, ..., vk, sk] where each si is an integer
// counter and each vj is a loop-variable reference.
type PolytopeSchedule struct {
	Entries []ir.Expr
}

// NewSchedule returns the initial schedule [0].
func NewSchedule() PolytopeSchedule {
	return PolytopeSchedule{Entries: []ir.Expr{ir.Int(0)}}
}

func (s PolytopeSchedule) Size() int { return len(s.Entries) }

// IndexOf returns the schedule position of loop variable v, if present.
func (s PolytopeSchedule) IndexOf(v string) (int, bool) {
	for i, e := range s.Entries {
		if variable, ok := e.(*ir.Variable); ok && variable.Name == v {
			return i, true
		}
	}
	return 0, false
}

// AdvanceStatement increments the trailing counter, marking that one more
// statement instance has completed at the current schedule point.
func (s *PolytopeSchedule) AdvanceStatement() {
	diag.Assert(len(s.Entries) > 0, diag.StagePoly, diag.CodeUnsupportedScheduleShape, "advance_statement on an empty schedule")
	last := len(s.Entries) - 1
	s.Entries[last] = ir.Simplify(&ir.Add{A: s.Entries[last], B: ir.Int(1)})
}

// OpenFor appends a new loop level: the loop variable followed by a fresh
// zero counter.
func (s *PolytopeSchedule) OpenFor(v string) {
	diag.Assert(len(s.Entries) > 0, diag.StagePoly, diag.CodeUnsupportedScheduleShape, "open_for(%s) on an empty schedule", v)
	s.Entries = append(s.Entries, ir.Var(v), ir.Int(0))
}

// CloseFor requires the last two entries to be v followed by an integer
// counter (of any value); it pops both and increments the new trailing
// counter.
func (s *PolytopeSchedule) CloseFor(v string) {
	n := len(s.Entries)
	diag.Assert(n >= 3, diag.StagePoly, diag.CodeUnsupportedScheduleShape, "close_for(%s): schedule too short to close a loop level", v)

	_, isInt := ir.AsConstInt(s.Entries[n-1])
	diag.Assert(isInt, diag.StagePoly, diag.CodeUnsupportedScheduleShape, "close_for(%s): unsupported pattern, expected a trailing integer counter", v)

	variable, ok := s.Entries[n-2].(*ir.Variable)
	diag.Assert(ok && variable.Name == v, diag.StagePoly, diag.CodeUnsupportedScheduleShape, "close_for(%s): unsupported pattern, expected trailing variable %s", v, v)

	s.Entries = s.Entries[:n-2]
	s.AdvanceStatement()
}

func (s PolytopeSchedule) String() string {
	parts := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Clone returns an independent copy for snapshotting into a FuncPoly.
func (s PolytopeSchedule) Clone() PolytopeSchedule {
	entries := make([]ir.Expr, len(s.Entries))
	copy(entries, s.Entries)
	return PolytopeSchedule{Entries: entries}
}

// Less is the lexicographic comparison program order is defined by
// (spec.md §3). Positions holding an integer counter compare
// numerically; positions holding a loop-variable reference (which only
// differ in which variable labels a level, never in two schedules being
// compared at the same statement) compare by name for a total, stable
// order. A schedule that is a strict prefix of another sorts first.
func (s PolytopeSchedule) Less(other PolytopeSchedule) bool {
	n := min(len(s.Entries), len(other.Entries))
	for i := 0; i < n; i++ {
		a, b := s.Entries[i], other.Entries[i]
		av, aIsInt := ir.AsConstInt(ir.Simplify(a))
		bv, bIsInt := ir.AsConstInt(ir.Simplify(b))
		if aIsInt && bIsInt {
			if av != bv {
				return av < bv
			}
			continue
		}
		as, bs := a.String(), b.String()
		if as != bs {
			return as < bs
		}
	}
	return len(s.Entries) < len(other.Entries)
}

// Equal reports whether two schedules are identical entry by entry.
func (s PolytopeSchedule) Equal(other PolytopeSchedule) bool {
	if len(s.Entries) != len(other.Entries) {
		return false
	}
	for i := range s.Entries {
		if s.Entries[i].String() != other.Entries[i].String() {
			return false
		}
	}
	return true
}
