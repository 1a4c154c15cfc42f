package poly

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/ir"
)

func TestNewDependencyOrientsBySchedule(t *testing.T) {
	domain := testDomain("i")

	early := NewSchedule()
	early.OpenFor("i")

	late := early.Clone()
	late.AdvanceStatement()
	late.AdvanceStatement()

	write := NewFuncPoly("a", Write, []ir.Expr{ir.Var("i")}, domain, early)
	read := NewFuncPoly("a", Read, []ir.Expr{ir.Var("i")}, domain, late)

	// Pass the later reference first; the aggregate direction it
	// computes (Greater, since the read's schedule trails the write's)
	// must still reorient so the write ends up Source.
	dep := NewDependency(read, write)

	if dep.Source != write || dep.Target != read {
		t.Fatalf("expected the write (earlier schedule) to be the source, got source=%s target=%s", dep.Source, dep.Target)
	}
	if dep.Kind != KindFlow {
		t.Fatalf("expected a write-then-read dependence to classify as flow, got %s", dep.Kind)
	}
}

func TestNewDependencyMismatchedArityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a dependency between references of mismatched arity to panic")
		}
	}()
	domain := testDomain("i")
	a := NewFuncPoly("x", Write, []ir.Expr{ir.Var("i")}, domain, NewSchedule())
	b := NewFuncPoly("x", Read, []ir.Expr{ir.Var("i"), ir.Int(0)}, domain, NewSchedule())
	NewDependency(a, b)
}

// TestNewDependencyDisjointConstantSubscriptsCompareBySchedulePosition
// demonstrates that the dependence test reasons purely from schedule
// position, never from whether two constant subscripts could actually
// collide: x(1) and x(2) share no loop variable at all (the domain is
// empty), so the comparison falls through to ordinary schedule-position
// comparison and finds the read's counter trailing the write's.
func TestNewDependencyDisjointConstantSubscriptsCompareBySchedulePosition(t *testing.T) {
	domain := PolytopeDomain{}
	a := NewFuncPoly("x", Write, []ir.Expr{ir.Int(1)}, domain, NewSchedule())
	late := NewSchedule()
	late.AdvanceStatement()
	b := NewFuncPoly("x", Read, []ir.Expr{ir.Int(2)}, domain, late)

	dep := NewDependency(a, b)
	if dep.Kind != KindFlow {
		t.Fatalf("expected schedule-position comparison to classify this pair as flow, got %s", dep.Kind)
	}
	if len(dep.Directions) != 1 || dep.Directions[0] != DirLess {
		t.Fatalf("expected a single Less direction entry, got %v", dep.Directions)
	}
}

// TestNewDependencySamePointPromotesOnlyTheAggregate is the mandatory
// case spec.md §4.4 step 4 and §4.5 step 2 distinguish: a write and a
// read of the same array captured at the identical schedule point (the
// shape a reduction's self-referencing update produces) have every
// per-position direction Equal, and the overlap promotion that follows
// (FuncPoly.Overlaps always returning true, spec.md §9) only ever
// touches the aggregate scalar used for orientation — never the
// Directions vector CanParallelize actually reads.
func TestNewDependencySamePointPromotesOnlyTheAggregate(t *testing.T) {
	domain := testDomain("i")
	sched := NewSchedule()
	sched.OpenFor("i")

	write := NewFuncPoly("a", Write, []ir.Expr{ir.Var("i")}, domain, sched)
	read := NewFuncPoly("a", Read, []ir.Expr{ir.Var("i")}, domain, sched)

	dep := NewDependency(write, read)

	if dep.Aggregate != DirGreater {
		t.Fatalf("expected the same-point overlap to promote the aggregate to Greater, got %s", dep.Aggregate)
	}
	if dep.Kind != KindAnti {
		t.Fatalf("expected the Greater-promoted aggregate to reorient this pair to an anti dependence, got %s", dep.Kind)
	}

	si, ok := dep.Source.Schedule.IndexOf("i")
	if !ok {
		t.Fatal("expected i to occupy a schedule position")
	}
	if dep.Directions[si] != DirEqual {
		t.Fatalf("expected the per-position direction at i to remain Equal despite the aggregate promotion, got %s", dep.Directions[si])
	}
}
