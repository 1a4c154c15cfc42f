package poly

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/ir"
)

func testDomain(vars ...string) PolytopeDomain {
	var d PolytopeDomain
	for _, v := range vars {
		d.PushFor(&ir.For{Var: v, Min: ir.Int(0), Extent: ir.Int(10)})
	}
	return d
}

func TestFuncPolyClassifiesSingleVariableArgument(t *testing.T) {
	domain := testDomain("i")
	schedule := NewSchedule()

	f := NewFuncPoly("a", Write, []ir.Expr{&ir.Add{A: ir.Var("i"), B: ir.Int(3)}}, domain, schedule)

	if !f.ArgsAreLinear {
		t.Fatal("expected a single-variable argument to be linear")
	}
	if f.ArgLoopVar[0] != "i" {
		t.Fatalf("expected loop var i, got %q", f.ArgLoopVar[0])
	}
	if got, ok := ir.AsConstInt(f.ArgRemainder[0]); !ok || got != 3 {
		t.Fatalf("expected remainder 3, got %v", f.ArgRemainder[0])
	}
}

func TestFuncPolyConstantArgumentHasNoLoopVar(t *testing.T) {
	domain := testDomain("i")
	f := NewFuncPoly("a", Read, []ir.Expr{ir.Int(7)}, domain, NewSchedule())

	if f.ArgLoopVar[0] != "" {
		t.Fatalf("expected no loop var for a constant argument, got %q", f.ArgLoopVar[0])
	}
	if got, ok := ir.AsConstInt(f.ArgRemainder[0]); !ok || got != 7 {
		t.Fatalf("expected remainder 7, got %v", f.ArgRemainder[0])
	}
}

func TestFuncPolyTwoVariableArgumentIsNonLinear(t *testing.T) {
	domain := testDomain("i", "j")
	f := NewFuncPoly("a", Read, []ir.Expr{&ir.Add{A: ir.Var("i"), B: ir.Var("j")}}, domain, NewSchedule())

	if f.ArgsAreLinear {
		t.Fatal("expected an argument mentioning two loop variables to mark the reference non-linear")
	}
}

func TestFuncPolyOverlapsAlwaysTrue(t *testing.T) {
	f := NewFuncPoly("a", Write, []ir.Expr{ir.Var("i")}, testDomain("i"), NewSchedule())
	if !f.Overlaps() {
		t.Fatal("Overlaps is specified to always report true")
	}
}
