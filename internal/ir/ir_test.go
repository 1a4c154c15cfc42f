package ir_test

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/ir"
)

func TestSimplifyFoldsConstantArithmetic(t *testing.T) {
	// min + extent - 1, the exact shape used to derive Domain.Max (spec.md §3).
	expr := &ir.Sub{
		A: &ir.Add{A: ir.Int(0), B: ir.Int(100)},
		B: ir.Int(1),
	}

	got := ir.Simplify(expr)
	v, ok := ir.AsConstInt(got)
	if !ok || v != 99 {
		t.Fatalf("expected constant 99, got %#v", got)
	}
}

func TestSimplifyLeavesVariablesAlone(t *testing.T) {
	expr := &ir.Add{A: ir.Var("i"), B: ir.Int(3)}
	got := ir.Simplify(expr)

	add, ok := got.(*ir.Add)
	if !ok {
		t.Fatalf("expected *ir.Add, got %T", got)
	}
	if _, ok := add.A.(*ir.Variable); !ok {
		t.Fatalf("expected variable operand untouched, got %#v", add.A)
	}
}

func TestAsConstIntRejectsNonLiterals(t *testing.T) {
	if _, ok := ir.AsConstInt(ir.Var("i")); ok {
		t.Fatalf("expected AsConstInt to reject a variable")
	}
}

func TestSubstituteReplacesFreeVariable(t *testing.T) {
	// i + 3, substituting i -> 0 recovers the constant remainder (spec.md §4.3 step 3).
	expr := &ir.Add{A: ir.Var("i"), B: ir.Int(3)}
	got := ir.Simplify(ir.Substitute("i", ir.Int(0), expr))

	v, ok := ir.AsConstInt(got)
	if !ok || v != 3 {
		t.Fatalf("expected remainder 3, got %#v", got)
	}
}

func TestSubstituteAllAppliesEveryName(t *testing.T) {
	expr := &ir.Add{A: ir.Var("i"), B: ir.Var("j")}
	got := ir.Simplify(ir.SubstituteAll(map[string]ir.Expr{
		"i": ir.Int(2),
		"j": ir.Int(5),
	}, expr))

	v, ok := ir.AsConstInt(got)
	if !ok || v != 7 {
		t.Fatalf("expected 7, got %#v", got)
	}
}

func TestSubstituteRespectsLetShadowing(t *testing.T) {
	// let i = i + 1 in i  --  the inner "i" refers to the new binding and
	// must not be substituted by an outer replacement of the same name.
	expr := &ir.Let{
		Name:  "i",
		Value: &ir.Add{A: ir.Var("i"), B: ir.Int(1)},
		Body:  ir.Var("i"),
	}

	got := ir.Substitute("i", ir.Int(10), expr)
	let, ok := got.(*ir.Let)
	if !ok {
		t.Fatalf("expected *ir.Let, got %T", got)
	}

	value := ir.Simplify(let.Value)
	if v, ok := ir.AsConstInt(value); !ok || v != 11 {
		t.Fatalf("expected the binding value to substitute, got %#v", value)
	}
	if _, ok := let.Body.(*ir.Variable); !ok {
		t.Fatalf("expected the shadowed body to stay a variable, got %#v", let.Body)
	}
}

func TestScopePushPopNests(t *testing.T) {
	scope := ir.NewScope[ir.Expr]()
	scope.Push("x", ir.Int(1))
	scope.Push("x", ir.Int(2))

	if !scope.Contains("x") {
		t.Fatalf("expected scope to contain x")
	}
	v, ok := scope.Ref("x")
	if !ok || ir.Simplify(v).(*ir.IntImm).Value != 2 {
		t.Fatalf("expected innermost binding 2, got %#v", v)
	}

	scope.Pop("x")
	v, ok = scope.Ref("x")
	if !ok || ir.Simplify(v).(*ir.IntImm).Value != 1 {
		t.Fatalf("expected outer binding 1 after pop, got %#v", v)
	}

	scope.Pop("x")
	if scope.Contains("x") {
		t.Fatalf("expected scope to be empty after popping both bindings")
	}
}

func TestScopePopMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Pop of a non-top binding to panic")
		}
	}()

	scope := ir.NewScope[ir.Expr]()
	scope.Push("x", ir.Int(1))
	scope.Pop("y")
}

// identityMutator exercises BaseMutator's default recursion with no
// overrides: every node whose children are unchanged should come back
// pointer-identical.
type identityMutator struct {
	ir.BaseMutator
}

func newIdentityMutator() *identityMutator {
	m := &identityMutator{}
	m.Self = m
	return m
}

func TestBaseMutatorPreservesIdentityWhenUnchanged(t *testing.T) {
	body := &ir.Provide{Name: "c", Args: []ir.Expr{ir.Var("i")}, Values: []ir.Expr{ir.Var("i")}}
	loop := &ir.For{Var: "i", Min: ir.Int(0), Extent: ir.Int(10), Body: body}

	m := newIdentityMutator()
	got := m.MutateStmt(loop)

	if got != ir.Stmt(loop) {
		t.Fatalf("expected identity mutation to return the same pointer")
	}
}

// parallelizeAll is a toy mutator overriding only *For, to check that
// BaseMutator's self-dispatch reaches it through nested default recursion.
type parallelizeAll struct {
	ir.BaseMutator
}

func newParallelizeAll() *parallelizeAll {
	m := &parallelizeAll{}
	m.Self = m
	return m
}

func (m *parallelizeAll) MutateStmt(s ir.Stmt) ir.Stmt {
	if f, ok := s.(*ir.For); ok {
		body := m.Self.MutateStmt(f.Body)
		return &ir.For{Var: f.Var, Min: f.Min, Extent: f.Extent, ForType: ir.Parallel, DeviceAPI: f.DeviceAPI, Body: body}
	}
	return m.BaseMutator.MutateStmt(s)
}

func TestMutatorOverrideReachesNestedFors(t *testing.T) {
	inner := &ir.For{Var: "i", Min: ir.Int(0), Extent: ir.Int(10), Body: &ir.Provide{Name: "c", Args: []ir.Expr{ir.Var("i")}, Values: []ir.Expr{ir.Int(0)}}}
	outer := &ir.ProducerConsumer{Name: "c", Body: inner}

	m := newParallelizeAll()
	got := m.MutateStmt(outer)

	pc, ok := got.(*ir.ProducerConsumer)
	if !ok {
		t.Fatalf("expected *ir.ProducerConsumer, got %T", got)
	}
	forNode, ok := pc.Body.(*ir.For)
	if !ok {
		t.Fatalf("expected nested *ir.For, got %T", pc.Body)
	}
	if forNode.ForType != ir.Parallel {
		t.Fatalf("expected nested for to be marked parallel")
	}
}
