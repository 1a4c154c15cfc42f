package autopar

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/examples"
	"github.com/lumen-lang/lumen/internal/ir"
	"github.com/lumen-lang/lumen/internal/poly"
)

func forTypesByVar(s ir.Stmt) map[string]ir.ForType {
	out := make(map[string]ir.ForType)
	var visit func(ir.Stmt)
	visit = func(n ir.Stmt) {
		switch s := n.(type) {
		case *ir.For:
			out[s.Var] = s.ForType
			visit(s.Body)
		case *ir.LetStmt:
			visit(s.Body)
		case *ir.ProducerConsumer:
			visit(s.Body)
		case *ir.Realize:
			visit(s.Body)
		case *ir.Block:
			for _, child := range s.Stmts {
				visit(child)
			}
		}
	}
	visit(s)
	return out
}

func TestApplyParallelizesVAdd(t *testing.T) {
	prog := examples.VAdd(100)
	model := poly.Analyze(prog, nil)
	result := Apply(prog, model, nil)

	for v, ft := range forTypesByVar(result) {
		if ft != ir.Parallel {
			t.Errorf("expected loop %s to be parallelized, got %s", v, ft)
		}
	}
}

func TestApplyLeavesFibonacciRecurrenceSerial(t *testing.T) {
	prog := examples.Fibonacci(50)
	model := poly.Analyze(prog, nil)
	result := Apply(prog, model, nil)

	types := forTypesByVar(result)
	if types["r"] != ir.Serial {
		t.Errorf("expected the fibonacci recurrence loop r to stay serial, got %s", types["r"])
	}
	if types["x"] != ir.Parallel {
		t.Errorf("expected the fibonacci pure-definition loop x to be parallelized, got %s", types["x"])
	}
}

func TestApplyIsIdentityWhenNothingChanges(t *testing.T) {
	prog := examples.VAdd(10)
	model := poly.Analyze(prog, nil)

	// Every loop in VAdd parallelizes, so re-applying to the result is a
	// no-op: BaseMutator's pointer-identity check means the second pass
	// must return the exact same tree.
	once := Apply(prog, model, nil)
	model2 := poly.Analyze(once, nil)
	twice := Apply(once, model2, nil)

	if once.(*ir.Block).Stmts[0] != twice.(*ir.Block).Stmts[0] {
		t.Error("expected re-applying Apply to an already-parallel tree to return identical nodes")
	}
}
