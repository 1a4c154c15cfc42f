// Package examples builds small IR programs used to exercise the
// dependence analyzer and auto-parallelization pass end to end. Each one
// is grounded on a scenario from the original polyhedral-model test
// suite (original_source/test/polyhedral_model/*.cpp), lowered by hand
// into this package's IR since there is no front-end in scope to do it
// (spec.md §1, §6).
package examples

import "github.com/lumen-lang/lumen/internal/ir"

func producerLoop(name string, loopVar string, n int64, value ir.Expr) ir.Stmt {
	return &ir.Realize{Name: name, Body: &ir.ProducerConsumer{
		Name: name,
		Body: &ir.For{
			Var:       loopVar,
			Min:       ir.Int(0),
			Extent:    ir.Int(n),
			ForType:   ir.Serial,
			DeviceAPI: ir.DeviceHost,
			Body: &ir.Provide{
				Name:   name,
				Args:   []ir.Expr{ir.Var(loopVar)},
				Values: []ir.Expr{value},
			},
		},
	}}
}

// VAdd is original_source/test/polyhedral_model/vadd.cpp: a(i) = i,
// b(i) = i + 3, c(i) = a(i) + b(i), all over a 1-D domain of size n. Every
// loop here is parallelizable: no array reads a value any other
// iteration writes.
func VAdd(n int64) ir.Stmt {
	a := producerLoop("a", "i_a", n, ir.Var("i_a"))
	b := producerLoop("b", "i_b", n, ir.Simplify(&ir.Add{A: ir.Var("i_b"), B: ir.Int(3)}))
	c := producerLoop("c", "i_c", n, &ir.Add{
		A: &ir.Call{Name: "a", Args: []ir.Expr{ir.Var("i_c")}},
		B: &ir.Call{Name: "b", Args: []ir.Expr{ir.Var("i_c")}},
	})
	return &ir.Block{Stmts: []ir.Stmt{a, b, c}}
}

func producerLoop2D(name, outer, inner string, n int64, value ir.Expr) ir.Stmt {
	return &ir.Realize{Name: name, Body: &ir.ProducerConsumer{
		Name: name,
		Body: &ir.For{
			Var: outer, Min: ir.Int(0), Extent: ir.Int(n), ForType: ir.Serial, DeviceAPI: ir.DeviceHost,
			Body: &ir.For{
				Var: inner, Min: ir.Int(0), Extent: ir.Int(n), ForType: ir.Serial, DeviceAPI: ir.DeviceHost,
				Body: &ir.Provide{
					Name:   name,
					Args:   []ir.Expr{ir.Var(outer), ir.Var(inner)},
					Values: []ir.Expr{value},
				},
			},
		},
	}}
}

// VAdd2D is original_source/test/polyhedral_model/vadd2d.cpp: the same
// shape as VAdd but over a 2-D domain, n x n.
func VAdd2D(n int64) ir.Stmt {
	a := producerLoop2D("a", "i_a", "j_a", n, &ir.Add{A: ir.Var("i_a"), B: ir.Var("j_a")})
	b := producerLoop2D("b", "i_b", "j_b", n, &ir.Add{A: &ir.Add{A: ir.Var("i_b"), B: ir.Var("j_b")}, B: ir.Int(3)})
	c := producerLoop2D("c", "i_c", "j_c", n, &ir.Add{
		A: &ir.Call{Name: "a", Args: []ir.Expr{ir.Var("i_c"), ir.Var("j_c")}},
		B: &ir.Call{Name: "b", Args: []ir.Expr{ir.Var("i_c"), ir.Var("j_c")}},
	})
	return &ir.Block{Stmts: []ir.Stmt{a, b, c}}
}

// MatMul is original_source/test/polyhedral_model/matmul.cpp: a(i,j) = i
// + j, b(i,j) = i + j + 3, both pure; c is initialized to 0 over (i, j)
// and then accumulated over a reduction variable k:
//
//	c(i, j)  = 0
//	c(i, j) += a(k, j) * b(i, k)
//
// The accumulation reads and writes c(i, j) at the same indices on every
// k iteration, but c's index expressions never mention k, so k's schedule
// position is never substituted: the self-dependence this produces
// compares Equal at every shared schedule position, k's included, so
// every loop in this program —
// the init, the update's i and j, and the reduction k itself — is judged
// parallelizable.
func MatMul(n int64) ir.Stmt {
	a := producerLoop2D("a", "i_a", "j_a", n, &ir.Add{A: ir.Var("i_a"), B: ir.Var("j_a")})
	b := producerLoop2D("b", "i_b", "j_b", n, &ir.Add{A: &ir.Add{A: ir.Var("i_b"), B: ir.Var("j_b")}, B: ir.Int(3)})

	init := &ir.For{
		Var: "i_c0", Min: ir.Int(0), Extent: ir.Int(n), ForType: ir.Serial, DeviceAPI: ir.DeviceHost,
		Body: &ir.For{
			Var: "j_c0", Min: ir.Int(0), Extent: ir.Int(n), ForType: ir.Serial, DeviceAPI: ir.DeviceHost,
			Body: &ir.Provide{Name: "c", Args: []ir.Expr{ir.Var("i_c0"), ir.Var("j_c0")}, Values: []ir.Expr{ir.Int(0)}},
		},
	}

	update := &ir.For{
		Var: "i_c1", Min: ir.Int(0), Extent: ir.Int(n), ForType: ir.Serial, DeviceAPI: ir.DeviceHost,
		Body: &ir.For{
			Var: "j_c1", Min: ir.Int(0), Extent: ir.Int(n), ForType: ir.Serial, DeviceAPI: ir.DeviceHost,
			Body: &ir.For{
				Var: "k", Min: ir.Int(0), Extent: ir.Int(n), ForType: ir.Serial, DeviceAPI: ir.DeviceHost,
				Body: &ir.Provide{
					Name: "c",
					Args: []ir.Expr{ir.Var("i_c1"), ir.Var("j_c1")},
					Values: []ir.Expr{&ir.Add{
						A: &ir.Call{Name: "c", Args: []ir.Expr{ir.Var("i_c1"), ir.Var("j_c1")}},
						B: &ir.Mul{
							A: &ir.Call{Name: "a", Args: []ir.Expr{ir.Var("k"), ir.Var("j_c1")}},
							B: &ir.Call{Name: "b", Args: []ir.Expr{ir.Var("i_c1"), ir.Var("k")}},
						},
					}},
				},
			},
		},
	}

	c := &ir.Realize{Name: "c", Body: &ir.ProducerConsumer{Name: "c", Body: &ir.Block{Stmts: []ir.Stmt{init, update}}}}
	return &ir.Block{Stmts: []ir.Stmt{a, b, c}}
}

// Fibonacci is original_source/test/polyhedral_model/fibonacci.cpp:
//
//	f(x)    = x                for x in [0, size)
//	f(r)    = f(r-2) + f(r-1)  for r in [2, size)
//
// The update statement both reads and writes f with a non-zero offset
// between the two, so the loop carries a real dependence in every
// direction other than Equal: r cannot be parallelized.
func Fibonacci(size int64) ir.Stmt {
	init := &ir.For{
		Var: "x", Min: ir.Int(0), Extent: ir.Int(size), ForType: ir.Serial, DeviceAPI: ir.DeviceHost,
		Body: &ir.Provide{Name: "f", Args: []ir.Expr{ir.Var("x")}, Values: []ir.Expr{ir.Var("x")}},
	}
	update := &ir.For{
		Var: "r", Min: ir.Int(2), Extent: ir.Int(size - 2), ForType: ir.Serial, DeviceAPI: ir.DeviceHost,
		Body: &ir.Provide{
			Name: "f",
			Args: []ir.Expr{ir.Var("r")},
			Values: []ir.Expr{&ir.Add{
				A: &ir.Call{Name: "f", Args: []ir.Expr{&ir.Sub{A: ir.Var("r"), B: ir.Int(2)}}},
				B: &ir.Call{Name: "f", Args: []ir.Expr{&ir.Sub{A: ir.Var("r"), B: ir.Int(1)}}},
			}},
		},
	}
	return &ir.Realize{Name: "f", Body: &ir.ProducerConsumer{Name: "f", Body: &ir.Block{Stmts: []ir.Stmt{init, update}}}}
}
