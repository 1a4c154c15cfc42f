// Package poly is the polyhedral dependence analyzer: iteration domains,
// lexicographic schedules, reference extraction, dependence-polyhedron
// construction and classification (spec.md §2 components 1-8).
package poly

import "github.com/lumen-lang/lumen/internal/ir"

// CountOccurrences returns the number of times name appears, transitively
// through bindings recorded in scope, inside expr (spec.md §4.1). A Let
// node introduces its name/value pair into scope for the duration of the
// body traversal and removes it on exit; when a Variable mentions a name
// bound in scope, the traversal recurses into the bound value instead of
// counting occurrences of that name directly (emulating substitution
// without performing it). visitGuard controls whether a Select's
// condition is traversed; its branches are always traversed.
//
// Grounded on original_source/src/FindVariable.cpp's CountVariable.
func CountOccurrences(expr ir.Expr, name string, scope *ir.Scope[ir.Expr], visitGuard bool) int {
	if scope == nil {
		scope = ir.NewScope[ir.Expr]()
	}
	return countOccurrences(expr, name, scope, visitGuard)
}

func countOccurrences(expr ir.Expr, name string, scope *ir.Scope[ir.Expr], visitGuard bool) int {
	switch n := expr.(type) {
	case nil:
		return 0

	case *ir.Variable:
		if n.Name == name {
			return 1
		}
		if bound, ok := scope.Ref(n.Name); ok {
			return countOccurrences(bound, name, scope, visitGuard)
		}
		return 0

	case *ir.IntImm:
		return 0

	case *ir.Add:
		return countOccurrences(n.A, name, scope, visitGuard) + countOccurrences(n.B, name, scope, visitGuard)

	case *ir.Sub:
		return countOccurrences(n.A, name, scope, visitGuard) + countOccurrences(n.B, name, scope, visitGuard)

	case *ir.Mul:
		return countOccurrences(n.A, name, scope, visitGuard) + countOccurrences(n.B, name, scope, visitGuard)

	case *ir.Select:
		count := 0
		if visitGuard {
			count += countOccurrences(n.Cond, name, scope, visitGuard)
		}
		count += countOccurrences(n.TrueValue, name, scope, visitGuard)
		count += countOccurrences(n.FalseValue, name, scope, visitGuard)
		return count

	case *ir.Let:
		scope.Push(n.Name, n.Value)
		count := countOccurrences(n.Body, name, scope, visitGuard)
		scope.Pop(n.Name)
		return count

	case *ir.Call:
		count := 0
		for _, a := range n.Args {
			count += countOccurrences(a, name, scope, visitGuard)
		}
		return count

	default:
		return 0
	}
}

// FindOccurrence reports whether name appears anywhere in expr. It is a
// total function: there is no failure mode (spec.md §4.1).
func FindOccurrence(expr ir.Expr, name string, scope *ir.Scope[ir.Expr], visitGuard bool) bool {
	return CountOccurrences(expr, name, scope, visitGuard) > 0
}
