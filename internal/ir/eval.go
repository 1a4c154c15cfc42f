package ir

// Simplify is a partial evaluator: it constant-folds +, -, * over integer
// literals and otherwise returns a node with its children simplified. It
// is deliberately not a general algebra system — spec.md §1 places "full
// affine integer-set computation" out of scope, and all this analyzer
// ever needs from Simplify is constant folding of `min + extent - 1`
// style domain bounds and of `target.args[i] - source.arg_rest[i]`
// dependence distances (spec.md §3, §4.4).
func Simplify(e Expr) Expr {
	switch n := e.(type) {
	case *Add:
		a, b := Simplify(n.A), Simplify(n.B)
		if av, ok := AsConstInt(a); ok {
			if bv, ok := AsConstInt(b); ok {
				return Int(av + bv)
			}
		}
		return &Add{A: a, B: b}

	case *Sub:
		a, b := Simplify(n.A), Simplify(n.B)
		if av, ok := AsConstInt(a); ok {
			if bv, ok := AsConstInt(b); ok {
				return Int(av - bv)
			}
		}
		if bv, ok := AsConstInt(b); ok && bv == 0 {
			return a
		}
		if Equal(a, b) {
			return Int(0)
		}
		return &Sub{A: a, B: b}

	case *Mul:
		a, b := Simplify(n.A), Simplify(n.B)
		if av, ok := AsConstInt(a); ok {
			if bv, ok := AsConstInt(b); ok {
				return Int(av * bv)
			}
		}
		return &Mul{A: a, B: b}

	case *Select:
		return &Select{
			Cond:       Simplify(n.Cond),
			TrueValue:  Simplify(n.TrueValue),
			FalseValue: Simplify(n.FalseValue),
		}

	case *Let:
		return &Let{Name: n.Name, Value: Simplify(n.Value), Body: Simplify(n.Body)}

	case *Call:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = Simplify(a)
		}
		return &Call{Name: n.Name, Args: args}

	default:
		return e
	}
}

// AsConstInt returns the value of e iff e is an integer literal.
func AsConstInt(e Expr) (int64, bool) {
	if n, ok := e.(*IntImm); ok {
		return n.Value, true
	}
	return 0, false
}

// Equal reports whether a and b are the same expression tree: same node
// kind, same leaf payload, and recursively equal children. It is the
// "equality-checker" collaborator spec.md §6 names, used by Simplify to
// fold `x - x` to 0 without becoming a general algebra system — Equal
// never reasons about commutativity or distribution, only literal shape.
func Equal(a, b Expr) bool {
	switch an := a.(type) {
	case *IntImm:
		bn, ok := b.(*IntImm)
		return ok && an.Value == bn.Value
	case *Variable:
		bn, ok := b.(*Variable)
		return ok && an.Name == bn.Name
	case *Call:
		bn, ok := b.(*Call)
		if !ok || an.Name != bn.Name || len(an.Args) != len(bn.Args) {
			return false
		}
		for i := range an.Args {
			if !Equal(an.Args[i], bn.Args[i]) {
				return false
			}
		}
		return true
	case *Select:
		bn, ok := b.(*Select)
		return ok && Equal(an.Cond, bn.Cond) && Equal(an.TrueValue, bn.TrueValue) && Equal(an.FalseValue, bn.FalseValue)
	case *Let:
		bn, ok := b.(*Let)
		return ok && an.Name == bn.Name && Equal(an.Value, bn.Value) && Equal(an.Body, bn.Body)
	case *Add:
		bn, ok := b.(*Add)
		return ok && Equal(an.A, bn.A) && Equal(an.B, bn.B)
	case *Sub:
		bn, ok := b.(*Sub)
		return ok && Equal(an.A, bn.A) && Equal(an.B, bn.B)
	case *Mul:
		bn, ok := b.(*Mul)
		return ok && Equal(an.A, bn.A) && Equal(an.B, bn.B)
	default:
		return false
	}
}
