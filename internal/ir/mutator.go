package ir

// Mutator rewrites an IR tree, node by node. Implementations embed
// BaseMutator and set its Self field to themselves; BaseMutator's default
// MutateStmt/MutateExpr methods dispatch back through Self when
// recursing into children, so a type that overrides only (say) MutateStmt
// for *For still gets default recursion for every other node kind — the
// "single visitor trait with a default-recursion helper per node kind"
// design note in spec.md §9, and the Go analogue of the teacher's
// IRMutator-with-virtual-dispatch idiom.
type Mutator interface {
	MutateStmt(Stmt) Stmt
	MutateExpr(Expr) Expr
}

// BaseMutator implements the identity mutation, rebuilding a node only
// when a child actually changed (pointer identity), matching the
// `body.same_as(op->body)` check spec.md §4.5 step 3 describes.
type BaseMutator struct {
	Self Mutator
}

func (b *BaseMutator) self() Mutator {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (b *BaseMutator) MutateStmt(s Stmt) Stmt {
	self := b.self()

	switch n := s.(type) {
	case nil:
		return nil

	case *For:
		body := self.MutateStmt(n.Body)
		if body == n.Body {
			return n
		}
		return &For{Var: n.Var, Min: n.Min, Extent: n.Extent, ForType: n.ForType, DeviceAPI: n.DeviceAPI, Body: body}

	case *LetStmt:
		value := self.MutateExpr(n.Value)
		body := self.MutateStmt(n.Body)
		if value == n.Value && body == n.Body {
			return n
		}
		return &LetStmt{Name: n.Name, Value: value, Body: body}

	case *ProducerConsumer:
		body := self.MutateStmt(n.Body)
		if body == n.Body {
			return n
		}
		return &ProducerConsumer{Name: n.Name, Body: body}

	case *Realize:
		body := self.MutateStmt(n.Body)
		if body == n.Body {
			return n
		}
		return &Realize{Name: n.Name, Body: body}

	case *Provide:
		args := mutateExprSlice(self, n.Args)
		values := mutateExprSlice(self, n.Values)
		if sameExprSlice(args, n.Args) && sameExprSlice(values, n.Values) {
			return n
		}
		return &Provide{Name: n.Name, Args: args, Values: values}

	case *Block:
		changed := false
		stmts := make([]Stmt, len(n.Stmts))
		for i, child := range n.Stmts {
			stmts[i] = self.MutateStmt(child)
			if stmts[i] != child {
				changed = true
			}
		}
		if !changed {
			return n
		}
		return &Block{Stmts: stmts}

	default:
		return s
	}
}

func (b *BaseMutator) MutateExpr(e Expr) Expr {
	self := b.self()

	switch n := e.(type) {
	case nil:
		return nil

	case *Add:
		a, bb := self.MutateExpr(n.A), self.MutateExpr(n.B)
		if a == n.A && bb == n.B {
			return n
		}
		return &Add{A: a, B: bb}

	case *Sub:
		a, bb := self.MutateExpr(n.A), self.MutateExpr(n.B)
		if a == n.A && bb == n.B {
			return n
		}
		return &Sub{A: a, B: bb}

	case *Mul:
		a, bb := self.MutateExpr(n.A), self.MutateExpr(n.B)
		if a == n.A && bb == n.B {
			return n
		}
		return &Mul{A: a, B: bb}

	case *Select:
		cond := self.MutateExpr(n.Cond)
		t := self.MutateExpr(n.TrueValue)
		f := self.MutateExpr(n.FalseValue)
		if cond == n.Cond && t == n.TrueValue && f == n.FalseValue {
			return n
		}
		return &Select{Cond: cond, TrueValue: t, FalseValue: f}

	case *Let:
		value := self.MutateExpr(n.Value)
		body := self.MutateExpr(n.Body)
		if value == n.Value && body == n.Body {
			return n
		}
		return &Let{Name: n.Name, Value: value, Body: body}

	case *Call:
		args := mutateExprSlice(self, n.Args)
		if sameExprSlice(args, n.Args) {
			return n
		}
		return &Call{Name: n.Name, Args: args}

	default:
		return e
	}
}

func mutateExprSlice(m Mutator, exprs []Expr) []Expr {
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = m.MutateExpr(e)
	}
	return out
}

func sameExprSlice(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
