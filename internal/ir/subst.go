package ir

// Substitute replaces every free occurrence of the variable name with
// value inside e. A Let that rebinds name shadows it: the replacement
// still applies to the binding's own value expression, but stops at the
// body.
func Substitute(name string, value Expr, e Expr) Expr {
	return SubstituteAll(map[string]Expr{name: value}, e)
}

// SubstituteAll is the multi-name variant of Substitute, named in spec.md
// §6 ("substitute(name -> expr, expr) and a multi-name variant"). The
// dependence builder calls it on each schedule entry to replace every
// arg_loopvar[i] with its iter_replacement[i] in one pass (spec.md §4.4
// step 2).
func SubstituteAll(replacements map[string]Expr, e Expr) Expr {
	if len(replacements) == 0 {
		return e
	}

	switch n := e.(type) {
	case *Variable:
		if v, ok := replacements[n.Name]; ok {
			return v
		}
		return n

	case *IntImm:
		return n

	case *Add:
		return &Add{A: SubstituteAll(replacements, n.A), B: SubstituteAll(replacements, n.B)}

	case *Sub:
		return &Sub{A: SubstituteAll(replacements, n.A), B: SubstituteAll(replacements, n.B)}

	case *Mul:
		return &Mul{A: SubstituteAll(replacements, n.A), B: SubstituteAll(replacements, n.B)}

	case *Select:
		return &Select{
			Cond:       SubstituteAll(replacements, n.Cond),
			TrueValue:  SubstituteAll(replacements, n.TrueValue),
			FalseValue: SubstituteAll(replacements, n.FalseValue),
		}

	case *Call:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = SubstituteAll(replacements, a)
		}
		return &Call{Name: n.Name, Args: args}

	case *Let:
		value := SubstituteAll(replacements, n.Value)
		if _, shadowed := replacements[n.Name]; shadowed {
			rest := make(map[string]Expr, len(replacements))
			for k, v := range replacements {
				if k != n.Name {
					rest[k] = v
				}
			}
			return &Let{Name: n.Name, Value: value, Body: SubstituteAll(rest, n.Body)}
		}
		return &Let{Name: n.Name, Value: value, Body: SubstituteAll(replacements, n.Body)}

	default:
		return e
	}
}
