// Package ir is the Lumen intermediate representation: a nest of loops,
// scoped definitions, array-producing writes, and array-consuming reads.
// Everything in this package is a stand-in for the "DSL front-end and its
// lowering to IR" and the "generic IR visitor/mutator skeleton" that
// spec.md §1 names as external collaborators, consumed by the analyzer
// "through fixed interfaces" (spec.md §6). There is no type checker, no
// lowering pass, and no code generator here — only the node set and the
// handful of helpers (Simplify, Substitute, AsConstInt, Scope) the
// dependence analyzer is specified to call.
package ir

import (
	"fmt"
	"strings"
)

// Type is the minimal type system the analyzer's node constructors need —
// every scalar in Lumen's polyhedral region is a 32-bit signed integer.
type Type struct {
	name string
}

func (t Type) String() string { return t.name }

// Int32 is the 32-bit signed integer type constructor named in spec.md §6.
var Int32 = Type{name: "i32"}

// ForType distinguishes a loop the pass is free to run out of order from
// one it is not.
type ForType int

const (
	Serial ForType = iota
	Parallel
)

func (t ForType) String() string {
	if t == Parallel {
		return "parallel"
	}
	return "serial"
}

// DeviceAPI names the execution target a loop was annotated for. The
// analyzer never inspects it; it is preserved across rewrites (spec.md
// §4.5 step 3: "preserving all other attributes").
type DeviceAPI string

const DeviceHost DeviceAPI = "host"

// Expr is any node that evaluates to a scalar value.
type Expr interface {
	exprNode()
	String() string
}

// Stmt is any node that has an effect (a write, a loop, a binding).
type Stmt interface {
	stmtNode()
	String() string
}

// IntImm is an integer literal.
type IntImm struct {
	Value int64
}

func (*IntImm) exprNode()        {}
func (n *IntImm) String() string { return fmt.Sprintf("%d", n.Value) }

// Int constructs an IntImm, the common case of building a constant Expr.
func Int(v int64) *IntImm { return &IntImm{Value: v} }

// Variable is a reference to an enclosing loop variable or let-bound name.
type Variable struct {
	Name string
	Type Type
}

func (*Variable) exprNode()        {}
func (n *Variable) String() string { return n.Name }

// Var constructs a Variable of type Int32, the only scalar type this IR uses.
func Var(name string) *Variable { return &Variable{Name: name, Type: Int32} }

// Add, Sub, and Mul are the binary arithmetic nodes index expressions are
// built from.
type Add struct{ A, B Expr }
type Sub struct{ A, B Expr }
type Mul struct{ A, B Expr }

func (*Add) exprNode() {}
func (*Sub) exprNode() {}
func (*Mul) exprNode() {}

func (n *Add) String() string { return fmt.Sprintf("(%s + %s)", n.A, n.B) }
func (n *Sub) String() string { return fmt.Sprintf("(%s - %s)", n.A, n.B) }
func (n *Mul) String() string { return fmt.Sprintf("(%s * %s)", n.A, n.B) }

// Select is a guarded conditional expression: Cond selects between
// TrueValue and FalseValue.
type Select struct {
	Cond                  Expr
	TrueValue, FalseValue Expr
}

func (*Select) exprNode() {}
func (n *Select) String() string {
	return fmt.Sprintf("select(%s, %s, %s)", n.Cond, n.TrueValue, n.FalseValue)
}

// Let is an expression-level binding: Value is visible as Name within Body.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

func (*Let) exprNode() {}
func (n *Let) String() string {
	return fmt.Sprintf("(let %s = %s in %s)", n.Name, n.Value, n.Body)
}

// Call reads one element of a named array.
type Call struct {
	Name string
	Args []Expr
}

func (*Call) exprNode() {}
func (n *Call) String() string {
	return fmt.Sprintf("%s(%s)", n.Name, joinExprs(n.Args))
}

// For is a loop over [Min, Min+Extent-1] of a named loop variable.
type For struct {
	Var       string
	Min       Expr
	Extent    Expr
	ForType   ForType
	DeviceAPI DeviceAPI
	Body      Stmt
}

func (*For) stmtNode() {}
func (n *For) String() string {
	return fmt.Sprintf("for<%s> (%s in [%s, %s+%s)) {\n%s\n}",
		n.ForType, n.Var, n.Min, n.Min, n.Extent, indent(n.Body.String()))
}

// LetStmt is a statement-level binding: Value is visible as Name within Body.
type LetStmt struct {
	Name  string
	Value Expr
	Body  Stmt
}

func (*LetStmt) stmtNode() {}
func (n *LetStmt) String() string {
	return fmt.Sprintf("let %s = %s\n%s", n.Name, n.Value, n.Body)
}

// ProducerConsumer brackets the region of the tree that produces (and may
// consume) the named array. Only inside such a region does the Builder
// track domain/schedule state (spec.md §4.2).
type ProducerConsumer struct {
	Name string
	Body Stmt
}

func (*ProducerConsumer) stmtNode() {}
func (n *ProducerConsumer) String() string {
	return fmt.Sprintf("produce %s {\n%s\n}", n.Name, indent(n.Body.String()))
}

// Realize declares storage for a named array around Body. The analyzer
// delegates to default recursion on it (spec.md §4.2).
type Realize struct {
	Name string
	Body Stmt
}

func (*Realize) stmtNode() {}
func (n *Realize) String() string {
	return fmt.Sprintf("realize %s {\n%s\n}", n.Name, indent(n.Body.String()))
}

// Provide writes Values (commonly a single scalar) to Name at subscript Args.
type Provide struct {
	Name   string
	Args   []Expr
	Values []Expr
}

func (*Provide) stmtNode() {}
func (n *Provide) String() string {
	return fmt.Sprintf("%s(%s) = %s", n.Name, joinExprs(n.Args), joinExprs(n.Values))
}

// Block sequences a list of statements with no other effect. It is not
// named in spec.md's node table; it exists purely so the example
// scenarios in internal/examples can stitch several producer/consumer regions
// (spec.md §8 scenarios 1-4 each compute several arrays) into one Stmt.
type Block struct {
	Stmts []Stmt
}

func (*Block) stmtNode() {}
func (n *Block) String() string {
	parts := make([]string, len(n.Stmts))
	for i, s := range n.Stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

// ExprChildren returns the immediate child expressions of e, in evaluation
// order. It is the "default recursion" building block for anything that
// walks expressions without needing per-node custom behavior (spec.md §9:
// "a default-recursion helper per node kind").
func ExprChildren(e Expr) []Expr {
	switch n := e.(type) {
	case *Add:
		return []Expr{n.A, n.B}
	case *Sub:
		return []Expr{n.A, n.B}
	case *Mul:
		return []Expr{n.A, n.B}
	case *Select:
		return []Expr{n.Cond, n.TrueValue, n.FalseValue}
	case *Let:
		return []Expr{n.Value, n.Body}
	case *Call:
		return append([]Expr(nil), n.Args...)
	default:
		return nil
	}
}
