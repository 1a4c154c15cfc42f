package poly

import (
	"github.com/lumen-lang/lumen/internal/diag"
	"github.com/lumen-lang/lumen/internal/ir"
)

// Builder walks a statement tree once, threading a running domain and
// schedule, and accumulates every array reference it finds into per-name
// reference lists and per-statement summaries (spec.md §4.2).
//
// Only arrays whose ProducerConsumer has already been entered earlier in
// the walk are analyzable: a Call to any other name is treated as an
// opaque, externally-supplied input and is not tracked, since nothing is
// known about its domain or schedule. A Call to an array whose
// ProducerConsumer comes later in the walk is not tracked either.
type Builder struct {
	domain   PolytopeDomain
	schedule PolytopeSchedule

	everProduced map[string]bool // analyzable_names: arrays whose ProducerConsumer has been entered so far
	inRegion     map[string]bool // names whose ProducerConsumer body is currently being walked

	funcs map[string][]*FuncPoly
	all   []*FuncPoly // every reference in discovery order, regardless of array name
	stmts []*StmtPoly

	log *diag.Logger
}

// NewBuilder returns a Builder ready to walk a statement tree. log may be
// nil.
func NewBuilder(log *diag.Logger) *Builder {
	return &Builder{
		domain:       PolytopeDomain{},
		schedule:     NewSchedule(),
		everProduced: make(map[string]bool),
		inRegion:     make(map[string]bool),
		funcs:        make(map[string][]*FuncPoly),
		log:          log,
	}
}

// Build walks s, populating the Builder's reference and statement lists.
func (b *Builder) Build(s ir.Stmt) {
	b.visit(s)
}

func (b *Builder) debug(level int, format string, args ...any) {
	if b.log != nil {
		b.log.Debug(level, format, args...)
	}
}

func (b *Builder) visit(s ir.Stmt) {
	switch n := s.(type) {
	case nil:
		return

	case *ir.For:
		b.debug(2, "entering for %s, domain=%s", n.Var, b.domain)
		b.domain.PushFor(n)
		b.schedule.OpenFor(n.Var)
		b.visit(n.Body)
		b.schedule.CloseFor(n.Var)
		b.domain.PopFor()

	case *ir.LetStmt:
		diag.Assert(!b.inRegion[n.Name], diag.StagePoly, diag.CodeLetStmtProducedWrite,
			"let %s shadows %s, which is currently being produced", n.Name, n.Name)
		b.visit(n.Body)

	case *ir.ProducerConsumer:
		already := b.everProduced[n.Name]
		b.everProduced[n.Name] = true
		wasInRegion := b.inRegion[n.Name]
		b.inRegion[n.Name] = true
		b.visit(n.Body)
		b.inRegion[n.Name] = wasInRegion
		_ = already

	case *ir.Realize:
		b.visit(n.Body)

	case *ir.Provide:
		b.visitProvide(n)

	case *ir.Block:
		for _, stmt := range n.Stmts {
			b.visit(stmt)
		}

	default:
		diag.Assert(false, diag.StagePoly, diag.CodeUnsupportedScheduleShape, "builder: unsupported statement %T", s)
	}
}

// visitProvide captures the write's reads before the write itself, in
// that order, matching the discovery order original_source's
// Builder::visit(const Provide*) produces by visiting op's children
// (which walks the value expressions, and so any self-referencing reads)
// before constructing the write's own FuncPoly. The order does not decide
// which reference starts as a write/read pair's source: computeDependencies
// always passes the write first, so for a pair captured at the same point,
// such as a reduction's `c(i,j) += ...`, the write is the initial source
// regardless of its index.
func (b *Builder) visitProvide(n *ir.Provide) {
	var reads []*FuncPoly
	for _, value := range n.Values {
		for _, call := range collectCalls(value) {
			if !b.everProduced[call.Name] {
				continue
			}
			read := NewFuncPoly(call.Name, Read, call.Args, b.domain, b.schedule)
			b.funcs[call.Name] = append(b.funcs[call.Name], read)
			b.all = append(b.all, read)
			reads = append(reads, read)
		}
	}

	write := NewFuncPoly(n.Name, Write, n.Args, b.domain, b.schedule)
	b.funcs[n.Name] = append(b.funcs[n.Name], write)
	b.all = append(b.all, write)

	stmt := NewStmtPoly(write)
	for _, read := range reads {
		stmt.AddRead(read)
	}
	b.stmts = append(b.stmts, stmt)

	b.schedule.AdvanceStatement()
}

// collectCalls returns every Call reachable from expr, including calls
// nested inside another call's arguments.
func collectCalls(expr ir.Expr) []*ir.Call {
	var found []*ir.Call
	var visit func(ir.Expr)
	visit = func(e ir.Expr) {
		if e == nil {
			return
		}
		if c, ok := e.(*ir.Call); ok {
			found = append(found, c)
		}
		for _, child := range ir.ExprChildren(e) {
			visit(child)
		}
	}
	visit(expr)
	return found
}
