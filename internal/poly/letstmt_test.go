package poly

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/diag"
	"github.com/lumen-lang/lumen/internal/ir"
	"github.com/stretchr/testify/require"
)

func TestLetStmtShadowingProducedNamePanics(t *testing.T) {
	prog := &ir.Realize{Name: "a", Body: &ir.ProducerConsumer{
		Name: "a",
		Body: &ir.LetStmt{
			Name:  "a",
			Value: ir.Int(0),
			Body: &ir.For{
				Var: "i", Min: ir.Int(0), Extent: ir.Int(10), ForType: ir.Serial, DeviceAPI: ir.DeviceHost,
				Body: &ir.Provide{Name: "a", Args: []ir.Expr{ir.Var("i")}, Values: []ir.Expr{ir.Var("i")}},
			},
		},
	}}

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a let-binding shadowing an in-production array name to panic")
		fault, ok := r.(diag.Fault)
		require.True(t, ok, "expected the panic value to be a diag.Fault")
		require.Equal(t, diag.CodeLetStmtProducedWrite, fault.Diagnostic.Code)
	}()

	NewBuilder(nil).Build(prog)
}
