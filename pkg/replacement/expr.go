package replacement

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getmockd/sdkmock/pkg/request"
	"github.com/getmockd/sdkmock/pkg/sdk"
)

// Program is a replacement whose result is computed from the call's
// parameters by an expr expression. The expression sees the user
// parameters as `params`:
//
//	replacement.Expr(`{"MessageId": params.Id}`)
//
// Compilation happens on first use and is reused across calls; a compile
// or evaluation failure completes the call as a failure.
type Program struct {
	src  string
	once sync.Once
	prog *vm.Program
	err  error
}

// Expr builds a Program replacement from source.
func Expr(src string) *Program {
	return &Program{src: src}
}

// Source returns the expression source text.
func (p *Program) Source() string {
	return p.src
}

func (p *Program) invoke(_ string, params sdk.Params, c request.Callback) {
	p.once.Do(func() {
		p.prog, p.err = expr.Compile(p.src, expr.AllowUndefinedVariables())
	})
	if p.err != nil {
		c(fmt.Errorf("compile %q: %w", p.src, p.err), nil)
		return
	}

	env := map[string]any{"params": map[string]any(params)}
	result, err := expr.Run(p.prog, env)
	if err != nil {
		c(fmt.Errorf("eval %q: %w", p.src, err), nil)
		return
	}
	c(nil, result)
}
