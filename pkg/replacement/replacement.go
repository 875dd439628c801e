package replacement

import (
	"context"
	"fmt"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/getmockd/sdkmock/pkg/futures"
	"github.com/getmockd/sdkmock/pkg/request"
	"github.com/getmockd/sdkmock/pkg/sdk"
)

// Kind identifies the probed shape of a replacement.
type Kind int

const (
	KindLiteral Kind = iota
	KindStream
	KindFunc
	KindMock
	KindProgram
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindStream:
		return "stream"
	case KindFunc:
		return "func"
	case KindMock:
		return "mock"
	case KindProgram:
		return "program"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// caller is the capability marker for test-framework mock objects. Both
// *mock.Mock and any value embedding it satisfy the interface.
type caller interface {
	MethodCalled(method string, args ...any) mock.Arguments
}

// Behavior is a replacement normalized to the canonical invocation shape.
type Behavior struct {
	kind Kind
	raw  any
	call func(op string, params sdk.Params, complete request.Callback)
}

// Normalize probes v once and returns its canonical Behavior. Values that
// match no known capability are treated as literal success values.
func Normalize(v any) *Behavior {
	switch fn := v.(type) {
	case *Program:
		return &Behavior{kind: KindProgram, raw: v, call: fn.invoke}
	case func(sdk.Params, request.Callback):
		return &Behavior{kind: KindFunc, raw: v, call: func(_ string, p sdk.Params, c request.Callback) {
			defer recoverTo(c)
			fn(p, c)
		}}
	case func(request.Callback):
		// Single-argument shape: parameters are deliberately withheld.
		return &Behavior{kind: KindFunc, raw: v, call: func(_ string, _ sdk.Params, c request.Callback) {
			defer recoverTo(c)
			fn(c)
		}}
	case func(sdk.Params) (any, error):
		return &Behavior{kind: KindFunc, raw: v, call: func(_ string, p sdk.Params, c request.Callback) {
			defer recoverTo(c)
			value, err := fn(p)
			deliver(c, value, err)
		}}
	case func(sdk.Params) *futures.Future:
		return &Behavior{kind: KindFunc, raw: v, call: func(_ string, p sdk.Params, c request.Callback) {
			defer recoverTo(c)
			chainFuture(fn(p), c)
		}}
	}

	if m, ok := v.(caller); ok {
		return &Behavior{kind: KindMock, raw: v, call: wrapMock(m)}
	}
	if _, ok := v.(io.Reader); ok {
		return &Behavior{kind: KindStream, raw: v, call: func(_ string, _ sdk.Params, c request.Callback) {
			c(nil, v)
		}}
	}
	return &Behavior{kind: KindLiteral, raw: v, call: func(_ string, _ sdk.Params, c request.Callback) {
		c(nil, v)
	}}
}

// Kind returns the probed shape.
func (b *Behavior) Kind() Kind {
	return b.kind
}

// Raw returns the original replacement value as supplied by the test.
func (b *Behavior) Raw() any {
	return b.raw
}

// Invoke runs the replacement for operation op against params, funneling
// the outcome through complete. Invoke never panics; function-shape panics
// arrive at complete as failures.
func (b *Behavior) Invoke(op string, params sdk.Params, complete request.Callback) {
	b.call(op, params, complete)
}

// deliver routes a direct-result return through completion, promoting a
// returned future to the stored result.
func deliver(c request.Callback, value any, err error) {
	if err != nil {
		c(err, nil)
		return
	}
	if f, ok := value.(*futures.Future); ok {
		chainFuture(f, c)
		return
	}
	c(nil, value)
}

func chainFuture(f *futures.Future, c request.Callback) {
	if f == nil {
		c(nil, nil)
		return
	}
	go func() {
		value, err := f.Wait(context.Background())
		c(err, value)
	}()
}

// wrapMock adapts a testify mock: expectations are recorded against the
// operation name, and the returned Arguments are interpreted as
// (value, error), a lone value or future, or nothing.
func wrapMock(m caller) func(string, sdk.Params, request.Callback) {
	return func(op string, p sdk.Params, c request.Callback) {
		// Unexpected-call failures surface as panics from testify.
		defer recoverTo(c)
		args := m.MethodCalled(op, map[string]any(p))
		switch len(args) {
		case 0:
			c(nil, nil)
		case 1:
			deliver(c, args.Get(0), nil)
		default:
			deliver(c, args.Get(0), args.Error(1))
		}
	}
}

func recoverTo(c request.Callback) {
	if rec := recover(); rec != nil {
		c(fmt.Errorf("replacement panic: %v", rec), nil)
	}
}
