package request

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/getmockd/sdkmock/pkg/futures"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCompleteStoresFirstResult(t *testing.T) {
	var calls []any
	r := New(futures.New, func(err error, data any) {
		calls = append(calls, data)
	}, nil)

	r.Complete(nil, "first")
	r.Complete(nil, "second")

	// Storage keeps the first writer; the callback still sees both.
	got, err := r.Promise().Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.Equal(t, []any{"first", "second"}, calls)
}

func TestCompleteWithoutCallback(t *testing.T) {
	r := New(futures.New, nil, nil)
	r.Complete(errors.New("boom"), nil)

	_, err := r.Promise().Wait(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestPromiseBeforeCompletion(t *testing.T) {
	r := New(futures.New, nil, nil)
	f := r.Promise()
	require.NotNil(t, f)
	assert.False(t, f.Settled())

	r.Complete(nil, map[string]any{"Item": map[string]any{}})

	got, err := f.Wait(context.Background())
	require.NoError(t, err)
	want := map[string]any{"Item": map[string]any{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("promise value mismatch (-want +got):\n%s", diff)
	}
}

func TestPromiseMemoized(t *testing.T) {
	r := New(futures.New, nil, nil)
	first := r.Promise()
	r.Complete(nil, "v")
	second := r.Promise()

	assert.Same(t, first, second)

	got, err := second.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestPromiseUnavailableWithoutFactory(t *testing.T) {
	r := New(nil, nil, nil)
	assert.Nil(t, r.Promise())
}

func TestPromiseRejection(t *testing.T) {
	boom := errors.New("boom")
	r := New(futures.New, nil, nil)
	f := r.Promise()
	r.Complete(boom, nil)

	_, err := f.Wait(context.Background())
	assert.Equal(t, boom, err)
}

func TestSendReplaysStoredResult(t *testing.T) {
	r := New(nil, nil, nil)
	r.Complete(nil, "stored")

	for i := 0; i < 2; i++ {
		var got any
		r.Send(func(err error, data any) {
			require.NoError(t, err)
			got = data
		})
		assert.Equal(t, "stored", got)
	}
}

func TestSendBeforeCompletion(t *testing.T) {
	r := New(nil, nil, nil)

	called := false
	r.Send(func(err error, data any) {
		called = true
		assert.NoError(t, err)
		assert.Nil(t, data)
	})
	assert.True(t, called)
}

func TestCreateReadStream(t *testing.T) {
	tests := []struct {
		name   string
		source any
		stored any
		want   string
	}{
		{"stored stream", nil, strings.NewReader("stored"), "stored"},
		{"source stream", bytes.NewBufferString("hello"), nil, "hello"},
		{"source string", "text", nil, "text"},
		{"source bytes", []byte{0x68, 0x69}, nil, "hi"},
		{"stored non-stream falls back to source", "fallback", map[string]any{"Body": "x"}, "fallback"},
		{"nothing stream-like", map[string]any{}, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(nil, nil, tt.source)
			if tt.stored != nil {
				r.Complete(nil, tt.stored)
			}
			rc := r.CreateReadStream()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
			assert.NoError(t, rc.Close())
		})
	}
}

func TestCreateReadStreamError(t *testing.T) {
	boom := errors.New("boom")
	r := New(nil, nil, "ignored")
	r.Complete(boom, nil)

	_, err := io.ReadAll(r.CreateReadStream())
	assert.Equal(t, boom, err)
}

func TestOnAndAbortAreInert(t *testing.T) {
	r := New(nil, nil, nil)
	assert.Same(t, r, r.On("success", func(*Request) { t.Fatal("listener must never fire") }))
	assert.Same(t, r, r.Abort())
}

func TestIDsAreUnique(t *testing.T) {
	a := New(nil, nil, nil)
	b := New(nil, nil, nil)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
