package util

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type stringer struct{}

func (stringer) String() string { return "stringer" }

func TestPanicToError(t *testing.T) {
	require.ErrorIs(t, PanicToError(io.EOF), io.EOF)
	require.EqualError(t, PanicToError("boom"), "boom")
	require.EqualError(t, PanicToError(7), "panic code: 7")
	require.EqualError(t, PanicToError(uintptr(9)), "panic uintptr: 9")
	require.EqualError(t, PanicToError(stringer{}), "stringer")
	require.EqualError(t, PanicToError(struct{ A int }{1}), "panic: {1}")
}

func TestTry(t *testing.T) {
	require.NoError(t, Try(func() error { return nil }))
	fail := errors.New("fail")
	require.ErrorIs(t, Try(func() error { return fail }), fail)
	require.ErrorIs(t, Try(func() error { panic(fail) }), fail)
	require.EqualError(t, Try(func() error { panic("boom") }), "boom")
}
