// Package iocontext carries command I/O streams in a context so commands can
// be run against buffers in tests.
package iocontext

import (
	"context"
	"io"
	"os"
)

// IO holds the input/output streams for commands.
type IO struct {
	Out    io.Writer
	ErrOut io.Writer
	In     io.Reader
}

// DefaultIO returns the process streams.
func DefaultIO() *IO {
	return &IO{Out: os.Stdout, ErrOut: os.Stderr, In: os.Stdin}
}

type ioKey struct{}

// WithIO adds IO streams to a context.
func WithIO(ctx context.Context, streams *IO) context.Context {
	return context.WithValue(ctx, ioKey{}, streams)
}

// GetIO returns the streams stored in ctx, or the process streams.
func GetIO(ctx context.Context) *IO {
	if ctx != nil {
		if streams, ok := ctx.Value(ioKey{}).(*IO); ok && streams != nil {
			return streams
		}
	}
	return DefaultIO()
}
