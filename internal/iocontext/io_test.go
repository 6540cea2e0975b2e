package iocontext

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestWithIO(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := WithIO(context.Background(), &IO{Out: out, ErrOut: &bytes.Buffer{}})
	if GetIO(ctx).Out != out {
		t.Error("GetIO should return the IO set with WithIO")
	}
}

func TestGetIO_Defaults(t *testing.T) {
	streams := GetIO(context.Background())
	if streams.Out != os.Stdout || streams.ErrOut != os.Stderr || streams.In != os.Stdin {
		t.Error("GetIO should fall back to process streams")
	}
	if GetIO(WithIO(context.Background(), nil)).Out != os.Stdout {
		t.Error("nil IO should fall back to process streams")
	}
}
