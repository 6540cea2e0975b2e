package outfmt

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Formatter writes a command result either as JSON or as an aligned table,
// depending on the mode stored in ctx.
type Formatter struct {
	ctx    context.Context
	out    io.Writer
	errOut io.Writer
	tw     *tabwriter.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(ctx context.Context, out, errOut io.Writer) *Formatter {
	return &Formatter{
		ctx:    ctx,
		out:    out,
		errOut: errOut,
		tw:     tabwriter.NewWriter(out, 0, 4, 2, ' ', 0),
	}
}

// JSON reports whether results should be written with Output.
func (f *Formatter) JSON() bool {
	return IsJSON(f.ctx)
}

// Output writes data as filtered JSON.
func (f *Formatter) Output(data any) error {
	return WriteJSONFiltered(f.out, data, GetQuery(f.ctx), IsCompact(f.ctx))
}

// Table writes headers and rows, then flushes.
func (f *Formatter) Table(headers []string, rows [][]string) error {
	_, _ = fmt.Fprintln(f.tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(f.tw, strings.Join(row, "\t"))
	}
	return f.tw.Flush()
}

// Empty writes a message to stderr indicating no results.
func (f *Formatter) Empty(message string) {
	_, _ = fmt.Fprintln(f.errOut, message)
}
