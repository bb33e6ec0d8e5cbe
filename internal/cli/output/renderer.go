package output

import (
	"fmt"
	"io"

	"github.com/yndnr/tablesync-go/internal/core/domain"
)

// RowRenderer prints the watch stream: the initial table, each batch of
// changes and failure notices. Data goes to out, notices to errOut.
type RowRenderer struct {
	out       io.Writer
	errOut    io.Writer
	format    Format
	styles    *Styles
	formatter Formatter
}

// NewRowRenderer creates a renderer. Pass nil styles for plain output.
func NewRowRenderer(out, errOut io.Writer, format Format, styles *Styles) *RowRenderer {
	return &RowRenderer{
		out:       out,
		errOut:    errOut,
		format:    format,
		styles:    styles,
		formatter: NewFormatter(format, styles),
	}
}

// RenderState prints the full table.
func (r *RowRenderer) RenderState(state domain.State) error {
	if r.format != FormatTable {
		return r.formatter.Format(r.out, state)
	}
	return r.rows(state.Rows)
}

// RenderChanges prints a batch of changed rows under a
// "Changes since revision N:" header.
func (r *RowRenderer) RenderChanges(since int64, state domain.State) error {
	if r.format != FormatTable {
		return r.formatter.Format(r.out, state)
	}
	if _, err := fmt.Fprintln(r.out, r.styles.header(fmt.Sprintf("Changes since revision %d:", since))); err != nil {
		return err
	}
	return r.rows(state.Rows)
}

// Notice prints a one-line status message.
func (r *RowRenderer) Notice(msg string) {
	fmt.Fprintln(r.errOut, r.styles.notice(msg))
}

func (r *RowRenderer) rows(rows []domain.Row) error {
	return RowsTable(rows, r.styles).RenderWithOptions(r.out, true)
}
