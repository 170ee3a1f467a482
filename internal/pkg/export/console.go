package export

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Vodeneev/dkprops/internal/pkg/models"
)

const defaultConsoleRows = 10

// ConsolePrinter renders a run's table to the terminal: header, the first
// rows, and a dimensions footer once rows get cut off.
type ConsolePrinter struct {
	out     io.Writer
	maxRows int
}

func NewConsolePrinter(maxRows int) *ConsolePrinter {
	if maxRows <= 0 {
		maxRows = defaultConsoleRows
	}
	return &ConsolePrinter{out: os.Stdout, maxRows: maxRows}
}

func (p *ConsolePrinter) Name() string {
	return "console"
}

func (p *ConsolePrinter) Write(t models.Table) error {
	w := table.NewWriter()
	w.SetOutputMirror(p.out)
	w.SetStyle(table.StyleRounded)

	header := table.Row{}
	for _, col := range models.Columns() {
		header = append(header, col)
	}
	w.AppendHeader(header)

	shown := t.Rows
	if len(shown) > p.maxRows {
		shown = shown[:p.maxRows]
	}
	for _, r := range shown {
		row := table.Row{}
		for _, cell := range r.Record() {
			row = append(row, cell)
		}
		w.AppendRow(row)
	}
	if t.Len() > p.maxRows {
		w.AppendFooter(table.Row{fmt.Sprintf("%d rows x %d columns", t.Len(), len(models.Columns()))})
	}

	w.Render()
	return nil
}
