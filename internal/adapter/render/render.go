// Package render is the boundary to the rendering collaborator: it prints
// ranked long-form tables to the terminal and writes them to report files.
// The pipeline's obligation ends here — actual charting happens elsewhere.
package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/couchcryptid/storm-harm-report/internal/domain"
)

// Renderer writes reports to a terminal writer and, when an output directory
// is configured, to one file per report.
// It implements pipeline.Renderer.
type Renderer struct {
	out    io.Writer
	dir    string // empty disables file output
	format string // "csv" or "json"
	logger *slog.Logger
}

// New creates a Renderer. Pass an empty dir to skip file output.
func New(out io.Writer, dir, format string, logger *slog.Logger) *Renderer {
	return &Renderer{out: out, dir: dir, format: format, logger: logger}
}

// Render emits every report to the terminal and to files.
func (r *Renderer) Render(ctx context.Context, reports []domain.Report) error {
	for _, rep := range reports {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.renderTerminal(rep)
		if r.dir == "" {
			continue
		}
		path, err := r.writeFile(rep)
		if err != nil {
			return err
		}
		r.logger.Info("report written", "report", rep.Name, "path", path, "rows", len(rep.Rows))
	}
	return nil
}

// renderTerminal prints one report as a bordered table with its plot titles
// above it.
func (r *Renderer) renderTerminal(rep domain.Report) {
	fmt.Fprintf(r.out, "%s\n%s\n", rep.Plot.Title, rep.Plot.Subtitle)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{rep.KeyHeading, "label", "value"})
	for _, row := range rep.Rows {
		t.AppendRow(table.Row{row.GroupKey, row.Label, formatValue(row.Value)})
	}
	t.Render()

	fmt.Fprintf(r.out, "%s\n(%d rows)\n\n", rep.Plot.Caption, len(rep.Rows))
}

// formatValue prints whole numbers without a decimal point and everything
// else with enough precision to round-trip.
func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
