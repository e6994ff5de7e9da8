package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/storm-harm-report/internal/domain"
)

// writeFile writes one report under the output directory and returns the
// file path.
func (r *Renderer) writeFile(rep domain.Report) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(r.dir, rep.Name+"."+r.format)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch r.format {
	case "json":
		err = writeJSON(f, rep)
	default:
		err = writeCSV(f, rep)
	}
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// writeCSV emits the bare long-form table: group_key, value, label.
func writeCSV(f *os.File, rep domain.Report) error {
	w := csv.NewWriter(f)
	if err := w.Write([]string{"group_key", "value", "label"}); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		rec := []string{row.GroupKey, strconv.FormatFloat(row.Value, 'g', -1, 64), row.Label}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// writeJSON emits the full report, including the plot metadata and the
// generation timestamp, for collaborators that configure their own axes.
func writeJSON(f *os.File, rep domain.Report) error {
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
