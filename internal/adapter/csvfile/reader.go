// Package csvfile reads a delimited Storm Events export from the local
// filesystem into a raw table. It is the pipeline's extractor: one file, one
// read, no retries.
package csvfile

import (
	"compress/bzip2"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/couchcryptid/storm-harm-report/internal/domain"
)

// Reader extracts a raw table from a CSV file, transparently decompressing
// .gz and .bz2 inputs.
// It implements pipeline.Extractor.
type Reader struct {
	path   string
	comma  rune
	logger *slog.Logger
}

// NewReader creates a Reader for the given path and field delimiter.
func NewReader(path string, comma rune, logger *slog.Logger) *Reader {
	return &Reader{path: path, comma: comma, logger: logger}
}

// ExtractTable reads the whole file into memory. Row order and raw string
// cells are preserved; coercion is the normalizer's job. A missing or
// unreadable file and any header/row field-count mismatch are fatal.
func (r *Reader) ExtractTable(ctx context.Context) (*domain.Table, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	src, err := decompressed(f, r.path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", r.path, err)
	}

	cr := csv.NewReader(src)
	cr.Comma = r.comma
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: empty file", r.path)
		}
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}

	table, err := domain.NewTable(header)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}

	// encoding/csv enforces the header's field count on every subsequent
	// row once FieldsPerRecord is set by the first Read, so an inconsistent
	// row surfaces here as a *csv.ParseError naming the line.
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", r.path, err)
		}
		if err := table.AppendRow(row); err != nil {
			return nil, fmt.Errorf("parse %s: %w", r.path, err)
		}
	}

	r.logger.Info("input loaded", "path", r.path, "rows", table.Len(), "columns", len(table.Headers()))
	return table, nil
}

// decompressed wraps the file reader according to the path's extension. The
// NOAA export ships as .csv.bz2; .gz is common for re-packed copies.
func decompressed(f *os.File, path string) (io.Reader, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return gzip.NewReader(f)
	case strings.HasSuffix(path, ".bz2"):
		return bzip2.NewReader(f), nil
	default:
		return f, nil
	}
}
