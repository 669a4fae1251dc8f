package results

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/swimstat/swimstat/internal/model"
)

const utf8BOM = "\ufeff"

// Load reads and normalizes an export file. Files ending in .gz or .zst are
// decompressed first. Nothing is returned unless the whole file parses.
func Load(ctx context.Context, path string) ([]model.Record, LoadStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, LoadStats{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only export.
			_ = cerr
		}
	}()

	r, closeReader, err := decompress(f, path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer closeReader()

	rows, err := ReadRows(r)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	records, stats, err := Normalize(rows)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, stats, nil
}

// ReadRows reads headerless CSV rows with exactly FieldCount fields.
func ReadRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = FieldCount
	rows, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) && perr.Err == csv.ErrFieldCount {
			return nil, fmt.Errorf("line %d: %w", perr.Line, ErrFieldCount)
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	return rows, nil
}

func decompress(f *os.File, path string) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { _ = zr.Close() }, nil
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	default:
		return f, func() {}, nil
	}
}
