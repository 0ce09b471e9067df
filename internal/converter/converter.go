// Package converter turns a delimited song sheet into the wheel JSON file.
package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"wheelgen/internal/charset"
	"wheelgen/internal/wheel"
)

var (
	ErrShortRow     = errors.New("row has too few fields")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Options configures one conversion run.
type Options struct {
	InputPath  string
	OutputPath string
	// Encodings are tried in order; the first that decodes the whole file wins.
	Encodings []string
	Layout    Layout
	// Strict turns short rows and duplicate keys into errors instead of
	// skipping and overwriting.
	Strict bool
	Logger *log.Logger
}

// Result summarizes a finished conversion.
type Result struct {
	Encoding   string
	Records    int
	Skipped    int
	Duplicates int
}

// Convert reads the song sheet at opts.InputPath and writes the wheel file
// to opts.OutputPath. Nothing is written when decoding or parsing fails.
func Convert(ctx context.Context, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("input", opts.InputPath)

	if err := opts.Layout.Validate(); err != nil {
		return Result{}, err
	}

	raw, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("reading source: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("conversion cancelled: %w", err)
	}

	decoded, err := charset.DecodeFirst(raw, opts.Encodings, func(a charset.Attempt) {
		logger.Debug("encoding rejected", "encoding", a.Name, "err", a.Err)
	})
	if err != nil {
		logger.Error("could not decode source with any candidate encoding", "candidates", strings.Join(opts.Encodings, ","))
		return Result{}, err
	}
	logger.Info("decoded source", "encoding", decoded.Encoding)

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("conversion cancelled: %w", err)
	}

	mapping, res, err := Build(strings.NewReader(decoded.Text), opts.Layout, opts.Strict, logger)
	if err != nil {
		return Result{}, err
	}
	res.Encoding = decoded.Encoding

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("conversion cancelled: %w", err)
	}

	data, err := mapping.Encode()
	if err != nil {
		return Result{}, fmt.Errorf("encoding wheel data: %w", err)
	}
	if err := os.WriteFile(opts.OutputPath, data, 0o644); err != nil {
		return Result{}, fmt.Errorf("writing wheel file: %w", err)
	}

	logger.Info("wrote wheel file",
		"output", opts.OutputPath,
		"records", res.Records,
		"skipped", res.Skipped,
		"duplicates", res.Duplicates,
	)
	return res, nil
}

// Build parses decoded song sheet text into a wheel mapping. Every row,
// blank lines included, takes up a row index.
func Build(r io.Reader, layout Layout, strict bool, logger *log.Logger) (*wheel.Mapping, Result, error) {
	if logger == nil {
		logger = log.Default()
	}

	text, err := io.ReadAll(r)
	if err != nil {
		return nil, Result{}, fmt.Errorf("reading song sheet: %w", err)
	}
	reader := newRowReader(string(text), layout)

	var (
		res     Result
		mapping = wheel.NewMapping()
		index   int
	)

	if layout.SkipHeader {
		if _, _, err := reader.Read(); err != nil && err != io.EOF {
			return nil, Result{}, fmt.Errorf("reading header row: %w", err)
		}
	}

	for {
		row, line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Result{}, fmt.Errorf("parsing song sheet: %w", err)
		}
		index++

		if len(row) == 0 {
			logger.Debug("skipping blank line", "line", line)
			continue
		}

		if len(row) < layout.MinFields {
			if strict {
				return nil, Result{}, fmt.Errorf("line %d: %w: got %d, need %d", line, ErrShortRow, len(row), layout.MinFields)
			}
			logger.Warn("skipping short row", "line", line, "fields", len(row), "min", layout.MinFields)
			res.Skipped++
			continue
		}

		key := strconv.Itoa(index)
		if layout.KeyFromPosition {
			key = row[layout.PositionColumn]
		}

		record := wheel.Record{
			Artist: row[layout.ArtistColumn],
			Song:   row[layout.SongColumn],
		}

		if _, exists := mapping.Get(key); exists {
			if strict {
				return nil, Result{}, fmt.Errorf("line %d: %w %q", line, ErrDuplicateKey, key)
			}
			logger.Warn("duplicate key overwrites earlier record", "line", line, "key", key)
			res.Duplicates++
		}
		mapping.Set(key, record)
	}

	res.Records = mapping.Len()
	return mapping, res, nil
}
