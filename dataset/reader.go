package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/iqrfit/compress"
	"github.com/arloliu/iqrfit/errs"
)

// ParseError describes a malformed input line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads observations from r.
//
// Each non-blank, non-comment line must have exactly three fields separated
// by tabs or spaces: id, x and y.
func Parse(r io.Reader) (Dataset, error) {
	var obs []Observation

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		o, err := parseLine(line)
		if err != nil {
			return Dataset{}, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		obs = append(obs, o)
	}
	if err := sc.Err(); err != nil {
		return Dataset{}, fmt.Errorf("read observations: %w", err)
	}

	return Dataset{obs: obs}, nil
}

func parseLine(line string) (Observation, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Observation{}, fmt.Errorf("%w: want 3 fields, got %d", errs.ErrInvalidObservation, len(fields))
	}

	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Observation{}, fmt.Errorf("%w: x value: %w", errs.ErrInvalidObservation, err)
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Observation{}, fmt.Errorf("%w: y value: %w", errs.ErrInvalidObservation, err)
	}

	if !isFinite(x) || !isFinite(y) {
		return Observation{}, fmt.Errorf("%w: values must be finite", errs.ErrInvalidObservation)
	}

	return Observation{ID: fields[0], X: x, Y: y}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Load opens the file at path, decompressing it according to its extension,
// and parses its observations.
func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	rc, err := compress.NewReader(f, compress.Detect(path))
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer rc.Close()

	ds, err := Parse(rc)
	if err != nil {
		return Dataset{}, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	return ds, nil
}
