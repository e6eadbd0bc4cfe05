// Package tsplib reads symmetric TSP instances and tours in the TSPLIB 95
// text format, plain or gzip-compressed.
//
// Supported:
//   - TYPE: TSP (TOUR files through ParseTour).
//   - EDGE_WEIGHT_TYPE: EUC_2D, CEIL_2D, ATT, MAN_2D, MAX_2D, GEO, EXPLICIT.
//   - EDGE_WEIGHT_FORMAT (EXPLICIT only): FULL_MATRIX, UPPER_ROW, LOWER_ROW,
//     UPPER_DIAG_ROW, LOWER_DIAG_ROW.
//   - Sections: NODE_COORD_SECTION, EDGE_WEIGHT_SECTION, DISPLAY_DATA_SECTION
//     (skipped), TOUR_SECTION, EOF.
//
// Node ids are 1-based in files and 0-based everywhere in memory.
package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/katalvlaran/tspdeep/oracle"
)

// Instance is a parsed TSPLIB problem.
type Instance struct {
	Name             string
	Comment          string
	Dimension        int
	EdgeWeightType   string
	EdgeWeightFormat string

	// X, Y hold node coordinates for coordinate-based weight types.
	X, Y []float64

	// Weights holds the full row-major matrix for EXPLICIT instances.
	Weights []int64
}

// Distance returns the distance source described by the instance.
//
// Errors: ErrUnsupportedWeights and oracle validation errors.
func (in *Instance) Distance() (oracle.Distance, error) {
	if in.EdgeWeightType == "EXPLICIT" {
		return oracle.NewMatrixFlat(in.Dimension, in.Weights)
	}
	metric, err := oracle.ParseMetric(in.EdgeWeightType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWeights, in.EdgeWeightType)
	}

	return oracle.NewPoints(metric, in.X, in.Y)
}

// Open reads an instance file; names ending in ".gz" are decompressed.
func Open(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("tsplib: %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	return Parse(r)
}

// scanner yields trimmed non-empty lines and tracks the line number.
type scanner struct {
	s    *bufio.Scanner
	line int
}

func newScanner(r io.Reader) *scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &scanner{s: s}
}

// next returns the next non-empty line; ok is false at end of input.
func (sc *scanner) next() (string, bool) {
	for sc.s.Scan() {
		sc.line++
		if t := strings.TrimSpace(sc.s.Text()); t != "" {
			return t, true
		}
	}

	return "", false
}

func (sc *scanner) errorf(err error) error {
	return fmt.Errorf("tsplib: line %d: %w", sc.line, err)
}

// splitHeader splits "KEY : VALUE" (or "KEY: VALUE", or a bare "KEY").
func splitHeader(line string) (string, string) {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return strings.TrimSpace(line), ""
	}

	return strings.TrimSpace(key), strings.TrimSpace(value)
}

// Parse reads an instance from r.
//
// Errors: the tsplib sentinels, wrapped with the line number.
//
// Complexity: O(size of input).
func Parse(r io.Reader) (*Instance, error) {
	var (
		sc   = newScanner(r)
		in   = &Instance{}
		line string
		ok   bool
		err  error
	)
	for {
		if line, ok = sc.next(); !ok {
			break
		}
		key, value := splitHeader(line)
		switch key {
		case "EOF":
			return in, in.check(sc)
		case "NAME":
			in.Name = value
		case "COMMENT":
			if in.Comment != "" {
				in.Comment += "\n"
			}
			in.Comment += value
		case "TYPE":
			if value != "TSP" {
				return nil, sc.errorf(fmt.Errorf("%w: %s", ErrUnsupportedType, value))
			}
		case "DIMENSION":
			if in.Dimension, err = strconv.Atoi(value); err != nil || in.Dimension < 1 {
				return nil, sc.errorf(ErrMissingDimension)
			}
		case "EDGE_WEIGHT_TYPE":
			in.EdgeWeightType = value
		case "EDGE_WEIGHT_FORMAT":
			in.EdgeWeightFormat = value
		case "NODE_COORD_TYPE", "DISPLAY_DATA_TYPE", "CAPACITY":
			// informational only
		case "NODE_COORD_SECTION":
			if err = in.readCoords(sc); err != nil {
				return nil, err
			}
		case "EDGE_WEIGHT_SECTION":
			if err = in.readWeights(sc); err != nil {
				return nil, err
			}
		case "DISPLAY_DATA_SECTION":
			if err = skipLines(sc, in.Dimension); err != nil {
				return nil, err
			}
		default:
			return nil, sc.errorf(fmt.Errorf("%w: unknown keyword %q", ErrSyntax, key))
		}
	}

	return in, in.check(sc)
}

// check verifies that the data matching EDGE_WEIGHT_TYPE was read.
func (in *Instance) check(sc *scanner) error {
	if in.Dimension < 1 {
		return sc.errorf(ErrMissingDimension)
	}
	switch {
	case in.EdgeWeightType == "EXPLICIT":
		if len(in.Weights) != in.Dimension*in.Dimension {
			return sc.errorf(ErrTruncated)
		}
	case len(in.X) != in.Dimension:
		return sc.errorf(ErrTruncated)
	}

	return nil
}

// skipLines discards n non-empty lines.
func skipLines(sc *scanner, n int) error {
	if n < 1 {
		return sc.errorf(ErrMissingDimension)
	}
	var i int
	for i = 0; i < n; i++ {
		if _, ok := sc.next(); !ok {
			return sc.errorf(ErrTruncated)
		}
	}

	return nil
}

// readCoords reads DIMENSION lines "id x y".
func (in *Instance) readCoords(sc *scanner) error {
	var n = in.Dimension
	if n < 1 {
		return sc.errorf(ErrMissingDimension)
	}
	in.X = make([]float64, n)
	in.Y = make([]float64, n)
	seen := make([]bool, n)

	var (
		i      int
		id     int
		line   string
		ok     bool
		fields []string
		err    error
	)
	for i = 0; i < n; i++ {
		if line, ok = sc.next(); !ok {
			return sc.errorf(ErrTruncated)
		}
		fields = strings.Fields(line)
		if len(fields) < 3 {
			return sc.errorf(ErrSyntax)
		}
		if id, err = strconv.Atoi(fields[0]); err != nil {
			return sc.errorf(ErrSyntax)
		}
		if id < 1 || id > n || seen[id-1] {
			return sc.errorf(ErrNodeID)
		}
		seen[id-1] = true
		if in.X[id-1], err = strconv.ParseFloat(fields[1], 64); err != nil {
			return sc.errorf(ErrSyntax)
		}
		if in.Y[id-1], err = strconv.ParseFloat(fields[2], 64); err != nil {
			return sc.errorf(ErrSyntax)
		}
	}

	return nil
}

// readWeights reads an EDGE_WEIGHT_SECTION into a full symmetric matrix.
// Numbers may be spread over lines arbitrarily.
func (in *Instance) readWeights(sc *scanner) error {
	var n = in.Dimension
	if n < 1 {
		return sc.errorf(ErrMissingDimension)
	}

	// cells enumerates the (i,j) positions of the format in file order.
	var cells func(yield func(i, j int) bool)
	switch in.EdgeWeightFormat {
	case "FULL_MATRIX":
		cells = triangle(n, func(i int) (int, int) { return 0, n })
	case "UPPER_ROW":
		cells = triangle(n, func(i int) (int, int) { return i + 1, n })
	case "UPPER_DIAG_ROW":
		cells = triangle(n, func(i int) (int, int) { return i, n })
	case "LOWER_ROW":
		cells = triangle(n, func(i int) (int, int) { return 0, i })
	case "LOWER_DIAG_ROW":
		cells = triangle(n, func(i int) (int, int) { return 0, i + 1 })
	default:
		return sc.errorf(fmt.Errorf("%w: format %q", ErrUnsupportedWeights, in.EdgeWeightFormat))
	}

	in.Weights = make([]int64, n*n)
	var (
		tokens []string
		line   string
		ok     bool
		v      int64
		err    error
	)
	for i, j := range cells {
		if len(tokens) == 0 {
			for len(tokens) == 0 {
				if line, ok = sc.next(); !ok {
					return sc.errorf(ErrTruncated)
				}
				tokens = strings.Fields(line)
			}
		}
		if v, err = parseWeight(tokens[0]); err != nil {
			return sc.errorf(ErrSyntax)
		}
		tokens = tokens[1:]
		in.Weights[i*n+j] = v
		if in.EdgeWeightFormat != "FULL_MATRIX" {
			in.Weights[j*n+i] = v
		}
	}
	if len(tokens) != 0 {
		return sc.errorf(fmt.Errorf("%w: trailing weights", ErrSyntax))
	}

	return nil
}

// triangle returns an iterator over rows i and columns [lo(i), hi(i)).
func triangle(n int, span func(i int) (int, int)) func(yield func(i, j int) bool) {
	return func(yield func(i, j int) bool) {
		var i, j, lo, hi int
		for i = 0; i < n; i++ {
			lo, hi = span(i)
			for j = lo; j < hi; j++ {
				if !yield(i, j) {
					return
				}
			}
		}
	}
}

// parseWeight accepts integers and integral floats ("12", "12.0").
func parseWeight(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return int64(f), nil
}
