package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteTour writes perm (0-based) as a TSPLIB TOUR file.
func WriteTour(w io.Writer, name string, length int64, perm []int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "NAME : %s\n", name)
	fmt.Fprintf(bw, "COMMENT : Length = %d\n", length)
	fmt.Fprintf(bw, "TYPE : TOUR\n")
	fmt.Fprintf(bw, "DIMENSION : %d\n", len(perm))
	fmt.Fprintf(bw, "TOUR_SECTION\n")

	var v int
	for _, v = range perm {
		bw.WriteString(strconv.Itoa(v + 1))
		bw.WriteByte('\n')
	}
	bw.WriteString("-1\nEOF\n")

	return bw.Flush()
}

// ParseTour reads a TSPLIB TOUR file and returns the 0-based node sequence.
// Only TOUR_SECTION and DIMENSION are interpreted; the sequence is not
// validated beyond the id range.
func ParseTour(r io.Reader) ([]int, error) {
	var (
		sc   = newScanner(r)
		dim  = -1
		perm []int
		line string
		ok   bool
		err  error
	)
	for {
		if line, ok = sc.next(); !ok {
			return nil, sc.errorf(ErrTruncated)
		}
		key, value := splitHeader(line)
		switch key {
		case "DIMENSION":
			if dim, err = strconv.Atoi(value); err != nil || dim < 1 {
				return nil, sc.errorf(ErrMissingDimension)
			}
		case "TYPE":
			if value != "TOUR" {
				return nil, sc.errorf(fmt.Errorf("%w: %s", ErrUnsupportedType, value))
			}
		case "TOUR_SECTION":
			if perm, err = readTourSection(sc, dim); err != nil {
				return nil, err
			}
			return perm, nil
		case "EOF":
			return nil, sc.errorf(ErrTruncated)
		}
	}
}

// readTourSection reads ids until -1; dim bounds them when known (> 0).
func readTourSection(sc *scanner, dim int) ([]int, error) {
	var (
		perm []int
		line string
		ok   bool
		id   int
		err  error
		f    string
	)
	if dim > 0 {
		perm = make([]int, 0, dim)
	}
	for {
		if line, ok = sc.next(); !ok {
			return nil, sc.errorf(ErrTruncated)
		}
		for _, f = range strings.Fields(line) {
			if id, err = strconv.Atoi(f); err != nil {
				return nil, sc.errorf(ErrSyntax)
			}
			if id == -1 {
				return perm, nil
			}
			if id < 1 || (dim > 0 && id > dim) {
				return nil, sc.errorf(ErrNodeID)
			}
			perm = append(perm, id-1)
		}
	}
}
