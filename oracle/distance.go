// Package oracle - distance sources: explicit matrices and coordinate metrics.
//
// Two representations are provided:
//   - Matrix: a flat row-major []int64 (n² memory, O(1) lookup).
//   - Points: 2-D coordinates with a TSPLIB metric, evaluated on demand
//     (O(n) memory), which is what makes 10⁴–10⁵ node instances practical.
//
// The metric formulas follow the TSPLIB 95 definitions so that tour lengths
// are comparable with published optima.
package oracle

import "math"

// Distance is a symmetric integer distance function over nodes 0..N()-1.
type Distance interface {
	N() int
	Dist(i, j int) int64
}

// Matrix is an explicit symmetric distance matrix.
type Matrix struct {
	n int
	w []int64 // w[i*n+j]
}

var _ Distance = (*Matrix)(nil)

// NewMatrix copies rows into a validated Matrix.
//
// Contract: square, zero diagonal, non-negative, symmetric.
// Errors: ErrNonSquare, ErrNonZeroDiagonal, ErrNegativeWeight, ErrAsymmetry.
//
// Complexity: O(n²) time and memory.
func NewMatrix(rows [][]int64) (*Matrix, error) {
	var n = len(rows)
	m := &Matrix{n: n, w: make([]int64, n*n)}

	var i int
	for i = 0; i < n; i++ {
		if len(rows[i]) != n {
			return nil, ErrNonSquare
		}
		copy(m.w[i*n:(i+1)*n], rows[i])
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewMatrixFlat wraps a row-major n×n slice without copying.
//
// Errors: as NewMatrix.
func NewMatrixFlat(n int, w []int64) (*Matrix, error) {
	if n < 0 || len(w) != n*n {
		return nil, ErrNonSquare
	}
	m := &Matrix{n: n, w: w}
	if err := m.validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// validate enforces the Matrix contract.
func (m *Matrix) validate() error {
	var (
		n    = m.n
		i, j int
	)
	for i = 0; i < n; i++ {
		if m.w[i*n+i] != 0 {
			return ErrNonZeroDiagonal
		}
		for j = i + 1; j < n; j++ {
			if m.w[i*n+j] < 0 || m.w[j*n+i] < 0 {
				return ErrNegativeWeight
			}
			if m.w[i*n+j] != m.w[j*n+i] {
				return ErrAsymmetry
			}
		}
	}

	return nil
}

// N returns the node count.
func (m *Matrix) N() int { return m.n }

// Dist returns w[i][j].
func (m *Matrix) Dist(i, j int) int64 { return m.w[i*m.n+j] }

// Metric selects a coordinate distance function.
type Metric uint8

const (
	// Euclidean2D is TSPLIB EUC_2D: Euclidean distance rounded to nearest integer.
	Euclidean2D Metric = iota
	// Ceil2D is TSPLIB CEIL_2D: Euclidean distance rounded up.
	Ceil2D
	// Pseudo2D is TSPLIB ATT: pseudo-Euclidean distance.
	Pseudo2D
	// Manhattan2D is TSPLIB MAN_2D.
	Manhattan2D
	// Maximum2D is TSPLIB MAX_2D.
	Maximum2D
	// Geographical is TSPLIB GEO: great-circle distance on the idealized earth,
	// coordinates given as DDD.MM (degrees.minutes).
	Geographical
)

// String returns the TSPLIB keyword of the metric.
func (m Metric) String() string {
	switch m {
	case Euclidean2D:
		return "EUC_2D"
	case Ceil2D:
		return "CEIL_2D"
	case Pseudo2D:
		return "ATT"
	case Manhattan2D:
		return "MAN_2D"
	case Maximum2D:
		return "MAX_2D"
	case Geographical:
		return "GEO"
	default:
		return "UNKNOWN"
	}
}

// ParseMetric maps a TSPLIB EDGE_WEIGHT_TYPE keyword to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "EUC_2D":
		return Euclidean2D, nil
	case "CEIL_2D":
		return Ceil2D, nil
	case "ATT":
		return Pseudo2D, nil
	case "MAN_2D":
		return Manhattan2D, nil
	case "MAX_2D":
		return Maximum2D, nil
	case "GEO":
		return Geographical, nil
	default:
		return 0, ErrUnknownMetric
	}
}

// Points is a coordinate instance evaluated lazily.
type Points struct {
	metric Metric
	x, y   []float64 // for Geographical: latitude / longitude in radians
}

var _ Distance = (*Points)(nil)

// NewPoints copies coordinates and prepares them for metric.
//
// Errors: ErrCoordinates, ErrUnknownMetric.
//
// Complexity: O(n).
func NewPoints(metric Metric, xs, ys []float64) (*Points, error) {
	if len(xs) != len(ys) {
		return nil, ErrCoordinates
	}
	if metric > Geographical {
		return nil, ErrUnknownMetric
	}
	p := &Points{
		metric: metric,
		x:      append([]float64(nil), xs...),
		y:      append([]float64(nil), ys...),
	}
	if metric == Geographical {
		var i int
		for i = range p.x {
			p.x[i] = geoRadians(p.x[i])
			p.y[i] = geoRadians(p.y[i])
		}
	}

	return p, nil
}

// geoPI is the truncated constant prescribed by TSPLIB for GEO instances.
const geoPI = 3.141592

// geoEarthRadius is the idealized earth radius of TSPLIB GEO instances.
const geoEarthRadius = 6378.388

// geoRadians converts a DDD.MM coordinate to radians.
func geoRadians(v float64) float64 {
	var (
		deg     = math.Trunc(v)
		minutes = v - deg
	)

	return geoPI * (deg + 5.0*minutes/3.0) / 180.0
}

// nint rounds half up as TSPLIB's (int)(x+0.5).
func nint(v float64) int64 { return int64(v + 0.5) }

// N returns the node count.
func (p *Points) N() int { return len(p.x) }

// Dist evaluates the metric between nodes i and j.
func (p *Points) Dist(i, j int) int64 {
	if i == j {
		return 0
	}
	var (
		dx = p.x[i] - p.x[j]
		dy = p.y[i] - p.y[j]
	)
	switch p.metric {
	case Ceil2D:
		return int64(math.Ceil(math.Sqrt(dx*dx + dy*dy)))
	case Pseudo2D:
		r := math.Sqrt((dx*dx + dy*dy) / 10.0)
		t := nint(r)
		if float64(t) < r {
			return t + 1
		}
		return t
	case Manhattan2D:
		return nint(math.Abs(dx) + math.Abs(dy))
	case Maximum2D:
		return max(nint(math.Abs(dx)), nint(math.Abs(dy)))
	case Geographical:
		q1 := math.Cos(p.y[i] - p.y[j])
		q2 := math.Cos(p.x[i] - p.x[j])
		q3 := math.Cos(p.x[i] + p.x[j])
		return int64(geoEarthRadius*math.Acos(0.5*((1.0+q1)*q2-(1.0-q1)*q3)) + 1.0)
	default:
		return nint(math.Sqrt(dx*dx + dy*dy))
	}
}
