package oracle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspdeep/oracle"
)

func TestNewMatrix_Validation(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name string
		rows [][]int64
		want error
	}{
		{"ok", [][]int64{{0, 2}, {2, 0}}, nil},
		{"empty", [][]int64{}, nil},
		{"non square", [][]int64{{0, 1, 2}, {1, 0}}, oracle.ErrNonSquare},
		{"diagonal", [][]int64{{1, 2}, {2, 0}}, oracle.ErrNonZeroDiagonal},
		{"negative", [][]int64{{0, -2}, {-2, 0}}, oracle.ErrNegativeWeight},
		{"asymmetric", [][]int64{{0, 2}, {3, 0}}, oracle.ErrAsymmetry},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, err := oracle.NewMatrix(tc.rows)
			if tc.want != nil {
				require.ErrorIs(t, err, tc.want)
				require.Nil(t, m)
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(tc.rows), m.N())
		})
	}
}

func TestNewMatrix_CopiesRows(t *testing.T) {
	rows := [][]int64{{0, 4}, {4, 0}}
	m, err := oracle.NewMatrix(rows)
	require.NoError(t, err)
	rows[0][1] = 99
	require.Equal(t, int64(4), m.Dist(0, 1))
}

func TestNewMatrixFlat(t *testing.T) {
	m, err := oracle.NewMatrixFlat(3, []int64{0, 1, 2, 1, 0, 3, 2, 3, 0})
	require.NoError(t, err)
	require.Equal(t, int64(3), m.Dist(2, 1))

	_, err = oracle.NewMatrixFlat(3, []int64{0, 1})
	require.ErrorIs(t, err, oracle.ErrNonSquare)
}

func TestPoints_Metrics(t *testing.T) {
	for _, tc := range []struct {
		metric oracle.Metric
		xs, ys []float64
		want   int64
	}{
		{oracle.Euclidean2D, []float64{0, 3}, []float64{0, 4}, 5},
		{oracle.Euclidean2D, []float64{0, 1}, []float64{0, 1}, 1},
		{oracle.Ceil2D, []float64{0, 1}, []float64{0, 1}, 2},
		{oracle.Pseudo2D, []float64{0, 10}, []float64{0, 0}, 4},
		{oracle.Manhattan2D, []float64{0, 3}, []float64{0, 4}, 7},
		{oracle.Maximum2D, []float64{0, 3}, []float64{0, 4}, 4},
		{oracle.Geographical, []float64{0, 0}, []float64{0, 1}, 112},
	} {
		p, err := oracle.NewPoints(tc.metric, tc.xs, tc.ys)
		require.NoError(t, err)
		require.Equal(t, tc.want, p.Dist(0, 1), tc.metric.String())
		require.Equal(t, tc.want, p.Dist(1, 0), tc.metric.String())
		require.Zero(t, p.Dist(1, 1))
	}
}

func TestPoints_Errors(t *testing.T) {
	_, err := oracle.NewPoints(oracle.Euclidean2D, []float64{0}, []float64{0, 1})
	require.ErrorIs(t, err, oracle.ErrCoordinates)
	_, err = oracle.NewPoints(oracle.Metric(42), nil, nil)
	require.ErrorIs(t, err, oracle.ErrUnknownMetric)
}

func TestParseMetric(t *testing.T) {
	for _, m := range []oracle.Metric{
		oracle.Euclidean2D, oracle.Ceil2D, oracle.Pseudo2D,
		oracle.Manhattan2D, oracle.Maximum2D, oracle.Geographical,
	} {
		got, err := oracle.ParseMetric(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
	_, err := oracle.ParseMetric("EUC_3D")
	require.ErrorIs(t, err, oracle.ErrUnknownMetric)
}
