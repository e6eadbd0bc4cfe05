package tsplib_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspdeep/tsplib"
)

const square4 = `NAME : square4
COMMENT : four corners
COMMENT : second comment line
TYPE : TSP
DIMENSION : 4
EDGE_WEIGHT_TYPE : EUC_2D
NODE_COORD_SECTION
1 0 0
3 3 4
2 3 0
4 0 4
EOF
`

func TestParse_Coordinates(t *testing.T) {
	in, err := tsplib.Parse(strings.NewReader(square4))
	require.NoError(t, err)
	require.Equal(t, "square4", in.Name)
	require.Equal(t, "four corners\nsecond comment line", in.Comment)
	require.Equal(t, 4, in.Dimension)
	require.Equal(t, []float64{0, 3, 3, 0}, in.X)
	require.Equal(t, []float64{0, 0, 4, 4}, in.Y)

	d, err := in.Distance()
	require.NoError(t, err)
	require.Equal(t, 4, d.N())
	require.Equal(t, int64(3), d.Dist(0, 1))
	require.Equal(t, int64(5), d.Dist(0, 2))
	require.Equal(t, int64(4), d.Dist(1, 2))
}

func TestParse_ExplicitFormats(t *testing.T) {
	// Matrix:
	//   0 1 2 3
	//   1 0 4 5
	//   2 4 0 6
	//   3 5 6 0
	want := []int64{0, 1, 2, 3, 1, 0, 4, 5, 2, 4, 0, 6, 3, 5, 6, 0}
	for format, body := range map[string]string{
		"FULL_MATRIX":    "0 1 2 3\n1 0 4 5\n2 4 0 6\n3 5 6 0",
		"UPPER_ROW":      "1 2 3\n4 5\n6",
		"UPPER_DIAG_ROW": "0 1 2 3 0 4 5\n0 6 0",
		"LOWER_ROW":      "1\n2 4\n3 5 6",
		"LOWER_DIAG_ROW": "0\n1 0\n2 4 0\n3 5 6 0",
	} {
		t.Run(format, func(t *testing.T) {
			src := "NAME: m4\nTYPE: TSP\nDIMENSION: 4\nEDGE_WEIGHT_TYPE: EXPLICIT\n" +
				"EDGE_WEIGHT_FORMAT: " + format + "\nEDGE_WEIGHT_SECTION\n" + body + "\nEOF\n"
			in, err := tsplib.Parse(strings.NewReader(src))
			require.NoError(t, err)
			require.Equal(t, want, in.Weights)

			d, err := in.Distance()
			require.NoError(t, err)
			require.Equal(t, int64(6), d.Dist(3, 2))
		})
	}
}

func TestParse_DisplayDataSkipped(t *testing.T) {
	src := "NAME: m3\nTYPE: TSP\nDIMENSION: 3\nEDGE_WEIGHT_TYPE: EXPLICIT\nEDGE_WEIGHT_FORMAT: UPPER_ROW\n" +
		"DISPLAY_DATA_TYPE: TWOD_DISPLAY\nEDGE_WEIGHT_SECTION\n5 7\n9\n" +
		"DISPLAY_DATA_SECTION\n1 0 0\n2 1 0\n3 0 1\nEOF\n"
	in, err := tsplib.Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, []int64{0, 5, 7, 5, 0, 9, 7, 9, 0}, in.Weights)
}

func TestParse_Errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want error
	}{
		{"atsp", "TYPE : ATSP\n", tsplib.ErrUnsupportedType},
		{"no dimension", "TYPE : TSP\nNODE_COORD_SECTION\n1 0 0\n", tsplib.ErrMissingDimension},
		{"bad dimension", "DIMENSION : zero\n", tsplib.ErrMissingDimension},
		{"truncated", "DIMENSION : 3\nEDGE_WEIGHT_TYPE : EUC_2D\nNODE_COORD_SECTION\n1 0 0\n2 1 1\n", tsplib.ErrTruncated},
		{"duplicate id", "DIMENSION : 2\nNODE_COORD_SECTION\n1 0 0\n1 1 1\n", tsplib.ErrNodeID},
		{"id out of range", "DIMENSION : 2\nNODE_COORD_SECTION\n1 0 0\n3 1 1\n", tsplib.ErrNodeID},
		{"bad number", "DIMENSION : 1\nNODE_COORD_SECTION\n1 x 0\n", tsplib.ErrSyntax},
		{"unknown keyword", "DIMENSION : 2\nFOO : bar\n", tsplib.ErrSyntax},
		{"unknown format", "DIMENSION : 2\nEDGE_WEIGHT_TYPE : EXPLICIT\nEDGE_WEIGHT_FORMAT : FUNCTION\nEDGE_WEIGHT_SECTION\n1\n", tsplib.ErrUnsupportedWeights},
		{"trailing weights", "DIMENSION : 2\nEDGE_WEIGHT_TYPE : EXPLICIT\nEDGE_WEIGHT_FORMAT : UPPER_ROW\nEDGE_WEIGHT_SECTION\n1 2\nEOF\n", tsplib.ErrSyntax},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tsplib.Parse(strings.NewReader(tc.src))
			require.ErrorIs(t, err, tc.want)
			require.Contains(t, err.Error(), "line ")
		})
	}
}

func TestDistance_UnsupportedWeights(t *testing.T) {
	in := &tsplib.Instance{Dimension: 1, EdgeWeightType: "EUC_3D", X: []float64{0}, Y: []float64{0}}
	_, err := in.Distance()
	require.ErrorIs(t, err, tsplib.ErrUnsupportedWeights)
}

func TestOpen_PlainAndGzip(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "square4.tsp")
	require.NoError(t, os.WriteFile(plain, []byte(square4), 0o644))

	packed := filepath.Join(dir, "square4.tsp.gz")
	f, err := os.Create(packed)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(square4))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	a, err := tsplib.Open(plain)
	require.NoError(t, err)
	b, err := tsplib.Open(packed)
	require.NoError(t, err)
	require.Equal(t, a, b)

	_, err = tsplib.Open(filepath.Join(dir, "missing.tsp"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
