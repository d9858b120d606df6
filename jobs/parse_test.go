package jobs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rpq/jobs"
)

func TestParse_Valid(t *testing.T) {
	in := "3\n0 1 9\n\n  0 1 0  \n100 2 3\n"
	s, err := jobs.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	require.Equal(t, jobs.Job{ID: 2, Release: 100, Processing: 2, Delivery: 3}, s.At(2))
}

// The count line may carry trailing tokens, as in the usual "n 3" header.
func TestParse_CountHeader(t *testing.T) {
	s, err := jobs.Parse(strings.NewReader("2 3\n0 1 9\n0 1 0\n"))
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	require.Equal(t, jobs.Job{ID: 0, Release: 0, Processing: 1, Delivery: 9}, s.At(0))

	_, err = jobs.Parse(strings.NewReader("x 3\n0 1 9\n"))
	require.ErrorIs(t, err, jobs.ErrMalformedInstance)
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty input":      "",
		"zero count":       "0\n",
		"bad count":        "three\n1 2 3\n",
		"negative count":   "-1\n",
		"too few lines":    "2\n1 2 3\n",
		"too many lines":   "1\n1 2 3\n4 5 6\n",
		"short line":       "1\n1 2\n",
		"non numeric":      "1\n1 x 3\n",
		"negative release": "1\n-1 2 3\n",
		"zero processing":  "1\n0 0 3\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := jobs.Parse(strings.NewReader(in))
			require.ErrorIs(t, err, jobs.ErrMalformedInstance)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("2\n0 3 0\n0 2 0\n"), 0o600))

	s, err := jobs.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	_, err = jobs.Load(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}
