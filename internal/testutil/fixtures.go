// Package testutil provides shared filesystem fixtures for the pipeline
// tests: CSV channel directories and archived model bundles.
package testutil

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// HousingHeader is the CSV header of the fixture tables.
const HousingHeader = "size_sqft,num_rooms,age_years,price"

// HousingRows is a six-row housing table whose feature columns are affinely
// independent and whose prices satisfy exactly
// price = 100*size_sqft + 5000*num_rooms - 200*age_years + 10000,
// so a correct fit reproduces it with zero error.
var HousingRows = [][4]float64{
	{1000, 2, 5, 119000},
	{1500, 3, 4, 174200},
	{2000, 4, 8, 228400},
	{1200, 2, 15, 137000},
	{1800, 3, 2, 204600},
	{2500, 5, 10, 283000},
}

// HousingCSV renders rows as a CSV table with the fixture header.
func HousingCSV(rows [][4]float64) string {
	var b strings.Builder
	b.WriteString(HousingHeader + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%g,%g,%g,%g\n", r[0], r[1], r[2], r[3])
	}
	return b.String()
}

// WriteCSV writes one CSV part into dir and returns its path.
func WriteCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TarGz writes a gzipped tarball containing the given files, in sorted name
// order.
func TarGz(t *testing.T, path string, files map[string][]byte) {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for _, name := range names {
		body := files[name]
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write(body)
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}
