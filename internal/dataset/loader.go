// Package dataset loads the tabular housing data handed over by the
// orchestration layer, either as a single CSV file or as a channel directory
// of CSV parts.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	log "github.com/sirupsen/logrus"

	"house-price-pipeline/internal/domain"
)

// Table is the raw tabular view of the loaded data. No schema validation
// happens at load time; column selection and float conversion happen in
// Select.
type Table struct {
	df dataframe.DataFrame
}

// Load reads path into a single table. A directory is treated as a channel
// of CSV parts concatenated row-wise in sorted filename order; any other
// path is parsed as one CSV file.
func Load(path string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat data path %s: %w", path, err)
	}
	if info.IsDir() {
		return loadDir(path)
	}
	return loadFile(path)
}

func loadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", path, df.Err)
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("%s has no rows: %w", path, domain.ErrNoDataFound)
	}
	return &Table{df: df}, nil
}

func loadDir(dir string) (*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir %s: %w", dir, err)
	}

	var parts []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		parts = append(parts, e.Name())
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("directory %s: %w", dir, domain.ErrNoDataFound)
	}
	// Sorted so concatenation order does not depend on the platform's
	// directory listing order.
	sort.Strings(parts)

	var merged dataframe.DataFrame
	for i, name := range parts {
		part, err := loadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if i == 0 {
			merged = part.df
		} else {
			merged = merged.RBind(part.df)
		}
	}
	if merged.Err != nil {
		return nil, fmt.Errorf("concatenate csv parts in %s: %w", dir, merged.Err)
	}

	log.WithFields(log.Fields{
		"dir":   dir,
		"parts": len(parts),
		"rows":  merged.Nrow(),
	}).Debug("loaded csv channel")

	return &Table{df: merged}, nil
}

func (t *Table) Rows() int {
	return t.df.Nrow()
}

func (t *Table) Columns() []string {
	return t.df.Names()
}

// Select pulls the feature matrix and target vector out of the table. A
// missing column fails here, not at load time.
func (t *Table) Select(features []string, target string) (*domain.Dataset, error) {
	present := make(map[string]bool, len(t.df.Names()))
	for _, name := range t.df.Names() {
		present[name] = true
	}
	for _, col := range append(append([]string{}, features...), target) {
		if !present[col] {
			return nil, fmt.Errorf("column %q: %w", col, domain.ErrMissingColumn)
		}
	}

	rows := t.df.Nrow()
	x := make([][]float64, rows)
	for i := range x {
		x[i] = make([]float64, len(features))
	}
	for j, col := range features {
		for i, v := range t.df.Col(col).Float() {
			x[i][j] = v
		}
	}

	return &domain.Dataset{
		Features: x,
		Target:   t.df.Col(target).Float(),
	}, nil
}
