// Package artifact locates model artifacts staged by the orchestration
// layer, extracting archived bundles in place when needed.
package artifact

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"house-price-pipeline/internal/domain"
)

const (
	// ModelExt is the native serialization extension the resolver searches
	// for.
	ModelExt = ".gob"
	// ArchiveExt is the extension of archived model bundles.
	ArchiveExt = ".tar.gz"
)

// Resolve returns the path of a loadable model file inside modelDir.
// When no model file is present it falls back to extracting the first
// archived bundle found at the top level of modelDir, then searches again.
// A second call after extraction finds the model directly and does not
// re-extract.
func Resolve(modelDir string) (string, error) {
	if p := findModel(modelDir); p != "" {
		log.WithField("path", p).Debug("found existing model file")
		return p, nil
	}

	archives, err := findArchives(modelDir)
	if err != nil {
		return "", err
	}
	if len(archives) == 0 {
		return "", fmt.Errorf("no %s or %s files in %s: %w",
			ModelExt, ArchiveExt, modelDir, domain.ErrModelNotFound)
	}

	tarPath := archives[0]
	log.WithField("archive", tarPath).Info("no model file found, extracting archive")
	if err := extract(tarPath, modelDir); err != nil {
		return "", fmt.Errorf("extract %s: %w", tarPath, err)
	}

	if p := findModel(modelDir); p != "" {
		log.WithField("path", p).Info("found model file after extraction")
		return p, nil
	}
	return "", fmt.Errorf("after extracting %s, no %s file in %s: %w",
		tarPath, ModelExt, modelDir, domain.ErrModelNotFound)
}

// findModel walks modelDir recursively and returns the first model file in
// sorted path order, or "" when there is none. Unreadable entries count as
// absent.
func findModel(modelDir string) string {
	var candidates []string
	_ = filepath.WalkDir(modelDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ModelExt) {
			candidates = append(candidates, path)
		}
		return nil
	})
	if len(candidates) == 0 {
		return ""
	}
	sort.Strings(candidates)
	return candidates[0]
}

// findArchives lists top-level archives in modelDir, sorted.
func findArchives(modelDir string) ([]string, error) {
	entries, err := os.ReadDir(modelDir)
	if err != nil {
		return nil, fmt.Errorf("read model dir %s: %w", modelDir, err)
	}
	var archives []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ArchiveExt) {
			archives = append(archives, filepath.Join(modelDir, e.Name()))
		}
	}
	sort.Strings(archives)
	return archives, nil
}

// extract unpacks a gzipped tarball into dir, overwriting existing files.
// Archives come from the trainer and are trusted, but entries escaping dir
// are still rejected.
func extract(tarPath, dir string) error {
	f, err := os.Open(tarPath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target := filepath.Join(dir, hdr.Name)
		rel, err := filepath.Rel(dir, target)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes %s", hdr.Name, dir)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.Create(target)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		}
	}
}
