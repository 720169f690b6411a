package site

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// isExcluded reports whether relPath (slash separated) matches any pattern.
func isExcluded(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}

// copyFile copies src to dst, creating dst's parent directories.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// packAssets copies the assets tree into outDir, skipping excluded paths and
// Sass sources. It returns the number of files copied and the paths skipped
// as Sass.
func packAssets(assetsDir, outDir string, exclude []string) (int, []string, error) {
	if _, err := os.Stat(assetsDir); os.IsNotExist(err) {
		return 0, nil, nil
	}

	copied := 0
	var skipped []string
	err := filepath.WalkDir(assetsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(assetsDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && isExcluded(rel+"/", exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if isExcluded(rel, exclude) {
			return nil
		}
		if strings.HasSuffix(rel, ".scss") {
			skipped = append(skipped, rel)
			return nil
		}

		if err := copyFile(path, filepath.Join(outDir, filepath.FromSlash(rel))); err != nil {
			return fmt.Errorf("copying asset %s: %w", rel, err)
		}
		copied++
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return copied, skipped, nil
}
