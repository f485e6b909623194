// Package corpus scans the source-document directory for ingestable files.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AdeenoAi/fdabc/internal/decode"
)

// SourceFile is one ingestable file found during a scan.
type SourceFile struct {
	Path    string // absolute path
	RelPath string // path relative to the corpus root, slash-separated
	Name    string
	Size    int64
}

// Scan walks the corpus root and returns every supported file, skipping
// hidden files and directories.
func Scan(root string) ([]SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("corpus directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus path is not a directory: %s", root)
	}

	var files []SourceFile
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") {
			if info.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !decode.IsSupported(name) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, SourceFile{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			Name:    name,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	return files, nil
}
