// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WalkFiles returns every file below root, depth-first in directory listing
// order. Directories are descended into but never returned, and symlinks are
// followed. Any error aborts the whole walk and no partial result is returned.
func WalkFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", root, err)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())

		isDir, err := isDirectory(path, entry)
		if err != nil {
			return nil, err
		}
		if !isDir {
			files = append(files, path)
			continue
		}

		nested, err := WalkFiles(path)
		if err != nil {
			return nil, err
		}
		files = append(files, nested...)
	}

	return files, nil
}

// isDirectory resolves symlinks so linked directories are walked too.
func isDirectory(path string, entry fs.DirEntry) (bool, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("resolving symlink %s: %w", path, err)
	}
	return info.IsDir(), nil
}

// FilterByExtension keeps the paths whose file name ends with extension,
// preserving their order.
func FilterByExtension(paths []string, extension string) []string {
	var matched []string
	for _, p := range paths {
		if strings.HasSuffix(filepath.Base(p), extension) {
			matched = append(matched, p)
		}
	}
	return matched
}

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	files, err := WalkFiles(rootPath)
	if err != nil {
		return nil, err
	}
	return FilterByExtension(files, extension), nil
}
