package afp

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ReadDirContainer loads a directory tree as a flat-namespace container,
// keying files by their slash-separated path relative to root. This covers
// archives that were previously unpacked to disk.
func ReadDirContainer(root string) (*FileContainer, error) {
	files := make(map[string][]byte)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read container directory %s: %w", root, err)
	}
	return NewFileContainer(filepath.Base(root), files), nil
}

// IsZip reports whether data starts with a zip signature.
func IsZip(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

// ReadZipContainer loads a zip archive as a flat-namespace container. Zip is
// the interchange form flat archives travel in once unpacked from their
// original packaging.
func ReadZipContainer(source string, data []byte) (*FileContainer, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read zip container %s: %w", source, err)
	}
	files := make(map[string][]byte)
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in %s: %w", entry.Name, source, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s in %s: %w", entry.Name, source, err)
		}
		files[strings.TrimPrefix(entry.Name, "./")] = content
	}
	return NewFileContainer(source, files), nil
}
