package project

import (
	"os"
	"path/filepath"
)

// DefaultMaxFileSize bounds the size of a project file read by ReadFile.
const DefaultMaxFileSize = 64 * 1024 * 1024

// ReadFile reads a project file from disk. A non-positive maxSize uses
// DefaultMaxFileSize.
func ReadFile(path string, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &PathError{Op: "open", Path: path, Err: ErrIsDirectory}
	}
	if info.Size() > maxSize {
		return nil, &PathError{Op: "open", Path: path, Err: ErrFileTooLarge}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}
	return data, nil
}

// WriteFile replaces path with data. The data is written to a temporary
// file in the same directory and renamed over path, so readers never see a
// partially written project.
func WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &PathError{Op: "write", Path: path, Err: err}
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return &PathError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return &PathError{Op: "write", Path: path, Err: err}
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return &PathError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return &PathError{Op: "write", Path: path, Err: err}
	}
	return nil
}
