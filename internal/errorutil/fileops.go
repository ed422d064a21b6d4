package errorutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileOpError provides structured error information for file operations
type FileOpError struct {
	Operation string
	Path      string
	Err       error
}

func (e *FileOpError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Operation, e.Path, e.Err)
}

func (e *FileOpError) Unwrap() error {
	return e.Err
}

// ValidateFileReadable checks that filePath names a regular file that can be
// opened for reading. A missing file unwraps to fs.ErrNotExist.
func ValidateFileReadable(filePath, operation string) error {
	if filePath == "" {
		return &FileOpError{Operation: operation, Path: filePath, Err: errors.New("empty file path provided")}
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileOpError{Operation: operation, Path: filePath, Err: fs.ErrNotExist}
		}
		return &FileOpError{Operation: operation, Path: filePath, Err: fmt.Errorf("cannot access file: %w", err)}
	}
	if info.IsDir() {
		return &FileOpError{Operation: operation, Path: filePath, Err: errors.New("path is a directory, expected file")}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return &FileOpError{Operation: operation, Path: filePath, Err: fmt.Errorf("cannot open file for reading: %w", err)}
	}
	file.Close()

	return nil
}

// ValidateDirectory checks if a directory exists and optionally creates it
func ValidateDirectory(dirPath, operation string, createIfMissing bool) error {
	if dirPath == "" {
		return &FileOpError{Operation: operation, Path: dirPath, Err: errors.New("empty directory path provided")}
	}

	info, err := os.Stat(dirPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return &FileOpError{Operation: operation, Path: dirPath, Err: fmt.Errorf("cannot access directory: %w", err)}
		}
		if !createIfMissing {
			return &FileOpError{Operation: operation, Path: dirPath, Err: fs.ErrNotExist}
		}
		if mkdirErr := os.MkdirAll(dirPath, 0755); mkdirErr != nil {
			return &FileOpError{Operation: operation, Path: dirPath, Err: fmt.Errorf("failed to create directory: %w", mkdirErr)}
		}
		return nil
	}

	if !info.IsDir() {
		return &FileOpError{Operation: operation, Path: dirPath, Err: errors.New("path exists but is not a directory")}
	}
	return nil
}

// SafeWriteFile writes data to filePath, creating the parent directory when
// createDir is set. Existing files are refused unless overwrite is set.
func SafeWriteFile(filePath string, data []byte, operation string, createDir, overwrite bool) error {
	if createDir {
		if err := ValidateDirectory(filepath.Dir(filePath), operation, true); err != nil {
			return err
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	file, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		return &FileOpError{Operation: operation, Path: filePath, Err: fmt.Errorf("failed to open file: %w", err)}
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return &FileOpError{Operation: operation, Path: filePath, Err: fmt.Errorf("failed to write file: %w", err)}
	}
	if err := file.Close(); err != nil {
		return &FileOpError{Operation: operation, Path: filePath, Err: fmt.Errorf("failed to close file: %w", err)}
	}
	return nil
}
