package utils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/lepinkainen/vocprep/types"
)

// Swappable so tests can simulate rename failures.
var renameFunc = os.Rename

// notFoundOr converts missing-path errors to types.NotFoundError and leaves the rest alone
func notFoundOr(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &types.NotFoundError{Path: path, Err: err}
	}
	return err
}

// Exists reports whether path exists
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// EnsureDir creates dir and its parents; existing directories are fine
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &types.WriteError{Path: dir, Err: err}
	}
	return nil
}

// RemoveTree deletes dir and everything below it
func RemoveTree(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return &types.WriteError{Path: dir, Err: err}
	}
	return nil
}

// ListFiles returns the names of the regular files directly inside dir
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// unreadable counts as missing for callers deriving lists from it
		return nil, &types.NotFoundError{Path: dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// CopyFile copies src to dst and carries over the permission bits and
// modification time.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return notFoundOr(src, fmt.Errorf("open source: %w", err))
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return &types.WriteError{Path: dst, Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &types.WriteError{Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &types.WriteError{Path: dst, Err: err}
	}

	if err := os.Chtimes(dst, fi.ModTime(), fi.ModTime()); err != nil {
		return &types.WriteError{Path: dst, Err: err}
	}
	return nil
}

// WriteFileAtomic writes data to path through a temp file in the same
// directory followed by a rename, replacing any existing file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	if err := tmp.Chmod(0o644); err != nil && runtime.GOOS != "windows" {
		return &types.WriteError{Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}

	if err := renameFunc(tmpName, path); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	return nil
}
