// Package atomicfile writes record and configuration files without leaving
// torn content behind if the process dies mid-write.
package atomicfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPerm is used when no mode is given and the target does not exist yet.
const DefaultPerm os.FileMode = 0o644

// WriteFile replaces path with data by writing a sibling temp file and
// renaming it into place.
//
// If perm is 0 the existing file's mode is preserved, falling back to
// DefaultPerm for new files.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultPerm
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode().Perm()
		}
	}

	tmpPath, err := writeTemp(path, data, perm)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Windows refuses to rename over an existing file.
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("rename temp file: %w", err)
		}
	}
	return nil
}

// CreateNew writes data to path only if path does not exist yet. The
// returned error wraps os.ErrExist when the file is already there.
//
// The content is staged in a temp file and hard-linked into place, so the
// existence check and the write happen in one filesystem operation.
func CreateNew(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultPerm
	}

	tmpPath, err := writeTemp(path, data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	if err := os.Link(tmpPath, path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("create %s: %w", filepath.Base(path), os.ErrExist)
		}
		// Filesystems without hard links: fall back to O_EXCL.
		return createExclusive(path, data, perm)
	}
	return nil
}

func createExclusive(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// writeTemp stages data next to path and returns the temp file name. The
// caller owns the temp file afterwards.
func writeTemp(path string, data []byte, perm os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	fail := func(step string, err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%s temp file: %w", step, err)
	}

	// Best-effort; some filesystems reject chmod.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmpPath, nil
}
