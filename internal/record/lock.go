package record

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aidanlsb/dotadr/internal/adrerr"
)

// LockFileName is the advisory lock file kept in an ADR directory.
const LockFileName = ".dotadr.lock"

// Lock takes a non-blocking exclusive lock on dir so that computing the next
// id and writing the record cannot interleave with another invocation. The
// returned function releases it.
func (r *Repository) Lock(dir string) (func() error, error) {
	if err := requireDir(dir); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, LockFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := lockFileExclusiveNonBlocking(file); err != nil {
		_ = file.Close()
		if isWouldBlockError(err) {
			return nil, adrerr.Conflict(adrerr.CodeDirectoryLocked,
				"%s is locked by another dotadr process; try again", dir)
		}
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	r.logger.Debug("locked directory", slog.String("directory", dir))

	return func() error {
		unlockErr := unlockFile(file)
		closeErr := file.Close()
		r.logger.Debug("unlocked directory", slog.String("directory", dir))
		if unlockErr != nil {
			return fmt.Errorf("unlock %s: %w", path, unlockErr)
		}
		return closeErr
	}, nil
}
