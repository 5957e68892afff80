package marker

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/oshokin/nvim-updater/internal/config"
	"github.com/oshokin/nvim-updater/internal/domain/release"
	"github.com/oshokin/nvim-updater/internal/fault"
)

// Repository defines persistence operations for the current version marker.
type Repository interface {
	ReadCurrent(ctx context.Context, markerExists bool) (*semver.Version, error)
	WriteCurrent(ctx context.Context, v *semver.Version) error
}

// FileRepository persists the current version as plain text on disk.
type FileRepository struct {
	// path is the filesystem location of the marker file.
	path string
	// mu serializes access to the marker file within one process.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes the marker at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// ReadCurrent returns the recorded version.
// When markerExists is false no file is touched and the "none installed" sentinel is returned.
func (r *FileRepository) ReadCurrent(_ context.Context, markerExists bool) (*semver.Version, error) {
	if !markerExists {
		return release.NoneInstalled(), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fault.Wrap(fault.KindIO, "read version marker "+r.path, err)
	}

	current, err := release.ParseVersion(string(contents))
	if err != nil {
		return nil, fault.Wrap(fault.KindParse, "parse current version", err)
	}

	return current, nil
}

// WriteCurrent overwrites the marker with the canonical form of v.
func (r *FileRepository) WriteCurrent(_ context.Context, v *semver.Version) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.WriteFile(r.path, []byte(v.String()), config.DefaultFilePermissions); err != nil {
		return fault.Wrap(fault.KindIO, "write version marker "+r.path, err)
	}

	return nil
}
