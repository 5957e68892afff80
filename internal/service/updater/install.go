package updater

import (
	"context"
	"errors"
	"os"

	"github.com/oshokin/nvim-updater/internal/fault"
	"github.com/oshokin/nvim-updater/internal/logger"
)

// DetectInstallation reports whether both the artifact and its version marker exist.
// A path that cannot be checked, as opposed to one that is absent, is an error.
func DetectInstallation(ctx context.Context, artifactPath, markerPath string) (bool, error) {
	artifactExists, err := exists(artifactPath)
	if err != nil {
		return false, err
	}

	markerExists, err := exists(markerPath)
	if err != nil {
		return false, err
	}

	if !artifactExists || !markerExists {
		logger.WarnKV(ctx, "No (valid) Neovim installation found",
			"artifact_found", artifactExists, "marker_found", markerExists)

		return false, nil
	}

	return true, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fault.Wrap(fault.KindIO, "access "+path, err)
	}
}
