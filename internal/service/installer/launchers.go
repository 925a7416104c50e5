package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/plastic-installer/internal/constants"
	"github.com/oshokin/plastic-installer/internal/logger"
	"github.com/oshokin/plastic-installer/internal/utils"
)

// clientLauncherNames are the client binaries exposed on PATH after installation.
//
//nolint:gochecknoglobals // This is an immutable list used as a constant.
var clientLauncherNames = []string{
	"clconfigureclient",
	"cm",
	"gtkplastic",
	"gtkmergetool",
	"plasticapi",
}

// placeLaunchers marks the extracted client binaries executable and exposes them
// on PATH through symlinks in the configured bin directory. Stale symlinks from
// a prior installation are replaced. Binaries absent from the bundle are skipped.
func (s *ServiceImpl) placeLaunchers(ctx context.Context) (int64, error) {
	binPathExists, err := utils.IsFolderExist(s.cfg.BinPath)
	if err != nil {
		return 0, err
	}

	if !binPathExists {
		return 0, fmt.Errorf("bin path '%s' is not a directory", s.cfg.BinPath)
	}

	var launchersLinked int64

	for _, name := range clientLauncherNames {
		launcherPath := filepath.Join(s.cfg.InstallPath, clientFolderName, name)

		exists, err := utils.IsFileExist(launcherPath)
		if err != nil {
			return launchersLinked, err
		}

		if !exists {
			logger.Debugf(ctx, "Launcher '%s' is not part of the bundle, skipping", name)
			continue
		}

		if err = os.Chmod(launcherPath, constants.ExecutableFilePermissions); err != nil {
			return launchersLinked, err
		}

		symlinkPath := filepath.Join(s.cfg.BinPath, name)

		// Replace a stale symlink left by a prior installation.
		if err = os.Remove(symlinkPath); err != nil && !os.IsNotExist(err) {
			return launchersLinked, err
		}

		if err = os.Symlink(launcherPath, symlinkPath); err != nil {
			return launchersLinked, err
		}

		launchersLinked++
	}

	return launchersLinked, nil
}
