package installer

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/oshokin/plastic-installer/internal/logger"
	"github.com/oshokin/plastic-installer/internal/utils"
)

const (
	// clientFolderName is the subfolder holding the client bundle.
	clientFolderName = "client"
	// serverFolderName is the subfolder holding the server bundle.
	serverFolderName = "server"
	// cmBinaryName is the client's command-line binary, used as installation marker.
	cmBinaryName = "cm"
	// cmVersionArgument asks the client binary for its version.
	cmVersionArgument = "version"
)

// detectInstallation probes the install path for a prior installation.
// It returns the installed version when one can be determined; an installation
// with an undeterminable version is still reported as installed.
func (s *ServiceImpl) detectInstallation(ctx context.Context) (installedVersion string, isInstalled bool) {
	cmPath := filepath.Join(s.cfg.InstallPath, clientFolderName, cmBinaryName)

	exists, err := utils.IsFileExist(cmPath)
	if err != nil {
		logger.Warnf(ctx, "Unable to probe prior installation at '%s': %v", cmPath, err)
		return "", false
	}

	if !exists {
		return "", false
	}

	// The manifest is the cheap source; it survives as long as the tree does.
	manifest, err := s.readManifest()
	if err == nil && manifest.Version != "" {
		return manifest.Version, true
	}

	// Fall back to asking the installed client itself.
	installedVersion, err = s.queryInstalledVersion(ctx, cmPath)
	if err != nil {
		logger.Debugf(ctx, "Unable to query installed version: %v", err)
		return "", true
	}

	return installedVersion, true
}

// queryInstalledVersion runs the installed client binary to read its version.
func (s *ServiceImpl) queryInstalledVersion(ctx context.Context, cmPath string) (string, error) {
	output, err := exec.CommandContext(ctx, cmPath, cmVersionArgument).Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(output)), nil
}
