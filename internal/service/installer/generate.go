package installer

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/plastic-installer/internal/constants"
	"github.com/oshokin/plastic-installer/internal/logger"
)

const (
	launcherScriptName = "plastic"
	desktopEntryName   = "plastic-scm" + constants.ExtensionDesktop
	manifestName       = "installer" + constants.ExtensionYAML
)

// generateFiles writes the launcher wrapper script, the desktop entry
// and the installation manifest. Returns the paths of the written files.
func (s *ServiceImpl) generateFiles(ctx context.Context, version string) ([]string, error) {
	data := &GeneratedFileData{
		Version:     version,
		InstallPath: s.cfg.InstallPath,
		Binary:      "gtkplastic",
	}

	launcherScript, err := s.templateManager.GetLauncherScript(data)
	if err != nil {
		return nil, err
	}

	desktopEntry, err := s.templateManager.GetDesktopEntry(data)
	if err != nil {
		return nil, err
	}

	launcherScriptPath := filepath.Join(s.cfg.BinPath, launcherScriptName)
	if err = os.WriteFile(launcherScriptPath,
		[]byte(launcherScript), constants.ExecutableFilePermissions); err != nil {
		return nil, err
	}

	generatedFiles := []string{launcherScriptPath}

	if err = os.MkdirAll(s.cfg.ApplicationsPath, constants.DefaultFolderPermissions); err != nil {
		return generatedFiles, err
	}

	desktopEntryPath := filepath.Join(s.cfg.ApplicationsPath, desktopEntryName)
	if err = os.WriteFile(desktopEntryPath,
		[]byte(desktopEntry), constants.DefaultFilePermissions); err != nil {
		return generatedFiles, err
	}

	generatedFiles = append(generatedFiles, desktopEntryPath)

	manifestPath, err := s.writeManifest(version)
	if err != nil {
		return generatedFiles, err
	}

	generatedFiles = append(generatedFiles, manifestPath)

	logger.Debugf(ctx, "Generated files: %v", generatedFiles)

	return generatedFiles, nil
}

// writeManifest records the installed version and channel next to the installation.
func (s *ServiceImpl) writeManifest(version string) (string, error) {
	manifest := &Manifest{
		Version:         version,
		Channel:         string(s.channel),
		InstalledAt:     time.Now(),
		ServerInstalled: s.cfg.InstallServer,
	}

	contents, err := yaml.Marshal(manifest)
	if err != nil {
		return "", err
	}

	manifestPath := filepath.Join(s.cfg.InstallPath, manifestName)
	if err = os.WriteFile(manifestPath, contents, constants.DefaultFilePermissions); err != nil {
		return "", err
	}

	return manifestPath, nil
}

// readManifest loads the manifest written by a previous run, if any.
func (s *ServiceImpl) readManifest() (*Manifest, error) {
	contents, err := os.ReadFile(filepath.Join(s.cfg.InstallPath, manifestName))
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err = yaml.Unmarshal(contents, &manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}
