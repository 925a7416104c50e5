package installer

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oshokin/plastic-installer/internal/client/plastic"
	"github.com/oshokin/plastic-installer/internal/config"
	"github.com/oshokin/plastic-installer/internal/logger"
	"github.com/oshokin/plastic-installer/internal/service/release"
)

// Service installs or upgrades the version control system from published archives.
type Service interface {
	// Run executes the full installation pipeline, from release discovery to file generation.
	Run(ctx context.Context) error
	// PrintInstallSummary prints a formatted summary of the installation.
	PrintInstallSummary(ctx context.Context)
}

// ServiceImpl implements the installation pipeline with dependency-injected components.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// plasticClient fetches release pages and archives.
	plasticClient plastic.Client
	// releaseFetcher resolves the latest published release of a channel.
	releaseFetcher release.Fetcher
	// templateManager renders the generated launcher and desktop files.
	templateManager TemplateManager
	// privilegeChecker reports whether the process has administrator rights.
	privilegeChecker PrivilegeChecker
	// processLister lists running processes for the pre-upgrade warning.
	processLister ProcessLister
	// channel is the release channel to install from.
	channel plastic.Channel
	// upgradePolicy controls how a prior installation is treated.
	upgradePolicy UpgradePolicy
	// stats tracks installation statistics for the current run.
	stats *InstallStatistics
	// statsMutex protects concurrent access to statistics.
	statsMutex *sync.Mutex
}

// NewService creates an installation service instance with dependency-injected components.
// The release channel and upgrade policy are derived from the configuration.
func NewService(
	cfg *config.Config,
	plasticClient plastic.Client,
	releaseFetcher release.Fetcher,
	templateManager TemplateManager,
	privilegeChecker PrivilegeChecker,
	processLister ProcessLister,
) Service {
	channel := plastic.ChannelStable
	if cfg.Labs {
		channel = plastic.ChannelLabs
	}

	upgradePolicy := AllowUpgrade
	if cfg.NoUpgrade {
		upgradePolicy = RefuseIfInstalled
	}

	return &ServiceImpl{
		cfg:              cfg,
		plasticClient:    plasticClient,
		releaseFetcher:   releaseFetcher,
		templateManager:  templateManager,
		privilegeChecker: privilegeChecker,
		processLister:    processLister,
		channel:          channel,
		upgradePolicy:    upgradePolicy,
		stats:            new(InstallStatistics),
		statsMutex:       new(sync.Mutex),
	}
}

// Run executes the full installation pipeline, from release discovery to file generation.
func (s *ServiceImpl) Run(ctx context.Context) error {
	// Record start time and dry-run mode for statistics.
	s.statsMutex.Lock()
	s.stats.StartTime = time.Now()
	s.stats.IsDryRun = s.cfg.DryRun
	s.statsMutex.Unlock()

	defer func() {
		s.statsMutex.Lock()
		s.stats.EndTime = time.Now()
		s.statsMutex.Unlock()
	}()

	// Everything the pipeline writes requires administrator rights,
	// so fail before touching the network.
	if !s.cfg.DryRun && !s.privilegeChecker.IsElevated() {
		return fmt.Errorf("%w: re-run the installer as root", ErrInsufficientPrivileges)
	}

	installedVersion, isInstalled := s.detectInstallation(ctx)
	if isInstalled {
		if s.upgradePolicy == RefuseIfInstalled {
			return fmt.Errorf("%w: version '%s' at '%s'",
				ErrAlreadyInstalled, installedVersion, s.cfg.InstallPath)
		}

		logger.Infof(ctx, "Found installed version '%s' at '%s'", installedVersion, s.cfg.InstallPath)
	}

	s.statsMutex.Lock()
	s.stats.PreviousVersion = installedVersion
	s.stats.IsUpgrade = isInstalled
	s.statsMutex.Unlock()

	logger.Infof(ctx, "Looking for the latest release on the '%s' channel...", s.channel)

	releaseInfo, err := s.releaseFetcher.FetchLatestRelease(ctx, s.channel)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReleaseNotFound, err)
	}

	logger.Infof(ctx, "Latest '%s' release is '%s'", s.channel, releaseInfo.Version)

	// Nothing to do when the latest release is already on disk.
	if isInstalled && installedVersion == releaseInfo.Version {
		logger.Infof(ctx, "Version '%s' is already installed, nothing to do", installedVersion)

		return nil
	}

	if isInstalled {
		s.warnAboutRunningProcesses(ctx)
	}

	if s.cfg.DryRun {
		return s.previewInstallation(ctx, releaseInfo, isInstalled)
	}

	if err = s.installRelease(ctx, releaseInfo); err != nil {
		return err
	}

	launchersLinked, err := s.placeLaunchers(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	generatedFiles, err := s.generateFiles(ctx, releaseInfo.Version)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	s.statsMutex.Lock()
	s.stats.InstalledVersion = releaseInfo.Version
	s.stats.LaunchersLinked = launchersLinked
	s.stats.GeneratedFiles = generatedFiles
	s.statsMutex.Unlock()

	return nil
}

// installRelease downloads and extracts the archives of a release.
func (s *ServiceImpl) installRelease(ctx context.Context, releaseInfo *release.Info) error {
	components := []struct {
		archiveURL  string
		folderName  string
		description string
	}{
		{releaseInfo.ClientURL, clientFolderName, "Downloading client"},
	}

	if s.cfg.InstallServer {
		components = append(components, struct {
			archiveURL  string
			folderName  string
			description string
		}{releaseInfo.ServerURL, serverFolderName, "Downloading server"})
	}

	for _, component := range components {
		archivePath, bytesDownloaded, err := s.downloadArchive(ctx, component.archiveURL, component.description)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDownloadFailed, err)
		}

		s.recordArchiveDownloaded(bytesDownloaded)

		destination := filepath.Join(s.cfg.InstallPath, component.folderName)

		logger.Infof(ctx, "Extracting archive to '%s'...", destination)

		filesExtracted, err := extractZipArchive(archivePath, destination)
		if err != nil {
			os.Remove(archivePath) //nolint:errcheck,gosec // Cleanup of a temporary file, error is not critical.

			return fmt.Errorf("%w: %w", ErrExtractionFailed, err)
		}

		s.recordFilesExtracted(filesExtracted)

		// The archive served its purpose.
		if err = os.Remove(archivePath); err != nil {
			logger.Warnf(ctx, "Failed to remove temporary archive '%s': %v", archivePath, err)
		}
	}

	return nil
}

// previewInstallation reports what a regular run would do without touching the filesystem.
func (s *ServiceImpl) previewInstallation(
	ctx context.Context,
	releaseInfo *release.Info,
	isInstalled bool,
) error {
	action := "install"
	if isInstalled {
		action = "upgrade to"
	}

	logger.Infof(ctx, "[DRY-RUN] Would %s version '%s' at '%s'", action, releaseInfo.Version, s.cfg.InstallPath)
	logger.Infof(ctx, "[DRY-RUN] Would download client archive: %s", releaseInfo.ClientURL)

	if s.cfg.InstallServer {
		logger.Infof(ctx, "[DRY-RUN] Would download server archive: %s", releaseInfo.ServerURL)
	}

	logger.Infof(ctx, "[DRY-RUN] Would place launcher symlinks in '%s'", s.cfg.BinPath)
	logger.Infof(ctx, "[DRY-RUN] Would generate launcher script and desktop entry")

	s.statsMutex.Lock()
	s.stats.InstalledVersion = releaseInfo.Version
	s.statsMutex.Unlock()

	return nil
}
