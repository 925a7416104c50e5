package installer

import "time"

// UpgradePolicy controls how the installer treats a prior installation.
type UpgradePolicy uint8

const (
	// AllowUpgrade replaces an existing installation with the newest release.
	AllowUpgrade UpgradePolicy = iota
	// RefuseIfInstalled aborts the run when any prior installation is detected.
	RefuseIfInstalled
)

// String returns a human-readable name of the policy.
func (p UpgradePolicy) String() string {
	if p == RefuseIfInstalled {
		return "refuse if installed"
	}

	return "allow upgrade"
}

// Manifest records what the installer placed on disk.
// It is written next to the extracted tree and read back on subsequent runs
// to detect the installed version without invoking the client binary.
type Manifest struct {
	// Version is the installed release version identifier.
	Version string `yaml:"version"`
	// Channel is the release channel the version was taken from.
	Channel string `yaml:"channel"`
	// InstalledAt is the completion time of the installation.
	InstalledAt time.Time `yaml:"installed_at"`
	// ServerInstalled indicates whether the server bundle was installed.
	ServerInstalled bool `yaml:"server_installed"`
}

// GeneratedFileData is the template input for generated launcher and desktop files.
// It carries only values derived from the chosen installation path and version.
type GeneratedFileData struct {
	// Version is the installed release version identifier.
	Version string
	// InstallPath is the installation directory.
	InstallPath string
	// Binary is the name of the client binary the launcher wrapper executes.
	Binary string
}

// InstallStatistics tracks what the current run did, for the final summary.
type InstallStatistics struct {
	// StartTime is when the run started.
	StartTime time.Time
	// EndTime is when the run finished.
	EndTime time.Time
	// PreviousVersion is the version found on disk before the run, if any.
	PreviousVersion string
	// InstalledVersion is the version placed on disk by the run.
	InstalledVersion string
	// ArchivesDownloaded counts fetched archives.
	ArchivesDownloaded int64
	// TotalBytesDownloaded counts downloaded archive bytes.
	TotalBytesDownloaded int64
	// FilesExtracted counts files written during extraction.
	FilesExtracted int64
	// LaunchersLinked counts launcher symlinks created or refreshed.
	LaunchersLinked int64
	// GeneratedFiles lists the emitted launcher/config file paths.
	GeneratedFiles []string
	// IsUpgrade indicates whether the run replaced a prior installation.
	IsUpgrade bool
	// IsDryRun indicates whether the run only previewed its actions.
	IsDryRun bool
}
