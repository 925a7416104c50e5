package installer

import "errors"

// Failure kinds of the installation pipeline. Every step failure wraps exactly
// one of these sentinels so callers can map it to a distinct exit status.
var (
	// ErrInsufficientPrivileges indicates the installer is not running with administrator rights.
	ErrInsufficientPrivileges = errors.New("administrator privileges are required")
	// ErrAlreadyInstalled indicates a prior installation is present and upgrades are refused.
	ErrAlreadyInstalled = errors.New("an installation is already present")
	// ErrReleaseNotFound indicates the latest release could not be determined from the downloads page.
	ErrReleaseNotFound = errors.New("unable to determine the latest release")
	// ErrDownloadFailed indicates the release archive could not be fetched.
	ErrDownloadFailed = errors.New("failed to download release archive")
	// ErrExtractionFailed indicates the release archive could not be unpacked.
	ErrExtractionFailed = errors.New("failed to extract release archive")
	// ErrFilesystem indicates a filesystem operation failed (permissions, space, bad paths).
	ErrFilesystem = errors.New("filesystem operation failed")

	// ErrIncompleteDownload indicates the downloaded archive size doesn't match the expected size.
	ErrIncompleteDownload = errors.New("incomplete download")
	// ErrUnsafeArchivePath indicates an archive entry would be written outside the destination directory.
	ErrUnsafeArchivePath = errors.New("archive entry escapes destination directory")
)

// Exit codes per failure kind, for scripting callers.
const (
	// ExitCodeSuccess is returned when the installation completes.
	ExitCodeSuccess = 0
	// ExitCodeUnknown is returned for failures outside the known taxonomy.
	ExitCodeUnknown = 1
	// ExitCodeInsufficientPrivileges is returned when administrator rights are missing.
	ExitCodeInsufficientPrivileges = 2
	// ExitCodeAlreadyInstalled is returned when a prior installation blocks the run.
	ExitCodeAlreadyInstalled = 3
	// ExitCodeReleaseNotFound is returned when release discovery fails.
	ExitCodeReleaseNotFound = 4
	// ExitCodeDownloadFailed is returned when the archive download fails.
	ExitCodeDownloadFailed = 5
	// ExitCodeExtractionFailed is returned when archive extraction fails.
	ExitCodeExtractionFailed = 6
	// ExitCodeFilesystem is returned on filesystem failures.
	ExitCodeFilesystem = 7
)

// ExitCode maps an installation error to its process exit status.
// A nil error maps to ExitCodeSuccess.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrInsufficientPrivileges):
		return ExitCodeInsufficientPrivileges
	case errors.Is(err, ErrAlreadyInstalled):
		return ExitCodeAlreadyInstalled
	case errors.Is(err, ErrReleaseNotFound):
		return ExitCodeReleaseNotFound
	case errors.Is(err, ErrDownloadFailed):
		return ExitCodeDownloadFailed
	case errors.Is(err, ErrExtractionFailed):
		return ExitCodeExtractionFailed
	case errors.Is(err, ErrFilesystem):
		return ExitCodeFilesystem
	default:
		return ExitCodeUnknown
	}
}
