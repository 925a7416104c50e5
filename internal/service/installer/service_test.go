package installer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/plastic-installer/internal/client/plastic"
	mock_plastic "github.com/oshokin/plastic-installer/internal/client/plastic/mocks"
	"github.com/oshokin/plastic-installer/internal/config"
	"github.com/oshokin/plastic-installer/internal/service/release"
	mock_release "github.com/oshokin/plastic-installer/internal/service/release/mocks"
)

const (
	testOldVersion = "11.0.16.7248"
	testNewVersion = "12.0.30.8002"
)

// testService bundles the service under test with its mocked dependencies.
type testService struct {
	service *ServiceImpl
	cfg     *config.Config
	client  *mock_plastic.MockClient
	fetcher *mock_release.MockFetcher
}

// newTestService wires a service instance around mocks and temporary directories.
func newTestService(t *testing.T, ctrl *gomock.Controller, cfg *config.Config) *testService {
	t.Helper()

	mockClient := mock_plastic.NewMockClient(ctrl)
	mockFetcher := mock_release.NewMockFetcher(ctrl)
	templateManager := NewTemplateManager(context.Background(), &config.Config{
		LauncherScriptTemplate: config.DefaultLauncherScriptTemplate,
		DesktopEntryTemplate:   config.DefaultDesktopEntryTemplate,
	})

	s := NewService(cfg, mockClient, mockFetcher, templateManager,
		fakePrivilegeChecker{elevated: true}, fakeProcessLister{})

	impl, ok := s.(*ServiceImpl)
	require.True(t, ok)

	return &testService{
		service: impl,
		cfg:     cfg,
		client:  mockClient,
		fetcher: mockFetcher,
	}
}

// newTestRelease builds release info pointing at synthetic archive URLs.
func newTestRelease(version string) *release.Info {
	return &release.Info{
		Version:   version,
		ClientURL: "https://www.plasticscm.com/downloadinstaller/" + version + "/plasticscm/linux/clientzip?Flags=None",
		ServerURL: "https://www.plasticscm.com/downloadinstaller/" + version + "/plasticscm/linux/serverzip?Flags=None",
	}
}

// writeInstalledTree fakes a prior installation with a manifest.
func writeInstalledTree(t *testing.T, cfg *config.Config, version string) {
	t.Helper()

	clientDir := filepath.Join(cfg.InstallPath, clientFolderName)
	require.NoError(t, os.MkdirAll(clientDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(clientDir, cmBinaryName), []byte("binary"), 0o755))

	manifest, err := yaml.Marshal(&Manifest{Version: version, Channel: string(plastic.ChannelStable)})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InstallPath, manifestName), manifest, 0o644))
}

// TestRun_RefusesWithoutElevation tests that nothing happens without administrator rights.
func TestRun_RefusesWithoutElevation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)

	ts := newTestService(t, ctrl, cfg)
	ts.service.privilegeChecker = fakePrivilegeChecker{elevated: false}

	// No release discovery, no downloads: the mocks expect zero calls.
	err := ts.service.Run(context.Background())
	require.ErrorIs(t, err, ErrInsufficientPrivileges)
	assert.Equal(t, ExitCodeInsufficientPrivileges, ExitCode(err))
}

// TestRun_NoUpgradeRefusesExistingInstallation tests the refuse-if-installed policy.
func TestRun_NoUpgradeRefusesExistingInstallation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)
	cfg.NoUpgrade = true

	writeInstalledTree(t, cfg, testOldVersion)

	ts := newTestService(t, ctrl, cfg)

	// The refusal must precede any network traffic: the mocks expect zero calls.
	err := ts.service.Run(context.Background())
	require.ErrorIs(t, err, ErrAlreadyInstalled)
	assert.Equal(t, ExitCodeAlreadyInstalled, ExitCode(err))
	assert.Contains(t, err.Error(), testOldVersion)
}

// TestRun_ReleaseDiscoveryFailure tests that a failed discovery aborts before any download.
func TestRun_ReleaseDiscoveryFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)

	ts := newTestService(t, ctrl, cfg)
	ts.fetcher.EXPECT().
		FetchLatestRelease(gomock.Any(), plastic.ChannelStable).
		Return(nil, errors.New("no version marker on the page"))

	err := ts.service.Run(context.Background())
	require.ErrorIs(t, err, ErrReleaseNotFound)
	assert.Equal(t, ExitCodeReleaseNotFound, ExitCode(err))

	// Nothing was installed.
	_, statErr := os.Stat(cfg.InstallPath)
	assert.True(t, os.IsNotExist(statErr))
}

// TestRun_LabsChannelSelection tests that the labs flag switches the release channel.
func TestRun_LabsChannelSelection(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)
	cfg.Labs = true

	ts := newTestService(t, ctrl, cfg)
	ts.fetcher.EXPECT().
		FetchLatestRelease(gomock.Any(), plastic.ChannelLabs).
		Return(nil, errors.New("boom"))

	err := ts.service.Run(context.Background())
	require.ErrorIs(t, err, ErrReleaseNotFound)
}

// TestRun_UpToDateShortCircuit tests that an up-to-date installation downloads nothing.
func TestRun_UpToDateShortCircuit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)

	writeInstalledTree(t, cfg, testNewVersion)

	ts := newTestService(t, ctrl, cfg)
	ts.fetcher.EXPECT().
		FetchLatestRelease(gomock.Any(), plastic.ChannelStable).
		Return(newTestRelease(testNewVersion), nil)

	// FetchArchive expects zero calls.
	err := ts.service.Run(context.Background())
	require.NoError(t, err)
}

// TestRun_DownloadFailure tests that a failed download leaves the filesystem untouched.
func TestRun_DownloadFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)
	cfg.InstallServer = false

	releaseInfo := newTestRelease(testNewVersion)

	ts := newTestService(t, ctrl, cfg)
	ts.fetcher.EXPECT().
		FetchLatestRelease(gomock.Any(), plastic.ChannelStable).
		Return(releaseInfo, nil)
	ts.client.EXPECT().
		FetchArchive(gomock.Any(), releaseInfo.ClientURL).
		Return(nil, errors.New("connection reset"))

	err := ts.service.Run(context.Background())
	require.ErrorIs(t, err, ErrDownloadFailed)
	assert.Equal(t, ExitCodeDownloadFailed, ExitCode(err))

	// No partial archive survives in the staging directory.
	entries, readErr := os.ReadDir(cfg.TempDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)

	// Nothing was extracted.
	_, statErr := os.Stat(filepath.Join(cfg.InstallPath, clientFolderName))
	assert.True(t, os.IsNotExist(statErr))
}

// TestRun_IncompleteDownload tests that a truncated body is rejected.
func TestRun_IncompleteDownload(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)
	cfg.InstallServer = false

	releaseInfo := newTestRelease(testNewVersion)
	body := []byte("truncated archive body")

	ts := newTestService(t, ctrl, cfg)
	ts.fetcher.EXPECT().
		FetchLatestRelease(gomock.Any(), plastic.ChannelStable).
		Return(releaseInfo, nil)
	ts.client.EXPECT().
		FetchArchive(gomock.Any(), releaseInfo.ClientURL).
		Return(&plastic.FetchArchiveResult{
			Body: io.NopCloser(bytes.NewReader(body)),
			// Announce more bytes than the body carries.
			TotalBytes: int64(len(body)) + 100,
		}, nil)

	err := ts.service.Run(context.Background())
	require.ErrorIs(t, err, ErrDownloadFailed)
	require.ErrorIs(t, err, ErrIncompleteDownload)

	// The partial archive was cleaned up.
	entries, readErr := os.ReadDir(cfg.TempDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

// TestRun_ExtractionFailure tests that a corrupt archive maps to the extraction failure kind.
func TestRun_ExtractionFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)
	cfg.InstallServer = false

	releaseInfo := newTestRelease(testNewVersion)
	body := []byte("this is not a zip archive")

	ts := newTestService(t, ctrl, cfg)
	ts.fetcher.EXPECT().
		FetchLatestRelease(gomock.Any(), plastic.ChannelStable).
		Return(releaseInfo, nil)
	ts.client.EXPECT().
		FetchArchive(gomock.Any(), releaseInfo.ClientURL).
		Return(&plastic.FetchArchiveResult{
			Body:       io.NopCloser(bytes.NewReader(body)),
			TotalBytes: int64(len(body)),
		}, nil)

	err := ts.service.Run(context.Background())
	require.ErrorIs(t, err, ErrExtractionFailed)
	assert.Equal(t, ExitCodeExtractionFailed, ExitCode(err))
}

// TestRun_SuccessfulInstallation tests the full pipeline from discovery to generated files.
//
//nolint:funlen // It's a comprehensive integration test covering the whole pipeline.
func TestRun_SuccessfulInstallation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)
	cfg.InstallServer = false

	releaseInfo := newTestRelease(testNewVersion)
	archive := buildZipArchive(t, []zipEntry{
		{name: "cm", content: "binary-cm", mode: 0o644},
		{name: "gtkplastic", content: "binary-gtkplastic", mode: 0o644},
		{name: "lib/libplastic.so", content: "library"},
	})

	ts := newTestService(t, ctrl, cfg)
	ts.fetcher.EXPECT().
		FetchLatestRelease(gomock.Any(), plastic.ChannelStable).
		Return(releaseInfo, nil)
	ts.client.EXPECT().
		FetchArchive(gomock.Any(), releaseInfo.ClientURL).
		Return(&plastic.FetchArchiveResult{
			Body:       io.NopCloser(bytes.NewReader(archive)),
			TotalBytes: int64(len(archive)),
		}, nil)

	err := ts.service.Run(context.Background())
	require.NoError(t, err)

	// The client bundle landed under the installation directory.
	content, err := os.ReadFile(filepath.Join(cfg.InstallPath, clientFolderName, "cm"))
	require.NoError(t, err)
	assert.Equal(t, "binary-cm", string(content))

	// Extracted binaries are executable even when the archive carried weaker bits.
	info, err := os.Stat(filepath.Join(cfg.InstallPath, clientFolderName, "cm"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	// Launcher symlinks point at the extracted binaries.
	linkTarget, err := os.Readlink(filepath.Join(cfg.BinPath, "cm"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.InstallPath, clientFolderName, "cm"), linkTarget)

	// Binaries missing from the bundle got no symlink.
	_, err = os.Lstat(filepath.Join(cfg.BinPath, "plasticapi"))
	assert.True(t, os.IsNotExist(err))

	// The launcher script references the installed version and path verbatim.
	script, err := os.ReadFile(filepath.Join(cfg.BinPath, launcherScriptName))
	require.NoError(t, err)
	assert.Contains(t, string(script), testNewVersion)
	assert.Contains(t, string(script), cfg.InstallPath)

	scriptInfo, err := os.Stat(filepath.Join(cfg.BinPath, launcherScriptName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), scriptInfo.Mode().Perm())

	// The desktop entry was generated.
	entry, err := os.ReadFile(filepath.Join(cfg.ApplicationsPath, desktopEntryName))
	require.NoError(t, err)
	assert.Contains(t, string(entry), "[Desktop Entry]")
	assert.Contains(t, string(entry), testNewVersion)

	// The manifest records the installed version and channel.
	manifest, err := ts.service.readManifest()
	require.NoError(t, err)
	assert.Equal(t, testNewVersion, manifest.Version)
	assert.Equal(t, string(plastic.ChannelStable), manifest.Channel)
	assert.False(t, manifest.InstalledAt.IsZero())

	// The temporary archive was removed.
	entries, err := os.ReadDir(cfg.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Statistics reflect the run.
	assert.Equal(t, testNewVersion, ts.service.stats.InstalledVersion)
	assert.Equal(t, int64(1), ts.service.stats.ArchivesDownloaded)
	assert.Equal(t, int64(3), ts.service.stats.FilesExtracted)
	assert.False(t, ts.service.stats.IsUpgrade)
}

// TestRun_UpgradeReplacesExistingInstallation tests upgrading over a prior version.
func TestRun_UpgradeReplacesExistingInstallation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)
	cfg.InstallServer = false

	writeInstalledTree(t, cfg, testOldVersion)

	releaseInfo := newTestRelease(testNewVersion)
	archive := buildZipArchive(t, []zipEntry{
		{name: "cm", content: "newer-binary"},
	})

	ts := newTestService(t, ctrl, cfg)

	// Report a running client: the upgrade proceeds with a warning.
	ts.service.processLister = fakeProcessLister{names: []string{"systemd", "cm"}}

	ts.fetcher.EXPECT().
		FetchLatestRelease(gomock.Any(), plastic.ChannelStable).
		Return(releaseInfo, nil)
	ts.client.EXPECT().
		FetchArchive(gomock.Any(), releaseInfo.ClientURL).
		Return(&plastic.FetchArchiveResult{
			Body:       io.NopCloser(bytes.NewReader(archive)),
			TotalBytes: int64(len(archive)),
		}, nil)

	err := ts.service.Run(context.Background())
	require.NoError(t, err)

	// The binary was replaced in place.
	content, err := os.ReadFile(filepath.Join(cfg.InstallPath, clientFolderName, "cm"))
	require.NoError(t, err)
	assert.Equal(t, "newer-binary", string(content))

	// The manifest moved to the new version.
	manifest, err := ts.service.readManifest()
	require.NoError(t, err)
	assert.Equal(t, testNewVersion, manifest.Version)

	assert.True(t, ts.service.stats.IsUpgrade)
	assert.Equal(t, testOldVersion, ts.service.stats.PreviousVersion)
}

// TestRun_InstallsServerBundle tests that both archives are fetched when the server is requested.
func TestRun_InstallsServerBundle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)
	cfg.InstallServer = true

	releaseInfo := newTestRelease(testNewVersion)
	clientArchive := buildZipArchive(t, []zipEntry{{name: "cm", content: "client-binary"}})
	serverArchive := buildZipArchive(t, []zipEntry{{name: "plasticd", content: "server-binary"}})

	ts := newTestService(t, ctrl, cfg)
	ts.fetcher.EXPECT().
		FetchLatestRelease(gomock.Any(), plastic.ChannelStable).
		Return(releaseInfo, nil)
	ts.client.EXPECT().
		FetchArchive(gomock.Any(), releaseInfo.ClientURL).
		Return(&plastic.FetchArchiveResult{
			Body:       io.NopCloser(bytes.NewReader(clientArchive)),
			TotalBytes: int64(len(clientArchive)),
		}, nil)
	ts.client.EXPECT().
		FetchArchive(gomock.Any(), releaseInfo.ServerURL).
		Return(&plastic.FetchArchiveResult{
			Body:       io.NopCloser(bytes.NewReader(serverArchive)),
			TotalBytes: int64(len(serverArchive)),
		}, nil)

	err := ts.service.Run(context.Background())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(cfg.InstallPath, serverFolderName, "plasticd"))
	require.NoError(t, err)
	assert.Equal(t, "server-binary", string(content))

	manifest, err := ts.service.readManifest()
	require.NoError(t, err)
	assert.True(t, manifest.ServerInstalled)
	assert.Equal(t, int64(2), ts.service.stats.ArchivesDownloaded)
}

// TestRun_DryRunTouchesNothing tests that preview mode performs no downloads or writes.
func TestRun_DryRunTouchesNothing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cfg := newTestConfig(t)
	cfg.DryRun = true

	ts := newTestService(t, ctrl, cfg)
	// Dry-run works without elevation.
	ts.service.privilegeChecker = fakePrivilegeChecker{elevated: false}

	ts.fetcher.EXPECT().
		FetchLatestRelease(gomock.Any(), plastic.ChannelStable).
		Return(newTestRelease(testNewVersion), nil)

	// FetchArchive expects zero calls.
	err := ts.service.Run(context.Background())
	require.NoError(t, err)

	_, statErr := os.Stat(cfg.InstallPath)
	assert.True(t, os.IsNotExist(statErr))

	assert.True(t, ts.service.stats.IsDryRun)
	assert.Equal(t, testNewVersion, ts.service.stats.InstalledVersion)
}
