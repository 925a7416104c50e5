package installer

import (
	"archive/zip"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/plastic-installer/internal/config"
)

// zipEntry describes a file placed into a test archive.
type zipEntry struct {
	name    string
	content string
	mode    uint32
}

// buildZipArchive builds a ZIP archive in memory from the given entries.
func buildZipArchive(t *testing.T, entries []zipEntry) []byte {
	t.Helper()

	var buffer bytes.Buffer

	writer := zip.NewWriter(&buffer)

	for _, entry := range entries {
		header := &zip.FileHeader{
			Name:   entry.name,
			Method: zip.Deflate,
		}

		if entry.mode != 0 {
			header.SetMode(fs.FileMode(entry.mode))
		}

		entryWriter, err := writer.CreateHeader(header)
		require.NoError(t, err)

		_, err = entryWriter.Write([]byte(entry.content))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return buffer.Bytes()
}

// newTestConfig produces a validated configuration rooted in temporary directories.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	tempDir := t.TempDir()

	cfg := &config.Config{
		BaseURL:          config.DefaultBaseURL,
		InstallPath:      filepath.Join(tempDir, "install"),
		BinPath:          filepath.Join(tempDir, "bin"),
		ApplicationsPath: filepath.Join(tempDir, "applications"),
		TempDir:          filepath.Join(tempDir, "staging"),
		LogLevel:         config.DefaultLogLevel,
		HTTPTimeout:      config.DefaultHTTPTimeout,
	}

	require.NoError(t, config.ValidateConfig(cfg))

	// The bin directory is expected to exist on a real host (/usr/bin).
	require.NoError(t, os.MkdirAll(cfg.BinPath, 0o755))

	return cfg
}

// fakePrivilegeChecker reports a fixed elevation state.
type fakePrivilegeChecker struct {
	elevated bool
}

func (f fakePrivilegeChecker) IsElevated() bool {
	return f.elevated
}

// fakeProcessLister reports a fixed process list.
type fakeProcessLister struct {
	names []string
	err   error
}

func (f fakeProcessLister) ListProcessNames() ([]string, error) {
	return f.names, f.err
}
