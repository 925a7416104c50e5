package installer

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/plastic-installer/internal/constants"
)

// extractZipArchive unpacks the archive into the destination directory,
// overwriting existing files. Entries resolving outside the destination are rejected.
// It returns the number of regular files written.
func extractZipArchive(archivePath, destination string) (int64, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive: %w", err)
	}

	defer reader.Close() //nolint:errcheck // Error on close is not critical here.

	if err = os.MkdirAll(destination, constants.DefaultFolderPermissions); err != nil {
		return 0, err
	}

	var filesExtracted int64

	for _, entry := range reader.File {
		target, err := resolveArchiveTarget(destination, entry.Name)
		if err != nil {
			return filesExtracted, err
		}

		if entry.FileInfo().IsDir() {
			if err = os.MkdirAll(target, constants.DefaultFolderPermissions); err != nil {
				return filesExtracted, err
			}

			continue
		}

		if err = extractZipEntry(entry, target); err != nil {
			return filesExtracted, err
		}

		filesExtracted++
	}

	return filesExtracted, nil
}

// extractZipEntry writes a single regular archive entry to its target path,
// preserving the entry's permission bits when present.
func extractZipEntry(entry *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), constants.DefaultFolderPermissions); err != nil {
		return err
	}

	permissions := entry.Mode().Perm()
	if permissions == 0 {
		permissions = constants.DefaultFilePermissions
	}

	file, err := os.OpenFile(filepath.Clean(target), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, permissions)
	if err != nil {
		return err
	}

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	content, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to read archive entry '%s': %w", entry.Name, err)
	}

	defer content.Close() //nolint:errcheck // Error on close is not critical here.

	//nolint:gosec // The archive comes from the vendor's site; size is bounded by the download step.
	if _, err = io.Copy(file, content); err != nil {
		return err
	}

	return nil
}

// resolveArchiveTarget joins an archive entry name onto the destination
// and rejects entries escaping it (zip-slip).
func resolveArchiveTarget(destination, entryName string) (string, error) {
	target := filepath.Join(destination, entryName)

	cleanDestination := filepath.Clean(destination)
	if target != cleanDestination &&
		!strings.HasPrefix(target, cleanDestination+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: '%s'", ErrUnsafeArchivePath, entryName)
	}

	return target, nil
}
