package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/plastic-installer/internal/constants"
	"github.com/oshokin/plastic-installer/internal/logger"
)

// downloadArchive fetches an archive into a collision-free temporary file
// and returns its path along with the number of bytes written.
// The temporary file is removed when the download does not complete.
func (s *ServiceImpl) downloadArchive(
	ctx context.Context,
	archiveURL, description string,
) (tempPath string, bytesWritten int64, err error) {
	if err = os.MkdirAll(s.cfg.TempDir, constants.DefaultFolderPermissions); err != nil {
		return "", 0, err
	}

	tempPath = filepath.Join(s.cfg.TempDir, uuid.New().String()+constants.ExtensionZip)

	file, err := os.OpenFile(filepath.Clean(tempPath),
		os.O_CREATE|os.O_EXCL|os.O_WRONLY, constants.DefaultFilePermissions)
	if err != nil {
		return "", 0, err
	}

	// Remove the partial file unless the download completed.
	downloadSucceeded := false

	defer func() {
		file.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		if !downloadSucceeded {
			os.Remove(tempPath) //nolint:errcheck,gosec // Cleanup of a partial download, error is not critical.
		}
	}()

	logger.Infof(ctx, "Downloading '%s'...", archiveURL)

	fetchResult, err := s.plasticClient.FetchArchive(ctx, archiveURL)
	if err != nil {
		return "", 0, err
	}

	defer fetchResult.Body.Close() //nolint:errcheck // Error on close is not critical here.

	// Show download progress only when the server reports the archive size.
	var writer io.Writer
	if fetchResult.TotalBytes > 0 {
		bar := progressbar.DefaultBytes(
			fetchResult.TotalBytes,
			description,
		)

		writer = io.MultiWriter(file, bar)
	} else {
		writer = file
	}

	if s.cfg.ParsedDownloadSpeedLimit == 0 {
		bytesWritten, err = io.Copy(writer, fetchResult.Body)
	} else {
		for {
			var n int64

			n, err = io.CopyN(writer, fetchResult.Body, s.cfg.ParsedDownloadSpeedLimit)
			bytesWritten += n

			if errors.Is(err, io.EOF) {
				err = nil

				break
			}

			if err != nil {
				break
			}

			// Throttle to respect speed limit.
			time.Sleep(time.Second)
		}
	}

	if err != nil {
		return "", bytesWritten, fmt.Errorf("failed to write archive: %w", err)
	}

	// Verify that we downloaded the expected number of bytes.
	if fetchResult.TotalBytes > 0 && bytesWritten != fetchResult.TotalBytes {
		return "", bytesWritten, fmt.Errorf(
			"%w: wrote %d bytes, expected %d bytes",
			ErrIncompleteDownload,
			bytesWritten,
			fetchResult.TotalBytes,
		)
	}

	downloadSucceeded = true

	return tempPath, bytesWritten, nil
}
