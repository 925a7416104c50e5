package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/plastic-installer/internal/logger"
)

const summarySeparator = "═══════════════════════════════════════════════════════════════"

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// recordArchiveDownloaded updates the counters after a successful download.
func (s *ServiceImpl) recordArchiveDownloaded(bytes int64) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.ArchivesDownloaded++
	s.stats.TotalBytesDownloaded += bytes
}

// recordFilesExtracted adds to the extracted files counter.
func (s *ServiceImpl) recordFilesExtracted(count int64) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.FilesExtracted += count
}

// PrintInstallSummary prints a formatted summary of the installation.
func (s *ServiceImpl) PrintInstallSummary(ctx context.Context) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	stats := s.stats

	// If nothing happened at all, don't print a summary.
	if stats.StartTime.IsZero() {
		return
	}

	// Check if the context was canceled (CTRL+C or timeout).
	wasInterrupted := ctx.Err() != nil

	s.printSummaryHeader(ctx, wasInterrupted, stats.IsDryRun)
	s.printVersionStatistics(ctx, stats)
	s.printDataTransferStatistics(ctx, stats)
	s.printGeneratedFiles(ctx, stats)

	logger.Info(ctx, summarySeparator)

	s.printFinalMessage(ctx, wasInterrupted, stats)
}

// printSummaryHeader prints the summary header.
func (s *ServiceImpl) printSummaryHeader(ctx context.Context, wasInterrupted, isDryRun bool) {
	logger.Info(ctx, "")
	logger.Info(ctx, summarySeparator)

	switch {
	case isDryRun:
		logger.Info(ctx, "                  DRY-RUN PREVIEW")
	case wasInterrupted:
		logger.Info(ctx, "           INSTALLATION SUMMARY (Interrupted)")
	default:
		logger.Info(ctx, "                 INSTALLATION SUMMARY")
	}

	logger.Info(ctx, summarySeparator)
}

// printVersionStatistics prints the version transition.
func (s *ServiceImpl) printVersionStatistics(ctx context.Context, stats *InstallStatistics) {
	if stats.InstalledVersion == "" {
		return
	}

	if stats.IsUpgrade {
		logger.Infof(ctx, "Upgrade:          %s -> %s", stats.PreviousVersion, stats.InstalledVersion)
	} else {
		logger.Infof(ctx, "Installed:        %s", stats.InstalledVersion)
	}

	logger.Infof(ctx, "Channel:          %s", s.channel)

	if stats.LaunchersLinked > 0 {
		logger.Infof(ctx, "Launchers:        %d linked", stats.LaunchersLinked)
	}
}

// printDataTransferStatistics prints data transfer statistics.
func (s *ServiceImpl) printDataTransferStatistics(ctx context.Context, stats *InstallStatistics) {
	if stats.TotalBytesDownloaded > 0 {
		logger.Info(ctx, "")

		if stats.IsDryRun {
			//nolint:gosec // TotalBytesDownloaded is always positive, no overflow risk.
			logger.Infof(ctx, "Estimated Size:   %s", humanize.Bytes(uint64(stats.TotalBytesDownloaded)))
		} else {
			//nolint:gosec // TotalBytesDownloaded is always positive, no overflow risk.
			logger.Infof(ctx, "Data Downloaded:  %s", humanize.Bytes(uint64(stats.TotalBytesDownloaded)))
		}

		logger.Infof(ctx, "Archives:         %d", stats.ArchivesDownloaded)
	}

	if stats.FilesExtracted > 0 {
		logger.Infof(ctx, "Files Extracted:  %d", stats.FilesExtracted)
	}

	// Print duration if we have both start and end times (skip for dry-run).
	if !stats.IsDryRun && !stats.StartTime.IsZero() && !stats.EndTime.IsZero() {
		duration := stats.EndTime.Sub(stats.StartTime)

		// Only show if duration is meaningful (> 100ms).
		if duration > 100*time.Millisecond {
			logger.Infof(ctx, "Duration:         %s", formatDuration(duration))

			// Calculate and show average speed if we downloaded anything.
			if stats.TotalBytesDownloaded > 0 {
				bytesPerSecond := float64(stats.TotalBytesDownloaded) / duration.Seconds()
				logger.Infof(ctx, "Average Speed:    %s/s", humanize.Bytes(uint64(bytesPerSecond)))
			}
		}
	}
}

// printGeneratedFiles prints the files written outside the installation directory.
func (s *ServiceImpl) printGeneratedFiles(ctx context.Context, stats *InstallStatistics) {
	if len(stats.GeneratedFiles) == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Info(ctx, "Generated Files:")

	for _, path := range stats.GeneratedFiles {
		logger.Infof(ctx, "  %s", path)
	}
}

// printFinalMessage prints a helpful message based on the installation result.
func (s *ServiceImpl) printFinalMessage(ctx context.Context, wasInterrupted bool, stats *InstallStatistics) {
	if stats.IsDryRun {
		if stats.InstalledVersion != "" {
			logger.Info(ctx, "")
			logger.Info(ctx, "To proceed with the actual installation, remove the --dry-run flag.")
		}

		return
	}

	switch {
	case wasInterrupted:
		logger.Info(ctx, "")
		logger.Warn(ctx, "Installation interrupted by user (CTRL+C).")
	case stats.InstalledVersion != "":
		logger.Info(ctx, "")
		logger.Info(ctx, "Installation completed successfully!")
	}
}
