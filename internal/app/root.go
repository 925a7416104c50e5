package app

import (
	"context"
	"errors"
	"os"

	plastic_client "github.com/oshokin/plastic-installer/internal/client/plastic"
	"github.com/oshokin/plastic-installer/internal/config"
	"github.com/oshokin/plastic-installer/internal/logger"
	"github.com/oshokin/plastic-installer/internal/service/installer"
	"github.com/oshokin/plastic-installer/internal/service/release"
)

// ExecuteRootCommand is the entry point for the application.
// It initializes the download client, sets up the installation service components,
// runs the installation pipeline, and exits with the failure kind's status code.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config) {
	plasticClient, err := plastic_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize download client: %v", err)
	}

	releaseFetcher := release.NewFetcher(plasticClient)
	templateManager := installer.NewTemplateManager(ctx, cfg)
	privilegeChecker := installer.NewOSPrivilegeChecker()
	processLister := installer.NewPSProcessLister()

	s := installer.NewService(cfg, plasticClient, releaseFetcher,
		templateManager, privilegeChecker, processLister)

	// Ensure statistics are ALWAYS printed, even on panic.
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
		}

		s.PrintInstallSummary(ctx)
	}()

	if err = s.Run(ctx); err != nil {
		logError(ctx, err)
		s.PrintInstallSummary(ctx)
		os.Exit(installer.ExitCode(err))
	}
}

// logError reports the failure at a severity matching its kind.
// A refused upgrade is an expected outcome, not an error.
func logError(ctx context.Context, err error) {
	if errors.Is(err, installer.ErrAlreadyInstalled) {
		logger.Warnf(ctx, "Installation skipped: %v", err)
		return
	}

	logger.Errorf(ctx, "Installation failed: %v", err)
}
