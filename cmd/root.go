package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/plastic-installer/internal/app"
	"github.com/oshokin/plastic-installer/internal/config"
	"github.com/oshokin/plastic-installer/internal/logger"
	"github.com/oshokin/plastic-installer/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "plastic-installer [flags]",
		Short: "Install or upgrade Plastic SCM from the latest published release.",
		Long: `Plastic Installer is a CLI tool that installs Plastic SCM on Linux.
It discovers the latest published release, downloads the client archive
(and optionally the server archive), extracts it into the installation
directory, and exposes the tools through launcher symlinks and a desktop entry.

By default the newest stable release is installed; the labs channel
and upgrade behavior are controlled through flags.`,
		Args:             cobra.NoArgs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.Bool(
		"labs",
		false,
		"install from the labs (early preview) release channel instead of stable.")

	rootCmdFlags.Bool(
		"no-upgrade",
		false,
		"refuse to run when an installation is already present.")

	rootCmdFlags.Bool(
		"install-server",
		false,
		"install the server bundle alongside the client.")

	rootCmdFlags.StringP(
		"output",
		"o",
		"",
		"installation directory (the path will be created if it doesn't exist).")

	rootCmdFlags.StringP(
		"speed-limit",
		"s",
		"",
		"set download speed limit, for example: 500 kbps, 1 mbps, 1.5 mbps.")

	rootCmdFlags.Bool(
		"dry-run",
		false,
		"preview the installation without downloading or writing anything.")

	version.AttachCobraVersionCommand(rootCmd)
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("labs"); flag != nil && flag.Changed {
		cfg.Labs, _ = flags.GetBool("labs")
	}

	if flag := flags.Lookup("no-upgrade"); flag != nil && flag.Changed {
		cfg.NoUpgrade, _ = flags.GetBool("no-upgrade")
	}

	if flag := flags.Lookup("install-server"); flag != nil && flag.Changed {
		cfg.InstallServer, _ = flags.GetBool("install-server")
	}

	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.InstallPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("speed-limit"); flag != nil && flag.Changed {
		cfg.DownloadSpeedLimit, _ = flags.GetString("speed-limit")
	}

	if flag := flags.Lookup("dry-run"); flag != nil && flag.Changed {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}

	return config.ValidateConfig(cfg)
}
