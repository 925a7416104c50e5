package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/plastic-installer/internal/logger"
	"github.com/oshokin/plastic-installer/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// BaseURL is the address of the downloads page listing published releases.
	BaseURL string `mapstructure:"base_url"`
	// InstallPath is the directory where the application tree is placed.
	InstallPath string `mapstructure:"install_path"`
	// BinPath is the directory where launcher symlinks are created.
	BinPath string `mapstructure:"bin_path"`
	// ApplicationsPath is the directory where the desktop entry is written.
	ApplicationsPath string `mapstructure:"applications_path"`
	// TempDir is the directory used for downloaded archives before extraction.
	// Defaults to a fixed subfolder of the system temporary directory.
	TempDir string `mapstructure:"temp_dir"`
	// InstallServer indicates whether the server bundle is installed alongside the client.
	InstallServer bool `mapstructure:"install_server"`
	// Labs selects the Labs release channel instead of Stable.
	Labs bool `mapstructure:"labs"`
	// NoUpgrade refuses to proceed when a prior installation is present.
	NoUpgrade bool `mapstructure:"no_upgrade"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// DownloadSpeedLimit sets the maximum download speed (e.g., "1MB", "500KB").
	DownloadSpeedLimit string `mapstructure:"download_speed_limit"`
	// HTTPTimeout is the timeout for page fetches and archive downloads (e.g., "5m").
	HTTPTimeout string `mapstructure:"http_timeout"`
	// LauncherScriptTemplate is the template for the generated launcher wrapper script.
	LauncherScriptTemplate string `mapstructure:"launcher_script_template"`
	// DesktopEntryTemplate is the template for the generated desktop entry.
	DesktopEntryTemplate string `mapstructure:"desktop_entry_template"`
	// DryRun indicates whether to preview the installation without touching the filesystem.
	DryRun bool
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedDownloadSpeedLimit is the parsed download speed limit in bytes.
	ParsedDownloadSpeedLimit int64
	// ParsedHTTPTimeout is the parsed HTTP timeout duration.
	ParsedHTTPTimeout time.Duration
}

const (
	// DefaultBaseURL is the address of the vendor's downloads page.
	DefaultBaseURL = "https://www.plasticscm.com/download"

	// DefaultInstallPath is the fixed installation directory on Linux hosts.
	DefaultInstallPath = "/opt/plasticscm5"

	// DefaultBinPath is the directory where launcher symlinks are placed.
	DefaultBinPath = "/usr/bin"

	// DefaultApplicationsPath is the directory for desktop menu entries.
	DefaultApplicationsPath = "/usr/share/applications"

	// DefaultTempDirName is the name of the download staging folder
	// created under the system temporary directory.
	DefaultTempDirName = "plasticupdater"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".plastic-installer.yaml"

	// DefaultHTTPTimeout is the default timeout for page fetches and archive downloads.
	DefaultHTTPTimeout = "10m"

	// DefaultLogLevel is the default logging verbosity.
	DefaultLogLevel = "info"

	// DefaultLauncherScriptTemplate is the default template for the generated launcher wrapper.
	// It must reference the install path and the installed version verbatim.
	DefaultLauncherScriptTemplate = `#!/bin/sh
# Plastic SCM {{.Version}} launcher. Generated by plastic-installer; do not edit.
PLASTIC_INSTALL_DIR="{{.InstallPath}}"
export LD_LIBRARY_PATH="${PLASTIC_INSTALL_DIR}/client/lib:${LD_LIBRARY_PATH}"
exec "${PLASTIC_INSTALL_DIR}/client/{{.Binary}}" "$@"
`

	// DefaultDesktopEntryTemplate is the default template for the generated desktop entry.
	DefaultDesktopEntryTemplate = `[Desktop Entry]
Type=Application
Name=Plastic SCM
Comment=Distributed version control ({{.Version}})
Exec={{.InstallPath}}/client/gtkplastic
Icon={{.InstallPath}}/theme/plastic.png
Terminal=false
Categories=Development;RevisionControl;
`

	// DefaultMaxLogLength is the default maximum size (in bytes) for logged HTTP dumps.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB
)

// Static error definitions for better error handling.
var (
	// ErrEmptyInstallPath indicates that the installation directory is missing.
	ErrEmptyInstallPath = errors.New("install path cannot be empty")
	// ErrRelativeInstallPath indicates that the installation directory is not absolute.
	ErrRelativeInstallPath = errors.New("install path must be absolute")
	// ErrRelativeBinPath indicates that the launcher symlink directory is not absolute.
	ErrRelativeBinPath = errors.New("bin path must be absolute")
	// ErrInvalidBaseURL indicates that the downloads page address is not a valid HTTP(S) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidHTTPTimeout indicates that the HTTP timeout duration is invalid.
	ErrInvalidHTTPTimeout = errors.New("http_timeout must be positive")
)

// LoadConfig loads configuration settings from a YAML file.
// The file is optional: when it is absent, built-in defaults apply.
// A file explicitly requested via the --config flag must exist.
func LoadConfig(configFilename string) (*Config, error) {
	isExplicit := configFilename != ""
	if !isExplicit {
		configFilename = DefaultConfigFilename
	}

	setDefaults()
	viper.SetConfigFile(configFilename)

	if err := viper.ReadInConfig(); err != nil {
		if isExplicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers built-in defaults so the installer works without a config file.
func setDefaults() {
	viper.SetDefault("base_url", DefaultBaseURL)
	viper.SetDefault("install_path", DefaultInstallPath)
	viper.SetDefault("bin_path", DefaultBinPath)
	viper.SetDefault("applications_path", DefaultApplicationsPath)
	viper.SetDefault("temp_dir", filepath.Join(os.TempDir(), DefaultTempDirName))
	viper.SetDefault("install_server", true)
	viper.SetDefault("log_level", DefaultLogLevel)
	viper.SetDefault("http_timeout", DefaultHTTPTimeout)
	viper.SetDefault("launcher_script_template", DefaultLauncherScriptTemplate)
	viper.SetDefault("desktop_entry_template", DefaultDesktopEntryTemplate)
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	cfg.InstallPath = strings.TrimSpace(cfg.InstallPath)
	if cfg.InstallPath == "" {
		return ErrEmptyInstallPath
	}

	if !filepath.IsAbs(cfg.InstallPath) {
		return fmt.Errorf("%w: '%s'", ErrRelativeInstallPath, cfg.InstallPath)
	}

	if !filepath.IsAbs(cfg.BinPath) {
		return fmt.Errorf("%w: '%s'", ErrRelativeBinPath, cfg.BinPath)
	}

	parsedBaseURL, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || parsedBaseURL.Host == "" ||
		(parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https") {
		return fmt.Errorf("%w: '%s'", ErrInvalidBaseURL, cfg.BaseURL)
	}

	if cfg.TempDir == "" {
		cfg.TempDir = filepath.Join(os.TempDir(), DefaultTempDirName)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	var parsedDownloadSpeedLimit uint64

	downloadSpeedLimit := strings.TrimSpace(cfg.DownloadSpeedLimit)
	if downloadSpeedLimit != "" && downloadSpeedLimit != "0" {
		parsedDownloadSpeedLimit, err = humanize.ParseBytes(downloadSpeedLimit)
		if err != nil {
			return fmt.Errorf("failed to parse download speed limit: %w", err)
		}
	}

	// io.CopyN accepts only int64 so we transform it safely in order to use it later.
	cfg.ParsedDownloadSpeedLimit = utils.SafeUint64ToInt64(parsedDownloadSpeedLimit)

	cfg.ParsedHTTPTimeout, err = time.ParseDuration(cfg.HTTPTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse http timeout: %w", err)
	}

	if cfg.ParsedHTTPTimeout <= 0 {
		return ErrInvalidHTTPTimeout
	}

	return nil
}
