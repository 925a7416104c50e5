package release

//go:generate $MOCKGEN -source=fetcher.go -destination=mocks/fetcher_mock.go

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/oshokin/plastic-installer/internal/client/plastic"
	"github.com/oshokin/plastic-installer/internal/logger"
	"github.com/oshokin/plastic-installer/internal/utils"
)

// Info describes the newest published release of a channel.
type Info struct {
	// Version is the release version identifier as published on the downloads page.
	Version string
	// ClientURL is the download URL of the client ZIP bundle.
	ClientURL string
	// ServerURL is the download URL of the server ZIP bundle.
	ServerURL string
}

// Fetcher locates the newest published release for a channel.
// The downloads page format is an external contract the installer cannot control,
// so the parsing lives behind this interface to stay swappable and mockable.
type Fetcher interface {
	// FetchLatestRelease fetches the channel's listing page and extracts the newest release.
	FetchLatestRelease(ctx context.Context, channel plastic.Channel) (*Info, error)
}

// FetcherImpl implements the Fetcher interface on top of the downloads site client.
type FetcherImpl struct {
	// client is the downloads site client.
	client plastic.Client
}

// versionPattern matches the version token on the downloads page:
// a "Version:" line followed by a span holding the version identifier.
//
//nolint:gochecknoglobals // This is an immutable, pre-compiled regex pattern and used as a constant.
var versionPattern = regexp.MustCompile(`Version:[^\n]*\n\s*<span>(?P<version>[^<\s]+)`)

// ErrVersionNotFound indicates that no release version could be parsed from the downloads page.
var ErrVersionNotFound = errors.New("no release version found on downloads page")

// NewFetcher creates and returns a new instance of FetcherImpl.
func NewFetcher(client plastic.Client) Fetcher {
	return &FetcherImpl{client: client}
}

// FetchLatestRelease fetches the channel's listing page and extracts the newest release.
func (f *FetcherImpl) FetchLatestRelease(ctx context.Context, channel plastic.Channel) (*Info, error) {
	page, err := f.client.GetDownloadsPage(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch downloads page: %w", err)
	}

	version := ParseLatestVersion(page)
	if version == "" {
		return nil, fmt.Errorf("%w: channel '%s'", ErrVersionNotFound, channel)
	}

	logger.Debugf(ctx, "Newest version on '%s' channel: %s", channel, version)

	clientURL, err := f.client.GetArchiveURL(plastic.ComponentClient, version)
	if err != nil {
		return nil, fmt.Errorf("failed to build client archive URL: %w", err)
	}

	serverURL, err := f.client.GetArchiveURL(plastic.ComponentServer, version)
	if err != nil {
		return nil, fmt.Errorf("failed to build server archive URL: %w", err)
	}

	return &Info{
		Version:   version,
		ClientURL: clientURL,
		ServerURL: serverURL,
	}, nil
}

// ParseLatestVersion extracts the first version identifier from the downloads page HTML.
// It returns an empty string when the page holds no parseable version.
func ParseLatestVersion(page string) string {
	return utils.ExtractNamedGroup(versionPattern, "version", page)
}
