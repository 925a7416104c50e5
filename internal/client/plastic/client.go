package plastic

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/oshokin/plastic-installer/internal/config"
	http_transport "github.com/oshokin/plastic-installer/internal/transport/http"
	"github.com/oshokin/plastic-installer/internal/utils"
)

// Client defines the interface for interacting with the Plastic SCM downloads site.
type Client interface {
	// GetDownloadsPage fetches the downloads listing page for the specified channel
	// and returns its raw HTML.
	GetDownloadsPage(ctx context.Context, channel Channel) (string, error)
	// GetArchiveURL constructs the download URL for a component's ZIP bundle of a specific version.
	GetArchiveURL(component Component, version string) (string, error)
	// FetchArchive streams archive bytes from the specified URL.
	FetchArchive(ctx context.Context, archiveURL string) (*FetchArchiveResult, error)
	// GetBaseURL returns the base URL of the downloads site.
	GetBaseURL() string
}

// ClientImpl implements the Client interface for interacting with the Plastic SCM downloads site.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// baseURL is the base URL of the downloads site.
	baseURL *url.URL
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
}

const (
	// labsPageURIPath is the URI path component for the Labs channel listing.
	labsPageURIPath = "labs"
	// archiveInstallerURIPath is the URI path component for per-version installer bundles.
	archiveInstallerURIPath = "downloadinstaller"
	// archivePlatformURIPath is the URI path selecting the Linux ZIP bundles.
	archivePlatformURIPath = "plasticscm/linux"
	// archiveQueryFlags is the query string appended to every archive URL.
	archiveQueryFlags = "Flags=None"
	// maxPageSize caps how much of the listing page is read into memory.
	maxPageSize = 4 * 1024 * 1024 // 4 MB
)

// NewClient creates and returns a new instance of ClientImpl.
// It initializes the HTTP client with the configured timeout and transport decorators.
func NewClient(cfg *config.Config) (Client, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := cfg.ParsedHTTPTimeout
	if timeout <= 0 {
		timeout = http_transport.DefaultTimeout
	}

	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
		Timeout: timeout,
	}

	return &ClientImpl{
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// GetDownloadsPage fetches the downloads listing page for the specified channel
// and returns its raw HTML.
func (c *ClientImpl) GetDownloadsPage(ctx context.Context, channel Channel) (string, error) {
	pageURL, err := c.getPageURL(channel)
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	page, err := io.ReadAll(io.LimitReader(response.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("failed to read downloads page: %w", err)
	}

	return string(page), nil
}

// GetArchiveURL constructs the download URL for a component's ZIP bundle of a specific version.
func (c *ClientImpl) GetArchiveURL(component Component, version string) (string, error) {
	if version == "" {
		return "", ErrEmptyVersion
	}

	if component != ComponentClient && component != ComponentServer {
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedComponent, component)
	}

	archiveURL := c.baseURL.JoinPath(
		archiveInstallerURIPath,
		version,
		archivePlatformURIPath,
		string(component)+"zip")
	archiveURL.RawQuery = archiveQueryFlags

	return archiveURL.String(), nil
}

// FetchArchive streams archive bytes from the specified URL.
func (c *ClientImpl) FetchArchive(ctx context.Context, archiveURL string) (*FetchArchiveResult, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return &FetchArchiveResult{
		Body:       response.Body,
		TotalBytes: response.ContentLength,
	}, nil
}

// GetBaseURL returns the base URL of the downloads site.
func (c *ClientImpl) GetBaseURL() string {
	return c.baseURL.String()
}

// getPageURL resolves the listing page URL for a channel.
func (c *ClientImpl) getPageURL(channel Channel) (string, error) {
	switch channel {
	case ChannelStable:
		return c.baseURL.String(), nil
	case ChannelLabs:
		return c.baseURL.JoinPath(labsPageURIPath).String(), nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedChannel, channel)
	}
}
