package plastic

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/plastic-installer/internal/config"
)

// newTestClient creates a client pointed at the provided test server.
func newTestClient(t *testing.T, serverURL string) Client {
	t.Helper()

	client, err := NewClient(&config.Config{
		BaseURL:           serverURL,
		ParsedHTTPTimeout: 5 * time.Second,
	})
	require.NoError(t, err)

	return client
}

// TestNewClient tests the NewClient function.
func TestNewClient(t *testing.T) {
	t.Parallel()

	client, err := NewClient(&config.Config{BaseURL: "https://www.plasticscm.com/download"})
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, "https://www.plasticscm.com/download", client.GetBaseURL())
}

// TestGetDownloadsPage tests channel-specific page fetching.
func TestGetDownloadsPage(t *testing.T) {
	t.Parallel()

	const (
		stablePage = "<html>stable listing</html>"
		labsPage   = "<html>labs listing</html>"
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			_, _ = io.WriteString(w, stablePage)
		case "/labs":
			_, _ = io.WriteString(w, labsPage)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL)

	tests := []struct {
		name     string
		channel  Channel
		expected string
	}{
		{
			name:     "stable channel fetches the root listing",
			channel:  ChannelStable,
			expected: stablePage,
		},
		{
			name:     "labs channel fetches the labs listing",
			channel:  ChannelLabs,
			expected: labsPage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, err := client.GetDownloadsPage(context.Background(), tt.channel)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, page)
		})
	}
}

// TestGetDownloadsPage_Errors tests page fetching failure modes.
func TestGetDownloadsPage_Errors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	// Non-success HTTP status.
	_, err := client.GetDownloadsPage(context.Background(), ChannelStable)
	require.ErrorIs(t, err, ErrUnexpectedHTTPStatus)

	// Unknown channel.
	_, err = client.GetDownloadsPage(context.Background(), Channel("beta"))
	require.ErrorIs(t, err, ErrUnsupportedChannel)
}

// TestGetArchiveURL tests archive URL construction.
func TestGetArchiveURL(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "https://www.plasticscm.com/download")

	tests := []struct {
		name        string
		component   Component
		version     string
		expected    string
		expectedErr error
	}{
		{
			name:      "client bundle",
			component: ComponentClient,
			version:   "11.0.16.7248",
			expected:  "https://www.plasticscm.com/download/downloadinstaller/11.0.16.7248/plasticscm/linux/clientzip?Flags=None",
		},
		{
			name:      "server bundle",
			component: ComponentServer,
			version:   "11.0.16.7248",
			expected:  "https://www.plasticscm.com/download/downloadinstaller/11.0.16.7248/plasticscm/linux/serverzip?Flags=None",
		},
		{
			name:        "empty version",
			component:   ComponentClient,
			version:     "",
			expectedErr: ErrEmptyVersion,
		},
		{
			name:        "unknown component",
			component:   Component("mono"),
			version:     "11.0.16.7248",
			expectedErr: ErrUnsupportedComponent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			archiveURL, err := client.GetArchiveURL(tt.component, tt.version)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, archiveURL)
		})
	}
}

// TestFetchArchive tests archive streaming.
func TestFetchArchive(t *testing.T) {
	t.Parallel()

	archiveContent := []byte("fake archive bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/archive" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_, _ = w.Write(archiveContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	// Successful fetch returns the body and the reported size.
	result, err := client.FetchArchive(context.Background(), server.URL+"/archive")
	require.NoError(t, err)

	defer result.Body.Close()

	assert.Equal(t, int64(len(archiveContent)), result.TotalBytes)

	content, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	assert.Equal(t, archiveContent, content)

	// Missing archive surfaces the HTTP status.
	_, err = client.FetchArchive(context.Background(), server.URL+"/missing")
	require.ErrorIs(t, err, ErrUnexpectedHTTPStatus)
}
