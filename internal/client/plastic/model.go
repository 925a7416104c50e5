package plastic

import "io"

// Channel identifies a release track on the downloads site.
type Channel string

const (
	// ChannelStable is the regular release track.
	ChannelStable Channel = "stable"
	// ChannelLabs is the early-access release track published by the Plastic SCM team.
	ChannelLabs Channel = "labs"
)

// Component identifies an installable bundle published per release.
type Component string

const (
	// ComponentClient is the client bundle (cm, GUI tools, merge tools).
	ComponentClient Component = "client"
	// ComponentServer is the server bundle.
	ComponentServer Component = "server"
)

// FetchArchiveResult contains the result of fetching an archive.
type FetchArchiveResult struct {
	// Body is the archive content stream. The caller is responsible for closing it.
	Body io.ReadCloser
	// TotalBytes is the size of the archive as reported by the server, -1 if unknown.
	TotalBytes int64
}
