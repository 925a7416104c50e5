package plastic

import "errors"

// Static error definitions for better error handling.
var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrUnsupportedChannel indicates an unknown release channel.
	ErrUnsupportedChannel = errors.New("unsupported release channel")
	// ErrUnsupportedComponent indicates an unknown installable component.
	ErrUnsupportedComponent = errors.New("unsupported component")
	// ErrEmptyVersion indicates that an archive URL was requested without a version.
	ErrEmptyVersion = errors.New("version cannot be empty")
)
