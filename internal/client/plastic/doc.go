// Package plastic provides an HTTP client for the Plastic SCM downloads site.
// It fetches the per-channel downloads listing page and streams release archives,
// hiding transport details (timeouts, User-Agent injection, request logging)
// from the services built on top of it.
package plastic
