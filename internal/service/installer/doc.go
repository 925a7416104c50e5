// Package installer implements the installation pipeline for Plastic SCM:
// privilege and prior-installation checks, release discovery, archive download,
// extraction into the installation directory, launcher placement, and
// generated-file emission. The pipeline is strictly sequential; any step's
// failure aborts the run with a kind-specific error.
package installer
