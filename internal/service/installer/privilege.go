package installer

import "os"

// PrivilegeChecker reports whether the current process holds administrator rights.
// The target paths are system-owned, so installation requires elevation.
type PrivilegeChecker interface {
	// IsElevated returns true when the process runs with administrator rights.
	IsElevated() bool
}

// osPrivilegeChecker checks the effective UID of the current process.
type osPrivilegeChecker struct{}

// NewOSPrivilegeChecker creates a PrivilegeChecker backed by the operating system.
func NewOSPrivilegeChecker() PrivilegeChecker {
	return osPrivilegeChecker{}
}

// IsElevated returns true when the process runs as root.
func (osPrivilegeChecker) IsElevated() bool {
	return os.Geteuid() == 0
}
