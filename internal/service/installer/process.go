package installer

import (
	"context"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/oshokin/plastic-installer/internal/logger"
	"github.com/oshokin/plastic-installer/internal/utils"
)

// plasticProcessNames are binaries that keep files under the install path open.
// Replacing files under a running process is allowed but worth a loud warning.
//
//nolint:gochecknoglobals // This is an immutable set used as a constant.
var plasticProcessNames = map[string]struct{}{
	"cm":           {},
	"plasticd":     {},
	"gtkplastic":   {},
	"gtkmergetool": {},
}

// ProcessLister enumerates the executables of currently running processes.
type ProcessLister interface {
	// ListProcessNames returns the executable names of all running processes.
	ListProcessNames() ([]string, error)
}

// psProcessLister lists processes through the operating system's process table.
type psProcessLister struct{}

// NewPSProcessLister creates a ProcessLister backed by the OS process table.
func NewPSProcessLister() ProcessLister {
	return psProcessLister{}
}

// ListProcessNames returns the executable names of all running processes.
func (psProcessLister) ListProcessNames() ([]string, error) {
	processes, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	return utils.Map(processes, func(p ps.Process) string {
		return p.Executable()
	}), nil
}

// warnAboutRunningProcesses warns when Plastic SCM binaries are running during an upgrade.
// The warning is advisory: the upgrade proceeds either way.
func (s *ServiceImpl) warnAboutRunningProcesses(ctx context.Context) {
	names, err := s.processLister.ListProcessNames()
	if err != nil {
		logger.Debugf(ctx, "Unable to list running processes: %v", err)
		return
	}

	var running []string

	for _, name := range names {
		if _, ok := plasticProcessNames[name]; ok {
			running = append(running, name)
		}
	}

	if len(running) > 0 {
		logger.Warnf(ctx,
			"Plastic SCM processes are still running (%s); their files will be replaced in place",
			strings.Join(running, ", "))
	}
}
