// Package process detects and terminates host processes by name. The project command uses
// it to guard against a running IDE holding generated files open.
package process

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/hu19891110/buck/errors"
)

// Manager looks up and kills host processes by executable name.
type Manager struct{}

// NewManager creates a process manager. Returns an error when the platform offers no way
// to enumerate processes, in which case callers degrade to best-effort behavior.
func NewManager() (*Manager, error) {
	if _, err := process.Processes(); err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "process enumeration is not available on this host")
	}

	return &Manager{}, nil
}

// IsRunning reports whether a process with the given executable name is running.
func (manager *Manager) IsRunning(name string) (bool, error) {
	proc, err := manager.find(name)
	if err != nil {
		return false, err
	}

	return proc != nil, nil
}

// Kill terminates the first running process with the given executable name.
func (manager *Manager) Kill(name string) error {
	proc, err := manager.find(name)
	if err != nil {
		return err
	}

	if proc == nil {
		return errors.WithStackTrace(NoSuchProcessError{Name: name})
	}

	return errors.WithStackTrace(proc.Kill())
}

func (manager *Manager) find(name string) (*process.Process, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	for _, proc := range procs {
		procName, err := proc.Name()
		if err != nil {
			// The process may have exited between enumeration and lookup.
			continue
		}

		if procName == name {
			return proc, nil
		}
	}

	return nil, nil
}

// NoSuchProcessError is returned when asked to kill a process that is not running.
type NoSuchProcessError struct {
	Name string
}

func (err NoSuchProcessError) Error() string {
	return fmt.Sprintf("no running process named %q", err.Name)
}
