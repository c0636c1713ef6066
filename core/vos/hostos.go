package vos

import "os"

// HostOS is a VOS backed by the real operating system.
type HostOS struct {
	VIO

	// ChildFiles are inherited by spawned children as their standard
	// streams. If nil, children get the process's own standard streams.
	ChildFiles []*os.File
}

var _ VOS = (*HostOS)(nil)

// NewHostOS creates a VOS over the running process that talks to the user
// through vio.
func NewHostOS(vio VIO) *HostOS {
	return &HostOS{VIO: vio}
}

// Getwd implements VProc.Getwd.
func (h *HostOS) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir implements VProc.Chdir.
func (h *HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// SpawnAndAwait implements VProc.SpawnAndAwait.
func (h *HostOS) SpawnAndAwait(argv []string, attr *ProcAttr) (*ExitStatus, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}
	if attr.Files == nil {
		attr.Files = h.ChildFiles
	}
	return spawnAndAwait(argv, attr)
}
