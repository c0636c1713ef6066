//go:build unix

package vos

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// scriptShell runs executables the kernel can't load, the same fallback
// execvp uses for scripts without a #! line.
const scriptShell = "/bin/sh"

func spawnAndAwait(argv []string, attr *ProcAttr) (*ExitStatus, error) {
	path, err := lookPath(argv)
	if err != nil {
		return nil, err
	}

	proc, err := os.StartProcess(path, argv, attr.osProcAttr())
	if errors.Is(err, unix.ENOEXEC) {
		scriptArgv := append([]string{"sh", path}, argv[1:]...)
		proc, err = os.StartProcess(scriptShell, scriptArgv, attr.osProcAttr())
	}
	if err != nil {
		return nil, startError(argv, err)
	}
	defer proc.Release()

	status, err := await(proc.Pid)
	if err != nil {
		return nil, &LaunchError{Stage: StageWait, Argv: argv, Err: err}
	}
	return status, nil
}

// await blocks until the child with the given pid exits or is killed. A child
// that is only stopped is not finished, so waiting continues.
func await(pid int) (*ExitStatus, error) {
	for {
		var ws unix.WaitStatus
		_, err := unix.Wait4(pid, &ws, unix.WUNTRACED, nil)
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return nil, errors.Wrapf(err, "wait for pid %d", pid)
		}

		switch {
		case ws.Exited():
			return &ExitStatus{Code: ws.ExitStatus()}, nil
		case ws.Signaled():
			return &ExitStatus{Code: -1, Signaled: true, Signal: ws.Signal()}, nil
		}
	}
}
