package vos

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

// ProcAttr holds the attributes that will be applied to a new process.
type ProcAttr struct {
	// Dir specifies the working directory of the child.
	// If Dir is the empty string, the child runs in the calling process's
	// current directory.
	Dir string

	// Env specifies the environment of the child.
	// Each entry is of the form "key=value".
	// If Env is nil, the child uses the current process's environment.
	Env []string

	// Files are the open files inherited by the child, the first three
	// entries become its standard input, output and error. If Files is nil
	// the child inherits the caller's own standard streams.
	Files []*os.File
}

// ExitStatus describes how a child terminated.
type ExitStatus struct {
	// Code is the exit code of a child that exited normally, or -1 if it
	// was killed by a signal.
	Code int
	// Signaled is set if the child was terminated by a signal.
	Signaled bool
	// Signal holds the terminating signal if Signaled is set.
	Signal syscall.Signal
}

func (e *ExitStatus) String() string {
	if e.Signaled {
		return fmt.Sprintf("signal: %v", e.Signal)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Stage identifies where a launch failed.
type Stage int

const (
	// StageLoad means the program image could not be located or loaded
	// (unknown command, not executable, bad format).
	StageLoad Stage = iota
	// StageCreate means the operating system could not create a process.
	StageCreate
	// StageWait means the child was created but waiting on it failed.
	StageWait
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageCreate:
		return "create"
	case StageWait:
		return "wait"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// LaunchError is returned by SpawnAndAwait.
type LaunchError struct {
	Stage Stage
	Argv  []string
	Err   error
}

func (e *LaunchError) Error() string {
	name := ""
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// lookPath resolves a program name the same way execvp does, a name with a
// slash is used as-is and anything else is searched for in PATH, including
// relative entries such as ".".
func lookPath(argv []string) (string, error) {
	if len(argv) == 0 || argv[0] == "" {
		return "", &LaunchError{Stage: StageLoad, Argv: argv, Err: ErrNotFound}
	}

	path, err := exec.LookPath(argv[0])
	if errors.Is(err, exec.ErrDot) {
		// Found through a relative PATH entry, execvp runs these too.
		err = nil
	}
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			err = execErr.Err
		}
		return "", &LaunchError{Stage: StageLoad, Argv: argv, Err: err}
	}
	return path, nil
}

// startError classifies a failure from os.StartProcess. Resource exhaustion
// means no child was created, anything else is the child failing to load the
// program image.
func startError(argv []string, err error) error {
	stage := StageLoad

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EAGAIN, syscall.ENOMEM:
			stage = StageCreate
		}
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}

	return &LaunchError{Stage: stage, Argv: argv, Err: err}
}

func (attr *ProcAttr) osProcAttr() *os.ProcAttr {
	files := attr.Files
	if files == nil {
		files = []*os.File{os.Stdin, os.Stdout, os.Stderr}
	}

	return &os.ProcAttr{
		Dir:   attr.Dir,
		Env:   attr.Env,
		Files: files,
	}
}
