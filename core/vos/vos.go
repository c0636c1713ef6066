package vos

import "io"

// VIO holds the standard streams of a process.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

// VProc is the part of the operating system that manages the calling
// process's working directory and its children.
type VProc interface {
	// Getwd returns the current working directory.
	Getwd() (string, error)

	// Chdir changes the working directory of the calling process.
	Chdir(dir string) error

	// SpawnAndAwait creates a child running argv[0] with the full argv and
	// blocks until that child has exited or been killed by a signal.
	SpawnAndAwait(argv []string, attr *ProcAttr) (*ExitStatus, error)
}

// VOS provides the operating system interface the shell runs against.
type VOS interface {
	VIO
	VProc
}
