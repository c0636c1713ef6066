//go:build !unix

package vos

import (
	"os"

	"github.com/pkg/errors"
)

func spawnAndAwait(argv []string, attr *ProcAttr) (*ExitStatus, error) {
	path, err := lookPath(argv)
	if err != nil {
		return nil, err
	}

	proc, err := os.StartProcess(path, argv, attr.osProcAttr())
	if err != nil {
		return nil, startError(argv, err)
	}

	// Wait only returns once the process has exited on these platforms.
	state, err := proc.Wait()
	if err != nil {
		return nil, &LaunchError{Stage: StageWait, Argv: argv, Err: errors.Wrap(err, "wait")}
	}
	return &ExitStatus{Code: state.ExitCode()}, nil
}
