package vostest

import (
	"bytes"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/josephlewis42/sdshell/core/vos"
)

// Spawn is a fake program run by TestOS.SpawnAndAwait.
type Spawn func(t *TestOS, argv []string) (*vos.ExitStatus, error)

// TestOS is an in-memory VOS that records every call the shell makes.
type TestOS struct {
	*vos.VIOAdapter

	Out *bytes.Buffer
	Err *bytes.Buffer

	// Dirs holds the directories Chdir accepts.
	Dirs map[string]bool
	Wd   string

	// ChdirCalls holds each argument passed to Chdir.
	ChdirCalls []string
	// SpawnCalls holds each argv passed to SpawnAndAwait.
	SpawnCalls [][]string

	// Programs resolves a command name to a fake program. A missing name
	// fails to load.
	Programs map[string]Spawn
}

var _ vos.VOS = (*TestOS)(nil)

// NewTestOS creates a deterministic OS whose stdin reads from input.
func NewTestOS(input string) *TestOS {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	return &TestOS{
		VIOAdapter: vos.NewVIOAdapter(strings.NewReader(input), out, errOut),
		Out:        out,
		Err:        errOut,
		Dirs:       map[string]bool{"/": true},
		Wd:         "/",
		Programs:   make(map[string]Spawn),
	}
}

// Getwd implements vos.VProc.Getwd.
func (t *TestOS) Getwd() (string, error) {
	return t.Wd, nil
}

// Chdir implements vos.VProc.Chdir.
func (t *TestOS) Chdir(dir string) error {
	t.ChdirCalls = append(t.ChdirCalls, dir)

	if !path.IsAbs(dir) {
		dir = path.Join(t.Wd, dir)
	}
	if !t.Dirs[dir] {
		return errors.New("chdir " + dir + ": no such file or directory")
	}
	t.Wd = dir
	return nil
}

// SpawnAndAwait implements vos.VProc.SpawnAndAwait.
func (t *TestOS) SpawnAndAwait(argv []string, attr *vos.ProcAttr) (*vos.ExitStatus, error) {
	t.SpawnCalls = append(t.SpawnCalls, append([]string(nil), argv...))

	program, ok := t.Programs[argv[0]]
	if !ok {
		return nil, &vos.LaunchError{Stage: vos.StageLoad, Argv: argv, Err: vos.ErrNotFound}
	}
	return program(t, argv)
}

// Echo is a fake program that prints its arguments.
func Echo(t *TestOS, argv []string) (*vos.ExitStatus, error) {
	io.WriteString(t.Out, strings.Join(argv[1:], " ")+"\n")
	return &vos.ExitStatus{}, nil
}
