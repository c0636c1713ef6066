package commands

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/josephlewis42/sdshell/core/logger"
	"github.com/josephlewis42/sdshell/core/vos"
	"github.com/josephlewis42/sdshell/core/vos/vostest"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Input string
}

func (gts goldenTestSuite) Run(t *testing.T) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
		goldie.WithSubTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			s, tos := newTestShell(tc.Input)
			tos.Programs["echo"] = vostest.Echo

			if err := s.Run(); err != nil {
				t.Fatal(err)
			}

			out := fmt.Sprintf("stdout:\n%s\nstderr:\n%s", tos.Out.String(), tos.Err.String())
			g.Assert(t, tn, []byte(out))
		})
	}
}

func TestRunShell(t *testing.T) {
	cases := goldenTestSuite{
		"help":            {"help\nexit\n"},
		"echo":            {"echo hello   world\nexit\n"},
		"blank-lines":     {"\n   \n\t\nexit\n"},
		"not-found":       {"nope arg\nexit\n"},
		"cd-no-arg":       {"cd\nexit\n"},
		"eof":             {"echo bye\n"},
		"eof-no-newline":  {"echo last"},
		"exit-stops-loop": {"exit 1\necho unreachable\n"},
	}

	cases.Run(t)
}

func TestShell_Run(t *testing.T) {
	t.Run("exit stops reading", func(t *testing.T) {
		s, tos := newTestShell("exit\necho no\n")
		tos.Programs["echo"] = vostest.Echo

		assert.NoError(t, s.Run())
		assert.Empty(t, tos.SpawnCalls)
	})

	t.Run("blank lines spawn nothing", func(t *testing.T) {
		s, tos := newTestShell("\n \t \r\n\a\n")

		assert.NoError(t, s.Run())
		assert.Empty(t, tos.SpawnCalls)
		assert.Empty(t, tos.Err.String())
	})

	t.Run("failed launch continues", func(t *testing.T) {
		s, tos := newTestShell("nope\necho after\n")
		tos.Programs["echo"] = vostest.Echo

		assert.NoError(t, s.Run())
		assert.Equal(t, [][]string{{"nope"}, {"echo", "after"}}, tos.SpawnCalls)
		assert.Contains(t, tos.Err.String(), "sdshell: nope: ")
		assert.Contains(t, tos.Out.String(), "after\n")
	})

	t.Run("builtins win over programs", func(t *testing.T) {
		s, tos := newTestShell("cd /\n")
		tos.Programs["cd"] = vostest.Echo

		assert.NoError(t, s.Run())
		assert.Empty(t, tos.SpawnCalls)
		assert.Equal(t, []string{"/"}, tos.ChdirCalls)
	})

	t.Run("read error", func(t *testing.T) {
		tos := vostest.NewTestOS("")
		s := NewShell(tos, failingReader{})

		err := s.Run()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "reading command line")
	})
}

type failingReader struct{}

func (failingReader) ReadLine(string) (string, error) {
	return "", errors.New("broken terminal")
}

type recordedEvents []logger.LogType

func (r *recordedEvents) Record(event logger.LogType) error {
	*r = append(*r, event)
	return nil
}

func TestShell_Events(t *testing.T) {
	s, tos := newTestShell("echo a\nsegv\nnope\ncd\nexit\n")
	tos.Programs["echo"] = vostest.Echo
	tos.Programs["segv"] = func(*vostest.TestOS, []string) (*vos.ExitStatus, error) {
		return &vos.ExitStatus{Code: -1, Signaled: true, Signal: syscall.SIGSEGV}, nil
	}

	var events recordedEvents
	s.Events = &events
	s.now = fixedClock(time.Unix(0, 0), time.Millisecond)

	assert.NoError(t, s.Run())

	assert.Equal(t, recordedEvents{
		&logger.SessionStart{Wd: "/"},
		&logger.Launch{Command: []string{"echo", "a"}, DurationMicros: 1000},
		&logger.Launch{Command: []string{"segv"}, ExitCode: -1, Signal: syscall.SIGSEGV.String(), DurationMicros: 1000},
		&logger.LaunchError{Command: []string{"nope"}, Stage: "load", Error: "nope: " + vos.ErrNotFound.Error()},
		&logger.Builtin{Command: []string{"cd"}, Status: "continue"},
		&logger.Builtin{Command: []string{"exit"}, Status: "stop"},
		&logger.SessionEnd{Reason: "exit"},
	}, events)
}

func TestShell_EventsEOF(t *testing.T) {
	s, _ := newTestShell("")

	var events recordedEvents
	s.Events = &events

	assert.NoError(t, s.Run())
	assert.Equal(t, recordedEvents{
		&logger.SessionStart{Wd: "/"},
		&logger.SessionEnd{Reason: "eof"},
	}, events)
}

func TestShell_RunCommandEvents(t *testing.T) {
	s, tos := newTestShell("")
	tos.Programs["echo"] = vostest.Echo

	var events recordedEvents
	s.Events = &events
	s.now = fixedClock(time.Unix(0, 0), time.Millisecond)

	s.RunCommand("echo hi")

	assert.Equal(t, "hi\n", tos.Out.String())
	assert.Equal(t, recordedEvents{
		&logger.SessionStart{Wd: "/"},
		&logger.Launch{Command: []string{"echo", "hi"}, DurationMicros: 1000},
		&logger.SessionEnd{Reason: "command"},
	}, events)
}

// fixedClock returns a clock that advances by step every time it's read.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		out := now
		now = now.Add(step)
		return out
	}
}

func TestShell_PrintBanner(t *testing.T) {
	s, tos := newTestShell("")

	s.PrintBanner()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)
	g.Assert(t, "banner", tos.Out.Bytes())
}

func TestShell_RunLine(t *testing.T) {
	s, tos := newTestShell("")
	tos.Programs["echo"] = vostest.Echo

	assert.Equal(t, Continue, s.RunLine("echo  one\ttwo"))
	assert.Equal(t, Stop, s.RunLine("  exit  "))
	assert.True(t, bytes.Equal([]byte("one two\n"), tos.Out.Bytes()))
}
