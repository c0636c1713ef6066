package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/josephlewis42/sdshell/core/logger"
	"github.com/josephlewis42/sdshell/core/vos"
	"github.com/pkg/errors"
)

const (
	DefaultName   = "sdshell"
	DefaultPrompt = "> "
)

type Shell struct {
	VirtualOS vos.VOS
	Reader    LineReader
	Builtins  *Registry

	// Name prefixes every diagnostic.
	Name   string
	Prompt string
	// Interactive is set when a user is typing at a terminal.
	Interactive bool

	Color  *ColorPrinter
	Log    hclog.Logger
	Events logger.EventRecorder

	now func() time.Time
}

// NewShell creates a shell reading commands from reader and running them
// against virtualOS.
func NewShell(virtualOS vos.VOS, reader LineReader) *Shell {
	return &Shell{
		VirtualOS: virtualOS,
		Reader:    reader,
		Builtins:  AllBuiltins,
		Name:      DefaultName,
		Prompt:    DefaultPrompt,
		Color:     NewColorPrinter(colorNever, nil, nil),
		Log:       hclog.NewNullLogger(),
		Events:    logger.NopRecorder{},
		now:       time.Now,
	}
}

// Run reads and executes lines until exit is run or the input ends.
func (s *Shell) Run() error {
	wd, _ := s.VirtualOS.Getwd()
	s.record(&logger.SessionStart{Interactive: s.Interactive, Wd: wd})

	for {
		line, err := s.Reader.ReadLine(s.Prompt)
		switch {
		case errors.Is(err, io.EOF):
			// Input closed, finish the prompt line and quit.
			fmt.Fprintln(s.VirtualOS.Stdout())
			s.record(&logger.SessionEnd{Reason: "eof"})
			return nil
		case err != nil:
			return errors.Wrap(err, "reading command line")
		}

		if s.RunLine(line) == Stop {
			s.record(&logger.SessionEnd{Reason: "exit"})
			return nil
		}
	}
}

// RunCommand runs line as a complete session, the way sh -c does.
func (s *Shell) RunCommand(line string) {
	wd, _ := s.VirtualOS.Getwd()
	s.record(&logger.SessionStart{Interactive: false, Wd: wd})
	s.RunLine(line)
	s.record(&logger.SessionEnd{Reason: "command"})
}

// RunLine tokenizes and executes a single command line.
func (s *Shell) RunLine(line string) Status {
	return s.Execute(Tokenize(line))
}

// Execute runs argv as a builtin if one matches its name and as an external
// program otherwise. Blank lines do nothing.
func (s *Shell) Execute(argv Argv) Status {
	if argv.Empty() {
		return Continue
	}

	if builtin, ok := s.Builtins.Lookup(argv.Name()); ok {
		s.Log.Debug("running builtin", "name", argv.Name(), "args", len(argv)-1)
		status := builtin.Main(s, argv)
		s.record(&logger.Builtin{Command: argv, Status: status.String()})
		return status
	}

	s.launch(argv)
	return Continue
}

func (s *Shell) launch(argv Argv) {
	s.Log.Debug("launching program", "argv", argv.String())

	start := s.now()
	status, err := s.VirtualOS.SpawnAndAwait(argv, &vos.ProcAttr{})
	if err != nil {
		s.errorf("%v", err)

		stage := ""
		var launchErr *vos.LaunchError
		if errors.As(err, &launchErr) {
			stage = launchErr.Stage.String()
		}
		s.record(&logger.LaunchError{Command: argv, Stage: stage, Error: err.Error()})
		return
	}

	elapsed := s.now().Sub(start)
	s.Log.Trace("program terminated", "name", argv.Name(), "status", status.String(), "elapsed", elapsed)

	event := &logger.Launch{
		Command:        argv,
		ExitCode:       status.Code,
		DurationMicros: elapsed.Microseconds(),
	}
	if status.Signaled {
		event.Signal = status.Signal.String()
	}
	s.record(event)
}

// PrintBanner writes the welcome message shown when a session starts.
func (s *Shell) PrintBanner() {
	w := s.VirtualOS.Stdout()
	rule := strings.Repeat("-", 80)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\t\t| %s |\n", s.Color.Title("Welcome to "+strings.ToUpper(s.Name)+"."))
	fmt.Fprintln(w, rule)
	s.printUsage(w, true)
}

func (s *Shell) printUsage(w io.Writer, numbered bool) {
	fmt.Fprintln(w, "Type command name and argument(s), and hit ENTER.")
	fmt.Fprintln(w, "The following are built in:")
	for i, name := range s.Builtins.Names() {
		if numbered {
			fmt.Fprintf(w, "%d . %s\n", i+1, name)
		} else {
			fmt.Fprintln(w, name)
		}
	}
	fmt.Fprintln(w, "Use the man command for information on other commands.")
}

func (s *Shell) errorf(format string, a ...interface{}) {
	fmt.Fprintf(s.VirtualOS.Stderr(), "%s: %s\n", s.Color.Error(s.Name), fmt.Sprintf(format, a...))
}

func (s *Shell) record(event logger.LogType) {
	if err := s.Events.Record(event); err != nil {
		s.Log.Warn("couldn't record event", "error", err)
	}
}
