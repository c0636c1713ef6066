package commands

import "fmt"

// Status tells the main loop whether to read another line.
type Status int

const (
	Continue Status = iota
	Stop
)

func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ShellBuiltin is a command that runs inside the shell process.
type ShellBuiltin interface {
	Main(s *Shell, args Argv) Status
}

type ShellBuiltinFunc func(s *Shell, args Argv) Status

func (f ShellBuiltinFunc) Main(s *Shell, args Argv) Status {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// BuiltinEntry pairs a command name with its implementation.
type BuiltinEntry struct {
	Name    string
	Builtin ShellBuiltin
}

// Registry is an ordered, read-only set of builtins.
type Registry struct {
	entries []BuiltinEntry
}

// NewRegistry creates a registry holding a copy of entries.
func NewRegistry(entries ...BuiltinEntry) *Registry {
	return &Registry{entries: append([]BuiltinEntry(nil), entries...)}
}

// Lookup finds the builtin whose name exactly matches name.
func (r *Registry) Lookup(name string) (ShellBuiltin, bool) {
	for _, entry := range r.entries {
		if entry.Name == name {
			return entry.Builtin, true
		}
	}
	return nil, false
}

// Names lists the builtin names in registration order.
func (r *Registry) Names() []string {
	var out []string
	for _, entry := range r.entries {
		out = append(out, entry.Name)
	}
	return out
}

// AllBuiltins holds the shell builtins in the order help lists them.
var AllBuiltins = NewRegistry(
	BuiltinEntry{Name: "cd", Builtin: ShellBuiltinFunc(Cd)},
	BuiltinEntry{Name: "help", Builtin: ShellBuiltinFunc(Help)},
	BuiltinEntry{Name: "exit", Builtin: ShellBuiltinFunc(Exit)},
)

// Cd is the cd shell builtin. It changes the directory of the shell process
// itself so later children start there.
func Cd(s *Shell, args Argv) Status {
	if len(args) < 2 {
		s.errorf("expected argument to %q", args[0])
		return Continue
	}

	if err := s.VirtualOS.Chdir(args[1]); err != nil {
		s.errorf("%v", err)
	}
	return Continue
}

// Help prints usage and the builtin list, arguments are ignored.
func Help(s *Shell, args Argv) Status {
	s.printUsage(s.VirtualOS.Stdout(), false)
	return Continue
}

// Exit quits the shell, arguments are ignored.
func Exit(s *Shell, args Argv) Status {
	return Stop
}
