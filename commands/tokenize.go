package commands

import "strings"

const (
	// Delimiters separate the words of a command line.
	Delimiters = " \t\r\n\a"

	// InitialArgvCapacity is the number of words Tokenize makes room for
	// before it needs to grow the vector.
	InitialArgvCapacity = 64
)

// Argv is a tokenized command line. Element 0 is the command name and the
// rest are its arguments. An empty Argv comes from a blank line.
type Argv []string

// Empty reports whether the line held no words.
func (a Argv) Empty() bool {
	return len(a) == 0
}

// Name returns the command name, or the empty string for a blank line.
func (a Argv) Name() string {
	if a.Empty() {
		return ""
	}
	return a[0]
}

// String joins the words with single spaces.
func (a Argv) String() string {
	return strings.Join(a, " ")
}

func isDelimiter(r rune) bool {
	return strings.ContainsRune(Delimiters, r)
}

// Tokenize splits line into the maximal runs of characters that aren't
// Delimiters. The words are copies and don't share memory with line.
func Tokenize(line string) Argv {
	argv := make(Argv, 0, InitialArgvCapacity)

	start := -1
	for i, r := range line {
		switch delim := isDelimiter(r); {
		case delim && start >= 0:
			argv = append(argv, strings.Clone(line[start:i]))
			start = -1
		case !delim && start < 0:
			start = i
		}
	}
	if start >= 0 {
		argv = append(argv, strings.Clone(line[start:]))
	}

	return argv
}
