package commands

import (
	"bufio"
	"errors"
	"io"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/sdshell/core/vos"
)

// LineReader prompts for and reads one command line at a time.
type LineReader interface {
	// ReadLine writes the prompt and blocks until a full line is available.
	// It returns io.EOF once the input is exhausted.
	ReadLine(prompt string) (string, error)
}

type bufferedLineReader struct {
	r *bufio.Reader
	w io.Writer
}

var _ LineReader = (*bufferedLineReader)(nil)

// NewBufferedLineReader reads lines of any length from in, writing prompts
// to out.
func NewBufferedLineReader(in io.Reader, out io.Writer) LineReader {
	return &bufferedLineReader{
		r: bufio.NewReader(in),
		w: out,
	}
}

func (b *bufferedLineReader) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(b.w, prompt); err != nil {
		return "", err
	}

	line, err := b.r.ReadString('\n')
	if errors.Is(err, io.EOF) && len(line) > 0 {
		// The final line wasn't newline terminated.
		return line, nil
	}
	return line, err
}

// ReadlineLineReader reads lines from a terminal with line editing.
type ReadlineLineReader struct {
	Readline *readline.Instance
}

var _ LineReader = (*ReadlineLineReader)(nil)

// NewReadlineLineReader creates a terminal line reader over the given
// streams. If historyFile is non-empty lines are saved to it.
func NewReadlineLineReader(vio vos.VIO, historyFile string) (*ReadlineLineReader, error) {
	cfg := &readline.Config{
		Stdin:       readline.NewCancelableStdin(vio.Stdin()),
		Stdout:      vio.Stdout(),
		Stderr:      vio.Stderr(),
		HistoryFile: historyFile,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &ReadlineLineReader{Readline: rl}, nil
}

func (r *ReadlineLineReader) ReadLine(prompt string) (string, error) {
	r.Readline.SetPrompt(prompt)
	line, err := r.Readline.Readline()
	if err == readline.ErrInterrupt {
		// Interrupt clears the line.
		return "", nil
	}
	return line, err
}

// Close restores the terminal.
func (r *ReadlineLineReader) Close() error {
	return r.Readline.Close()
}
