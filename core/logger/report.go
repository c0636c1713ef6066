package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Sessions    SessionReport     `json:"session_report"`
	Builtin     BuiltinReport     `json:"builtin_report"`
	Launch      LaunchReport      `json:"launch_report"`
	LaunchError LaunchErrorReport `json:"launch_error_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		r.Sessions.Started++
	case *SessionEnd:
		r.Sessions.EndReasons.Increment(event.Reason)
	case *Builtin:
		r.Builtin.update(event)
	case *Launch:
		r.Launch.update(event)
	case *LaunchError:
		r.LaunchError.update(event)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type SessionReport struct {
	Started    int        `json:"started"`
	EndReasons StrCounter `json:"end_reasons"`
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *BuiltinReport) update(b *Builtin) {
	if len(b.Command) > 0 {
		r.CommandNames.Increment(b.Command[0])
	}
}

type LaunchReport struct {
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Exit codes, or the signal that killed the child.
	Results StrCounter `json:"results"`
	// Commands holds the full command lines in the order they ran.
	Commands []string `json:"commands"`
}

func (r *LaunchReport) update(l *Launch) {
	if len(l.Command) > 0 {
		r.CommandNames.Increment(l.Command[0])
	}
	if l.Signal != "" {
		r.Results.Increment(l.Signal)
	} else {
		r.Results.Increment(fmt.Sprintf("exit %d", l.ExitCode))
	}
	r.Commands = append(r.Commands, strings.Join(l.Command, " "))
}

type LaunchErrorReport struct {
	Failures *PathCounter `json:"failures"`
}

func (r *LaunchErrorReport) update(l *LaunchError) {
	if r.Failures == nil {
		r.Failures = NewPathCounter("command", "stage", "error")
	}

	name := ""
	if len(l.Command) > 0 {
		name = l.Command[0]
	}
	r.Failures.Increment(name, l.Stage, l.Error)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for the given key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of distinct tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given tuple.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
