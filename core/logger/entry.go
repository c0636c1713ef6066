package logger

// LogEntry is a single event in the log. Exactly one event field is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionId       string `json:"session_id,omitempty"`

	SessionStart *SessionStart `json:"session_start,omitempty"`
	SessionEnd   *SessionEnd   `json:"session_end,omitempty"`
	Builtin      *Builtin      `json:"builtin,omitempty"`
	Launch       *Launch       `json:"launch,omitempty"`
	LaunchError  *LaunchError  `json:"launch_error,omitempty"`
}

// LogType is implemented by every event that can be stored in a LogEntry.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry, or nil if none is set.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.SessionEnd != nil:
		return le.SessionEnd
	case le.Builtin != nil:
		return le.Builtin
	case le.Launch != nil:
		return le.Launch
	case le.LaunchError != nil:
		return le.LaunchError
	default:
		return nil
	}
}

// SessionStart is logged once when the shell starts reading commands.
type SessionStart struct {
	Interactive bool   `json:"interactive"`
	Wd          string `json:"wd"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// SessionEnd is logged when the main loop stops.
type SessionEnd struct {
	// Reason is "exit", "eof" or "command" for a single -c line.
	Reason string `json:"reason"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }

// Builtin is logged after a builtin runs.
type Builtin struct {
	Command []string `json:"command"`
	Status  string   `json:"status"`
}

func (e *Builtin) setOn(le *LogEntry) { le.Builtin = e }

// Launch is logged after an external program terminates.
type Launch struct {
	Command        []string `json:"command"`
	ExitCode       int      `json:"exit_code"`
	Signal         string   `json:"signal,omitempty"`
	DurationMicros int64    `json:"duration_micros"`
}

func (e *Launch) setOn(le *LogEntry) { le.Launch = e }

// LaunchError is logged when an external program couldn't be run.
type LaunchError struct {
	Command []string `json:"command"`
	Stage   string   `json:"stage"`
	Error   string   `json:"error"`
}

func (e *LaunchError) setOn(le *LogEntry) { le.LaunchError = e }
