package ttylog

// FD identifies the standard stream an IO event was seen on.
type FD int

const (
	FDStdin  FD = 0
	FDStdout FD = 1
	FDStderr FD = 2
)

// IO is data read from or written to a standard stream.
type IO struct {
	Fd   FD
	Data []byte
}

// Entry is a single recorded terminal event.
type Entry struct {
	TimestampMicros int64
	// IO is set for stream events, a nil IO marks the end of the recording.
	IO *IO
}

// IsClose reports whether the entry marks the end of the recording.
func (e *Entry) IsClose() bool {
	return e.IO == nil
}
