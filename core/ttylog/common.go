package ttylog

import (
	"io"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/josephlewis42/sdshell/core/vos"
)

// LogSink receives log events.
type LogSink func(t *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It reutrns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(logEntry *Entry) error {
		once.Do(func() {
			prevTimeMicros = logEntry.TimestampMicros
		})

		delta := logEntry.TimestampMicros - prevTimeMicros
		prevTimeMicros = logEntry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(logEntry)
	}
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(logEntry *Entry) error {
		if logEntry.IO != nil && logEntry.IO.Fd != FDStdin {
			if _, err := w.Write(logEntry.IO.Data); err != nil {
				return err
			}
		}
		return nil
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) (err error) {
	for {
		logEntry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(logEntry); err != nil {
			return err
		}
	}
}

// Recorder wraps a VIO and emits an event for everything that passes
// through it.
type Recorder struct {
	*vos.VIOAdapter
	mutex  sync.Mutex
	output LogSink
	log    hclog.Logger
	now    func() time.Time
}

func (r *Recorder) emit(entry *Entry) {
	r.mutex.Lock()
	err := r.output(entry)
	r.mutex.Unlock()
	if err != nil {
		r.log.Warn("couldn't record session event", "error", err)
	}
}

func (r *Recorder) recordIO(mockFd FD, data []byte) {
	r.emit(&Entry{
		TimestampMicros: r.now().UnixMicro(),
		IO: &IO{
			Fd:   mockFd,
			Data: data,
		},
	})
}

// Close records the end of the session, it doesn't close the wrapped streams.
func (r *Recorder) Close() error {
	r.emit(&Entry{TimestampMicros: r.now().UnixMicro()})
	return nil
}

var _ vos.VIO = (*Recorder)(nil)

type recorderReadCloser struct {
	r       *Recorder
	mockFd  FD
	wrapped io.ReadCloser
}

var _ io.ReadCloser = (*recorderReadCloser)(nil)

func (rc *recorderReadCloser) Read(p []byte) (int, error) {
	amount, err := rc.wrapped.Read(p)
	if amount > 0 {
		rc.r.recordIO(rc.mockFd, p[:amount])
	}
	return amount, err
}

func (rc *recorderReadCloser) Close() error {
	return rc.wrapped.Close()
}

type recorderWriteCloser struct {
	r       *Recorder
	mockFd  FD
	wrapped io.WriteCloser
}

var _ io.WriteCloser = (*recorderWriteCloser)(nil)

func (rc *recorderWriteCloser) Write(p []byte) (int, error) {
	amount, err := rc.wrapped.Write(p)
	if amount > 0 {
		rc.r.recordIO(rc.mockFd, p[:amount])
	}
	return amount, err
}

func (rc *recorderWriteCloser) Close() error {
	return rc.wrapped.Close()
}

// NewRecorder creates a recorder that forwards all events to output.
func NewRecorder(toWrap vos.VIO, output LogSink, log hclog.Logger) *Recorder {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	recorder := &Recorder{
		output: output,
		log:    log,
		now:    time.Now,
	}

	recorder.VIOAdapter = vos.NewVIOAdapter(
		&recorderReadCloser{mockFd: FDStdin, r: recorder, wrapped: toWrap.Stdin()},
		&recorderWriteCloser{mockFd: FDStdout, r: recorder, wrapped: toWrap.Stdout()},
		&recorderWriteCloser{mockFd: FDStderr, r: recorder, wrapped: toWrap.Stderr()},
	)

	return recorder
}
