package ttylog

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/josephlewis42/sdshell/core/vos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeConversions(t *testing.T) {
	cases := map[string]struct {
		microseconds int64
		seconds      float64
	}{
		"precision": {
			microseconds: 1,
			seconds:      1e-6,
		},
		"negative": {
			microseconds: -631119539e6,
			seconds:      -631119539,
		},
		"positive": {
			microseconds: 631119539e6,
			seconds:      631119539,
		},
		"bigprecise": {
			microseconds: 123456789987654,
			seconds:      123456789.987654,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s2m := secondsToMicroseconds(tc.seconds)
			m2s := microsecondsToSeconds(tc.microseconds)

			// Only allow delta to be to the NS
			assert.InDelta(t, m2s, tc.seconds, float64(time.Nanosecond)/float64(time.Second))
			assert.Equal(t, s2m, tc.microseconds)
		})
	}
}

func TestRecorderReplay(t *testing.T) {
	cast := &bytes.Buffer{}
	out := &bytes.Buffer{}
	wrapped := vos.NewVIOAdapter(strings.NewReader("ls\n"), out, out)

	recorder := NewRecorder(wrapped, NewAsciicastLogSink(cast, "/usr/bin/sdshell"), nil)
	tick := time.Date(2006, 1, 2, 3, 4, 5, 0, time.UTC)
	recorder.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	io.WriteString(recorder.Stdout(), "> ")
	buf := make([]byte, 16)
	n, err := recorder.Stdin().Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ls\n", string(buf[:n]))
	io.WriteString(recorder.Stderr(), "sdshell: ls: not found\n")
	require.NoError(t, recorder.Close())

	assert.Equal(t, "> sdshell: ls: not found\n", out.String())

	lines := strings.Split(strings.TrimSpace(cast.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"version":2`)
	assert.Equal(t, `[0,"o","> "]`, lines[1])
	assert.Equal(t, `[1,"i","ls\n"]`, lines[2])

	var entries []*Entry
	err = Replay(NewAsciicastLogSource(bytes.NewReader(cast.Bytes())), func(e *Entry) error {
		entries = append(entries, e)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, FDStdin, entries[1].IO.Fd)
	assert.Equal(t, int64(2e6), entries[2].TimestampMicros)

	replayed := &bytes.Buffer{}
	require.NoError(t, Replay(NewAsciicastLogSource(bytes.NewReader(cast.Bytes())), NewClientOutput(replayed)))
	assert.Equal(t, "> sdshell: ls: not found\n", replayed.String())
}

func TestRealTimePlaybackCapsSleep(t *testing.T) {
	var got []int64
	sink := NewRealTimePlayback(time.Millisecond, func(e *Entry) error {
		got = append(got, e.TimestampMicros)
		return nil
	})

	start := time.Now()
	for _, ts := range []int64{0, 60e6, 120e6} {
		require.NoError(t, sink(&Entry{TimestampMicros: ts, IO: &IO{Fd: FDStdout}}))
	}

	assert.True(t, time.Since(start) < time.Second)
	assert.Equal(t, []int64{0, 60e6, 120e6}, got)
}

func TestAsciicastLogSink_keepsMarkupReadable(t *testing.T) {
	cast := &bytes.Buffer{}
	sink := NewAsciicastLogSink(cast, "sdshell")

	require.NoError(t, sink(&Entry{IO: &IO{Fd: FDStdout, Data: []byte("<a & b> ")}}))

	lines := strings.Split(strings.TrimSpace(cast.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[0,"o","<a & b> "]`, lines[1])
	assert.NotContains(t, cast.String(), `\u003`)
}
