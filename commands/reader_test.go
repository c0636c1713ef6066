package commands

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedLineReader(t *testing.T) {
	out := &bytes.Buffer{}
	long := strings.Repeat("x", 10000)
	r := NewBufferedLineReader(strings.NewReader("one\n"+long+"\nlast"), out)

	line, err := r.ReadLine("$ ")
	assert.NoError(t, err)
	assert.Equal(t, "one\n", line)

	line, err = r.ReadLine("$ ")
	assert.NoError(t, err)
	assert.Equal(t, long+"\n", line)

	line, err = r.ReadLine("$ ")
	assert.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = r.ReadLine("$ ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "$ $ $ $ ", out.String())
}
