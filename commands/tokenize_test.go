package commands

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		line     string
		expected Argv
	}{
		{"ls -la /tmp\n", Argv{"ls", "-la", "/tmp"}},
		{"  ls\t\t-la   /tmp  ", Argv{"ls", "-la", "/tmp"}},
		{"echo\ra\ab\n", Argv{"echo", "a", "b"}},
		{"single", Argv{"single"}},
		// Quotes and backslashes have no special meaning.
		{`echo "a b"`, Argv{"echo", `"a`, `b"`}},
		{`echo a\ b`, Argv{"echo", `a\`, "b"}},
		// Only the listed delimiters split words.
		{"a\vb\fc", Argv{"a\vb\fc"}},
		{"héllo wörld", Argv{"héllo", "wörld"}},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.line), func(t *testing.T) {
			assert.Equal(t, tc.expected, Tokenize(tc.line))
		})
	}
}

func TestTokenize_blank(t *testing.T) {
	for _, line := range []string{"", "\n", " \t\r\n\a", strings.Repeat(" ", 500)} {
		t.Run(fmt.Sprintf("%q", line), func(t *testing.T) {
			argv := Tokenize(line)

			assert.True(t, argv.Empty())
			assert.Equal(t, "", argv.Name())
		})
	}
}

func TestTokenize_delimiterRuns(t *testing.T) {
	single := Tokenize("a b c")
	runs := Tokenize("\t a \r\n\a  b\t\t\tc \n")

	assert.Equal(t, single, runs)
}

func TestTokenize_growsPastInitialCapacity(t *testing.T) {
	var words []string
	for i := 0; i < 200; i++ {
		words = append(words, fmt.Sprintf("w%d", i))
	}

	argv := Tokenize(strings.Join(words, " "))

	assert.Len(t, argv, 200)
	assert.Equal(t, "w0", argv[0])
	assert.Equal(t, "w199", argv[199])
}

func TestArgv(t *testing.T) {
	argv := Argv{"cd", "/tmp"}

	assert.False(t, argv.Empty())
	assert.Equal(t, "cd", argv.Name())
	assert.Equal(t, "cd /tmp", argv.String())
}
