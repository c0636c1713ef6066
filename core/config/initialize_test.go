package config

import (
	"io"
	"io/fs"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, tempDir, cfg.Dir())

	t.Run("CreateSessionLog", func(t *testing.T) {
		fd, err := cfg.CreateSessionLog("session.cast")
		assert.Nil(t, err)
		fd.Close()

		assert.FileExists(t, filepath.Join(tempDir, LogsDirName, "session.cast"))
	})

	t.Run("EventLog", func(t *testing.T) {
		fd, err := cfg.OpenEventLog()
		require.NoError(t, err)
		io.WriteString(fd, "{}\n")
		fd.Close()

		fd, err = cfg.ReadEventLog()
		require.NoError(t, err)
		defer fd.Close()
		contents, err := io.ReadAll(fd)
		require.NoError(t, err)
		assert.Equal(t, "{}\n", string(contents))
	})

	t.Run("LoadConfigFile", func(t *testing.T) {
		cfg, err := Load(filepath.Join(tempDir, ConfigurationName))
		require.NoError(t, err)
		assert.Equal(t, tempDir, cfg.Dir())
	})

	t.Run("HistoryPath", func(t *testing.T) {
		cfg.HistoryFile = "history"
		assert.Equal(t, filepath.Join(tempDir, "history"), cfg.HistoryPath())
	})
}

func TestInitializeKeepsExisting(t *testing.T) {
	tempDir := t.TempDir()
	custom := []byte("prompt: '% '\ncolor: never\n")
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ConfigurationName), custom, 0600))

	cfg, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0))
	require.NoError(t, err)
	assert.Equal(t, "% ", cfg.Prompt)
	assert.DirExists(t, filepath.Join(tempDir, LogsDirName))
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Equal(t, Default().Prompt, cfg.Prompt)

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
