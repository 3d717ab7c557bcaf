package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	}()

	t.Run("writes json lines to the log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "tracker.log")

		closeFn, err := Setup(Config{Level: "debug", File: path, JSON: true, Quiet: true})
		require.NoError(t, err)
		assert.Equal(t, log.DebugLevel, log.GetLevel())

		log.WithField("sessionID", "abc").Info("round recorded")
		require.NoError(t, closeFn())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"sessionID":"abc"`)
		assert.Contains(t, string(data), `"msg":"round recorded"`)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		closeFn, err := Setup(Config{Level: "chatty", Quiet: true})
		require.NoError(t, err)
		assert.Equal(t, log.InfoLevel, log.GetLevel())
		assert.NoError(t, closeFn())
	})
}
