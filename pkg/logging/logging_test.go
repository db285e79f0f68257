package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json output", func(t *testing.T) {
		var out bytes.Buffer
		logger, err := New("debug", "json", &out)
		require.NoError(t, err)
		assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

		logger.WithField("path", "potion").Info("saved item")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
		assert.Equal(t, "saved item", entry["msg"])
		assert.Equal(t, "potion", entry["path"])
		assert.Equal(t, "info", entry["level"])
	})

	t.Run("text output filters by level", func(t *testing.T) {
		var out bytes.Buffer
		logger, err := New("warn", "text", &out)
		require.NoError(t, err)

		logger.Info("hidden")
		assert.Empty(t, out.String())

		logger.Warn("shown")
		assert.Contains(t, out.String(), "shown")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New("loud", "text", nil)
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := New("info", "xml", nil)
		assert.Error(t, err)
	})
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() { logger.Info("nothing") })
}
