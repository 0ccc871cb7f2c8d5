package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewWithWriterLevels(t *testing.T) {
	var quiet bytes.Buffer
	logger := NewWithWriter(&quiet, false)
	logger.Debug("debug hidden")
	logger.Info("info hidden")
	logger.Warn("warn shown", zap.String("path", "src/config.json"))
	_ = logger.Sync()

	assert.NotContains(t, quiet.String(), "hidden")
	assert.Contains(t, quiet.String(), "warn shown")
	assert.Contains(t, quiet.String(), "src/config.json")

	var verbose bytes.Buffer
	logger = NewWithWriter(&verbose, true)
	logger.Debug("debug shown")
	_ = logger.Sync()

	assert.Contains(t, verbose.String(), "debug shown")
}
