package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionFiltering(t *testing.T) {
	SetLevel(slog.LevelDebug)
	t.Cleanup(func() { SetLevel(slog.LevelInfo) })

	buf := &bytes.Buffer{}
	logger := New(buf)

	logger.Info("no section")
	assert.Empty(t, buf.String(), "records without an enabled section are dropped")

	logger.Info("other section", "section", "parser")
	assert.Empty(t, buf.String())

	logger.Debug("typed", "section", "types")
	assert.Contains(t, buf.String(), "msg=typed")
	buf.Reset()

	logger.With("section", "memory").Debug("allocated", "id", 3)
	assert.Contains(t, buf.String(), "msg=allocated")
	assert.Contains(t, buf.String(), "section=memory")
	buf.Reset()

	logger.Warn("always shown")
	assert.Contains(t, buf.String(), "msg=\"always shown\"")
	assert.NotContains(t, buf.String(), "time=")
}

func TestLevel(t *testing.T) {
	SetLevel(slog.LevelInfo)
	buf := &bytes.Buffer{}
	logger := New(buf).With("section", "scenario")

	logger.Debug("hidden")
	assert.Empty(t, buf.String())
	logger.Info("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestIsEnabled(t *testing.T) {
	assert.True(t, isEnabled("types"))
	assert.True(t, isEnabled("types.unify"), "sections match by prefix")
	assert.False(t, isEnabled("backend"))
}
