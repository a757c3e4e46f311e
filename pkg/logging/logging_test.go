package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("item requested", "group_id", "g1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "item requested")
	assert.Contains(t, out, "group_id=g1")
	assert.NotContains(t, out, "\x1b[", "no color codes when not writing to a terminal")
}
