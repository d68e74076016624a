package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	assert.Equal(t, log.WarnLevel, l.GetLevel())

	l.Info("hidden")
	l.WithPrefix("store").Warn("shown", "key", "jobs")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "store")
	assert.Contains(t, out, "key=jobs")

	assert.Equal(t, log.InfoLevel, New(&buf, "loud").GetLevel())
}
