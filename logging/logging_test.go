package logging

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("manip", false, log.New(&buf, "", 0))

	l.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String(), "debug output should be suppressed when debug is off")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	assert.Contains(t, buf.String(), "[manip] DEBUG: shown 2")

	buf.Reset()
	l.Warnf("careful")
	assert.Contains(t, buf.String(), "[manip] WARN: careful")
}

func TestOrNop(t *testing.T) {
	l := OrNop(nil)
	if l == nil {
		t.Fatal("OrNop should never return nil")
	}
	assert.False(t, l.DebugEnabled())

	d := NewDefaultLogger("", true)
	assert.Same(t, d, OrNop(d))
}
