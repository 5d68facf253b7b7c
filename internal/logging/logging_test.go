package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithWriters("shaderplay", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, out.String())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	l.Infof("info")
	l.Warnf("warn")
	l.Errorf("boom: %s", "link")

	assert.Contains(t, out.String(), "[shaderplay] DEBUG: shown 2")
	assert.Contains(t, out.String(), "[shaderplay] INFO: info")
	assert.Contains(t, errOut.String(), "[shaderplay] WARN: warn")
	assert.Contains(t, errOut.String(), "[shaderplay] ERROR: boom: link")
	assert.NotContains(t, out.String(), "ERROR")
}

func TestDefaultLogger_NoPrefix(t *testing.T) {
	var out bytes.Buffer
	l := NewWithWriters("", false, &out, &out)
	l.Infof("plain")
	assert.Contains(t, out.String(), "INFO: plain")
	assert.NotContains(t, out.String(), "[")
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Errorf("ignored")
}
