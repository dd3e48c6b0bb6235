package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_Silent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("should not appear %d", 1)
	assert.Empty(t, buf.String())
}

func TestDebug_Verbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbose(false)

	SetVerbose(true)
	Debug("hello %s", "world")
	assert.Contains(t, buf.String(), "[DEBUG] hello world")
}

func TestSection(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbose(false)

	SetVerbose(true)
	Section("Ingestion")
	assert.Contains(t, buf.String(), "=== Ingestion ===")
}

func TestInfoWarn(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbose(false)

	SetVerbose(true)
	Info("indexed %d chunks", 3)
	Warn("retrying")
	assert.Contains(t, buf.String(), "[INFO] indexed 3 chunks")
	assert.Contains(t, buf.String(), "[WARN] retrying")
}
