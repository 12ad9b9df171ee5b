package debug

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saveAndRestoreState saves the debug package state and returns a cleanup function
func saveAndRestoreState() func() {
	originalDebug := EnableDebug
	originalMode := MCPMode
	originalOutput := debugOutput
	originalFile := debugFile
	return func() {
		EnableDebug = originalDebug
		MCPMode = originalMode
		debugOutput = originalOutput
		debugFile = originalFile
	}
}

func TestIsDebugEnabled(t *testing.T) {
	defer saveAndRestoreState()()
	t.Setenv("DEBUG", "")

	EnableDebug = "false"
	MCPMode = false
	assert.False(t, IsDebugEnabled())

	EnableDebug = "true"
	assert.True(t, IsDebugEnabled())

	EnableDebug = "invalid"
	assert.False(t, IsDebugEnabled())

	t.Setenv("DEBUG", "1")
	assert.True(t, IsDebugEnabled())

	// MCP mode wins over everything
	MCPMode = true
	assert.False(t, IsDebugEnabled())
}

func TestEnable(t *testing.T) {
	defer saveAndRestoreState()()
	t.Setenv("DEBUG", "")

	EnableDebug = "false"
	MCPMode = false
	Enable()
	assert.True(t, IsDebugEnabled())
}

func TestLog(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"
	MCPMode = false
	Log("TEST", "Hello %s", "World")

	assert.Contains(t, buf.String(), "[DEBUG:TEST] Hello World")
}

func TestLog_MCPMode(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"
	SetMCPMode(true)
	Log("TEST", "Should not appear")
	Printf("nor this")

	assert.Empty(t, buf.String())
}

func TestComponentLoggers(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"
	MCPMode = false

	LogConfig("loaded %s\n", ".rootstem.kdl")
	LogBatch("%d files\n", 3)
	LogMCP("tool %s\n", "stem")
	Printf("plain\n")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG:CONFIG] loaded .rootstem.kdl")
	assert.Contains(t, out, "[DEBUG:BATCH] 3 files")
	assert.Contains(t, out, "[DEBUG:MCP] tool stem")
	assert.Contains(t, out, "[DEBUG] plain")
}

func TestNilOutputIsSilent(t *testing.T) {
	defer saveAndRestoreState()()

	EnableDebug = "true"
	MCPMode = false
	SetDebugOutput(nil)
	assert.NotPanics(t, func() { Log("TEST", "dropped") })
}

func TestDebugLogFile(t *testing.T) {
	defer saveAndRestoreState()()
	t.Setenv("TMPDIR", t.TempDir())

	EnableDebug = "true"
	MCPMode = false
	path, err := InitDebugLogFile()
	require.NoError(t, err)

	LogBatch("written to file\n")
	require.NoError(t, CloseDebugLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")

	// closing twice is harmless
	assert.NoError(t, CloseDebugLog())
}

func TestMCPModeLogsToFile(t *testing.T) {
	defer saveAndRestoreState()()
	t.Setenv("TMPDIR", t.TempDir())

	EnableDebug = "true"
	SetMCPMode(true)
	assert.False(t, IsDebugEnabled())

	path, err := InitDebugLogFile()
	require.NoError(t, err)
	assert.True(t, IsDebugEnabled())

	LogMCP("tool %s\n", "trace")
	require.NoError(t, CloseDebugLog())
	assert.False(t, IsDebugEnabled())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG:MCP] tool trace")
}
