package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/sonnes/lekhak/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textEntry(role, text string) core.LogEntry {
	return core.LogEntry{
		Type: role,
		Message: core.Message{
			Role: role,
			Content: core.BlockContent([]core.ContentBlock{
				{Type: core.BlockText, Text: text},
			}),
		},
	}
}

func TestRenderHeader(t *testing.T) {
	now := time.Now().UTC()
	tr := &core.Transcript{
		SessionID:  "abc-123",
		WorkingDir: "/Users/test/project",
		Loglines: []core.LogEntry{
			{
				Type:      core.RoleUser,
				Timestamp: now.Format(time.RFC3339Nano),
				Message: core.Message{
					Role: core.RoleUser,
					Content: core.BlockContent([]core.ContentBlock{
						{Type: core.BlockText, Text: "Hello"},
					}),
				},
			},
			{
				Type: core.RoleAssistant,
				Message: core.Message{
					Role: core.RoleAssistant,
					Content: core.BlockContent([]core.ContentBlock{
						{Type: core.BlockToolUse, ID: "t1", Name: "Bash", Input: map[string]any{"command": "ls"}},
					}),
				},
			},
		},
	}

	r := &Renderer{Width: 100}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())

	assert.Contains(t, out, "Session abc-123")
	assert.Contains(t, out, "abc-123")
	assert.Contains(t, out, "just now")
	assert.Contains(t, out, "/Users/test/project")
	assert.Contains(t, out, "ENTRIES")
	assert.Contains(t, out, "TURNS")
	assert.Contains(t, out, "TOOL CALLS")
}

func TestRenderBasicTranscript(t *testing.T) {
	tr := &core.Transcript{
		SessionID: "test-basic",
		Title:     "Fix the auth bug",
		Loglines: []core.LogEntry{
			textEntry(core.RoleUser, "Fix the auth bug"),
			{
				Type: core.RoleAssistant,
				Message: core.Message{
					Role: core.RoleAssistant,
					Content: core.BlockContent([]core.ContentBlock{
						{Type: core.BlockToolUse, ID: "t1", Name: "Bash", Input: map[string]any{"command": "grep -rn auth src/"}},
						{Type: core.BlockText, Text: "Found the issue in the auth module."},
					}),
				},
			},
			{
				Type: core.RoleUser,
				Message: core.Message{
					Role: core.RoleUser,
					Content: core.BlockContent([]core.ContentBlock{
						{Type: core.BlockToolResult, ToolUseID: "t1", Content: "auth.go:12: func Auth()"},
					}),
				},
			},
		},
	}

	r := &Renderer{Width: 80}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())

	assert.Contains(t, out, "USER")
	assert.Contains(t, out, "Fix the auth bug")
	assert.Contains(t, out, "ASSISTANT")
	assert.Contains(t, out, "Bash")
	assert.Contains(t, out, "grep -rn auth src/")
	assert.Contains(t, out, "Found the issue in the auth module.")
}

func TestRenderSkipsConsumedToolResults(t *testing.T) {
	tr := &core.Transcript{
		SessionID: "test-skip-toolresult",
		Loglines: []core.LogEntry{
			textEntry(core.RoleUser, "Hello"),
			{
				Type: core.RoleAssistant,
				Message: core.Message{
					Role: core.RoleAssistant,
					Content: core.BlockContent([]core.ContentBlock{
						{Type: core.BlockToolUse, ID: "t1", Name: "Read", Input: map[string]any{"file_path": "main.go"}},
					}),
				},
			},
			{
				Type: core.RoleUser,
				Message: core.Message{
					Role: core.RoleUser,
					Content: core.BlockContent([]core.ContentBlock{
						{Type: core.BlockToolResult, ToolUseID: "t1", Content: "package main"},
					}),
				},
			},
			textEntry(core.RoleAssistant, "Done."),
		},
	}

	r := &Renderer{Width: 80}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())
	// Tool-result-only user entry should be skipped (consumed by tool_use).
	count := strings.Count(out, "USER")
	assert.Equal(t, 1, count, "should have exactly 1 USER card, got output:\n%s", out)
}

func TestRenderPlainStringContent(t *testing.T) {
	tr := &core.Transcript{
		SessionID: "plain",
		Loglines: []core.LogEntry{
			{
				Type:    core.RoleUser,
				Message: core.Message{Role: core.RoleUser, Content: core.TextContent("just a plain string")},
			},
		},
	}

	r := &Renderer{Width: 80}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "just a plain string")
}

func TestRenderTruncation(t *testing.T) {
	tr := &core.Transcript{
		SessionID: "test-truncate",
		Loglines: []core.LogEntry{
			textEntry(core.RoleUser, strings.Repeat("a", 300)),
		},
	}

	r := &Renderer{Width: 60}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "...")
}

func TestRenderMultiTurn(t *testing.T) {
	tr := &core.Transcript{
		SessionID: "test-multi",
		Loglines: []core.LogEntry{
			textEntry(core.RoleUser, "First question"),
			textEntry(core.RoleAssistant, "First answer"),
			textEntry(core.RoleUser, "Second question"),
			textEntry(core.RoleAssistant, "Second answer"),
		},
	}

	r := &Renderer{Width: 80}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "First question")
	assert.Contains(t, out, "First answer")
	assert.Contains(t, out, "Second question")
	assert.Contains(t, out, "Second answer")
	assert.Equal(t, 2, strings.Count(out, "USER"))
	assert.Equal(t, 2, strings.Count(out, "ASSISTANT"))
}

func TestRenderEmptyTranscript(t *testing.T) {
	tr := &core.Transcript{
		SessionID: "empty",
		Loglines:  []core.LogEntry{},
	}

	r := &Renderer{Width: 80}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "Session empty")
	assert.NotContains(t, out, "USER")
	assert.NotContains(t, out, "ASSISTANT")
}

func TestRenderThinkingBlocks(t *testing.T) {
	tr := &core.Transcript{
		SessionID: "test-thinking",
		Loglines: []core.LogEntry{
			textEntry(core.RoleUser, "Help"),
			{
				Type: core.RoleAssistant,
				Message: core.Message{
					Role: core.RoleAssistant,
					Content: core.BlockContent([]core.ContentBlock{
						{Type: core.BlockThinking, Thinking: "Let me think about this..."},
						{Type: core.BlockText, Text: "Here's the answer."},
					}),
				},
			},
		},
	}

	r := &Renderer{Width: 80}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())
	assert.NotContains(t, out, "Let me think about this")
	assert.Contains(t, out, "Thinking...")
	assert.Contains(t, out, "Here's the answer.")
}

func TestRenderEntryTimestamps(t *testing.T) {
	tr := &core.Transcript{
		SessionID: "test-timestamps",
		Loglines: []core.LogEntry{
			{
				Type:      core.RoleUser,
				Timestamp: "2026-02-03T03:26:00.000000",
				Message: core.Message{
					Role:    core.RoleUser,
					Content: core.BlockContent([]core.ContentBlock{{Type: core.BlockText, Text: "Hello"}}),
				},
			},
			{
				Type:      core.RoleUser,
				Timestamp: "2026-02-03T03:26:05.000000",
				Message: core.Message{
					Role:    core.RoleUser,
					Content: core.BlockContent([]core.ContentBlock{{Type: core.BlockText, Text: "Still there?"}}),
				},
			},
		},
	}

	r := &Renderer{Width: 80}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "Feb 3, 2026")
	assert.Contains(t, out, "5s")
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1273, "1,273"},
		{1228873, "1,228,873"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in), "formatNumber(%d)", tt.in)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Millisecond, "<1s"},
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m 30s"},
		{5 * time.Minute, "5m"},
		{72*time.Hour + 44*time.Minute, "72h 44m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in), "formatDuration(%s)", tt.in)
	}
}
