package json

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sonnes/lekhak/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTranscript() *core.Transcript {
	return &core.Transcript{
		SessionID: "json-test",
		Title:     "A short session",
		Loglines: []core.LogEntry{
			{
				Type:    core.RoleUser,
				Message: core.Message{Role: core.RoleUser, Content: core.TextContent("hello")},
			},
			{
				Type: core.RoleAssistant,
				Message: core.Message{
					Role: core.RoleAssistant,
					Content: core.BlockContent([]core.ContentBlock{
						{Type: core.BlockText, Text: "hi there"},
					}),
				},
			},
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{}
	require.NoError(t, r.Render(&buf, testTranscript()))

	var got core.Transcript
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "json-test", got.SessionID)
	assert.Equal(t, "A short session", got.Title)
	require.Len(t, got.Loglines, 2)
	assert.Equal(t, "hello", got.Loglines[0].Message.Content.Text)
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestRenderIndent(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Indent: true}
	require.NoError(t, r.Render(&buf, testTranscript()))

	assert.Contains(t, buf.String(), "\n  \"session_id\"")

	var got core.Transcript
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "json-test", got.SessionID)
}
