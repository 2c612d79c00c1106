// Package core defines the canonical transcript format — a normalized
// representation of chat session logs that all readers produce and all
// renderers consume.
package core

import (
	"encoding/json"
	"fmt"
)

// Transcript is the top-level container for a single session. The entry list
// is serialized under "loglines", which is the shape renderers consume.
type Transcript struct {
	SessionID  string     `json:"session_id,omitempty"`
	Title      string     `json:"title,omitempty"`
	WorkingDir string     `json:"working_directory,omitempty"`
	Loglines   []LogEntry `json:"loglines"`
}

// LogEntry is a single record in the transcript. Entries keep their source
// order; insertion order is chronological order is rendering order.
type LogEntry struct {
	Type      string  `json:"type"`
	Timestamp string  `json:"timestamp,omitempty"` // ISO-8601, empty when the source carries none
	Message   Message `json:"message"`
}

// Message is the payload of a log entry.
type Message struct {
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

// Content is either a plain string or an ordered list of content blocks.
// Legacy logs use plain strings for simple messages; Cortex logs always use
// block lists.
type Content struct {
	Text   string
	Blocks []ContentBlock

	// IsText distinguishes plain-string content from a block list,
	// including the empty-string and empty-list cases.
	IsText bool
}

// TextContent wraps a plain string as message content.
func TextContent(s string) Content {
	return Content{Text: s, IsText: true}
}

// BlockContent wraps a block list as message content.
func BlockContent(blocks []ContentBlock) Content {
	return Content{Blocks: blocks}
}

// MarshalJSON emits either a JSON string or a block array, mirroring the
// source wire shape.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.IsText {
		return json.Marshal(c.Text)
	}
	if c.Blocks == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Blocks)
}

// UnmarshalJSON accepts either a JSON string or a block array.
func (c *Content) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		c.Blocks = nil
		c.IsText = true
		return json.Unmarshal(data, &c.Text)
	}
	c.Text = ""
	c.IsText = false
	if err := json.Unmarshal(data, &c.Blocks); err != nil {
		return fmt.Errorf("decode content blocks: %w", err)
	}
	return nil
}

// ContentBlock is one piece of a message in the flat canonical shape. The
// Type field determines which other fields are populated; no block retains a
// source-specific nested wrapper.
type ContentBlock struct {
	Type     BlockType `json:"type"`
	Text     string    `json:"text,omitempty"`     // set for "text"
	Thinking string    `json:"thinking,omitempty"` // set for "thinking"; always a flat string

	ID    string         `json:"id,omitempty"`    // set for "tool_use"
	Name  string         `json:"name,omitempty"`  // tool name, set for "tool_use"
	Input map[string]any `json:"input,omitempty"` // tool input params, set for "tool_use"

	ToolUseID string `json:"tool_use_id,omitempty"` // set for "tool_result"
	Content   string `json:"content,omitempty"`     // flattened tool output, set for "tool_result"
}

// BlockType enumerates content block kinds. Unrecognized tags pass through
// readers unchanged rather than being dropped.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockThinking   BlockType = "thinking"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
)

// Role values expected in log entries. Any other string passes through.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
