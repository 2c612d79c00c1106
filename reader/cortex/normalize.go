package cortex

import (
	"bytes"
	"encoding/json"

	"github.com/sonnes/lekhak/core"
)

// Cortex wraps tool and thinking payloads in an extra object keyed by the
// block type. Normalization flattens those wrappers into the canonical block
// shape; blocks already in canonical form pass through unchanged, so
// normalizing twice equals normalizing once.

type rawBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`

	// Thinking is a plain string in canonical form or a {text, signature}
	// object in the nested form.
	Thinking json.RawMessage `json:"thinking"`

	// Canonical tool_use fields.
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`

	// Canonical tool_result fields.
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`

	// Nested wrappers; presence marks the non-canonical form.
	ToolUse    *rawToolUse    `json:"tool_use"`
	ToolResult *rawToolResult `json:"tool_result"`
}

type rawToolUse struct {
	ToolUseID string         `json:"tool_use_id"`
	Name      string         `json:"name"`
	Input     map[string]any `json:"input"`
}

type rawToolResult struct {
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
}

type rawThinking struct {
	Text      string `json:"text"`
	Signature string `json:"signature"`
}

// normalizeContent applies normalizeBlock to every element, preserving order.
func normalizeContent(raw []json.RawMessage) []core.ContentBlock {
	blocks := make([]core.ContentBlock, 0, len(raw))
	for _, r := range raw {
		blocks = append(blocks, normalizeBlock(r))
	}
	return blocks
}

// normalizeBlock maps one source block to the flat canonical shape,
// dispatching on the block's type tag. Unrecognized tags pass through with
// their tag and text preserved, and non-object elements such as bare strings
// become text blocks. Nothing is dropped.
func normalizeBlock(raw json.RawMessage) core.ContentBlock {
	var b rawBlock
	if err := json.Unmarshal(raw, &b); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			s = string(bytes.TrimSpace(raw))
		}
		return core.ContentBlock{Type: core.BlockText, Text: s}
	}

	switch core.BlockType(b.Type) {
	case core.BlockThinking:
		return core.ContentBlock{
			Type:     core.BlockThinking,
			Thinking: flattenThinking(b.Thinking),
		}

	case core.BlockToolUse:
		if b.ToolUse != nil {
			return core.ContentBlock{
				Type:  core.BlockToolUse,
				ID:    b.ToolUse.ToolUseID,
				Name:  b.ToolUse.Name,
				Input: b.ToolUse.Input,
			}
		}
		return core.ContentBlock{
			Type:  core.BlockToolUse,
			ID:    b.ID,
			Name:  b.Name,
			Input: b.Input,
		}

	case core.BlockToolResult:
		if b.ToolResult != nil {
			return core.ContentBlock{
				Type:      core.BlockToolResult,
				ToolUseID: b.ToolResult.ToolUseID,
				Content:   flattenResultContent(b.ToolResult.Content),
			}
		}
		return core.ContentBlock{
			Type:      core.BlockToolResult,
			ToolUseID: b.ToolUseID,
			Content:   flattenResultContent(b.Content),
		}

	default:
		// Pass-through for "text" and any unrecognized kind.
		return core.ContentBlock{
			Type: core.BlockType(b.Type),
			Text: b.Text,
		}
	}
}

// flattenThinking accepts the flat string form or the nested {text, signature}
// object, discarding the signature.
func flattenThinking(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	var nested rawThinking
	if err := json.Unmarshal(raw, &nested); err != nil {
		return ""
	}
	return nested.Text
}

// flattenResultContent accepts tool_result content as a plain string or a
// block list. Block lists reduce to the text of the first text-typed block;
// an empty string when none is found.
func flattenResultContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}

	var blocks []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}
	for _, b := range blocks {
		if b.Type == "text" {
			return b.Text
		}
	}
	return ""
}
