// Package compact provides a Transformer that replaces verbose tool content
// with short summaries for compact transcript viewing.
package compact

import (
	"fmt"
	"strings"

	"github.com/sonnes/lekhak/core"
)

// Config controls the compact transformer behavior.
type Config struct {
	StripThinking bool
}

// Compactor replaces verbose tool content with line-count summaries.
type Compactor struct {
	stripThinking bool
}

// New creates a Compactor from the given config.
func New(cfg Config) *Compactor {
	return &Compactor{stripThinking: cfg.StripThinking}
}

// Transform implements core.Transformer.
func (c *Compactor) Transform(t *core.Transcript) error {
	for i := range t.Loglines {
		c.compactEntry(&t.Loglines[i])
	}
	return nil
}

func (c *Compactor) compactEntry(e *core.LogEntry) {
	if e.Message.Content.IsText {
		return
	}
	if c.stripThinking {
		e.Message.Content.Blocks = filterThinking(e.Message.Content.Blocks)
	}
	for j := range e.Message.Content.Blocks {
		c.compactBlock(&e.Message.Content.Blocks[j])
	}
}

func filterThinking(blocks []core.ContentBlock) []core.ContentBlock {
	out := make([]core.ContentBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Type != core.BlockThinking {
			out = append(out, b)
		}
	}
	return out
}

func (c *Compactor) compactBlock(b *core.ContentBlock) {
	switch b.Type {
	case core.BlockToolResult:
		b.Content = lineSummary("output", b.Content)
	case core.BlockToolUse:
		c.compactToolUse(b)
	}
}

func (c *Compactor) compactToolUse(b *core.ContentBlock) {
	if b.Input == nil {
		return
	}
	switch strings.ToLower(b.Name) {
	case "write":
		summarizeMapField(b.Input, "content")
	case "edit":
		summarizeMapField(b.Input, "old_string")
		summarizeMapField(b.Input, "new_string")
	}
}

// lineSummary returns a summary like "[output: 245 lines]".
func lineSummary(label, s string) string {
	n := countLines(s)
	if n == 1 {
		return fmt.Sprintf("[%s: 1 line]", label)
	}
	return fmt.Sprintf("[%s: %d lines]", label, n)
}

// summarizeMapField replaces a string field in a map with a line-count summary.
func summarizeMapField(m map[string]any, key string) {
	v, ok := m[key]
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		return
	}
	m[key] = lineSummary(key, s)
}

// countLines returns the number of lines in s.
// An empty string has 0 lines. A string with no newline has 1 line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n") + 1
	if strings.HasSuffix(s, "\n") {
		n--
	}
	return n
}
