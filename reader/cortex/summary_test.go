package cortex

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSummaryFromTitle(t *testing.T) {
	path := writeSession(t, t.TempDir(), "session.json",
		`{"title": "My Test Session Title", "session_id": "test", "history": []}`)
	assert.Equal(t, "My Test Session Title", Summary(path, DefaultSummaryLength))
}

func TestSummaryFallsBackToFirstUserMessage(t *testing.T) {
	path := writeSession(t, t.TempDir(), "session.json", `{
		"title": "",
		"session_id": "test",
		"history": [
			{"role": "assistant", "content": [{"type": "text", "text": "not me"}]},
			{"role": "user", "content": [{"type": "tool_result", "tool_use_id": "t1", "content": "nor me"}]},
			{"role": "user", "content": [{"type": "text", "text": "Hello world"}]}
		]
	}`)
	assert.Equal(t, "Hello world", Summary(path, DefaultSummaryLength))
}

func TestSummaryPlaceholderWhenNothingFound(t *testing.T) {
	path := writeSession(t, t.TempDir(), "session.json",
		`{"title": "", "session_id": "test", "history": []}`)
	assert.Equal(t, NoSummary, Summary(path, DefaultSummaryLength))
}

func TestSummaryTruncation(t *testing.T) {
	longTitle := strings.Repeat("A", 300)
	path := writeSession(t, t.TempDir(), "session.json",
		`{"title": "`+longTitle+`", "session_id": "test", "history": []}`)

	got := Summary(path, 50)
	assert.Len(t, got, 50)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestSummaryFailuresCollapseToPlaceholder(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		assert.Equal(t, NoSummary, Summary(filepath.Join(t.TempDir(), "missing.json"), 50))
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeSession(t, t.TempDir(), "bad.json", "{oops")
		assert.Equal(t, NoSummary, Summary(path, 50))
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"within budget", "short", 10, "short"},
		{"exactly at budget", "12345", 5, "12345"},
		{"over budget", "1234567890", 8, "12345..."},
		{"zero max means unbounded", "anything goes", 0, "anything goes"},
		{"tiny budget", "abcdef", 2, "ab"},
		{"multibyte over budget", strings.Repeat("é", 10), 8, strings.Repeat("é", 5) + "..."},
		{"multibyte within budget", "héllo", 10, "héllo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestSummaryTruncationMultibyte(t *testing.T) {
	longTitle := strings.Repeat("é", 100)
	path := writeSession(t, t.TempDir(), "session.json",
		`{"title": "`+longTitle+`", "session_id": "test", "history": []}`)

	got := Summary(path, 50)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 50, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}
