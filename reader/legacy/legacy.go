// Package legacy reads line-delimited session logs: one JSON record per
// line, each already in the {type, timestamp, message} logline shape.
package legacy

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sonnes/lekhak/core"
)

// Reader reads line-delimited session files.
type Reader struct {
	// Dir is the session directory used by ReadSession and ReadAll.
	Dir string
}

// maxLineSize is the maximum line size (1 MB). Tool results can exceed the
// default 64 KB bufio.Scanner buffer.
const maxLineSize = 1 << 20

// ReadFile parses a single line-delimited session file.
func (r *Reader) ReadFile(path string) (*core.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	defer f.Close()

	loglines, err := scanEntries(f)
	if err != nil {
		return nil, fmt.Errorf("scan session file: %w", err)
	}

	name := filepath.Base(path)
	return &core.Transcript{
		SessionID: strings.TrimSuffix(name, filepath.Ext(name)),
		Title:     deriveTitle(loglines),
		Loglines:  loglines,
	}, nil
}

// ReadSession locates and parses a session by its ID under Dir.
func (r *Reader) ReadSession(sessionID string) (*core.Transcript, error) {
	path := filepath.Join(r.Dir, sessionID+".jsonl")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("session %s not found in %s", sessionID, r.Dir)
	}
	return r.ReadFile(path)
}

// ReadAll parses every .jsonl session under Dir, skipping unparseable files.
func (r *Reader) ReadAll() ([]*core.Transcript, error) {
	dirEntries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("read session directory: %w", err)
	}

	var all []*core.Transcript
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".jsonl") {
			continue
		}
		t, err := r.ReadFile(filepath.Join(r.Dir, de.Name()))
		if err != nil {
			continue
		}
		all = append(all, t)
	}
	return all, nil
}

// scanEntries reads lines into log entries, skipping lines that do not decode.
func scanEntries(r io.Reader) ([]core.LogEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, maxLineSize), maxLineSize)

	var loglines []core.LogEntry
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry core.LogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		loglines = append(loglines, entry)
	}
	return loglines, scanner.Err()
}

// deriveTitle extracts a title from the first user text, truncated to 80
// characters on a word boundary.
func deriveTitle(loglines []core.LogEntry) string {
	for _, entry := range loglines {
		if entry.Message.Role != core.RoleUser {
			continue
		}
		content := entry.Message.Content
		if content.IsText {
			if text := strings.TrimSpace(content.Text); text != "" {
				return truncate(text, 80)
			}
			continue
		}
		for _, b := range content.Blocks {
			if b.Type != core.BlockText {
				continue
			}
			if text := strings.TrimSpace(b.Text); text != "" {
				return truncate(text, 80)
			}
		}
	}
	return ""
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	head := string(runes[:maxLen])
	if i := strings.LastIndex(head, " "); i > 0 {
		return head[:i] + "..."
	}
	return head + "..."
}
