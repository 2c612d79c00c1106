// Package cortex reads Cortex CLI session logs — single-JSON-document files
// carrying a session_id and a history of role-tagged records.
package cortex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sonnes/lekhak/core"
)

// Reader reads Cortex session files.
type Reader struct {
	// Dir is the session directory used by ReadSession and ReadAll.
	Dir string
}

// Raw JSON deserialization types. These mirror the document structure on disk.

type rawSession struct {
	Title            string      `json:"title"`
	SessionID        string      `json:"session_id"`
	WorkingDirectory string      `json:"working_directory"`
	History          []rawRecord `json:"history"`
}

type rawRecord struct {
	Role         string          `json:"role"`
	ID           string          `json:"id"`
	UserSentTime string          `json:"user_sent_time"`
	Content      json.RawMessage `json:"content"`
}

// IsSessionFile reports whether path holds a Cortex session: a single JSON
// document whose top level is a mapping with a session_id key and a history
// array. Line-delimited logs fail the single-document parse; every other
// failure mode (missing file, bad JSON, wrong shape) also collapses to false.
func IsSessionFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}

	if _, ok := doc["session_id"]; !ok {
		return false
	}
	history, ok := doc["history"]
	if !ok {
		return false
	}
	return bytes.HasPrefix(bytes.TrimSpace(history), []byte("["))
}

// ReadFile parses a single Cortex session file. Unlike detection and summary
// extraction, read and parse errors propagate: silently returning an empty
// transcript would hide data loss from the caller.
func (r *Reader) ReadFile(path string) (*core.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var session rawSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}

	loglines := make([]core.LogEntry, 0, len(session.History))
	for _, rec := range session.History {
		loglines = append(loglines, buildEntry(rec))
	}

	return &core.Transcript{
		SessionID:  session.SessionID,
		Title:      session.Title,
		WorkingDir: session.WorkingDirectory,
		Loglines:   loglines,
	}, nil
}

// ReadSession locates and parses a session by its ID under Dir.
func (r *Reader) ReadSession(sessionID string) (*core.Transcript, error) {
	for _, s := range FindSessions(r.Dir, 0) {
		t, err := r.ReadFile(s.Path)
		if err != nil {
			continue
		}
		if t.SessionID == sessionID {
			return t, nil
		}
	}
	return nil, fmt.Errorf("session %s not found in %s", sessionID, r.Dir)
}

// ReadAll parses every Cortex session under Dir, skipping files that fail to
// parse after detection.
func (r *Reader) ReadAll() ([]*core.Transcript, error) {
	if _, err := os.Stat(r.Dir); err != nil {
		return nil, fmt.Errorf("read session directory: %w", err)
	}

	var all []*core.Transcript
	for _, s := range FindSessions(r.Dir, 0) {
		t, err := r.ReadFile(s.Path)
		if err != nil {
			continue
		}
		all = append(all, t)
	}
	return all, nil
}

// buildEntry maps one history record to a canonical log entry. Only user
// records carry a timestamp in this format; assistant records have none, so
// none is fabricated.
func buildEntry(rec rawRecord) core.LogEntry {
	entry := core.LogEntry{
		Type:    rec.Role,
		Message: core.Message{Role: rec.Role},
	}
	if rec.Role == core.RoleUser {
		entry.Timestamp = rec.UserSentTime
	}
	entry.Message.Content = buildContent(rec)
	return entry
}

func buildContent(rec rawRecord) core.Content {
	trimmed := bytes.TrimSpace(rec.Content)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return core.TextContent(s)
		}
	}

	var rawBlocks []json.RawMessage
	if err := json.Unmarshal(trimmed, &rawBlocks); err != nil {
		return core.BlockContent(nil)
	}

	blocks := normalizeContent(rawBlocks)
	if rec.Role == core.RoleUser {
		blocks = filterSystemReminders(blocks)
	}
	return core.BlockContent(blocks)
}

// filterSystemReminders strips system-reminder spans from user text blocks,
// dropping blocks that have nothing left. Assistant content never passes
// through here.
func filterSystemReminders(blocks []core.ContentBlock) []core.ContentBlock {
	out := make([]core.ContentBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Type == core.BlockText && core.ContainsSystemReminder(b.Text) {
			cleaned, keep := core.StripSystemReminder(b.Text)
			if !keep {
				continue
			}
			b.Text = cleaned
		}
		out = append(out, b)
	}
	return out
}

// isJSONFile reports whether a directory entry looks like a session candidate.
func isJSONFile(de os.DirEntry) bool {
	return !de.IsDir() && strings.HasSuffix(de.Name(), ".json")
}
