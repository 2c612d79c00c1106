// Package reader defines the interface for parsing session logs into the
// canonical transcript format, and the format dispatcher that picks the
// right parser for a file.
package reader

import (
	"github.com/sonnes/lekhak/core"
	"github.com/sonnes/lekhak/reader/cortex"
	"github.com/sonnes/lekhak/reader/legacy"
)

// Reader parses session data into canonical transcripts.
type Reader interface {
	// ReadFile parses a single session file at the given path.
	ReadFile(path string) (*core.Transcript, error)

	// ReadSession locates and parses a session by its ID.
	ReadSession(sessionID string) (*core.Transcript, error)

	// ReadAll returns every session transcript in the reader's directory.
	ReadAll() ([]*core.Transcript, error)
}

// ParseFile detects the file's format and parses it with the matching
// reader: Cortex single-document sessions when the fingerprint matches,
// line-delimited logs otherwise. This is the single branch point for format
// polymorphism; parse errors propagate.
func ParseFile(path string) (*core.Transcript, error) {
	if cortex.IsSessionFile(path) {
		r := &cortex.Reader{}
		return r.ReadFile(path)
	}
	r := &legacy.Reader{}
	return r.ReadFile(path)
}
