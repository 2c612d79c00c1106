package core

// Turn groups a user prompt with all subsequent assistant entries,
// representing one request-response cycle in the conversation.
type Turn struct {
	UserEntry        *LogEntry  // nil if the turn starts with an assistant entry
	AssistantEntries []LogEntry // all assistant entries in this turn
}

// GroupTurns splits a flat logline list into turns. A new turn starts at each
// user entry that contains human-authored content. User entries that contain
// only tool_result blocks are folded into the current turn as part of the
// assistant's work.
func GroupTurns(loglines []LogEntry) []Turn {
	var turns []Turn
	var current *Turn

	for i := range loglines {
		entry := &loglines[i]
		if entry.Message.Role == RoleUser {
			if isToolResultOnly(entry) {
				// Tool-result-only user entries are part of the agentic loop,
				// not a new human turn. Fold into the current turn.
				if current == nil {
					current = &Turn{}
				}
				current.AssistantEntries = append(current.AssistantEntries, *entry)
			} else {
				if current != nil {
					turns = append(turns, *current)
				}
				current = &Turn{UserEntry: entry}
			}
		} else {
			if current == nil {
				current = &Turn{}
			}
			current.AssistantEntries = append(current.AssistantEntries, *entry)
		}
	}
	if current != nil {
		turns = append(turns, *current)
	}
	return turns
}

// isToolResultOnly reports whether an entry contains only tool_result blocks.
func isToolResultOnly(entry *LogEntry) bool {
	content := entry.Message.Content
	if content.IsText || len(content.Blocks) == 0 {
		return false
	}
	for _, b := range content.Blocks {
		if b.Type != BlockToolResult {
			return false
		}
	}
	return true
}

// StepCount returns the number of tool_use blocks across all assistant
// entries in this turn.
func (t Turn) StepCount() int {
	n := 0
	for _, entry := range t.AssistantEntries {
		for _, b := range entry.Message.Content.Blocks {
			if b.Type == BlockToolUse {
				n++
			}
		}
	}
	return n
}
