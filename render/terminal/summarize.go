package terminal

// extractToolSummary extracts the most relevant field from the tool input.
func extractToolSummary(name string, input any) string {
	m, ok := input.(map[string]any)
	if !ok || m == nil {
		return ""
	}

	switch name {
	case "bash":
		return stringField(m, "command")
	case "read", "write", "edit":
		return stringField(m, "file_path")
	case "glob", "grep":
		return stringField(m, "pattern")
	default:
		for _, key := range []string{"command", "file_path", "path", "pattern", "query", "url"} {
			if v := stringField(m, key); v != "" {
				return v
			}
		}
		return ""
	}
}

// stringField safely extracts a string value from a map.
func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
