// Package terminal renders transcripts as ANSI-colored entry cards.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/lekhak/core"
)

const defaultWidth = 100

// Renderer pretty-prints a transcript as entry cards to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the transcript as ANSI-colored entry cards to w.
func (r *Renderer) Render(w io.Writer, t *core.Transcript) error {
	width := r.termWidth()

	writeHeader(w, t)

	// Tool use IDs whose result was rendered inline with the call, so the
	// standalone result entry is skipped.
	consumed := make(map[string]bool)

	var prev time.Time

	for _, entry := range t.Loglines {
		ts := core.ParseTimestamp(entry.Timestamp)
		var duration string
		if !ts.IsZero() && !prev.IsZero() {
			duration = formatDuration(ts.Sub(prev))
		}
		if !ts.IsZero() {
			prev = ts
		}

		writeEntry(w, entry, ts, duration, consumed, width)
	}

	fmt.Fprintln(w)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// writeHeader renders the session metadata block.
func writeHeader(w io.Writer, t *core.Transcript) {
	title := t.Title
	if title == "" && t.SessionID != "" {
		title = "Session " + t.SessionID
	}
	fmt.Fprintln(w, styleTitle.Render(title))

	// Row 2: session id  relative_time  working dir
	var parts []string
	if t.SessionID != "" {
		parts = append(parts, t.SessionID)
	}
	if started := t.StartTime(); !started.IsZero() {
		parts = append(parts, core.RelativeTime(started))
	}
	if t.WorkingDir != "" {
		parts = append(parts, t.WorkingDir)
	}
	if len(parts) > 0 {
		fmt.Fprintln(w, styleMeta.Render(strings.Join(parts, "  ")))
	}

	fmt.Fprintln(w)
	writeStats(w, core.ComputeStats(t))
}

// writeStats renders session counters in two rows: values then labels.
func writeStats(w io.Writer, s core.Stats) {
	type stat struct {
		value int
		label string
	}
	stats := []stat{
		{s.Loglines, "ENTRIES"},
		{s.Turns, "TURNS"},
	}
	if s.ToolCalls > 0 {
		stats = append(stats, stat{s.ToolCalls, "TOOL CALLS"})
	}

	var values, labels []string
	for _, st := range stats {
		formatted := formatNumber(st.value)
		colWidth := max(len(formatted), len(st.label))
		values = append(values, fmt.Sprintf("%*s", colWidth, formatted))
		labels = append(labels, fmt.Sprintf("%-*s", colWidth, st.label))
	}

	fmt.Fprintln(w, "  "+styleStat.Render(strings.Join(values, "    ")))
	fmt.Fprintln(w, "  "+styleStatLabel.Render(strings.Join(labels, "    ")))
}

// writeSeparator renders a horizontal rule.
func writeSeparator(w io.Writer, width int) {
	n := min(width, 72)
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", n)))
}

// writeEntry renders a single entry card: role badge, metadata, content blocks.
// Entries whose only content was consumed elsewhere are skipped.
func writeEntry(w io.Writer, entry core.LogEntry, ts time.Time, duration string, consumed map[string]bool, width int) bool {
	contentWidth := width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	var lines []string
	if entry.Message.Content.IsText {
		text := strings.TrimSpace(entry.Message.Content.Text)
		if text != "" {
			lines = append(lines, truncate(text, contentWidth))
		}
	} else {
		for _, b := range entry.Message.Content.Blocks {
			switch b.Type {
			case core.BlockText:
				text := strings.TrimSpace(b.Text)
				if text != "" {
					lines = append(lines, truncate(text, contentWidth))
				}
			case core.BlockThinking:
				lines = append(lines, styleThinking.Render("▸ Thinking..."))
			case core.BlockToolUse:
				if b.ID != "" {
					consumed[b.ID] = true
				}
				name := b.Name
				if name == "" {
					name = "tool"
				}
				summary := extractToolSummary(strings.ToLower(name), b.Input)
				toolLine := styleToolName.Render("⚙ " + name)
				if summary != "" {
					nameWidth := lipgloss.Width("⚙ " + name + "  ")
					toolLine += "  " + styleToolDetail.Render(truncate(summary, contentWidth-nameWidth))
				}
				lines = append(lines, toolLine)
			case core.BlockToolResult:
				if consumed[b.ToolUseID] {
					continue
				}
				lines = append(lines, styleToolDetail.Render(truncate(b.Content, contentWidth)))
			default:
				text := strings.TrimSpace(b.Text)
				if text != "" {
					lines = append(lines, truncate(text, contentWidth))
				}
			}
		}
	}

	if len(lines) == 0 {
		return false
	}

	writeSeparator(w, width)

	badge := roleBadge(entry.Message.Role)
	var metaParts []string
	if !ts.IsZero() {
		metaParts = append(metaParts, formatTime(ts))
	}
	if duration != "" {
		metaParts = append(metaParts, duration)
	}
	header := badge
	if len(metaParts) > 0 {
		header += "    " + styleMeta.Render(strings.Join(metaParts, "    "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, " "+header)

	for _, line := range lines {
		fmt.Fprintln(w, "  "+line)
	}

	return true
}

func roleBadge(role string) string {
	label := strings.ToUpper(role)
	switch role {
	case core.RoleUser:
		return styleUserBadge.Render(label)
	case core.RoleAssistant:
		return styleAssistantBadge.Render(label)
	default:
		return styleMeta.Render(label)
	}
}

// truncate shortens text to maxWidth, appending "..." if needed.
// Multi-line text is reduced to the first line.
func truncate(s string, maxWidth int) string {
	if maxWidth < 4 {
		maxWidth = 4
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Format helpers — mirrored from render/html/funcmap.go.

func formatTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
