// Package html renders transcripts as standalone HTML pages styled with
// Tailwind CSS v4 (CDN) and syntax highlighting via goldmark + chroma.
package html

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/sonnes/lekhak/core"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

//go:embed templates/*.html
var content embed.FS

// Renderer renders a transcript to a standalone HTML page.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// New creates an HTML Renderer with goldmark configured for GFM and syntax
// highlighting.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles for standalone pages
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(), // allow raw HTML in markdown
		),
	)

	tmpl := template.Must(
		template.New("page.html").
			Funcs(funcMap()).
			ParseFS(content, "templates/*.html"),
	)

	return &Renderer{md: md, tmpl: tmpl}
}

// pageData is the top-level template data passed to page.html.
type pageData struct {
	Transcript *core.Transcript
	Title      string
	Entries    []entryData
	Stats      core.Stats
	StartedAt  time.Time
}

// entryData is the per-logline template data passed to page.html.
type entryData struct {
	ID          string // anchor ID (e.g. "entry-0")
	RoleLabel   string
	BorderClass string
	BadgeClass  string
	Timestamp   string // formatted, empty when the entry carries none
	Blocks      []template.HTML
}

// indexData is the template data passed to index.html.
type indexData struct {
	Entries []core.ManifestEntry
}

// RenderIndex writes an HTML index page listing the given entries to w.
// Entries keep the caller's order.
func (r *Renderer) RenderIndex(w io.Writer, entries []core.ManifestEntry) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", indexData{Entries: entries})
}

// Render writes the transcript as a complete HTML page to w. Tool results
// are paired with their tool_use by tool_use_id; a paired result renders
// inside the tool card and its own entry is skipped when nothing else
// remains in it.
func (r *Renderer) Render(w io.Writer, t *core.Transcript) error {
	resultIndex := make(map[string]core.ContentBlock)
	for _, entry := range t.Loglines {
		for _, b := range entry.Message.Content.Blocks {
			if b.Type == core.BlockToolResult && b.ToolUseID != "" {
				resultIndex[b.ToolUseID] = b
			}
		}
	}

	consumed := make(map[string]bool)

	var entries []entryData
	for i, entry := range t.Loglines {
		ed := entryData{
			ID:          fmt.Sprintf("entry-%d", i),
			RoleLabel:   roleLabel(entry.Message.Role),
			BorderClass: borderClass(entry.Message.Role),
			BadgeClass:  badgeClass(entry.Message.Role),
		}
		if ts := core.ParseTimestamp(entry.Timestamp); !ts.IsZero() {
			ed.Timestamp = formatTime(ts)
		}

		markdown := entry.Message.Role == core.RoleAssistant

		if entry.Message.Content.IsText {
			if strings.TrimSpace(entry.Message.Content.Text) != "" {
				rendered, err := r.renderText(entry.Message.Content.Text, markdown)
				if err != nil {
					return fmt.Errorf("render text content: %w", err)
				}
				ed.Blocks = append(ed.Blocks, rendered)
			}
		} else {
			for _, b := range entry.Message.Content.Blocks {
				switch b.Type {
				case core.BlockToolUse:
					var result *core.ContentBlock
					if tr, ok := resultIndex[b.ID]; ok {
						result = &tr
						consumed[b.ID] = true
					}
					rendered, err := r.renderToolUseBlock(b, result)
					if err != nil {
						return fmt.Errorf("render tool_use block: %w", err)
					}
					ed.Blocks = append(ed.Blocks, rendered)

				case core.BlockToolResult:
					if consumed[b.ToolUseID] {
						continue
					}
					ed.Blocks = append(ed.Blocks, renderToolResultBlock(b))

				case core.BlockText:
					rendered, err := r.renderText(b.Text, markdown)
					if err != nil {
						return fmt.Errorf("render text block: %w", err)
					}
					ed.Blocks = append(ed.Blocks, rendered)

				case core.BlockThinking:
					ed.Blocks = append(ed.Blocks, renderThinkingBlock(b))

				default:
					// Unrecognized kinds render as escaped plain text.
					rendered, err := r.renderText(b.Text, false)
					if err != nil {
						return fmt.Errorf("render %s block: %w", b.Type, err)
					}
					ed.Blocks = append(ed.Blocks, rendered)
				}
			}
		}

		if len(ed.Blocks) > 0 {
			entries = append(entries, ed)
		}
	}

	data := pageData{
		Transcript: t,
		Title:      pageTitle(t),
		Entries:    entries,
		Stats:      core.ComputeStats(t),
		StartedAt:  t.StartTime(),
	}
	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}

func pageTitle(t *core.Transcript) string {
	if t.Title != "" {
		return t.Title
	}
	if t.SessionID != "" {
		return "Session " + t.SessionID
	}
	return ""
}

func roleLabel(role string) string {
	switch role {
	case core.RoleUser:
		return "User"
	case core.RoleAssistant:
		return "Assistant"
	case "":
		return "Unknown"
	default:
		return strings.ToUpper(role[:1]) + role[1:]
	}
}

func borderClass(role string) string {
	switch role {
	case core.RoleUser:
		return "border-l-4 border-l-blue-500"
	case core.RoleAssistant:
		return "border-l-4 border-l-emerald-500"
	default:
		return "border-l-4 border-l-slate-400"
	}
}

func badgeClass(role string) string {
	switch role {
	case core.RoleUser:
		return "text-blue-700 dark:text-blue-400 bg-blue-50 dark:bg-blue-950"
	case core.RoleAssistant:
		return "text-emerald-700 dark:text-emerald-400 bg-emerald-50 dark:bg-emerald-950"
	default:
		return "text-slate-600 dark:text-slate-400 bg-slate-100 dark:bg-slate-800"
	}
}
