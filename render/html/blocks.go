package html

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/sonnes/lekhak/core"
)

// renderText renders message text: markdown conversion for assistant prose,
// escaped preformatted text otherwise.
func (r *Renderer) renderText(text string, markdown bool) (template.HTML, error) {
	if markdown {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(text), &buf); err != nil {
			return "", fmt.Errorf("goldmark convert: %w", err)
		}
		return template.HTML(`<div class="prose dark:prose-invert max-w-none">` + buf.String() + `</div>`), nil
	}
	escaped := template.HTMLEscapeString(text)
	return template.HTML(`<p class="whitespace-pre-wrap text-sm">` + escaped + `</p>`), nil
}

func renderThinkingBlock(b core.ContentBlock) template.HTML {
	escaped := template.HTMLEscapeString(b.Thinking)
	h := `<details class="group">` +
		`<summary class="text-xs font-medium text-slate-400 dark:text-slate-500 cursor-pointer select-none">Thinking&hellip;</summary>` +
		`<pre class="mt-2 text-xs text-slate-500 dark:text-slate-400 whitespace-pre-wrap bg-slate-50 dark:bg-slate-900 rounded p-3 max-h-96 overflow-y-auto">` + escaped + `</pre>` +
		`</details>`
	return template.HTML(h)
}

// renderToolUseBlock renders a tool card: name header, JSON input, and the
// paired tool_result when one exists.
func (r *Renderer) renderToolUseBlock(b core.ContentBlock, result *core.ContentBlock) (template.HTML, error) {
	inputJSON := formatToolInput(b.Input)

	var inputHTML string
	if inputJSON != "" {
		var buf bytes.Buffer
		fenced := "```json\n" + inputJSON + "\n```"
		if err := r.md.Convert([]byte(fenced), &buf); err != nil {
			inputHTML = `<pre class="px-4 py-3 text-xs font-mono overflow-x-auto">` + template.HTMLEscapeString(inputJSON) + `</pre>`
		} else {
			inputHTML = `<div class="px-4 py-3 text-xs overflow-x-auto">` + buf.String() + `</div>`
		}
	}

	var resultHTML string
	if result != nil {
		escaped := template.HTMLEscapeString(result.Content)
		resultHTML = `<div class="border-t border-slate-200 dark:border-slate-700">` +
			`<pre class="px-4 py-3 text-xs font-mono overflow-x-auto max-h-96 overflow-y-auto">` + escaped + `</pre>` +
			`</div>`
	}

	toolName := template.HTMLEscapeString(b.Name)
	h := `<div class="bg-slate-50 dark:bg-slate-900 border border-slate-200 dark:border-slate-700 rounded-lg overflow-hidden">` +
		`<div class="px-4 py-2 border-b border-slate-200 dark:border-slate-700 flex items-center gap-2 text-slate-900 dark:text-white">` +
		toolIcon(b.Name) +
		`<span class="text-xs font-semibold font-mono">` + toolName + `</span>` +
		`</div>` +
		inputHTML +
		resultHTML +
		`</div>`
	return template.HTML(h), nil
}

// renderToolResultBlock renders an orphan tool_result with no matching
// tool_use.
func renderToolResultBlock(b core.ContentBlock) template.HTML {
	escaped := template.HTMLEscapeString(b.Content)
	h := `<pre class="text-xs font-mono bg-slate-50 dark:bg-slate-900 rounded p-3 overflow-x-auto">` + escaped + `</pre>`
	return template.HTML(h)
}

func formatToolInput(input map[string]any) string {
	if input == nil {
		return ""
	}
	data, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", input)
	}
	return string(data)
}

// toolIcon returns a small glyph for well-known tool names.
func toolIcon(name string) string {
	var glyph string
	switch name {
	case "Bash":
		glyph = "&#x2318;" // ⌘
	case "Read", "Glob", "Grep":
		glyph = "&#x1F50D;" // 🔍
	case "Write", "Edit":
		glyph = "&#x270E;" // ✎
	default:
		glyph = "&#x2699;" // ⚙
	}
	return `<span class="text-xs">` + glyph + `</span>`
}
