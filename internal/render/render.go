// Package render turns apply results and dry-run previews into terminal
// output. Colors follow the terminal's advertised profile and are disabled
// entirely when NO_COLOR is set or the terminal only speaks ASCII.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/asynkron/applypatch/pkg/patch"
)

// Renderer writes human-readable summaries of patch activity.
type Renderer struct {
	out     io.Writer
	added   lipgloss.Style
	removed lipgloss.Style
	context lipgloss.Style
	header  lipgloss.Style
}

// New builds a renderer for out. Zero-value styles pass text through
// unchanged, so a color-blind environment gets plain output.
func New(out io.Writer) *Renderer {
	r := &Renderer{out: out}
	if termenv.EnvNoColor() || termenv.EnvColorProfile() == termenv.Ascii {
		return r
	}
	r.added = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	r.removed = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	r.context = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	r.header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	return r
}

// Results prints one line per applied operation, in apply order.
func (r *Renderer) Results(results []patch.Result) {
	for _, result := range results {
		line := fmt.Sprintf("%s %s", result.Status, result.Path)
		switch result.Status {
		case "A":
			line = r.added.Render(line)
		case "D":
			line = r.removed.Render(line)
		default:
			line = r.context.Render(line)
		}
		fmt.Fprintln(r.out, line)
	}
}

// Preview prints a colored line diff between two file snapshots.
func (r *Renderer) Preview(before, after map[string]string) {
	for _, path := range unionPaths(before, after) {
		fmt.Fprintln(r.out, r.header.Render("=== "+path))
		for _, line := range diffLines(before[path], after[path]) {
			switch {
			case strings.HasPrefix(line, "+"):
				fmt.Fprintln(r.out, r.added.Render(line))
			case strings.HasPrefix(line, "-"):
				fmt.Fprintln(r.out, r.removed.Render(line))
			default:
				fmt.Fprintln(r.out, r.context.Render(line))
			}
		}
	}
}

// PreviewText renders the same diff as Preview without any styling, one
// string suitable for embedding in other surfaces.
func PreviewText(before, after map[string]string) string {
	var builder strings.Builder
	for _, path := range unionPaths(before, after) {
		builder.WriteString("=== " + path + "\n")
		for _, line := range diffLines(before[path], after[path]) {
			builder.WriteString(line + "\n")
		}
	}
	return builder.String()
}

// unionPaths merges the keys of both snapshots, keeping only paths whose
// content actually differs, sorted for stable output.
func unionPaths(before, after map[string]string) []string {
	seen := make(map[string]struct{}, len(before)+len(after))
	for path := range before {
		seen[path] = struct{}{}
	}
	for path := range after {
		seen[path] = struct{}{}
	}
	paths := make([]string, 0, len(seen))
	for path := range seen {
		beforeContent, inBefore := before[path]
		afterContent, inAfter := after[path]
		if inBefore && inAfter && beforeContent == afterContent {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// diffLines computes a line-level diff and renders it with unified-style
// +/-/space prefixes.
func diffLines(before, after string) []string {
	dmp := diffmatchpatch.New()
	beforeRunes, afterRunes, lineIndex := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(beforeRunes, afterRunes, false), lineIndex)

	var rendered []string
	for _, diff := range diffs {
		prefix := " "
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range splitLines(diff.Text) {
			rendered = append(rendered, prefix+line)
		}
	}
	return rendered
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
