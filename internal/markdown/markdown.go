// Package markdown reduces generated contract Markdown to the little
// structure the exporters need: headings and strong emphasis.
package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	headingRe    = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	boldStarRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderRe  = regexp.MustCompile(`__(.+?)__`)
	italicStarRe = regexp.MustCompile(`\*([^*\s][^*]*?)\*`)
)

// Line is one source line. Level is the heading depth, 0 for body text.
type Line struct {
	Level int
	Text  string
}

func Parse(md string) []Line {
	md = strings.ReplaceAll(md, "\r\n", "\n")
	raw := strings.Split(md, "\n")
	lines := make([]Line, 0, len(raw))
	for _, text := range raw {
		if m := headingRe.FindStringSubmatch(strings.TrimLeft(text, " ")); m != nil {
			lines = append(lines, Line{Level: len(m[1]), Text: strings.TrimSpace(m[2])})
			continue
		}
		lines = append(lines, Line{Text: text})
	}
	return lines
}

// StripEmphasis removes bold and single-star italic markers.
func StripEmphasis(s string) string {
	s = boldStarRe.ReplaceAllString(s, "$1")
	s = boldUnderRe.ReplaceAllString(s, "$1")
	return italicStarRe.ReplaceAllString(s, "$1")
}

// Flatten returns plain text: heading markers and emphasis are dropped,
// everything else is kept as is.
func Flatten(md string) string {
	lines := Parse(md)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = StripEmphasis(line.Text)
	}
	return strings.Join(out, "\n")
}

// ToHTML converts headings to h1..h3 and bold to <strong>. Body text is
// escaped and keeps its line breaks; the caller styles it with pre-wrap.
func ToHTML(md string) string {
	var b strings.Builder
	afterBlock := true
	for _, line := range Parse(md) {
		text := inlineHTML(line.Text)
		if line.Level > 0 {
			level := min(line.Level, 3)
			fmt.Fprintf(&b, "<h%d>%s</h%d>", level, text, level)
			afterBlock = true
			continue
		}
		if !afterBlock {
			b.WriteString("\n")
		}
		b.WriteString(text)
		afterBlock = false
	}
	return b.String()
}

func inlineHTML(s string) string {
	s = html.EscapeString(s)
	s = boldStarRe.ReplaceAllString(s, "<strong>$1</strong>")
	return boldUnderRe.ReplaceAllString(s, "<strong>$1</strong>")
}
