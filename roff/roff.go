// Package roff converts roff/troff manual-page source to plain text
// suitable for embedding. The conversion is line oriented and lossy:
// layout directives are dropped, inline escapes are stripped, and
// section headings survive as their own lines.
package roff

import (
	"regexp"
	"strings"
)

var (
	fontEscape    = regexp.MustCompile(`\\f[BIPRW0-9]`)
	sizeEscape    = regexp.MustCompile(`\\s[+-]?\d*`)
	stringEscape  = regexp.MustCompile(`\\\*\[.*?\]`)
	hyphenEscape  = regexp.MustCompile(`\\-`)
	commentEscape = regexp.MustCompile(`\\".*`)
	zeroWidth     = regexp.MustCompile(`\\&`)
	// anyEscape is the catch-all for remaining two-character escapes.
	// It must run after the specific patterns above.
	anyEscape  = regexp.MustCompile(`\\.`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// ToText converts roff source to plain text. It is a pure function
// and never fails: malformed input degrades to best-effort output,
// possibly the empty string.
func ToText(raw string) string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			out = append(out, "")
			continue
		}

		// Control lines start with '.' or "'".
		if stripped[0] == '.' || stripped[0] == '\'' {
			cmd, rest := splitControl(stripped)
			switch cmd {
			case "SH", "SS":
				// Section heading: emit the argument on its own line
				// preceded by a paragraph break.
				out = append(out, "\n"+rest)
			case "TH":
				// Title directive: keep only the program name.
				if fields := strings.Fields(rest); len(fields) > 0 {
					out = append(out, fields[0])
				}
			case "PP", "LP", "P", "br", "sp", "TP", "IP":
				out = append(out, "")
			}
			// All other directives are dropped.
			continue
		}

		cleaned := stripEscapes(line)
		if cleaned != "" {
			out = append(out, cleaned)
		}
	}

	text := strings.Join(out, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// splitControl splits a trimmed control line into the directive name
// (without its leading marker) and its argument with surrounding
// quotes removed.
func splitControl(line string) (cmd, rest string) {
	name := line
	if i := strings.IndexAny(line, " \t"); i != -1 {
		name = line[:i]
		rest = strings.Trim(strings.TrimSpace(line[i+1:]), `"`)
	}
	return name[1:], rest
}

// stripEscapes removes inline formatting escapes from a text line.
func stripEscapes(line string) string {
	line = fontEscape.ReplaceAllString(line, "")
	line = sizeEscape.ReplaceAllString(line, "")
	line = stringEscape.ReplaceAllString(line, "")
	line = hyphenEscape.ReplaceAllString(line, "-")
	line = commentEscape.ReplaceAllString(line, "")
	line = zeroWidth.ReplaceAllString(line, "")
	line = anyEscape.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}
