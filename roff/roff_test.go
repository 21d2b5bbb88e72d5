package roff_test

import (
	"strings"
	"testing"

	"github.com/docdex/docdex/roff"
	"github.com/stretchr/testify/assert"
)

func TestToText_section_headings_become_lines(t *testing.T) {
	t.Parallel()

	src := ".TH GREP 1 \"2024\" \"GNU grep\"\n" +
		".SH NAME\n" +
		"grep - print lines that match patterns\n" +
		".SH \"SEE ALSO\"\n" +
		"awk(1), sed(1)\n"

	got := roff.ToText(src)

	assert.Contains(t, got, "GREP")
	assert.Contains(t, got, "NAME\ngrep - print lines that match patterns")
	assert.Contains(t, got, "SEE ALSO\nawk(1), sed(1)")
}

func TestToText_title_directive_keeps_only_program_name(t *testing.T) {
	t.Parallel()

	got := roff.ToText(`.TH LS 1 "March 2024" "GNU coreutils"`)
	assert.Equal(t, "LS", got)
}

func TestToText_drops_unknown_directives(t *testing.T) {
	t.Parallel()

	src := ".ie \\n(.g .ds Aq \\(aq\n.el .ds Aq '\n.nh\n.ad l\nvisible text\n"
	got := roff.ToText(src)
	assert.Equal(t, "visible text", got)
}

func TestToText_paragraph_directives_become_blank_lines(t *testing.T) {
	t.Parallel()

	got := roff.ToText("first\n.PP\nsecond\n.br\nthird")
	assert.Equal(t, "first\n\nsecond\n\nthird", got)
}

func TestToText_strips_inline_escapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"font changes", `\fBbold\fR and \fIitalic\fP`, "bold and italic"},
		{"size changes", `\s+2big\s0 text`, "big text"},
		{"string registers", `before \*[reg] after`, "before  after"},
		{"non-breaking hyphen", `apt\-get install`, "apt-get install"},
		{"comment", `keep this \" drop this`, "keep this"},
		{"zero width", `\&. leading dot`, ". leading dot"},
		{"catch-all", `a\(emdash`, "aemdash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, roff.ToText(tt.in))
		})
	}
}

func TestToText_collapses_excess_blank_lines(t *testing.T) {
	t.Parallel()

	got := roff.ToText("a\n\n\n\n\nb")
	assert.Equal(t, "a\n\nb", got)
}

func TestToText_never_fails_on_malformed_input(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		".",
		"'",
		".SH",
		".TH",
		"\\",
		strings.Repeat(".garbage \\f\\s\\*[unclosed\n", 50),
		"\x00\x01\x02",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { _ = roff.ToText(in) })
	}
}

func TestToText_empty_directive_arguments(t *testing.T) {
	t.Parallel()

	// A bare .SH emits just the paragraph break, which trims away.
	assert.Equal(t, "", roff.ToText(".SH\n.SS\n"))
}
