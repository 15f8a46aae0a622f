// Package docstring converts Google-style docstrings into Markdown.
//
// The converter is line oriented. Each input line is classified, in order,
// as a doctest prompt, a section header, a fence marker, a literal block
// trigger, quoted text, a bullet, an indented section body line, or plain
// text. Headers are recognised by prefix, so prose that starts with a header
// word and its colon, such as "Note: the cache is flushed", is rendered as a
// header too.
package docstring

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	argListHeader = regexp.MustCompile(`(?i)^(Args:|Arg:|Arguments:|Parameters:|Kwargs:|Attributes:|Returns:|Yields:|Raises:)`)
	textHeader    = regexp.MustCompile(`(?i)^(Examples:|Example:|Todo:)`)
	quoteHeader   = regexp.MustCompile(`(?i)^(Notes:|Note:)`)

	typedArg = regexp.MustCompile(`^([\w\[\]_]+?)\s*?\((.*?)\):(.{2,})`)
	plainArg = regexp.MustCompile(`^(.+?):(.{2,})`)
)

const (
	doctestPrompt = ">>>"
	codeFence     = "```"
)

type mode int

const (
	modeNone mode = iota
	modeArgs
	modeText
	modeQuote
)

// Render converts one docstring into a Markdown fragment. It never fails:
// input it cannot structure is passed through as text.
func Render(doc string) string {
	if doc == "" {
		return ""
	}
	t := &transducer{}
	for _, line := range strings.Split(doc, "\n") {
		t.feed(strings.TrimSuffix(line, "\r"))
	}
	t.finish()
	return string(t.out)
}

type transducer struct {
	out []byte

	mode        mode
	blockIndent int
	argIndent   int

	fence       bool
	fenceClosed bool // fence opened with ``` and must be closed at the end

	literal       bool
	literalIndent int
	literalFresh  bool
	literalBlanks int

	quoteFresh bool
	quoteBreak bool

	inList bool
}

func (t *transducer) feed(raw string) {
	stripped := strings.TrimLeftFunc(raw, unicode.IsSpace)
	indent := utf8.RuneCountInString(raw[:len(raw)-len(stripped)])

	if t.literal {
		if strings.TrimSpace(raw) == "" {
			t.literalBlanks++
			return
		}
		if indent > t.literalIndent {
			t.verbatim(raw)
			return
		}
		t.closeLiteral()
	}

	row := raw
	if !t.fence {
		row = stripped
	}
	doctest := strings.HasPrefix(row, doctestPrompt)
	if doctest {
		row = strings.ReplaceAll(row, doctestPrompt, ">")
	}
	trimmed := strings.TrimSpace(row)

	if isHeader(row) {
		t.header(row, indent)
		return
	}

	if trimmed != "" && !t.fence && t.mode != modeNone && indent <= t.blockIndent {
		t.leaveSection()
	}

	if strings.HasPrefix(trimmed, "`") {
		t.toggleFence(strings.TrimLeftFunc(row, unicode.IsSpace))
		return
	}

	if trimmed == "" {
		if t.mode == modeQuote && !t.fence {
			t.quoteBreak = true
			return
		}
		t.blank()
		return
	}

	if t.fence {
		t.line(row)
		return
	}

	if strings.HasSuffix(trimmed, "::") {
		t.openLiteral(strings.TrimSuffix(trimmed, "::")+":", indent)
		return
	}

	if t.mode == modeQuote {
		t.quote(trimmed)
		return
	}

	if strings.HasPrefix(trimmed, "-") {
		t.bullet(strings.Repeat(" ", indent) + trimmed)
		return
	}

	if indent > t.blockIndent {
		if t.mode == modeArgs {
			if m := typedArg.FindStringSubmatch(row); m != nil {
				t.bullet(strings.Repeat(" ", t.blockIndent) + fmt.Sprintf("- *%s (%s)*:%s", m[1], m[2], m[3]))
				t.argIndent = indent
				return
			}
			if m := plainArg.FindStringSubmatch(row); m != nil {
				t.bullet(strings.Repeat(" ", t.blockIndent) + fmt.Sprintf("- *%s*:%s", m[1], m[2]))
				t.argIndent = indent
				return
			}
		}
		if indent > t.argIndent && !doctest {
			t.join(row)
			return
		}
		t.line(row)
		return
	}

	t.line(row)
}

func isHeader(row string) bool {
	return argListHeader.MatchString(row) || textHeader.MatchString(row) || quoteHeader.MatchString(row)
}

func (t *transducer) header(row string, indent int) {
	t.mode = modeNone
	t.quoteBreak = false
	t.paragraph()
	t.line("#### " + strings.TrimSpace(row))
	t.write("\n\n")

	t.blockIndent = indent
	t.argIndent = indent
	switch {
	case argListHeader.MatchString(row):
		t.mode = modeArgs
	case quoteHeader.MatchString(row):
		t.mode = modeQuote
		t.quoteFresh = true
	default:
		t.mode = modeText
	}
}

func (t *transducer) leaveSection() {
	if t.mode == modeQuote {
		t.paragraph()
	}
	t.mode = modeNone
	t.quoteBreak = false
}

func (t *transducer) toggleFence(marker string) {
	if !t.fence {
		t.paragraph()
		t.fenceClosed = strings.HasPrefix(marker, codeFence)
	}
	t.fence = !t.fence
	t.line(marker)
	if !t.fence {
		t.fenceClosed = false
		if t.mode == modeQuote {
			t.quoteFresh = true
		}
	}
}

func (t *transducer) openLiteral(text string, indent int) {
	if t.mode == modeQuote {
		t.quote(text)
	} else {
		t.line(text)
	}
	t.line(codeFence)
	t.literal = true
	t.literalIndent = indent
	t.literalFresh = true
	t.literalBlanks = 0
}

func (t *transducer) verbatim(raw string) {
	if !t.literalFresh {
		for ; t.literalBlanks > 0; t.literalBlanks-- {
			t.blank()
		}
	}
	t.literalBlanks = 0
	t.literalFresh = false
	t.line(raw)
}

func (t *transducer) closeLiteral() {
	t.line(codeFence)
	if t.literalBlanks > 0 {
		t.blank()
	}
	t.literal = false
	t.literalBlanks = 0
	if t.mode == modeQuote {
		t.quoteFresh = true
	}
}

func (t *transducer) quote(text string) {
	if t.quoteBreak {
		t.line(">")
		t.quoteBreak = false
		t.quoteFresh = true
	}
	if t.quoteFresh {
		t.line("> " + text)
		t.quoteFresh = false
		return
	}
	t.join(text)
}

func (t *transducer) bullet(item string) {
	if !t.inList {
		t.paragraph()
	}
	t.line(item)
	t.inList = true
}

func (t *transducer) finish() {
	if t.literal {
		t.line(codeFence)
		t.literal = false
	}
	if t.fence && t.fenceClosed {
		t.line(codeFence)
		t.fence = false
	}
}

func (t *transducer) write(s string) {
	t.out = append(t.out, s...)
}

func (t *transducer) atLineStart() bool {
	return len(t.out) == 0 || t.out[len(t.out)-1] == '\n'
}

// line starts a new output line.
func (t *transducer) line(s string) {
	if !t.atLineStart() {
		t.write("\n")
	}
	t.write(s)
	t.inList = false
}

// join continues the current output line.
func (t *transducer) join(s string) {
	if t.atLineStart() {
		t.write(s)
		return
	}
	t.write(" " + s)
}

// blank ends the current line and emits one empty line.
func (t *transducer) blank() {
	if len(t.out) == 0 {
		return
	}
	if !t.atLineStart() {
		t.write("\n")
	}
	t.write("\n")
	t.inList = false
}

// paragraph makes sure the output ends with an empty line.
func (t *transducer) paragraph() {
	if len(t.out) == 0 {
		return
	}
	if !t.atLineStart() {
		t.write("\n")
	}
	if !bytes.HasSuffix(t.out, []byte("\n\n")) {
		t.write("\n")
	}
}
