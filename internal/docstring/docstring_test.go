package docstring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", Render(""))
}

func TestRender_PlainProsePassesThrough(t *testing.T) {
	inputs := []string{
		"One line.",
		"Summary line.\nSecond line of the summary.",
		"Summary.\n\nA longer description\nspread over two lines.",
		"Summary.\n\n\nTwo blank lines above.",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Render(in))
	}
}

func TestRender_ArgsSection(t *testing.T) {
	got := Render("Args:\n    x (int): the value")
	assert.Equal(t, "#### Args:\n\n- *x (int)*: the value", got)
}

func TestRender_ArgsAndReturns(t *testing.T) {
	doc := strings.Join([]string{
		"Compute things.",
		"",
		"Args:",
		"    x (int): the value",
		"    y: other value",
		"        continued here",
		"",
		"Returns:",
		"    bool: True when it worked",
	}, "\n")
	want := strings.Join([]string{
		"Compute things.",
		"",
		"#### Args:",
		"",
		"- *x (int)*: the value",
		"- *y*: other value continued here",
		"",
		"#### Returns:",
		"",
		"- *bool*: True when it worked",
	}, "\n")
	assert.Equal(t, want, Render(doc))
}

func TestRender_HeaderIsCaseInsensitive(t *testing.T) {
	got := Render("RAISES:\n    ValueError: when empty")
	assert.Equal(t, "#### RAISES:\n\n- *ValueError*: when empty", got)
}

func TestRender_NoteBecomesQuote(t *testing.T) {
	got := Render("Note:\n    see also foo.")
	assert.Equal(t, "#### Note:\n\n> see also foo.", got)
}

func TestRender_NoteCollapsesLines(t *testing.T) {
	got := Render("Notes:\n    first line\n    second line\n\n    next paragraph\nAfter the note.")
	want := "#### Notes:\n\n> first line second line\n>\n> next paragraph\n\nAfter the note."
	assert.Equal(t, want, got)
}

func TestRender_QuoteEndsAtNextHeader(t *testing.T) {
	got := Render("Note:\n    careful\nArgs:\n    a: thing one")
	assert.Equal(t, "#### Note:\n\n> careful\n\n#### Args:\n\n- *a*: thing one", got)
}

func TestRender_LiteralBlock(t *testing.T) {
	doc := "Usage::\n\n    a = 1\n    b = 2\n\nDone."
	got := Render(doc)
	assert.Equal(t, "Usage:\n```\n    a = 1\n    b = 2\n```\n\nDone.", got)

	lines := strings.Split(got, "\n")
	assert.Equal(t, "Usage:", lines[0])
	assert.Equal(t, "```", lines[1])
}

func TestRender_LiteralBlockClosedAtEnd(t *testing.T) {
	got := Render("Run this::\n\n    make all")
	assert.Equal(t, "Run this:\n```\n    make all\n```", got)
}

func TestRender_DoctestInExample(t *testing.T) {
	got := Render("Example:\n    >>> f(1)\n    2")
	assert.True(t, strings.HasPrefix(got, "#### Example:\n"))
	assert.Contains(t, got, "\n> f(1)")
	assert.NotContains(t, got, ">>>")
}

func TestRender_FenceIsVerbatim(t *testing.T) {
	doc := "Run:\n\n```python\nx = 1\n    y = 2\n```\nDone."
	got := Render(doc)
	assert.Equal(t, "Run:\n\n```python\nx = 1\n    y = 2\n```\nDone.", got)
}

func TestRender_FenceClosedAtEnd(t *testing.T) {
	got := Render("```\ncode")
	assert.Equal(t, "```\ncode\n```", got)
}

func TestRender_BulletList(t *testing.T) {
	got := Render("Options:\n- one\n- two\n  - nested")
	assert.Equal(t, "Options:\n\n- one\n- two\n  - nested", got)
}

func TestRender_HeaderWordInProseIsAHeader(t *testing.T) {
	got := Render("Note: the cache is flushed on exit.\nSo is the log.")
	assert.Equal(t, "#### Note: the cache is flushed on exit.\n\nSo is the log.", got)
}

func TestRender_ArgsSectionEndsOnDedent(t *testing.T) {
	got := Render("Args:\n    a: first thing\nplain: text after")
	assert.Equal(t, "#### Args:\n\n- *a*: first thing\nplain: text after", got)
}

func TestRender_UnmatchedArgLineStartsNewLine(t *testing.T) {
	got := Render("Args:\n    a: first thing\n    b")
	assert.Equal(t, "#### Args:\n\n- *a*: first thing\nb", got)
}

func TestRender_TotalOnOddInput(t *testing.T) {
	inputs := []string{
		"\n\n\n",
		"::",
		"`",
		"Args:",
		"Note:\n\n\n",
		">>>",
		"-",
		"Args:\n    (int): x\n  ```\n",
		"\t\tArgs:\n x: y z",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Render(in) }, in)
	}
}
