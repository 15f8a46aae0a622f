package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutline(t *testing.T) {
	doc := "# API\n\nUpdate: now\n\n## <kbd>module</kbd> a\n\n```python\n# not a heading\n```\n\n### <kbd>function</kbd> `a.f`\n\n#### Args:\n\n#nospace\n##  <kbd>class</kbd> `C`\n"

	got := Outline(doc)
	assert.Equal(t, []Heading{
		{Title: "API", Level: 1},
		{Title: "<kbd>module</kbd> a", Level: 2, Kind: "module"},
		{Title: "<kbd>function</kbd> `a.f`", Level: 3, Kind: "function"},
		{Title: "Args:", Level: 4},
		{Title: "<kbd>class</kbd> `C`", Level: 2, Kind: "class"},
	}, got)
	assert.Equal(t, map[string]int{"module": 1, "function": 1, "class": 1}, CountKinds(got))
}

func TestOutline_GeneratedDocument(t *testing.T) {
	g := NewMarkdownGenerator(nil)
	doc := g.Document(time.Date(2026, 10, 14, 9, 5, 0, 0, time.UTC), []string{g.Module(sampleModule())})

	counts := CountKinds(Outline(doc))
	assert.Equal(t, 1, counts["module"])
	assert.Equal(t, 2, counts["class"])
	// first, second, Widget.__init__, Widget.resize
	assert.Equal(t, 4, counts["function"])
}
