package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docstring2md/internal/config"
	"docstring2md/internal/logger"
)

var fixedNow = func() time.Time { return time.Date(2026, 10, 14, 9, 5, 0, 0, time.UTC) }

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func sampleTree(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	src := filepath.Join(base, "src")
	writeFiles(t, src, map[string]string{
		"mylib/__init__.py": `"""My library."""
`,
		"mylib/core.py": `"""Core helpers."""

# default retry count
RETRIES = 3


def run(task, retries: int = 3) -> bool:
    """Run a task.

    Args:
        task (str): what to run
    """


class Runner:
    """Runs things."""

    def __init__(self, name):
        """Make a runner."""

    @property
    def name(self):
        """Runner name."""
`,
		"mylib/_private.py":         `"""Hidden."""`,
		"mylib/_hidden/__init__.py": `"""Hidden package."""`,
		"mylib/_hidden/inner.py":    `"""Inner."""`,
		"mylib/broken.py":           "def broken(:\n    pass\n",
		"mylib/bad/__init__.py":     "class (:\n",
		"mylib/bad/child.py":        `"""Never reached."""`,
		"mylib/mylib/__init__.py": `"""Re-exported root."""

VERSION = "1.0"
`,
	})
	return src
}

func TestGenerator_Run(t *testing.T) {
	src := sampleTree(t)

	var report bytes.Buffer
	g, err := NewGenerator(config.Default(), WithReport(&report), WithClock(fixedNow))
	require.NoError(t, err)

	out, err := g.Run(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(src), "docs", "doc.md"), out)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := string(raw)

	t.Run("Heading", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(doc, "# API\n\nUpdate: 2026-10-14 09:05\n\n## <kbd>module</kbd> mylib\nMy library.\n"))
		assert.True(t, strings.HasSuffix(doc, "\n"))
		assert.False(t, strings.HasSuffix(doc, "\n\n"))
	})

	t.Run("Content", func(t *testing.T) {
		assert.Contains(t, doc, "## <kbd>module</kbd> mylib.core\nCore helpers.")
		assert.Contains(t, doc, "- **RETRIES**: default retry count")
		assert.Contains(t, doc, "### <kbd>function</kbd> `mylib.run`\n\n```python\nrun(task, retries: int = 3) → bool\n```")
		assert.Contains(t, doc, "- *task (str)*: what to run")
		assert.Contains(t, doc, "### <kbd>class</kbd> `Runner`")
		assert.Contains(t, doc, "Runner.__init__(self, name)")
		assert.Contains(t, doc, "#### Runner.name\n\nRunner name.")
	})

	t.Run("Exclusions", func(t *testing.T) {
		assert.NotContains(t, doc, "Hidden")
		assert.NotContains(t, doc, "Inner")
		assert.NotContains(t, doc, "Never reached")
		assert.NotContains(t, doc, "mylib.broken")
	})

	t.Run("Reexport", func(t *testing.T) {
		assert.Contains(t, doc, "Re-exported root.")
		assert.NotContains(t, doc, "<kbd>module</kbd> mylib.mylib")
		assert.NotContains(t, doc, "VERSION")
	})

	t.Run("Report", func(t *testing.T) {
		lines := strings.Split(strings.TrimSpace(report.String()), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "Error: Can't generate mylib.bad doc. "), lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "Error: Can't generate mylib.broken doc. "), lines[1])
	})
}

func TestGenerator_RunOverwrites(t *testing.T) {
	src := sampleTree(t)
	docs := filepath.Join(filepath.Dir(src), "docs")
	writeFiles(t, docs, map[string]string{"doc.md": "stale content that is much longer than nothing"})

	g, err := NewGenerator(nil, WithReport(&bytes.Buffer{}), WithClock(fixedNow))
	require.NoError(t, err)
	_, err = g.Run(context.Background(), src)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(docs, "doc.md"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "stale")
}

func TestGenerator_RunConfigured(t *testing.T) {
	src := sampleTree(t)
	cfg := config.Default()
	cfg.Output.Dir = "site"
	cfg.Output.File = "api.md"
	cfg.Render.Title = "Reference"

	g, err := NewGenerator(cfg, WithReport(&bytes.Buffer{}), WithClock(fixedNow))
	require.NoError(t, err)
	out, err := g.Run(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(src), "site", "api.md"), out)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "# Reference\n"))
}

func TestGenerator_RunCancelled(t *testing.T) {
	src := sampleTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, err := NewGenerator(nil, WithReport(&bytes.Buffer{}), WithClock(fixedNow))
	require.NoError(t, err)
	_, err = g.Run(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(filepath.Join(filepath.Dir(src), "docs"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerator_RunEmptyTree(t *testing.T) {
	src := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.MkdirAll(src, 0o755))

	g, err := NewGenerator(nil, WithReport(&bytes.Buffer{}), WithClock(fixedNow))
	require.NoError(t, err)
	out, err := g.Run(context.Background(), src)
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "# API\n\nUpdate: 2026-10-14 09:05", string(raw))
}

func TestGenerator_RunDebugLog(t *testing.T) {
	src := sampleTree(t)

	var logs bytes.Buffer
	cleanup, err := logger.Setup(logger.Config{Level: "debug", Format: "json", Writer: &logs})
	require.NoError(t, err)
	defer cleanup()

	g, err := NewGenerator(nil, WithReport(&bytes.Buffer{}), WithClock(fixedNow))
	require.NoError(t, err)
	_, err = g.Run(context.Background(), src)
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, `"msg":"module.rendered","module":"mylib.core","kind":"module"`)
	assert.Contains(t, out, `"msg":"modules.excluded","names":["mylib._hidden","mylib._private","mylib.bad","mylib.broken"]`)
	assert.Contains(t, out, `"msg":"document.written"`)
}
