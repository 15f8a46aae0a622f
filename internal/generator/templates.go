package generator

import "fmt"

const (
	moduleTemplate   = "\n%s\n%s%s%s%s\n"
	functionTemplate = "\n### <kbd>function</kbd> `%s`\n\n```python\n%s\n```\n\n%s\n"
	classTemplate    = "\n### <kbd>class</kbd> `%s`\n\n%s\n%s%s%s%s\n"

	moduleHeading     = "## <kbd>module</kbd> %s"
	globalsHeading    = "\n### Global Variables\n"
	memberHeading     = "\n#### %s.%s%s\n"
	documentHeading   = "# %s\n\nUpdate: %s"
	variableItem      = "- **%s**%s"
	defaultTitle      = "API"
	defaultTimeLayout = "2006-01-02 15:04"
)

func moduleFragment(header, doc, globals, functions, classes string) string {
	return fmt.Sprintf(moduleTemplate, header, doc, globals, functions, classes)
}

func functionFragment(header, definition, doc string) string {
	return fmt.Sprintf(functionTemplate, header, definition, doc)
}

func classFragment(header, doc, init, properties, descriptors, methods string) string {
	return fmt.Sprintf(classTemplate, header, doc, init, properties, descriptors, methods)
}
