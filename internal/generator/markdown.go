package generator

import (
	"fmt"
	"strings"
	"time"

	"docstring2md/internal/docstring"
	"docstring2md/internal/signature"
	"docstring2md/internal/symbol"
)

// MarkdownGenerator renders symbol trees with the module, class and function
// templates.
type MarkdownGenerator struct {
	signatures *signature.Renderer
	title      string
	timeLayout string
}

// Option customises a MarkdownGenerator.
type Option func(*MarkdownGenerator)

// WithTitle sets the top-level document heading.
func WithTitle(title string) Option {
	return func(g *MarkdownGenerator) {
		if title != "" {
			g.title = title
		}
	}
}

// WithTimeLayout sets the layout of the "Update:" timestamp.
func WithTimeLayout(layout string) Option {
	return func(g *MarkdownGenerator) {
		if layout != "" {
			g.timeLayout = layout
		}
	}
}

// NewMarkdownGenerator builds a generator; a nil renderer means the default width.
func NewMarkdownGenerator(r *signature.Renderer, opts ...Option) *MarkdownGenerator {
	if r == nil {
		r = signature.NewRenderer(false)
	}
	g := &MarkdownGenerator{
		signatures: r,
		title:      defaultTitle,
		timeLayout: defaultTimeLayout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Header returns the document heading stamped with now.
func (g *MarkdownGenerator) Header(now time.Time) string {
	return fmt.Sprintf(documentHeading, g.title, now.Format(g.timeLayout))
}

// Document joins the heading and the module fragments and normalizes the
// result.
func (g *MarkdownGenerator) Document(now time.Time, fragments []string) string {
	var b strings.Builder
	b.WriteString(g.Header(now))
	for _, f := range fragments {
		b.WriteString(f)
	}
	return Normalize(b.String())
}

// Module renders one module fragment. A package root re-export renders only
// its docstring, which may leave the fragment blank.
func (g *MarkdownGenerator) Module(m *symbol.Module) string {
	var classes []string
	for _, c := range symbol.ByLine(symbol.Local(m.Classes, m.Name, func(c *symbol.Class) string { return c.Module })) {
		classes = append(classes, g.Class(c))
	}

	root := strings.Split(m.Name, ".")[0]
	var functions []string
	for _, f := range symbol.ByLine(symbol.Local(m.Functions, m.Name, func(f *symbol.Function) string { return f.Module })) {
		functions = append(functions, g.function(f, root+"."+f.Name, f.Name))
	}

	var variables []string
	for _, v := range symbol.ByLine(symbol.Local(m.Variables, m.Name, func(v *symbol.Variable) string { return v.Module })) {
		comment := ""
		if v.Comment != "" {
			comment = ": " + v.Comment
		}
		variables = append(variables, fmt.Sprintf(variableItem, v.Name, comment))
	}

	header := fmt.Sprintf(moduleHeading, m.Name)
	if IsPackageReexport(m.Name) {
		header = ""
		variables = nil
	}
	globals := ""
	if len(variables) > 0 {
		globals = globalsHeading + strings.Join(variables, "\n")
	}

	return moduleFragment(
		header,
		docstring.Render(m.Doc),
		globals,
		strings.Join(functions, "\n"),
		strings.Join(classes, ""),
	)
}

// Class renders a class fragment with its constructor, properties,
// descriptors and methods.
func (g *MarkdownGenerator) Class(c *symbol.Class) string {
	ctor := ""
	if c.Init != nil && (c.Init.Module == "" || c.Init.Module == c.Module) {
		header := c.Name + "." + c.Init.Name
		ctor = g.function(c.Init, header, header)
	}

	var properties strings.Builder
	for _, p := range symbol.ByLine(symbol.Local(c.Properties, c.Module, func(p *symbol.Property) string { return p.Module })) {
		body := docstring.Render(p.Doc)
		if body == "" {
			body = p.Comment
		}
		if body != "" {
			body = "\n\n" + body
		}
		fmt.Fprintf(&properties, memberHeading, c.Name, p.Name, body)
	}

	var descriptors strings.Builder
	for _, d := range symbol.ByLine(symbol.Local(c.Descriptors, c.Module, func(d *symbol.Descriptor) string { return d.Module })) {
		fmt.Fprintf(&descriptors, memberHeading, c.Name, d.Name, "")
	}

	var methods strings.Builder
	for _, f := range symbol.ByLine(symbol.Local(c.Methods, c.Module, func(f *symbol.Function) string { return f.Module })) {
		header := c.Name + "." + f.Name
		methods.WriteString(g.function(f, header, header))
	}

	return classFragment(
		c.Name,
		docstring.Render(c.Doc),
		ctor,
		properties.String(),
		descriptors.String(),
		methods.String(),
	)
}

func (g *MarkdownGenerator) function(f *symbol.Function, header, name string) string {
	definition := g.signatures.Render(name, f.Signature)
	return functionFragment(header, definition, docstring.Render(f.Doc))
}

// IsPackageReexport reports whether a module name starts with two identical
// segments, as when a package's __init__ re-exports its own subpackage.
func IsPackageReexport(name string) bool {
	parts := strings.Split(name, ".")
	return len(parts) >= 2 && parts[0] == parts[1]
}
