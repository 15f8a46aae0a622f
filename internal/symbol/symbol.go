package symbol

import (
	"sort"
	"strings"

	"docstring2md/internal/signature"
)

// PrivateMarker prefixes names that are never rendered.
const PrivateMarker = "_"

// Kind tags the variants of the symbol tree.
type Kind string

const (
	KindModule     Kind = "module"
	KindClass      Kind = "class"
	KindFunction   Kind = "function"
	KindProperty   Kind = "property"
	KindDescriptor Kind = "descriptor"
	KindVariable   Kind = "variable"
)

// Symbol is implemented by every node of the tree.
type Symbol interface {
	Kind() Kind
	SymbolName() string
	SourceLine() int
}

// Module is a parsed source module with its top-level members.
type Module struct {
	Name      string
	Doc       string
	File      string
	Classes   []*Class
	Functions []*Function
	Variables []*Variable
}

// Class holds the members declared in a class body.
type Class struct {
	Name        string
	Module      string
	Doc         string
	Line        int
	Init        *Function
	Properties  []*Property
	Descriptors []*Descriptor
	Methods     []*Function
}

// Function is a module function or a method. Signature is nil when the
// parameter list could not be introspected.
type Function struct {
	Name      string
	Module    string
	Doc       string
	Line      int
	Signature *signature.Signature
}

// Property is a class attribute defined through @property.
type Property struct {
	Name    string
	Module  string
	Doc     string
	Comment string
	Line    int
}

// Descriptor is a method declared without a Python-level body, rendered as a
// bare heading.
type Descriptor struct {
	Name   string
	Module string
	Line   int
}

// Variable is a module-level data attribute.
type Variable struct {
	Name    string
	Module  string
	Comment string
	Line    int
}

func (m *Module) Kind() Kind         { return KindModule }
func (m *Module) SymbolName() string { return m.Name }
func (m *Module) SourceLine() int    { return 0 }

func (c *Class) Kind() Kind         { return KindClass }
func (c *Class) SymbolName() string { return c.Name }
func (c *Class) SourceLine() int    { return c.Line }

func (f *Function) Kind() Kind         { return KindFunction }
func (f *Function) SymbolName() string { return f.Name }
func (f *Function) SourceLine() int    { return f.Line }

func (p *Property) Kind() Kind         { return KindProperty }
func (p *Property) SymbolName() string { return p.Name }
func (p *Property) SourceLine() int    { return p.Line }

func (d *Descriptor) Kind() Kind         { return KindDescriptor }
func (d *Descriptor) SymbolName() string { return d.Name }
func (d *Descriptor) SourceLine() int    { return d.Line }

func (v *Variable) Kind() Kind         { return KindVariable }
func (v *Variable) SymbolName() string { return v.Name }
func (v *Variable) SourceLine() int    { return v.Line }

// IsPrivate reports whether name starts with the private marker.
func IsPrivate(name string) bool {
	return strings.HasPrefix(name, PrivateMarker)
}

// Private reports whether s is excluded from rendering.
func Private(s Symbol) bool {
	return IsPrivate(s.SymbolName())
}

// ByLine returns a copy of items stably sorted by source line. Symbols with
// an unknown line (0) keep their relative order ahead of located ones.
func ByLine[T Symbol](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SourceLine() < out[j].SourceLine()
	})
	return out
}

// Local keeps the public symbols that belong to module. An empty owner
// counts as local.
func Local[T Symbol](items []T, module string, owner func(T) string) []T {
	var out []T
	for _, item := range items {
		if Private(item) {
			continue
		}
		if o := owner(item); o != "" && o != module {
			continue
		}
		out = append(out, item)
	}
	return out
}
