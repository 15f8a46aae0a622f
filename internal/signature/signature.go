package signature

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultWidth is the longest inline signature before wrapping kicks in.
const DefaultWidth = 119

// ParamKind classifies a parameter the way Python's inspect does.
type ParamKind int

const (
	Positional ParamKind = iota
	VarPositional
	KeywordMarker
	PositionalMarker
	VarKeyword
)

// Param is one entry of a parameter list.
type Param struct {
	Name    string
	Type    string
	Default string
	Kind    ParamKind
}

// Signature is a reflected parameter list plus the declared return type.
type Signature struct {
	Params  []Param
	Returns string
}

// String renders the parameter like Python's str(inspect.Parameter).
func (p Param) String() string {
	switch p.Kind {
	case KeywordMarker:
		return "*"
	case PositionalMarker:
		return "/"
	}
	name := p.Name
	switch p.Kind {
	case VarPositional:
		name = "*" + strings.TrimLeft(name, "*")
	case VarKeyword:
		name = "**" + strings.TrimLeft(name, "*")
	}
	var b strings.Builder
	b.WriteString(name)
	if p.Type != "" {
		b.WriteString(": ")
		b.WriteString(p.Type)
	}
	if p.Default != "" {
		if p.Type != "" {
			b.WriteString(" = ")
		} else {
			b.WriteString("=")
		}
		b.WriteString(p.Default)
	}
	return b.String()
}

var (
	optionalUnion = regexp.MustCompile(`Union\[(.*?), (?:NoneType|None)\]`)
	packagePrefix = regexp.MustCompile(`([a-zA-Z0-9_]*?\.)`)
)

// Renderer builds display strings for function definitions.
type Renderer struct {
	Width         int
	StripPackages bool
}

// NewRenderer returns a renderer using DefaultWidth.
func NewRenderer(stripPackages bool) *Renderer {
	return &Renderer{Width: DefaultWidth, StripPackages: stripPackages}
}

// Render returns `name(args) → returns`. A nil signature renders an empty
// argument list.
func (r *Renderer) Render(name string, sig *Signature) string {
	var args []string
	returns := ""
	if sig != nil {
		for _, p := range sig.Params {
			args = append(args, r.param(p))
		}
		returns = r.returnType(sig.Returns)
	}
	suffix := ")"
	if returns != "" {
		suffix += " → " + returns
	}

	inline := name + "(" + strings.Join(args, ", ") + suffix
	width := r.Width
	if width <= 0 {
		width = DefaultWidth
	}
	if utf8.RuneCountInString(inline) <= width || len(args) == 0 {
		return inline
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString("(")
	for i, arg := range args {
		b.WriteString("\n    ")
		b.WriteString(arg)
		if i != len(args)-1 {
			b.WriteString(",")
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString(suffix)
	return b.String()
}

func (r *Renderer) param(p Param) string {
	arg := p.String()
	arg = optionalUnion.ReplaceAllString(arg, "Optional[$1]")
	arg = strings.ReplaceAll(arg, "typing.", "")
	if !r.StripPackages {
		return arg
	}
	// Defaults may hold floats or attribute access, so only the part before
	// the first "=" is stripped.
	head, tail, found := strings.Cut(arg, "=")
	head = packagePrefix.ReplaceAllString(head, "")
	if !found {
		return head
	}
	return head + "=" + tail
}

func (r *Renderer) returnType(t string) string {
	t = strings.TrimSpace(t)
	t = optionalUnion.ReplaceAllString(t, "Optional[$1]")
	t = strings.ReplaceAll(t, "typing.", "")
	if r.StripPackages {
		t = packagePrefix.ReplaceAllString(t, "")
	}
	return t
}
