package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names[T Symbol](items []T) []string {
	var out []string
	for _, item := range items {
		out = append(out, item.SymbolName())
	}
	return out
}

func TestByLine(t *testing.T) {
	vars := []*Variable{
		{Name: "z", Line: 7},
		{Name: "a", Line: 7},
		{Name: "m", Line: 7},
		{Name: "q", Line: 2},
		{Name: "unknown"},
	}

	sorted := ByLine(vars)
	assert.Equal(t, []string{"unknown", "q", "z", "a", "m"}, names(sorted))
	assert.Equal(t, "z", vars[0].Name, "input is not reordered")
}

func TestLocal(t *testing.T) {
	funcs := []*Function{
		{Name: "mine", Module: "pkg"},
		{Name: "_hidden", Module: "pkg"},
		{Name: "borrowed", Module: "other"},
		{Name: "unowned"},
	}
	got := Local(funcs, "pkg", func(f *Function) string { return f.Module })
	assert.Equal(t, []string{"mine", "unowned"}, names(got))
}

func TestKind(t *testing.T) {
	symbols := []Symbol{&Module{}, &Class{}, &Function{}, &Property{}, &Descriptor{}, &Variable{}}
	var kinds []Kind
	for _, s := range symbols {
		kinds = append(kinds, s.Kind())
	}
	assert.Equal(t, []Kind{KindModule, KindClass, KindFunction, KindProperty, KindDescriptor, KindVariable}, kinds)
}
