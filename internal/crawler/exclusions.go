package crawler

import (
	"strings"

	"docstring2md/internal/symbol"
)

// Exclusions is the ordered set of module names whose subtrees are left
// out of the document. Names are never removed once added.
type Exclusions struct {
	names []string
	index map[string]bool
}

func NewExclusions() *Exclusions {
	return &Exclusions{index: map[string]bool{}}
}

// Add records name as excluded.
func (e *Exclusions) Add(name string) {
	if e.index[name] {
		return
	}
	e.index[name] = true
	e.names = append(e.names, name)
}

// Excluded reports whether name is private, already excluded, or nested
// under an excluded package.
func (e *Exclusions) Excluded(name string) bool {
	last := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		last = name[i+1:]
	}
	if symbol.IsPrivate(last) {
		return true
	}
	for _, ex := range e.names {
		if name == ex || strings.HasPrefix(name, ex+".") {
			return true
		}
	}
	return false
}

// Names returns the excluded names in the order they were added.
func (e *Exclusions) Names() []string {
	return append([]string(nil), e.names...)
}
