package generator

import (
	"bufio"
	"regexp"
	"strings"
)

// Heading is one ATX heading of a rendered document.
type Heading struct {
	Title string
	Level int
	Kind  string // module, class, function or "" for plain headings
}

var kbdKind = regexp.MustCompile("^<kbd>(module|class|function)</kbd>")

// Outline lists the headings of doc in order, ignoring fenced code.
func Outline(doc string) []Heading {
	var headings []Heading
	scanner := bufio.NewScanner(strings.NewReader(doc))
	scanner.Buffer(make([]byte, 0, 64*1024), len(doc)+1)

	inFence := false
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence || !strings.HasPrefix(trimmed, "#") {
			continue
		}

		level := 0
		for level < len(trimmed) && trimmed[level] == '#' {
			level++
		}
		if level > 6 || len(trimmed) <= level || trimmed[level] != ' ' {
			continue
		}

		h := Heading{Title: strings.TrimSpace(trimmed[level:]), Level: level}
		if m := kbdKind.FindStringSubmatch(h.Title); m != nil {
			h.Kind = m[1]
		}
		headings = append(headings, h)
	}
	return headings
}

// CountKinds tallies module, class and function headings.
func CountKinds(headings []Heading) map[string]int {
	counts := map[string]int{}
	for _, h := range headings {
		if h.Kind != "" {
			counts[h.Kind]++
		}
	}
	return counts
}
