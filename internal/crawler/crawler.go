package crawler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

const (
	sourceSuffix = ".py"
	packageInit  = "__init__.py"
)

// Entry is one importable module or package found under the root.
type Entry struct {
	Name      string // dotted module name
	IsPackage bool
	File      string // source file; __init__.py for packages
	Dir       string // directory the entry lives in
}

// Crawler scans a directory tree for Python modules and packages.
type Crawler struct {
	ignored []string
}

// NewCrawler creates a new crawler instance.
func NewCrawler() *Crawler {
	return &Crawler{
		ignored: []string{"__pycache__", ".git", ".venv", "venv", "node_modules"},
	}
}

// Walk visits every module below root in import order: entries of a
// directory sorted by name, each package yielded before its contents.
// Returning an error from fn stops the walk; SkipPackage skips the
// package's contents only.
func (c *Crawler) Walk(root string, fn func(Entry) error) error {
	return c.walkDir(root, "", fn)
}

// SkipPackage can be returned by the Walk callback to leave a package's
// submodules unvisited. For a plain module it is the same as nil.
var SkipPackage = errors.New("skip this package")

func (c *Crawler) walkDir(dir, prefix string, fn func(Entry) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	seen := map[string]bool{}
	for _, d := range entries {
		var entry Entry
		if d.IsDir() {
			if c.isIgnored(d.Name()) {
				continue
			}
			initFile := filepath.Join(dir, d.Name(), packageInit)
			if info, err := os.Stat(initFile); err != nil || info.IsDir() {
				continue
			}
			entry = Entry{Name: d.Name(), IsPackage: true, File: initFile, Dir: dir}
		} else {
			if d.Name() == packageInit || !strings.HasSuffix(d.Name(), sourceSuffix) {
				continue
			}
			entry = Entry{Name: strings.TrimSuffix(d.Name(), sourceSuffix), File: filepath.Join(dir, d.Name()), Dir: dir}
		}

		if !isIdentifier(entry.Name) || seen[entry.Name] {
			continue
		}
		seen[entry.Name] = true

		sub := filepath.Join(dir, entry.Name)
		entry.Name = prefix + entry.Name
		if err := fn(entry); err != nil {
			if errors.Is(err, SkipPackage) {
				continue
			}
			return err
		}
		if entry.IsPackage {
			if err := c.walkDir(sub, entry.Name+".", fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Crawler) isIgnored(name string) bool {
	for _, ign := range c.ignored {
		if name == ign {
			return true
		}
	}
	return false
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
