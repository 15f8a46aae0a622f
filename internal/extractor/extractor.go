package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"docstring2md/internal/symbol"
)

// ErrSyntax is returned when a source file does not parse cleanly.
var ErrSyntax = errors.New("invalid syntax")

// Extractor orchestrates the extraction process using a language-specific extractor.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "python":
		langExt = &PythonExtractor{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	return &Extractor{langExtractor: langExt, langName: lang}, nil
}

// ExtractFromFile reads and parses one module file.
func (e *Extractor) ExtractFromFile(ctx context.Context, filepath, moduleName string) (*symbol.Module, error) {
	sourceCode, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	m, err := e.Extract(ctx, sourceCode, moduleName)
	if err != nil {
		return nil, err
	}
	m.File = filepath
	return m, nil
}

// Extract parses source code and builds the module's symbol tree.
func (e *Extractor) Extract(ctx context.Context, sourceCode []byte, moduleName string) (*symbol.Module, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(e.langExtractor.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s module %s: %w", e.langName, moduleName, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstErrorNode(root); bad != nil {
			return nil, fmt.Errorf("%w in %s source (line %d)", ErrSyntax, e.langName, bad.StartPoint().Row+1)
		}
		return nil, fmt.Errorf("%w in %s source", ErrSyntax, e.langName)
	}

	return e.langExtractor.ExtractModule(root, sourceCode, moduleName), nil
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if bad := firstErrorNode(child); bad != nil {
			return bad
		}
	}
	return nil
}
