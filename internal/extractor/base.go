package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"docstring2md/internal/symbol"
)

// LanguageExtractor turns a parse tree into the symbol tree of one module.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	ExtractModule(root *sitter.Node, sourceCode []byte, moduleName string) *symbol.Module
}
