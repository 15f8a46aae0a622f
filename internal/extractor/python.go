package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"docstring2md/internal/signature"
	"docstring2md/internal/symbol"
)

var accessorSuffixes = []string{".setter", ".getter", ".deleter"}

// PythonExtractor implements LanguageExtractor for Python.
type PythonExtractor struct{}

func (p *PythonExtractor) GetLanguage() *sitter.Language {
	return python.GetLanguage()
}

// moduleScope tracks the names bound at module level that are not data.
type moduleScope struct {
	defined  map[string]bool
	imported map[string]bool
}

func (p *PythonExtractor) ExtractModule(root *sitter.Node, sourceCode []byte, moduleName string) *symbol.Module {
	m := &symbol.Module{
		Name: moduleName,
		Doc:  p.extractDocstring(root, sourceCode),
	}

	scope := moduleScope{defined: map[string]bool{}, imported: map[string]bool{}}
	collectImports(root, sourceCode, scope.imported)

	classIdx := map[string]int{}
	funcIdx := map[string]int{}
	varSeen := map[string]bool{}

	statements := moduleStatements(root)
	for _, node := range statements {
		def, _ := unwrapDecorated(node, sourceCode)
		line := int(node.StartPoint().Row) + 1

		switch def.Type() {
		case "class_definition":
			c := p.extractClass(def, sourceCode, moduleName, line)
			if c == nil {
				continue
			}
			scope.defined[c.Name] = true
			if idx, ok := classIdx[c.Name]; ok {
				m.Classes[idx] = c
				continue
			}
			classIdx[c.Name] = len(m.Classes)
			m.Classes = append(m.Classes, c)
		case "function_definition":
			f := p.extractFunction(def, sourceCode, moduleName, line)
			if f == nil {
				continue
			}
			scope.defined[f.Name] = true
			if idx, ok := funcIdx[f.Name]; ok {
				m.Functions[idx] = f
				continue
			}
			funcIdx[f.Name] = len(m.Functions)
			m.Functions = append(m.Functions, f)
		}
	}

	for _, node := range statements {
		if node.Type() != "expression_statement" {
			continue
		}
		for _, v := range p.extractVariables(node, sourceCode, moduleName, scope) {
			if varSeen[v.Name] {
				continue
			}
			varSeen[v.Name] = true
			m.Variables = append(m.Variables, v)
		}
	}

	return m
}

// moduleStatements flattens the statements run when the module is
// imported, descending into if/try bodies but not into defs.
func moduleStatements(node *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "if_statement", "elif_clause", "else_clause",
			"try_statement", "except_clause", "except_group_clause", "finally_clause",
			"block":
			out = append(out, moduleStatements(child)...)
		default:
			out = append(out, child)
		}
	}
	return out
}

func (p *PythonExtractor) extractClass(node *sitter.Node, sourceCode []byte, moduleName string, line int) *symbol.Class {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	c := &symbol.Class{
		Name:   nameNode.Content(sourceCode),
		Module: moduleName,
		Line:   line,
	}
	body := node.ChildByFieldName("body")
	if body == nil {
		return c
	}
	c.Doc = p.extractDocstring(body, sourceCode)

	propIdx := map[string]int{}
	methodIdx := map[string]int{}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		def, decorators := unwrapDecorated(member, sourceCode)
		if def.Type() != "function_definition" {
			continue
		}
		memberLine := int(member.StartPoint().Row) + 1

		role := decoratorRole(decorators)
		switch role {
		case roleAccessor:
			continue
		case roleProperty:
			nameNode := def.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			prop := &symbol.Property{
				Name:    nameNode.Content(sourceCode),
				Module:  moduleName,
				Line:    memberLine,
				Comment: leadingComment(member, sourceCode),
			}
			if fbody := def.ChildByFieldName("body"); fbody != nil {
				prop.Doc = p.extractDocstring(fbody, sourceCode)
			}
			if idx, ok := propIdx[prop.Name]; ok {
				c.Properties[idx] = prop
				continue
			}
			propIdx[prop.Name] = len(c.Properties)
			c.Properties = append(c.Properties, prop)
			continue
		}

		f := p.extractFunction(def, sourceCode, moduleName, memberLine)
		if f == nil {
			continue
		}
		if role == roleClassMethod {
			// bound to the class, cls is not part of the call
			f.Signature.Params = dropReceiver(f.Signature.Params)
		}
		if f.Name == "__init__" {
			c.Init = f
			continue
		}
		if idx, ok := methodIdx[f.Name]; ok {
			c.Methods[idx] = f
			continue
		}
		methodIdx[f.Name] = len(c.Methods)
		c.Methods = append(c.Methods, f)
	}
	return c
}

func (p *PythonExtractor) extractFunction(node *sitter.Node, sourceCode []byte, moduleName string, line int) *symbol.Function {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	f := &symbol.Function{
		Name:      nameNode.Content(sourceCode),
		Module:    moduleName,
		Line:      line,
		Signature: &signature.Signature{},
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		f.Signature.Params = p.extractParams(params, sourceCode)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		f.Signature.Returns = collapseSpace(ret.Content(sourceCode))
	}
	if body := node.ChildByFieldName("body"); body != nil {
		f.Doc = p.extractDocstring(body, sourceCode)
	}
	return f
}

func (p *PythonExtractor) extractParams(paramsNode *sitter.Node, sourceCode []byte) []signature.Param {
	params := []signature.Param{}
	text := func(n *sitter.Node) string {
		if n == nil {
			return ""
		}
		return collapseSpace(n.Content(sourceCode))
	}
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		pNode := paramsNode.NamedChild(i)
		switch pNode.Type() {
		case "identifier":
			params = append(params, signature.Param{Name: text(pNode)})
		case "list_splat_pattern":
			params = append(params, signature.Param{Name: splatName(text(pNode)), Kind: signature.VarPositional})
		case "dictionary_splat_pattern":
			params = append(params, signature.Param{Name: splatName(text(pNode)), Kind: signature.VarKeyword})
		case "keyword_separator":
			params = append(params, signature.Param{Kind: signature.KeywordMarker})
		case "positional_separator":
			params = append(params, signature.Param{Kind: signature.PositionalMarker})
		case "default_parameter":
			params = append(params, signature.Param{
				Name:    text(pNode.ChildByFieldName("name")),
				Default: text(pNode.ChildByFieldName("value")),
			})
		case "typed_default_parameter":
			params = append(params, signature.Param{
				Name:    text(pNode.ChildByFieldName("name")),
				Type:    text(pNode.ChildByFieldName("type")),
				Default: text(pNode.ChildByFieldName("value")),
			})
		case "typed_parameter":
			param := signature.Param{Type: text(pNode.ChildByFieldName("type"))}
			if target := pNode.NamedChild(0); target != nil {
				param.Name = splatName(text(target))
				switch target.Type() {
				case "list_splat_pattern":
					param.Kind = signature.VarPositional
				case "dictionary_splat_pattern":
					param.Kind = signature.VarKeyword
				}
			}
			params = append(params, param)
		}
	}
	return params
}

func dropReceiver(params []signature.Param) []signature.Param {
	if len(params) == 0 || params[0].Kind != signature.Positional {
		return params
	}
	return params[1:]
}

func splatName(s string) string {
	return strings.TrimLeft(s, "* ")
}

// extractDocstring returns the cleaned docstring of a module or block,
// i.e. a string literal as its first statement.
func (p *PythonExtractor) extractDocstring(block *sitter.Node, sourceCode []byte) string {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		stmt := block.NamedChild(i)
		if stmt.Type() == "comment" {
			continue
		}
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
			return ""
		}
		expr := stmt.NamedChild(0)
		var raw strings.Builder
		switch expr.Type() {
		case "string":
			s, ok := stringLiteral(expr.Content(sourceCode))
			if !ok {
				return ""
			}
			raw.WriteString(s)
		case "concatenated_string":
			for j := 0; j < int(expr.NamedChildCount()); j++ {
				part := expr.NamedChild(j)
				if part.Type() != "string" {
					continue
				}
				s, ok := stringLiteral(part.Content(sourceCode))
				if !ok {
					return ""
				}
				raw.WriteString(s)
			}
		default:
			return ""
		}
		return cleandoc(raw.String())
	}
	return ""
}

// extractVariables returns the module data bound by one top-level
// assignment statement.
func (p *PythonExtractor) extractVariables(stmt *sitter.Node, sourceCode []byte, moduleName string, scope moduleScope) []*symbol.Variable {
	if stmt.NamedChildCount() == 0 {
		return nil
	}
	assign := stmt.NamedChild(0)
	if assign.Type() != "assignment" {
		return nil
	}

	var targets []*sitter.Node
	value := assign
	for value != nil && value.Type() == "assignment" {
		targets = append(targets, value.ChildByFieldName("left"))
		value = value.ChildByFieldName("right")
	}
	if value == nil || p.namedValue(value, sourceCode, scope) {
		return nil
	}

	comment := leadingComment(stmt, sourceCode)
	if comment == "" {
		comment = trailingComment(stmt, sourceCode)
	}
	line := int(stmt.StartPoint().Row) + 1

	var vars []*symbol.Variable
	for _, target := range targets {
		for _, name := range targetNames(target, sourceCode) {
			if scope.defined[name] || scope.imported[name] {
				continue
			}
			vars = append(vars, &symbol.Variable{
				Name:    name,
				Module:  moduleName,
				Comment: comment,
				Line:    line,
			})
		}
	}
	return vars
}

// namedValue reports whether the assigned value is itself a named object
// (function, class, imported symbol) rather than plain data. Calls stay
// data, even when they build a callable.
func (p *PythonExtractor) namedValue(value *sitter.Node, sourceCode []byte, scope moduleScope) bool {
	switch value.Type() {
	case "lambda":
		return true
	case "identifier":
		name := value.Content(sourceCode)
		return scope.defined[name] || scope.imported[name]
	case "attribute":
		root := value
		for root.Type() == "attribute" {
			root = root.ChildByFieldName("object")
			if root == nil {
				return false
			}
		}
		return root.Type() == "identifier" && scope.imported[root.Content(sourceCode)]
	}
	return false
}

func targetNames(target *sitter.Node, sourceCode []byte) []string {
	if target == nil {
		return nil
	}
	switch target.Type() {
	case "identifier":
		return []string{target.Content(sourceCode)}
	case "pattern_list", "tuple_pattern", "list_pattern":
		var names []string
		for i := 0; i < int(target.NamedChildCount()); i++ {
			names = append(names, targetNames(target.NamedChild(i), sourceCode)...)
		}
		return names
	}
	return nil
}

// collectImports records every name bound by an import outside function
// and class bodies.
func collectImports(node *sitter.Node, sourceCode []byte, names map[string]bool) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "function_definition", "class_definition", "decorated_definition":
			continue
		case "import_statement":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				names[importedName(child.NamedChild(j), sourceCode, true)] = true
			}
		case "import_from_statement":
			moduleNode := child.ChildByFieldName("module_name")
			for j := 0; j < int(child.NamedChildCount()); j++ {
				n := child.NamedChild(j)
				if moduleNode != nil && n.StartByte() == moduleNode.StartByte() {
					continue
				}
				names[importedName(n, sourceCode, false)] = true
			}
		default:
			collectImports(child, sourceCode, names)
		}
	}
	delete(names, "")
}

// importedName is the local name an import binds. Plain "import a.b"
// binds "a".
func importedName(n *sitter.Node, sourceCode []byte, plain bool) string {
	switch n.Type() {
	case "aliased_import":
		if alias := n.ChildByFieldName("alias"); alias != nil {
			return alias.Content(sourceCode)
		}
	case "dotted_name":
		name := n.Content(sourceCode)
		if plain {
			name, _, _ = strings.Cut(name, ".")
		}
		return strings.TrimSpace(name)
	}
	return ""
}

type memberRole int

const (
	roleMethod memberRole = iota
	roleProperty
	roleAccessor
	roleClassMethod
)

func decoratorRole(decorators []string) memberRole {
	role := roleMethod
	for _, d := range decorators {
		for _, suffix := range accessorSuffixes {
			if strings.HasSuffix(d, suffix) {
				return roleAccessor
			}
		}
		switch d {
		case "property", "functools.cached_property", "cached_property":
			role = roleProperty
		case "classmethod":
			if role == roleMethod {
				role = roleClassMethod
			}
		}
	}
	return role
}

// unwrapDecorated returns the definition beneath a decorated_definition
// along with its decorator expressions, without the leading "@".
func unwrapDecorated(node *sitter.Node, sourceCode []byte) (*sitter.Node, []string) {
	if node.Type() != "decorated_definition" {
		return node, nil
	}
	var decorators []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "decorator" {
			d := strings.TrimPrefix(strings.TrimSpace(child.Content(sourceCode)), "@")
			decorators = append(decorators, collapseSpace(d))
		}
	}
	def := node.ChildByFieldName("definition")
	if def == nil {
		return node, decorators
	}
	return def, decorators
}

// leadingComment joins the contiguous "#" comments directly above node.
func leadingComment(node *sitter.Node, sourceCode []byte) string {
	var commentLines []string
	currentNode := node
	for {
		prevSibling := currentNode.PrevSibling()
		if prevSibling == nil || (currentNode.StartPoint().Row-prevSibling.EndPoint().Row > 1) {
			break
		}
		if prevSibling.Type() != "comment" {
			break
		}
		// a trailing comment of the previous statement is not ours
		if before := prevSibling.PrevSibling(); before != nil && before.EndPoint().Row == prevSibling.StartPoint().Row {
			break
		}
		commentLines = append([]string{commentText(prevSibling.Content(sourceCode))}, commentLines...)
		currentNode = prevSibling
	}
	return strings.Join(commentLines, " ")
}

func trailingComment(node *sitter.Node, sourceCode []byte) string {
	next := node.NextSibling()
	if next == nil || next.Type() != "comment" || next.StartPoint().Row != node.EndPoint().Row {
		return ""
	}
	return commentText(next.Content(sourceCode))
}
