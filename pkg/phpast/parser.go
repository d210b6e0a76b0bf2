package phpast

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// Parser summarizes PHP source files.
type Parser interface {
	// Parse summarizes the given file content.  The filename is used for
	// error reporting and caching only.
	Parse(filename string, content []byte) (*Summary, error)
}

// TreeSitterParser implements Parser with the tree-sitter PHP grammar.  A new
// tree-sitter parser is created per call so the value is safe for concurrent
// use.
type TreeSitterParser struct {
	logger  zerolog.Logger
	lenient bool
}

type Option func(*TreeSitterParser)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *TreeSitterParser) {
		p.logger = logger
	}
}

// WithLenient makes the parser summarize whatever it could recover from a
// file with syntax errors instead of failing.
func WithLenient() Option {
	return func(p *TreeSitterParser) {
		p.lenient = true
	}
}

func NewParser(options ...Option) *TreeSitterParser {
	p := &TreeSitterParser{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Parse implements Parser.
func (p *TreeSitterParser) Parse(filename string, content []byte) (*Summary, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(sitter.NewLanguage(tree_sitter_php.LanguagePHP())); err != nil {
		return nil, &ParseError{Filename: filename, Reason: fmt.Sprintf("loading php grammar: %v", err)}
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, &ParseError{Filename: filename, Reason: "parser returned no tree"}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		bad := firstErrorNode(root)
		if !p.lenient {
			perr := &ParseError{Filename: filename, Reason: "syntax error"}
			if bad != nil {
				perr.Line = int(bad.StartPosition().Row) + 1
				perr.Column = int(bad.StartPosition().Column) + 1
			}
			return nil, perr
		}
		p.logger.Debug().Str("file", filename).Msg("summarizing file with syntax errors")
	}

	w := &walker{src: content}
	return w.summarize(root), nil
}

// ParseNamespace reads only the namespace name of a file.  Syntax errors
// elsewhere in the file are tolerated.
func ParseNamespace(filename string, content []byte) (string, error) {
	summary, err := NewParser(WithLenient()).Parse(filename, content)
	if err != nil {
		return "", err
	}
	return summary.NamespaceName(), nil
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
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

type walker struct {
	src []byte
}

func (w *walker) text(n *sitter.Node) string {
	return n.Utf8Text(w.src)
}

func nodeRange(n *sitter.Node) textedit.Range {
	start := n.StartPosition()
	end := n.EndPosition()
	return textedit.Range{
		Start: textedit.Position{Line: int(start.Row), Column: int(start.Column)},
		End:   textedit.Position{Line: int(end.Row), Column: int(end.Column)},
	}
}

func children(n *sitter.Node) []*sitter.Node {
	count := n.ChildCount()
	result := make([]*sitter.Node, 0, count)
	for i := uint(0); i < count; i++ {
		if child := n.Child(i); child != nil {
			result = append(result, child)
		}
	}
	return result
}

func (w *walker) summarize(root *sitter.Node) *Summary {
	s := &Summary{}
	container := root

	for _, child := range children(root) {
		switch child.Kind() {
		case "php_tag":
			if s.OpenTag == nil {
				r := nodeRange(child)
				s.OpenTag = &r
			}
		case "declare_statement":
			if s.Declare == nil {
				r := nodeRange(child)
				s.Declare = &r
			}
		case "namespace_definition":
			if s.Namespace != nil {
				continue
			}
			s.Namespace = w.namespace(child)
			if body := child.ChildByFieldName("body"); body != nil {
				container = body
			}
		}
	}

	w.statements(s, container)
	return s
}

func (w *walker) namespace(n *sitter.Node) *NamespaceDecl {
	decl := &NamespaceDecl{Range: nodeRange(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		decl.Name = strings.TrimPrefix(w.text(name), Separator)
		decl.NameRange = nodeRange(name)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		decl.Braced = true
		// the header ends where the braced body begins
		decl.Range.End = decl.NameRange.End
		if decl.Name == "" {
			decl.Range.End = nodeRange(body).Start
		}
	}
	return decl
}

func (w *walker) statements(s *Summary, container *sitter.Node) {
	for _, child := range children(container) {
		switch child.Kind() {
		case "namespace_use_declaration":
			s.Imports = append(s.Imports, w.useDeclaration(child)...)
		case "class_declaration", "interface_declaration", "trait_declaration", "enum_declaration":
			if s.Type == nil {
				s.Type = w.typeDeclaration(child)
			}
		}
	}
}

func (w *walker) importKind(n *sitter.Node) (ImportKind, bool) {
	if t := n.ChildByFieldName("type"); t != nil {
		return kindOf(w.text(t)), true
	}
	for _, child := range children(n) {
		if child.IsNamed() {
			continue
		}
		switch strings.ToLower(w.text(child)) {
		case "function", "const":
			return kindOf(w.text(child)), true
		}
	}
	return ImportClass, false
}

func kindOf(keyword string) ImportKind {
	switch strings.ToLower(keyword) {
	case "function":
		return ImportFunction
	case "const":
		return ImportConst
	default:
		return ImportClass
	}
}

func (w *walker) useDeclaration(n *sitter.Node) []ImportStatement {
	kind, _ := w.importKind(n)
	line := int(n.StartPosition().Row)
	r := nodeRange(n)

	var result []ImportStatement
	var prefix string
	for _, child := range children(n) {
		switch child.Kind() {
		case "namespace_name", "qualified_name", "name":
			prefix = strings.Trim(w.text(child), Separator)
		case "namespace_use_clause":
			path, alias := w.useClause(child)
			result = append(result, ImportStatement{
				Path:  path,
				Alias: alias,
				Kind:  kind,
				Line:  line,
				Range: r,
			})
		case "namespace_use_group":
			for _, clause := range children(child) {
				switch clause.Kind() {
				case "namespace_use_clause", "namespace_use_group_clause":
				default:
					continue
				}
				path, alias := w.useClause(clause)
				clauseKind := kind
				if k, ok := w.importKind(clause); ok {
					clauseKind = k
				}
				if prefix != "" {
					path = prefix + Separator + path
				}
				result = append(result, ImportStatement{
					Path:    path,
					Alias:   alias,
					Kind:    clauseKind,
					Line:    line,
					Range:   r,
					Grouped: true,
				})
			}
		}
	}
	return result
}

func (w *walker) useClause(n *sitter.Node) (path, alias string) {
	if a := n.ChildByFieldName("alias"); a != nil {
		alias = w.text(a)
	}
	afterAs := false
	for _, child := range children(n) {
		switch child.Kind() {
		case "namespace_aliasing_clause":
			for _, c := range children(child) {
				if c.Kind() == "name" {
					alias = w.text(c)
				}
			}
		case "name", "qualified_name", "namespace_name":
			if path == "" {
				path = strings.TrimPrefix(w.text(child), Separator)
			} else if afterAs && alias == "" {
				alias = w.text(child)
			}
		default:
			if !child.IsNamed() && strings.EqualFold(w.text(child), "as") {
				afterAs = true
			}
		}
	}
	return path, alias
}

func (w *walker) name(n *sitter.Node) *Name {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "name", "qualified_name":
		name := NewName(w.text(n), nodeRange(n))
		return &name
	case "named_type", "optional_type", "return_type":
		for _, child := range children(n) {
			if child.IsNamed() {
				return w.name(child)
			}
		}
	}
	return nil
}

func (w *walker) names(n *sitter.Node) []Name {
	var result []Name
	for _, child := range children(n) {
		if name := w.name(child); name != nil {
			result = append(result, *name)
		}
	}
	return result
}

func (w *walker) typeDeclaration(n *sitter.Node) *TypeDeclaration {
	decl := &TypeDeclaration{
		Line: w.leadingLine(n),
	}
	switch n.Kind() {
	case "interface_declaration":
		decl.Kind = KindInterface
	case "trait_declaration":
		decl.Kind = KindTrait
	case "enum_declaration":
		decl.Kind = KindEnum
	default:
		decl.Kind = KindClass
	}
	if name := n.ChildByFieldName("name"); name != nil {
		decl.Name = w.text(name)
		decl.NameRange = nodeRange(name)
	}

	for _, child := range children(n) {
		switch child.Kind() {
		case "base_clause":
			names := w.names(child)
			if decl.Kind == KindInterface {
				decl.Interfaces = append(decl.Interfaces, names...)
			} else if len(names) > 0 {
				decl.Supertype = &names[0]
			}
		case "class_interface_clause":
			decl.Interfaces = append(decl.Interfaces, w.names(child)...)
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		for _, member := range children(body) {
			switch member.Kind() {
			case "use_declaration":
				decl.TraitsUsed = append(decl.TraitsUsed, w.names(member)...)
			case "method_declaration":
				decl.Methods = append(decl.Methods, w.method(member))
			}
		}
	}

	return decl
}

// leadingLine returns the first line of n, moved up over a contiguous block of
// comments directly above it.
func (w *walker) leadingLine(n *sitter.Node) int {
	line := int(n.StartPosition().Row)
	for prev := n.PrevSibling(); prev != nil && prev.Kind() == "comment"; prev = prev.PrevSibling() {
		if int(prev.EndPosition().Row)+1 < line {
			break
		}
		line = int(prev.StartPosition().Row)
	}
	return line
}

func (w *walker) method(n *sitter.Node) Method {
	m := Method{}
	if name := n.ChildByFieldName("name"); name != nil {
		m.Name = w.text(name)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for _, param := range children(params) {
			switch param.Kind() {
			case "simple_parameter", "variadic_parameter", "property_promotion_parameter":
			default:
				continue
			}
			p := Parameter{Type: w.name(param.ChildByFieldName("type"))}
			if name := param.ChildByFieldName("name"); name != nil {
				p.Name = strings.TrimPrefix(w.text(name), "$")
			}
			m.Parameters = append(m.Parameters, p)
		}
	}
	m.ReturnType = w.name(n.ChildByFieldName("return_type"))
	return m
}
