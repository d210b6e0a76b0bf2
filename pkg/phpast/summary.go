package phpast

import (
	"strings"

	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// Separator is the PHP namespace separator.
const Separator = `\`

// Resolution classifies how a name was written at its reference site.
type Resolution int

const (
	// Unqualified names have no separator: Foo.
	Unqualified Resolution = iota
	// Qualified names contain an inner separator: Foo\Bar.
	Qualified
	// FullyQualified names start with a separator: \Foo\Bar.
	FullyQualified
)

func (r Resolution) String() string {
	switch r {
	case Qualified:
		return "qualified"
	case FullyQualified:
		return "fully-qualified"
	default:
		return "unqualified"
	}
}

// Name is a type name exactly as written in the source.
type Name struct {
	Text       string
	Resolution Resolution
	Range      textedit.Range
}

// NewName classifies text.
func NewName(text string, r textedit.Range) Name {
	return Name{Text: text, Resolution: Classify(text), Range: r}
}

// Classify returns the resolution of a written name.
func Classify(text string) Resolution {
	switch {
	case strings.HasPrefix(text, Separator):
		return FullyQualified
	case strings.Contains(text, Separator):
		return Qualified
	default:
		return Unqualified
	}
}

// BaseName returns the final segment of a dotted name.
func BaseName(name string) string {
	if i := strings.LastIndex(name, Separator); i >= 0 {
		return name[i+1:]
	}
	return name
}

// ImportKind distinguishes class imports from function and const imports.
type ImportKind int

const (
	ImportClass ImportKind = iota
	ImportFunction
	ImportConst
)

// ImportStatement is a single imported name of a use declaration.
type ImportStatement struct {
	// Path is the imported name without a leading separator.
	Path string
	// Alias is the "as" name, if any.
	Alias string
	Kind  ImportKind
	// Line is the zero-based line of the declaration.  It is only valid
	// until the next edit of the document it was parsed from.
	Line int
	// Range spans the whole declaration including its semicolon.
	Range textedit.Range
	// Grouped is set for clauses of a use A\{B, C} declaration.
	Grouped bool
}

// BaseName is the final segment of the imported path.
func (s ImportStatement) BaseName() string {
	return BaseName(s.Path)
}

// LocalName is the name the import binds in the file: the alias if present,
// otherwise the base name.
func (s ImportStatement) LocalName() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.BaseName()
}

// Text renders the declaration, without the trailing semicolon.
func (s ImportStatement) Text() string {
	return UseText(s.Path, s.Alias)
}

// UseText renders "use path" or "use path as alias".
func UseText(path, alias string) string {
	if alias == "" {
		return "use " + path
	}
	return "use " + path + " as " + alias
}

// NamespaceDecl is the namespace declaration of a file.
type NamespaceDecl struct {
	Name string
	// Range spans the declaration header: "namespace Foo;" or
	// "namespace Foo" for the braced form.
	Range     textedit.Range
	NameRange textedit.Range
	Braced    bool
}

// TypeKind is the kind of the primary type declaration.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
	KindTrait     TypeKind = "trait"
	KindEnum      TypeKind = "enum"
)

// Parameter is a method parameter; Type is nil for untyped, primitive and
// composite types.
type Parameter struct {
	Name string
	Type *Name
}

type Method struct {
	Name       string
	Parameters []Parameter
	ReturnType *Name
}

// TypeDeclaration is the first class, interface, trait or enum of a file.
type TypeDeclaration struct {
	Kind      TypeKind
	Name      string
	NameRange textedit.Range
	// Line is the first line of the declaration, including leading
	// attributes and a contiguous leading comment block.
	Line       int
	Supertype  *Name
	Interfaces []Name
	TraitsUsed []Name
	Methods    []Method
}

// Summary is the fixed shape the rest of the resolver works from.
type Summary struct {
	OpenTag   *textedit.Range
	Declare   *textedit.Range
	Namespace *NamespaceDecl
	Imports   []ImportStatement
	Type      *TypeDeclaration
}

// ClassImports returns only the class imports.
func (s *Summary) ClassImports() []ImportStatement {
	var result []ImportStatement
	for _, imp := range s.Imports {
		if imp.Kind == ImportClass {
			result = append(result, imp)
		}
	}
	return result
}

// NamespaceName returns the declared namespace or "".
func (s *Summary) NamespaceName() string {
	if s.Namespace == nil {
		return ""
	}
	return s.Namespace.Name
}
