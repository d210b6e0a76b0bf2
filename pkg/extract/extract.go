// Package extract collects the type names a PHP file refers to, to drive
// importing all of them at once.
package extract

import (
	"regexp"
	"strings"

	"github.com/stackb/php-namespace-resolver/pkg/builtins"
	"github.com/stackb/php-namespace-resolver/pkg/collections"
	"github.com/stackb/php-namespace-resolver/pkg/phpast"
)

// nameToken matches a possibly qualified identifier.
var nameToken = regexp.MustCompile(`\\?[A-Za-z_][A-Za-z0-9_]*(?:\\[A-Za-z_][A-Za-z0-9_]*)*`)

// Result holds the referenced names in first-seen order.
type Result struct {
	// Qualified names contain a separator and are kept as written.
	Qualified []string
	// Simple names have no separator.
	Simple []string
}

// Extract collects the names referenced by the type declaration and text of
// a file.  Names already bound by an import of the file are dropped.
func Extract(summary *phpast.Summary, text string, builtinSet builtins.Set) *Result {
	var names []string
	names = append(names, declared(summary.Type)...)
	names = append(names, lexical(text, builtinSet)...)
	if summary.Type != nil {
		for _, name := range summary.Type.TraitsUsed {
			names = append(names, name.Text)
		}
	}
	names = collections.Dedupe(names)

	bound := make(map[string]bool)
	for _, imp := range summary.ClassImports() {
		bound[imp.BaseName()] = true
		if imp.Alias != "" {
			bound[imp.Alias] = true
		}
	}
	self := ""
	if summary.Type != nil {
		self = summary.Type.Name
	}

	result := &Result{}
	for _, name := range names {
		switch phpast.Classify(name) {
		case phpast.Unqualified:
			if bound[name] || name == self {
				continue
			}
			result.Simple = append(result.Simple, name)
		case phpast.Qualified:
			first := name[:strings.Index(name, phpast.Separator)]
			if bound[first] {
				continue
			}
			result.Qualified = append(result.Qualified, name)
		default:
			result.Qualified = append(result.Qualified, name)
		}
	}
	return result
}

// declared returns the supertype, the unqualified interfaces and the
// unqualified parameter types of the declaration.
func declared(decl *phpast.TypeDeclaration) []string {
	if decl == nil {
		return nil
	}
	var names []string
	if decl.Supertype != nil {
		names = append(names, decl.Supertype.Text)
	}
	for _, iface := range decl.Interfaces {
		if iface.Resolution == phpast.Unqualified {
			names = append(names, iface.Text)
		}
	}
	for _, method := range decl.Methods {
		for _, param := range method.Parameters {
			if param.Type != nil && param.Type.Resolution == phpast.Unqualified {
				names = append(names, param.Type.Text)
			}
		}
	}
	return names
}

type heuristic int

const (
	none heuristic = iota
	construction
	staticAccess
	instanceOf
	typeMarker
	returnType
)

// lexical scans the text for names used with new, ::, instanceof, a trailing
// [ or < marker, or as a return type.  Names are grouped by heuristic in that
// order.
func lexical(text string, builtinSet builtins.Set) []string {
	found := make(map[heuristic][]string)
	for _, loc := range nameToken.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		name := text[start:end]
		if !startsUpper(strings.TrimPrefix(name, phpast.Separator)) {
			continue
		}
		if h := classify(text, start, end); h != none {
			if (h == typeMarker || h == returnType) && builtinSet.Contains(name) {
				continue
			}
			found[h] = append(found[h], name)
		}
	}

	var names []string
	for _, h := range []heuristic{construction, staticAccess, instanceOf, typeMarker, returnType} {
		names = append(names, found[h]...)
	}
	return names
}

func startsUpper(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func classify(text string, start, end int) heuristic {
	if start > 0 {
		switch text[start-1] {
		case '$', '_':
			return none
		}
		if isIdent(text[start-1]) {
			return none
		}
	}
	before := strings.TrimRight(text[:start], " \t\r\n")
	if strings.HasSuffix(before, "->") || strings.HasSuffix(before, "::") {
		return none
	}

	switch {
	case precededByKeyword(before, "new"):
		return construction
	case strings.HasPrefix(text[end:], "::"):
		return staticAccess
	case precededByKeyword(before, "instanceof"):
		return instanceOf
	case end < len(text) && (text[end] == '[' || text[end] == '<'):
		return typeMarker
	case isReturnType(before):
		return returnType
	}
	return none
}

func precededByKeyword(before, keyword string) bool {
	if len(before) < len(keyword) || !strings.EqualFold(before[len(before)-len(keyword):], keyword) {
		return false
	}
	rest := before[:len(before)-len(keyword)]
	return rest == "" || !isIdent(rest[len(rest)-1])
}

// isReturnType reports whether the text before a name ends with "):" or
// "): ?".
func isReturnType(before string) bool {
	before = strings.TrimSuffix(before, "?")
	before = strings.TrimRight(before, " \t")
	if !strings.HasSuffix(before, ":") {
		return false
	}
	before = strings.TrimRight(strings.TrimSuffix(before, ":"), " \t")
	return strings.HasSuffix(before, ")")
}

func isIdent(c byte) bool {
	return c == '_' || c == '\\' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
