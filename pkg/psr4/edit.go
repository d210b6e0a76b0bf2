package psr4

import (
	"strings"

	"github.com/stackb/php-namespace-resolver/pkg/phpast"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// NamespaceEdit sets the namespace of a document: the name of an existing
// declaration is replaced, otherwise a declaration is inserted after the
// declare statement or the open tag.
func NamespaceEdit(doc *textedit.Document, summary *phpast.Summary, ns string) textedit.Edit {
	if decl := summary.Namespace; decl != nil {
		if decl.Name == "" {
			// global braced namespace
			return textedit.Replace(decl.Range, "namespace "+ns+" ")
		}
		return textedit.Replace(decl.NameRange, ns)
	}

	line := 0
	switch {
	case summary.Declare != nil:
		line = summary.Declare.End.Line + 1
	case summary.OpenTag != nil:
		line = summary.OpenTag.End.Line + 1
	}

	text := "\nnamespace " + ns + ";\n"
	if line < doc.LineCount() {
		return textedit.Insert(textedit.Position{Line: line}, text)
	}
	end := textedit.Position{Line: doc.LineCount()}
	if !strings.HasSuffix(doc.Text(), "\n") {
		text = "\n" + text
	}
	return textedit.Insert(end, text)
}
