package imports

import (
	"strings"

	"github.com/stackb/php-namespace-resolver/pkg/phpast"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// InsertLine returns the line a new import declaration is inserted at: the
// first existing import, else the type declaration, else the line after the
// namespace declaration, else after a declare statement, else after the open
// tag.
func InsertLine(s *phpast.Summary) int {
	switch {
	case len(s.Imports) > 0:
		return s.Imports[0].Line
	case s.Type != nil:
		return s.Type.Line
	case s.Namespace != nil:
		return s.Namespace.Range.End.Line + 1
	case s.Declare != nil:
		return s.Declare.End.Line + 1
	case s.OpenTag != nil:
		return s.OpenTag.End.Line + 1
	default:
		return 0
	}
}

// AppendLine returns the line after the last import declaration, or
// InsertLine when there is none.  Batches append so that the declarations
// keep the order they were resolved in.
func AppendLine(s *phpast.Summary) int {
	if n := len(s.Imports); n > 0 {
		return s.Imports[n-1].Range.End.Line + 1
	}
	return InsertLine(s)
}

// insertLineEdit inserts text as a new line before line.  Lines past the end
// of the document are appended.
func insertLineEdit(doc *textedit.Document, line int, text string) textedit.Edit {
	if line < doc.LineCount() {
		return textedit.Insert(textedit.Position{Line: line}, text+"\n")
	}
	end := textedit.Position{Line: doc.LineCount()}
	if strings.HasSuffix(doc.Text(), "\n") || doc.Text() == "" {
		return textedit.Insert(end, text+"\n")
	}
	return textedit.Insert(end, "\n"+text+"\n")
}

// deleteStatementEdit removes an import declaration, together with its line
// when nothing else is on it.
func deleteStatementEdit(doc *textedit.Document, imp phpast.ImportStatement) textedit.Edit {
	if strings.TrimSpace(doc.Line(imp.Line)) == doc.TextIn(imp.Range) {
		return textedit.Delete(doc.FullLineRange(imp.Line))
	}
	return textedit.Delete(imp.Range)
}
