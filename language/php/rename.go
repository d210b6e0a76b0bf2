package php

import (
	"path"
	"strings"

	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// RenameType renames the type declared by doc to match its filename.
func (s *Session) RenameType(doc *textedit.Document) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.step(doc, func() Notification {
		summary, err := s.summarize(doc)
		if err != nil {
			return s.fail(err)
		}
		decl := summary.Type
		if decl == nil {
			return s.notify(Info, "Nothing to update, or file is not supported")
		}

		name := strings.TrimSuffix(path.Base(s.relativePath(doc)), s.cfg.Extension)
		if decl.Name == name {
			return s.notify(Error, `Type "`+decl.Name+`" is already the same as "`+name+`"`)
		}
		if err := doc.Apply(textedit.Replace(decl.NameRange, name)); err != nil {
			return s.fail(err)
		}
		return s.notify(Info, `$(check) Type "`+decl.Name+`" renamed to "`+name+`".`)
	})
}
