package php

import (
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// Sort orders the imports of doc.
func (s *Session) Sort(doc *textedit.Document) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.step(doc, func() Notification {
		if err := s.imports.Sort(doc); err != nil {
			return s.fail(err)
		}
		return s.notify(Info, "$(check)  Imports are sorted.")
	})
}
