package php

import (
	"github.com/stackb/php-namespace-resolver/pkg/psr4"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// GenerateNamespace sets the namespace declaration of doc from its location
// in the workspace.
func (s *Session) GenerateNamespace(doc *textedit.Document) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.step(doc, func() Notification {
		ns, err := s.generator.Namespace(s.relativePath(doc))
		if err != nil {
			return s.fail(err)
		}
		summary, err := s.summarize(doc)
		if err != nil {
			return s.fail(err)
		}
		if summary.NamespaceName() == ns {
			return s.notify(Info, "Namespace "+ns+" is already declared.")
		}
		if err := doc.Apply(psr4.NamespaceEdit(doc, summary, ns)); err != nil {
			return s.fail(err)
		}
		s.logger.Info().Str("file", doc.Filename()).Str("namespace", ns).Msg("generated namespace")
		return s.notify(Info, "$(check) namespace "+ns+" generated.")
	})
}

// Namespace returns the namespace doc should declare.  Failures are not
// reported.
func (s *Session) Namespace(doc *textedit.Document) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, err := s.generator.Namespace(s.relativePath(doc))
	if err != nil {
		s.logger.Debug().Err(err).Str("file", doc.Filename()).Msg("no namespace")
		return "", false
	}
	return ns, true
}
