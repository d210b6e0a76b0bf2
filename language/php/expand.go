package php

import (
	"context"

	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// Expand rewrites the type name under each position to its fully-qualified
// form.
func (s *Session) Expand(ctx context.Context, doc *textedit.Document, positions ...textedit.Position) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(positions) == 0 {
		return s.notify(Error, "No class is selected.")
	}
	if err := s.cfg.RequireRuntime(); err != nil {
		return s.fail(err)
	}

	return s.step(doc, func() Notification {
		anchors := anchorAll(doc, positions)
		defer doc.Release(anchors...)

		var result *Notification
		for _, a := range anchors {
			n := s.expandAt(ctx, doc, a.Position())
			if result == nil || result.Level != Error {
				result = &n
			}
		}
		return *result
	})
}

func (s *Session) expandAt(ctx context.Context, doc *textedit.Document, p textedit.Position) Notification {
	site, written, ok := referenceAt(doc, p)
	if !ok {
		return s.notify(Error, "No class is selected.")
	}
	resolution, err := s.resolver.Expand(ctx, written)
	if err != nil {
		return s.fail(err)
	}
	if err := s.imports.Expand(doc, site, resolution.FQN, s.cfg.LeadingSeparator); err != nil {
		return s.fail(err)
	}
	return s.notify(Info, "$(check) The class is expanded.")
}
