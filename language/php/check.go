package php

import (
	"context"
	"strconv"

	"github.com/stackb/php-namespace-resolver/pkg/diagnostics"
)

// CheckNamespaces reports the qualified names used in the workspace that
// neither a class map nor the runtime knows about.
func (s *Session) CheckNamespaces(ctx context.Context) ([]diagnostics.Diagnostic, Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cfg.RequireNamespaceCheck(); err != nil {
		return nil, s.fail(err)
	}
	found, err := s.checker.Check(ctx)
	if err != nil {
		return nil, s.fail(err)
	}
	if len(found) == 0 {
		return nil, s.notify(Info, "$(check) no unknown namespaces found.")
	}
	return found, s.notify(Error, strconv.Itoa(len(found))+" unknown namespaces found.")
}
