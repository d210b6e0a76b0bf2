package php

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/stackb/php-namespace-resolver/pkg/extract"
	"github.com/stackb/php-namespace-resolver/pkg/imports"
	"github.com/stackb/php-namespace-resolver/pkg/resolver"
	"github.com/stackb/php-namespace-resolver/pkg/sorter"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// Import imports the type name under each position.  Every position is
// reported to the notifier; the returned notification is the first failure,
// or the last success.
func (s *Session) Import(ctx context.Context, doc *textedit.Document, positions ...textedit.Position) Notification {
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
			n := s.importAt(ctx, doc, a.Position())
			if result == nil || result.Level != Error {
				result = &n
			}
		}
		return *result
	})
}

func (s *Session) importAt(ctx context.Context, doc *textedit.Document, p textedit.Position) Notification {
	site, written, ok := referenceAt(doc, p)
	if !ok {
		return s.notify(Error, "No class is selected.")
	}

	resolution, err := s.resolver.Resolve(ctx, written)
	if err != nil {
		return s.fail(err)
	}
	if _, err := s.imports.Import(ctx, doc, imports.Request{Resolution: resolution, Site: &site}); err != nil {
		return s.fail(err)
	}
	return s.notify(Info, "$(check) The class is imported.")
}

// ImportAll imports every type name the document refers to.  A failure for
// one name is skipped; dismissing a choice stops the batch.
func (s *Session) ImportAll(ctx context.Context, doc *textedit.Document) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cfg.RequireRuntime(); err != nil {
		return s.fail(err)
	}

	return s.step(doc, func() Notification {
		summary, err := s.summarize(doc)
		if err != nil {
			return s.fail(err)
		}
		found := extract.Extract(summary, doc.Text(), s.builtins.Set(ctx))

		b := &batch{
			session: s,
			doc:     doc,
			total:   len(found.Qualified) + len(found.Simple),
		}
		b.qualified(ctx, found.Qualified)
		if !b.stopped {
			b.simple(ctx, found.Simple)
		}
		b.done()

		if s.cfg.Sort.Auto && b.imported > 0 {
			if err := s.imports.Sort(doc); err != nil && !errors.Is(err, sorter.ErrNothingToSort) {
				s.logger.Warn().Err(err).Msg("sorting imports")
			}
		}

		if b.stopped {
			return s.notify(Error, "importing cancelled, "+countText(b.imported, "import")+" added.")
		}
		if b.failed > 0 {
			return s.notify(Info, "$(check) importing done, "+countText(b.failed, "name")+" ignored.")
		}
		return s.notify(Info, "$(check) importing done.")
	})
}

// batch tracks the progress of ImportAll.
type batch struct {
	session  *Session
	doc      *textedit.Document
	total    int
	current  int
	imported int
	failed   int
	stopped  bool
}

// qualified resolves each qualified name once and imports it at every
// occurrence outside the use declarations.  Occurrences are searched again
// after each edit since every rewrite shifts the text after it.
func (b *batch) qualified(ctx context.Context, names []string) {
	s := b.session
	for _, name := range names {
		b.advance(name)

		resolution, err := s.resolver.Resolve(ctx, name)
		if err != nil {
			if b.stop(name, err) {
				return
			}
			continue
		}

		seen := -1
		for {
			// each import rewrites the occurrence it was given
			sites := occurrences(b.doc, name)
			if len(sites) == 0 || len(sites) == seen {
				break
			}
			seen = len(sites)

			_, err := s.imports.Import(ctx, b.doc, imports.Request{Resolution: resolution, Site: &sites[0], Batch: true})
			var already *imports.AlreadyImportedError
			if err == nil {
				b.imported++
				continue
			}
			if errors.As(err, &already) {
				continue
			}
			if b.stop(name, err) {
				return
			}
			break
		}
	}
}

// simple imports the unqualified names not bound by an import added for a
// qualified one.
func (b *batch) simple(ctx context.Context, names []string) {
	s := b.session
	summary, err := s.summarize(b.doc)
	if err != nil {
		s.logger.Warn().Err(err).Msg("re-reading imports")
		return
	}
	bound := make(map[string]bool)
	for _, imp := range summary.ClassImports() {
		bound[imp.LocalName()] = true
		bound[imp.BaseName()] = true
	}

	for _, name := range names {
		b.advance(name)
		if bound[name] {
			continue
		}
		resolution, err := s.resolver.Resolve(ctx, name)
		if err == nil {
			_, err = s.imports.Import(ctx, b.doc, imports.Request{Resolution: resolution, Batch: true})
		}
		if err != nil {
			if b.stop(name, err) {
				return
			}
			continue
		}
		b.imported++
		bound[name] = true
	}
}

// stop records a failed name and reports whether the batch must end.
func (b *batch) stop(name string, err error) bool {
	s := b.session
	if errors.Is(err, resolver.ErrCancelled) || errors.Is(err, context.Canceled) {
		b.stopped = true
		return true
	}
	var nameConflict *imports.NameConflictError
	if errors.As(err, &nameConflict) && nameConflict.Cancelled {
		b.stopped = true
		return true
	}
	b.failed++
	s.logger.Warn().Err(err).Str("name", name).Msg("import ignored")
	return false
}

func (b *batch) advance(name string) {
	b.current++
	writeImportProgress(b.session.progress, name, b.current, b.total, false)
}

func (b *batch) done() {
	writeImportProgress(b.session.progress, "", b.current, b.total, true)
}

// occurrences finds name as a whole word outside use and namespace lines.
func occurrences(doc *textedit.Document, name string) []textedit.Range {
	re := regexp.MustCompile(`(?:^|[^A-Za-z0-9_\\$])(` + regexp.QuoteMeta(name) + `)(?:[^A-Za-z0-9_\\]|$)`)
	text := doc.Text()

	var sites []textedit.Range
	offset := 0
	for offset <= len(text) {
		loc := re.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[2], offset+loc[3]
		offset = end

		r := textedit.Range{Start: doc.PositionAt(start), End: doc.PositionAt(end)}
		line := strings.TrimSpace(doc.Line(r.Start.Line))
		if strings.HasPrefix(line, "use ") || strings.HasPrefix(line, "namespace ") {
			continue
		}
		sites = append(sites, r)
	}
	return sites
}

func countText(n int, noun string) string {
	text := strconv.Itoa(n) + " " + noun
	if n != 1 {
		text += "s"
	}
	return text
}
