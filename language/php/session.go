// Package php implements the user-facing commands of the resolver over an
// open document.  Every command reports exactly one notification and never
// returns an error to its host.
package php

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"

	"github.com/stackb/php-namespace-resolver/pkg/builtins"
	"github.com/stackb/php-namespace-resolver/pkg/config"
	"github.com/stackb/php-namespace-resolver/pkg/diagnostics"
	"github.com/stackb/php-namespace-resolver/pkg/imports"
	"github.com/stackb/php-namespace-resolver/pkg/nameindex"
	"github.com/stackb/php-namespace-resolver/pkg/phpast"
	"github.com/stackb/php-namespace-resolver/pkg/progress"
	"github.com/stackb/php-namespace-resolver/pkg/psr4"
	"github.com/stackb/php-namespace-resolver/pkg/resolver"
	"github.com/stackb/php-namespace-resolver/pkg/sorter"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// referenceWord matches a possibly qualified type name under the cursor.  The
// first character is an upper case letter or a digit.
var referenceWord = regexp.MustCompile(`\\?[A-Z0-9][A-Za-z0-9_]*(?:\\[A-Za-z0-9_]+)*`)

// Prompter is the interactive side of a session: choosing between
// candidates and naming aliases.
type Prompter interface {
	resolver.Picker
	imports.Prompter
}

// Session runs commands for one workspace.  Commands are serialized.
type Session struct {
	mu sync.Mutex

	root     string
	fsys     fs.FS
	cfg      *config.Config
	surface  Surface
	notifier Notifier
	progress mobyprogress.Output
	logger   zerolog.Logger

	runtime  builtins.Runtime
	searcher diagnostics.Searcher

	parser    *phpast.MemoParser
	builtins  *builtins.Registry
	index     *nameindex.Index
	resolver  *resolver.Resolver
	imports   *imports.Manager
	generator *psr4.Generator
	checker   *diagnostics.Checker
}

type Option func(*Session)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(s *Session) {
		s.notifier = notifier
	}
}

func WithProgress(output mobyprogress.Output) Option {
	return func(s *Session) {
		s.progress = output
	}
}

// WithFS overrides the workspace filesystem, os.DirFS(root) by default.
func WithFS(fsys fs.FS) Option {
	return func(s *Session) {
		s.fsys = fsys
	}
}

// WithRuntime overrides the PHP runtime used for built-in enumeration and
// class maps.
func WithRuntime(runtime builtins.Runtime) Option {
	return func(s *Session) {
		s.runtime = runtime
	}
}

// WithSearcher overrides the project-wide text search.
func WithSearcher(searcher diagnostics.Searcher) Option {
	return func(s *Session) {
		s.searcher = searcher
	}
}

// NewSession wires the components for the workspace at root.
func NewSession(root string, cfg *config.Config, prompter Prompter, options ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		root:     root,
		cfg:      cfg,
		notifier: NotifierFunc(func(Notification) {}),
		progress: progress.Discard,
		logger:   zerolog.Nop(),
	}
	if cfg.ShowMessageOnStatusBar {
		s.surface = StatusBar
	}
	for _, opt := range options {
		opt(s)
	}
	if s.fsys == nil {
		s.fsys = os.DirFS(root)
	}
	if s.runtime == nil {
		s.runtime = &builtins.PHPRuntime{
			Command: cfg.PHP.Command,
			Dir:     root,
			Logger:  s.logger,
		}
	}
	if s.searcher == nil {
		s.searcher = &diagnostics.RipgrepSearcher{
			Command:      cfg.CheckForNamespaces.Rg.Command,
			Dir:          root,
			ExcludeDirs:  cfg.CheckForNamespaces.Rg.ExcludeDirs,
			ExcludeFiles: cfg.CheckForNamespaces.Rg.ExcludeFiles,
			Logger:       s.logger,
		}
	}

	s.parser = phpast.NewMemoParser(phpast.NewParser(phpast.WithLogger(s.logger)), s.logger)
	s.builtins = builtins.NewRegistry(s.runtime,
		builtins.WithLogger(s.logger),
		builtins.WithMethods(cfg.PHP.BuiltIns...),
	)
	s.index = nameindex.New(s.fsys,
		nameindex.WithLogger(s.logger),
		nameindex.WithParser(phpast.NewMemoParser(phpast.NewParser(phpast.WithLenient(), phpast.WithLogger(s.logger)), s.logger)),
		nameindex.WithExclude(cfg.Exclude...),
		nameindex.WithExtension(cfg.Extension),
	)
	s.resolver = resolver.New(s.index, s.builtins, prompter, resolver.WithLogger(s.logger))
	s.imports = imports.NewManager(s.parser, prompter,
		imports.Config{
			ForceReplaceSimilar: cfg.ForceReplaceSimilarImports,
			AutoSort:            cfg.Sort.Auto,
			Sort:                cfg.Sort.Config,
		},
		imports.WithLogger(s.logger),
		imports.WithNotice(func(message string) {
			s.notify(Error, message)
		}),
	)

	generator, err := psr4.NewGenerator(s.fsys, cfg.Namespace, psr4.WithLogger(s.logger))
	if err != nil {
		return nil, &config.Error{Field: "namespace.removePath", Reason: err.Error()}
	}
	s.generator = generator

	s.checker = diagnostics.NewChecker(s.fsys,
		cfg.CheckForNamespaces.ClassMapFileGlob,
		s.runtime,
		s.builtins,
		s.searcher,
		diagnostics.WithLogger(s.logger),
	)

	return s, nil
}

// Config returns the settings of the session.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Reinitialize enumerates the built-in types again.
func (s *Session) Reinitialize(ctx context.Context) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cfg.RequireRuntime(); err != nil {
		return s.fail(err)
	}
	set := s.builtins.Reload(ctx)
	return s.notify(Info, "$(check) loaded "+strconv.Itoa(set.Len())+" built-in types.")
}

// step runs fn as one undo step of doc.
func (s *Session) step(doc *textedit.Document, fn func() Notification) Notification {
	cp := doc.Checkpoint()
	defer doc.Squash(cp)
	return fn()
}

func (s *Session) notify(level Level, message string) Notification {
	n := Notification{Level: level, Message: s.surface.Format(message)}
	s.notifier.Notify(n)
	return n
}

func (s *Session) fail(err error) Notification {
	s.logger.Debug().Err(err).Msg("command failed")
	return s.notify(Error, errorMessage(err))
}

func (s *Session) summarize(doc *textedit.Document) (*phpast.Summary, error) {
	return s.parser.Parse(doc.Filename(), doc.Bytes())
}

// relativePath returns the document filename relative to the workspace
// root, slash separated.
func (s *Session) relativePath(doc *textedit.Document) string {
	name := doc.Filename()
	if filepath.IsAbs(name) && s.root != "" {
		if rel, err := filepath.Rel(s.root, name); err == nil {
			name = rel
		}
	}
	return filepath.ToSlash(name)
}

// referenceAt returns the range and text of the type name at p.
func referenceAt(doc *textedit.Document, p textedit.Position) (textedit.Range, string, bool) {
	r, ok := doc.WordRangeAt(p, referenceWord)
	if !ok {
		return textedit.Range{}, "", false
	}
	return r, doc.TextIn(r), true
}

// anchorAll places an anchor per position so that positions survive the
// edits made for the ones before them.
func anchorAll(doc *textedit.Document, positions []textedit.Position) []*textedit.Anchor {
	anchors := make([]*textedit.Anchor, len(positions))
	for i, p := range positions {
		anchors[i] = doc.Anchor(p)
	}
	return anchors
}

// errorMessage converts a command failure into its user message.
func errorMessage(err error) string {
	var (
		notFound      *resolver.NotFoundError
		already       *imports.AlreadyImportedError
		aliasConflict *imports.AliasConflictError
		nameConflict  *imports.NameConflictError
		similar       *imports.SimilarImportError
		manifest      *psr4.ManifestError
		noPrefix      *psr4.NoPrefixMatchError
		parse         *phpast.ParseError
		cfg           *config.Error
	)
	switch {
	case errors.As(err, &notFound):
		return "$(circle-slash) The class is not found."
	case errors.Is(err, resolver.ErrCancelled):
		return "No class is selected."
	case errors.Is(err, resolver.ErrAlreadyQualified):
		return "The class is already fully qualified."
	case errors.As(err, &already):
		return "'" + already.FQN + "' already exists"
	case errors.As(err, &aliasConflict):
		return "class : '" + aliasConflict.Name + "' is used as alias."
	case errors.As(err, &nameConflict):
		return nameConflict.Error()
	case errors.As(err, &similar):
		return "use statement '" + similar.Existing + "' already exists"
	case errors.Is(err, psr4.ErrManifestMissing):
		return "No composer.json file found"
	case errors.As(err, &manifest):
		return manifest.Error()
	case errors.As(err, &noPrefix):
		return "no namespace found for current file parent directory"
	case errors.Is(err, sorter.ErrNothingToSort):
		return "Nothing to sort."
	case errors.As(err, &parse):
		return "Unable to parse " + parse.Error()
	case errors.Is(err, builtins.ErrExternalToolMissing):
		return "config required : php.command"
	case errors.As(err, &cfg):
		return "config required : " + cfg.Field
	}
	return strings.TrimSpace(err.Error())
}
