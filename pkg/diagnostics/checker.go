package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/stackb/php-namespace-resolver/pkg/builtins"
	"github.com/stackb/php-namespace-resolver/pkg/phpast"
)

// Pattern finds use declarations and qualified references.  It needs a PCRE2
// engine for the look-ahead.
const Pattern = `((namespace|use) )?\\?(\w+\\)+\w+(?=[ ;:\(])`

// Source labels the diagnostics.
const Source = "PHP Namespace Resolver"

// ErrClassMapGlobMissing is returned when no class map glob is configured.
var ErrClassMapGlobMissing = errors.New("config required: classMapFileGlob")

// Diagnostic reports a qualified name that is neither in a class map nor
// built-in.
type Diagnostic struct {
	File string
	// Line is 0-based.
	Line    int
	Name    string
	Message string
}

// BuiltIns provides the built-in type names of the session.
type BuiltIns interface {
	Set(ctx context.Context) builtins.Set
}

// Checker finds names used in the workspace that no autoloader knows about.
type Checker struct {
	fsys     fs.FS
	glob     string
	runtime  builtins.Runtime
	builtins BuiltIns
	searcher Searcher
	logger   zerolog.Logger
}

type Option func(*Checker)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// NewChecker creates a checker.  classMapGlob selects the class map files
// (for example vendor/composer/autoload_classmap.php) evaluated through the
// runtime.
func NewChecker(fsys fs.FS, classMapGlob string, runtime builtins.Runtime, builtins BuiltIns, searcher Searcher, options ...Option) *Checker {
	c := &Checker{
		fsys:     fsys,
		glob:     classMapGlob,
		runtime:  runtime,
		builtins: builtins,
		searcher: searcher,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Check searches the workspace and returns the unknown names sorted by file
// and line.
func (c *Checker) Check(ctx context.Context) ([]Diagnostic, error) {
	if c.glob == "" {
		return nil, ErrClassMapGlobMissing
	}

	known, err := c.knownNames(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := c.searcher.Search(ctx, Pattern)
	if err != nil {
		return nil, fmt.Errorf("searching for qualified names: %w", err)
	}

	var diagnostics []Diagnostic
	for file, fileMatches := range byFile(matches) {
		diagnostics = append(diagnostics, c.checkFile(file, fileMatches, known)...)
	}

	sort.SliceStable(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i], diagnostics[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})

	c.logger.Info().Int("matches", len(matches)).Int("unknown", len(diagnostics)).Msg("checked namespaces")

	return diagnostics, nil
}

func byFile(matches []Match) map[string][]Match {
	files := make(map[string][]Match)
	for _, m := range matches {
		files[m.File] = append(files[m.File], m)
	}
	return files
}

// checkFile reports the unknown use declarations and qualified references of
// one file.  References whose first segment is imported by the file are
// relative to that import and skipped.
func (c *Checker) checkFile(file string, matches []Match, known func(string) bool) []Diagnostic {
	imported := make(map[string]bool)
	for _, m := range matches {
		if name, ok := strings.CutPrefix(m.Text, "use "); ok {
			imported[phpast.BaseName(name)] = true
		}
	}

	var diagnostics []Diagnostic
	for _, m := range matches {
		text := m.Text
		if strings.HasPrefix(text, "namespace ") {
			continue
		}
		name, isUse := strings.CutPrefix(text, "use ")
		name = strings.TrimPrefix(name, phpast.Separator)
		if !isUse {
			first := name
			if i := strings.Index(name, phpast.Separator); i >= 0 {
				first = name[:i]
			}
			if imported[first] {
				continue
			}
		}
		if known(name) {
			continue
		}
		diagnostics = append(diagnostics, Diagnostic{
			File:    file,
			Line:    m.Line - 1,
			Name:    name,
			Message: "unknown namespace : " + name,
		})
	}
	return diagnostics
}

// knownNames loads every class map and adds the built-in names.  A class map
// that cannot be evaluated is skipped.
func (c *Checker) knownNames(ctx context.Context) (func(name string) bool, error) {
	files, err := doublestar.Glob(c.fsys, c.glob)
	if err != nil {
		return nil, fmt.Errorf("class map glob %q: %w", c.glob, err)
	}

	known := make(map[string]bool)
	for _, file := range files {
		var classMap map[string]any
		if err := c.runtime.Eval(ctx, fmt.Sprintf("include(%q)", file), &classMap); err != nil {
			c.logger.Warn().Err(err).Str("file", file).Msg("skipping class map")
			continue
		}
		for name := range classMap {
			known[strings.TrimPrefix(name, phpast.Separator)] = true
		}
	}

	var set builtins.Set
	if c.builtins != nil {
		set = c.builtins.Set(ctx)
	}
	return func(name string) bool {
		return known[name] || set.Contains(name)
	}, nil
}
