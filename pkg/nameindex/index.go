package nameindex

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/stackb/php-namespace-resolver/pkg/collections"
	"github.com/stackb/php-namespace-resolver/pkg/phpast"
)

// DefaultExtension is the suffix of the files searched for a short name.
const DefaultExtension = ".php"

// DefaultConcurrency bounds the number of files read at once.
const DefaultConcurrency = 8

// Index finds the fully-qualified names a short class name may refer to by
// searching the workspace for files named after it.
type Index struct {
	fsys        fs.FS
	ext         string
	exclude     []string
	parser      phpast.Parser
	concurrency int
	logger      zerolog.Logger
}

type Option func(*Index)

func WithLogger(logger zerolog.Logger) Option {
	return func(ix *Index) {
		ix.logger = logger
	}
}

// WithExclude sets the glob patterns of workspace paths never searched.
func WithExclude(patterns ...string) Option {
	return func(ix *Index) {
		ix.exclude = patterns
	}
}

func WithExtension(ext string) Option {
	return func(ix *Index) {
		ix.ext = ext
	}
}

func WithParser(parser phpast.Parser) Option {
	return func(ix *Index) {
		ix.parser = parser
	}
}

func WithConcurrency(n int) Option {
	return func(ix *Index) {
		ix.concurrency = n
	}
}

// New creates an index over the given workspace filesystem.
func New(fsys fs.FS, options ...Option) *Index {
	ix := &Index{
		fsys:        fsys,
		ext:         DefaultExtension,
		concurrency: DefaultConcurrency,
		logger:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(ix)
	}
	if ix.parser == nil {
		ix.parser = phpast.NewParser(phpast.WithLenient(), phpast.WithLogger(ix.logger))
	}
	return ix
}

// Result is the outcome of a Lookup.
type Result struct {
	// Files are the workspace paths named after the short name.
	Files []string
	// Names are the distinct fully-qualified candidates in file order.
	Names []string
}

// FindFiles returns the workspace paths whose base name is short plus the
// extension, in lexical walk order, excluding paths matching any exclusion
// pattern.
func (ix *Index) FindFiles(ctx context.Context, short string) ([]string, error) {
	pattern := "**/" + short + ix.ext

	var files []string
	err := doublestar.GlobWalk(ix.fsys, pattern, func(path string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || ix.excluded(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching for %s: %w", pattern, err)
	}
	return files, nil
}

func (ix *Index) excluded(path string) bool {
	for _, pattern := range ix.exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Lookup finds the files for short and reads their namespaces.  Files that
// cannot be read are skipped.  Files declaring no namespace contribute no
// name.
func (ix *Index) Lookup(ctx context.Context, short string) (*Result, error) {
	files, err := ix.FindFiles(ctx, short)
	if err != nil {
		return nil, err
	}

	namespaces := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.concurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ns, err := ix.readNamespace(file)
			if err != nil {
				ix.logger.Warn().Err(err).Str("file", file).Msg("skipping file")
				return nil
			}
			namespaces[i] = ns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var names []string
	for _, ns := range namespaces {
		if ns != "" {
			names = append(names, ns+phpast.Separator+short)
		}
	}
	names = collections.Dedupe(names)

	ix.logger.Debug().Str("name", short).Strs("files", files).Strs("candidates", names).Msg("lookup")

	return &Result{Files: files, Names: names}, nil
}

func (ix *Index) readNamespace(file string) (string, error) {
	content, err := fs.ReadFile(ix.fsys, file)
	if err != nil {
		return "", err
	}
	summary, err := ix.parser.Parse(file, content)
	if err != nil {
		return "", err
	}
	return summary.NamespaceName(), nil
}
