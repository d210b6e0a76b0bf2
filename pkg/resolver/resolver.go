package resolver

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stackb/php-namespace-resolver/pkg/builtins"
	"github.com/stackb/php-namespace-resolver/pkg/collections"
	"github.com/stackb/php-namespace-resolver/pkg/nameindex"
	"github.com/stackb/php-namespace-resolver/pkg/phpast"
)

// Finder searches the workspace for the files named after a short name.
type Finder interface {
	Lookup(ctx context.Context, short string) (*nameindex.Result, error)
}

// BuiltIns provides the built-in type names of the session.
type BuiltIns interface {
	Set(ctx context.Context) builtins.Set
}

// Picker asks the user to choose one of several names.  ok is false when the
// prompt was dismissed.
type Picker interface {
	PickOne(ctx context.Context, items []string) (picked string, ok bool)
}

// Resolver turns written references into fully-qualified names.
type Resolver struct {
	finder   Finder
	builtins BuiltIns
	picker   Picker
	logger   zerolog.Logger
}

type Option func(*Resolver)

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func New(finder Finder, builtins BuiltIns, picker Picker, options ...Option) *Resolver {
	r := &Resolver{
		finder:   finder,
		builtins: builtins,
		picker:   picker,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Resolve determines the fully-qualified name of a written reference.  A
// fully-qualified reference resolves to itself without a search.
func (r *Resolver) Resolve(ctx context.Context, written string) (*Resolution, error) {
	ref := ParseReference(written)
	if ref.Path == "" {
		return nil, &NotFoundError{Name: written}
	}
	if ref.Resolution == phpast.FullyQualified {
		return &Resolution{Reference: ref, FQN: ref.Path}, nil
	}
	return r.pick(ctx, ref)
}

// Expand resolves a reference written in short or partial form to the name
// it should be expanded to.
func (r *Resolver) Expand(ctx context.Context, written string) (*Resolution, error) {
	ref := ParseReference(written)
	if ref.Path == "" {
		return nil, &NotFoundError{Name: written}
	}
	if ref.Resolution == phpast.FullyQualified {
		return nil, ErrAlreadyQualified
	}
	return r.pick(ctx, ref)
}

func (r *Resolver) pick(ctx context.Context, ref Reference) (*Resolution, error) {
	candidates, err := r.Candidates(ctx, ref)
	if err != nil {
		return nil, err
	}

	switch len(candidates) {
	case 0:
		return nil, &NotFoundError{Name: ref.Written}
	case 1:
		return &Resolution{Reference: ref, FQN: candidates[0]}, nil
	}

	picked, ok := r.picker.PickOne(ctx, candidates)
	if !ok {
		return nil, ErrCancelled
	}
	return &Resolution{Reference: ref, FQN: picked}, nil
}

// Candidates lists the fully-qualified names a short or partial reference may
// denote, in priority order: a matching built-in first, then the namespaces
// of the discovered files in discovery order.  When files were found but none
// declares a namespace the bare name is assumed to be global.
func (r *Resolver) Candidates(ctx context.Context, ref Reference) ([]string, error) {
	result, err := r.finder.Lookup(ctx, ref.ShortName)
	if err != nil {
		return nil, err
	}

	names := collections.Dedupe(append([]string(nil), result.Names...))
	if r.builtins != nil && r.builtins.Set(ctx).Contains(ref.ShortName) {
		names = collections.SliceInsertAt(names, 0, ref.ShortName)
		names = collections.Dedupe(names)
	}
	if len(names) == 0 && len(result.Files) > 0 {
		names = []string{ref.ShortName}
	}

	candidates := collections.Filter(names, ref.Matches)

	r.logger.Debug().
		Str("reference", ref.Written).
		Strs("files", result.Files).
		Strs("candidates", candidates).
		Msg("resolving")

	return candidates, nil
}
