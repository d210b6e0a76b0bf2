package builtins

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultMethods are the runtime expressions enumerating built-in types.
var DefaultMethods = []string{
	"get_declared_classes()",
	"get_declared_interfaces()",
	"get_declared_traits()",
}

// Registry lazily populates the built-in set once per session.
type Registry struct {
	runtime Runtime
	methods []string
	logger  zerolog.Logger

	mu     sync.Mutex
	loaded bool
	set    Set
}

type Option func(*Registry)

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMethods overrides DefaultMethods.
func WithMethods(methods ...string) Option {
	return func(r *Registry) {
		r.methods = methods
	}
}

func NewRegistry(runtime Runtime, options ...Option) *Registry {
	r := &Registry{
		runtime: runtime,
		methods: DefaultMethods,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Set returns the built-in set, enumerating it on first use.  When
// enumeration fails the set stays empty until Reload.
func (r *Registry) Set(ctx context.Context) Set {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		r.set = r.load(ctx)
		r.loaded = true
	}
	return r.set
}

// Reload re-enumerates the built-in set.
func (r *Registry) Reload(ctx context.Context) Set {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.set = r.load(ctx)
	r.loaded = true
	return r.set
}

func (r *Registry) load(ctx context.Context) Set {
	if r.runtime == nil {
		return Set{}
	}

	var names []string
	for _, method := range r.methods {
		var got []string
		if err := r.runtime.Eval(ctx, method, &got); err != nil {
			r.logger.Error().Err(err).Str("method", method).Msg("enumerating built-in types")
			return Set{}
		}
		names = append(names, got...)
	}

	set := NewSet(names...)
	r.logger.Debug().Int("count", set.Len()).Msg("loaded built-in types")
	return set
}
