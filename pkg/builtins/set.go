package builtins

import "strings"

// Set is an immutable set of built-in type names (classes, interfaces and
// traits predefined by the PHP runtime).  The zero value is empty.
type Set struct {
	names map[string]struct{}
}

// NewSet builds a set from the given names.  Leading separators are ignored.
func NewSet(names ...string) Set {
	s := Set{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		name = strings.TrimPrefix(name, `\`)
		if name != "" {
			s.names[name] = struct{}{}
		}
	}
	return s
}

// Contains reports whether name is built-in.
func (s Set) Contains(name string) bool {
	_, ok := s.names[strings.TrimPrefix(name, `\`)]
	return ok
}

// Len returns the number of names.
func (s Set) Len() int {
	return len(s.names)
}

// Union returns a new set holding the names of both sets.
func (s Set) Union(o Set) Set {
	u := Set{names: make(map[string]struct{}, len(s.names)+len(o.names))}
	for name := range s.names {
		u.names[name] = struct{}{}
	}
	for name := range o.names {
		u.names[name] = struct{}{}
	}
	return u
}
