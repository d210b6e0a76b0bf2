package resolver

import (
	"strings"

	"github.com/stackb/php-namespace-resolver/pkg/phpast"
)

// Reference is a type name exactly as selected at a reference site.
type Reference struct {
	// Written is the text at the reference site.
	Written string
	// Resolution classifies Written.
	Resolution phpast.Resolution
	// Path is Written without a leading separator.
	Path string
	// ShortName is the final segment of Path, the name searched for.
	ShortName string
}

// ParseReference classifies a written name.
func ParseReference(written string) Reference {
	path := strings.TrimPrefix(written, phpast.Separator)
	return Reference{
		Written:    written,
		Resolution: phpast.Classify(written),
		Path:       path,
		ShortName:  phpast.BaseName(path),
	}
}

// ReplaceAfterImport reports whether the reference text should collapse to
// the imported name once the import exists.
func (r Reference) ReplaceAfterImport() bool {
	return r.Resolution != phpast.Unqualified
}

// Matches reports whether fqn is a candidate for the reference: the whole
// written path must equal fqn or be its trailing segments.
func (r Reference) Matches(fqn string) bool {
	return fqn == r.Path || strings.HasSuffix(fqn, phpast.Separator+r.Path)
}

// Resolution is a reference together with the name it resolved to.
type Resolution struct {
	Reference
	FQN string
}

// BaseName is the final segment of the resolved name.
func (r *Resolution) BaseName() string {
	return phpast.BaseName(r.FQN)
}
