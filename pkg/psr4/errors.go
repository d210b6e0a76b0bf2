package psr4

import (
	"errors"
	"fmt"
)

// ErrManifestMissing is returned when no composer.json is found between the
// file and the workspace root.
var ErrManifestMissing = errors.New("no composer.json file found")

// ManifestError is returned for a manifest that cannot be decoded or lacks
// the autoload psr-4 section.
type ManifestError struct {
	Path   string
	Reason string
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// NoPrefixMatchError is returned when no autoload directory contains the
// file.
type NoPrefixMatchError struct {
	Dir string
}

func (e *NoPrefixMatchError) Error() string {
	return fmt.Sprintf("directory %q is not found under the composer.json autoload psr-4 object", e.Dir)
}
