package psr4

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/dghubble/trie"
	"github.com/rs/zerolog"

	"github.com/stackb/php-namespace-resolver/pkg/phpast"
)

var repeatedSeparators = regexp.MustCompile(`\\{2,}`)

// Config carries the namespace generation settings.
type Config struct {
	// Prefix is prepended to every generated namespace.
	Prefix string `yaml:"prefix"`
	// RemovePath holds regular expressions whose first match is removed
	// from the generated namespace.
	RemovePath []string `yaml:"removePath"`
	// UseFolderTree mirrors the directory of the file when no manifest
	// entry applies.
	UseFolderTree bool `yaml:"useFolderTree"`
}

// Generator derives the namespace of a file from its location.
type Generator struct {
	fsys    fs.FS
	cfg     Config
	removes []*regexp.Regexp
	logger  zerolog.Logger
}

type Option func(*Generator)

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a generator over the workspace filesystem.  File
// paths passed to it are relative to the root of fsys.
func NewGenerator(fsys fs.FS, cfg Config, options ...Option) (*Generator, error) {
	g := &Generator{
		fsys:   fsys,
		cfg:    cfg,
		logger: zerolog.Nop(),
	}
	for _, expr := range cfg.RemovePath {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("removePath %q: %w", expr, err)
		}
		g.removes = append(g.removes, re)
	}
	for _, opt := range options {
		opt(g)
	}
	return g, nil
}

// Namespace returns the namespace the file should declare.
func (g *Generator) Namespace(file string) (string, error) {
	ns, err := g.fromManifest(file)
	if err != nil {
		if !g.cfg.UseFolderTree {
			return "", err
		}
		g.logger.Debug().Err(err).Str("file", file).Msg("using folder tree namespace")
		ns = folderTree(file)
	}

	for _, re := range g.removes {
		if loc := re.FindStringIndex(ns); loc != nil {
			ns = ns[:loc[0]] + ns[loc[1]:]
		}
	}
	ns = g.cfg.Prefix + ns
	return repeatedSeparators.ReplaceAllString(ns, phpast.Separator), nil
}

func (g *Generator) fromManifest(file string) (string, error) {
	manifest, err := FindManifest(g.fsys, file)
	if err != nil {
		return "", err
	}
	m, err := ReadAutoloadMap(g.fsys, manifest)
	if err != nil {
		return "", err
	}

	rel := relativeDir(path.Dir(manifest), path.Dir(file))
	entry, ok := newDirTrie(m).longest(rel)
	if !ok {
		return "", &NoPrefixMatchError{Dir: rel}
	}

	base := strings.TrimSuffix(entry.Prefix, phpast.Separator)
	remainder := strings.ReplaceAll(strings.Trim(strings.TrimPrefix(rel, entry.Dir), "/"), "/", phpast.Separator)

	g.logger.Debug().
		Str("file", file).
		Str("manifest", manifest).
		Str("prefix", entry.Prefix).
		Str("dir", entry.Dir).
		Msg("matched autoload entry")

	switch {
	case base == "" && remainder == "":
		return "", &NoPrefixMatchError{Dir: rel}
	case base == "":
		return remainder, nil
	case remainder == "" || strings.EqualFold(remainder, base):
		return base, nil
	default:
		return base + phpast.Separator + remainder, nil
	}
}

// relativeDir returns dir relative to root; "" when they are equal.
func relativeDir(root, dir string) string {
	if root == "." {
		if dir == "." {
			return ""
		}
		return dir
	}
	if dir == root {
		return ""
	}
	return strings.TrimPrefix(dir, root+"/")
}

func folderTree(file string) string {
	dir := path.Dir(file)
	if dir == "." {
		return ""
	}
	return strings.ReplaceAll(strings.TrimPrefix(dir, "/"), "/", phpast.Separator)
}

// dirTrie selects the autoload entry with the longest base directory
// containing a path.
type dirTrie struct {
	dirs *trie.PathTrie
	// root is the entry mapped to the manifest directory itself; the
	// trie does not visit an empty key while walking a path.
	root *Entry
}

func newDirTrie(m *AutoloadMap) *dirTrie {
	t := &dirTrie{dirs: trie.NewPathTrie()}
	for i := range m.Entries {
		e := m.Entries[i]
		if e.Dir == "" {
			if t.root == nil || len(e.Prefix) > len(t.root.Prefix) {
				t.root = &e
			}
			continue
		}
		if prev, ok := t.dirs.Get(e.Dir).(*Entry); ok && len(prev.Prefix) >= len(e.Prefix) {
			continue
		}
		t.dirs.Put(e.Dir, &e)
	}
	return t
}

func (t *dirTrie) longest(dir string) (*Entry, bool) {
	var last *Entry
	if dir != "" {
		t.dirs.WalkPath(dir, func(key string, value interface{}) error {
			last = value.(*Entry)
			return nil
		})
	}
	if last == nil {
		last = t.root
	}
	return last, last != nil
}
