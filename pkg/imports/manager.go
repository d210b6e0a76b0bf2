package imports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stackb/php-namespace-resolver/pkg/phpast"
	"github.com/stackb/php-namespace-resolver/pkg/resolver"
	"github.com/stackb/php-namespace-resolver/pkg/sorter"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// Prompter asks the user for an alias when the base name of a candidate is
// already imported.  An empty alias requests replacing the existing import;
// ok is false when the prompt was dismissed.
type Prompter interface {
	Alias(ctx context.Context, fqn string) (alias string, ok bool)
}

// Config carries the import policy settings.
type Config struct {
	// ForceReplaceSimilar overwrites a similar import in place instead of
	// rejecting the new one.
	ForceReplaceSimilar bool
	// AutoSort sorts the imports after every interactive insertion.
	AutoSort bool
	Sort     sorter.Config
}

// Outcome describes what an import did to the document.
type Outcome int

const (
	// Inserted added a new declaration.
	Inserted Outcome = iota
	// InsertedAlias added a new aliased declaration.
	InsertedAlias
	// ReplacedSimilar overwrote a similar declaration in place.
	ReplacedSimilar
)

// Result reports a successful import.
type Result struct {
	Outcome   Outcome
	Statement string
	Line      int
}

// Request is one resolved reference to import.
type Request struct {
	Resolution *resolver.Resolution
	// Site is the range of the reference text; nil when the name was not
	// selected in the document.
	Site *textedit.Range
	// Batch requests never prompting the user.
	Batch bool
}

// Manager owns the conflict and alias policy of a file's import list.  Every
// call re-parses the document, so stored lines are never reused after an edit.
type Manager struct {
	parser   phpast.Parser
	prompter Prompter
	notice   func(message string)
	cfg      Config
	logger   zerolog.Logger
}

type Option func(*Manager)

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithNotice sets the function informing the user that a chosen alias is
// taken before the prompt is shown again.
func WithNotice(notice func(message string)) Option {
	return func(m *Manager) {
		m.notice = notice
	}
}

func NewManager(parser phpast.Parser, prompter Prompter, cfg Config, options ...Option) *Manager {
	m := &Manager{
		parser:   parser,
		prompter: prompter,
		notice:   func(string) {},
		cfg:      cfg,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *Manager) summarize(doc *textedit.Document) (*phpast.Summary, error) {
	return m.parser.Parse(doc.Filename(), doc.Bytes())
}

// Import adds the resolved name to the document's imports.
func (m *Manager) Import(ctx context.Context, doc *textedit.Document, req Request) (*Result, error) {
	summary, err := m.summarize(doc)
	if err != nil {
		return nil, err
	}
	imports := summary.ClassImports()

	fqn := req.Resolution.FQN
	base := phpast.BaseName(fqn)
	collapse := req.Site != nil && req.Resolution.ReplaceAfterImport()

	if imp, ok := findPath(imports, fqn); ok {
		if collapse {
			if err := doc.Apply(m.rewriteSite(doc, imports, *req.Site, imp.LocalName())...); err != nil {
				return nil, err
			}
		}
		return nil, &AlreadyImportedError{FQN: fqn}
	}

	if imp, ok := aliasConflict(imports, base); ok {
		return nil, &AliasConflictError{Name: base, Existing: imp.Path}
	}

	if conflict, ok := nameConflict(imports, base); ok {
		if req.Batch {
			return nil, &NameConflictError{FQN: fqn, Existing: conflict.Path}
		}
		alias, err := m.promptAlias(ctx, imports, fqn, conflict)
		if err != nil {
			return nil, err
		}
		if alias == "" {
			if similar, ok := similarImport(imports, fqn); ok {
				return m.replaceSimilar(ctx, doc, similar, req)
			}
			return m.insert(ctx, doc, summary, imports, req, "", base)
		}
		return m.insert(ctx, doc, summary, imports, req, alias, alias)
	}

	if similar, ok := similarImport(imports, fqn); ok {
		return m.replaceSimilar(ctx, doc, similar, req)
	}

	rewrite := ""
	if collapse {
		rewrite = base
	}
	return m.insert(ctx, doc, summary, imports, req, "", rewrite)
}

// promptAlias asks until the alias is free, empty, or the prompt is
// dismissed.
func (m *Manager) promptAlias(ctx context.Context, imports []phpast.ImportStatement, fqn string, conflict phpast.ImportStatement) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		alias, ok := m.prompter.Alias(ctx, fqn)
		if !ok {
			return "", &NameConflictError{FQN: fqn, Existing: conflict.Path, Cancelled: true}
		}
		alias = strings.TrimSpace(alias)
		if alias == "" {
			return "", nil
		}
		if _, taken := localName(imports, alias); !taken {
			return alias, nil
		}
		m.notice(fmt.Sprintf("alias %q is already in use", alias))
	}
}

func (m *Manager) insert(ctx context.Context, doc *textedit.Document, summary *phpast.Summary, imports []phpast.ImportStatement, req Request, alias, rewrite string) (*Result, error) {
	fqn := req.Resolution.FQN
	statement := phpast.UseText(fqn, alias) + ";"
	line := InsertLine(summary)
	if req.Batch {
		line = AppendLine(summary)
	}

	edits := []textedit.Edit{insertLineEdit(doc, line, statement)}
	if req.Site != nil && rewrite != "" {
		edits = append(edits, m.rewriteSite(doc, imports, *req.Site, rewrite)...)
	}
	if err := doc.Apply(edits...); err != nil {
		return nil, err
	}

	m.logger.Info().Str("file", doc.Filename()).Str("statement", statement).Int("line", line).Msg("inserted import")

	outcome := Inserted
	if alias != "" {
		outcome = InsertedAlias
	}
	if !req.Batch && m.cfg.AutoSort {
		if err := m.Sort(doc); err != nil && !errors.Is(err, sorter.ErrNothingToSort) {
			return nil, err
		}
	}
	return &Result{Outcome: outcome, Statement: statement, Line: line}, nil
}

func (m *Manager) replaceSimilar(ctx context.Context, doc *textedit.Document, similar phpast.ImportStatement, req Request) (*Result, error) {
	fqn := req.Resolution.FQN
	if !m.cfg.ForceReplaceSimilar || similar.Grouped {
		return nil, &SimilarImportError{FQN: fqn, Existing: similar.Path}
	}

	statement := phpast.UseText(fqn, similar.Alias) + ";"
	edits := []textedit.Edit{textedit.Replace(similar.Range, statement)}
	if req.Site != nil {
		local := similar.Alias
		if local == "" {
			local = phpast.BaseName(fqn)
		}
		if doc.TextIn(*req.Site) != local {
			edits = append(edits, textedit.Replace(*req.Site, local))
		}
	}
	if err := doc.Apply(edits...); err != nil {
		return nil, err
	}

	m.logger.Info().Str("file", doc.Filename()).Str("replaced", similar.Path).Str("statement", statement).Msg("replaced similar import")

	return &Result{Outcome: ReplacedSimilar, Statement: statement, Line: similar.Line}, nil
}

// rewriteSite replaces the reference text and removes an import made stale
// by the replacement.
func (m *Manager) rewriteSite(doc *textedit.Document, imports []phpast.ImportStatement, site textedit.Range, text string) []textedit.Edit {
	var edits []textedit.Edit
	if doc.TextIn(site) != text {
		edits = append(edits, textedit.Replace(site, text))
	}
	path := strings.TrimPrefix(text, phpast.Separator)
	for _, imp := range imports {
		if imp.Path == path && !imp.Grouped && imp.Line != site.Start.Line {
			edits = append(edits, deleteStatementEdit(doc, imp))
			break
		}
	}
	return edits
}

// Expand rewrites the reference at site to the fully-qualified name and
// drops the import of that name.
func (m *Manager) Expand(doc *textedit.Document, site textedit.Range, fqn string, leadingSeparator bool) error {
	summary, err := m.summarize(doc)
	if err != nil {
		return err
	}
	text := fqn
	if leadingSeparator {
		text = phpast.Separator + fqn
	}
	return doc.Apply(m.rewriteSite(doc, summary.ClassImports(), site, text)...)
}

// Sort sorts the document's imports in place.
func (m *Manager) Sort(doc *textedit.Document) error {
	summary, err := m.summarize(doc)
	if err != nil {
		return err
	}
	edits, err := sorter.Edits(summary, m.cfg.Sort)
	if err != nil {
		return err
	}
	return doc.Apply(edits...)
}

func findPath(imports []phpast.ImportStatement, path string) (phpast.ImportStatement, bool) {
	for _, imp := range imports {
		if imp.Path == path {
			return imp, true
		}
	}
	return phpast.ImportStatement{}, false
}

// aliasConflict finds an import aliased to name.
func aliasConflict(imports []phpast.ImportStatement, name string) (phpast.ImportStatement, bool) {
	for _, imp := range imports {
		if imp.Alias == name {
			return imp, true
		}
	}
	return phpast.ImportStatement{}, false
}

// nameConflict finds an import whose path ends with name, aliased or not.
func nameConflict(imports []phpast.ImportStatement, name string) (phpast.ImportStatement, bool) {
	for _, imp := range imports {
		if imp.BaseName() == name {
			return imp, true
		}
	}
	return phpast.ImportStatement{}, false
}

// localName finds the import binding name in the file.
func localName(imports []phpast.ImportStatement, name string) (phpast.ImportStatement, bool) {
	for _, imp := range imports {
		if imp.LocalName() == name {
			return imp, true
		}
	}
	return phpast.ImportStatement{}, false
}

// similarImport finds an import sharing the final segment of fqn, or whose
// path is a namespace prefix of fqn.
func similarImport(imports []phpast.ImportStatement, fqn string) (phpast.ImportStatement, bool) {
	base := phpast.BaseName(fqn)
	for _, imp := range imports {
		if imp.BaseName() == base {
			return imp, true
		}
		if strings.HasPrefix(fqn, imp.Path+phpast.Separator) {
			return imp, true
		}
	}
	return phpast.ImportStatement{}, false
}
