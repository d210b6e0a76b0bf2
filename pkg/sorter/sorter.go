package sorter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/stackb/php-namespace-resolver/pkg/phpast"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// ErrNothingToSort is returned when a file has fewer than two sortable
// imports.
var ErrNothingToSort = errors.New("nothing to sort")

type Mode string

const (
	Alphabetical Mode = "alphabetical"
	Length       Mode = "length"
	Natural      Mode = "natural"
)

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Config selects the comparator.
type Config struct {
	Mode  Mode  `yaml:"mode" validate:"omitempty,oneof=alphabetical length natural"`
	Order Order `yaml:"order" validate:"omitempty,oneof=asc desc"`
}

// DefaultConfig sorts by length, shortest first.
var DefaultConfig = Config{Mode: Length, Order: Asc}

type lessFunc func(a, b phpast.ImportStatement) bool

func (c Config) less() (lessFunc, error) {
	var less lessFunc
	switch c.Mode {
	case Alphabetical:
		less = func(a, b phpast.ImportStatement) bool {
			return strings.ToLower(a.Path) < strings.ToLower(b.Path)
		}
	case Length, "":
		less = func(a, b phpast.ImportStatement) bool {
			la, lb := lengthKey(a), lengthKey(b)
			if la != lb {
				return la < lb
			}
			return strings.ToLower(a.Path) < strings.ToLower(b.Path)
		}
	case Natural:
		less = func(a, b phpast.ImportStatement) bool {
			return natural.Less(a.Path, b.Path)
		}
	default:
		return nil, fmt.Errorf("unknown sort mode %q", c.Mode)
	}

	switch c.Order {
	case Asc, "":
		return less, nil
	case Desc:
		return func(a, b phpast.ImportStatement) bool { return less(b, a) }, nil
	default:
		return nil, fmt.Errorf("unknown sort order %q", c.Order)
	}
}

// lengthKey is the length of the path plus " as alias" when aliased.
func lengthKey(imp phpast.ImportStatement) int {
	n := len(imp.Path)
	if imp.Alias != "" {
		n += len(" as ") + len(imp.Alias)
	}
	return n
}

// Sortable returns the class imports that are the sole clause of their
// declaration.  Grouped and multi-clause declarations stay where they are.
func Sortable(imports []phpast.ImportStatement) []phpast.ImportStatement {
	clauses := make(map[textedit.Range]int, len(imports))
	for _, imp := range imports {
		clauses[imp.Range]++
	}
	var result []phpast.ImportStatement
	for _, imp := range imports {
		if imp.Kind != phpast.ImportClass || imp.Grouped || clauses[imp.Range] > 1 {
			continue
		}
		result = append(result, imp)
	}
	return result
}

// Sort returns a sorted copy of imports.  Equal entries keep their order, so
// sorting is idempotent.
func Sort(imports []phpast.ImportStatement, cfg Config) ([]phpast.ImportStatement, error) {
	less, err := cfg.less()
	if err != nil {
		return nil, err
	}
	sorted := append([]phpast.ImportStatement(nil), imports...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted, nil
}

// Edits computes the line-for-line rewrite of the sortable imports of a file:
// the declaration at position i receives the text of the sorted entry at
// position i.  Unchanged positions yield no edit.
func Edits(summary *phpast.Summary, cfg Config) ([]textedit.Edit, error) {
	imports := Sortable(summary.Imports)
	if len(imports) < 2 {
		return nil, ErrNothingToSort
	}

	sorted, err := Sort(imports, cfg)
	if err != nil {
		return nil, err
	}

	var edits []textedit.Edit
	for i, imp := range imports {
		want := sorted[i]
		if want.Path == imp.Path && want.Alias == imp.Alias {
			continue
		}
		edits = append(edits, textedit.Replace(imp.Range, want.Text()+";"))
	}
	return edits, nil
}
