package diagnostics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseOutput(t *testing.T) {
	out := "./src/A.php:3:use App\\Models\\User\n" +
		"src/B.php:12:\\Foo\\Bar\n" +
		"garbage\n" +
		"src/C.php:x:Foo\\Bar\n" +
		"src/D.php:7:Foo\\Bar::baz\n"

	want := []Match{
		{File: "src/A.php", Line: 3, Text: `use App\Models\User`},
		{File: "src/B.php", Line: 12, Text: `\Foo\Bar`},
		{File: "src/D.php", Line: 7, Text: `Foo\Bar::baz`},
	}
	if diff := cmp.Diff(want, parseOutput(out)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRipgrepArgs(t *testing.T) {
	common := []string{
		"pattern",
		"--pcre2",
		"--no-messages",
		"--no-heading",
		"--with-filename",
		"--line-number",
		"--only-matching",
		"--color=never",
		"--glob=**/*.php",
	}
	for name, tc := range map[string]struct {
		searcher RipgrepSearcher
		want     []string
	}{
		"no exclusions searches blade templates too": {
			want: append(append([]string(nil), common...), "./"),
		},
		"single exclusion": {
			searcher: RipgrepSearcher{ExcludeFiles: []string{"*.blade.php"}},
			want:     append(append([]string(nil), common...), "--glob=!*.blade.php", "./"),
		},
		"directory and file exclusions": {
			searcher: RipgrepSearcher{
				ExcludeDirs:  []string{"vendor", "node_modules"},
				ExcludeFiles: []string{"*.blade.php", "_ide_helper.php"},
			},
			want: append(append([]string(nil), common...),
				"--glob=!{vendor,node_modules}",
				"--glob=!{*.blade.php,_ide_helper.php}",
				"./",
			),
		},
	} {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.searcher.args("pattern")); diff != "" {
				t.Errorf("args (-want +got):\n%s", diff)
			}
		})
	}
}
