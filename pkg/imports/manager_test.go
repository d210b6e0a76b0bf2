package imports_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stackb/php-namespace-resolver/pkg/imports"
	"github.com/stackb/php-namespace-resolver/pkg/imports/mocks"
	"github.com/stackb/php-namespace-resolver/pkg/phpast"
	"github.com/stackb/php-namespace-resolver/pkg/resolver"
	"github.com/stackb/php-namespace-resolver/pkg/sorter"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

type prompt struct {
	alias string
	ok    bool
}

func site(line, start, end int) *textedit.Range {
	return &textedit.Range{
		Start: textedit.Position{Line: line, Column: start},
		End:   textedit.Position{Line: line, Column: end},
	}
}

func TestImport(t *testing.T) {
	for name, tc := range map[string]struct {
		src      string
		written  string
		fqn      string
		site     *textedit.Range
		batch    bool
		cfg      imports.Config
		prompts  []prompt
		want     string
		wantErr  error
		notices  int
		outcome  imports.Outcome
		errCheck func(t *testing.T, err error)
	}{
		"fully qualified reference collapses above class": {
			src: `<?php

namespace App;

class A extends \Foo\Bar
{
}
`,
			written: `\Foo\Bar`,
			fqn:     `Foo\Bar`,
			site:    site(4, 16, 24),
			want: `<?php

namespace App;

use Foo\Bar;
class A extends Bar
{
}
`,
		},
		"simple name after namespace": {
			src:     "<?php\nnamespace App;\n",
			written: "Bar",
			fqn:     `Foo\Bar`,
			want:    "<?php\nnamespace App;\nuse Foo\\Bar;\n",
		},
		"appended after open tag": {
			src:     "<?php",
			written: "Bar",
			fqn:     `Foo\Bar`,
			want:    "<?php\nuse Foo\\Bar;\n",
		},
		"grouped with existing imports": {
			src:     "<?php\nnamespace App;\n\nuse Zed\\Z;\n\nclass A {}\n",
			written: "Bar",
			fqn:     `Foo\Bar`,
			want:    "<?php\nnamespace App;\n\nuse Foo\\Bar;\nuse Zed\\Z;\n\nclass A {}\n",
		},
		"already imported": {
			src:     "<?php\nuse Foo\\Bar;\n\nclass A extends Bar {}\n",
			written: "Bar",
			fqn:     `Foo\Bar`,
			site:    site(3, 16, 19),
			want:    "<?php\nuse Foo\\Bar;\n\nclass A extends Bar {}\n",
			wantErr: &imports.AlreadyImportedError{},
		},
		"already imported collapses qualified reference": {
			src:     "<?php\nuse Foo\\Bar;\n\n$x = new \\Foo\\Bar();\n",
			written: `\Foo\Bar`,
			fqn:     `Foo\Bar`,
			site:    site(3, 9, 17),
			want:    "<?php\nuse Foo\\Bar;\n\n$x = new Bar();\n",
			wantErr: &imports.AlreadyImportedError{},
		},
		"alias conflict": {
			src:     "<?php\nuse Other\\Thing as Bar;\n",
			written: "Bar",
			fqn:     `Foo\Bar`,
			want:    "<?php\nuse Other\\Thing as Bar;\n",
			wantErr: &imports.AliasConflictError{},
		},
		"name conflict in batch": {
			src:     "<?php\nuse Other\\Bar;\n",
			written: "Bar",
			fqn:     `Foo\Bar`,
			batch:   true,
			want:    "<?php\nuse Other\\Bar;\n",
			wantErr: &imports.NameConflictError{},
		},
		"name conflict prompt dismissed": {
			src:     "<?php\nuse Other\\Bar;\n",
			written: "Bar",
			fqn:     `Foo\Bar`,
			prompts: []prompt{{}},
			want:    "<?php\nuse Other\\Bar;\n",
			errCheck: func(t *testing.T, err error) {
				var conflict *imports.NameConflictError
				require.ErrorAs(t, err, &conflict)
				require.True(t, conflict.Cancelled)
			},
		},
		"alias retried until free": {
			src: `<?php
namespace App;

use Other\Bar;
use X\Y as Taken;

class A
{
    public function f()
    {
        return new Bar();
    }
}
`,
			written: "Bar",
			fqn:     `Foo\Bar`,
			site:    site(10, 19, 22),
			prompts: []prompt{{"Taken", true}, {"Bar", true}, {"FB", true}},
			notices: 2,
			outcome: imports.InsertedAlias,
			want: `<?php
namespace App;

use Foo\Bar as FB;
use Other\Bar;
use X\Y as Taken;

class A
{
    public function f()
    {
        return new FB();
    }
}
`,
		},
		"replace rejected as similar": {
			src:     "<?php\nuse Other\\Bar;\n\nclass A extends Bar {}\n",
			written: "Bar",
			fqn:     `Foo\Bar`,
			site:    site(3, 16, 19),
			prompts: []prompt{{"", true}},
			want:    "<?php\nuse Other\\Bar;\n\nclass A extends Bar {}\n",
			wantErr: &imports.SimilarImportError{},
		},
		"replace forced": {
			src:     "<?php\nuse Other\\Bar;\n\nclass A extends Bar {}\n",
			written: "Bar",
			fqn:     `Foo\Bar`,
			site:    site(3, 16, 19),
			cfg:     imports.Config{ForceReplaceSimilar: true},
			prompts: []prompt{{"", true}},
			outcome: imports.ReplacedSimilar,
			want:    "<?php\nuse Foo\\Bar;\n\nclass A extends Bar {}\n",
		},
		"namespace prefix import is similar": {
			src:     "<?php\nuse Foo;\n",
			written: `Foo\Bar`,
			fqn:     `Foo\Bar`,
			want:    "<?php\nuse Foo;\n",
			wantErr: &imports.SimilarImportError{},
		},
		"similar check precedes qualified rewrite": {
			src:     "<?php\nuse Foo;\n\n$x = new Foo\\Bar();\n",
			written: `Foo\Bar`,
			fqn:     `Foo\Bar`,
			site:    site(3, 9, 16),
			want:    "<?php\nuse Foo;\n\n$x = new Foo\\Bar();\n",
			wantErr: &imports.SimilarImportError{},
		},
		"aliased import conflicts by base name": {
			src:     "<?php\nuse Other\\Bar as OtherBar;\n",
			written: "Bar",
			fqn:     `Foo\Bar`,
			prompts: []prompt{{"FooBar", true}},
			outcome: imports.InsertedAlias,
			want:    "<?php\nuse Foo\\Bar as FooBar;\nuse Other\\Bar as OtherBar;\n",
		},
		"aliased import conflicts by base name in batch": {
			src:     "<?php\nuse Other\\Bar as OtherBar;\n",
			written: "Bar",
			fqn:     `Foo\Bar`,
			batch:   true,
			want:    "<?php\nuse Other\\Bar as OtherBar;\n",
			wantErr: &imports.NameConflictError{},
		},
		"replacing an aliased similar import keeps its alias": {
			src:     "<?php\nuse Other\\Bar as OtherBar;\n\n$x = new OtherBar();\n",
			written: "Bar",
			fqn:     `Foo\Bar`,
			cfg:     imports.Config{ForceReplaceSimilar: true},
			prompts: []prompt{{"", true}},
			outcome: imports.ReplacedSimilar,
			want:    "<?php\nuse Foo\\Bar as OtherBar;\n\n$x = new OtherBar();\n",
		},
		"auto sort": {
			src:     "<?php\nuse Zed\\A;\n\nclass C {}\n",
			written: "Bcd",
			fqn:     `Abc\Bcd`,
			cfg:     imports.Config{AutoSort: true, Sort: sorter.Config{Mode: sorter.Length, Order: sorter.Asc}},
			want:    "<?php\nuse Zed\\A;\nuse Abc\\Bcd;\n\nclass C {}\n",
		},
	} {
		t.Run(name, func(t *testing.T) {
			prompter := mocks.NewPrompter(t)
			for _, p := range tc.prompts {
				prompter.On("Alias", mock.Anything, tc.fqn).Return(p.alias, p.ok).Once()
			}
			var notices []string
			m := imports.NewManager(phpast.NewParser(), prompter, tc.cfg,
				imports.WithNotice(func(msg string) { notices = append(notices, msg) }))

			doc := textedit.NewDocument("test.php", tc.src)
			result, err := m.Import(context.Background(), doc, imports.Request{
				Resolution: &resolver.Resolution{Reference: resolver.ParseReference(tc.written), FQN: tc.fqn},
				Site:       tc.site,
				Batch:      tc.batch,
			})

			switch {
			case tc.errCheck != nil:
				tc.errCheck(t, err)
			case tc.wantErr != nil:
				if !sameType(tc.wantErr, err) {
					t.Fatalf("want error of type %T, got %v", tc.wantErr, err)
				}
			default:
				require.NoError(t, err)
				require.Equal(t, tc.outcome, result.Outcome)
			}

			if diff := cmp.Diff(tc.want, doc.Text()); diff != "" {
				t.Errorf("text (-want +got):\n%s", diff)
			}
			require.Len(t, notices, tc.notices)
		})
	}
}

func sameType(want, got error) bool {
	switch want.(type) {
	case *imports.AlreadyImportedError:
		var e *imports.AlreadyImportedError
		return errors.As(got, &e)
	case *imports.AliasConflictError:
		var e *imports.AliasConflictError
		return errors.As(got, &e)
	case *imports.NameConflictError:
		var e *imports.NameConflictError
		return errors.As(got, &e)
	case *imports.SimilarImportError:
		var e *imports.SimilarImportError
		return errors.As(got, &e)
	}
	return false
}

func TestReimportNeverDuplicates(t *testing.T) {
	m := imports.NewManager(phpast.NewParser(), mocks.NewPrompter(t), imports.Config{})
	doc := textedit.NewDocument("test.php", "<?php\nnamespace App;\n\nclass A {}\n")
	req := imports.Request{
		Resolution: &resolver.Resolution{Reference: resolver.ParseReference("Bar"), FQN: `Foo\Bar`},
	}

	_, err := m.Import(context.Background(), doc, req)
	require.NoError(t, err)
	want := doc.Text()

	_, err = m.Import(context.Background(), doc, req)
	var already *imports.AlreadyImportedError
	require.ErrorAs(t, err, &already)
	require.Equal(t, want, doc.Text())
}

func TestExpand(t *testing.T) {
	for name, tc := range map[string]struct {
		src     string
		leading bool
		want    string
	}{
		"leading separator drops import": {
			src:     "<?php\nuse Foo\\Bar;\n\n$x = new Bar();\n",
			leading: true,
			want:    "<?php\n\n$x = new \\Foo\\Bar();\n",
		},
		"without leading separator": {
			src:  "<?php\n\n$x = new Bar();\n",
			want: "<?php\n\n$x = new Foo\\Bar();\n",
		},
	} {
		t.Run(name, func(t *testing.T) {
			m := imports.NewManager(phpast.NewParser(), mocks.NewPrompter(t), imports.Config{})
			doc := textedit.NewDocument("test.php", tc.src)
			line := doc.LineCount() - 2
			require.NoError(t, m.Expand(doc, *site(line, 9, 12), `Foo\Bar`, tc.leading))
			if diff := cmp.Diff(tc.want, doc.Text()); diff != "" {
				t.Errorf("text (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInsertLine(t *testing.T) {
	for name, tc := range map[string]struct {
		src  string
		want int
	}{
		"empty":           {src: "", want: 0},
		"open tag":        {src: "<?php\n", want: 1},
		"declare":         {src: "<?php\ndeclare(strict_types=1);\n", want: 2},
		"namespace":       {src: "<?php\ndeclare(strict_types=1);\nnamespace App;\n", want: 3},
		"type with docs":  {src: "<?php\nnamespace App;\n\n/** doc */\nclass A {}\n", want: 3},
		"existing import": {src: "<?php\nnamespace App;\n\nuse A\\B;\n\nclass A {}\n", want: 3},
	} {
		t.Run(name, func(t *testing.T) {
			summary, err := phpast.NewParser().Parse("test.php", []byte(tc.src))
			require.NoError(t, err)
			if got := imports.InsertLine(summary); got != tc.want {
				t.Errorf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestBatchKeepsResolutionOrder(t *testing.T) {
	m := imports.NewManager(phpast.NewParser(), mocks.NewPrompter(t), imports.Config{})
	doc := textedit.NewDocument("test.php", "<?php\nnamespace App;\n\nclass A extends Base implements Countable {}\n")

	for _, fqn := range []string{`Lib\Base`, `Lib\Countable`} {
		_, err := m.Import(context.Background(), doc, imports.Request{
			Resolution: &resolver.Resolution{Reference: resolver.ParseReference(phpast.BaseName(fqn)), FQN: fqn},
			Batch:      true,
		})
		require.NoError(t, err)
	}

	want := "<?php\nnamespace App;\n\nuse Lib\\Base;\nuse Lib\\Countable;\nclass A extends Base implements Countable {}\n"
	if diff := cmp.Diff(want, doc.Text()); diff != "" {
		t.Errorf("text (-want +got):\n%s", diff)
	}
}
