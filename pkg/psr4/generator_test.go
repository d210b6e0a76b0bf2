package psr4

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/stackb/php-namespace-resolver/pkg/phpast"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

func manifest(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

func TestNamespace(t *testing.T) {
	for name, tc := range map[string]struct {
		files   fstest.MapFS
		cfg     Config
		file    string
		want    string
		wantErr error
	}{
		"scenario": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"psr-4": {"App\\": "src/"}}}`),
			},
			file: "src/Http/Controller.php",
			want: `App\Http`,
		},
		"base directory": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"psr-4": {"App\\": "src/"}}}`),
			},
			file: "src/Kernel.php",
			want: "App",
		},
		"longest directory wins over document order": {
			// the shorter entry alone would yield Acme\Models
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"psr-4": {
					"Acme\\": "src/",
					"Domain\\Models\\": "src/Models/"
				}}}`),
			},
			file: "src/Models/User.php",
			want: `Domain\Models`,
		},
		"longest directory wins regardless of order": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"psr-4": {
					"Domain\\Models\\": "src/Models/",
					"Acme\\": "src/"
				}}}`),
			},
			file: "src/Models/Sub/User.php",
			want: `Domain\Models\Sub`,
		},
		"segment aware": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"psr-4": {"App\\": "src/", "Lib\\": "srcx/"}}}`),
			},
			file: "srcx/Foo.php",
			want: "Lib",
		},
		"dev entries": {
			files: fstest.MapFS{
				"composer.json": manifest(`{
					"autoload": {"psr-4": {"App\\": "src/"}},
					"autoload-dev": {"psr-4": {"Tests\\": "tests/"}}
				}`),
			},
			file: "tests/Unit/FooTest.php",
			want: `Tests\Unit`,
		},
		"array directories": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"psr-4": {"App\\": ["lib/", "src/"]}}}`),
			},
			file: "src/Http/Controller.php",
			want: `App\Http`,
		},
		"root directory entry": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"psr-4": {"App\\": ""}}}`),
			},
			file: "Http/Controller.php",
			want: `App\Http`,
		},
		"remainder equal to prefix": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"psr-4": {"App\\": ""}}}`),
			},
			file: "app/Controller.php",
			want: "App",
		},
		"nested manifest": {
			files: fstest.MapFS{
				"composer.json":            manifest(`{"autoload": {"psr-4": {"Root\\": "src/"}}}`),
				"packages/a/composer.json": manifest(`{"autoload": {"psr-4": {"Pkg\\A\\": "src/"}}}`),
			},
			file: "packages/a/src/Support/Str.php",
			want: `Pkg\A\Support`,
		},
		"prefix and remove path": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"psr-4": {"App\\": "src/"}}}`),
			},
			cfg:  Config{Prefix: `Company\`, RemovePath: []string{`Internal\\?`}},
			file: "src/Internal/Http/Controller.php",
			want: `Company\App\Http`,
		},
		"collapses separators": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"psr-4": {"App\\": "src/"}}}`),
			},
			cfg:  Config{Prefix: `Company\\`},
			file: "src/Http/Controller.php",
			want: `Company\App\Http`,
		},
		"missing manifest": {
			files:   fstest.MapFS{},
			file:    "src/Foo.php",
			wantErr: ErrManifestMissing,
		},
		"missing manifest folder tree": {
			files: fstest.MapFS{},
			cfg:   Config{UseFolderTree: true},
			file:  "app/Http/Foo.php",
			want:  `app\Http`,
		},
		"no prefix match": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"psr-4": {"App\\": "src/"}}}`),
			},
			file:    "lib/Foo.php",
			wantErr: &NoPrefixMatchError{},
		},
		"no psr-4 section": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": {"classmap": ["lib/"]}}`),
			},
			file:    "lib/Foo.php",
			wantErr: &ManifestError{},
		},
		"malformed": {
			files: fstest.MapFS{
				"composer.json": manifest(`{"autoload": `),
			},
			file:    "lib/Foo.php",
			wantErr: &ManifestError{},
		},
	} {
		t.Run(name, func(t *testing.T) {
			g, err := NewGenerator(tc.files, tc.cfg)
			require.NoError(t, err)

			got, err := g.Namespace(tc.file)
			if tc.wantErr != nil {
				switch want := tc.wantErr.(type) {
				case *NoPrefixMatchError:
					require.ErrorAs(t, err, &want)
				case *ManifestError:
					require.ErrorAs(t, err, &want)
				default:
					require.True(t, errors.Is(err, tc.wantErr), "want %v, got %v", tc.wantErr, err)
				}
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("namespace (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadAutoloadMap(t *testing.T) {
	got, err := LoadAutoloadMap("composer.json", []byte(`{
		"autoload": {"psr-4": {"B\\": "b/", "A\\": ["a1", "./a2/"], "C\\": "c"}},
		"autoload-dev": {"psr-4": {"A\\": "dev/", "T\\": "tests/"}}
	}`))
	require.NoError(t, err)

	want := []Entry{
		{Prefix: `B\`, Dir: "b"},
		{Prefix: `A\`, Dir: "dev"},
		{Prefix: `C\`, Dir: "c"},
		{Prefix: `T\`, Dir: "tests"},
	}
	if diff := cmp.Diff(want, got.Entries); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
}

func TestNamespaceEdit(t *testing.T) {
	for name, tc := range map[string]struct {
		src  string
		want string
	}{
		"insert after open tag": {
			src:  "<?php\n\nclass Controller {}\n",
			want: "<?php\n\nnamespace App\\Http;\n\nclass Controller {}\n",
		},
		"insert after declare": {
			src:  "<?php\ndeclare(strict_types=1);\n\nclass Controller {}\n",
			want: "<?php\ndeclare(strict_types=1);\n\nnamespace App\\Http;\n\nclass Controller {}\n",
		},
		"replace existing": {
			src:  "<?php\nnamespace Wrong\\Place;\n",
			want: "<?php\nnamespace App\\Http;\n",
		},
		"open tag only": {
			src:  "<?php",
			want: "<?php\n\nnamespace App\\Http;\n",
		},
	} {
		t.Run(name, func(t *testing.T) {
			summary, err := phpast.NewParser().Parse("test.php", []byte(tc.src))
			require.NoError(t, err)
			doc := textedit.NewDocument("test.php", tc.src)
			require.NoError(t, doc.Apply(NamespaceEdit(doc, summary, `App\Http`)))
			if diff := cmp.Diff(tc.want, doc.Text()); diff != "" {
				t.Errorf("text (-want +got):\n%s", diff)
			}
		})
	}
}
