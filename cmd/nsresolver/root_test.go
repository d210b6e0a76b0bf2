package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/stackb/php-namespace-resolver/pkg/testutil"
)

const unsorted = `<?php

namespace App;

use Illuminate\Support\Collection;
use App\Models\User;

class Kernel {}
`

const sorted = `<?php

namespace App;

use App\Models\User;
use Illuminate\Support\Collection;

class Kernel {}
`

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out, &errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestSortCommand(t *testing.T) {
	t.Setenv("NSRESOLVER_CONFIG", "")
	dir, _ := testutil.MustPrepareTestFiles(t, []testutil.FileSpec{
		{Path: "src/Kernel.php", Content: unsorted},
		{Path: "src/Single.php", Content: "<?php\n\nuse App\\Models\\User;\n"},
	})
	file := filepath.Join(dir, "src/Kernel.php")

	stdout, stderr, err := run(t, "--root", dir, "sort", file)
	require.NoError(t, err)
	if diff := cmp.Diff(sorted, stdout); diff != "" {
		t.Errorf("stdout (-want +got):\n%s", diff)
	}
	require.Contains(t, stderr, "Imports are sorted.")
	require.Equal(t, unsorted, testutil.MustReadTestFile(t, dir, "src/Kernel.php"))

	_, _, err = run(t, "--root", dir, "sort", "--write", file)
	require.NoError(t, err)
	require.Equal(t, sorted, testutil.MustReadTestFile(t, dir, "src/Kernel.php"))

	_, stderr, err = run(t, "--root", dir, "sort", filepath.Join(dir, "src/Single.php"))
	require.ErrorIs(t, err, errFailed)
	require.Contains(t, stderr, "Nothing to sort.")
}

func TestNamespaceCommand(t *testing.T) {
	t.Setenv("NSRESOLVER_CONFIG", "")
	dir, _ := testutil.MustPrepareTestFiles(t, []testutil.FileSpec{
		{Path: "composer.json", Content: `{"autoload": {"psr-4": {"App\\": "src/"}}}`},
		{Path: "src/Http/Controller.php", Content: "<?php\n\nclass Controller {}\n"},
	})
	file := filepath.Join(dir, "src/Http/Controller.php")

	stdout, _, err := run(t, "--root", dir, "namespace", "--print", file)
	require.NoError(t, err)
	require.Equal(t, "App\\Http\n", stdout)

	stdout, _, err = run(t, "--root", dir, "namespace", file)
	require.NoError(t, err)
	require.Equal(t, "<?php\n\nnamespace App\\Http;\n\nclass Controller {}\n", stdout)
}

func TestPositionArguments(t *testing.T) {
	_, _, err := run(t, "import", "Foo.php", "nope")
	require.EqualError(t, err, `position "nope": want LINE:COL`)
}
