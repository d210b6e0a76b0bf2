package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/stackb/php-namespace-resolver/pkg/builtins"
	"github.com/stackb/php-namespace-resolver/pkg/phpast"
)

func TestExtract(t *testing.T) {
	for name, tc := range map[string]struct {
		src      string
		builtins []string
		want     Result
	}{
		"empty": {
			src: "<?php\n",
		},
		"supertypes": {
			src:  "<?php\nclass A extends Base implements Countable, \\JsonSerializable, Contracts\\Arrayable {}\n",
			want: Result{Simple: []string{"Base", "Countable"}},
		},
		"qualified supertype": {
			src:  "<?php\nclass A extends \\Foo\\Base {}\n",
			want: Result{Qualified: []string{`\Foo\Base`}},
		},
		"all heuristics": {
			src: `<?php
namespace App;

use Illuminate\Support\Collection;
use Other\Thing as Alias;

class Service extends Base implements Countable
{
    use HasEvents;

    public function handle(Request $request, int $n, Collection $items): Response
    {
        /** @var Item[] $list */
        $x = new Job();
        $y = Cache::get('k');
        $z = new \Vendor\Lib\Client();
        if ($x instanceof Queueable) {
        }
        $users = Models\User::all();
        $a = Alias::make();
        $b = Service::make();
        $this->Foo::bar();
        return Response::ok();
    }
}
`,
			want: Result{
				Simple: []string{
					"Base", "Countable", "Request", "Job", "Cache",
					"Response", "Queueable", "Item", "HasEvents",
				},
				Qualified: []string{`\Vendor\Lib\Client`, `Models\User`},
			},
		},
		"imported namespace prefix": {
			src: `<?php
use App\Models;

$u = Models\User::find(1);
$v = Other\User::find(1);
`,
			want: Result{Qualified: []string{`Other\User`}},
		},
		"builtins excluded from markers and return types": {
			src: `<?php
function f(): Traversable
{
}
function g(): ?Widget
{
}
/** @var ArrayObject[] $a */
/** @var Gadget[] $b */
$e = new Exception();
`,
			builtins: []string{"Traversable", "ArrayObject", "Exception"},
			want: Result{
				Simple: []string{"Exception", "Gadget", "Widget"},
			},
		},
		"variables and members ignored": {
			src: `<?php
$Foo = 1;
$x->Bar::baz();
$y = Baz::QUX::class;
echo strtoupper('x');
`,
			want: Result{Simple: []string{"Baz"}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			summary, err := phpast.NewParser(phpast.WithLenient()).Parse("test.php", []byte(tc.src))
			require.NoError(t, err)

			got := Extract(summary, tc.src, builtins.NewSet(tc.builtins...))
			if diff := cmp.Diff(tc.want, *got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsReturnType(t *testing.T) {
	for before, want := range map[string]bool{
		"function f():":   true,
		"function f() :":  true,
		"function f(): ?": true,
		"$a ? b :":        false,
		"f()":             false,
	} {
		if got := isReturnType(before); got != want {
			t.Errorf("isReturnType(%q): want %t, got %t", before, want, got)
		}
	}
}
