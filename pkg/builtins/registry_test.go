package builtins_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stackb/php-namespace-resolver/pkg/builtins"
	"github.com/stackb/php-namespace-resolver/pkg/builtins/mocks"
)

func TestRegistrySetLoadsOnce(t *testing.T) {
	runtime := mocks.NewRuntime(t)
	runtime.On("Eval", mock.Anything, "get_declared_classes()", mock.Anything).
		Run(mocks.Returns("Exception", "DateTime")).
		Return(nil).
		Once()
	runtime.On("Eval", mock.Anything, "get_declared_interfaces()", mock.Anything).
		Run(mocks.Returns("Countable")).
		Return(nil).
		Once()

	registry := builtins.NewRegistry(runtime, builtins.WithMethods("get_declared_classes()", "get_declared_interfaces()"))
	ctx := context.Background()

	set := registry.Set(ctx)
	require.Equal(t, 3, set.Len())
	require.True(t, set.Contains("Exception"))
	require.True(t, set.Contains(`\Countable`))
	require.False(t, set.Contains("Foo"))

	// second call is served from the loaded set
	require.Equal(t, 3, registry.Set(ctx).Len())
}

func TestRegistryFailureLeavesSetEmpty(t *testing.T) {
	runtime := mocks.NewRuntime(t)
	runtime.On("Eval", mock.Anything, "get_declared_classes()", mock.Anything).
		Return(errors.New("boom")).
		Once()

	registry := builtins.NewRegistry(runtime, builtins.WithMethods("get_declared_classes()"))
	ctx := context.Background()

	require.Equal(t, 0, registry.Set(ctx).Len())
	require.Equal(t, 0, registry.Set(ctx).Len())

	runtime.On("Eval", mock.Anything, "get_declared_classes()", mock.Anything).
		Run(mocks.Returns("Exception")).
		Return(nil).
		Once()
	require.True(t, registry.Reload(ctx).Contains("Exception"))
}

func TestPHPRuntimeMissingCommand(t *testing.T) {
	r := &builtins.PHPRuntime{}
	var got []string
	err := r.Eval(context.Background(), "get_declared_classes()", &got)
	if !errors.Is(err, builtins.ErrExternalToolMissing) {
		t.Fatalf("want ErrExternalToolMissing, got %v", err)
	}
}

func TestSetUnion(t *testing.T) {
	a := builtins.NewSet("A", "B")
	b := builtins.NewSet("B", "C", "")
	u := a.Union(b)
	require.Equal(t, 3, u.Len())
	require.Equal(t, 2, a.Len())
	require.True(t, u.Contains("C"))
}
