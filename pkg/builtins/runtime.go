package builtins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stackb/php-namespace-resolver/pkg/procutil"
)

// ErrExternalToolMissing is returned when no runtime command is configured.
var ErrExternalToolMissing = errors.New("php runtime command is not configured")

// Runtime evaluates a PHP expression out of process and decodes its JSON
// encoded result into v.
type Runtime interface {
	Eval(ctx context.Context, expr string, v any) error
}

// PHPRuntime runs `<Command> -r 'echo json_encode(<expr>);'`.
type PHPRuntime struct {
	Command string
	Dir     string
	Logger  zerolog.Logger
}

// Eval implements Runtime.
func (r *PHPRuntime) Eval(ctx context.Context, expr string, v any) error {
	if strings.TrimSpace(r.Command) == "" {
		return ErrExternalToolMissing
	}

	code := fmt.Sprintf("echo json_encode(%s);", expr)
	r.Logger.Debug().Str("command", r.Command).Str("code", code).Msg("evaluating")

	result, err := procutil.Run(ctx, r.Dir, r.Command, "-r", code)
	if err != nil {
		return fmt.Errorf("%s -r %q (exit code %d): %w: %s", r.Command, code, result.ExitCode, err, strings.TrimSpace(string(result.Stderr)))
	}
	if err := json.Unmarshal(result.Stdout, v); err != nil {
		return fmt.Errorf("decoding output of %s: %w", expr, err)
	}
	return nil
}
