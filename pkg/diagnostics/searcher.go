package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stackb/php-namespace-resolver/pkg/procutil"
)

// Match is one line-addressed search hit.
type Match struct {
	File string
	// Line is 1-based, as reported by the search tool.
	Line int
	Text string
}

// Searcher runs a project-wide regular expression search.
type Searcher interface {
	Search(ctx context.Context, pattern string) ([]Match, error)
}

// RipgrepSearcher implements Searcher with ripgrep, restricted to PHP files.
type RipgrepSearcher struct {
	Command      string
	Dir          string
	ExcludeDirs  []string
	ExcludeFiles []string
	Logger       zerolog.Logger
}

// Search implements Searcher.
func (s *RipgrepSearcher) Search(ctx context.Context, pattern string) ([]Match, error) {
	if s.Command == "" {
		return nil, errors.New("ripgrep command is not configured")
	}
	args := s.args(pattern)

	s.Logger.Debug().Str("command", s.Command).Strs("args", args).Msg("searching")

	result, err := procutil.Run(ctx, s.Dir, s.Command, args...)
	if err != nil {
		var exitErr *exec.ExitError
		// exit code 1 means no match
		if errors.As(err, &exitErr) && result.ExitCode == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w: %s", s.Command, err, strings.TrimSpace(string(result.Stderr)))
	}
	return parseOutput(string(result.Stdout)), nil
}

// args builds the ripgrep command line.  Only files matching the configured
// exclusions are skipped.
func (s *RipgrepSearcher) args(pattern string) []string {
	args := []string{
		pattern,
		"--pcre2",
		"--no-messages",
		"--no-heading",
		"--with-filename",
		"--line-number",
		"--only-matching",
		"--color=never",
		"--glob=**/*.php",
	}
	if glob := excludeGlob(s.ExcludeDirs); glob != "" {
		args = append(args, glob)
	}
	if glob := excludeGlob(s.ExcludeFiles); glob != "" {
		args = append(args, glob)
	}
	return append(args, "./")
}

func excludeGlob(patterns []string) string {
	switch len(patterns) {
	case 0:
		return ""
	case 1:
		return "--glob=!" + patterns[0]
	default:
		return fmt.Sprintf("--glob=!{%s}", strings.Join(patterns, ","))
	}
}

// parseOutput reads "file:line:text" records.
func parseOutput(out string) []Match {
	var matches []Match
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, ":", 3)
		if len(parts) != 3 {
			continue
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		matches = append(matches, Match{
			File: strings.TrimPrefix(parts[0], "./"),
			Line: n,
			Text: parts[2],
		})
	}
	return matches
}
