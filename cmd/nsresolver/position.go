package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// parsePosition reads a 1-based LINE:COL argument.
func parsePosition(arg string) (textedit.Position, error) {
	line, col, ok := strings.Cut(arg, ":")
	if !ok {
		return textedit.Position{}, fmt.Errorf("position %q: want LINE:COL", arg)
	}
	l, err := strconv.Atoi(line)
	if err != nil || l < 1 {
		return textedit.Position{}, fmt.Errorf("position %q: bad line", arg)
	}
	c, err := strconv.Atoi(col)
	if err != nil || c < 1 {
		return textedit.Position{}, fmt.Errorf("position %q: bad column", arg)
	}
	return textedit.Position{Line: l - 1, Column: c - 1}, nil
}

func parsePositions(args []string) ([]textedit.Position, error) {
	positions := make([]textedit.Position, 0, len(args))
	for _, arg := range args {
		p, err := parsePosition(arg)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, nil
}
