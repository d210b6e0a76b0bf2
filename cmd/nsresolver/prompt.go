package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// terminal prompts on the command line.  It implements both the class picker
// and the alias prompt of a session.
type terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminal(in *bufio.Reader, out io.Writer) *terminal {
	return &terminal{in: in, out: out}
}

// PickOne lists the items and reads a number or a name.  An empty answer or
// end of input dismisses the prompt.
func (t *terminal) PickOne(ctx context.Context, items []string) (string, bool) {
	for i, item := range items {
		fmt.Fprintf(t.out, "%3d) %s\n", i+1, item)
	}
	for {
		fmt.Fprint(t.out, "select a class: ")
		answer, ok := t.readLine(ctx)
		if !ok || answer == "" {
			return "", false
		}
		if n, err := strconv.Atoi(answer); err == nil {
			if n >= 1 && n <= len(items) {
				return items[n-1], true
			}
		} else {
			for _, item := range items {
				if item == answer {
					return item, true
				}
			}
		}
		fmt.Fprintf(t.out, "%q is not one of the choices\n", answer)
	}
}

// Alias reads an alias for fqn.  An empty answer replaces the existing
// import; end of input dismisses the prompt.
func (t *terminal) Alias(ctx context.Context, fqn string) (string, bool) {
	fmt.Fprintf(t.out, "%s is already imported, enter an alias (empty to replace): ", fqn)
	return t.readLine(ctx)
}

func (t *terminal) readLine(ctx context.Context) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", false
	}
	return strings.TrimSpace(line), true
}
