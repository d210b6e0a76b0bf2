package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerminalPickOne(t *testing.T) {
	items := []string{`App\Models\User`, `Illuminate\Foundation\Auth\User`}

	for name, tc := range map[string]struct {
		input  string
		want   string
		wantOk bool
	}{
		"by number": {
			input:  "2\n",
			want:   `Illuminate\Foundation\Auth\User`,
			wantOk: true,
		},
		"by name": {
			input:  "App\\Models\\User\n",
			want:   `App\Models\User`,
			wantOk: true,
		},
		"retry after bad choice": {
			input:  "7\n1\n",
			want:   `App\Models\User`,
			wantOk: true,
		},
		"last line without newline": {
			input:  "1",
			want:   `App\Models\User`,
			wantOk: true,
		},
		"empty dismisses": {
			input: "\n",
		},
		"end of input dismisses": {
			input: "",
		},
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			term := newTerminal(bufio.NewReader(strings.NewReader(tc.input)), &out)
			got, ok := term.PickOne(context.Background(), items)
			require.Equal(t, tc.wantOk, ok)
			require.Equal(t, tc.want, got)
			require.Contains(t, out.String(), `  1) App\Models\User`)
		})
	}
}

func TestTerminalAlias(t *testing.T) {
	for name, tc := range map[string]struct {
		input  string
		want   string
		wantOk bool
	}{
		"alias": {
			input:  " AuthUser \n",
			want:   "AuthUser",
			wantOk: true,
		},
		"empty replaces": {
			input:  "\n",
			wantOk: true,
		},
		"end of input dismisses": {},
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			term := newTerminal(bufio.NewReader(strings.NewReader(tc.input)), &out)
			got, ok := term.Alias(context.Background(), `App\Models\User`)
			require.Equal(t, tc.wantOk, ok)
			require.Equal(t, tc.want, got)
		})
	}
}
