package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

func TestParsePosition(t *testing.T) {
	for name, tc := range map[string]struct {
		arg     string
		want    textedit.Position
		wantErr string
	}{
		"first column": {
			arg:  "1:1",
			want: textedit.Position{},
		},
		"one based": {
			arg:  "12:20",
			want: textedit.Position{Line: 11, Column: 19},
		},
		"missing column": {
			arg:     "12",
			wantErr: `position "12": want LINE:COL`,
		},
		"zero line": {
			arg:     "0:4",
			wantErr: `position "0:4": bad line`,
		},
		"bad column": {
			arg:     "3:x",
			wantErr: `position "3:x": bad column`,
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := parsePosition(tc.arg)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("position (-want +got):\n%s", diff)
			}
		})
	}
}
