package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	for name, tc := range map[string]struct {
		in   string
		want zerolog.Level
	}{
		"empty":   {in: "", want: zerolog.WarnLevel},
		"debug":   {in: "debug", want: zerolog.DebugLevel},
		"upper":   {in: " INFO ", want: zerolog.InfoLevel},
		"unknown": {in: "chatty", want: zerolog.WarnLevel},
	} {
		t.Run(name, func(t *testing.T) {
			if got := ParseLevel(tc.in); got != tc.want {
				t.Errorf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: "error"})
	log.Info().Msg("hidden")
	log.Error().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("error message should be written: %s", out)
	}
}
