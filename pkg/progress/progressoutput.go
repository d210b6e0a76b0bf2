package progress

import (
	"io"

	"github.com/pcj/mobyprogress"
)

// NewProgressOutput returns an output writing one raw line per update.
func NewProgressOutput(out io.Writer) mobyprogress.Output {
	return &progressOutput{sf: &rawProgressFormatter{}, out: out, newLines: true}
}

type progressOutput struct {
	sf       *rawProgressFormatter
	out      io.Writer
	newLines bool
}

// WriteProgress formats a progress update.
func (out *progressOutput) WriteProgress(prog mobyprogress.Progress) error {
	var formatted []byte
	if prog.Message != "" {
		formatted = out.sf.formatStatus(prog.ID, prog.Message)
	} else {
		formatted = out.sf.formatProgress(prog.ID, prog.Action, counts(prog))
	}
	_, err := out.out.Write(formatted)
	if err != nil {
		return err
	}

	if out.newLines && prog.LastUpdate {
		_, err = out.out.Write(out.sf.formatStatus("", ""))
		return err
	}

	return nil
}

// Discard drops every update.
var Discard mobyprogress.Output = discard{}

type discard struct{}

func (discard) WriteProgress(mobyprogress.Progress) error { return nil }
