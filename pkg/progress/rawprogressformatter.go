package progress

import (
	"fmt"

	"github.com/pcj/mobyprogress"
)

const streamNewline = "\r\n"

type rawProgressFormatter struct{}

func (sf *rawProgressFormatter) formatStatus(id, format string, a ...interface{}) []byte {
	return []byte(fmt.Sprintf(format, a...) + streamNewline)
}

func (sf *rawProgressFormatter) formatProgress(id, action, counts string) []byte {
	endl := "\r"
	if counts == "" {
		endl += "\n"
		return []byte(action + endl)
	}
	return []byte(action + " " + counts + endl)
}

// counts renders "current/total units"; empty when hidden or unknown.
func counts(prog mobyprogress.Progress) string {
	if prog.HideCounts || prog.Total <= 0 {
		return ""
	}
	s := fmt.Sprintf("%d/%d", prog.Current, prog.Total)
	if prog.Units != "" {
		s += " " + prog.Units
	}
	return s
}
