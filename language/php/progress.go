package php

import (
	"github.com/pcj/mobyprogress"
)

func writeImportProgress(output mobyprogress.Output, name string, current, total int, lastUpdate bool) {
	action := "importing"
	if name != "" {
		action += " " + name
	}
	output.WriteProgress(mobyprogress.Progress{
		ID:         "import",
		Action:     action,
		Current:    int64(current),
		Total:      int64(total),
		Units:      "names",
		LastUpdate: lastUpdate,
	})
}
