package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/stackb/php-namespace-resolver/pkg/phpast"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (a *app) astCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "ast FILE",
		Short:  "Dump the declarations recognized in a file",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.readDocument(args[0])
			if err != nil {
				return err
			}
			parser := phpast.NewParser(phpast.WithLenient(), phpast.WithLogger(a.logger()))
			summary, err := parser.Parse(doc.Filename(), doc.Bytes())
			if err != nil {
				return err
			}
			dumper.Fdump(a.out, summary)
			return nil
		},
	}
}
