package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackb/php-namespace-resolver/language/php"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE LINE:COL...",
		Short: "Import the class names at the given positions",
		Example: `# import the class referenced on line 12, column 20
nsresolver import src/Http/Controller.php 12:20`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPositions(cmd, args, (*php.Session).Import)
		},
	}
}

func (a *app) expandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand FILE LINE:COL...",
		Short: "Expand the class names at the given positions to fully-qualified names",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withPositions(cmd, args, (*php.Session).Expand)
		},
	}
}

type positionCommand func(s *php.Session, ctx context.Context, doc *textedit.Document, positions ...textedit.Position) php.Notification

func (a *app) withPositions(cmd *cobra.Command, args []string, run positionCommand) error {
	positions, err := parsePositions(args[1:])
	if err != nil {
		return err
	}
	session, err := a.session()
	if err != nil {
		return err
	}
	doc, err := a.readDocument(args[0])
	if err != nil {
		return err
	}
	return a.finish(doc, run(session, cmd.Context(), doc, positions...))
}

func (a *app) importAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-all FILE",
		Short: "Import every class the file refers to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session()
			if err != nil {
				return err
			}
			doc, err := a.readDocument(args[0])
			if err != nil {
				return err
			}
			return a.finish(doc, session.ImportAll(cmd.Context(), doc))
		},
	}
}

func (a *app) sortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort FILE",
		Short: "Sort the imports of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session()
			if err != nil {
				return err
			}
			doc, err := a.readDocument(args[0])
			if err != nil {
				return err
			}
			return a.finish(doc, session.Sort(doc))
		},
	}
}

func (a *app) namespaceCmd() *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "namespace FILE",
		Short: "Generate the namespace declaration of a file from composer.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session()
			if err != nil {
				return err
			}
			doc, err := a.readDocument(args[0])
			if err != nil {
				return err
			}
			if printOnly {
				ns, ok := session.Namespace(doc)
				if !ok {
					return errFailed
				}
				fmt.Fprintln(a.out, ns)
				return nil
			}
			return a.finish(doc, session.GenerateNamespace(doc))
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "only print the namespace")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report qualified names that no class map knows about",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session()
			if err != nil {
				return err
			}
			found, n := session.CheckNamespaces(cmd.Context())
			for _, d := range found {
				fmt.Fprintf(a.out, "%s:%d: %s\n", d.File, d.Line+1, d.Message)
			}
			if n.Level == php.Error {
				return errFailed
			}
			return nil
		},
	}
}

func (a *app) renameTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename-type FILE",
		Short: "Rename the type declared by a file to match the filename",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session()
			if err != nil {
				return err
			}
			doc, err := a.readDocument(args[0])
			if err != nil {
				return err
			}
			return a.finish(doc, session.RenameType(doc))
		},
	}
}

func (a *app) builtinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builtins",
		Short: "Enumerate the built-in classes, interfaces and traits of the php runtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session()
			if err != nil {
				return err
			}
			if n := session.Reinitialize(cmd.Context()); n.Level == php.Error {
				return errFailed
			}
			return nil
		},
	}
}
