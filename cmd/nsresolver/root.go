package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stackb/php-namespace-resolver/language/php"
	"github.com/stackb/php-namespace-resolver/pkg/config"
	"github.com/stackb/php-namespace-resolver/pkg/logger"
	"github.com/stackb/php-namespace-resolver/pkg/progress"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

// errFailed is returned after a command reported its failure to the user.
var errFailed = errors.New("command failed")

type app struct {
	in  *bufio.Reader
	out io.Writer
	err io.Writer

	root     string
	logLevel string
	pretty   bool
	write    bool
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: bufio.NewReader(in), out: out, err: errOut}

	cmd := &cobra.Command{
		Use:           executableName,
		Short:         "Resolve, import, sort and expand PHP class names",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.root, "root", ".", "the workspace root")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.pretty, "pretty", false, "human readable log output")
	flags.BoolVarP(&a.write, "write", "w", false, "write the result back to the file instead of printing it")

	cmd.AddCommand(
		a.importCmd(),
		a.importAllCmd(),
		a.expandCmd(),
		a.sortCmd(),
		a.namespaceCmd(),
		a.checkCmd(),
		a.renameTypeCmd(),
		a.watchCmd(),
		a.builtinsCmd(),
		a.astCmd(),
	)
	return cmd
}

func (a *app) logger() zerolog.Logger {
	return logger.New(a.err, logger.Options{Level: a.logLevel, Pretty: a.pretty})
}

// workspace returns the absolute workspace root and its settings.
func (a *app) workspace() (string, *config.Config, error) {
	root, err := filepath.Abs(a.root)
	if err != nil {
		return "", nil, err
	}
	cfg, _, err := config.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

func (a *app) session(options ...php.Option) (*php.Session, error) {
	root, cfg, err := a.workspace()
	if err != nil {
		return nil, err
	}
	log := a.logger()
	options = append([]php.Option{
		php.WithLogger(log),
		php.WithNotifier(php.NotifierFunc(func(n php.Notification) {
			fmt.Fprintln(a.err, n.Message)
		})),
		php.WithProgress(progress.NewProgressOutput(a.err)),
	}, options...)
	return php.NewSession(root, cfg, newTerminal(a.in, a.err), options...)
}

func (a *app) readDocument(filename string) (*textedit.Document, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	return textedit.ReadDocument(abs)
}

// finish saves or prints the document and turns a failure notification into
// the exit status.
func (a *app) finish(doc *textedit.Document, n php.Notification) error {
	if a.write {
		if err := doc.Save(); err != nil {
			return err
		}
	} else {
		if _, err := io.WriteString(a.out, doc.Text()); err != nil {
			return err
		}
	}
	if n.Level == php.Error {
		return errFailed
	}
	return nil
}
