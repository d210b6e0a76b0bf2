package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stackb/php-namespace-resolver/language/php"
	"github.com/stackb/php-namespace-resolver/pkg/textedit"
)

func (a *app) watchCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sort the imports of files as they are saved",
		Long:  "Sort the imports of PHP files written under the workspace root.  Requires sort.onSave.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, cfg, err := a.workspace()
			if err != nil {
				return err
			}
			if !cfg.Sort.OnSave {
				return errors.New("sort.onSave is disabled")
			}
			log := a.logger()
			session, err := a.session(php.WithNotifier(php.NotifierFunc(func(n php.Notification) {
				event := log.Debug()
				if n.Level == php.Error {
					event = log.Warn()
				}
				event.Msg(n.Message)
			})))
			if err != nil {
				return err
			}
			w := &sortOnSave{
				session:   session,
				extension: cfg.Extension,
				logger:    log,
				recent:    make(map[string]time.Time),
			}
			return watchTree(cmd.Context(), root, debounce, log, w.sort)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond, "quiet period before changed files are sorted")
	return cmd
}

type sortOnSave struct {
	session   *php.Session
	extension string
	logger    zerolog.Logger
	// recent holds the modification time of files this watcher wrote, so its
	// own saves do not trigger another sort.
	recent map[string]time.Time
}

func (w *sortOnSave) sort(changed []string) {
	for _, path := range changed {
		if !strings.HasSuffix(path, w.extension) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if w.recent[path].Equal(info.ModTime()) {
			continue
		}
		doc, err := textedit.ReadDocument(path)
		if err != nil {
			w.logger.Warn().Err(err).Str("file", path).Msg("reading")
			continue
		}
		n := w.session.Sort(doc)
		if !doc.Dirty() {
			continue
		}
		if err := doc.Save(); err != nil {
			w.logger.Warn().Err(err).Str("file", path).Msg("saving")
			continue
		}
		if info, err := os.Stat(path); err == nil {
			w.recent[path] = info.ModTime()
		}
		w.logger.Info().Str("file", path).Msg(n.Message)
	}
}

// watchTree calls onChange with the files changed under root, once events
// have been quiet for debounce.
func watchTree(ctx context.Context, root string, debounce time.Duration, logger zerolog.Logger, onChange func(changed []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	root = filepath.Clean(root)
	if err := addWatchRecursive(watcher, root); err != nil {
		return err
	}
	logger.Info().Str("root", root).Msg("watching")

	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	pending := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if !skipDir(root, path) {
						_ = addWatchRecursive(watcher, path)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			pending[path] = true
			timer.Reset(debounce)
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = map[string]bool{}
			onChange(changed)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && skipDir(root, path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// skipDir reports whether a directory holds dependencies or tool state.
func skipDir(root, path string) bool {
	if path == root {
		return false
	}
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules"
}
