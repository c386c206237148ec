package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tizor98/albertonet-sub000/internal/content"
	"github.com/tizor98/albertonet-sub000/pkg/logger"
)

func newValidateCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate [dir]",
		Short: "Check every post document under a content directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := filepath.Join(cfg.Storage.Root, cfg.Content.PostsPrefix)
			if len(args) == 1 {
				dir = args[0]
			}
			if watch {
				return watchValidate(dir)
			}
			return runValidate(dir)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "re-run validation when files change")
	return cmd
}

// runValidate parses and assembles every post document under dir, reporting
// each file. Returns an error when any document fails.
func runValidate(dir string) error {
	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	var checked, failed int
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, content.PostSuffix) {
			return nil
		}
		checked++

		raw, err := os.ReadFile(path)
		if err != nil {
			failed++
			fmt.Printf("%s %s: %v\n", fail("FAIL"), path, err)
			return nil
		}
		slug := content.SlugFromKey(filepath.ToSlash(path))
		if _, err := content.ToPost(slug, raw); err != nil {
			failed++
			fmt.Printf("%s %s: %v\n", fail("FAIL"), path, err)
			return nil
		}

		fmt.Printf("%s %s\n", ok("OK"), path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}

	fmt.Printf("checked %d documents, %d failed\n", checked, failed)
	if failed > 0 {
		return fmt.Errorf("%d invalid documents", failed)
	}
	return nil
}

// watchValidate re-runs validation whenever something under dir changes,
// debounced so an editor save burst triggers a single run.
func watchValidate(dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	if err := runValidate(dir); err != nil {
		logger.Warn("validation failed", "error", err)
	}

	var debounce *time.Timer
	for {
		select {
		case event, open := <-watcher.Events:
			if !open {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(500*time.Millisecond, func() {
				if err := runValidate(dir); err != nil {
					logger.Warn("validation failed", "error", err)
				}
			})
		case werr, open := <-watcher.Errors:
			if !open {
				return nil
			}
			logger.Error("watcher error", "error", werr)
		}
	}
}
