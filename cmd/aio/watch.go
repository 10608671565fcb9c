package main

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/aio/internal/config"
	"github.com/fyrsmithlabs/aio/internal/logging"
	"github.com/fyrsmithlabs/aio/internal/pipeline"
	"github.com/fyrsmithlabs/aio/internal/workpackage"
)

// rerunDebounce coalesces editor write bursts into one run.
const rerunDebounce = 2 * time.Second

// watchAndRerun blocks until ctx is cancelled, re-running the engine
// whenever a file inside the ticket's work package changes. Each re-run
// re-derives the stage from scratch, so a PLAN.md or qa.md landing on
// disk advances the pipeline without a manual invocation.
func watchAndRerun(ctx context.Context, engine *pipeline.Engine, cfg *config.Config, log *logging.Logger, number int) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	issuesDir := filepath.Join(cfg.Workspace.Root, workpackage.BaseDir)
	if err := os.MkdirAll(issuesDir, 0o755); err != nil {
		return err
	}
	if err := watcher.Add(issuesDir); err != nil {
		return err
	}
	// The work package dir itself may not exist until the first bootstrap
	// run creates it; watching the parent catches its creation too.
	prefix := filepath.Join(issuesDir, strconv.Itoa(number)+"-")
	if dirs, err := filepath.Glob(prefix + "*"); err == nil {
		for _, d := range dirs {
			_ = watcher.Add(d)
		}
	}

	log.Info(ctx, "watching for work package changes", zap.String("dir", issuesDir))

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(event.Name, prefix) {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Only files authored outside the pipeline advance it. Reacting
			// to the pipeline's own writes would loop.
			switch filepath.Base(event.Name) {
			case workpackage.PlanFile, workpackage.ReviewFile:
			default:
				continue
			}
			if timer == nil {
				timer = time.NewTimer(rerunDebounce)
			} else {
				timer.Reset(rerunDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			log.Info(ctx, "work package changed, re-running")
			if err := engine.Run(ctx, number); err != nil {
				log.Error(ctx, "run failed, still watching", zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn(ctx, "watcher error", zap.Error(err))
		}
	}
}
