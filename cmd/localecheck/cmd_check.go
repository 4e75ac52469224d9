package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"localecheck/internal/checker"
	"localecheck/internal/locale"
	"localecheck/internal/logging"
	"localecheck/internal/report"
	"localecheck/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCheck checks the configured locales once, or keeps re-checking in watch mode.
func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(a.cfg.Format)
	if err != nil {
		return fatal(err)
	}
	w := report.NewWriter(cmd.OutOrStdout(), report.Options{
		Format:    format,
		ShowExtra: a.cfg.ShowExtra,
		NoColor:   a.opts.noColor,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !a.opts.watch {
		return a.checkOnce(ctx, w)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := watch.New(a.cfg.Dir, a.logger)
	if err != nil {
		return fatal(err)
	}
	a.logger.Info("Watching locale directory", zap.String("dir", a.cfg.Dir))
	return watcher.Run(ctx, func(ctx context.Context) error {
		return a.checkOnce(ctx, w)
	})
}

func (a *app) targets() ([]string, error) {
	if !a.cfg.Discover() {
		return a.cfg.Locales, nil
	}
	names, err := locale.Discover(a.cfg.Dir, a.cfg.Reference)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Discovered locales", zap.Strings("locales", names))
	return names, nil
}

func (a *app) checkOnce(ctx context.Context, w *report.Writer) error {
	targets, err := a.targets()
	if err != nil {
		return fatal(err)
	}

	c := checker.New(checker.Options{
		Dir:       a.cfg.Dir,
		Reference: a.cfg.Reference,
		Targets:   targets,
	}, logging.WithRun(a.logger))

	res, err := c.Run(ctx)
	if err != nil {
		var refErr *checker.ReferenceError
		if errors.As(err, &refErr) {
			return fatal(err)
		}
		return err
	}

	if err := w.Write(res); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if !res.Complete() {
		return &exitError{code: exitIncomplete, err: errIncomplete, silent: true}
	}
	return nil
}
