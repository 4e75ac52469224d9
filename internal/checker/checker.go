// Package checker compares locale files against a reference locale and reports missing keys.
package checker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"localecheck/internal/locale"

	"go.uber.org/zap"
)

// Status is the outcome of checking one target file.
type Status string

const (
	StatusComplete    Status = "complete"
	StatusMissingKeys Status = "missing-keys"
	StatusReadError   Status = "read-error"
)

// Options configures a Checker.
type Options struct {
	// Dir is the directory the reference and target names are resolved against.
	Dir string
	// Reference is the file whose keys define completeness.
	Reference string
	// Targets are checked in this order.
	Targets []string
}

// LocaleReport is the result for a single target file.
type LocaleReport struct {
	File    string   `json:"file"`
	Status  Status   `json:"status"`
	Missing []string `json:"missing"`
	Extra   []string `json:"extra,omitempty"`
	Err     error    `json:"-"`
}

// Result aggregates the reports of one run.
type Result struct {
	Reference    string
	ReferenceLen int
	Reports      []LocaleReport
	Duration     time.Duration
}

// Complete is true iff every target file is complete.
func (r *Result) Complete() bool {
	for _, rep := range r.Reports {
		if rep.Status != StatusComplete {
			return false
		}
	}
	return true
}

// Counts tallies reports by status.
type Counts struct {
	Complete int
	Missing  int
	Errored  int
}

// Counts returns how many reports ended in each status.
func (r *Result) Counts() Counts {
	var c Counts
	for _, rep := range r.Reports {
		switch rep.Status {
		case StatusComplete:
			c.Complete++
		case StatusMissingKeys:
			c.Missing++
		case StatusReadError:
			c.Errored++
		}
	}
	return c
}

// ReferenceError means the reference file itself could not be loaded.
// No target can be judged without it, so the run is aborted.
type ReferenceError struct {
	Path string
	Err  error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("reference %s: %v", e.Path, e.Err)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

// Checker runs the completeness check.
type Checker struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Checker. A nil logger disables logging.
func New(opts Options, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{opts: opts, logger: logger}
}

func (c *Checker) path(name string) string {
	if c.opts.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.opts.Dir, name)
}

// Run loads the reference and checks every target in order.
// A target that cannot be read is reported and does not stop the run; a reference that
// cannot be read returns a *ReferenceError.
func (c *Checker) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	ref, err := locale.Load(c.path(c.opts.Reference))
	if err != nil {
		return nil, &ReferenceError{Path: c.opts.Reference, Err: err}
	}
	c.logger.Debug("Reference loaded",
		zap.String("file", c.opts.Reference),
		zap.Int("keys", ref.Len()))

	res := &Result{
		Reference:    c.opts.Reference,
		ReferenceLen: ref.Len(),
		Reports:      make([]LocaleReport, 0, len(c.opts.Targets)),
	}

	for _, target := range c.opts.Targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rep := c.CheckFile(ref, target)
		res.Reports = append(res.Reports, rep)
	}

	res.Duration = time.Since(start)
	counts := res.Counts()
	c.logger.Info("Locale check finished",
		zap.Int("files", len(res.Reports)),
		zap.Int("complete", counts.Complete),
		zap.Int("incomplete", counts.Missing),
		zap.Int("errors", counts.Errored),
		zap.Duration("duration", res.Duration))

	return res, nil
}

// CheckFile compares one target file with the reference key set.
func (c *Checker) CheckFile(ref locale.KeySet, name string) LocaleReport {
	rep := LocaleReport{File: name, Missing: []string{}}

	keys, err := locale.Load(c.path(name))
	if err != nil {
		rep.Status = StatusReadError
		rep.Err = err
		c.logger.Warn("Failed to read locale", zap.String("file", name), zap.Error(err))
		return rep
	}

	rep.Missing = ref.Missing(keys)
	rep.Extra = keys.Missing(ref)
	if len(rep.Missing) > 0 {
		rep.Status = StatusMissingKeys
	} else {
		rep.Status = StatusComplete
	}

	c.logger.Debug("Locale checked",
		zap.String("file", name),
		zap.String("status", string(rep.Status)),
		zap.Int("keys", keys.Len()),
		zap.Int("missing", len(rep.Missing)),
		zap.Int("extra", len(rep.Extra)))
	return rep
}
