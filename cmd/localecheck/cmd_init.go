package main

import (
	"fmt"
	"os"

	"localecheck/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runInit writes the default configuration file.
func (a *app) runInit(cmd *cobra.Command, args []string) error {
	path := a.opts.configPath
	if path == "" {
		path = config.DefaultPath
	}

	if _, err := os.Stat(path); err == nil && !a.opts.force {
		return fatal(fmt.Errorf("%s already exists (use --force to overwrite)", path))
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fatal(err)
	}
	a.logger.Debug("Config written", zap.String("path", path))

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
