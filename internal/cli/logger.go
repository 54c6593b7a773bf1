package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/babarot/saferm/internal/config"
	"github.com/babarot/saferm/internal/env"
	"github.com/babarot/saferm/internal/utils/log"
)

// setupLogger installs the default slog logger for this run. Records go to
// the rotating debug log, or nowhere when logging is disabled. The
// returned func closes the log file.
func (c *CLI) setupLogger(cfg config.Logging) func() {
	if !cfg.Enabled {
		log.New(log.UseOutput(io.Discard), log.AsDefault())
		return func() {}
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	rw, err := log.NewRotateWriter(env.SAFERM_LOG_PATH, cfg.Rotation.MaxSize, cfg.Rotation.MaxFiles)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: debug log unavailable, logging to stderr: %v\n", c.version.AppName, err)
	} else {
		w = rw
		closeFn = func() { rw.Close() }
	}

	log.New(
		log.UseOutput(w),
		log.UseLevel(log.ParseLevel(cfg.Level)),
		log.UseFormatter(log.ParseFormatter(cfg.Format)),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.DateTime),
		log.UseAttrs("run_id", c.runID),
		log.AsDefault(),
	)
	return closeFn
}
