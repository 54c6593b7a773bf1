package debug

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

// Options selects which log file Logs reads and how
type Options struct {
	Path string
	// Enabled mirrors logging.enabled, used to explain a missing file
	Enabled bool
	// Live skips existing content and follows new lines
	Live bool
	// Follow keeps reading after EOF; when nil it follows only if
	// stdout is a terminal. Live always follows.
	Follow *bool
}

// Logs prints the debug log to w, either its existing content or, when
// live, the lines written from now on
func Logs(w io.Writer, opts Options) error {
	if _, err := os.Stat(opts.Path); errors.Is(err, os.ErrNotExist) {
		if !opts.Enabled {
			return fmt.Errorf("logging is not enabled in config: enable logging to create log files")
		}
		return fmt.Errorf("no log file exists yet: try running some commands first")
	}

	if opts.Live && !opts.Enabled {
		return fmt.Errorf("logging is not enabled in config: enable logging in config for live debugging")
	}

	t, err := tail.TailFile(opts.Path, tailConfig(opts))
	if err != nil {
		return err
	}
	defer t.Cleanup()

	for line := range t.Lines {
		if line.Err != nil {
			return line.Err
		}
		fmt.Fprintln(w, line.Text)
	}
	return nil
}

func tailConfig(opts Options) tail.Config {
	follow := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if opts.Follow != nil {
		follow = *opts.Follow
	}
	// live starts at the end, without following it would print nothing
	if opts.Live {
		follow = true
	}

	cfg := tail.Config{
		ReOpen:    follow,
		Follow:    follow,
		MustExist: true,
		Poll:      true,
		Logger:    tail.DiscardingLogger,
	}
	if opts.Live {
		cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}
	return cfg
}
