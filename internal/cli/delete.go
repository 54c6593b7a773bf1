package cli

import (
	"log/slog"

	"al.essio.dev/pkg/shellescape"

	"github.com/babarot/saferm/internal/core/atomic"
)

const defaultExpireDays = 7

// retentionDays is --expire-days when given, the configured default otherwise
func (c *CLI) retentionDays() int {
	if c.expireDaysSet {
		return c.option.Delete.ExpireDays
	}
	days, err := c.config.Core.RetentionDays()
	if err != nil {
		slog.Warn("invalid default retention", "value", c.config.Core.DefaultRetention, "error", err)
		return defaultExpireDays
	}
	return days
}

// Delete trashes every path argument, reporting failures one by one
func (c *CLI) Delete() {
	opt := c.option.Delete
	days := c.retentionDays()

	for _, path := range opt.Args.Paths {
		entry, err := c.manager.Delete(path, days, opt.Force)
		if err != nil {
			c.reportDeleteFailure(path, err)
			continue
		}
		c.printf("Moved to trash: %s", entry.OriginalPath)
		if c.verbose() {
			c.printf("  id: %s, expires in %d days", entry.ID, entry.ExpireDays)
			c.printf("  undo: %s restore %s", c.version.AppName, shellescape.Quote(entry.ID))
		}
	}
}

// reportDeleteFailure prints err and, when the source was only partly
// removed, where the complete copy was left. That copy is not recorded, so
// list and restore do not know about it.
func (c *CLI) reportDeleteFailure(path string, err error) {
	slog.Error("delete failed", "path", path, "error", err)
	c.errorf("%v", err)

	kept, ok := atomic.KeptCopy(err)
	if !ok {
		return
	}
	slog.Warn("untracked copy left in trash", "path", path, "copy", kept)
	c.warnf("%s was partly removed; a complete copy is kept at %s", path, kept)
	c.warnf("it is not tracked, move it back by hand:")
	c.warnf("  mv %s %s", shellescape.Quote(kept), shellescape.Quote(path))
}
