package cli

import (
	"errors"
	"log/slog"

	"al.essio.dev/pkg/shellescape"
	"github.com/babarot/saferm/internal/trash"
)

// RestoreItems puts each id back where it came from
func (c *CLI) RestoreItems() {
	opt := c.option.Restore

	for _, id := range opt.Args.IDs {
		entry, err := c.manager.Restore(id, opt.Force)
		if err != nil {
			slog.Error("restore failed", "id", id, "error", err)
			c.errorf("%v", err)
			if errors.Is(err, trash.ErrConflict) {
				c.printf("  %s restore --force %s  # overwrites %s",
					c.version.AppName, shellescape.Quote(id), shellescape.Quote(entry.OriginalPath))
			}
			continue
		}
		c.printf("Restored: %s", entry.OriginalPath)
	}
}
