package cli

import (
	"log/slog"

	"github.com/babarot/saferm/internal/ui/table"
)

// ExpireCheck shows the expiry of a single item
func (c *CLI) ExpireCheck() {
	id := c.option.Expire.Args.ID

	info, err := c.manager.ExpireCheck(id)
	if err != nil {
		slog.Error("expire check failed", "id", id, "error", err)
		c.errorf("%v", err)
		return
	}
	table.PrintExpireInfo(c.stdout, info)
}
