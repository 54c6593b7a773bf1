package cli

import (
	"errors"
	"log/slog"

	"github.com/babarot/saferm/internal/trash"
)

const emptyPrompt = "Are you sure to empty trash (permanent delete all)?"

// EmptyTrash permanently removes everything after confirmation
func (c *CLI) EmptyTrash() {
	confirmed := c.option.Empty.Yes || c.confirm(emptyPrompt)

	ids, err := c.manager.Empty(confirmed)
	if errors.Is(err, trash.ErrCanceled) {
		c.printf("Canceled")
		return
	}
	if err != nil {
		slog.Error("empty failed", "error", err)
		c.errorf("%v", err)
		return
	}

	for _, id := range ids {
		c.printf("Deleted: %s", id)
	}
	c.printf("Trash emptied completely!")
}
