package cli

import (
	"slices"

	"github.com/babarot/saferm/internal/trash"
	"github.com/babarot/saferm/internal/ui/table"
)

// ListItems prints the trash contents through the configured list filters
func (c *CLI) ListItems() {
	opt := c.option.List

	listings := slices.Collect(c.manager.List(opt.Expired))
	total := len(listings)
	if !opt.All {
		listings = trash.Filter(listings, trash.NewFilterOptions(c.config.List))
	}

	table.PrintListings(c.stdout, listings, table.PrintOptions{
		ShowRelativeTime: c.verbose(),
		ShowType:         c.verbose(),
	})
	if hidden := total - len(listings); hidden > 0 {
		c.printf("%d item(s) hidden by list filters, use --all to show them", hidden)
	}
}
