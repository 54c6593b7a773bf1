package cli

// CleanItems removes expired items, or all of them with --all.
// Expired items are already gone by the time a command runs, so
// without --all this mostly reports nothing.
func (c *CLI) CleanItems() {
	cleaned := c.manager.Clean(c.option.Clean.All)
	if len(cleaned) == 0 {
		c.printf("Nothing to clean")
		return
	}
	c.reportCleaned(cleaned)
}
