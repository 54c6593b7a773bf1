package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/babarot/saferm/internal/config"
	"github.com/babarot/saferm/internal/env"
	"github.com/babarot/saferm/internal/history"
	"github.com/babarot/saferm/internal/trash"
	"github.com/babarot/saferm/internal/ui"
	"github.com/babarot/saferm/internal/utils/debug"
	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

type Option struct {
	Config  string `long:"config" description:"Path to config file" value-name:"PATH"`
	Verbose bool   `short:"v" long:"verbose" description:"Explain what is being done"`

	Meta MetaOption `group:"Meta Options"`

	Delete  DeleteOption  `command:"delete" alias:"del" description:"Move files or directories to the trash"`
	Restore RestoreOption `command:"restore" alias:"res" description:"Restore trashed items to their original location"`
	List    ListOption    `command:"list" alias:"ls" description:"List trashed items"`
	Clean   CleanOption   `command:"clean" alias:"cln" description:"Permanently remove expired items"`
	Expire  ExpireOption  `command:"expire" alias:"exp" description:"Show when a trashed item expires"`
	Empty   EmptyOption   `command:"empty" description:"Permanently remove everything in the trash"`
	Version VersionOption `command:"version" description:"Show version"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type DeleteOption struct {
	ExpireDays int  `short:"d" long:"expire-days" description:"Days to keep the items before they expire (default: core.default_retention)" value-name:"N"`
	Force      bool `short:"f" long:"force" description:"Allow trashing protected system paths"`
	Args       struct {
		Paths []string `positional-arg-name:"PATH" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

type RestoreOption struct {
	Force bool `short:"f" long:"force" description:"Overwrite whatever exists at the original location"`
	Args  struct {
		IDs []string `positional-arg-name:"ID" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

type ListOption struct {
	Expired bool `long:"expired" description:"Only show expired items"`
	All     bool `short:"a" long:"all" description:"Ignore the list filters from the config file"`
}

type CleanOption struct {
	All bool `short:"a" long:"all" description:"Remove every item, expired or not"`
}

type ExpireOption struct {
	Args struct {
		ID string `positional-arg-name:"ID" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

type VersionOption struct{}

type EmptyOption struct {
	Yes bool `short:"y" long:"yes" description:"Do not ask for confirmation"`
}

// streams are the outside world a run talks to
type streams struct {
	stdout  io.Writer
	stderr  io.Writer
	confirm func(prompt string) bool
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string
	history *history.History
	manager *trash.Manager
	streams

	expireDaysSet bool
}

var runID = sync.OnceValue(func() string {
	return xid.New().String()
})

// Run parses os.Args and executes one subcommand. Failures of individual
// items are reported but do not make Run fail; only bad arguments and
// setup problems do.
func Run(v Version) error {
	return run(v, os.Args[1:], streams{
		stdout: os.Stdout,
		stderr: os.Stderr,
		confirm: func(prompt string) bool {
			return ui.Confirm(prompt)
		},
	})
}

func run(v Version, args []string, s streams) error {
	c := &CLI{version: v, runID: runID(), streams: s}

	parser := flags.NewParser(&c.option, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = v.AppName
	parser.SubcommandsOptional = true

	if _, err := parser.ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			fmt.Fprintln(c.stdout, err)
			return nil
		}
		fmt.Fprintf(c.stderr, "%s: %v\n", v.AppName, err)
		return err
	}

	if cmd := parser.Find("delete"); cmd != nil {
		if o := cmd.FindOptionByLongName("expire-days"); o != nil {
			c.expireDaysSet = o.IsSet()
		}
	}
	if days := c.option.Delete.ExpireDays; c.expireDaysSet && (days < 0 || days > config.MaxRetentionDays) {
		err := fmt.Errorf("invalid --expire-days %d: must be between 0 and %d", days, config.MaxRetentionDays)
		fmt.Fprintf(c.stderr, "%s: %v\n", v.AppName, err)
		return err
	}

	closeLog := c.setupLogger(config.NewDefaultConfig().Logging)
	defer func() { closeLog() }()

	slog.Debug("run started", "version", v.Version, "revision", v.Revision, "args", args)
	defer slog.Debug("run finished\n\n")

	cfg, err := config.Parse(c.option.Config)
	if err != nil {
		c.errorf("%v", err)
		return err
	}
	c.config = cfg
	closeLog()
	closeLog = c.setupLogger(cfg.Logging)
	slog.Debug("config loaded", "config", cfg.String())

	switch {
	case c.option.Meta.Version:
		fmt.Fprint(c.stdout, c.version.Print())
		return nil
	case c.option.Meta.Debug != "":
		return debug.Logs(c.stdout, debug.Options{
			Path:    env.SAFERM_LOG_PATH,
			Enabled: cfg.Logging.Enabled,
			Live:    c.option.Meta.Debug == "live",
		})
	case parser.Active == nil:
		parser.WriteHelp(c.stderr)
		return errors.New("no command given")
	case parser.Active.Name == "version":
		fmt.Fprint(c.stdout, c.version.Print())
		return nil
	}

	if err := c.open(); err != nil {
		c.errorf("%v", err)
		return err
	}

	// expired items go before anything else looks at the trash
	c.reportCleaned(c.manager.Clean(false))
	if err := c.save(); err != nil {
		return err
	}

	c.Execute(parser.Active.Name)

	return c.save()
}

// open loads the store and prepares the trash root
func (c *CLI) open() error {
	home, err := c.config.Core.HomeDir()
	if err != nil {
		return fmt.Errorf("resolve trash home: %w", err)
	}
	metadata := env.MetadataPath(home)

	c.history = history.New(metadata)
	store, err := c.history.Load()
	if err != nil {
		// not fatal, the run continues with an empty record
		c.warnf("%v", err)
	}
	manager, err := trash.NewManager(env.TrashDir(home), store, trash.WithReserved(metadata, c.history.CorruptPath()))
	if err != nil {
		return fmt.Errorf("failed to initialize trash: %w", err)
	}
	c.manager = manager
	slog.Debug("trash opened", "home", home, "entries", len(manager.Store()))
	return nil
}

func (c *CLI) save() error {
	if err := c.history.Save(c.manager.Store()); err != nil {
		c.errorf("%v", err)
		return err
	}
	return nil
}

// Execute runs the named subcommand
func (c *CLI) Execute(name string) {
	slog.Debug("cli.execute", "command", name)
	switch name {
	case "delete":
		c.Delete()
	case "restore":
		c.RestoreItems()
	case "list":
		c.ListItems()
	case "clean":
		c.CleanItems()
	case "expire":
		c.ExpireCheck()
	case "empty":
		c.EmptyTrash()
	}
}

func (c *CLI) verbose() bool {
	return c.option.Verbose || c.config.Core.Verbose
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.stdout, format+"\n", args...)
}

func (c *CLI) warnf(format string, args ...any) {
	fmt.Fprintln(c.stderr, color.YellowString(c.version.AppName+": "+format, args...))
}

func (c *CLI) errorf(format string, args ...any) {
	fmt.Fprintln(c.stderr, color.RedString(c.version.AppName+": "+format, args...))
}

func (c *CLI) reportCleaned(cleaned []trash.Cleaned) {
	for _, cl := range cleaned {
		switch cl.Reason {
		case trash.ReasonCorrupt:
			c.warnf("clean %s: invalid delete time %q", cl.Entry.ID, cl.Entry.DeleteTime)
		}
		c.printf("Cleaned: %s", cl.Entry.ID)
	}
}
