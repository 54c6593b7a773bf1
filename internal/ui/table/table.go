package table

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/babarot/saferm/internal/core/types"
	"github.com/babarot/saferm/internal/trash"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gabriel-vasile/mimetype"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

type PrintOptions struct {
	// ShowRelativeTime shows "3 days ago" instead of the delete time
	ShowRelativeTime bool
	// ShowType adds a column with the detected content type
	ShowType bool
	// Now anchors relative times; zero means time.Now
	Now time.Time
}

var (
	headerColor  = tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiGreenColor}
	plainColor   = tablewriter.Colors{}
	expiredColor = tablewriter.Colors{tablewriter.FgRedColor}
	soonColor    = tablewriter.Colors{tablewriter.FgYellowColor}
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetBorder(false)
	t.SetHeaderLine(false)
	t.SetCenterSeparator("")
	t.SetColumnSeparator("")
	t.SetRowSeparator("")
	t.SetTablePadding("  ")
	t.SetNoWhiteSpace(true)
	if !color.NoColor {
		t.SetHeaderColor(lo.Times(len(header), func(int) tablewriter.Colors { return headerColor })...)
	}
	return t
}

// PrintListings writes listings in the order given, one row each
func PrintListings(w io.Writer, listings []trash.Listing, opts PrintOptions) {
	if len(listings) == 0 {
		fmt.Fprintln(w, "Trash is empty")
		return
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	header := []string{"ID", "Deleted At", "Expire", "Size"}
	if opts.ShowType {
		header = append(header, "Type")
	}
	header = append(header, "Original Path")
	t := newTable(w, header)

	for _, l := range listings {
		deleted := l.DeleteTime
		if opts.ShowRelativeTime && !l.Corrupt {
			deleted = humanize.RelTime(l.Deleted, now, "ago", "from now")
		}

		size := humanize.Bytes(uint64(l.Size))
		if l.Missing {
			size = "Missing"
		}

		path := l.OriginalPath
		if l.IsDir {
			path += "/"
		}

		row := []string{l.ID, deleted, l.Status, size}
		if opts.ShowType {
			row = append(row, contentType(l))
		}
		row = append(row, path)

		if color.NoColor {
			t.Append(row)
			continue
		}
		status := plainColor
		switch {
		case l.Corrupt, l.Expired:
			status = expiredColor
		case l.Remaining < 24*time.Hour:
			status = soonColor
		}
		colors := lo.Times(len(row), func(int) tablewriter.Colors { return plainColor })
		colors[2] = status
		t.Rich(row, colors)
	}
	t.Render()

	fmt.Fprintf(w, "\n%d item(s) in trash\n", len(listings))
}

// contentType names what is stored for l, e.g. "text/plain"
func contentType(l trash.Listing) string {
	if l.Missing {
		return "-"
	}
	fi, err := os.Lstat(l.TrashPath)
	switch {
	case err != nil:
		return "-"
	case fi.IsDir():
		return "directory"
	case fi.Mode()&os.ModeSymlink != 0:
		return "symlink"
	}
	mtype, err := mimetype.DetectFile(l.TrashPath)
	if err != nil {
		slog.Debug("cannot detect content type", "path", l.TrashPath, "error", err)
		return "-"
	}
	base, _, _ := strings.Cut(mtype.String(), ";")
	return base
}

// PrintExpireInfo writes the expiry details of a single entry
func PrintExpireInfo(w io.Writer, info trash.ExpireInfo) {
	bold := color.New(color.Bold).SprintfFunc()
	label := color.New(color.FgHiGreen).SprintfFunc()

	fmt.Fprintln(w, bold("=== Expire Info for '%s' ===", info.ID))
	fmt.Fprintf(w, "%s %s\n", label("Original Path:"), info.OriginalPath)
	fmt.Fprintf(w, "%s %s\n", label("Delete Time:"), info.DeleteTime.Format(types.TimeFormat))
	fmt.Fprintf(w, "%s %s\n", label("Expire Time:"), info.ExpireTime.Format(types.TimeFormat))
	if info.Expired() {
		fmt.Fprintf(w, "%s %s\n", label("Status:"), color.RedString(info.Status()))
	} else {
		fmt.Fprintln(w, info.Status())
	}
}
