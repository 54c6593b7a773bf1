package trash

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/babarot/saferm/internal/config"
	"github.com/docker/go-units"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
	"github.com/samber/lo"
)

// Filterable is what the list filters look at
type Filterable interface {
	// GetName returns the original base name
	GetName() string
	// GetPath returns the current path in trash
	GetPath() string
	// GetDeletedAt returns when the item was trashed
	GetDeletedAt() time.Time
	// GetSize returns the size of the trashed content in bytes
	GetSize() int64
}

// FilterOptions holds the list filters from the config file
type FilterOptions struct {
	Include config.IncludeConfig
	Exclude config.ExcludeConfig
	// Now anchors the include period; zero means time.Now
	Now time.Time
}

// NewFilterOptions builds FilterOptions from the list section of the config
func NewFilterOptions(cfg config.List) FilterOptions {
	return FilterOptions{Include: cfg.Include, Exclude: cfg.Exclude}
}

// Filter applies filtering rules to a slice of items
func Filter[T Filterable](items []T, opts FilterOptions) []T {
	items = rejectByNames(items, opts.Exclude.Files)
	items = rejectByPatterns(items, opts.Exclude.Patterns)
	items = rejectByGlobs(items, opts.Exclude.Globs)
	items = rejectBySize(items, opts.Exclude.Size)

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	return filterByPeriod(items, opts.Include.Period, now)
}

func rejectByNames[T Filterable](items []T, names []string) []T {
	if len(names) == 0 {
		return items
	}
	return lo.Reject(items, func(item T, _ int) bool {
		return lo.Contains(names, item.GetName())
	})
}

func rejectByPatterns[T Filterable](items []T, patterns []string) []T {
	if len(patterns) == 0 {
		return items
	}

	var res []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			slog.Warn("ignoring invalid exclude pattern", "pattern", p, "error", err)
			continue
		}
		res = append(res, re)
	}

	return lo.Reject(items, func(item T, _ int) bool {
		return lo.SomeBy(res, func(re *regexp.Regexp) bool {
			return re.MatchString(item.GetName())
		})
	})
}

func rejectByGlobs[T Filterable](items []T, patterns []string) []T {
	if len(patterns) == 0 {
		return items
	}

	var globs []glob.Glob
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			slog.Warn("ignoring invalid exclude glob", "glob", p, "error", err)
			continue
		}
		globs = append(globs, g)
	}

	return lo.Reject(items, func(item T, _ int) bool {
		return lo.SomeBy(globs, func(g glob.Glob) bool {
			return g.Match(item.GetName())
		})
	})
}

// rejectBySize drops items not strictly between size.Min and size.Max
func rejectBySize[T Filterable](items []T, size config.SizeConfig) []T {
	if size.Min == "" && size.Max == "" {
		return items
	}

	var min, max int64 = -1, -1
	if size.Min != "" {
		v, err := units.FromHumanSize(size.Min)
		if err != nil {
			slog.Error("failed to parse min size", "error", err)
		} else {
			min = v
		}
	}
	if size.Max != "" {
		v, err := units.FromHumanSize(size.Max)
		if err != nil {
			slog.Error("failed to parse max size", "error", err)
		} else {
			max = v
		}
	}

	return lo.Filter(items, func(item T, _ int) bool {
		s := item.GetSize()
		if min >= 0 && s <= min {
			return false
		}
		if max >= 0 && max <= s {
			return false
		}
		return true
	})
}

// filterByPeriod keeps items trashed within the last period days
func filterByPeriod[T Filterable](items []T, period int, now time.Time) []T {
	if period <= 0 {
		return items
	}

	d, err := duration.Parse(fmt.Sprintf("%d days", period))
	if err != nil {
		slog.Error("failed to parse duration", "error", err)
		return items
	}

	return lo.Filter(items, func(item T, _ int) bool {
		return now.Sub(item.GetDeletedAt()) < d
	})
}
