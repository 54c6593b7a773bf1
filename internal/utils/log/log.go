package log

import (
	"log/slog"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var (
	defaultStylesOnce sync.Once
	defaultStyles     *Styles
)

func initializeStyles() *Styles {
	styles := charmlog.DefaultStyles()
	for _, ls := range levelStyles {
		levelStr := strings.ToUpper(ls.level.String())
		if len(levelStr) < levelWidth {
			levelStr += strings.Repeat(" ", levelWidth-len(levelStr))
		}
		styles.Levels[ls.level] = ls.style.SetString(levelStr)
	}
	return styles
}

// DefaultStyles returns the level styles shared by every logger
func DefaultStyles() *Styles {
	defaultStylesOnce.Do(func() {
		defaultStyles = initializeStyles()
	})
	return defaultStyles
}

// New creates a slog logger backed by a charmbracelet/log handler
func New(opts ...Option) *slog.Logger {
	o := DefaultOptions()
	o.Apply(opts...)

	handler := charmlog.NewWithOptions(o.Writer, o.Options)
	handler.SetStyles(o.Styles)
	if len(o.Attrs) > 0 {
		handler = handler.With(o.Attrs...)
	}

	logger := slog.New(handler)
	if o.Default {
		charmlog.SetDefault(handler)
		slog.SetDefault(logger)
	}

	return logger
}
