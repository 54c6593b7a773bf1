package log

import (
	charmlog "github.com/charmbracelet/log"
)

type (
	Level     = charmlog.Level
	Styles    = charmlog.Styles
	Formatter = charmlog.Formatter
)

const (
	DebugLevel = charmlog.DebugLevel
	InfoLevel  = charmlog.InfoLevel
	WarnLevel  = charmlog.WarnLevel
	ErrorLevel = charmlog.ErrorLevel
	FatalLevel = charmlog.FatalLevel
)

const (
	TextFormatter   = charmlog.TextFormatter
	JSONFormatter   = charmlog.JSONFormatter
	LogfmtFormatter = charmlog.LogfmtFormatter
)

// ParseLevel maps a config level name to a Level, defaulting to debug
func ParseLevel(s string) Level {
	l, err := charmlog.ParseLevel(s)
	if err != nil {
		return DebugLevel
	}
	return l
}

// ParseFormatter maps a config format name to a Formatter, defaulting to text
func ParseFormatter(s string) Formatter {
	switch s {
	case "json":
		return JSONFormatter
	case "logfmt":
		return LogfmtFormatter
	default:
		return TextFormatter
	}
}
