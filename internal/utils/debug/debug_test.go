package debug

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	content := "DEBUG first\nINFO  second\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	follow := false
	var buf bytes.Buffer
	if err := Logs(&buf, Options{Path: path, Enabled: true, Follow: &follow}); err != nil {
		t.Fatalf("Logs() unexpected error: %v", err)
	}
	if got := buf.String(); got != content {
		t.Errorf("Logs() = %q, want %q", got, content)
	}
}

func TestLogsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	tests := []struct {
		name    string
		enabled bool
		want    string
	}{
		{name: "logging disabled", enabled: false, want: "not enabled"},
		{name: "nothing logged yet", enabled: true, want: "no log file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Logs(&bytes.Buffer{}, Options{Path: path, Enabled: tt.enabled})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Logs() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestTailConfig(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name       string
		opts       Options
		wantFollow bool
		wantEnd    bool
	}{
		{name: "dump", opts: Options{Follow: &no}, wantFollow: false},
		{name: "follow", opts: Options{Follow: &yes}, wantFollow: true},
		{name: "live follows without a terminal", opts: Options{Live: true, Follow: &no}, wantFollow: true, wantEnd: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tailConfig(tt.opts)
			if cfg.Follow != tt.wantFollow || cfg.ReOpen != tt.wantFollow {
				t.Errorf("Follow, ReOpen = %v, %v, want %v", cfg.Follow, cfg.ReOpen, tt.wantFollow)
			}
			atEnd := cfg.Location != nil && cfg.Location.Whence == io.SeekEnd
			if atEnd != tt.wantEnd {
				t.Errorf("starts at end = %v, want %v", atEnd, tt.wantEnd)
			}
		})
	}
}
