package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
	defaultHomeDirname      = ".safe-rm"

	trashDirname     = "trash"
	metadataFilename = "metadata.json"
)

var (
	// SAFERM_HOME holds the trash root and the metadata file
	SAFERM_HOME string

	SAFERM_CONFIG_PATH string

	SAFERM_LOG_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	Load()
}

// Load resolves all paths from the environment. It is called once at
// startup and again by tests that override HOME or the SAFERM_* variables.
func Load() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	SAFERM_HOME = os.Getenv("SAFERM_HOME")
	if SAFERM_HOME == "" {
		SAFERM_HOME = filepath.Join(homeDir, defaultHomeDirname)
	}

	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	SAFERM_CONFIG_PATH = os.Getenv("SAFERM_CONFIG_PATH")
	if SAFERM_CONFIG_PATH == "" {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			configDir = filepath.Join(homeDir, defaultXDGConfigDirname)
		}
		SAFERM_CONFIG_PATH = filepath.Join(configDir, "saferm", "config.yaml")
	}

	SAFERM_LOG_PATH = os.Getenv("SAFERM_LOG_PATH")
	if SAFERM_LOG_PATH == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			dataDir = filepath.Join(homeDir, defaultXDGDataDirname)
		}
		SAFERM_LOG_PATH = filepath.Join(dataDir, "saferm", "debug.log")
	}
}

// TrashDir returns the directory holding trashed content under home.
// An empty home means SAFERM_HOME.
func TrashDir(home string) string {
	if home == "" {
		home = SAFERM_HOME
	}
	return filepath.Join(home, trashDirname)
}

// MetadataPath returns the metadata file under home.
// An empty home means SAFERM_HOME.
func MetadataPath(home string) string {
	if home == "" {
		home = SAFERM_HOME
	}
	return filepath.Join(home, metadataFilename)
}
