package types

import (
	"path/filepath"
	"time"
)

// TimeFormat is the layout of Entry.DeleteTime, always local time
const TimeFormat = "2006-01-02 15:04:05"

// Entry is the recovery record of one trashed item
type Entry struct {
	// ID is the store key; it is not repeated inside the record
	ID           string `json:"-"`
	OriginalPath string `json:"original_path"`
	TrashPath    string `json:"trash_path"`
	// DeleteTime stays a string so a malformed value survives a load
	// and can be cleaned up instead of failing the whole store
	DeleteTime string `json:"delete_time"`
	ExpireDays int    `json:"expire_days"`
	IsDir      bool   `json:"is_dir"`
}

// Name returns the original base name of the entry
func (e Entry) Name() string {
	return filepath.Base(e.OriginalPath)
}

// DeletedAt parses DeleteTime in the local time zone
func (e Entry) DeletedAt() (time.Time, error) {
	return time.ParseInLocation(TimeFormat, e.DeleteTime, time.Local)
}

// ExpiresAt returns DeletedAt plus ExpireDays calendar days
func (e Entry) ExpiresAt() (time.Time, error) {
	t, err := e.DeletedAt()
	if err != nil {
		return time.Time{}, err
	}
	return t.AddDate(0, 0, e.ExpireDays), nil
}

// Store maps entry ids to entries
type Store map[string]Entry

// Get returns the entry for id with its ID field filled in
func (s Store) Get(id string) (Entry, bool) {
	e, ok := s[id]
	if ok {
		e.ID = id
	}
	return e, ok
}

// Entries returns every entry with its ID field filled in
func (s Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s))
	for id, e := range s {
		e.ID = id
		entries = append(entries, e)
	}
	return entries
}
