package types

import (
	"testing"
	"time"
)

func TestExpiresAt(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		want    time.Time
		wantErr bool
	}{
		{
			name:  "seven days",
			entry: Entry{DeleteTime: "2024-05-01 10:00:00", ExpireDays: 7},
			want:  time.Date(2024, 5, 8, 10, 0, 0, 0, time.Local),
		},
		{
			name:  "zero days",
			entry: Entry{DeleteTime: "2024-05-01 10:00:00", ExpireDays: 0},
			want:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local),
		},
		{
			name:  "across month end",
			entry: Entry{DeleteTime: "2024-01-30 23:59:59", ExpireDays: 3},
			want:  time.Date(2024, 2, 2, 23, 59, 59, 0, time.Local),
		},
		{
			name:    "garbage",
			entry:   Entry{DeleteTime: "yesterday-ish", ExpireDays: 7},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.entry.ExpiresAt()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExpiresAt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ExpiresAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStoreEntriesFillID(t *testing.T) {
	s := Store{
		"a_1": {OriginalPath: "/tmp/a"},
		"b_2": {OriginalPath: "/tmp/b"},
	}

	for _, e := range s.Entries() {
		if s[e.ID].OriginalPath != e.OriginalPath {
			t.Errorf("entry %q has OriginalPath %q", e.ID, e.OriginalPath)
		}
	}

	e, ok := s.Get("a_1")
	if !ok || e.ID != "a_1" || e.Name() != "a" {
		t.Errorf("Get(a_1) = %+v, %v", e, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}
