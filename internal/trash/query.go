package trash

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/babarot/saferm/internal/core/types"
	"github.com/babarot/saferm/internal/utils/duration"
	"github.com/babarot/saferm/internal/utils/fs"
)

// Listing is one entry as shown by list
type Listing struct {
	types.Entry

	Deleted   time.Time
	Remaining time.Duration
	Expired   bool
	Corrupt   bool
	Missing   bool
	Size      int64
	Status    string
}

func (l Listing) GetName() string         { return l.Name() }
func (l Listing) GetPath() string         { return l.TrashPath }
func (l Listing) GetDeletedAt() time.Time { return l.Deleted }
func (l Listing) GetSize() int64          { return l.Size }

// Status renders a remaining duration as list shows it. Anything under an
// hour that has not yet passed reads "<1 hour left" rather than "Expired",
// so list agrees with clean and expire-check, which treat an item as expired
// only once its expiry time is past.
func Status(remaining time.Duration) string {
	switch {
	case remaining < 0:
		return "Expired"
	case remaining >= duration.Day:
		return fmt.Sprintf("%d days left", remaining/duration.Day)
	case remaining >= time.Hour:
		return fmt.Sprintf("%d hours left", remaining/time.Hour)
	default:
		return "<1 hour left"
	}
}

func (m *Manager) listing(e types.Entry, now time.Time) Listing {
	l := Listing{Entry: e}

	deletedAt, err := e.DeletedAt()
	if err != nil {
		l.Corrupt = true
		l.Expired = true
		l.Status = "Corrupt"
	} else {
		l.Deleted = deletedAt
		l.Remaining = deletedAt.AddDate(0, 0, e.ExpireDays).Sub(now)
		l.Expired = l.Remaining < 0
		l.Status = Status(l.Remaining)
	}

	if !fs.Exists(e.TrashPath) {
		l.Missing = true
	} else if size, err := fs.DirSize(e.TrashPath); err == nil {
		l.Size = size
	}
	return l
}

// List yields the store's entries, newest first with corrupt entries last.
// With onlyExpired entries that have not expired yet are skipped. Each call
// reads the store afresh.
func (m *Manager) List(onlyExpired bool) iter.Seq[Listing] {
	return func(yield func(Listing) bool) {
		now := m.now()
		var listings []Listing
		for _, e := range m.store.Entries() {
			l := m.listing(e, now)
			if onlyExpired && !l.Expired {
				continue
			}
			listings = append(listings, l)
		}
		slices.SortFunc(listings, func(a, b Listing) int {
			if c := b.Deleted.Compare(a.Deleted); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})

		for _, l := range listings {
			if !yield(l) {
				return
			}
		}
	}
}

// ExpireInfo describes when an entry expires
type ExpireInfo struct {
	ID           string
	OriginalPath string
	DeleteTime   time.Time
	ExpireTime   time.Time
	Remaining    time.Duration
}

// Expired reports whether the expire time has passed
func (i ExpireInfo) Expired() bool {
	return i.Remaining < 0
}

// Status renders "Remaining Time: D days, H hours" or
// "Expired (N hours ago)"
func (i ExpireInfo) Status() string {
	if i.Expired() {
		return fmt.Sprintf("Expired (%d hours ago)", -i.Remaining/time.Hour)
	}
	days, hours := duration.Split(i.Remaining)
	return fmt.Sprintf("Remaining Time: %d days, %d hours", days, hours)
}

// ExpireCheck reports the expiry of a single entry
func (m *Manager) ExpireCheck(id string) (ExpireInfo, error) {
	e, ok := m.store.Get(id)
	if !ok {
		return ExpireInfo{}, newError("expire", id, ErrNotFound, nil)
	}

	deletedAt, err := e.DeletedAt()
	if err != nil {
		return ExpireInfo{}, newError("expire", id, ErrCorrupt, err)
	}
	expire := deletedAt.AddDate(0, 0, e.ExpireDays)

	return ExpireInfo{
		ID:           id,
		OriginalPath: e.OriginalPath,
		DeleteTime:   deletedAt,
		ExpireTime:   expire,
		Remaining:    expire.Sub(m.now()),
	}, nil
}
