package trash

import (
	"log/slog"
	"time"

	"github.com/babarot/saferm/internal/core/types"
	"github.com/samber/lo"
)

// Reasons an entry was selected by Clean
const (
	ReasonExpired = "expired"
	ReasonCorrupt = "corrupt"
	ReasonAll     = "all"
)

// Cleaned is an entry dropped by Clean
type Cleaned struct {
	Entry  types.Entry
	Reason string
}

// Remaining returns the time left until e expires, negative once it has.
// An unparsable delete time is reported as ErrCorrupt.
func Remaining(e types.Entry, now time.Time) (time.Duration, error) {
	expire, err := e.ExpiresAt()
	if err != nil {
		return 0, newError("expire", e.ID, ErrCorrupt, err)
	}
	return expire.Sub(now), nil
}

// IsExpired reports whether now is strictly past the expire time of e
func IsExpired(e types.Entry, now time.Time) (bool, error) {
	remaining, err := Remaining(e, now)
	if err != nil {
		return false, err
	}
	return remaining < 0, nil
}

// Clean drops expired and corrupt entries, or every entry when all is set,
// removing their trash content on a best effort basis. Entries are dropped
// whether or not their content could be removed.
func (m *Manager) Clean(all bool) []Cleaned {
	now := m.now()

	var selected []Cleaned
	for _, e := range m.store.Entries() {
		if all {
			selected = append(selected, Cleaned{Entry: e, Reason: ReasonAll})
			continue
		}
		expired, err := IsExpired(e, now)
		switch {
		case err != nil:
			slog.Warn("invalid delete time, cleaning entry", "id", e.ID, "delete_time", e.DeleteTime)
			selected = append(selected, Cleaned{Entry: e, Reason: ReasonCorrupt})
		case expired:
			selected = append(selected, Cleaned{Entry: e, Reason: ReasonExpired})
		}
	}

	m.purgeAll(lo.Map(selected, func(c Cleaned, _ int) types.Entry { return c.Entry }))
	for _, c := range selected {
		delete(m.store, c.Entry.ID)
	}

	if len(selected) > 0 {
		slog.Info("cleaned trash", "entries", len(selected), "all", all,
			"ids", lo.Map(selected, func(c Cleaned, _ int) string { return c.Entry.ID }))
	}
	return selected
}
