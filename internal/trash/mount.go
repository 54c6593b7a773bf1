package trash

import (
	"log/slog"

	"github.com/moby/sys/mountinfo"
	"github.com/samber/lo"
)

// mountsUnder returns the mount points at or below dir. Trashing such a
// directory would copy whole file systems into the trash. Platforms that
// cannot list mounts report none.
func mountsUnder(dir string) []string {
	mounts, err := mountinfo.GetMounts(mountinfo.PrefixFilter(dir))
	if err != nil {
		slog.Debug("cannot read mount info", "dir", dir, "error", err)
		return nil
	}
	return lo.Uniq(lo.Map(mounts, func(m *mountinfo.Info, _ int) string {
		return m.Mountpoint
	}))
}
