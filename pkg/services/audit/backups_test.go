package audit

import (
	"testing"
	"time"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestLatestBackups(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("keeps the most recent backup per resource", func(t *testing.T) {
		backups := []domain.Backup{
			{ID: "bk-old", ResourceID: "vol-1", TimeCreated: base.AddDate(0, 0, -10)},
			{ID: "bk-new", ResourceID: "vol-1", TimeCreated: base.AddDate(0, 0, -1)},
			{ID: "bk-other", ResourceID: "vol-2", TimeCreated: base.AddDate(0, 0, -3)},
		}

		latest := latestBackups(backups)

		assert.Equal(t, "bk-new", latest["vol-1"].ID)
		assert.Equal(t, "bk-other", latest["vol-2"].ID)
	})

	t.Run("orphaned backups are ignored", func(t *testing.T) {
		backups := []domain.Backup{
			{ID: "bk-orphan", ResourceID: "", TimeCreated: base},
		}

		latest := latestBackups(backups)

		assert.Empty(t, latest)
	})

	t.Run("identical timestamps tie-break on greatest backup id", func(t *testing.T) {
		forward := []domain.Backup{
			{ID: "bk-aaa", ResourceID: "vol-1", TimeCreated: base},
			{ID: "bk-zzz", ResourceID: "vol-1", TimeCreated: base},
		}
		reversed := []domain.Backup{forward[1], forward[0]}

		assert.Equal(t, "bk-zzz", latestBackups(forward)["vol-1"].ID)
		assert.Equal(t, "bk-zzz", latestBackups(reversed)["vol-1"].ID)
	})

	t.Run("tie-break only applies on equal timestamps", func(t *testing.T) {
		backups := []domain.Backup{
			{ID: "bk-zzz", ResourceID: "vol-1", TimeCreated: base.AddDate(0, 0, -2)},
			{ID: "bk-aaa", ResourceID: "vol-1", TimeCreated: base},
		}

		assert.Equal(t, "bk-aaa", latestBackups(backups)["vol-1"].ID)
	})
}
