package audit

import "github.com/de-tools/backup-atlas/pkg/models/domain"

// latestBackups keeps, per resource id, the backup with the greatest
// creation time. Backups without a resource id are orphaned and ignored.
// Two backups with an identical creation time are tie-broken by the
// lexicographically greatest backup id, so the winner never depends on
// input order.
func latestBackups(backups []domain.Backup) map[string]domain.Backup {
	latest := make(map[string]domain.Backup)
	for _, b := range backups {
		if b.ResourceID == "" {
			continue
		}
		current, ok := latest[b.ResourceID]
		if !ok || newerBackup(b, current) {
			latest[b.ResourceID] = b
		}
	}
	return latest
}

func newerBackup(candidate, current domain.Backup) bool {
	if candidate.TimeCreated.Equal(current.TimeCreated) {
		return candidate.ID > current.ID
	}
	return candidate.TimeCreated.After(current.TimeCreated)
}
