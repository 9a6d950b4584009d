package audit

import (
	"math"
	"time"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

const hoursPerDay = 24

// volumeFacts carries the classifier inputs shared by block and boot
// volumes.
type volumeFacts struct {
	ID                 string
	DisplayName        string
	AvailabilityDomain string
	SizeGB             *int64
	Source             *domain.SourceRef
}

func blockVolumeFacts(v domain.Volume) volumeFacts {
	return volumeFacts{
		ID:                 v.ID,
		DisplayName:        v.DisplayName,
		AvailabilityDomain: v.AvailabilityDomain,
		SizeGB:             v.SizeGB,
		Source:             v.Source,
	}
}

func bootVolumeFacts(v domain.BootVolume) volumeFacts {
	return volumeFacts{
		ID:                 v.ID,
		DisplayName:        v.DisplayName,
		AvailabilityDomain: v.AvailabilityDomain,
		SizeGB:             v.SizeGB,
		Source:             v.Source,
	}
}

// classify turns one volume, its attachment labels and its resolved latest
// backup into a finding. latest is nil when the resolver found no backup.
func (a *Analyzer) classify(
	compartment domain.Compartment,
	kind domain.ResourceKind,
	facts volumeFacts,
	attached []string,
	latest *domain.Backup,
	generatedAt time.Time,
) domain.Finding {
	finding := domain.Finding{
		CompartmentID:      compartment.ID,
		CompartmentName:    compartment.Name,
		ResourceKind:       kind,
		ResourceID:         facts.ID,
		ResourceName:       facts.DisplayName,
		AvailabilityDomain: facts.AvailabilityDomain,
		SizeGB:             facts.SizeGB,
		AttachedInstances:  attached,
		ComplianceStatus:   domain.StatusNoBackup,
	}
	if finding.AvailabilityDomain == "" {
		finding.AvailabilityDomain = domain.UnknownAD
	}
	if facts.Source != nil {
		tag := facts.Source.Tag()
		finding.SourceType = &tag
	}

	if latest == nil {
		return finding
	}

	backupTime := latest.TimeCreated.UTC()
	ageDays := roundDays(generatedAt.Sub(backupTime))

	finding.BackupOCID = &latest.ID
	finding.LatestBackupTime = &backupTime
	finding.BackupAgeDays = &ageDays
	if ageDays <= float64(a.maxBackupAgeDays) {
		finding.ComplianceStatus = domain.StatusCompliant
	} else {
		finding.ComplianceStatus = domain.StatusStaleBackup
	}
	return finding
}

// roundDays converts an age to days rounded to two decimal places.
func roundDays(age time.Duration) float64 {
	days := age.Hours() / hoursPerDay
	return math.Round(days*100) / 100
}
