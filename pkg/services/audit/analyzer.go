// Package audit correlates per-compartment compute and block storage
// inventories into backup posture findings and rolls them up into a report.
// The whole package is pure computation over materialized snapshots: it
// performs no I/O and the same input always yields the same report.
package audit

import (
	"time"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

// ReportName tags every generated report.
const ReportName = "block_volume_backup_posture_audit"

// Settings contains the configurable thresholds for backup posture analysis.
type Settings struct {
	// MaxBackupAgeDays is the oldest a resource's most recent backup may be
	// before the resource is flagged STALE_BACKUP (default: 7).
	MaxBackupAgeDays int
}

// DefaultSettings returns the default configuration for backup posture
// analysis.
func DefaultSettings() Settings {
	return Settings{MaxBackupAgeDays: 7}
}

// Analyzer classifies volumes against the backup-recency policy. The
// threshold is fixed at construction.
type Analyzer struct {
	maxBackupAgeDays int
}

func NewAnalyzer(settings Settings) *Analyzer {
	return &Analyzer{maxBackupAgeDays: settings.MaxBackupAgeDays}
}

// Input is the fully collected snapshot an analysis run consumes.
type Input struct {
	Collected   []domain.CompartmentInventory
	Skipped     []domain.SkippedCompartment
	GeneratedAt time.Time
	Region      string
	TenancyOCID string
}

// Analyze produces the compliance report for one snapshot. Skipped
// compartments pass through verbatim and contribute to no counter.
func (a *Analyzer) Analyze(input Input) domain.Report {
	agg := newAggregator()
	var blockFindings, bootFindings []domain.Finding

	for _, inv := range input.Collected {
		blockIdx := newAttachmentIndex(inv.VolumeAttachments, inv.Instances)
		bootIdx := newAttachmentIndex(inv.BootVolumeAttachments, inv.Instances)
		latestByVolume := latestBackups(inv.VolumeBackups)
		latestByBootVolume := latestBackups(inv.BootVolumeBackups)

		cs := domain.CompartmentSummary{
			CompartmentID:   inv.Compartment.ID,
			CompartmentName: inv.Compartment.Name,
		}

		for _, v := range inv.Volumes {
			finding := a.classify(
				inv.Compartment,
				domain.KindBlockVolume,
				blockVolumeFacts(v),
				blockIdx.AttachedInstances(v.ID),
				resolved(latestByVolume, v.ID),
				input.GeneratedAt,
			)
			blockFindings = append(blockFindings, finding)
			agg.Add(finding)
			cs.BlockVolumeCount++
			if finding.ComplianceStatus != domain.StatusCompliant {
				cs.NonCompliantVolumeCount++
			}
		}

		for _, v := range inv.BootVolumes {
			finding := a.classify(
				inv.Compartment,
				domain.KindBootVolume,
				bootVolumeFacts(v),
				bootIdx.AttachedInstances(v.ID),
				resolved(latestByBootVolume, v.ID),
				input.GeneratedAt,
			)
			bootFindings = append(bootFindings, finding)
			agg.Add(finding)
			cs.BootVolumeCount++
			if finding.ComplianceStatus != domain.StatusCompliant {
				cs.NonCompliantVolumeCount++
			}
		}

		agg.AddCompartmentSummary(cs)
	}

	sortFindings(blockFindings)
	sortFindings(bootFindings)

	return domain.Report{
		Metadata: domain.Metadata{
			ReportName:       ReportName,
			GeneratedAt:      input.GeneratedAt.UTC(),
			Region:           input.Region,
			TenancyOCID:      input.TenancyOCID,
			MaxBackupAgeDays: a.maxBackupAgeDays,
		},
		Summary:             agg.Summary(len(input.Collected), len(input.Skipped)),
		Compartments:        agg.CompartmentSummaries(),
		SkippedCompartments: input.Skipped,
		Findings: domain.Findings{
			BlockVolumes: blockFindings,
			BootVolumes:  bootFindings,
		},
	}
}

func resolved(latest map[string]domain.Backup, resourceID string) *domain.Backup {
	b, ok := latest[resourceID]
	if !ok {
		return nil
	}
	return &b
}
