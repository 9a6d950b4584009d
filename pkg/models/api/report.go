package api

import (
	"time"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

// Report is the wire form of an audit report. Field names and nesting match
// the persisted JSON artifact; optional values are pointers so absent data
// renders as null.
type Report struct {
	Metadata            Metadata             `json:"metadata"`
	Summary             Summary              `json:"summary"`
	Compartments        []CompartmentSummary `json:"compartments"`
	SkippedCompartments []SkippedCompartment `json:"skipped_compartments"`
	Findings            Findings             `json:"findings"`
}

type Metadata struct {
	ReportName       string `json:"report_name"`
	GeneratedAtUTC   string `json:"generated_at_utc"`
	Region           string `json:"region"`
	TenancyOCID      string `json:"tenancy_ocid"`
	MaxBackupAgeDays int    `json:"max_backup_age_days"`
}

type ADCounters struct {
	Total        int `json:"total"`
	NonCompliant int `json:"non_compliant"`
}

type Summary struct {
	ScannedCompartmentCount   int                   `json:"scanned_compartment_count"`
	SkippedCompartmentCount   int                   `json:"skipped_compartment_count"`
	TotalVolumesAnalyzed      int                   `json:"total_volumes_analyzed"`
	CompliantCount            int                   `json:"compliant_count"`
	StaleBackupCount          int                   `json:"stale_backup_count"`
	NoBackupCount             int                   `json:"no_backup_count"`
	NonCompliantCount         int                   `json:"non_compliant_count"`
	AvailabilityDomainSummary map[string]ADCounters `json:"availability_domain_summary"`
}

type CompartmentSummary struct {
	CompartmentID           string `json:"compartment_id"`
	CompartmentName         string `json:"compartment_name"`
	BlockVolumeCount        int    `json:"block_volume_count"`
	BootVolumeCount         int    `json:"boot_volume_count"`
	NonCompliantVolumeCount int    `json:"non_compliant_volume_count"`
}

type SkippedCompartment struct {
	CompartmentID string `json:"compartment_id"`
	Reason        string `json:"reason"`
}

type Findings struct {
	BlockVolumes []Finding `json:"block_volumes"`
	BootVolumes  []Finding `json:"boot_volumes"`
}

type Finding struct {
	CompartmentID      string   `json:"compartment_id"`
	CompartmentName    string   `json:"compartment_name"`
	ResourceKind       string   `json:"resource_kind"`
	ResourceID         string   `json:"resource_id"`
	ResourceName       *string  `json:"resource_name"`
	AvailabilityDomain string   `json:"availability_domain"`
	SizeGB             *int64   `json:"size_gb"`
	SourceType         *string  `json:"source_type"`
	AttachedInstances  []string `json:"attached_instances"`
	BackupOCID         *string  `json:"backup_ocid"`
	LatestBackupTime   *string  `json:"latest_backup_time_utc"`
	BackupAgeDays      *float64 `json:"backup_age_days"`
	ComplianceStatus   string   `json:"compliance_status"`
}

// ReportFromDomain converts an assembled report into its wire form.
func ReportFromDomain(r domain.Report) Report {
	out := Report{
		Metadata: Metadata{
			ReportName:       r.Metadata.ReportName,
			GeneratedAtUTC:   r.Metadata.GeneratedAt.UTC().Format(time.RFC3339),
			Region:           r.Metadata.Region,
			TenancyOCID:      r.Metadata.TenancyOCID,
			MaxBackupAgeDays: r.Metadata.MaxBackupAgeDays,
		},
		Summary: Summary{
			ScannedCompartmentCount:   r.Summary.ScannedCompartmentCount,
			SkippedCompartmentCount:   r.Summary.SkippedCompartmentCount,
			TotalVolumesAnalyzed:      r.Summary.TotalVolumesAnalyzed,
			CompliantCount:            r.Summary.CompliantCount,
			StaleBackupCount:          r.Summary.StaleBackupCount,
			NoBackupCount:             r.Summary.NoBackupCount,
			NonCompliantCount:         r.Summary.NonCompliantCount,
			AvailabilityDomainSummary: make(map[string]ADCounters, len(r.Summary.AvailabilityDomains)),
		},
		Compartments:        make([]CompartmentSummary, 0, len(r.Compartments)),
		SkippedCompartments: make([]SkippedCompartment, 0, len(r.SkippedCompartments)),
		Findings: Findings{
			BlockVolumes: findingsFromDomain(r.Findings.BlockVolumes),
			BootVolumes:  findingsFromDomain(r.Findings.BootVolumes),
		},
	}

	for _, ad := range r.Summary.AvailabilityDomains {
		out.Summary.AvailabilityDomainSummary[ad.Name] = ADCounters{
			Total:        ad.Total,
			NonCompliant: ad.NonCompliant,
		}
	}
	for _, c := range r.Compartments {
		out.Compartments = append(out.Compartments, CompartmentSummary{
			CompartmentID:           c.CompartmentID,
			CompartmentName:         c.CompartmentName,
			BlockVolumeCount:        c.BlockVolumeCount,
			BootVolumeCount:         c.BootVolumeCount,
			NonCompliantVolumeCount: c.NonCompliantVolumeCount,
		})
	}
	for _, s := range r.SkippedCompartments {
		out.SkippedCompartments = append(out.SkippedCompartments, SkippedCompartment{
			CompartmentID: s.CompartmentID,
			Reason:        s.Reason,
		})
	}

	return out
}

func findingsFromDomain(findings []domain.Finding) []Finding {
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		wire := Finding{
			CompartmentID:      f.CompartmentID,
			CompartmentName:    f.CompartmentName,
			ResourceKind:       string(f.ResourceKind),
			ResourceID:         f.ResourceID,
			AvailabilityDomain: f.AvailabilityDomain,
			SizeGB:             f.SizeGB,
			SourceType:         f.SourceType,
			AttachedInstances:  f.AttachedInstances,
			BackupOCID:         f.BackupOCID,
			BackupAgeDays:      f.BackupAgeDays,
			ComplianceStatus:   string(f.ComplianceStatus),
		}
		if f.ResourceName != "" {
			name := f.ResourceName
			wire.ResourceName = &name
		}
		if f.LatestBackupTime != nil {
			ts := f.LatestBackupTime.UTC().Format(time.RFC3339)
			wire.LatestBackupTime = &ts
		}
		if wire.AttachedInstances == nil {
			wire.AttachedInstances = []string{}
		}
		out = append(out, wire)
	}
	return out
}
