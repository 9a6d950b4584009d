package domain

import "time"

type ComplianceStatus string

const (
	StatusCompliant   ComplianceStatus = "COMPLIANT"
	StatusStaleBackup ComplianceStatus = "STALE_BACKUP"
	StatusNoBackup    ComplianceStatus = "NO_BACKUP"
)

type ResourceKind string

const (
	KindBlockVolume ResourceKind = "BLOCK_VOLUME"
	KindBootVolume  ResourceKind = "BOOT_VOLUME"
)

// UnknownAD labels findings whose source resource carries no availability
// domain.
const UnknownAD = "UNKNOWN_AD"

// Finding is the per-volume audit result. BackupAgeDays, BackupOCID and
// LatestBackupTime are nil exactly when ComplianceStatus is NO_BACKUP.
type Finding struct {
	CompartmentID      string
	CompartmentName    string
	ResourceKind       ResourceKind
	ResourceID         string
	ResourceName       string
	AvailabilityDomain string
	SizeGB             *int64
	SourceType         *string
	AttachedInstances  []string
	BackupOCID         *string
	LatestBackupTime   *time.Time
	BackupAgeDays      *float64
	ComplianceStatus   ComplianceStatus
}

type CompartmentSummary struct {
	CompartmentID           string
	CompartmentName         string
	BlockVolumeCount        int
	BootVolumeCount         int
	NonCompliantVolumeCount int
}

// ADSummary holds the per-availability-domain volume counters. The report
// carries these as a slice sorted by name so every rendering iterates them
// in the same order.
type ADSummary struct {
	Name         string
	Total        int
	NonCompliant int
}

type Summary struct {
	ScannedCompartmentCount int
	SkippedCompartmentCount int
	TotalVolumesAnalyzed    int
	CompliantCount          int
	StaleBackupCount        int
	NoBackupCount           int
	NonCompliantCount       int
	AvailabilityDomains     []ADSummary
}

type Metadata struct {
	ReportName       string
	GeneratedAt      time.Time
	Region           string
	TenancyOCID      string
	MaxBackupAgeDays int
}

type Findings struct {
	BlockVolumes []Finding
	BootVolumes  []Finding
}

type Report struct {
	Metadata            Metadata
	Summary             Summary
	Compartments        []CompartmentSummary
	SkippedCompartments []SkippedCompartment
	Findings            Findings
}
