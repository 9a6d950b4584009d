package domain

import "time"

// Compartment is an organizational scope a tenancy groups resources under.
type Compartment struct {
	ID   string
	Name string
}

// SkippedCompartment records a compartment that could not be collected,
// with the verbatim reason it was skipped.
type SkippedCompartment struct {
	CompartmentID string
	Reason        string
}

type ComputeInstance struct {
	ID          string
	DisplayName string
}

// AttachmentStateAttached is the only lifecycle state that denotes a
// currently mounted volume.
const AttachmentStateAttached = "ATTACHED"

// Attachment links a compute instance to a block or boot volume.
// VolumeID holds either a volume or boot volume OCID depending on which
// collection the record came from.
type Attachment struct {
	VolumeID       string
	InstanceID     string
	LifecycleState string
}

type SourceKind string

const (
	SourceVolume           SourceKind = "volume"
	SourceVolumeBackup     SourceKind = "volumeBackup"
	SourceBootVolume       SourceKind = "bootVolume"
	SourceBootVolumeBackup SourceKind = "bootVolumeBackup"
	SourceImage            SourceKind = "image"
	SourceOpaque           SourceKind = "opaque"
)

// SourceRef describes what a volume was created from. Unrecognized source
// details are preserved as SourceOpaque with the raw descriptor intact.
type SourceRef struct {
	Kind SourceKind
	ID   string
	Raw  string
}

// Tag returns the textual form rendered into findings.
func (s SourceRef) Tag() string {
	if s.Kind == SourceOpaque {
		return s.Raw
	}
	return string(s.Kind)
}

type Volume struct {
	ID                 string
	DisplayName        string
	AvailabilityDomain string
	SizeGB             *int64
	Source             *SourceRef
}

type BootVolume struct {
	ID                 string
	DisplayName        string
	AvailabilityDomain string
	SizeGB             *int64
	Source             *SourceRef
}

// Backup is a point-in-time copy of a volume or boot volume. ResourceID is
// the OCID of the backed-up resource; it is empty for orphaned backups whose
// source no longer exists.
type Backup struct {
	ID          string
	ResourceID  string
	TimeCreated time.Time
}

// CompartmentInventory is the fully materialized snapshot of one
// compartment's compute and block storage collections.
type CompartmentInventory struct {
	Compartment Compartment

	Instances             []ComputeInstance
	VolumeAttachments     []Attachment
	BootVolumeAttachments []Attachment

	Volumes           []Volume
	BootVolumes       []BootVolume
	VolumeBackups     []Backup
	BootVolumeBackups []Backup
}
