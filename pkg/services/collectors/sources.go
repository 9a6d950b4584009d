package collectors

import (
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/core"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

// volumeSourceRef maps the SDK's polymorphic volume source details onto the
// typed domain variant. Unknown concrete types degrade to an opaque
// descriptor that keeps the raw value for downstream tooling.
func volumeSourceRef(details core.VolumeSourceDetails) *domain.SourceRef {
	switch src := details.(type) {
	case nil:
		return nil
	case core.VolumeSourceFromVolumeDetails:
		return &domain.SourceRef{Kind: domain.SourceVolume, ID: deref(src.Id)}
	case core.VolumeSourceFromVolumeBackupDetails:
		return &domain.SourceRef{Kind: domain.SourceVolumeBackup, ID: deref(src.Id)}
	default:
		return &domain.SourceRef{Kind: domain.SourceOpaque, Raw: fmt.Sprintf("%v", details)}
	}
}

func bootVolumeSourceRef(details core.BootVolumeSourceDetails) *domain.SourceRef {
	switch src := details.(type) {
	case nil:
		return nil
	case core.BootVolumeSourceFromBootVolumeDetails:
		return &domain.SourceRef{Kind: domain.SourceBootVolume, ID: deref(src.Id)}
	case core.BootVolumeSourceFromBootVolumeBackupDetails:
		return &domain.SourceRef{Kind: domain.SourceBootVolumeBackup, ID: deref(src.Id)}
	default:
		return &domain.SourceRef{Kind: domain.SourceOpaque, Raw: fmt.Sprintf("%v", details)}
	}
}
