package audit

import (
	"sort"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

// UnknownInstance labels attachments whose instance id is missing and cannot
// be resolved to a display name.
const UnknownInstance = "UNKNOWN_INSTANCE"

// attachmentIndex maps a volume id to the labels of the instances it is
// currently attached to, scoped to one compartment.
type attachmentIndex struct {
	labels map[string][]string
}

// newAttachmentIndex builds the index from one compartment's attachment and
// instance collections. Only ATTACHED records with a volume reference
// contribute; an instance id that is not in the instance collection is used
// verbatim as its own label.
func newAttachmentIndex(attachments []domain.Attachment, instances []domain.ComputeInstance) *attachmentIndex {
	nameByID := make(map[string]string, len(instances))
	for _, inst := range instances {
		nameByID[inst.ID] = inst.DisplayName
	}

	idx := &attachmentIndex{labels: make(map[string][]string)}
	for _, att := range attachments {
		if att.LifecycleState != domain.AttachmentStateAttached || att.VolumeID == "" {
			continue
		}
		label := UnknownInstance
		if att.InstanceID != "" {
			label = att.InstanceID
			if name, ok := nameByID[att.InstanceID]; ok {
				label = name
			}
		}
		idx.labels[att.VolumeID] = append(idx.labels[att.VolumeID], label)
	}
	return idx
}

// AttachedInstances returns the sorted, deduplicated instance labels for a
// volume, or an empty slice when nothing is attached.
func (idx *attachmentIndex) AttachedInstances(volumeID string) []string {
	labels := idx.labels[volumeID]
	if len(labels) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
