package collectors

import (
	"context"
	"fmt"
	"time"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

type blockStorageAPI interface {
	ListVolumes(ctx context.Context, request core.ListVolumesRequest) (core.ListVolumesResponse, error)
	ListBootVolumes(ctx context.Context, request core.ListBootVolumesRequest) (core.ListBootVolumesResponse, error)
	ListVolumeBackups(ctx context.Context, request core.ListVolumeBackupsRequest) (core.ListVolumeBackupsResponse, error)
	ListBootVolumeBackups(ctx context.Context, request core.ListBootVolumeBackupsRequest) (core.ListBootVolumeBackupsResponse, error)
}

// BlockStorageCollector lists the volumes, boot volumes and backups of one
// compartment.
type BlockStorageCollector struct {
	api blockStorageAPI
}

func NewBlockStorageCollector(api blockStorageAPI) *BlockStorageCollector {
	return &BlockStorageCollector{api: api}
}

func (c *BlockStorageCollector) ListVolumes(ctx context.Context, compartmentID string) ([]domain.Volume, error) {
	var volumes []domain.Volume
	var page *string
	for {
		resp, err := c.api.ListVolumes(ctx, core.ListVolumesRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list volumes: %w", err)
		}
		for _, item := range resp.Items {
			volumes = append(volumes, domain.Volume{
				ID:                 deref(item.Id),
				DisplayName:        deref(item.DisplayName),
				AvailabilityDomain: deref(item.AvailabilityDomain),
				SizeGB:             item.SizeInGBs,
				Source:             volumeSourceRef(item.SourceDetails),
			})
		}
		if resp.OpcNextPage == nil {
			break
		}
		page = resp.OpcNextPage
	}
	return volumes, nil
}

// ListBootVolumes lists boot volumes across every availability domain of the
// compartment; the underlying API is AD-scoped.
func (c *BlockStorageCollector) ListBootVolumes(
	ctx context.Context,
	compartmentID string,
	availabilityDomains []string,
) ([]domain.BootVolume, error) {
	var volumes []domain.BootVolume
	for _, ad := range availabilityDomains {
		var page *string
		for {
			resp, err := c.api.ListBootVolumes(ctx, core.ListBootVolumesRequest{
				AvailabilityDomain: common.String(ad),
				CompartmentId:      common.String(compartmentID),
				Page:               page,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to list boot volumes in %s: %w", ad, err)
			}
			for _, item := range resp.Items {
				volumes = append(volumes, domain.BootVolume{
					ID:                 deref(item.Id),
					DisplayName:        deref(item.DisplayName),
					AvailabilityDomain: deref(item.AvailabilityDomain),
					SizeGB:             item.SizeInGBs,
					Source:             bootVolumeSourceRef(item.SourceDetails),
				})
			}
			if resp.OpcNextPage == nil {
				break
			}
			page = resp.OpcNextPage
		}
	}
	return volumes, nil
}

func (c *BlockStorageCollector) ListVolumeBackups(ctx context.Context, compartmentID string) ([]domain.Backup, error) {
	var backups []domain.Backup
	var page *string
	for {
		resp, err := c.api.ListVolumeBackups(ctx, core.ListVolumeBackupsRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list volume backups: %w", err)
		}
		for _, item := range resp.Items {
			backups = append(backups, domain.Backup{
				ID:          deref(item.Id),
				ResourceID:  deref(item.VolumeId),
				TimeCreated: sdkTime(item.TimeCreated),
			})
		}
		if resp.OpcNextPage == nil {
			break
		}
		page = resp.OpcNextPage
	}
	return backups, nil
}

func (c *BlockStorageCollector) ListBootVolumeBackups(ctx context.Context, compartmentID string) ([]domain.Backup, error) {
	var backups []domain.Backup
	var page *string
	for {
		resp, err := c.api.ListBootVolumeBackups(ctx, core.ListBootVolumeBackupsRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list boot volume backups: %w", err)
		}
		for _, item := range resp.Items {
			backups = append(backups, domain.Backup{
				ID:          deref(item.Id),
				ResourceID:  deref(item.BootVolumeId),
				TimeCreated: sdkTime(item.TimeCreated),
			})
		}
		if resp.OpcNextPage == nil {
			break
		}
		page = resp.OpcNextPage
	}
	return backups, nil
}

func sdkTime(t *common.SDKTime) (out time.Time) {
	if t == nil {
		return out
	}
	return t.Time
}
