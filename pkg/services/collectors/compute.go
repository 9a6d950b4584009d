package collectors

import (
	"context"
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

type computeAPI interface {
	ListInstances(ctx context.Context, request core.ListInstancesRequest) (core.ListInstancesResponse, error)
	ListVolumeAttachments(ctx context.Context, request core.ListVolumeAttachmentsRequest) (core.ListVolumeAttachmentsResponse, error)
	ListBootVolumeAttachments(ctx context.Context, request core.ListBootVolumeAttachmentsRequest) (core.ListBootVolumeAttachmentsResponse, error)
}

// ComputeCollector lists the instances and attachments of one compartment.
type ComputeCollector struct {
	api computeAPI
}

func NewComputeCollector(api computeAPI) *ComputeCollector {
	return &ComputeCollector{api: api}
}

func (c *ComputeCollector) ListInstances(ctx context.Context, compartmentID string) ([]domain.ComputeInstance, error) {
	var instances []domain.ComputeInstance
	var page *string
	for {
		resp, err := c.api.ListInstances(ctx, core.ListInstancesRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list instances: %w", err)
		}
		for _, item := range resp.Items {
			instances = append(instances, domain.ComputeInstance{
				ID:          deref(item.Id),
				DisplayName: deref(item.DisplayName),
			})
		}
		if resp.OpcNextPage == nil {
			break
		}
		page = resp.OpcNextPage
	}
	return instances, nil
}

func (c *ComputeCollector) ListVolumeAttachments(ctx context.Context, compartmentID string) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	var page *string
	for {
		resp, err := c.api.ListVolumeAttachments(ctx, core.ListVolumeAttachmentsRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list volume attachments: %w", err)
		}
		for _, item := range resp.Items {
			attachments = append(attachments, domain.Attachment{
				VolumeID:       deref(item.GetVolumeId()),
				InstanceID:     deref(item.GetInstanceId()),
				LifecycleState: string(item.GetLifecycleState()),
			})
		}
		if resp.OpcNextPage == nil {
			break
		}
		page = resp.OpcNextPage
	}
	return attachments, nil
}

// ListBootVolumeAttachments lists boot volume attachments across every
// availability domain of the compartment; the underlying API is AD-scoped.
func (c *ComputeCollector) ListBootVolumeAttachments(
	ctx context.Context,
	compartmentID string,
	availabilityDomains []string,
) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	for _, ad := range availabilityDomains {
		var page *string
		for {
			resp, err := c.api.ListBootVolumeAttachments(ctx, core.ListBootVolumeAttachmentsRequest{
				AvailabilityDomain: common.String(ad),
				CompartmentId:      common.String(compartmentID),
				Page:               page,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to list boot volume attachments in %s: %w", ad, err)
			}
			for _, item := range resp.Items {
				attachments = append(attachments, domain.Attachment{
					VolumeID:       deref(item.BootVolumeId),
					InstanceID:     deref(item.InstanceId),
					LifecycleState: string(item.LifecycleState),
				})
			}
			if resp.OpcNextPage == nil {
				break
			}
			page = resp.OpcNextPage
		}
	}
	return attachments, nil
}
