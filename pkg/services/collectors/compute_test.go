package collectors

import (
	"context"
	"testing"

	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

type MockComputeAPI struct {
	mock.Mock
}

func (m *MockComputeAPI) ListInstances(ctx context.Context, request core.ListInstancesRequest) (core.ListInstancesResponse, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(core.ListInstancesResponse), args.Error(1)
}

func (m *MockComputeAPI) ListVolumeAttachments(ctx context.Context, request core.ListVolumeAttachmentsRequest) (core.ListVolumeAttachmentsResponse, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(core.ListVolumeAttachmentsResponse), args.Error(1)
}

func (m *MockComputeAPI) ListBootVolumeAttachments(ctx context.Context, request core.ListBootVolumeAttachmentsRequest) (core.ListBootVolumeAttachmentsResponse, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(core.ListBootVolumeAttachmentsResponse), args.Error(1)
}

func TestComputeCollector(t *testing.T) {
	ctx := context.Background()
	compartmentID := "ocid1.compartment.oc1..prod"

	t.Run("maps instances across pages", func(t *testing.T) {
		api := new(MockComputeAPI)
		api.On("ListInstances", ctx, mock.MatchedBy(func(req core.ListInstancesRequest) bool {
			return req.Page == nil
		})).Return(core.ListInstancesResponse{
			Items:       []core.Instance{{Id: strPtr("i-1"), DisplayName: strPtr("web-01")}},
			OpcNextPage: strPtr("next"),
		}, nil)
		api.On("ListInstances", ctx, mock.MatchedBy(func(req core.ListInstancesRequest) bool {
			return req.Page != nil
		})).Return(core.ListInstancesResponse{
			Items: []core.Instance{{Id: strPtr("i-2"), DisplayName: strPtr("web-02")}},
		}, nil)

		collector := NewComputeCollector(api)
		instances, err := collector.ListInstances(ctx, compartmentID)

		require.NoError(t, err)
		assert.Equal(t, []domain.ComputeInstance{
			{ID: "i-1", DisplayName: "web-01"},
			{ID: "i-2", DisplayName: "web-02"},
		}, instances)
	})

	t.Run("maps polymorphic volume attachments", func(t *testing.T) {
		api := new(MockComputeAPI)
		api.On("ListVolumeAttachments", ctx, mock.Anything).Return(core.ListVolumeAttachmentsResponse{
			Items: []core.VolumeAttachment{
				core.IScsiVolumeAttachment{
					VolumeId:       strPtr("vol-1"),
					InstanceId:     strPtr("i-1"),
					LifecycleState: core.VolumeAttachmentLifecycleStateAttached,
				},
			},
		}, nil)

		collector := NewComputeCollector(api)
		attachments, err := collector.ListVolumeAttachments(ctx, compartmentID)

		require.NoError(t, err)
		assert.Equal(t, []domain.Attachment{
			{VolumeID: "vol-1", InstanceID: "i-1", LifecycleState: "ATTACHED"},
		}, attachments)
	})

	t.Run("boot volume attachments iterate availability domains", func(t *testing.T) {
		api := new(MockComputeAPI)
		for _, ad := range []string{"AD-1", "AD-2"} {
			ad := ad
			api.On("ListBootVolumeAttachments", ctx, mock.MatchedBy(func(req core.ListBootVolumeAttachmentsRequest) bool {
				return *req.AvailabilityDomain == ad
			})).Return(core.ListBootVolumeAttachmentsResponse{
				Items: []core.BootVolumeAttachment{{
					BootVolumeId:   strPtr("boot-" + ad),
					InstanceId:     strPtr("i-1"),
					LifecycleState: core.BootVolumeAttachmentLifecycleStateAttached,
				}},
			}, nil)
		}

		collector := NewComputeCollector(api)
		attachments, err := collector.ListBootVolumeAttachments(ctx, compartmentID, []string{"AD-1", "AD-2"})

		require.NoError(t, err)
		require.Len(t, attachments, 2)
		assert.Equal(t, "boot-AD-1", attachments[0].VolumeID)
		assert.Equal(t, "boot-AD-2", attachments[1].VolumeID)
		api.AssertExpectations(t)
	})
}
