// Package collectors wraps the OCI SDK clients behind narrow collectors that
// return fully materialized domain records. All pagination and SDK-type
// mapping happens here; the analysis core never sees SDK values.
package collectors

import (
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/identity"
	"github.com/oracle/oci-go-sdk/v65/objectstorage"

	"github.com/de-tools/backup-atlas/pkg/services/config"
)

// Clients bundles the OCI service clients an audit run needs, plus the
// resolved tenancy and region.
type Clients struct {
	Identity      identity.IdentityClient
	Compute       core.ComputeClient
	BlockStorage  core.BlockstorageClient
	ObjectStorage objectstorage.ObjectStorageClient

	TenancyOCID string
	Region      string
}

// NewClients builds all service clients from the OCI config file and profile
// named in cfg. A non-empty cfg.OCIRegion overrides the profile's region on
// every client.
func NewClients(cfg config.AppConfig) (*Clients, error) {
	provider := common.CustomProfileConfigProvider(cfg.OCIConfigFile, cfg.OCIConfigProfile)

	tenancy, err := provider.TenancyOCID()
	if err != nil {
		return nil, fmt.Errorf("failed to read tenancy from OCI config: %w", err)
	}
	region := cfg.OCIRegion
	if region == "" {
		if region, err = provider.Region(); err != nil {
			return nil, fmt.Errorf("failed to read region from OCI config: %w", err)
		}
	}

	identityClient, err := identity.NewIdentityClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity client: %w", err)
	}
	computeClient, err := core.NewComputeClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute client: %w", err)
	}
	blockStorageClient, err := core.NewBlockstorageClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create block storage client: %w", err)
	}
	objectStorageClient, err := objectstorage.NewObjectStorageClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	if cfg.OCIRegion != "" {
		identityClient.SetRegion(region)
		computeClient.SetRegion(region)
		blockStorageClient.SetRegion(region)
		objectStorageClient.SetRegion(region)
	}

	return &Clients{
		Identity:      identityClient,
		Compute:       computeClient,
		BlockStorage:  blockStorageClient,
		ObjectStorage: objectStorageClient,
		TenancyOCID:   tenancy,
		Region:        region,
	}, nil
}

// skipReason renders a collection failure into the verbatim reason recorded
// on a skipped compartment.
func skipReason(err error) string {
	if se, ok := common.IsServiceError(err); ok {
		return fmt.Sprintf("%d %s: %s", se.GetHTTPStatusCode(), se.GetCode(), se.GetMessage())
	}
	return err.Error()
}
