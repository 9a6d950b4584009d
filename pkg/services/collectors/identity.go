package collectors

import (
	"context"
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/identity"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

type identityAPI interface {
	GetCompartment(ctx context.Context, request identity.GetCompartmentRequest) (identity.GetCompartmentResponse, error)
	ListCompartments(ctx context.Context, request identity.ListCompartmentsRequest) (identity.ListCompartmentsResponse, error)
	ListAvailabilityDomains(ctx context.Context, request identity.ListAvailabilityDomainsRequest) (identity.ListAvailabilityDomainsResponse, error)
}

// IdentityCollector enumerates the compartments and availability domains in
// scope for an audit run.
type IdentityCollector struct {
	api identityAPI
}

func NewIdentityCollector(api identityAPI) *IdentityCollector {
	return &IdentityCollector{api: api}
}

// ListCompartments returns the root compartment followed by every ACTIVE,
// accessible compartment under it, deduplicated by OCID. rootOCID falls back
// to the tenancy when empty; includeSubcompartments controls whether the
// whole subtree or only direct children are scanned.
func (c *IdentityCollector) ListCompartments(
	ctx context.Context,
	tenancyOCID, rootOCID string,
	includeSubcompartments bool,
) ([]domain.Compartment, error) {
	root := rootOCID
	if root == "" {
		root = tenancyOCID
	}

	rootResp, err := c.api.GetCompartment(ctx, identity.GetCompartmentRequest{
		CompartmentId: common.String(root),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root compartment %s: %w", root, err)
	}

	compartments := []domain.Compartment{{
		ID:   deref(rootResp.Id),
		Name: deref(rootResp.Name),
	}}
	seen := map[string]struct{}{compartments[0].ID: {}}

	var page *string
	for {
		resp, err := c.api.ListCompartments(ctx, identity.ListCompartmentsRequest{
			CompartmentId:          common.String(root),
			CompartmentIdInSubtree: common.Bool(includeSubcompartments),
			AccessLevel:            identity.ListCompartmentsAccessLevelAccessible,
			LifecycleState:         identity.CompartmentLifecycleStateActive,
			Page:                   page,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list compartments: %w", err)
		}
		for _, item := range resp.Items {
			id := deref(item.Id)
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			compartments = append(compartments, domain.Compartment{
				ID:   id,
				Name: deref(item.Name),
			})
		}
		if resp.OpcNextPage == nil {
			break
		}
		page = resp.OpcNextPage
	}

	return compartments, nil
}

// ListAvailabilityDomains returns the AD names visible to a compartment.
func (c *IdentityCollector) ListAvailabilityDomains(ctx context.Context, compartmentID string) ([]string, error) {
	resp, err := c.api.ListAvailabilityDomains(ctx, identity.ListAvailabilityDomainsRequest{
		CompartmentId: common.String(compartmentID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list availability domains: %w", err)
	}
	ads := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		ads = append(ads, deref(item.Name))
	}
	return ads, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
