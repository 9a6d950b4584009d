package collectors

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

// defaultConcurrency bounds how many compartments are collected at once.
const defaultConcurrency = 4

// Collector gathers the full inventory snapshot for a set of compartments.
type Collector struct {
	identity     *IdentityCollector
	compute      *ComputeCollector
	blockStorage *BlockStorageCollector
	concurrency  int
}

func NewCollector(identity *IdentityCollector, compute *ComputeCollector, blockStorage *BlockStorageCollector) *Collector {
	return &Collector{
		identity:     identity,
		compute:      compute,
		blockStorage: blockStorage,
		concurrency:  defaultConcurrency,
	}
}

// CollectCompartment materializes every collection for one compartment.
func (c *Collector) CollectCompartment(ctx context.Context, compartment domain.Compartment) (domain.CompartmentInventory, error) {
	inv := domain.CompartmentInventory{Compartment: compartment}

	ads, err := c.identity.ListAvailabilityDomains(ctx, compartment.ID)
	if err != nil {
		return inv, err
	}

	if inv.Instances, err = c.compute.ListInstances(ctx, compartment.ID); err != nil {
		return inv, err
	}
	if inv.VolumeAttachments, err = c.compute.ListVolumeAttachments(ctx, compartment.ID); err != nil {
		return inv, err
	}
	if inv.BootVolumeAttachments, err = c.compute.ListBootVolumeAttachments(ctx, compartment.ID, ads); err != nil {
		return inv, err
	}
	if inv.Volumes, err = c.blockStorage.ListVolumes(ctx, compartment.ID); err != nil {
		return inv, err
	}
	if inv.BootVolumes, err = c.blockStorage.ListBootVolumes(ctx, compartment.ID, ads); err != nil {
		return inv, err
	}
	if inv.VolumeBackups, err = c.blockStorage.ListVolumeBackups(ctx, compartment.ID); err != nil {
		return inv, err
	}
	if inv.BootVolumeBackups, err = c.blockStorage.ListBootVolumeBackups(ctx, compartment.ID); err != nil {
		return inv, err
	}

	return inv, nil
}

// CollectAll collects every compartment with bounded parallelism. Results
// are buffered per compartment index and combined after the join, so the
// output order matches the input order exactly regardless of completion
// order. A compartment whose collection fails is skipped with its reason;
// it never fails the run.
func (c *Collector) CollectAll(ctx context.Context, compartments []domain.Compartment) ([]domain.CompartmentInventory, []domain.SkippedCompartment) {
	logger := zerolog.Ctx(ctx)

	type result struct {
		inv domain.CompartmentInventory
		err error
	}
	results := make([]result, len(compartments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, compartment := range compartments {
		i, compartment := i, compartment
		g.Go(func() error {
			logger.Info().
				Str("compartment", compartment.Name).
				Msgf("collecting compartment %d/%d", i+1, len(compartments))
			inv, err := c.CollectCompartment(gctx, compartment)
			results[i] = result{inv: inv, err: err}
			return nil
		})
	}
	_ = g.Wait()

	collected := make([]domain.CompartmentInventory, 0, len(compartments))
	var skipped []domain.SkippedCompartment
	for i, res := range results {
		if res.err != nil {
			reason := skipReason(res.err)
			skipped = append(skipped, domain.SkippedCompartment{
				CompartmentID: compartments[i].ID,
				Reason:        reason,
			})
			logger.Warn().
				Str("compartment", compartments[i].Name).
				Str("reason", reason).
				Msg("skipping compartment")
			continue
		}
		collected = append(collected, res.inv)
	}
	return collected, skipped
}
