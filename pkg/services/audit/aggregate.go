package audit

import (
	"sort"
	"strings"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

type adCounters struct {
	total        int
	nonCompliant int
}

// aggregator folds findings into availability-domain, compartment and
// tenancy-wide counters. All counters are plain sums, so the final values do
// not depend on the order findings arrive in.
type aggregator struct {
	ads          map[string]*adCounters
	compartments []domain.CompartmentSummary

	compliant   int
	staleBackup int
	noBackup    int
}

func newAggregator() *aggregator {
	return &aggregator{ads: make(map[string]*adCounters)}
}

// Add folds one finding into the AD and tenancy counters.
func (g *aggregator) Add(f domain.Finding) {
	ad, ok := g.ads[f.AvailabilityDomain]
	if !ok {
		ad = &adCounters{}
		g.ads[f.AvailabilityDomain] = ad
	}
	ad.total++

	switch f.ComplianceStatus {
	case domain.StatusCompliant:
		g.compliant++
	case domain.StatusStaleBackup:
		g.staleBackup++
		ad.nonCompliant++
	default:
		g.noBackup++
		ad.nonCompliant++
	}
}

func (g *aggregator) AddCompartmentSummary(cs domain.CompartmentSummary) {
	g.compartments = append(g.compartments, cs)
}

// CompartmentSummaries returns the accumulated per-compartment counters
// sorted by compartment name, case-insensitively.
func (g *aggregator) CompartmentSummaries() []domain.CompartmentSummary {
	out := make([]domain.CompartmentSummary, len(g.compartments))
	copy(out, g.compartments)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].CompartmentName) < strings.ToLower(out[j].CompartmentName)
	})
	return out
}

// Summary finalizes the tenancy-wide counters. The AD counters are frozen
// into a slice sorted by name; the accumulator itself is not mutated again
// after this point.
func (g *aggregator) Summary(scannedCompartments, skippedCompartments int) domain.Summary {
	ads := make([]domain.ADSummary, 0, len(g.ads))
	for name, counters := range g.ads {
		ads = append(ads, domain.ADSummary{
			Name:         name,
			Total:        counters.total,
			NonCompliant: counters.nonCompliant,
		})
	}
	sort.Slice(ads, func(i, j int) bool { return ads[i].Name < ads[j].Name })

	return domain.Summary{
		ScannedCompartmentCount: scannedCompartments,
		SkippedCompartmentCount: skippedCompartments,
		TotalVolumesAnalyzed:    g.compliant + g.staleBackup + g.noBackup,
		CompliantCount:          g.compliant,
		StaleBackupCount:        g.staleBackup,
		NoBackupCount:           g.noBackup,
		NonCompliantCount:       g.staleBackup + g.noBackup,
		AvailabilityDomains:     ads,
	}
}
