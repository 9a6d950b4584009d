package audit

import (
	"sort"
	"strings"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

// statusPriority ranks findings for display: missing backups first, stale
// backups next, compliant last. Anything outside the known statuses is a
// contract violation and sinks below all valid entries.
func statusPriority(s domain.ComplianceStatus) int {
	switch s {
	case domain.StatusNoBackup:
		return 0
	case domain.StatusStaleBackup:
		return 1
	case domain.StatusCompliant:
		return 2
	default:
		return 9
	}
}

// sortFindings orders findings by (status priority, compartment name,
// resource name), names compared case-insensitively.
func sortFindings(findings []domain.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		pi, pj := statusPriority(findings[i].ComplianceStatus), statusPriority(findings[j].ComplianceStatus)
		if pi != pj {
			return pi < pj
		}
		ci, cj := strings.ToLower(findings[i].CompartmentName), strings.ToLower(findings[j].CompartmentName)
		if ci != cj {
			return ci < cj
		}
		return strings.ToLower(findings[i].ResourceName) < strings.ToLower(findings[j].ResourceName)
	})
}

// TopNonCompliant returns the non-compliant block findings followed by the
// non-compliant boot findings, each keeping its display order, truncated to
// limit entries. It serves rendering surfaces only; the structured findings
// lists stay separate per kind.
func TopNonCompliant(blockFindings, bootFindings []domain.Finding, limit int) []domain.Finding {
	if limit <= 0 {
		return []domain.Finding{}
	}
	out := make([]domain.Finding, 0, limit)
	for _, findings := range [][]domain.Finding{blockFindings, bootFindings} {
		for _, f := range findings {
			if f.ComplianceStatus == domain.StatusCompliant {
				continue
			}
			if len(out) == limit {
				return out
			}
			out = append(out, f)
		}
	}
	return out
}
