package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/backup-atlas/pkg/models/domain"
	"github.com/de-tools/backup-atlas/pkg/services/audit"
)

// topFindingsLimit caps the non-compliant findings table in the Markdown
// rendering; the JSON artifact always carries the full lists.
const topFindingsLimit = 50

const markdownTemplate = `# OCI Block Volume Backup Posture Audit

- Generated (UTC): ` + "`{{.GeneratedAtUTC}}`" + `
- Region: ` + "`{{.Region}}`" + `
- Tenancy: ` + "`{{.TenancyOCID}}`" + `
- Max Backup Age (days): ` + "`{{.MaxBackupAgeDays}}`" + `

## Summary

| Metric | Value |
|---|---:|
| Scanned Compartments | {{.Summary.ScannedCompartmentCount}} |
| Skipped Compartments | {{.Summary.SkippedCompartmentCount}} |
| Total Volumes Analyzed | {{.Summary.TotalVolumesAnalyzed}} |
| Compliant | {{.Summary.CompliantCount}} |
| Stale Backup | {{.Summary.StaleBackupCount}} |
| No Backup | {{.Summary.NoBackupCount}} |
| Non-Compliant | {{.Summary.NonCompliantCount}} |

## Availability Domain Summary

| Availability Domain | Total Volumes | Non-Compliant |
|---|---:|---:|
{{range .Summary.AvailabilityDomains}}| {{.Name}} | {{.Total}} | {{.NonCompliant}} |
{{end}}
{{- if .Skipped}}
## Skipped Compartments

| Compartment OCID | Reason |
|---|---|
{{range .Skipped}}| {{.CompartmentID}} | {{.Reason}} |
{{end}}
{{- end}}
## Non-Compliant Findings (Top {{.Limit}})

| Kind | Compartment | Volume | AD | Status | Backup Age (days) | Attached Instances |
|---|---|---|---|---|---:|---|
{{range .TopFindings}}| {{.ResourceKind}} | {{.CompartmentName}} | {{displayName .}} | {{.AvailabilityDomain}} | {{.ComplianceStatus}} | {{age .}} | {{attached .}} |
{{else}}| - | - | - | - | All resources compliant | - | - |
{{end}}
## Full Findings

- Full machine-readable findings are available in the JSON artifact.
`

type markdownView struct {
	GeneratedAtUTC   string
	Region           string
	TenancyOCID      string
	MaxBackupAgeDays int
	Summary          domain.Summary
	Skipped          []domain.SkippedCompartment
	TopFindings      []domain.Finding
	Limit            int
}

// WriteMarkdownReport writes the human-readable artifact, creating parent
// directories as needed.
func WriteMarkdownReport(report domain.Report, path string) error {
	rendered, err := RenderMarkdown(report)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write Markdown report: %w", err)
	}
	return nil
}

// RenderMarkdown renders the tabular report view.
func RenderMarkdown(report domain.Report) (string, error) {
	funcMap := template.FuncMap{
		"displayName": func(f domain.Finding) string {
			if f.ResourceName != "" {
				return f.ResourceName
			}
			return f.ResourceID
		},
		"age": func(f domain.Finding) string {
			if f.BackupAgeDays == nil {
				return "N/A"
			}
			return fmt.Sprintf("%.2f", *f.BackupAgeDays)
		},
		"attached": func(f domain.Finding) string {
			if len(f.AttachedInstances) == 0 {
				return "-"
			}
			return strings.Join(f.AttachedInstances, ", ")
		},
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(markdownTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	view := markdownView{
		GeneratedAtUTC:   report.Metadata.GeneratedAt.UTC().Format(time.RFC3339),
		Region:           report.Metadata.Region,
		TenancyOCID:      report.Metadata.TenancyOCID,
		MaxBackupAgeDays: report.Metadata.MaxBackupAgeDays,
		Summary:          report.Summary,
		Skipped:          report.SkippedCompartments,
		TopFindings:      audit.TopNonCompliant(report.Findings.BlockVolumes, report.Findings.BootVolumes, topFindingsLimit),
		Limit:            topFindingsLimit,
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return sb.String(), nil
}
