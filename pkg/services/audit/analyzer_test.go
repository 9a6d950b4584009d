package audit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/de-tools/backup-atlas/pkg/models/api"
	"github.com/de-tools/backup-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(generatedAt time.Time) Input {
	prod := domain.Compartment{ID: "ocid1.compartment.oc1..prod", Name: "prod"}
	dev := domain.Compartment{ID: "ocid1.compartment.oc1..dev", Name: "Dev"}
	empty := domain.Compartment{ID: "ocid1.compartment.oc1..empty", Name: "empty"}

	return Input{
		Collected: []domain.CompartmentInventory{
			{
				Compartment: prod,
				Instances: []domain.ComputeInstance{
					{ID: "ocid1.instance.oc1..web01", DisplayName: "web-01"},
					{ID: "ocid1.instance.oc1..web02", DisplayName: "web-02"},
				},
				VolumeAttachments: []domain.Attachment{
					{VolumeID: "vol-1", InstanceID: "ocid1.instance.oc1..web01", LifecycleState: "ATTACHED"},
				},
				BootVolumeAttachments: []domain.Attachment{
					{VolumeID: "boot-1", InstanceID: "ocid1.instance.oc1..web01", LifecycleState: "ATTACHED"},
					{VolumeID: "boot-1", InstanceID: "ocid1.instance.oc1..web02", LifecycleState: "DETACHED"},
				},
				Volumes: []domain.Volume{
					{ID: "vol-1", DisplayName: "fresh", AvailabilityDomain: "AD-1"},
					{ID: "vol-2", DisplayName: "stale", AvailabilityDomain: "AD-1"},
					{ID: "vol-3", DisplayName: "naked", AvailabilityDomain: "AD-2"},
				},
				BootVolumes: []domain.BootVolume{
					{ID: "boot-1", DisplayName: "web-01-boot", AvailabilityDomain: "AD-1"},
				},
				VolumeBackups: []domain.Backup{
					{ID: "bk-1-old", ResourceID: "vol-1", TimeCreated: generatedAt.AddDate(0, 0, -10)},
					{ID: "bk-1-new", ResourceID: "vol-1", TimeCreated: generatedAt.AddDate(0, 0, -1)},
					{ID: "bk-2", ResourceID: "vol-2", TimeCreated: generatedAt.AddDate(0, 0, -30)},
				},
				BootVolumeBackups: []domain.Backup{
					{ID: "bk-boot-1", ResourceID: "boot-1", TimeCreated: generatedAt.AddDate(0, 0, -2)},
				},
			},
			{
				Compartment: dev,
				Volumes: []domain.Volume{
					{ID: "vol-dev", DisplayName: "scratch"},
				},
			},
			{Compartment: empty},
		},
		Skipped: []domain.SkippedCompartment{
			{CompartmentID: "ocid1.compartment.oc1..locked", Reason: "404 NotAuthorizedOrNotFound: denied"},
		},
		GeneratedAt: generatedAt,
		Region:      "eu-frankfurt-1",
		TenancyOCID: "ocid1.tenancy.oc1..tenancy",
	}
}

func TestAnalyze(t *testing.T) {
	generatedAt := time.Date(2026, 8, 20, 6, 0, 0, 0, time.UTC)
	analyzer := NewAnalyzer(DefaultSettings())
	report := analyzer.Analyze(testSnapshot(generatedAt))

	t.Run("metadata", func(t *testing.T) {
		assert.Equal(t, ReportName, report.Metadata.ReportName)
		assert.Equal(t, "eu-frankfurt-1", report.Metadata.Region)
		assert.Equal(t, 7, report.Metadata.MaxBackupAgeDays)
		assert.Equal(t, generatedAt, report.Metadata.GeneratedAt)
	})

	t.Run("summary identities hold", func(t *testing.T) {
		s := report.Summary
		assert.Equal(t, 3, s.ScannedCompartmentCount)
		assert.Equal(t, 1, s.SkippedCompartmentCount)
		assert.Equal(t, 5, s.TotalVolumesAnalyzed)
		assert.Equal(t, s.StaleBackupCount+s.NoBackupCount, s.NonCompliantCount)
		assert.Equal(t, s.TotalVolumesAnalyzed-s.CompliantCount, s.NonCompliantCount)

		adTotal := 0
		for _, ad := range s.AvailabilityDomains {
			assert.GreaterOrEqual(t, ad.Total, ad.NonCompliant)
			adTotal += ad.Total
		}
		assert.Equal(t, s.TotalVolumesAnalyzed, adTotal)
	})

	t.Run("volume without backups has no age", func(t *testing.T) {
		naked := findByID(t, report.Findings.BlockVolumes, "vol-3")
		assert.Equal(t, domain.StatusNoBackup, naked.ComplianceStatus)
		assert.Nil(t, naked.BackupAgeDays)
		assert.Nil(t, naked.BackupOCID)
	})

	t.Run("resolver picks the newest backup", func(t *testing.T) {
		fresh := findByID(t, report.Findings.BlockVolumes, "vol-1")
		assert.Equal(t, domain.StatusCompliant, fresh.ComplianceStatus)
		require.NotNil(t, fresh.BackupOCID)
		assert.Equal(t, "bk-1-new", *fresh.BackupOCID)
		require.NotNil(t, fresh.BackupAgeDays)
		assert.InDelta(t, 1.00, *fresh.BackupAgeDays, 0.001)
	})

	t.Run("stale backup is flagged", func(t *testing.T) {
		stale := findByID(t, report.Findings.BlockVolumes, "vol-2")
		assert.Equal(t, domain.StatusStaleBackup, stale.ComplianceStatus)
		require.NotNil(t, stale.BackupAgeDays)
		assert.InDelta(t, 30.00, *stale.BackupAgeDays, 0.001)
	})

	t.Run("detached historical attachment does not label the boot volume", func(t *testing.T) {
		boot := findByID(t, report.Findings.BootVolumes, "boot-1")
		assert.Equal(t, []string{"web-01"}, boot.AttachedInstances)
	})

	t.Run("missing availability domain defaults", func(t *testing.T) {
		devVol := findByID(t, report.Findings.BlockVolumes, "vol-dev")
		assert.Equal(t, domain.UnknownAD, devVol.AvailabilityDomain)
	})

	t.Run("age is present iff a backup exists", func(t *testing.T) {
		all := append([]domain.Finding{}, report.Findings.BlockVolumes...)
		all = append(all, report.Findings.BootVolumes...)
		for _, f := range all {
			if f.ComplianceStatus == domain.StatusNoBackup {
				assert.Nil(t, f.BackupAgeDays, f.ResourceID)
			} else {
				assert.NotNil(t, f.BackupAgeDays, f.ResourceID)
			}
		}
	})

	t.Run("empty compartment yields a zero summary and no AD entry", func(t *testing.T) {
		var emptySummary *domain.CompartmentSummary
		for i := range report.Compartments {
			if report.Compartments[i].CompartmentName == "empty" {
				emptySummary = &report.Compartments[i]
			}
		}
		require.NotNil(t, emptySummary)
		assert.Zero(t, emptySummary.BlockVolumeCount)
		assert.Zero(t, emptySummary.BootVolumeCount)
		assert.Zero(t, emptySummary.NonCompliantVolumeCount)
	})

	t.Run("compartment summaries are sorted by name", func(t *testing.T) {
		names := make([]string, 0, len(report.Compartments))
		for _, c := range report.Compartments {
			names = append(names, c.CompartmentName)
		}
		assert.Equal(t, []string{"Dev", "empty", "prod"}, names)
	})

	t.Run("skipped compartments pass through verbatim", func(t *testing.T) {
		require.Len(t, report.SkippedCompartments, 1)
		assert.Equal(t, "404 NotAuthorizedOrNotFound: denied", report.SkippedCompartments[0].Reason)
	})

	t.Run("findings are ordered by status then names", func(t *testing.T) {
		block := report.Findings.BlockVolumes
		for i := 1; i < len(block); i++ {
			assert.LessOrEqual(t,
				statusPriority(block[i-1].ComplianceStatus),
				statusPriority(block[i].ComplianceStatus))
		}
	})
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	generatedAt := time.Date(2026, 8, 20, 6, 0, 0, 0, time.UTC)
	analyzer := NewAnalyzer(DefaultSettings())

	first, err := json.Marshal(api.ReportFromDomain(analyzer.Analyze(testSnapshot(generatedAt))))
	require.NoError(t, err)
	second, err := json.Marshal(api.ReportFromDomain(analyzer.Analyze(testSnapshot(generatedAt))))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func findByID(t *testing.T, findings []domain.Finding, id string) domain.Finding {
	t.Helper()
	for _, f := range findings {
		if f.ResourceID == id {
			return f
		}
	}
	t.Fatalf("no finding for resource %s", id)
	return domain.Finding{}
}
