package terminal

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/backup-atlas/pkg/export"
	"github.com/de-tools/backup-atlas/pkg/models/domain"
	"github.com/de-tools/backup-atlas/pkg/services/audit"
	"github.com/de-tools/backup-atlas/pkg/services/collectors"
	"github.com/de-tools/backup-atlas/pkg/services/config"
	"github.com/de-tools/backup-atlas/pkg/store/objectstorage"
)

type auditCmd struct {
	skipUpload bool
}

func (ac *auditCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load()
	if err != nil {
		return configFailure("configuration failed: %w", err)
	}

	clients, err := collectors.NewClients(cfg)
	if err != nil {
		return configFailure("configuration failed: %w", err)
	}

	identityCollector := collectors.NewIdentityCollector(clients.Identity)
	collector := collectors.NewCollector(
		identityCollector,
		collectors.NewComputeCollector(clients.Compute),
		collectors.NewBlockStorageCollector(clients.BlockStorage),
	)

	compartments, err := identityCollector.ListCompartments(
		ctx, clients.TenancyOCID, cfg.RootCompartmentOCID, cfg.IncludeSubcompartments)
	if err != nil {
		return configFailure("failed to enumerate compartments: %w", err)
	}
	logger.Info().Msgf("discovered %d accessible compartments", len(compartments))

	collected, skipped := collector.CollectAll(ctx, compartments)

	generatedAt := time.Now().UTC()
	analyzer := audit.NewAnalyzer(audit.Settings{MaxBackupAgeDays: cfg.MaxBackupAgeDays})
	report := analyzer.Analyze(audit.Input{
		Collected:   collected,
		Skipped:     skipped,
		GeneratedAt: generatedAt,
		Region:      clients.Region,
		TenancyOCID: clients.TenancyOCID,
	})

	jsonPath, markdownPath := export.ArtifactPaths(cfg.OutputDir, generatedAt)
	if err := export.WriteJSONReport(report, jsonPath); err != nil {
		return err
	}
	if err := export.WriteMarkdownReport(report, markdownPath); err != nil {
		return err
	}
	logger.Info().Str("path", jsonPath).Msg("JSON report written")
	logger.Info().Str("path", markdownPath).Msg("Markdown report written")

	if ac.skipUpload {
		logger.Info().Msg("upload skipped by flag --skip-upload")
		return nil
	}

	return ac.upload(ctx, cfg, clients, compartments, jsonPath, markdownPath)
}

// upload tries every candidate bucket in order until one accepts both
// artifacts. Failures only fail the process when the configuration says so.
func (ac *auditCmd) upload(
	ctx context.Context,
	cfg config.AppConfig,
	clients *collectors.Clients,
	compartments []domain.Compartment,
	jsonPath, markdownPath string,
) error {
	logger := zerolog.Ctx(ctx)

	namespace := cfg.ObjectStorageNamespace
	if namespace == "" {
		resolved, err := objectstorage.ResolveNamespace(ctx, clients.ObjectStorage)
		if err != nil {
			if cfg.FailOnUploadError {
				return uploadFailure("failed to resolve object storage namespace: %w", err)
			}
			logger.Error().Err(err).Msg("failed to resolve object storage namespace")
			return nil
		}
		namespace = resolved
	}

	var candidates []string
	if cfg.ObjectStorageBucket != "" {
		candidates = append(candidates, cfg.ObjectStorageBucket)
	}
	if cfg.AutoDiscoverBucket {
		compartmentIDs := make([]string, 0, len(compartments))
		for _, c := range compartments {
			compartmentIDs = append(compartmentIDs, c.ID)
		}
		for _, bucket := range objectstorage.DiscoverBuckets(ctx, clients.ObjectStorage, namespace, compartmentIDs) {
			if bucket != cfg.ObjectStorageBucket {
				candidates = append(candidates, bucket)
			}
		}
	}

	if len(candidates) == 0 {
		if cfg.FailOnUploadError {
			return uploadFailure("no accessible object storage bucket found; set OCI_OBJECT_STORAGE_BUCKET or grant bucket access to this principal")
		}
		logger.Error().Msg("no accessible object storage bucket found")
		return nil
	}

	artifacts := []struct {
		path        string
		contentType string
	}{
		{jsonPath, "application/json"},
		{markdownPath, "text/markdown"},
	}

	var lastErr error
	for _, bucket := range candidates {
		uploader := objectstorage.NewUploader(clients.ObjectStorage, namespace, bucket, cfg.ObjectStoragePrefix)
		logger.Info().Str("bucket", bucket).Msg("attempting upload")

		bucketFailed := false
		for _, artifact := range artifacts {
			result, err := uploader.UploadFile(ctx, artifact.path, artifact.contentType)
			if err != nil {
				lastErr = err
				bucketFailed = true
				logger.Warn().Err(err).Str("bucket", bucket).Msg("upload failed")
				break
			}
			logger.Info().Str("uri", result.URI).Msg("uploaded")
		}
		if !bucketFailed {
			return nil
		}
	}

	if cfg.FailOnUploadError {
		return uploadFailure("upload failed for all candidate buckets: %w", lastErr)
	}
	logger.Error().Err(lastErr).Msg("upload failed for all candidate buckets")
	return nil
}
