package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "DEFAULT", cfg.OCIConfigProfile)
		assert.Contains(t, cfg.OCIConfigFile, ".oci")
		assert.True(t, cfg.IncludeSubcompartments)
		assert.Equal(t, 7, cfg.MaxBackupAgeDays)
		assert.Equal(t, "output", cfg.OutputDir)
		assert.Equal(t, "block-volume-backup-posture", cfg.ObjectStoragePrefix)
		assert.True(t, cfg.FailOnUploadError)
		assert.True(t, cfg.AutoDiscoverBucket)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("OCI_CONFIG_PROFILE", "AUDIT")
		t.Setenv("OCI_REGION", "eu-frankfurt-1")
		t.Setenv("OCI_MAX_BACKUP_AGE_DAYS", "14")
		t.Setenv("OCI_OBJECT_STORAGE_PREFIX", "/reports/posture/")
		t.Setenv("OCI_FAIL_ON_UPLOAD_ERROR", "no")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "AUDIT", cfg.OCIConfigProfile)
		assert.Equal(t, "eu-frankfurt-1", cfg.OCIRegion)
		assert.Equal(t, 14, cfg.MaxBackupAgeDays)
		assert.Equal(t, "reports/posture", cfg.ObjectStoragePrefix)
		assert.False(t, cfg.FailOnUploadError)
	})

	t.Run("tolerant boolean forms", func(t *testing.T) {
		for _, value := range []string{"1", "true", "YES", "y", "On"} {
			t.Setenv("OCI_AUTO_DISCOVER_BUCKET", value)
			cfg, err := Load()
			require.NoError(t, err)
			assert.True(t, cfg.AutoDiscoverBucket, value)
		}
	})

	t.Run("malformed integer is an error", func(t *testing.T) {
		t.Setenv("OCI_MAX_BACKUP_AGE_DAYS", "a week")

		_, err := Load()

		assert.ErrorContains(t, err, "OCI_MAX_BACKUP_AGE_DAYS")
	})

	t.Run("malformed boolean is an error", func(t *testing.T) {
		t.Setenv("OCI_INCLUDE_SUBCOMPARTMENTS", "maybe")

		_, err := Load()

		assert.ErrorContains(t, err, "OCI_INCLUDE_SUBCOMPARTMENTS")
	})
}
