package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig is the environment-driven configuration for an audit run.
type AppConfig struct {
	OCIConfigFile          string
	OCIConfigProfile       string
	OCIRegion              string
	RootCompartmentOCID    string
	IncludeSubcompartments bool
	MaxBackupAgeDays       int
	OutputDir              string
	ObjectStorageNamespace string
	ObjectStorageBucket    string
	ObjectStoragePrefix    string
	FailOnUploadError      bool
	AutoDiscoverBucket     bool
}

// Load reads configuration from OCI_* environment variables, applying the
// documented defaults. Malformed numeric or boolean values are configuration
// errors, not silently defaulted.
func Load() (AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("OCI")
	v.AutomaticEnv()

	home, err := os.UserHomeDir()
	if err != nil {
		return AppConfig{}, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	v.SetDefault("config_file", filepath.Join(home, ".oci", "config"))
	v.SetDefault("config_profile", "DEFAULT")
	v.SetDefault("region", "")
	v.SetDefault("root_compartment_ocid", "")
	v.SetDefault("include_subcompartments", "")
	v.SetDefault("max_backup_age_days", "")
	v.SetDefault("output_dir", "output")
	v.SetDefault("object_storage_namespace", "")
	v.SetDefault("object_storage_bucket", "")
	v.SetDefault("object_storage_prefix", "block-volume-backup-posture")
	v.SetDefault("fail_on_upload_error", "")
	v.SetDefault("auto_discover_bucket", "")

	cfg := AppConfig{
		OCIConfigFile:          v.GetString("config_file"),
		OCIConfigProfile:       v.GetString("config_profile"),
		OCIRegion:              strings.TrimSpace(v.GetString("region")),
		RootCompartmentOCID:    strings.TrimSpace(v.GetString("root_compartment_ocid")),
		OutputDir:              v.GetString("output_dir"),
		ObjectStorageNamespace: strings.TrimSpace(v.GetString("object_storage_namespace")),
		ObjectStorageBucket:    strings.TrimSpace(v.GetString("object_storage_bucket")),
		ObjectStoragePrefix:    strings.Trim(v.GetString("object_storage_prefix"), "/"),
	}

	if cfg.IncludeSubcompartments, err = parseBool(v.GetString("include_subcompartments"), true); err != nil {
		return AppConfig{}, fmt.Errorf("invalid OCI_INCLUDE_SUBCOMPARTMENTS: %w", err)
	}
	if cfg.FailOnUploadError, err = parseBool(v.GetString("fail_on_upload_error"), true); err != nil {
		return AppConfig{}, fmt.Errorf("invalid OCI_FAIL_ON_UPLOAD_ERROR: %w", err)
	}
	if cfg.AutoDiscoverBucket, err = parseBool(v.GetString("auto_discover_bucket"), true); err != nil {
		return AppConfig{}, fmt.Errorf("invalid OCI_AUTO_DISCOVER_BUCKET: %w", err)
	}
	if cfg.MaxBackupAgeDays, err = parseInt(v.GetString("max_backup_age_days"), 7); err != nil {
		return AppConfig{}, fmt.Errorf("invalid OCI_MAX_BACKUP_AGE_DAYS: %w", err)
	}

	return cfg, nil
}

func parseBool(value string, fallback bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return fallback, nil
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized boolean value %q", value)
	}
}

func parseInt(value string, fallback int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, err
	}
	return n, nil
}
