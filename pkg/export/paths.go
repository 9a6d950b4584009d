package export

import (
	"fmt"
	"path/filepath"
	"time"
)

const artifactStem = "block_volume_backup_posture"

// ArtifactPaths returns the JSON and Markdown artifact paths for one run,
// stamped with the report generation instant.
func ArtifactPaths(outputDir string, generatedAt time.Time) (jsonPath, markdownPath string) {
	slug := generatedAt.UTC().Format("20060102T150405Z")
	jsonPath = filepath.Join(outputDir, fmt.Sprintf("%s_%s.json", artifactStem, slug))
	markdownPath = filepath.Join(outputDir, fmt.Sprintf("%s_%s.md", artifactStem, slug))
	return jsonPath, markdownPath
}
