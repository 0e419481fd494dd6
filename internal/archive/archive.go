package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveDataDir moves the notebook data directory into a sibling
// "archive" directory under a timestamped name and returns the new path.
// The next run starts with an empty notebook.
func ArchiveDataDir(dataDir string) (string, error) {
	info, err := os.Stat(dataDir)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("data directory does not exist: %s", dataDir)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat data directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", dataDir)
	}

	clean := filepath.Clean(dataDir)
	archiveDir := filepath.Join(filepath.Dir(clean), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := fmt.Sprintf("%s-%s", filepath.Base(clean), time.Now().Format("20060102-150405"))
	archivePath := filepath.Join(archiveDir, base)
	for i := 1; ; i++ {
		if _, err := os.Stat(archivePath); os.IsNotExist(err) {
			break
		}
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s.%d", base, i))
	}

	if err := os.Rename(clean, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive data directory: %w", err)
	}

	return archivePath, nil
}
