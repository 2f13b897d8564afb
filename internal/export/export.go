package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportState records when a repository was last exported
type ExportState struct {
	LastExportedAt int64 `json:"last_exported_at"`
}

// GetAppDataDir returns the application data directory
func GetAppDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	appDataDir := filepath.Join(homeDir, ".boardhub")
	if err := os.MkdirAll(appDataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create app data directory: %w", err)
	}

	return appDataDir, nil
}

// repoDir returns (and creates) the per-repository snapshot directory.
// An explicit baseDir overrides the default app data dir.
func repoDir(baseDir string, repoID int64) (string, error) {
	if baseDir == "" {
		appDataDir, err := GetAppDataDir()
		if err != nil {
			return "", err
		}
		baseDir = appDataDir
	}

	dir := filepath.Join(baseDir, fmt.Sprintf("%d", repoID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	return dir, nil
}

// WriteSnapshot writes one named snapshot document for a repository and
// stamps the export state. Snapshot names are "board", "epics" etc.
func WriteSnapshot(baseDir string, repoID int64, name string, data interface{}) (string, error) {
	dir, err := repoDir(baseDir, repoID)
	if err != nil {
		return "", err
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s snapshot: %w", name, err)
	}

	filePath := filepath.Join(dir, fmt.Sprintf("%s.json", name))
	if err := os.WriteFile(filePath, jsonData, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s snapshot: %w", name, err)
	}

	if err := saveState(dir, time.Now().Unix()); err != nil {
		return "", err
	}

	return filePath, nil
}

func saveState(dir string, timestamp int64) error {
	state := ExportState{LastExportedAt: timestamp}

	jsonData, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal export state: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "state.json"), jsonData, 0600); err != nil {
		return fmt.Errorf("failed to write export state: %w", err)
	}

	return nil
}

// GetLastExported returns the last export timestamp for a repository,
// or zero if the repository has never been exported.
func GetLastExported(baseDir string, repoID int64) (int64, error) {
	dir, err := repoDir(baseDir, repoID)
	if err != nil {
		return 0, err
	}

	filePath := filepath.Join(dir, "state.json")
	if _, statErr := os.Stat(filePath); os.IsNotExist(statErr) {
		return 0, nil
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read export state: %w", err)
	}

	var state ExportState
	if err := json.Unmarshal(fileData, &state); err != nil {
		return 0, fmt.Errorf("failed to unmarshal export state: %w", err)
	}

	return state.LastExportedAt, nil
}
