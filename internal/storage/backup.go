package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/pstuifzand/tui-templategen/internal/model"
)

const (
	backupSuffix    = ".tgen.json"
	timestampLayout = "20060102_150405"
)

// BackupManager keeps timestamped copies of form files
type BackupManager struct {
	backupDir string
}

// backupFile is the on-disk layout of a backup
type backupFile struct {
	OriginalFile string      `json:"original_file"`
	Form         *model.Form `json:"form"`
}

// BackupMetadata holds parsed information about a backup file
type BackupMetadata struct {
	FilePath     string    // Full path to backup file
	Timestamp    time.Time // Parsed timestamp from filename
	SessionID    string
	OriginalFile string // Form file the backup was taken from
}

// NewBackupManagerAt creates a backup manager storing backups in dir
func NewBackupManagerAt(dir string) (*BackupManager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &BackupManager{backupDir: dir}, nil
}

// CreateBackup writes a timestamped copy of form, remembering the file it belongs to
func (bm *BackupManager) CreateBackup(form *model.Form, originalPath string, sessionID string) (string, error) {
	absPath, err := filepath.Abs(originalPath)
	if err != nil {
		absPath = originalPath
	}

	data, err := json.MarshalIndent(backupFile{
		OriginalFile: absPath,
		Form:         withoutPlaceholders(form),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup JSON: %w", err)
	}

	backupPath := filepath.Join(bm.backupDir, bm.generateBackupFilename(sessionID))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}

// generateBackupFilename creates a filename in the format YYYYMMDD_HHMMSS_<sessionID>.tgen.json
func (bm *BackupManager) generateBackupFilename(sessionID string) string {
	return fmt.Sprintf("%s_%s%s", time.Now().Format(timestampLayout), sessionID, backupSuffix)
}

// FindBackupsForFile returns the backups of a form file, oldest first.
// An empty path returns every backup.
func (bm *BackupManager) FindBackupsForFile(originalFilePath string) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var searchPath string
	if originalFilePath != "" {
		searchPath = originalFilePath
		if absPath, err := filepath.Abs(originalFilePath); err == nil {
			searchPath = filepath.Clean(absPath)
		}
	}

	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupSuffix) {
			continue
		}

		metadata, err := parseBackupFilename(entry.Name(), filepath.Join(bm.backupDir, entry.Name()))
		if err != nil {
			continue
		}

		if searchPath != "" && filepath.Clean(metadata.OriginalFile) != searchPath {
			continue
		}

		backups = append(backups, metadata)
	}

	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return backups, nil
}

// LoadBackup reads the form stored in a backup file
func LoadBackup(path string) (*model.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}

	var backup backupFile
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("failed to parse backup: %w", err)
	}
	if backup.Form == nil {
		return nil, fmt.Errorf("backup %s holds no form", filepath.Base(path))
	}

	backup.Form.RestoreParents()
	return backup.Form, nil
}

// parseBackupFilename extracts metadata from a name like YYYYMMDD_HHMMSS_<sessionID>.tgen.json
func parseBackupFilename(filename string, fullPath string) (BackupMetadata, error) {
	name := strings.TrimSuffix(filename, backupSuffix)
	if len(name) < len(timestampLayout)+2 || name[len(timestampLayout)] != '_' {
		return BackupMetadata{}, fmt.Errorf("malformed backup filename %q", filename)
	}

	timestamp, err := time.ParseInLocation(timestampLayout, name[:len(timestampLayout)], time.Local)
	if err != nil {
		return BackupMetadata{}, fmt.Errorf("invalid timestamp format: %w", err)
	}

	var originalFile string
	if data, err := os.ReadFile(fullPath); err == nil {
		var backup backupFile
		if err := json.Unmarshal(data, &backup); err == nil {
			originalFile = backup.OriginalFile
		}
	}

	return BackupMetadata{
		FilePath:     fullPath,
		Timestamp:    timestamp,
		SessionID:    name[len(timestampLayout)+1:],
		OriginalFile: originalFile,
	}, nil
}
