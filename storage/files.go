package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prospector-hq/prospector/history"
)

// FileStore writes interview artifacts (processed resumes, reports, session
// archives) under a data directory as indented JSON.
type FileStore struct {
	dataDir string
}

// NewFileStore creates a file store rooted at dataDir, creating it if needed.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dataDir: dataDir}, nil
}

// DataDir returns the root data directory.
func (f *FileStore) DataDir() string {
	return f.dataDir
}

// SaveProcessedResume writes a structured resume for a candidate and returns
// the file path.
func (f *FileStore) SaveProcessedResume(candidateName string, resume interface{}) (string, error) {
	return f.writeJSON(filepath.Join("resumes", sanitizeName(candidateName)+".json"), resume)
}

// SaveInterviewReport writes an interview report for a candidate under the
// job's directory and returns the file path.
func (f *FileStore) SaveInterviewReport(jobTitle, candidateName string, report interface{}) (string, error) {
	return f.writeJSON(
		filepath.Join("reports", sanitizeName(jobTitle), sanitizeName(candidateName)+".json"),
		report)
}

// SessionArchivePath is where interview session histories accumulate.
func (f *FileStore) SessionArchivePath() string {
	return filepath.Join(f.dataDir, "sessions.json")
}

// SaveSessionArchive persists every session in the manager to the archive
// file.
func (f *FileStore) SaveSessionArchive(m *history.Manager) error {
	return m.SaveToFile(f.SessionArchivePath())
}

// LoadSessionArchive restores previously archived sessions into the manager.
// A missing archive is not an error: the manager is simply left as it was.
func (f *FileStore) LoadSessionArchive(m *history.Manager) error {
	path := f.SessionArchivePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return m.LoadFromFile(path)
}

// LoadJobDescription reads a job description text file.
func (f *FileStore) LoadJobDescription(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return string(data), nil
}

func (f *FileStore) writeJSON(rel string, v interface{}) (string, error) {
	path := filepath.Join(f.dataDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return path, nil
}

// sanitizeName converts an arbitrary name into a safe file name component:
// lowercase, alphanumerics kept, everything else collapsed to underscores.
func sanitizeName(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.TrimRight(b.String(), "_")
	if out == "" {
		return "unnamed"
	}
	return out
}
