package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prospector-hq/prospector/history"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Ada Lovelace", "ada_lovelace"},
		{"  Backend Engineer (Remote)  ", "backend_engineer_remote"},
		{"C++ Developer", "c_developer"},
		{"___", "unnamed"},
		{"", "unnamed"},
		{"simple", "simple"},
	}

	for _, tc := range cases {
		if got := sanitizeName(tc.input); got != tc.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSaveProcessedResume(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	path, err := store.SaveProcessedResume("Ada Lovelace", map[string]string{"name": "Ada"})
	if err != nil {
		t.Fatalf("SaveProcessedResume failed: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("resumes", "ada_lovelace.json")) {
		t.Errorf("unexpected path: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved resume failed: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("saved resume is not valid JSON: %v", err)
	}
	if decoded["name"] != "Ada" {
		t.Errorf("decoded %+v", decoded)
	}
}

func TestSaveInterviewReportNestsByJob(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	path, err := store.SaveInterviewReport("Backend Engineer", "Ada Lovelace", map[string]float64{"score": 7.5})
	if err != nil {
		t.Fatalf("SaveInterviewReport failed: %v", err)
	}
	want := filepath.Join("reports", "backend_engineer", "ada_lovelace.json")
	if !strings.HasSuffix(path, want) {
		t.Errorf("path = %s, want suffix %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report file missing: %v", err)
	}
}

func TestLoadJobDescription(t *testing.T) {
	dir := t.TempDir()
	jdPath := filepath.Join(dir, "jd.txt")
	if err := os.WriteFile(jdPath, []byte("We need a Go engineer."), 0644); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	text, err := store.LoadJobDescription(jdPath)
	if err != nil {
		t.Fatalf("LoadJobDescription failed: %v", err)
	}
	if text != "We need a Go engineer." {
		t.Errorf("text = %q", text)
	}
}

func TestSessionArchiveRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	m := history.NewManager()
	m.AddExchange("s1", "question", "answer", nil, nil)
	if err := store.SaveSessionArchive(m); err != nil {
		t.Fatalf("SaveSessionArchive failed: %v", err)
	}
	if !strings.HasSuffix(store.SessionArchivePath(), "sessions.json") {
		t.Errorf("archive path = %s", store.SessionArchivePath())
	}

	restored := history.NewManager()
	if err := store.LoadSessionArchive(restored); err != nil {
		t.Fatalf("LoadSessionArchive failed: %v", err)
	}
	if n := restored.MessageCount("s1"); n != 2 {
		t.Errorf("restored session has %d messages, want 2", n)
	}
}

func TestLoadSessionArchiveMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	m := history.NewManager()
	if err := store.LoadSessionArchive(m); err != nil {
		t.Errorf("missing archive should not error, got: %v", err)
	}
	if n := len(m.ListSessions()); n != 0 {
		t.Errorf("manager has %d sessions, want 0", n)
	}
}

func TestLoadJobDescriptionMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if _, err := store.LoadJobDescription("/nonexistent/jd.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
