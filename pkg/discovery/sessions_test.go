package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseSessionFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	projectsDir := filepath.Join(tmpDir, "projects")
	projectDir := filepath.Join(projectsDir, "-Users-jane-app")
	os.MkdirAll(projectDir, 0755)

	tests := []struct {
		name     string
		filename string
		wantNil  bool
		wantID   string
	}{
		{
			name:     "valid session file",
			filename: "12345678-1234-1234-1234-123456789abc.jsonl",
			wantID:   "12345678-1234-1234-1234-123456789abc",
		},
		{
			name:     "agent file should be skipped",
			filename: "agent-abcd1234.jsonl",
			wantNil:  true,
		},
		{
			name:     "non-jsonl file should be skipped",
			filename: "readme.txt",
			wantNil:  true,
		},
		{
			name:     "short id should be skipped",
			filename: "short-id.jsonl",
			wantNil:  true,
		},
		{
			name:     "36 chars but not a uuid",
			filename: "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz.jsonl",
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(projectDir, tt.filename)
			os.WriteFile(filePath, []byte("{}"), 0644)

			info, _ := os.Stat(filePath)
			entry := mockDirEntry{name: tt.filename, info: info}

			result := parseSessionFromPath(filePath, entry, projectsDir)

			if tt.wantNil {
				if result != nil {
					t.Errorf("expected nil, got %+v", result)
				}
				return
			}
			if result == nil {
				t.Fatal("expected result, got nil")
			}
			if result.SessionID != tt.wantID {
				t.Errorf("expected SessionID %q, got %q", tt.wantID, result.SessionID)
			}
			if result.ProjectDir != "-Users-jane-app" {
				t.Errorf("expected ProjectDir -Users-jane-app, got %q", result.ProjectDir)
			}
			if result.ProjectPath() != "/Users/jane/app" {
				t.Errorf("expected decoded path /Users/jane/app, got %q", result.ProjectPath())
			}
		})
	}
}

func TestParseSessionFromPath_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	entry := mockDirEntry{name: "somedir", isDir: true}

	if result := parseSessionFromPath(tmpDir, entry, tmpDir); result != nil {
		t.Errorf("expected nil for directory, got %+v", result)
	}
}

// mockDirEntry implements os.DirEntry for testing
type mockDirEntry struct {
	name  string
	isDir bool
	info  os.FileInfo
}

func (m mockDirEntry) Name() string               { return m.name }
func (m mockDirEntry) IsDir() bool                { return m.isDir }
func (m mockDirEntry) Type() os.FileMode          { return 0 }
func (m mockDirEntry) Info() (os.FileInfo, error) { return m.info, nil }

func TestScanAllSessions(t *testing.T) {
	projectsDir := filepath.Join(t.TempDir(), "projects")
	project1 := filepath.Join(projectsDir, "project1")
	project2 := filepath.Join(projectsDir, "project2")
	os.MkdirAll(project1, 0755)
	os.MkdirAll(project2, 0755)

	session1 := "aaaaaaaa-1111-1111-1111-111111111111.jsonl"
	session2 := "bbbbbbbb-2222-2222-2222-222222222222.jsonl"
	session3 := "cccccccc-3333-3333-3333-333333333333.jsonl"

	now := time.Now()
	for i, p := range []string{filepath.Join(project1, session1), filepath.Join(project2, session2), filepath.Join(project1, session3)} {
		os.WriteFile(p, []byte("{}"), 0644)
		mt := now.Add(time.Duration(i-3) * time.Minute)
		os.Chtimes(p, mt, mt)
	}

	// Files that should be ignored
	os.WriteFile(filepath.Join(project1, "agent-12345678.jsonl"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(project1, "readme.txt"), []byte("{}"), 0644)

	sessions, err := ScanAllSessions(projectsDir)
	if err != nil {
		t.Fatalf("ScanAllSessions() error = %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}

	wantOrder := []string{
		"aaaaaaaa-1111-1111-1111-111111111111",
		"bbbbbbbb-2222-2222-2222-222222222222",
		"cccccccc-3333-3333-3333-333333333333",
	}
	for i, want := range wantOrder {
		if sessions[i].SessionID != want {
			t.Errorf("sessions[%d] = %s, want %s (oldest first)", i, sessions[i].SessionID, want)
		}
	}
}

func TestScanAllSessions_EmptyDirectory(t *testing.T) {
	projectsDir := filepath.Join(t.TempDir(), "projects")
	os.MkdirAll(projectsDir, 0755)

	sessions, err := ScanAllSessions(projectsDir)
	if err != nil {
		t.Fatalf("ScanAllSessions() error = %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Expected 0 sessions in empty directory, got %d", len(sessions))
	}
}

func TestScanAllSessions_NoProjectsDir(t *testing.T) {
	sessions, err := ScanAllSessions(filepath.Join(t.TempDir(), "projects"))
	if err != nil {
		t.Fatalf("ScanAllSessions() error = %v", err)
	}
	if sessions != nil {
		t.Errorf("Expected nil for non-existent directory, got %d sessions", len(sessions))
	}
}

func TestFindSessionByID(t *testing.T) {
	projectsDir := filepath.Join(t.TempDir(), "projects")
	project1 := filepath.Join(projectsDir, "project1")
	os.MkdirAll(project1, 0755)

	sessionID := "aaaaaaaa-1111-1111-1111-111111111111"
	sessionPath := filepath.Join(project1, sessionID+".jsonl")
	os.WriteFile(sessionPath, []byte("{}"), 0644)

	tests := []struct {
		name      string
		searchID  string
		wantFound bool
	}{
		{"find by full ID", sessionID, true},
		{"find by 8-char prefix", "aaaaaaaa", true},
		{"find by 4-char prefix", "aaaa", true},
		{"not found", "nonexistent", false},
		{"empty", "  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := FindSessionByID(projectsDir, tt.searchID)

			if !tt.wantFound {
				if !errors.Is(err, ErrSessionNotFound) {
					t.Errorf("Expected ErrSessionNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected to find session, got error: %v", err)
			}
			if info.SessionID != sessionID {
				t.Errorf("Expected ID %s, got %s", sessionID, info.SessionID)
			}
			if info.TranscriptPath != sessionPath {
				t.Errorf("Expected path %s, got %s", sessionPath, info.TranscriptPath)
			}
		})
	}
}

func TestFindSessionByID_AmbiguousID(t *testing.T) {
	projectsDir := filepath.Join(t.TempDir(), "projects")
	project1 := filepath.Join(projectsDir, "project1")
	os.MkdirAll(project1, 0755)

	os.WriteFile(filepath.Join(project1, "aaaa1111-1111-1111-1111-111111111111.jsonl"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(project1, "aaaa2222-2222-2222-2222-222222222222.jsonl"), []byte("{}"), 0644)

	_, err := FindSessionByID(projectsDir, "aaaa")
	if !errors.Is(err, ErrAmbiguousSession) {
		t.Errorf("Expected ErrAmbiguousSession, got: %v", err)
	}

	// A full id is never ambiguous.
	info, err := FindSessionByID(projectsDir, "aaaa1111-1111-1111-1111-111111111111")
	if err != nil || info.SessionID != "aaaa1111-1111-1111-1111-111111111111" {
		t.Errorf("Full id lookup = %+v, %v", info, err)
	}
}

func TestFindSessionByID_NoProjectsDir(t *testing.T) {
	_, err := FindSessionByID(filepath.Join(t.TempDir(), "missing"), "aaaa")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}
