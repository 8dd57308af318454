package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/discovery"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/redactor"
	"github.com/santaclaude2025/ccdigest/pkg/types"
)

const testSession = "0f0f0f0f-1111-4111-8111-111111111111"

// setupTestEnv isolates settings and logs in a temp directory and returns
// a Claude state directory inside it.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	t.Setenv(config.AppDirEnv, filepath.Join(tmpDir, "app"))
	t.Setenv(config.ProfileEnv, "")

	// Reset first so the next Init() picks up the new log dir.
	logger.Reset()
	t.Setenv(logger.LogDirEnv, filepath.Join(tmpDir, "logs"))
	t.Cleanup(logger.Reset)

	claudeDir := filepath.Join(tmpDir, "claude")
	if err := os.MkdirAll(claudeDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return claudeDir
}

// runCLI executes the root command with fresh flag values and returns its
// stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	profileFlag, formatFlag, claudeDirFlag, verboseFlag = "", formatJSON, "", false
	dailyDate, dailyFrom, dailyTo, dailyWatch = "", "", "", false
	sessionPeek = false
	projectsOpts = windowOptions{days: defaultWindowDays}
	toolsOpts = windowOptions{days: defaultWindowDays}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeHistory(t *testing.T, claudeDir string, records ...types.HistoryRecord) {
	t.Helper()
	var b strings.Builder
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		b.Write(data)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(filepath.Join(claudeDir, config.ClaudeHistoryFile), []byte(b.String()), 0644); err != nil {
		t.Fatalf("write history: %v", err)
	}
}

func writeSessionTranscript(t *testing.T, claudeDir, project, sessionID string, lines ...string) {
	t.Helper()
	path := discovery.TranscriptPath(filepath.Join(claudeDir, config.ClaudeProjectsSubdir), project, sessionID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
}

func promptsAt(sessionID, project string, start time.Time, minutes ...int) []types.HistoryRecord {
	var out []types.HistoryRecord
	for i, m := range minutes {
		out = append(out, types.HistoryRecord{
			Display:   fmt.Sprintf("prompt %d", i+1),
			Timestamp: start.Add(time.Duration(m) * time.Minute).UnixMilli(),
			Project:   project,
			SessionID: sessionID,
		})
	}
	return out
}

var testDay = time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)

func TestDailyJSON(t *testing.T) {
	claudeDir := setupTestEnv(t)
	writeHistory(t, claudeDir, promptsAt(testSession, "/src/webapp", testDay, 0, 5, 10)...)
	writeSessionTranscript(t, claudeDir, "/src/webapp", testSession,
		`{"type":"assistant","message":{"role":"assistant","model":"claude-sonnet-4-20250514","content":[{"type":"text","text":"short"}],"usage":{"input_tokens":1000000,"output_tokens":0}}}`)

	out, err := runCLI(t, "daily", "--date", "2025-06-02", "--claude-dir", claudeDir)
	if err != nil {
		t.Fatalf("daily failed: %v", err)
	}

	var summary struct {
		Date     string            `json:"date"`
		Detailed []json.RawMessage `json:"detailed"`
		Totals   struct {
			Prompts          int      `json:"prompts"`
			Projects         []string `json:"projects"`
			EstimatedCostUSD float64  `json:"estimatedCostUSD"`
		} `json:"totals"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if summary.Date != "2025-06-02" {
		t.Errorf("date = %q", summary.Date)
	}
	if summary.Totals.Prompts != 3 || len(summary.Detailed) != 1 {
		t.Errorf("prompts = %d, detailed = %d; want 3 and 1", summary.Totals.Prompts, len(summary.Detailed))
	}
	if len(summary.Totals.Projects) != 1 || summary.Totals.Projects[0] != "webapp" {
		t.Errorf("projects = %v", summary.Totals.Projects)
	}
	if summary.Totals.EstimatedCostUSD != 3 {
		t.Errorf("cost = %v, want 3", summary.Totals.EstimatedCostUSD)
	}
}

func TestDailyRangeJSON(t *testing.T) {
	claudeDir := setupTestEnv(t)
	records := promptsAt(testSession, "/src/webapp", testDay, 0)
	records = append(records, promptsAt("1f1f1f1f-1111-4111-8111-111111111111", "/src/api", testDay.AddDate(0, 0, 2), 0)...)
	writeHistory(t, claudeDir, records...)

	out, err := runCLI(t, "daily", "--from", "2025-06-01", "--to", "2025-06-05", "--claude-dir", claudeDir)
	if err != nil {
		t.Fatalf("daily range failed: %v", err)
	}
	var days []struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal([]byte(out), &days); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, out)
	}
	if len(days) != 2 || days[0].Date != "2025-06-02" || days[1].Date != "2025-06-04" {
		t.Errorf("days = %+v, want 2025-06-02 and 2025-06-04", days)
	}
}

func TestDailyRejectsWatchWithRange(t *testing.T) {
	claudeDir := setupTestEnv(t)
	if _, err := runCLI(t, "daily", "--watch", "--from", "2025-06-01", "--claude-dir", claudeDir); err == nil {
		t.Error("expected --watch with --from to fail")
	}
}

func TestUnknownProfileRejected(t *testing.T) {
	claudeDir := setupTestEnv(t)
	_, err := runCLI(t, "daily", "--profile", "public", "--claude-dir", claudeDir)
	if !errors.Is(err, redactor.ErrUnknownProfile) {
		t.Errorf("err = %v, want ErrUnknownProfile", err)
	}
}

func TestInvalidFormatRejected(t *testing.T) {
	claudeDir := setupTestEnv(t)
	if _, err := runCLI(t, "projects", "--format", "yaml", "--claude-dir", claudeDir); err == nil {
		t.Error("expected --format yaml to fail")
	}
}

func TestProjectsText(t *testing.T) {
	claudeDir := setupTestEnv(t)
	writeHistory(t, claudeDir, promptsAt(testSession, "/src/webapp", time.Now().Add(-time.Hour), 0, 1)...)

	out, err := runCLI(t, "projects", "--format", "text", "--claude-dir", claudeDir)
	if err != nil {
		t.Fatalf("projects failed: %v", err)
	}
	if !strings.Contains(out, "webapp") {
		t.Errorf("text output missing project:\n%s", out)
	}
}

func TestSessionCommand(t *testing.T) {
	claudeDir := setupTestEnv(t)
	writeHistory(t, claudeDir, promptsAt(testSession, "/src/webapp", testDay, 0, 5)...)
	writeSessionTranscript(t, claudeDir, "/src/webapp", testSession,
		`{"type":"assistant","gitBranch":"main","message":{"role":"assistant","model":"claude-sonnet-4","content":[],"usage":{"input_tokens":10,"output_tokens":5}}}`)

	out, err := runCLI(t, "session", "0f0f", "--peek", "--claude-dir", claudeDir)
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	var meta struct {
		SessionID string `json:"sessionId"`
		GitBranch string `json:"gitBranch"`
		Tokens    struct {
			Input int `json:"input"`
		} `json:"tokens"`
		Summaries []string `json:"summaries"`
	}
	if err := json.Unmarshal([]byte(out), &meta); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if meta.SessionID != testSession || meta.GitBranch != "main" || meta.Tokens.Input != 10 {
		t.Errorf("unexpected session meta: %+v", meta)
	}
	if meta.Summaries != nil {
		t.Error("peek output should not carry full-parse fields")
	}

	_, err = runCLI(t, "session", "deadbeef", "--claude-dir", claudeDir)
	if !errors.Is(err, discovery.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestPrivacyCommand(t *testing.T) {
	setupTestEnv(t)

	out, err := runCLI(t, "privacy", "--profile", "strict")
	if err != nil {
		t.Fatalf("privacy failed: %v", err)
	}
	var got struct {
		Profile string          `json:"profile"`
		Config  redactor.Config `json:"config"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Profile != "strict" || !got.Config.RedactPrompts || len(got.Config.Patterns) == 0 {
		t.Errorf("unexpected strict config: %+v", got)
	}
}

func TestPricingCommandAppliesOverrides(t *testing.T) {
	setupTestEnv(t)
	appDir := os.Getenv(config.AppDirEnv)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	settings := "[pricing.\"sonnet-4\"]\ninput = 4.0\n\n[pricing.\"custom-1\"]\ninput = 1.0\noutput = 2.0\n"
	if err := os.WriteFile(filepath.Join(appDir, config.SettingsTOMLFile), []byte(settings), 0644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	out, err := runCLI(t, "pricing")
	if err != nil {
		t.Fatalf("pricing failed: %v", err)
	}
	var rows map[string]priceRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got := rows["sonnet-4"]; got.Input != 4 || got.Output != 15 {
		t.Errorf("sonnet-4 = %+v, want input 4 with default output 15", got)
	}
	if got := rows["custom-1"]; got.Input != 1 || got.Output != 2 {
		t.Errorf("custom-1 = %+v", got)
	}
	if _, ok := rows["opus-4-5"]; !ok {
		t.Error("built-in models should remain after overrides")
	}
}

func TestStatsMissingCache(t *testing.T) {
	claudeDir := setupTestEnv(t)
	out, err := runCLI(t, "stats", "--claude-dir", claudeDir)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if strings.TrimSpace(out) != "{}" {
		t.Errorf("stats output = %q, want {}", out)
	}
}

func TestStatusCommand(t *testing.T) {
	claudeDir := setupTestEnv(t)
	writeHistory(t, claudeDir)

	out, err := runCLI(t, "status", "--claude-dir", claudeDir)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	var st statusReport
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	exists := make(map[string]bool)
	for _, s := range st.Sources {
		exists[s.Name] = s.Exists
	}
	if !exists["history"] || exists["transcripts"] || exists["stats cache"] {
		t.Errorf("unexpected source status: %+v", st.Sources)
	}
	if st.Profile != redactor.DefaultProfile {
		t.Errorf("profile = %q", st.Profile)
	}
}

func TestWindowOptionsFilter(t *testing.T) {
	oldNow := now
	defer func() { now = oldNow }()
	now = func() time.Time { return time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		opts     windowOptions
		wantFrom string
		wantTo   string
		wantErr  bool
	}{
		{"default thirty days", windowOptions{days: 30}, "2025-06-01", "2025-06-30", false},
		{"one day", windowOptions{days: 1}, "2025-06-30", "2025-06-30", false},
		{"explicit range", windowOptions{days: 30, from: "2025-05-01", to: "2025-05-03"}, "2025-05-01", "2025-05-03", false},
		{"to only uses days", windowOptions{days: 7, to: "2025-05-10"}, "2025-05-04", "2025-05-10", false},
		{"bad date", windowOptions{days: 30, from: "yesterday"}, "", "", true},
		{"reversed", windowOptions{days: 30, from: "2025-05-03", to: "2025-05-01"}, "", "", true},
		{"zero days", windowOptions{days: 0}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.opts.filter(time.UTC)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			if f.Window.From != tt.wantFrom || f.Window.To != tt.wantTo {
				t.Errorf("window = %s..%s, want %s..%s", f.Window.From, f.Window.To, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestLogsPath(t *testing.T) {
	setupTestEnv(t)
	out, err := runCLI(t, "logs", "path")
	if err != nil {
		t.Fatalf("logs path failed: %v", err)
	}
	want, _ := logger.LogDir()
	if strings.TrimSpace(out) != want {
		t.Errorf("logs path = %q, want %q", out, want)
	}
}
