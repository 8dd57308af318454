package redactor

import (
	"testing"

	"github.com/santaclaude2025/ccdigest/pkg/types"
)

func mustParse(t *testing.T, line string) types.Record {
	t.Helper()
	rec, err := types.ParseRecord([]byte(line))
	if err != nil {
		t.Fatalf("ParseRecord(%s) error = %v", line, err)
	}
	return rec
}

func mustResolve(t *testing.T, profile string) *Redactor {
	t.Helper()
	cfg, err := Resolve(profile, Overrides{})
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", profile, err)
	}
	return NewWithHome(cfg, "/home/alice")
}

func TestFilterSuppressesToolResultRecords(t *testing.T) {
	r := mustResolve(t, ProfileLocal)

	tests := []struct {
		name string
		line string
	}{
		{
			name: "toolUseResult field",
			line: `{"type":"user","message":{"role":"user","content":"ok"},"toolUseResult":{"stdout":"secret output"}}`,
		},
		{
			name: "tool_result block",
			line: `{"type":"user","message":{"role":"user","content":[{"type":"tool_result","content":"file contents"}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, keep := r.FilterRecord(mustParse(t, tt.line)); keep {
				t.Error("Expected record to be suppressed")
			}
		})
	}
}

func TestFilterKeepsToolResultsWhenDisabled(t *testing.T) {
	off := false
	cfg, _ := Resolve(ProfileLocal, Overrides{StripToolResults: &off})
	r := NewWithHome(cfg, "")

	rec := mustParse(t, `{"type":"user","message":{"role":"user","content":"ok"},"toolUseResult":{"stdout":"x"}}`)
	if _, keep := r.FilterRecord(rec); !keep {
		t.Error("Record should be kept when tool results are not stripped")
	}
}

func TestFilterStripsThinking(t *testing.T) {
	r := mustResolve(t, ProfileLocal)

	rec := mustParse(t, `{"type":"assistant","message":{"role":"assistant","model":"claude-sonnet-4-5","content":[
		{"type":"thinking","thinking":"private reasoning"},
		{"type":"text","text":"Here is the fix"},
		{"type":"tool_use","name":"Read","input":{"file_path":"/home/alice/app/main.go"}}
	]}}`)

	out, keep := r.FilterRecord(rec)
	if !keep {
		t.Fatal("Assistant record should be kept")
	}
	blocks := out.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks after stripping thinking, got %d", len(blocks))
	}
	for _, b := range blocks {
		if b.Type == types.BlockThinking {
			t.Error("Thinking block survived")
		}
	}

	// Input must be untouched.
	if len(rec.Blocks()) != 3 {
		t.Error("FilterRecord modified its input")
	}
}

func TestFilterStrictRedactsEveryPrompt(t *testing.T) {
	r := mustResolve(t, ProfileStrict)

	prompts := []string{
		`{"type":"user","message":{"role":"user","content":"fix the login bug"}}`,
		`{"type":"user","message":{"role":"user","content":[{"type":"text","text":"add a test"},{"type":"text","text":"and docs"}]}}`,
	}

	for _, line := range prompts {
		out, keep := r.FilterRecord(mustParse(t, line))
		if !keep {
			t.Fatalf("Prompt record suppressed: %s", line)
		}
		c := out.Message.Content
		if !c.IsBlocks {
			if c.Text != PromptMarker {
				t.Errorf("Text prompt = %q", c.Text)
			}
			continue
		}
		for _, b := range c.Blocks {
			if b.Text != PromptMarker {
				t.Errorf("Block prompt = %q", b.Text)
			}
		}
	}
}

func TestFilterShareableCompactsAssistantPaths(t *testing.T) {
	r := mustResolve(t, ProfileShareable)

	rec := mustParse(t, `{"type":"assistant","summary":"edited /home/alice/src/app/main.go","message":{"role":"assistant","content":[
		{"type":"text","text":"Updated /srv/deploy/config/app.yaml"}
	]}}`)

	out, _ := r.FilterRecord(rec)
	if got := out.Blocks()[0].Text; got != "Updated config/app.yaml" {
		t.Errorf("Text = %q", got)
	}
	if out.Summary != "edited ~/src/app/main.go" {
		t.Errorf("Summary = %q", out.Summary)
	}
}

func TestFilterPassesNonMessageRecords(t *testing.T) {
	r := mustResolve(t, ProfileLocal)

	rec := mustParse(t, `{"type":"progress","timestamp":"2025-01-01T00:00:00Z"}`)
	out, keep := r.FilterRecord(rec)
	if !keep || out.Kind != types.KindProgress {
		t.Errorf("Progress record = %+v, keep = %v", out, keep)
	}
}
