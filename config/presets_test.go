package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseDefaultPresets(t *testing.T) {
	p, err := Parse(defaultPresets)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.Personalities) != 4 {
		t.Fatalf("got %d personalities, want 4", len(p.Personalities))
	}

	want := []string{"rushdown", "sentinel", "duelist", "trickster"}
	for i, id := range want {
		if p.Personalities[i].ID != id {
			t.Errorf("personality %d = %q, want %q", i, p.Personalities[i].ID, id)
		}
	}

	duelist, err := Bot.Personality("duelist")
	if err != nil {
		t.Fatalf("Personality(duelist) error = %v", err)
	}
	if duelist.ReactionTime != 210*time.Millisecond {
		t.Errorf("duelist reaction = %v, want 210ms", duelist.ReactionTime)
	}
	if !duelist.HasSignature("dance") || duelist.HasSignature("sniper_nest") {
		t.Errorf("duelist signatures = %v", duelist.Signatures)
	}
}

func TestParseTuningOverride(t *testing.T) {
	doc := []byte(`
tuning:
  signature_gate: 0.5
  mercy_duration: 12s
`)
	p, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Tuning == nil {
		t.Fatal("expected tuning section")
	}
	def := DefaultTuning()
	if p.Tuning.SignatureGate != 0.5 {
		t.Errorf("SignatureGate = %v, want 0.5", p.Tuning.SignatureGate)
	}
	if p.Tuning.MercyDuration != 12*time.Second {
		t.Errorf("MercyDuration = %v, want 12s", p.Tuning.MercyDuration)
	}
	if p.Tuning.RepeatPenalty != def.RepeatPenalty {
		t.Errorf("RepeatPenalty = %v, want default %v", p.Tuning.RepeatPenalty, def.RepeatPenalty)
	}
	if p.Tuning.FlickDuration != def.FlickDuration {
		t.Errorf("FlickDuration = %v, want default %v", p.Tuning.FlickDuration, def.FlickDuration)
	}
}

func TestParseWithoutTuning(t *testing.T) {
	p, err := Parse([]byte("personalities:\n  - id: solo\n    base_aggression: 0.4\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Tuning != nil {
		t.Errorf("Tuning = %+v, want nil", p.Tuning)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "missing id",
			doc:     "personalities:\n  - name: Nobody\n",
			wantErr: "has no id",
		},
		{
			name:    "duplicate id",
			doc:     "personalities:\n  - id: a\n  - id: a\n",
			wantErr: `duplicate personality "a"`,
		},
		{
			name:    "aggression out of range",
			doc:     "personalities:\n  - id: a\n    base_aggression: 1.5\n",
			wantErr: "base_aggression",
		},
		{
			name:    "accuracy out of range",
			doc:     "personalities:\n  - id: a\n    accuracy: -0.1\n",
			wantErr: "accuracy",
		},
		{
			name:    "negative reaction",
			doc:     "personalities:\n  - id: a\n    reaction_time: -5ms\n",
			wantErr: "negative reaction_time",
		},
		{
			name:    "bad yaml",
			doc:     "personalities: [\n",
			wantErr: "unmarshal presets",
		},
		{
			name:    "bad tuning",
			doc:     "tuning:\n  mercy_duration: soon\n",
			wantErr: "decode tuning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestWithPresetsMerges(t *testing.T) {
	tun := DefaultTuning()
	tun.SignatureGate = 1
	merged := Bot.WithPresets(Presets{
		Personalities: []Personality{
			{ID: "duelist", BaseAggression: 0.9},
			{ID: "newcomer", BaseAggression: 0.2},
		},
		Tuning: &tun,
	})

	if got := merged.Personalities["duelist"].BaseAggression; got != 0.9 {
		t.Errorf("duelist aggression = %v, want 0.9", got)
	}
	if _, err := merged.Personality("newcomer"); err != nil {
		t.Errorf("newcomer missing: %v", err)
	}
	if _, err := merged.Personality("rushdown"); err != nil {
		t.Errorf("rushdown dropped: %v", err)
	}
	if merged.Tuning.SignatureGate != 1 {
		t.Errorf("SignatureGate = %v, want 1", merged.Tuning.SignatureGate)
	}

	// Original is untouched.
	if got := Bot.Personalities["duelist"].BaseAggression; got != 0.5 {
		t.Errorf("Bot duelist aggression mutated to %v", got)
	}
	if _, ok := Bot.Personalities["newcomer"]; ok {
		t.Error("Bot gained newcomer")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	if err := os.WriteFile(path, []byte("personalities:\n  - id: solo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(p.Personalities) != 1 || p.Personalities[0].ID != "solo" {
		t.Errorf("got %+v", p.Personalities)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	if err := os.WriteFile(path, []byte("personalities:\n  - id: first\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	tmp := filepath.Join(dir, "presets.tmp")
	if err := os.WriteFile(tmp, []byte("personalities:\n  - id: second\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case p := <-w.Events:
			if len(p.Personalities) == 1 && p.Personalities[0].ID == "second" {
				return
			}
		case err := <-w.Errors:
			t.Logf("watch error: %v", err)
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}
