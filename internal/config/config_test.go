package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GRAPH_SERVICE_URL", "http://graph.local")
	t.Setenv("GRAPH_SERVICE_TOKEN", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.GraphTimeout != 10*time.Second {
		t.Errorf("GraphTimeout = %v, want 10s", cfg.GraphTimeout)
	}
	if cfg.Game.Variant != "any_seed_kill_answer" {
		t.Errorf("Variant = %q, want any_seed_kill_answer", cfg.Game.Variant)
	}
	if cfg.Game.MaxCandidates != -1 {
		t.Errorf("MaxCandidates = %d, want -1", cfg.Game.MaxCandidates)
	}
	if cfg.Game.MaxScoreResetAfter != 24*time.Hour {
		t.Errorf("MaxScoreResetAfter = %v, want 24h", cfg.Game.MaxScoreResetAfter)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("GAME_FIRST_FEW_MAX", "10")
	t.Setenv("GAME_VARIANT", "seed_from_answer")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q, want :9999", cfg.HTTPAddr)
	}
	if cfg.Game.FirstFewMax != 10 {
		t.Errorf("FirstFewMax = %d, want 10", cfg.Game.FirstFewMax)
	}
	if cfg.Game.Variant != "seed_from_answer" {
		t.Errorf("Variant = %q, want seed_from_answer", cfg.Game.Variant)
	}
}

func TestLoadRequiresGraphService(t *testing.T) {
	t.Setenv("GRAPH_SERVICE_URL", "")
	t.Setenv("GRAPH_SERVICE_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Error("expected an error when the graph service is unconfigured")
	}
}

func TestLoadRejectsBadKnobs(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"GAME_DISTANCE_OF_WRONG1", "0"},
		{"GAME_DISTANCE_OF_WRONG2", "-2"},
		{"GAME_FIRST_FEW_MAX", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected an error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
