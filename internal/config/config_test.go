package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SignificanceLevel != 0.05 {
		t.Errorf("SignificanceLevel = %g, want 0.05", cfg.SignificanceLevel)
	}
	if cfg.GRIM.MaxWords != 1000 || cfg.GRIM.OverlapWords != 200 {
		t.Errorf("GRIM windowing = %d/%d", cfg.GRIM.MaxWords, cfg.GRIM.OverlapWords)
	}
	if cfg.Statcheck.MaxWords != 500 || cfg.Statcheck.OverlapWords != 8 {
		t.Errorf("statcheck windowing = %d/%d", cfg.Statcheck.MaxWords, cfg.Statcheck.OverlapWords)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SIGNIFICANCE_LEVEL", "1.5")
	if _, err := Load(); err == nil {
		t.Error("expected error for out-of-range significance level")
	}

	t.Setenv("SIGNIFICANCE_LEVEL", "0.05")
	t.Setenv("GRIM_OVERLAP_WORDS", "5000")
	if _, err := Load(); err == nil {
		t.Error("expected error for overlap exceeding window size")
	}

	t.Setenv("GRIM_OVERLAP_WORDS", "abc")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric overlap")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SIGNIFICANCE_LEVEL", "0.01")
	t.Setenv("STATCHECK_MODEL", "gpt-4o")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SignificanceLevel != 0.01 {
		t.Errorf("SignificanceLevel = %g", cfg.SignificanceLevel)
	}
	if cfg.Statcheck.Model != "gpt-4o" {
		t.Errorf("Statcheck.Model = %q", cfg.Statcheck.Model)
	}
}
