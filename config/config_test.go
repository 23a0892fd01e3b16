package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Matching.FuzzyThreshold != 0.70 {
		t.Errorf("expected default fuzzy threshold 0.70, got %v", c.Matching.FuzzyThreshold)
	}
	if c.Matching.ConfidenceThreshold != 70.0 {
		t.Errorf("expected default confidence threshold 70.0, got %v", c.Matching.ConfidenceThreshold)
	}
	if c.Matching.MaxBlockSize != 10000 {
		t.Errorf("expected default max block size 10000, got %v", c.Matching.MaxBlockSize)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := loadFromFile(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Errorf("expected an error loading a missing config file")
	}
}

func TestLoadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recon-config.json")
	custom := Default()
	custom.Matching.FuzzyThreshold = 0.85
	custom.Matching.ConfidenceThreshold = 60
	if err := Save(custom, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Matching.FuzzyThreshold != 0.85 {
		t.Errorf("expected fuzzy threshold 0.85 after round trip, got %v", loaded.Matching.FuzzyThreshold)
	}
	if loaded.Matching.ConfidenceThreshold != 60 {
		t.Errorf("expected confidence threshold 60 after round trip, got %v", loaded.Matching.ConfidenceThreshold)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recon-config.yaml")
	content := []byte("matching:\n  fuzzy_threshold: 0.9\n  confidence_threshold: 75\n  max_block_size: 500\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write yaml fixture: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Matching.FuzzyThreshold != 0.9 {
		t.Errorf("expected fuzzy threshold 0.9 from YAML, got %v", loaded.Matching.FuzzyThreshold)
	}
	if loaded.Matching.MaxBlockSize != 500 {
		t.Errorf("expected max block size 500 from YAML, got %v", loaded.Matching.MaxBlockSize)
	}
}

func TestLoadMissingPathFallsBackToDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Matching.FuzzyThreshold != Default().Matching.FuzzyThreshold {
		t.Errorf("expected default config when no config file is discoverable")
	}
}
