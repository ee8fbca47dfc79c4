package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port=%d", cfg.Server.Port)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("Dimensions=%d", cfg.Embedding.Dimensions)
	}
	if cfg.Retrieval.TopK != 2 {
		t.Errorf("TopK=%d", cfg.Retrieval.TopK)
	}
	if cfg.Risk.APIKeyEnv != "GROQ_API_KEY" {
		t.Errorf("APIKeyEnv=%q", cfg.Risk.APIKeyEnv)
	}
}

func TestLoad_OverridesAndModelPathExpansion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `server:
  port: 9090
embedding:
  model_path: ./models/minilm.onnx
retrieval:
  top_k: 5
risk:
  model: llama-3.3-70b-versatile
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port=%d", cfg.Server.Port)
	}
	if cfg.Retrieval.TopK != 5 {
		t.Errorf("TopK=%d", cfg.Retrieval.TopK)
	}
	if cfg.Risk.Model != "llama-3.3-70b-versatile" {
		t.Errorf("Model=%q", cfg.Risk.Model)
	}
	want := filepath.Join(dir, "models/minilm.onnx")
	if cfg.Embedding.ModelPath != want {
		t.Errorf("ModelPath=%q, want %q", cfg.Embedding.ModelPath, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}
