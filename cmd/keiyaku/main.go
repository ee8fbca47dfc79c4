// Package main is the keiyaku CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hyperjump/keiyaku/internal/config"
	"github.com/hyperjump/keiyaku/internal/embedding"
	"github.com/hyperjump/keiyaku/internal/extract"
	"github.com/hyperjump/keiyaku/internal/pipeline"
	"github.com/hyperjump/keiyaku/internal/precedent"
	"github.com/hyperjump/keiyaku/internal/risk"
	"github.com/hyperjump/keiyaku/internal/server"
	"github.com/hyperjump/keiyaku/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/keiyaku/config.yaml"

// loadConfig loads config from path. When path is the default, a config.yaml in
// the current directory takes precedence so running from the project dir picks
// up the project's config. A missing default config is not an error; defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				return config.Load(fallback)
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, nil
		}
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// API keys may live in a .env during development.
	_ = godotenv.Load()

	switch os.Args[1] {
	case "server":
		runServer(os.Args[2:])
	case "analyze":
		runAnalyze(os.Args[2:])
	case "version":
		fmt.Printf("keiyaku %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: keiyaku <command> [flags]

Commands:
  server                          Start the analysis HTTP server
  analyze <file> <contract-type>  Analyze a contract document and print the report
  version                         Print version

Flags:
  -config <path>  Config file path (default %s)
`, defaultConfigPath)
}

// buildAnalyzer wires the embedder, precedent store, risk client, and extractor.
func buildAnalyzer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pipeline.Analyzer, *extract.Extractor, error) {
	embedder := buildEmbedder(cfg, logger)

	store, err := precedent.NewStore(ctx, embedder, precedent.Corpus(), cfg.Retrieval.IndexType)
	if err != nil {
		return nil, nil, fmt.Errorf("build precedent store: %w", err)
	}
	logger.Info("precedent indexes built",
		zap.Int("groups", store.GroupCount()),
		zap.Int("vectors", store.VectorCount()))

	apiKey := os.Getenv(cfg.Risk.APIKeyEnv)
	if apiKey == "" {
		logger.Warn("risk engine API key not set; assessments will fall back to High",
			zap.String("env", cfg.Risk.APIKeyEnv))
	}
	assessor := risk.NewClient(apiKey,
		risk.WithBaseURL(cfg.Risk.BaseURL),
		risk.WithModel(cfg.Risk.Model),
		risk.WithTimeout(time.Duration(cfg.Risk.TimeoutSeconds)*time.Second),
	)

	extractor := extract.NewExtractor()
	analyzer := pipeline.NewAnalyzer(extractor, store, assessor, cfg.Retrieval.TopK, logger)
	return analyzer, extractor, nil
}

// buildEmbedder returns the ONNX embedder when a model is configured and
// loadable, the deterministic hash embedder otherwise.
func buildEmbedder(cfg *config.Config, logger *zap.Logger) embedding.Embedder {
	if cfg.Embedding.ModelPath != "" {
		onnx, err := embedding.NewONNXEmbedder(
			cfg.Embedding.ModelPath,
			cfg.Embedding.Dimensions,
			cfg.Embedding.MaxTokens,
			cfg.Embedding.CacheSize,
		)
		if err == nil {
			logger.Info("using ONNX embedder", zap.String("model", cfg.Embedding.ModelPath))
			return onnx
		}
		logger.Warn("ONNX embedder unavailable, falling back to hash embedder", zap.Error(err))
	}
	return embedding.NewHashEmbedder(cfg.Embedding.Dimensions)
}

func runServer(args []string) {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	analyzer, extractor, err := buildAnalyzer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer func() { _ = analyzer.Store().Close() }()

	srv := server.NewServer(analyzer, extractor, &cfg.Server, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}
}

func runAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: keiyaku analyze <file> <contract-type>")
		fmt.Fprintf(os.Stderr, "Contract types: %v\n", pipeline.ContractTypes())
		os.Exit(1)
	}
	path, contractType := rest[0], rest[1]

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	analyzer, _, err := buildAnalyzer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer func() { _ = analyzer.Store().Close() }()

	report, err := analyzer.AnalyzeFile(ctx, path, contractType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
