// Package cli implements the cobra command surface of the scholar engine.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	configfile "github.com/genscholar/scholar-engine/internal/adapters/driven/config/file"
	"github.com/genscholar/scholar-engine/internal/adapters/driven/embedding/cohere"
	"github.com/genscholar/scholar-engine/internal/adapters/driven/extraction/pdf"
	"github.com/genscholar/scholar-engine/internal/adapters/driven/llm/gemini"
	"github.com/genscholar/scholar-engine/internal/adapters/driven/storage/sqlite"
	"github.com/genscholar/scholar-engine/internal/adapters/driven/vectorstore/flat"
	"github.com/genscholar/scholar-engine/internal/chunker"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
	"github.com/genscholar/scholar-engine/internal/core/services"
	"github.com/genscholar/scholar-engine/internal/logger"
	"github.com/genscholar/scholar-engine/internal/vectorcache"
)

// Wired services, populated by wire() before any subcommand runs.
var (
	version = "dev"

	configStore    driven.ConfigStore
	promptStore    driven.PromptStore
	workspaceStore driven.WorkspaceStore
	documentStore  driven.DocumentStore
	llmService     driven.LLMService
	embedService   driven.EmbeddingService
	ingestService  *services.IngestService
	answerService  *services.AnswerService
	ingestQueue    *services.IngestQueue
)

// Persistent flags.
var (
	verboseFlag bool
	configDir   string
	dbPath      string
)

var rootCmd = &cobra.Command{
	Use:   "scholar-engine",
	Short: "Workspace document indexing and conversational retrieval",
	Long: `Scholar Engine ingests PDF documents into per-workspace vector
indexes and answers questions about them through an LLM, with
intent routing and fuzzy document resolution.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return wire()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.scholar-engine)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default <config-dir>/scholar.db)")
}

// Execute runs the root command. The version string is injected by main.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// wire assembles the engine: stores, extractor, LLM and embedding clients,
// vector index provider, cache and services. API keys come from the
// environment (a .env file is honoured); a missing key leaves the
// corresponding service nil and the engine degrades to its fixed messages.
func wire() error {
	// Best effort; absence of a .env file is the common case.
	_ = godotenv.Load()

	var err error
	configStore, err = configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("init config store: %w", err)
	}

	promptStore, err = configfile.NewPromptStore(configValue("prompts.dir", filepath.Join(baseDir(), "prompts")))
	if err != nil {
		return fmt.Errorf("init prompt store: %w", err)
	}

	if dbPath == "" {
		dbPath = configValue("storage.db_path", filepath.Join(baseDir(), "scholar.db"))
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	workspaceStore = sqlite.NewWorkspaceStore(db)
	documentStore = sqlite.NewDocumentStore(db)

	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		llmService, err = gemini.NewLLMService(gemini.Config{
			APIKey: key,
			Model:  configStore.GetString("llm.model"),
		})
		if err != nil {
			return fmt.Errorf("init gemini: %w", err)
		}
	} else {
		logger.Warn("GOOGLE_API_KEY not set; generation disabled")
	}

	if key := os.Getenv("COHERE_API_KEY"); key != "" {
		embedService, err = cohere.NewEmbeddingService(cohere.Config{
			APIKey: key,
			Model:  configStore.GetString("embedding.model"),
		})
		if err != nil {
			return fmt.Errorf("init cohere: %w", err)
		}
	} else {
		logger.Warn("COHERE_API_KEY not set; indexing and retrieval disabled")
	}

	provider := flat.NewProvider(embedService)
	cache := vectorcache.New(configInt("cache.capacity", vectorcache.DefaultCapacity))

	splitter := chunker.New(
		chunker.WithChunkSize(configInt("chunker.size", chunker.DefaultChunkSize)),
		chunker.WithOverlap(configInt("chunker.overlap", chunker.DefaultChunkOverlap)),
	)

	classifier := services.NewClassifier(llmService, promptStore)
	resolver := services.NewResolver(documentStore)

	indexRoot := configValue("storage.index_root", filepath.Join(baseDir(), "indexes"))
	ingestService = services.NewIngestService(
		workspaceStore, documentStore, pdf.NewExtractor(),
		llmService, embedService, promptStore,
		splitter, provider, cache, indexRoot,
	)

	answerService = services.NewAnswerService(
		workspaceStore, documentStore, classifier, resolver,
		llmService, promptStore, provider, cache,
	)
	answerService.SetTopK(configInt("answer.top_k", services.DefaultTopK))

	delay := time.Duration(configInt("ingest.delay_seconds", -1)) * time.Second
	if delay < 0 {
		delay = services.DefaultIngestDelay
	}
	ingestQueue = services.NewIngestQueue(ingestService, delay, 0)

	return nil
}

// teardown releases the wired clients.
func teardown() {
	if ingestQueue != nil {
		ingestQueue.Stop()
	}
	if llmService != nil {
		_ = llmService.Close()
	}
	if embedService != nil {
		_ = embedService.Close()
	}
}

// baseDir is the engine's state directory.
func baseDir() string {
	if configDir != "" {
		return configDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".scholar-engine")
}

// configValue reads a string key with a fallback.
func configValue(key, fallback string) string {
	if configStore != nil {
		if v := configStore.GetString(key); v != "" {
			return v
		}
	}
	return fallback
}

// configInt reads an integer key with a fallback.
func configInt(key string, fallback int) int {
	if configStore != nil {
		if _, ok := configStore.Get(key); ok {
			return configStore.GetInt(key)
		}
	}
	return fallback
}
