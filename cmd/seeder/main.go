// cmd/seeder/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ammerola/warehouse-be/internal/adapters/docstore"
	"github.com/ammerola/warehouse-be/internal/adapters/memory"
	"github.com/ammerola/warehouse-be/internal/adapters/tabular"
	"github.com/ammerola/warehouse-be/internal/core/domain"
	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/core/services"
	"github.com/ammerola/warehouse-be/internal/pkg/config"
	"github.com/ammerola/warehouse-be/internal/pkg/logger"
)

// SeederState tracks which files have been imported
type SeederState struct {
	ProcessedFiles []string  `json:"processed_files"`
	ProcessedCount int       `json:"processed_count"`
	LastUpdate     time.Time `json:"last_update"`
}

func loadState(path string) SeederState {
	var state SeederState
	if data, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(data, &state)
	}
	return state
}

func saveState(path string, state SeederState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// seeder imports stock sheets through the import service
type seeder struct {
	importer   *services.ImportService
	parser     *tabular.Parser
	classifier *CategoryClassifier
	dryRun     bool
	logger     *slog.Logger
}

type fileOutcome struct {
	rows        int
	drafts      int
	created     int
	suppliers   int
	categorized int
	errors      []string
}

func (s *seeder) seedFile(ctx context.Context, path string) (*fileOutcome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	name := filepath.Base(path)
	rows, offset, err := s.parser.Parse(name, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	outcome := &fileOutcome{}
	if s.classifier != nil {
		for _, row := range rows {
			if !row.IsBlank() && s.classifier.Fill(row) {
				outcome.categorized++
			}
		}
	}

	preview := s.importer.Preview(ctx, rows, offset)
	outcome.rows = preview.TotalRows
	outcome.drafts = len(preview.Drafts)
	outcome.errors = preview.Errors

	if s.dryRun || len(preview.Drafts) == 0 {
		return outcome, nil
	}

	result, err := s.importer.Confirm(ctx, preview.Drafts)
	if err != nil {
		return outcome, fmt.Errorf("failed to import %s: %w", name, err)
	}
	outcome.created = result.Created
	outcome.suppliers = result.SuppliersCreated
	outcome.errors = append(outcome.errors, result.Errors...)
	return outcome, nil
}

func findSheets(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.csv", "*.xlsx"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return files, nil
}

func main() {
	// Parse flags
	var (
		sheetsDir  = flag.String("dir", "./seed", "Directory containing .csv and .xlsx stock sheets")
		stateFile  = flag.String("state", "./.seed_state.json", "State file for tracking progress")
		logLevel   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun     = flag.Bool("dry-run", false, "Preview rows without writing anything")
		force      = flag.Bool("force", false, "Reimport all files")
		categorize = flag.Bool("categorize", true, "Guess missing categories from item names")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "json")

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := slogger.Logger

	ctx := context.Background()

	var store ports.DocumentStore
	if *dryRun {
		store = memory.NewDocumentStore(log)
	} else {
		documents, err := docstore.Open(ctx, cfg, docstore.Options{MaxConnections: 4, Migrate: cfg.Database.RunMigrations}, log)
		if err != nil {
			log.Error("failed to open document store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer documents.Close()
		store = documents.Store
	}

	locations := domain.NewLocationScheme(cfg.Inventory.LocationPrefixes)
	inventoryService := services.NewInventoryService(store, locations, nil, log)
	supplierService := services.NewSupplierService(store, nil, log)
	parser := tabular.NewParser(int64(cfg.FileProcessing.ImportMaxSizeMB) << 20)

	s := &seeder{
		importer: services.NewImportService(store, inventoryService, supplierService, parser, locations, log),
		parser:   parser,
		dryRun:   *dryRun,
		logger:   log,
	}
	if *categorize {
		s.classifier = NewCategoryClassifier()
	}

	state := SeederState{}
	if !*force {
		state = loadState(*stateFile)
	}

	files, err := findSheets(*sheetsDir)
	if err != nil {
		log.Error("failed to find stock sheets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	totalProcessed := 0
	totalCreated := 0
	totalSuppliers := 0
	failedFiles := []string{}
	successDetails := map[string]int{}

	for i, path := range files {
		name := filepath.Base(path)

		// Progress indicator
		fmt.Printf("PROGRESS: Processing %d/%d: %s\n", i+1, len(files), name)

		if !*force && slices.Contains(state.ProcessedFiles, name) {
			log.Info("skipping already imported file", slog.String("file", name))
			continue
		}

		outcome, err := s.seedFile(ctx, path)
		if err != nil {
			log.Error("failed to seed file",
				slog.String("file", name),
				slog.String("error", err.Error()))
			failedFiles = append(failedFiles, name)
			fmt.Printf("ERROR: Failed to process %s - %v\n", name, err)
			continue
		}

		for _, msg := range outcome.errors {
			fmt.Printf("WARNING: %s: %s\n", name, msg)
		}
		if outcome.drafts == 0 {
			fmt.Printf("WARNING: No valid rows found in %s\n", name)
			failedFiles = append(failedFiles, fmt.Sprintf("%s (0 rows)", name))
			continue
		}

		fmt.Printf("SUCCESS: Processed %s - %d rows, %d items created, %d categorized\n",
			name, outcome.rows, outcome.created, outcome.categorized)
		successDetails[name] = outcome.created
		totalProcessed++
		totalCreated += outcome.created
		totalSuppliers += outcome.suppliers

		if !*dryRun {
			state.ProcessedFiles = append(state.ProcessedFiles, name)
			state.ProcessedCount = len(state.ProcessedFiles)
			state.LastUpdate = time.Now()
			if err := saveState(*stateFile, state); err != nil {
				log.Warn("failed to save seeder state", slog.String("error", err.Error()))
			}
		}
	}

	// Summary
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEEDING OPERATION SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total Files Processed: %d\n", totalProcessed)
	fmt.Printf("Total Items Created: %d\n", totalCreated)
	fmt.Printf("Total Suppliers Created: %d\n", totalSuppliers)

	if len(successDetails) > 0 {
		fmt.Printf("\nSuccessfully Processed (%d files):\n", len(successDetails))
		for _, name := range sortedKeys(successDetails) {
			fmt.Printf("  - %s: %d items\n", name, successDetails[name])
		}
	}

	if len(failedFiles) > 0 {
		fmt.Printf("\nFailed/Empty Files (%d):\n", len(failedFiles))
		for _, name := range failedFiles {
			fmt.Printf("  - %s\n", name)
		}
	}

	log.Info("seed operation completed",
		slog.Int("files_processed", totalProcessed),
		slog.Int("items_created", totalCreated),
		slog.Int("failed_files", len(failedFiles)))

	if *dryRun {
		fmt.Println("\n[DRY RUN] No changes were made to the document store")
	}
}
