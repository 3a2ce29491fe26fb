package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/claude/workoutplan/internal/config"
	"github.com/claude/workoutplan/internal/defaults"
	"github.com/claude/workoutplan/internal/importer"
	"github.com/claude/workoutplan/internal/logging"
	"github.com/claude/workoutplan/internal/models"
	"github.com/claude/workoutplan/internal/storage"
	"github.com/claude/workoutplan/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	file := flag.String("file", "", "JSON file to import; reads pasted JSON from stdin when empty")
	dryRun := flag.Bool("dry-run", false, "validate and report without writing to storage")
	flag.Parse()

	cfg, err := config.Load(*configPath, !isFlagSet("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, closeLog := logging.New(cfg.Log)
	defer closeLog()

	ctx := context.Background()

	var kv storage.KV
	if *dryRun {
		log.Info("DRY RUN mode, storage will not be modified")
		kv = storage.NewMemoryKV()
	} else {
		db, err := storage.Open(ctx, cfg.Storage.Path, cfg.Storage.MaxValueBytes)
		if err != nil {
			log.Error("failed to open storage", "path", cfg.Storage.Path, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		kv = db
	}

	st := store.New(kv, log, store.WithKey(cfg.Storage.Key))
	st.Initialize(ctx, defaults.Plan())
	imp := importer.New(st, log, nil)

	var plan *models.WorkoutPlan
	if *file != "" {
		plan, err = importFile(ctx, imp, *file)
	} else {
		var text []byte
		text, err = io.ReadAll(os.Stdin)
		if err == nil {
			plan, err = imp.ImportPaste(ctx, string(text))
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, importer.Message(err))
		log.Error("import failed", "kind", importer.KindName(err), "error", err)
		os.Exit(1)
	}

	if !st.Synced() {
		log.Error("plan accepted but could not be saved")
		os.Exit(1)
	}
	printSummary(plan)
	log.Info("import complete", "dry_run", *dryRun)
}

func importFile(ctx context.Context, imp *importer.Importer, path string) (*models.WorkoutPlan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return imp.ImportFile(ctx, filepath.Base(path), "", f)
}

func printSummary(plan *models.WorkoutPlan) {
	fmt.Printf("Imported %q (%d users)\n", plan.Metadata.Title, len(plan.Users))
	active := plan.ActiveUser()
	for _, u := range plan.Users {
		marker := " "
		if u.ID == active.ID {
			marker = "*"
		}
		fmt.Printf(" %s %-28s %s\n", marker, u.ID, u.Person.Name)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
