package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/claude/workoutplan/internal/config"
	"github.com/claude/workoutplan/internal/defaults"
	"github.com/claude/workoutplan/internal/exporter"
	"github.com/claude/workoutplan/internal/logging"
	"github.com/claude/workoutplan/internal/storage"
	"github.com/claude/workoutplan/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	all := flag.Bool("all", false, "export every profile instead of the active user")
	out := flag.String("out", "", "output directory (default export.dir from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath, !isFlagSet("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, closeLog := logging.New(cfg.Log)
	defer closeLog()

	dir := cfg.Export.Dir
	if *out != "" {
		dir = *out
	}

	// Load through an in-memory copy of a read-only connection so the export
	// never writes to storage, not even to seed a missing plan or create the
	// database file.
	ctx := context.Background()
	mem := storage.NewMemoryKV()
	db, err := storage.OpenReadOnly(ctx, cfg.Storage.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info("no stored plan; exporting the default plan", "path", cfg.Storage.Path)
	case err != nil:
		log.Error("failed to open storage", "path", cfg.Storage.Path, "error", err)
		os.Exit(1)
	default:
		raw, ok, err := db.Get(ctx, cfg.Storage.Key)
		if err != nil {
			log.Warn("reading stored plan failed", "error", err)
		} else if ok {
			mem.Put(cfg.Storage.Key, raw)
		}
		db.Close()
	}
	st := store.New(mem, log, store.WithKey(cfg.Storage.Key))
	st.Initialize(ctx, defaults.Plan())
	plan := st.Snapshot()

	var f exporter.File
	if *all {
		f, err = exporter.AllUsers(plan, time.Now())
	} else {
		f, err = exporter.SingleUser(plan, time.Now())
	}
	if err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}

	path, err := exporter.WriteFile(dir, f)
	if err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}
	fmt.Println(path)
	log.Info("export complete", "path", path, "users", len(plan.Users), "all", *all)
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
