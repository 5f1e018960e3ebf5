package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MemorialTransportation/web-backend/internal/db"
	"github.com/MemorialTransportation/web-backend/internal/employee"
	"github.com/MemorialTransportation/web-backend/internal/fleet"
	"github.com/MemorialTransportation/web-backend/internal/logging"
	"github.com/MemorialTransportation/web-backend/internal/seeds"
)

func main() {
	_ = godotenv.Load(".env.local")

	var (
		file   = flag.String("file", "seed.yaml", "Path to the YAML seed file")
		dsn    = flag.String("dsn", os.Getenv("DATABASE_URL"), "Database URL (default: env DATABASE_URL)")
		dryRun = flag.Bool("dry-run", false, "Parse + validate only; no DB writes")
	)
	flag.Parse()

	log, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, *file, strings.TrimSpace(*dsn), *dryRun); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}

func run(log *zap.Logger, file, dsn string, dryRun bool) error {
	f, err := seeds.Load(file)
	if err != nil {
		return err
	}

	if dryRun {
		for i, s := range f.Employees {
			if _, err := s.Employee(); err != nil {
				return fmt.Errorf("employees[%d]: %w", i, err)
			}
		}
		for i, s := range f.Trucks {
			if _, err := s.Truck(); err != nil {
				return fmt.Errorf("trucks[%d]: %w", i, err)
			}
		}
		log.Info("seed file is valid", zap.Int("employees", len(f.Employees)), zap.Int("trucks", len(f.Trucks)))
		return nil
	}

	if dsn == "" {
		return fmt.Errorf("no database configured: set DATABASE_URL or -dsn")
	}

	d, err := db.Open(dsn, log)
	if err != nil {
		return err
	}
	defer db.Close(d)

	if err := employee.Init(d); err != nil {
		return err
	}
	if err := fleet.Init(d); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	return seeds.SeedAll(ctx, d, f, log)
}
