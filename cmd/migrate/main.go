package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/mentormind-api/pkg/config"
	"github.com/noah-isme/mentormind-api/pkg/logger"
	"github.com/noah-isme/mentormind-api/pkg/migrate"
)

const usage = "usage: migrate up | down | steps N | version"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(context.Background(), cfg, logr, os.Args[1:]); err != nil {
		if errors.Is(err, migrate.ErrNothingToRollback) {
			logr.Info("nothing to roll back")
			return
		}
		logr.Fatal("migration failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger, args []string) error {
	m, err := migrate.NewMigrator(ctx, cfg.Database.DSN(), cfg.Migrations.Dir, logr)
	if err != nil {
		return err
	}
	defer m.Close(ctx) //nolint:errcheck

	switch args[0] {
	case "up":
		err = m.Up(ctx)
	case "down":
		err = m.Down(ctx)
	case "steps":
		if len(args) < 2 {
			return errors.New(usage)
		}
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return fmt.Errorf("steps: %w", convErr)
		}
		err = m.Steps(ctx, n)
	case "version":
	default:
		return fmt.Errorf("unknown command %q; %s", args[0], usage)
	}
	if err != nil {
		return err
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	logr.Info("schema version", zap.Int("current", version), zap.Int("latest", m.Latest()))
	return nil
}
