package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hotelproducts/internal/config"
	"github.com/smallbiznis/hotelproducts/internal/hotel/domain"
	"github.com/smallbiznis/hotelproducts/internal/hotel/repository"
	"github.com/smallbiznis/hotelproducts/internal/logger"
	"github.com/smallbiznis/hotelproducts/internal/migration"
	"github.com/smallbiznis/hotelproducts/internal/storage"
	"github.com/smallbiznis/hotelproducts/pkg/db"
	"go.uber.org/zap"
)

const (
	targetDatabase = "database"
	targetMinIO    = "minio"
)

type options struct {
	target      string
	dataDir     string
	assignments string
	charges     string
	nodeID      int64
	logLevel    string
	logFormat   string
	timeout     time.Duration
}

func main() {
	cfg := config.Load()

	var opts options
	flag.StringVar(&opts.target, "target", targetDatabase, "seed target: database or minio")
	flag.StringVar(&opts.dataDir, "data-dir", cfg.Hotel.DataDir, "directory holding the JSON documents")
	flag.StringVar(&opts.assignments, "assignments", cfg.Hotel.AssignmentsFile, "product assignments file name")
	flag.StringVar(&opts.charges, "charges", cfg.Hotel.ChargesFile, "product charges file name")
	flag.Int64Var(&opts.nodeID, "node", 1, "snowflake node id for row keys")
	flag.StringVar(&opts.logLevel, "log-level", "info", "log level")
	flag.StringVar(&opts.logFormat, "log-format", "console", "log format: json or console")
	flag.DurationVar(&opts.timeout, "timeout", time.Minute, "overall seed timeout")
	flag.Parse()

	log, err := logger.New(opts.logLevel, opts.logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	if err := run(ctx, cfg, opts, log); err != nil {
		log.Error("seed failed", zap.String("target", opts.target), zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options, log *zap.Logger) error {
	dataset := config.Dataset{
		AssignmentsPath: filepath.Join(opts.dataDir, opts.assignments),
		ChargesPath:     filepath.Join(opts.dataDir, opts.charges),
	}
	assignments, charges, err := load(ctx, dataset)
	if err != nil {
		return err
	}
	log.Info("dataset loaded",
		zap.String("assignments_path", dataset.AssignmentsPath),
		zap.String("charges_path", dataset.ChargesPath),
		zap.Int("assignments", len(assignments)),
		zap.Int("charges", len(charges)),
	)

	switch opts.target {
	case targetDatabase:
		return seedDatabase(ctx, cfg, opts, log, assignments, charges)
	case targetMinIO:
		return seedMinIO(ctx, cfg, dataset, log)
	default:
		return fmt.Errorf("unsupported seed target %q", opts.target)
	}
}

func load(ctx context.Context, dataset config.Dataset) ([]domain.ProductAssignment, []domain.ProductCharge, error) {
	files := repository.NewFileStore(config.NewStaticDatasetHolder(dataset))
	assignments, err := files.FindProductAssignments(ctx)
	if err != nil {
		return nil, nil, err
	}
	charges, err := files.FindProductCharges(ctx)
	if err != nil {
		return nil, nil, err
	}
	return assignments, charges, nil
}

func seedDatabase(ctx context.Context, cfg config.Config, opts options, log *zap.Logger, assignments []domain.ProductAssignment, charges []domain.ProductCharge) error {
	dbCfg := db.ConfigFrom(cfg)
	conn, err := db.Open(dbCfg, log, opts.logLevel)
	if err != nil {
		return err
	}
	if sqlDB, err := conn.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := migration.Apply(conn, dbCfg, log); err != nil {
		return err
	}

	node, err := snowflake.NewNode(opts.nodeID)
	if err != nil {
		return fmt.Errorf("create snowflake node: %w", err)
	}
	if err := repository.NewDatabaseStore(conn).Replace(ctx, node, assignments, charges); err != nil {
		return err
	}
	log.Info("database seeded", zap.String("db_type", dbCfg.Type), zap.String("db_name", dbCfg.Name))
	return nil
}

func seedMinIO(ctx context.Context, cfg config.Config, dataset config.Dataset, log *zap.Logger) error {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return err
	}
	if err := storage.EnsureBucket(ctx, client, cfg.MinIO.Bucket, true); err != nil {
		return err
	}

	uploads := []struct {
		path string
		key  string
	}{
		{dataset.AssignmentsPath, repository.ObjectKey(cfg, cfg.Hotel.AssignmentsFile)},
		{dataset.ChargesPath, repository.ObjectKey(cfg, cfg.Hotel.ChargesFile)},
	}
	for _, u := range uploads {
		body, err := os.ReadFile(u.path)
		if err != nil {
			return fmt.Errorf("read %s: %w", u.path, err)
		}
		if err := storage.PutJSON(ctx, client, cfg.MinIO.Bucket, u.key, body); err != nil {
			return err
		}
		log.Info("object uploaded", zap.String("bucket", cfg.MinIO.Bucket), zap.String("key", u.key), zap.Int("bytes", len(body)))
	}
	return nil
}
