package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/smallbiznis/hotelproducts/internal/config"
	"github.com/smallbiznis/hotelproducts/internal/hotel/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DatasetSource yields the current dataset file paths.
type DatasetSource interface {
	Current() config.Dataset
}

// FileStore reads both collections from JSON files on local disk.
type FileStore struct {
	dataset DatasetSource
	tracer  trace.Tracer
}

func NewFileStore(dataset DatasetSource) *FileStore {
	return &FileStore{
		dataset: dataset,
		tracer:  otel.Tracer("hotel/repository/file"),
	}
}

func (s *FileStore) FindProductAssignments(ctx context.Context) ([]domain.ProductAssignment, error) {
	path := s.dataset.Current().AssignmentsPath
	_, span := s.tracer.Start(ctx, "file.FindProductAssignments", trace.WithAttributes(
		spanAttributes(storeFile, collectionAssignments, attribute.String("file.path", path))...,
	))
	defer span.End()

	f, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("read %s: %w", collectionAssignments, err)
	}
	defer f.Close()

	out, err := decodeAssignments(f)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

func (s *FileStore) FindProductCharges(ctx context.Context) ([]domain.ProductCharge, error) {
	path := s.dataset.Current().ChargesPath
	_, span := s.tracer.Start(ctx, "file.FindProductCharges", trace.WithAttributes(
		spanAttributes(storeFile, collectionCharges, attribute.String("file.path", path))...,
	))
	defer span.End()

	f, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("read %s: %w", collectionCharges, err)
	}
	defer f.Close()

	out, err := decodeCharges(f)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}
