package repository

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/smallbiznis/hotelproducts/internal/hotel/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type openObjectFunc func(ctx context.Context, key string) (io.ReadCloser, error)

// ObjectStore reads both collections as JSON objects from a MinIO/S3 bucket.
type ObjectStore struct {
	bucket         string
	assignmentsKey string
	chargesKey     string
	open           openObjectFunc
	tracer         trace.Tracer
}

func NewObjectStore(client *minio.Client, bucket, assignmentsKey, chargesKey string) *ObjectStore {
	bucket = strings.TrimSpace(bucket)
	return newObjectStore(bucket, assignmentsKey, chargesKey, func(ctx context.Context, key string) (io.ReadCloser, error) {
		obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, err
		}
		// GetObject is lazy; Stat surfaces missing keys before decoding starts.
		if _, err := obj.Stat(); err != nil {
			_ = obj.Close()
			return nil, err
		}
		return obj, nil
	})
}

func newObjectStore(bucket, assignmentsKey, chargesKey string, open openObjectFunc) *ObjectStore {
	return &ObjectStore{
		bucket:         bucket,
		assignmentsKey: strings.TrimSpace(assignmentsKey),
		chargesKey:     strings.TrimSpace(chargesKey),
		open:           open,
		tracer:         otel.Tracer("hotel/repository/object"),
	}
}

func (s *ObjectStore) FindProductAssignments(ctx context.Context) ([]domain.ProductAssignment, error) {
	ctx, span := s.startSpan(ctx, "object.FindProductAssignments", collectionAssignments, s.assignmentsKey)
	defer span.End()

	body, err := s.open(ctx, s.assignmentsKey)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("read %s from %s/%s: %w", collectionAssignments, s.bucket, s.assignmentsKey, err)
	}
	defer body.Close()

	out, err := decodeAssignments(body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

func (s *ObjectStore) FindProductCharges(ctx context.Context) ([]domain.ProductCharge, error) {
	ctx, span := s.startSpan(ctx, "object.FindProductCharges", collectionCharges, s.chargesKey)
	defer span.End()

	body, err := s.open(ctx, s.chargesKey)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("read %s from %s/%s: %w", collectionCharges, s.bucket, s.chargesKey, err)
	}
	defer body.Close()

	out, err := decodeCharges(body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

func (s *ObjectStore) startSpan(ctx context.Context, name, collection, key string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(spanAttributes(storeObject, collection,
		attribute.String("object.bucket", s.bucket),
		attribute.String("object.key", key),
	)...))
}
