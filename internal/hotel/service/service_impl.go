package service

import (
	"context"
	"fmt"

	"github.com/smallbiznis/hotelproducts/internal/hotel/domain"
	obslogger "github.com/smallbiznis/hotelproducts/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/hotelproducts/internal/observability/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Repo    domain.Repository
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	repo    domain.Repository
	metrics *obsmetrics.Metrics
	tracer  trace.Tracer
}

func New(p Params) domain.Service {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		log:     log.Named("hotel.service"),
		repo:    p.Repo,
		metrics: p.Metrics,
		tracer:  otel.Tracer("hotel/service"),
	}
}

func (s *Service) GetHotelProducts(ctx context.Context) ([]domain.AssignmentWithCharges, error) {
	ctx, span := s.tracer.Start(ctx, "hotel.GetHotelProducts")
	defer span.End()

	assignments, charges, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}

	result := joinCharges(assignments, charges, domain.MaxHotelProducts)
	span.SetAttributes(
		attribute.Int("hotel.assignments", len(assignments)),
		attribute.Int("hotel.charges", len(charges)),
		attribute.Int("hotel.products_returned", len(result)),
	)
	s.metrics.RecordProductsServed(ctx, len(result))

	return result, nil
}

func (s *Service) GetReservations(ctx context.Context) ([]domain.ReservationGroup, error) {
	ctx, span := s.tracer.Start(ctx, "hotel.GetReservations")
	defer span.End()

	products, err := s.GetHotelProducts(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}

	groups := groupByReservation(products)
	span.SetAttributes(attribute.Int("hotel.reservations", len(groups)))
	return groups, nil
}

// load reads both collections. Either failure aborts the whole operation.
func (s *Service) load(ctx context.Context) ([]domain.ProductAssignment, []domain.ProductCharge, error) {
	assignments, err := s.repo.FindProductAssignments(ctx)
	if err != nil {
		s.logLoadFailure(ctx, "product_assignments", err)
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}

	charges, err := s.repo.FindProductCharges(ctx)
	if err != nil {
		s.logLoadFailure(ctx, "product_charges", err)
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}

	return assignments, charges, nil
}

func (s *Service) logLoadFailure(ctx context.Context, collection string, err error) {
	obslogger.WithContext(ctx, s.log).Error("error processing hotel products",
		zap.String("collection", collection),
		zap.Error(err),
	)
	s.metrics.RecordLoadFailure(ctx, collection)
}
