package domain

import (
	"context"
	"errors"
)

// MaxHotelProducts caps how many assignments GetHotelProducts returns.
const MaxHotelProducts = 10

const (
	MessageProductsRetrieved     = "Hotel products retrieved successfully"
	MessageReservationsRetrieved = "Hotel reservations retrieved successfully"
	MessageProductsFailed        = "Failed to retrieve hotel products"
)

type Service interface {
	GetHotelProducts(ctx context.Context) ([]AssignmentWithCharges, error)
	GetReservations(ctx context.Context) ([]ReservationGroup, error)
}

var (
	ErrLoadFailed = errors.New("hotel_products_load_failed")
)
