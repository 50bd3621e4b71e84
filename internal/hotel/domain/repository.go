package domain

import "context"

// Repository loads the two source collections. Implementations must return
// the full collection in source order and re-read the backing store on every
// call.
type Repository interface {
	FindProductAssignments(ctx context.Context) ([]ProductAssignment, error)
	FindProductCharges(ctx context.Context) ([]ProductCharge, error)
}
