package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/smallbiznis/hotelproducts/internal/hotel/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepository struct {
	assignments    []domain.ProductAssignment
	charges        []domain.ProductCharge
	assignmentsErr error
	chargesErr     error

	chargeCalls int
}

func (f *fakeRepository) FindProductAssignments(ctx context.Context) ([]domain.ProductAssignment, error) {
	_ = ctx
	if f.assignmentsErr != nil {
		return nil, f.assignmentsErr
	}
	return f.assignments, nil
}

func (f *fakeRepository) FindProductCharges(ctx context.Context) ([]domain.ProductCharge, error) {
	_ = ctx
	f.chargeCalls++
	if f.chargesErr != nil {
		return nil, f.chargesErr
	}
	return f.charges, nil
}

func newTestService(repo domain.Repository) domain.Service {
	return New(Params{Log: zap.NewNop(), Repo: repo})
}

func boolPtr(v bool) *bool { return &v }

func TestGetHotelProducts_JoinsChargesInSourceOrder(t *testing.T) {
	repo := &fakeRepository{
		assignments: []domain.ProductAssignment{
			{ID: "A1", ReservationUUID: "uuid1", Name: "Assignment 1"},
			{ID: "A2", ReservationUUID: "uuid2", Name: "Assignment 2"},
		},
		charges: []domain.ProductCharge{
			{SpecialProductAssignmentID: "A1", Amount: 100},
			{SpecialProductAssignmentID: "A1", Amount: 200},
			{SpecialProductAssignmentID: "A3", Amount: 400},
		},
	}

	result, err := newTestService(repo).GetHotelProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "A1", result[0].ID)
	require.Len(t, result[0].ProductCharges, 2)
	assert.Equal(t, 100.0, result[0].ProductCharges[0].Amount)
	assert.Equal(t, 200.0, result[0].ProductCharges[1].Amount)

	assert.Equal(t, "A2", result[1].ID)
	assert.NotNil(t, result[1].ProductCharges)
	assert.Empty(t, result[1].ProductCharges)

	for _, p := range result {
		for _, c := range p.ProductCharges {
			assert.NotEqual(t, "A3", c.SpecialProductAssignmentID)
		}
	}
}

func TestGetHotelProducts_CopiesAssignmentFields(t *testing.T) {
	repo := &fakeRepository{
		assignments: []domain.ProductAssignment{
			{ID: "398555", ReservationUUID: "622e142c-594d-4624-97ca-0e7c019ba4cc", Name: "Dinner"},
			{ID: "398556", ReservationUUID: "622e142c-594d-4624-97ca-0e7c019ba4cc", Name: "Breakfast"},
		},
		charges: []domain.ProductCharge{
			{SpecialProductAssignmentID: "398555", Active: boolPtr(true), Amount: 2683.89},
			{SpecialProductAssignmentID: "398556", Active: boolPtr(true), Amount: 1140},
		},
	}

	result, err := newTestService(repo).GetHotelProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, domain.AssignmentWithCharges{
		ID:              "398555",
		ReservationUUID: "622e142c-594d-4624-97ca-0e7c019ba4cc",
		Name:            "Dinner",
		ProductCharges: []domain.ProductCharge{
			{SpecialProductAssignmentID: "398555", Active: boolPtr(true), Amount: 2683.89},
		},
	}, result[0])
}

func TestGetHotelProducts_LimitsToFirstTen(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 15} {
		t.Run(fmt.Sprintf("%d_assignments", n), func(t *testing.T) {
			assignments := make([]domain.ProductAssignment, 0, n)
			for i := 0; i < n; i++ {
				assignments = append(assignments, domain.ProductAssignment{
					ID:              fmt.Sprintf("%d", i+1),
					ReservationUUID: fmt.Sprintf("uuid-%d", i+1),
					Name:            fmt.Sprintf("Product %d", i+1),
				})
			}

			result, err := newTestService(&fakeRepository{assignments: assignments}).GetHotelProducts(context.Background())
			require.NoError(t, err)

			want := n
			if want > domain.MaxHotelProducts {
				want = domain.MaxHotelProducts
			}
			require.Len(t, result, want)
			for i, p := range result {
				assert.Equal(t, assignments[i].ID, p.ID)
			}
		})
	}
}

func TestGetHotelProducts_EmptyAssignmentsReturnsEmptySlice(t *testing.T) {
	result, err := newTestService(&fakeRepository{}).GetHotelProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestGetHotelProducts_KeepsDuplicateCharges(t *testing.T) {
	charge := domain.ProductCharge{SpecialProductAssignmentID: "1", Active: boolPtr(true), Amount: 20}
	repo := &fakeRepository{
		assignments: []domain.ProductAssignment{{ID: "1", ReservationUUID: "r", Name: "Room"}},
		charges:     []domain.ProductCharge{charge, charge, charge},
	}

	result, err := newTestService(repo).GetHotelProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Len(t, result[0].ProductCharges, 3)
}

func TestGetHotelProducts_AssignmentErrorAbortsBeforeCharges(t *testing.T) {
	cause := errors.New("file not found")
	repo := &fakeRepository{assignmentsErr: cause}

	result, err := newTestService(repo).GetHotelProducts(context.Background())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, repo.chargeCalls)
}

func TestGetHotelProducts_ChargeErrorReturnsNoPartialResult(t *testing.T) {
	cause := errors.New("unexpected token")
	repo := &fakeRepository{
		assignments: []domain.ProductAssignment{{ID: "1", ReservationUUID: "r", Name: "Room"}},
		chargesErr:  cause,
	}

	result, err := newTestService(repo).GetHotelProducts(context.Background())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.ErrorIs(t, err, cause)
}

func TestGetReservations_GroupsActiveCharges(t *testing.T) {
	repo := &fakeRepository{
		assignments: []domain.ProductAssignment{
			{ID: "1", ReservationUUID: "res-b", Name: "Dinner"},
			{ID: "2", ReservationUUID: "res-a", Name: "Spa"},
			{ID: "3", ReservationUUID: "res-b", Name: "Breakfast"},
		},
		charges: []domain.ProductCharge{
			{SpecialProductAssignmentID: "1", Active: boolPtr(true), Amount: 0.1},
			{SpecialProductAssignmentID: "3", Active: boolPtr(true), Amount: 0.2},
			{SpecialProductAssignmentID: "3", Active: boolPtr(false), Amount: 50},
			{SpecialProductAssignmentID: "2", Amount: 75},
		},
	}

	groups, err := newTestService(repo).GetReservations(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "res-b", groups[0].ReservationUUID)
	require.Len(t, groups[0].Products, 2)
	assert.Equal(t, "1", groups[0].Products[0].ID)
	assert.Equal(t, "3", groups[0].Products[1].ID)
	assert.Equal(t, 2, groups[0].ActiveCount)
	assert.Equal(t, 0.3, groups[0].TotalActiveAmount)

	assert.Equal(t, "res-a", groups[1].ReservationUUID)
	assert.Equal(t, 0, groups[1].ActiveCount)
	assert.Equal(t, 0.0, groups[1].TotalActiveAmount)
}

func TestGetReservations_PropagatesLoadFailure(t *testing.T) {
	repo := &fakeRepository{assignmentsErr: errors.New("boom")}

	groups, err := newTestService(repo).GetReservations(context.Background())
	assert.Nil(t, groups)
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
}
