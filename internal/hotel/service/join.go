package service

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/hotelproducts/internal/hotel/domain"
)

// joinCharges left-joins the first limit assignments to their charges. Charge
// order follows the source collection; charges for unknown assignments are
// dropped.
func joinCharges(assignments []domain.ProductAssignment, charges []domain.ProductCharge, limit int) []domain.AssignmentWithCharges {
	if limit < 0 || limit > len(assignments) {
		limit = len(assignments)
	}
	kept := assignments[:limit]

	index := make(map[string][]domain.ProductCharge, len(kept))
	for _, a := range kept {
		index[a.ID] = nil
	}
	for _, c := range charges {
		matched, ok := index[c.SpecialProductAssignmentID]
		if !ok {
			continue
		}
		index[c.SpecialProductAssignmentID] = append(matched, c)
	}

	result := make([]domain.AssignmentWithCharges, 0, len(kept))
	for _, a := range kept {
		matched := make([]domain.ProductCharge, len(index[a.ID]))
		copy(matched, index[a.ID])
		result = append(result, domain.AssignmentWithCharges{
			ID:              a.ID,
			ReservationUUID: a.ReservationUUID,
			Name:            a.Name,
			ProductCharges:  matched,
		})
	}
	return result
}

// groupByReservation groups products by reservation in first-seen order.
func groupByReservation(products []domain.AssignmentWithCharges) []domain.ReservationGroup {
	groups := make([]domain.ReservationGroup, 0)
	totals := make([]decimal.Decimal, 0)
	positions := make(map[string]int)

	for _, p := range products {
		pos, ok := positions[p.ReservationUUID]
		if !ok {
			pos = len(groups)
			positions[p.ReservationUUID] = pos
			groups = append(groups, domain.ReservationGroup{
				ReservationUUID: p.ReservationUUID,
				Products:        []domain.AssignmentWithCharges{},
			})
			totals = append(totals, decimal.Zero)
		}

		groups[pos].Products = append(groups[pos].Products, p)
		for _, c := range p.ProductCharges {
			if !c.IsActive() {
				continue
			}
			groups[pos].ActiveCount++
			totals[pos] = totals[pos].Add(decimal.NewFromFloat(c.Amount))
		}
	}

	for i := range groups {
		groups[i].TotalActiveAmount = totals[i].InexactFloat64()
	}
	return groups
}
