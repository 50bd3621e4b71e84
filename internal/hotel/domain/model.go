package domain

type ProductAssignment struct {
	ID              string `json:"id"`
	ReservationUUID string `json:"reservation_uuid"`
	Name            string `json:"name"`
}

type ProductCharge struct {
	SpecialProductAssignmentID string  `json:"special_product_assignment_id"`
	Active                     *bool   `json:"active,omitempty"`
	Amount                     float64 `json:"amount"`
}

// IsActive reports whether the charge is explicitly active. A charge without
// an active flag counts as inactive.
func (c ProductCharge) IsActive() bool {
	return c.Active != nil && *c.Active
}

type AssignmentWithCharges struct {
	ID              string          `json:"id"`
	ReservationUUID string          `json:"reservation_uuid"`
	Name            string          `json:"name"`
	ProductCharges  []ProductCharge `json:"product_charges"`
}

type ReservationGroup struct {
	ReservationUUID   string                  `json:"reservation_uuid"`
	Products          []AssignmentWithCharges `json:"products"`
	ActiveCount       int                     `json:"activeCount"`
	TotalActiveAmount float64                 `json:"totalActiveAmount"`
}
