package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hotelproducts/internal/hotel/domain"
	"gorm.io/gorm"
)

// AssignmentRow is the persisted form of a product assignment. Row IDs are
// snowflake IDs handed out in source order, so ordering by ID reproduces the
// original collection order.
type AssignmentRow struct {
	ID              int64  `gorm:"primaryKey;autoIncrement:false"`
	AssignmentID    string `gorm:"column:assignment_id;type:text;not null;index"`
	ReservationUUID string `gorm:"column:reservation_uuid;type:text;not null"`
	Name            string `gorm:"type:text;not null"`
}

func (AssignmentRow) TableName() string { return "product_assignments" }

type ChargeRow struct {
	ID                         int64   `gorm:"primaryKey;autoIncrement:false"`
	SpecialProductAssignmentID string  `gorm:"column:special_product_assignment_id;type:text;not null;index"`
	Active                     *bool   `gorm:"column:active"`
	Amount                     float64 `gorm:"column:amount;not null"`
}

func (ChargeRow) TableName() string { return "product_charges" }

// DatabaseStore reads both collections from relational tables.
type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (s *DatabaseStore) FindProductAssignments(ctx context.Context) ([]domain.ProductAssignment, error) {
	var rows []AssignmentRow
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read %s: %w", collectionAssignments, err)
	}

	out := make([]domain.ProductAssignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ProductAssignment{
			ID:              row.AssignmentID,
			ReservationUUID: row.ReservationUUID,
			Name:            row.Name,
		})
	}
	return out, nil
}

func (s *DatabaseStore) FindProductCharges(ctx context.Context) ([]domain.ProductCharge, error) {
	var rows []ChargeRow
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read %s: %w", collectionCharges, err)
	}

	out := make([]domain.ProductCharge, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ProductCharge{
			SpecialProductAssignmentID: row.SpecialProductAssignmentID,
			Active:                     row.Active,
			Amount:                     row.Amount,
		})
	}
	return out, nil
}

// Replace swaps the stored collections for the given ones in a single
// transaction.
func (s *DatabaseStore) Replace(ctx context.Context, genID *snowflake.Node, assignments []domain.ProductAssignment, charges []domain.ProductCharge) error {
	if genID == nil {
		return errors.New("snowflake node is required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&ChargeRow{}).Error; err != nil {
			return fmt.Errorf("clear %s: %w", collectionCharges, err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&AssignmentRow{}).Error; err != nil {
			return fmt.Errorf("clear %s: %w", collectionAssignments, err)
		}

		if len(assignments) > 0 {
			rows := make([]AssignmentRow, 0, len(assignments))
			for _, a := range assignments {
				rows = append(rows, AssignmentRow{
					ID:              genID.Generate().Int64(),
					AssignmentID:    a.ID,
					ReservationUUID: a.ReservationUUID,
					Name:            a.Name,
				})
			}
			if err := tx.CreateInBatches(rows, 500).Error; err != nil {
				return fmt.Errorf("insert %s: %w", collectionAssignments, err)
			}
		}

		if len(charges) > 0 {
			rows := make([]ChargeRow, 0, len(charges))
			for _, c := range charges {
				rows = append(rows, ChargeRow{
					ID:                         genID.Generate().Int64(),
					SpecialProductAssignmentID: c.SpecialProductAssignmentID,
					Active:                     c.Active,
					Amount:                     c.Amount,
				})
			}
			if err := tx.CreateInBatches(rows, 500).Error; err != nil {
				return fmt.Errorf("insert %s: %w", collectionCharges, err)
			}
		}
		return nil
	})
}

// AutoMigrate creates the tables for dialects not covered by SQL migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&AssignmentRow{}, &ChargeRow{})
}
