package repository

import (
	"fmt"

	"github.com/dangerclosesec/crmboard/internal/position"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// loadOrder reads the ordering view of the rows of table m under one parent.
func loadOrder(tx *gorm.DB, m any, parentColumn string, parentID uuid.UUID) ([]position.Item, error) {
	var items []position.Item
	err := tx.Model(m).
		Select("id", "position", "created_at").
		Where(parentColumn+" = ?", parentID).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("loading positions: %w", classify(err))
	}
	return items, nil
}

// applyOrder writes dense positions for order, touching only changed rows.
func applyOrder(tx *gorm.DB, m any, items []position.Item, order []uuid.UUID) error {
	for id, pos := range position.Diff(items, position.Assign(order)) {
		if err := tx.Model(m).Where("id = ?", id).UpdateColumn("position", pos).Error; err != nil {
			return fmt.Errorf("updating position: %w", classify(err))
		}
	}
	return nil
}

// renumber closes the gaps left in a sibling set after deletes.
func renumber(tx *gorm.DB, m any, parentColumn string, parentID uuid.UUID) error {
	items, err := loadOrder(tx, m, parentColumn, parentID)
	if err != nil {
		return err
	}
	return applyOrder(tx, m, items, position.Normalize(items))
}
