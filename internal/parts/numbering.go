package parts

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/types"
)

// NextPartNumber computes the number for a new part or assembly in a
// project. Assemblies advance in steps of 100 from the highest existing
// assembly number (first is 100). Parentless parts advance by one from
// the highest parentless part number (first is 1). A child part takes
// its highest sibling's number plus one, or the parent's own number
// plus one when it is the first child. Numbers freed by deletion are
// never refilled.
//
// A parent ID that matches no part falls through to the parentless
// rule rather than failing.
func NextPartNumber(tx *gorm.DB, projectID uint, partType string, parentPartID *uint) (uint, error) {
	if partType == types.PartTypeAssembly {
		max, err := maxNumber(tx.Model(&models.Part{}).
			Where("project_id = ? AND type = ?", projectID, types.PartTypeAssembly))
		if err != nil {
			return 0, err
		}
		if max.Valid {
			return uint(max.Int64) + 100, nil
		}
		return 100, nil
	}

	if parentPartID != nil {
		var parent models.Part

		err := tx.Where("id = ?", *parentPartID).First(&parent).Error

		if err == nil {
			max, err := maxNumber(tx.Model(&models.Part{}).
				Where("type = ? AND parent_part_id = ?", types.PartTypePart, parent.ID))
			if err != nil {
				return 0, err
			}
			if max.Valid {
				return uint(max.Int64) + 1, nil
			}
			return parent.PartNumber + 1, nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		// Missing parent: number as if parentless.
	}

	max, err := maxNumber(tx.Model(&models.Part{}).
		Where("project_id = ? AND type = ? AND parent_part_id IS NULL", projectID, types.PartTypePart))
	if err != nil {
		return 0, err
	}
	if max.Valid {
		return uint(max.Int64) + 1, nil
	}
	return 1, nil
}

func maxNumber(query *gorm.DB) (sql.NullInt64, error) {
	var max sql.NullInt64

	err := query.Select("MAX(part_number)").Scan(&max).Error

	return max, err
}
