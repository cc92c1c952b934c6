package parts

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/cheesy-parts/cheesyparts/internal/models"
	"github.com/cheesy-parts/cheesyparts/internal/types"
)

var (
	ErrInvalidType = errors.New("type must be \"part\" or \"assembly\"")
	ErrNameEmpty   = errors.New("name is required")
	ErrHasChildren = errors.New("part has child parts and cannot be deleted")
)

// NewPart carries the user-supplied fields for part creation. The part
// number and status are assigned here, not by the caller.
type NewPart struct {
	ProjectID    uint
	Type         string
	Name         string
	ParentPartID *uint
	Notes        string
	Priority     int
}

// Create validates the request, allocates the part number and inserts
// the part, all inside one transaction. The number allocation reads the
// current maximum for its scope, so the read and the insert must not be
// split across transactions.
func Create(db *gorm.DB, req NewPart) (models.Part, error) {
	if req.Type != types.PartTypePart && req.Type != types.PartTypeAssembly {
		return models.Part{}, ErrInvalidType
	}

	if strings.TrimSpace(req.Name) == "" {
		return models.Part{}, ErrNameEmpty
	}

	var part models.Part

	err := db.Transaction(func(tx *gorm.DB) error {
		number, err := NextPartNumber(tx, req.ProjectID, req.Type, req.ParentPartID)

		if err != nil {
			return err
		}

		part = models.Part{
			ProjectID:    req.ProjectID,
			PartNumber:   number,
			Type:         req.Type,
			Name:         strings.TrimSpace(req.Name),
			ParentPartID: req.ParentPartID,
			Status:       types.DefaultPartStatus,
			Notes:        req.Notes,
			Priority:     req.Priority,
		}

		return tx.Create(&part).Error
	})

	return part, err
}

// HasChildren reports whether any part references the given part as its
// parent.
func HasChildren(db *gorm.DB, partID uint) (bool, error) {
	var count int64

	err := db.Model(&models.Part{}).Where("parent_part_id = ?", partID).Count(&count).Error

	return count > 0, err
}

// Delete removes a childless part. Parts with children are rejected
// with ErrHasChildren; descendants must be deleted bottom-up.
func Delete(db *gorm.DB, part *models.Part) error {
	hasChildren, err := HasChildren(db, part.ID)

	if err != nil {
		return err
	}

	if hasChildren {
		return ErrHasChildren
	}

	return db.Delete(part).Error
}
