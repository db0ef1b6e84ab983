package repository

import (
	"errors"

	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
)

// first loads one row matched by q. A missing row is reported as found=false, not an error.
func first[T any](q *gorm.DB, op string) (*T, bool, error) {
	var out T
	err := q.First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.NewQueryError(op, err)
	}
	return &out, true, nil
}
