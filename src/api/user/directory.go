// Package user exposes read-only lookups over registered users and the
// verifier subset.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/social-watch/rumour-tracker/src/api/types"
	"gorm.io/gorm"
)

type Directory struct{ db *gorm.DB }

func NewDirectory(db *gorm.DB) Directory { return Directory{db: db} }

// List returns every registered user ordered by identifier.
func (d Directory) List(ctx context.Context) ([]types.User, error) {
	var users []types.User
	err := d.db.WithContext(ctx).Order("user_id").Find(&users).Error
	return users, err
}

// Verifiers returns users with the verifier role ordered by handle.
func (d Directory) Verifiers(ctx context.Context) ([]types.User, error) {
	var users []types.User
	err := d.db.WithContext(ctx).
		Where("role = ?", types.RoleVerifier).
		Order("username").
		Find(&users).Error
	return users, err
}

func (d Directory) Get(ctx context.Context, userID uint64) (types.User, error) {
	var u types.User
	if err := d.db.WithContext(ctx).First(&u, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.User{}, fmt.Errorf("user %d: %w", userID, types.ErrNotFound)
		}
		return types.User{}, err
	}
	return u, nil
}
