package data

import (
	"github.com/social-watch/rumour-tracker/src/api/types"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for the three core tables plus the
// settings table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.Rumour{},
		&types.Report{},
		&types.Setting{},
	)
}
