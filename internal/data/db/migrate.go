package db

import (
	"fmt"

	types "github.com/yungbote/people-notes-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.Person{},
		&types.Note{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// ResetSchema drops both tables (children first) and migrates them again.
func ResetSchema(db *gorm.DB) error {
	if err := db.Migrator().DropTable(&types.Note{}, &types.Person{}); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return AutoMigrateAll(db)
}
