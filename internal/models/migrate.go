package models

import (
	"gorm.io/gorm"
)

const thesisIndex = "idx_assets_thesis"

// Migrate runs database migrations. uniqueThesis controls the legacy unique
// constraint on the asset thesis column; toggling it adds or drops the index
// on an existing database.
func Migrate(db *gorm.DB, uniqueThesis bool) error {
	if err := db.AutoMigrate(
		&User{},
		&Asset{},
		&AssetUpdate{},
	); err != nil {
		return err
	}

	hasIndex := db.Migrator().HasIndex(&Asset{}, thesisIndex)
	if uniqueThesis && !hasIndex {
		if err := db.Exec("CREATE UNIQUE INDEX " + thesisIndex + " ON assets(thesis)").Error; err != nil {
			return err
		}
	}
	if !uniqueThesis && hasIndex {
		if err := db.Migrator().DropIndex(&Asset{}, thesisIndex); err != nil {
			return err
		}
	}
	return nil
}
