package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/mystarhq/notify-api/internal/repository"
	"gorm.io/gorm"
)

func createPlatformConfigTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000004_create_platform_config",
		Migrate: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&repository.PlatformConfigModel{})
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.PlatformConfigModel{})
		},
	}
}
