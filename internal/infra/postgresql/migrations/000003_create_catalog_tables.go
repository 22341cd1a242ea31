package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/mystarhq/notify-api/internal/repository"
	"gorm.io/gorm"
)

func createCatalogTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000003_create_catalog_tables",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.CreatorModel{}, &repository.VideoAdModel{}); err != nil {
				return err
			}
			indexes := []string{
				`CREATE INDEX IF NOT EXISTS idx_creators_category_active ON creators (category) WHERE active`,
				`CREATE INDEX IF NOT EXISTS idx_video_ads_creator_id ON video_ads (creator_id)`,
				`CREATE INDEX IF NOT EXISTS idx_video_ads_active_created ON video_ads (created_at) WHERE active`,
			}
			for _, sql := range indexes {
				if err := tx.Exec(sql).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.VideoAdModel{}, &repository.CreatorModel{})
		},
	}
}
