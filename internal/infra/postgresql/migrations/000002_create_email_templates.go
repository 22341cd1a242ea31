package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/mystarhq/notify-api/internal/repository"
	"gorm.io/gorm"
)

const welcomeTemplateContent = `<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; text-align: right;">
  <h1 style="color: #0284c7; text-align: center;">ברוך הבא ל-MyStar!</h1>
  <p>שלום {{name}},</p>
  <p>שמחים שהצטרפת אלינו. אפשר להתחבר בכל רגע דרך <a href="{{loginUrl}}" style="color: #0284c7;">דף ההתחברות</a>.</p>
</div>`

func createEmailTemplatesTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_create_email_templates",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.EmailTemplateModel{}); err != nil {
				return err
			}
			// Seed the welcome template so a fresh environment can send
			// the signup greeting without manual setup.
			return tx.Exec(
				`INSERT INTO email_templates (id, name, content, created_at, updated_at)
				 VALUES (gen_random_uuid(), 'welcome', ?, NOW(), NOW())
				 ON CONFLICT (name) DO NOTHING`,
				welcomeTemplateContent,
			).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.EmailTemplateModel{})
		},
	}
}
