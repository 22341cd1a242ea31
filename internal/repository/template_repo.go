package repository

import (
	"context"
	"errors"

	"github.com/mystarhq/notify-api/internal/domain"
	"gorm.io/gorm"
)

// TemplateRepository reads email templates. Templates are owned by the
// database and read-only to this service.
type TemplateRepository interface {
	GetByName(ctx context.Context, name string) (*domain.EmailTemplate, error)
}

type GormTemplateRepo struct {
	db *gorm.DB
}

func NewGormTemplateRepo(db *gorm.DB) *GormTemplateRepo {
	return &GormTemplateRepo{db: db}
}

func (r *GormTemplateRepo) GetByName(ctx context.Context, name string) (*domain.EmailTemplate, error) {
	var model EmailTemplateModel
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return templateModelToDomain(&model), nil
}
