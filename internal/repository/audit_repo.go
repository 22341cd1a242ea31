package repository

import (
	"context"

	"github.com/mystarhq/notify-api/internal/domain"
	"gorm.io/gorm"
)

// AuditLogRepository appends dispatch-outcome records. Entries are
// write-once; there is no update or delete path.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListByEntity(ctx context.Context, entity string, entityID string) ([]domain.AuditLog, error)
}

type GormAuditLogRepo struct {
	db *gorm.DB
}

func NewGormAuditLogRepo(db *gorm.DB) *GormAuditLogRepo {
	return &GormAuditLogRepo{db: db}
}

func (r *GormAuditLogRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	model := auditLogModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if entry != nil {
		*entry = *auditLogModelToDomain(model)
	}
	return nil
}

func (r *GormAuditLogRepo) ListByEntity(ctx context.Context, entity string, entityID string) ([]domain.AuditLog, error) {
	var models []AuditLogModel
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entries := make([]domain.AuditLog, 0, len(models))
	for i := range models {
		entries = append(entries, *auditLogModelToDomain(&models[i]))
	}

	return entries, nil
}
