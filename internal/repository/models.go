package repository

import (
	"time"

	"github.com/mystarhq/notify-api/internal/domain"
)

// AuditLogModel is the persistence model for the audit_logs table.
type AuditLogModel struct {
	ID        string             `gorm:"type:uuid;primaryKey"`
	Action    domain.AuditAction `gorm:"type:varchar(64);not null"`
	Entity    string             `gorm:"type:varchar(32);not null"`
	EntityID  *string            `gorm:"type:varchar(64)"`
	UserID    *string            `gorm:"type:uuid"`
	Details   domain.JSONMap     `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// EmailTemplateModel is the persistence model for email_templates.
type EmailTemplateModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmailTemplateModel) TableName() string {
	return "email_templates"
}

// CreatorModel is the persistence model for creators.
type CreatorModel struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	Name      string  `gorm:"type:varchar(255);not null"`
	AvatarURL *string `gorm:"type:text"`
	Category  string  `gorm:"type:varchar(64);not null"`
	Bio       *string `gorm:"type:text"`
	Active    bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CreatorModel) TableName() string {
	return "creators"
}

// VideoAdModel is the persistence model for video_ads.
type VideoAdModel struct {
	ID             string  `gorm:"type:uuid;primaryKey"`
	CreatorID      string  `gorm:"type:uuid;not null"`
	Title          string  `gorm:"type:varchar(255);not null"`
	Description    string  `gorm:"type:text;not null"`
	Price          float64 `gorm:"type:numeric(10,2);not null"`
	Duration       string  `gorm:"type:varchar(32);not null"`
	ThumbnailURL   *string `gorm:"type:text"`
	SampleVideoURL *string `gorm:"type:text"`
	Requirements   *string `gorm:"type:text"`
	Active         bool    `gorm:"not null;default:true"`
	Creator        *CreatorModel
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (VideoAdModel) TableName() string {
	return "video_ads"
}

// PlatformConfigModel is the persistence model for platform_config,
// a key/value table of admin-managed settings.
type PlatformConfigModel struct {
	Key       string         `gorm:"type:varchar(64);primaryKey"`
	Value     domain.JSONMap `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (PlatformConfigModel) TableName() string {
	return "platform_config"
}

func auditLogModelFromDomain(e *domain.AuditLog) *AuditLogModel {
	if e == nil {
		return nil
	}

	return &AuditLogModel{
		ID:        e.ID,
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		UserID:    e.UserID,
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
}

func auditLogModelToDomain(m *AuditLogModel) *domain.AuditLog {
	if m == nil {
		return nil
	}

	return &domain.AuditLog{
		ID:        m.ID,
		Action:    m.Action,
		Entity:    m.Entity,
		EntityID:  m.EntityID,
		UserID:    m.UserID,
		Details:   m.Details,
		CreatedAt: m.CreatedAt,
	}
}

func templateModelToDomain(m *EmailTemplateModel) *domain.EmailTemplate {
	if m == nil {
		return nil
	}

	return &domain.EmailTemplate{
		ID:        m.ID,
		Name:      m.Name,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func creatorModelToDomain(m *CreatorModel) *domain.Creator {
	if m == nil {
		return nil
	}

	return &domain.Creator{
		ID:        m.ID,
		Name:      m.Name,
		AvatarURL: m.AvatarURL,
		Category:  m.Category,
		Bio:       m.Bio,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func videoAdModelToDomain(m *VideoAdModel) *domain.VideoAd {
	if m == nil {
		return nil
	}

	return &domain.VideoAd{
		ID:             m.ID,
		CreatorID:      m.CreatorID,
		Title:          m.Title,
		Description:    m.Description,
		Price:          m.Price,
		Duration:       m.Duration,
		ThumbnailURL:   m.ThumbnailURL,
		SampleVideoURL: m.SampleVideoURL,
		Requirements:   m.Requirements,
		Active:         m.Active,
		Creator:        creatorModelToDomain(m.Creator),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
