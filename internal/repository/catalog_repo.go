package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/mystarhq/notify-api/internal/domain"
	"gorm.io/gorm"
)

// VideoAdListParams filters the storefront browse query. Only active
// ads with an active creator are ever returned.
type VideoAdListParams struct {
	Category string
	Query    string
}

// CatalogRepository serves the read-only browse surface: listings,
// creator profiles, and the admin category dictionary.
type CatalogRepository interface {
	ListVideoAds(ctx context.Context, params VideoAdListParams) ([]domain.VideoAd, error)
	GetCreator(ctx context.Context, id string) (*domain.Creator, error)
	ListAdsByCreator(ctx context.Context, creatorID string) ([]domain.VideoAd, error)
	GetPlatformConfig(ctx context.Context, key string) (domain.JSONMap, error)
}

type GormCatalogRepo struct {
	db *gorm.DB
}

func NewGormCatalogRepo(db *gorm.DB) *GormCatalogRepo {
	return &GormCatalogRepo{db: db}
}

func (r *GormCatalogRepo) ListVideoAds(ctx context.Context, params VideoAdListParams) ([]domain.VideoAd, error) {
	query := r.db.WithContext(ctx).
		Model(&VideoAdModel{}).
		Joins("Creator").
		Where("video_ads.active = ?", true).
		Where(`"Creator"."active" = ?`, true)

	if category := strings.TrimSpace(params.Category); category != "" && category != "all" {
		query = query.Where(`"Creator"."category" = ?`, category)
	}

	if search := strings.TrimSpace(params.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			`LOWER(video_ads.title) LIKE ? OR LOWER(video_ads.description) LIKE ? OR LOWER("Creator"."name") LIKE ?`,
			pattern, pattern, pattern,
		)
	}

	var models []VideoAdModel
	if err := query.Order("video_ads.created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	ads := make([]domain.VideoAd, 0, len(models))
	for i := range models {
		ads = append(ads, *videoAdModelToDomain(&models[i]))
	}

	return ads, nil
}

func (r *GormCatalogRepo) GetCreator(ctx context.Context, id string) (*domain.Creator, error) {
	var model CreatorModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return creatorModelToDomain(&model), nil
}

func (r *GormCatalogRepo) ListAdsByCreator(ctx context.Context, creatorID string) ([]domain.VideoAd, error) {
	var models []VideoAdModel
	err := r.db.WithContext(ctx).
		Where("creator_id = ? AND active = ?", creatorID, true).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	ads := make([]domain.VideoAd, 0, len(models))
	for i := range models {
		ads = append(ads, *videoAdModelToDomain(&models[i]))
	}

	return ads, nil
}

func (r *GormCatalogRepo) GetPlatformConfig(ctx context.Context, key string) (domain.JSONMap, error) {
	var model PlatformConfigModel
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.Value, nil
}
