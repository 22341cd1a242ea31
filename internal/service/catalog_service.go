package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mystarhq/notify-api/internal/domain"
	"github.com/mystarhq/notify-api/internal/repository"
	"go.uber.org/zap"
)

const (
	categoriesConfigKey = "categories"
	categoriesCacheTTL  = time.Minute
)

// CatalogCache shadows the admin category dictionary; errors are
// treated as misses.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CreatorProfile is a creator together with their active listings.
type CreatorProfile struct {
	Creator domain.Creator
	Ads     []domain.VideoAd
}

// CatalogService serves the storefront browse surface.
type CatalogService struct {
	repo   repository.CatalogRepository
	cache  CatalogCache
	logger *zap.Logger
}

func NewCatalogService(repo repository.CatalogRepository, cache CatalogCache, logger *zap.Logger) (*CatalogService, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, cache: cache, logger: logger}, nil
}

// ListVideoAds returns active listings filtered by category code and a
// free-text search over title, description and creator name.
func (s *CatalogService) ListVideoAds(ctx context.Context, category string, query string) ([]domain.VideoAd, error) {
	ads, err := s.repo.ListVideoAds(ctx, repository.VideoAdListParams{
		Category: strings.TrimSpace(category),
		Query:    strings.TrimSpace(query),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list video ads: %w", err)
	}
	return ads, nil
}

// GetCreatorProfile returns an active creator and their active ads.
func (s *CatalogService) GetCreatorProfile(ctx context.Context, creatorID string) (*CreatorProfile, error) {
	id := strings.TrimSpace(creatorID)
	if id == "" {
		return nil, fmt.Errorf("%w: creator id is required", domain.ErrValidation)
	}

	creator, err := s.repo.GetCreator(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: creator %q", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}

	ads, err := s.repo.ListAdsByCreator(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator ads: %w", err)
	}

	return &CreatorProfile{Creator: *creator, Ads: ads}, nil
}

// Categories returns the browse category codes, ordered by the admin
// dictionary when one exists and falling back to the built-in list
// otherwise. The resolved list is cached briefly.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		var cached []string
		if err := s.cache.Get(ctx, categoriesConfigKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	codes := s.loadCategoryCodes(ctx)

	if s.cache != nil {
		if err := s.cache.Set(ctx, categoriesConfigKey, codes, categoriesCacheTTL); err != nil {
			s.logger.Warn("failed to cache categories", zap.Error(err))
		}
	}

	return codes, nil
}

func (s *CatalogService) loadCategoryCodes(ctx context.Context) []string {
	config, err := s.repo.GetPlatformConfig(ctx, categoriesConfigKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("failed to load category dictionary", zap.Error(err))
		}
		return domain.DefaultCategories
	}

	categories := parseCategories(config)
	if len(categories) == 0 {
		return domain.DefaultCategories
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})

	codes := make([]string, 0, len(categories))
	for _, c := range categories {
		if !c.Active {
			continue
		}
		codes = append(codes, domain.CategoryCode(c.Name))
	}

	if len(codes) == 0 {
		return domain.DefaultCategories
	}
	return codes
}

// parseCategories decodes the admin dictionary stored under the
// "items" key of the platform_config row.
func parseCategories(config domain.JSONMap) []domain.Category {
	raw, ok := config["items"]
	if !ok {
		return nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil
	}
	return categories
}
