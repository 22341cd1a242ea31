package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mystarhq/notify-api/internal/domain"
	"github.com/mystarhq/notify-api/internal/service"
)

type CatalogService interface {
	ListVideoAds(ctx context.Context, category string, query string) ([]domain.VideoAd, error)
	GetCreatorProfile(ctx context.Context, creatorID string) (*service.CreatorProfile, error)
	Categories(ctx context.Context) ([]string, error)
}

type CatalogHandler struct {
	service CatalogService
}

func NewCatalogHandler(service CatalogService) (*CatalogHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	return &CatalogHandler{service: service}, nil
}

func RegisterCatalogRoutes(router fiber.Router, service CatalogService) error {
	h, err := NewCatalogHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Get("/video-ads", h.ListVideoAds)
	v1.Get("/creators/:id", h.GetCreator)
	v1.Get("/categories", h.ListCategories)

	return nil
}

type creatorResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Category  string  `json:"category"`
	Bio       *string `json:"bio,omitempty"`
}

type videoAdResponse struct {
	ID             string           `json:"id"`
	CreatorID      string           `json:"creatorId"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Price          float64          `json:"price"`
	Duration       string           `json:"duration"`
	ThumbnailURL   *string          `json:"thumbnailUrl,omitempty"`
	SampleVideoURL *string          `json:"sampleVideoUrl,omitempty"`
	Requirements   *string          `json:"requirements,omitempty"`
	Creator        *creatorResponse `json:"creator,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

type videoAdListResponse struct {
	Data []videoAdResponse `json:"data"`
}

type creatorProfileResponse struct {
	Creator  creatorResponse   `json:"creator"`
	VideoAds []videoAdResponse `json:"videoAds"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *CatalogHandler) ListVideoAds(c *fiber.Ctx) error {
	ads, err := h.service.ListVideoAds(c.Context(), c.Query("category"), c.Query("q"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(videoAdListResponse{
		Data: toVideoAdResponses(ads),
	})
}

func (h *CatalogHandler) GetCreator(c *fiber.Ctx) error {
	profile, err := h.service.GetCreatorProfile(c.Context(), c.Params("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(creatorProfileResponse{
		Creator:  toCreatorResponse(&profile.Creator),
		VideoAds: toVideoAdResponses(profile.Ads),
	})
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.Context())
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(categoriesResponse{
		Categories: categories,
	})
}

func toCreatorResponse(creator *domain.Creator) creatorResponse {
	if creator == nil {
		return creatorResponse{}
	}

	return creatorResponse{
		ID:        creator.ID,
		Name:      creator.Name,
		AvatarURL: creator.AvatarURL,
		Category:  creator.Category,
		Bio:       creator.Bio,
	}
}

func toVideoAdResponses(ads []domain.VideoAd) []videoAdResponse {
	responses := make([]videoAdResponse, 0, len(ads))
	for i := range ads {
		ad := &ads[i]
		item := videoAdResponse{
			ID:             ad.ID,
			CreatorID:      ad.CreatorID,
			Title:          ad.Title,
			Description:    ad.Description,
			Price:          ad.Price,
			Duration:       ad.Duration,
			ThumbnailURL:   ad.ThumbnailURL,
			SampleVideoURL: ad.SampleVideoURL,
			Requirements:   ad.Requirements,
			CreatedAt:      ad.CreatedAt,
		}
		if ad.Creator != nil {
			creator := toCreatorResponse(ad.Creator)
			item.Creator = &creator
		}
		responses = append(responses, item)
	}
	return responses
}
