package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	pkglogger "github.com/sortmyai/sortmyai-backend/pkg/logger"
	"github.com/sortmyai/sortmyai-backend/pkg/storage"
	"gorm.io/gorm"
)

const uploadURLExpiry = 15 * time.Minute

// UploadTicket is a pre-signed upload grant for client-side media upload
type UploadTicket struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	ExpiresIn int    `json:"expires_in"`
}

// PortfolioService creator portfolio business logic
type PortfolioService interface {
	CreateItem(ctx context.Context, creatorUID string, req *domain.CreatePortfolioItemRequest) (*domain.PortfolioItemResponse, error)
	ListItems(ctx context.Context, creatorUID string, page, limit int) ([]*domain.PortfolioItemResponse, *common.Meta, error)
	UpdateItem(ctx context.Context, creatorUID, itemID string, req *domain.UpdatePortfolioItemRequest) (*domain.PortfolioItemResponse, error)
	DeleteItem(ctx context.Context, creatorUID, itemID string) error
	PrepareUpload(ctx context.Context, creatorUID, filename, contentType string) (*UploadTicket, error)
}

type portfolioService struct {
	repo    repository.PortfolioRepository
	tools   repository.ToolRepository
	awards  GamificationService
	storage *storage.S3Client
}

// NewPortfolioService creates a new PortfolioService. storage may be nil;
// responses then carry keys without resolved media URLs and PrepareUpload
// is unavailable.
func NewPortfolioService(repo repository.PortfolioRepository, tools repository.ToolRepository, awards GamificationService, s3 *storage.S3Client) PortfolioService {
	return &portfolioService{
		repo:    repo,
		tools:   tools,
		awards:  awards,
		storage: s3,
	}
}

func (s *portfolioService) CreateItem(ctx context.Context, creatorUID string, req *domain.CreatePortfolioItemRequest) (*domain.PortfolioItemResponse, error) {
	if req.ToolID != "" {
		tool, err := s.tools.FindByID(req.ToolID)
		if err != nil {
			return nil, err
		}
		if tool == nil {
			return nil, common.ErrToolNotFound
		}
	}

	item := &domain.PortfolioItem{
		ID:          uuid.New().String(),
		CreatorUID:  creatorUID,
		Title:       req.Title,
		Description: req.Description,
		MediaKey:    req.MediaKey,
		MediaType:   req.MediaType,
		ToolID:      req.ToolID,
	}

	if err := s.repo.Create(item); err != nil {
		return nil, err
	}

	if s.awards != nil {
		if err := s.awards.AwardPortfolioItem(ctx, creatorUID, item.ID); err != nil {
			pkglogger.GetLogger().Warn().Err(err).
				Str("uid", creatorUID).
				Msg("portfolio award failed")
		}
	}

	return s.toResponse(item), nil
}

func (s *portfolioService) ListItems(ctx context.Context, creatorUID string, page, limit int) ([]*domain.PortfolioItemResponse, *common.Meta, error) {
	page, limit = clampPage(page, limit)

	items, total, err := s.repo.ListByCreator(creatorUID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.PortfolioItemResponse, len(items))
	for i, item := range items {
		responses[i] = s.toResponse(item)
	}
	return responses, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

func (s *portfolioService) UpdateItem(ctx context.Context, creatorUID, itemID string, req *domain.UpdatePortfolioItemRequest) (*domain.PortfolioItemResponse, error) {
	item, err := s.repo.FindByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, common.ErrNotFound
	}
	if item.CreatorUID != creatorUID {
		return nil, common.ErrForbidden
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}

	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	return s.toResponse(item), nil
}

func (s *portfolioService) DeleteItem(ctx context.Context, creatorUID, itemID string) error {
	item, err := s.repo.FindByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return common.ErrNotFound
	}
	if item.CreatorUID != creatorUID {
		return common.ErrForbidden
	}

	if err := s.repo.Delete(itemID, creatorUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNotFound
		}
		return err
	}

	if s.storage != nil && item.MediaKey != "" {
		if err := s.storage.Delete(ctx, item.MediaKey); err != nil {
			pkglogger.GetLogger().Warn().Err(err).
				Str("key", item.MediaKey).
				Msg("media cleanup failed")
		}
	}
	return nil
}

func (s *portfolioService) PrepareUpload(ctx context.Context, creatorUID, filename, contentType string) (*UploadTicket, error) {
	if s.storage == nil {
		return nil, common.ErrInvalidInput
	}
	if filename == "" || contentType == "" {
		return nil, common.ErrInvalidInput
	}

	key := storage.GenerateKey("portfolio/"+creatorUID, filename)
	uploadURL, err := s.storage.GetPresignedUploadURL(ctx, key, contentType, uploadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &UploadTicket{
		Key:       key,
		UploadURL: uploadURL,
		ExpiresIn: int(uploadURLExpiry.Seconds()),
	}, nil
}

func (s *portfolioService) toResponse(item *domain.PortfolioItem) *domain.PortfolioItemResponse {
	resp := item.ToResponse()
	if s.storage != nil && item.MediaKey != "" {
		resp.MediaURL = s.storage.GetCDNURL(item.MediaKey)
	}
	return resp
}
