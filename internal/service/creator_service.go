package service

import (
	"context"
	"encoding/json"

	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	pkgcache "github.com/sortmyai/sortmyai-backend/pkg/cache"
)

// CreatorService public creator profile reads
type CreatorService interface {
	GetProfile(ctx context.Context, handle, viewerUID string) (*domain.ProfileResponse, error)
}

type creatorService struct {
	repo    repository.CreatorRepository
	follows FollowService
	cache   pkgcache.Service
}

// NewCreatorService creates a new CreatorService
func NewCreatorService(repo repository.CreatorRepository, follows FollowService, cache pkgcache.Service) CreatorService {
	return &creatorService{
		repo:    repo,
		follows: follows,
		cache:   cache,
	}
}

// GetProfile returns the public view of a creator. The cached entry is
// viewer-independent; is_following is resolved per request.
func (s *creatorService) GetProfile(ctx context.Context, handle, viewerUID string) (*domain.ProfileResponse, error) {
	var profile *domain.ProfileResponse

	if s.cache != nil {
		if data, err := s.cache.GetProfile(ctx, handle); err == nil && data != nil {
			var cached domain.ProfileResponse
			if json.Unmarshal(data, &cached) == nil {
				profile = &cached
			}
		}
	}

	if profile == nil {
		creator, err := s.repo.FindByHandle(handle)
		if err != nil {
			return nil, err
		}
		if creator == nil {
			return nil, common.ErrUserNotFound
		}
		profile = creator.ToProfileResponse()

		if s.cache != nil {
			_ = s.cache.SetProfile(ctx, handle, profile)
		}
	}

	if viewerUID != "" && viewerUID != profile.UID {
		following, err := s.follows.IsFollowing(ctx, viewerUID, profile.UID)
		if err == nil {
			profile.IsFollowing = following
		}
	}

	return profile, nil
}
