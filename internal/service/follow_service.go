package service

import (
	"context"

	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	pkgcache "github.com/sortmyai/sortmyai-backend/pkg/cache"
	pkglogger "github.com/sortmyai/sortmyai-backend/pkg/logger"
)

// FollowService maintains the directed follow graph and the denormalized
// follower/following counters
type FollowService interface {
	Follow(ctx context.Context, actorUID, targetUID string) (*domain.FollowStatusResponse, error)
	Unfollow(ctx context.Context, actorUID, targetUID string) (*domain.FollowStatusResponse, error)
	IsFollowing(ctx context.Context, actorUID, targetUID string) (bool, error)
	GetFollowers(ctx context.Context, targetUID string, page, limit int) ([]*domain.ProfileResponse, *common.Meta, error)
	GetFollowing(ctx context.Context, actorUID string, page, limit int) ([]*domain.ProfileResponse, *common.Meta, error)
	Recount(ctx context.Context, uid string) (*domain.CounterRecount, error)
}

type followService struct {
	repo        repository.FollowRepository
	creatorRepo repository.CreatorRepository
	awards      GamificationService
	cache       pkgcache.Service
}

// NewFollowService creates a new FollowService
func NewFollowService(
	repo repository.FollowRepository,
	creatorRepo repository.CreatorRepository,
	awards GamificationService,
	cache pkgcache.Service,
) FollowService {
	return &followService{
		repo:        repo,
		creatorRepo: creatorRepo,
		awards:      awards,
		cache:       cache,
	}
}

// Follow creates the edge and bumps both counters. The edge insert and
// the counter updates commit together, so a failure anywhere leaves no
// drift to reconcile.
func (s *followService) Follow(ctx context.Context, actorUID, targetUID string) (*domain.FollowStatusResponse, error) {
	if actorUID == targetUID {
		return nil, common.ErrSelfFollow
	}

	target, err := s.creatorRepo.FindByUID(targetUID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, common.ErrUserNotFound
	}

	// Fast-path check; the unique edge index still catches the race
	following, err := s.repo.Exists(actorUID, targetUID)
	if err != nil {
		return nil, err
	}
	if following {
		return nil, common.ErrAlreadyFollowing
	}

	if err := s.repo.Create(actorUID, targetUID); err != nil {
		return nil, err
	}

	s.invalidateProfiles(ctx, actorUID, target.Handle)

	newCount := target.FollowersCount + 1
	if s.awards != nil {
		if err := s.awards.AwardFollowerMilestone(ctx, targetUID, newCount); err != nil {
			pkglogger.GetLogger().Warn().Err(err).
				Str("target_uid", targetUID).
				Msg("follower milestone award failed")
		}
	}

	return &domain.FollowStatusResponse{
		TargetUID:      targetUID,
		Following:      true,
		FollowersCount: newCount,
	}, nil
}

// Unfollow removes the edge and lowers both counters
func (s *followService) Unfollow(ctx context.Context, actorUID, targetUID string) (*domain.FollowStatusResponse, error) {
	if err := s.repo.Delete(actorUID, targetUID); err != nil {
		return nil, err
	}

	target, err := s.creatorRepo.FindByUID(targetUID)
	if err != nil {
		return nil, err
	}
	count := 0
	targetHandle := ""
	if target != nil {
		count = target.FollowersCount
		targetHandle = target.Handle
	}

	s.invalidateProfiles(ctx, actorUID, targetHandle)

	return &domain.FollowStatusResponse{
		TargetUID:      targetUID,
		Following:      false,
		FollowersCount: count,
	}, nil
}

// IsFollowing is a pure edge read; a missing actor is simply "not
// following", never an error
func (s *followService) IsFollowing(ctx context.Context, actorUID, targetUID string) (bool, error) {
	return s.repo.Exists(actorUID, targetUID)
}

func (s *followService) GetFollowers(ctx context.Context, targetUID string, page, limit int) ([]*domain.ProfileResponse, *common.Meta, error) {
	page, limit = clampPage(page, limit)

	creators, total, err := s.repo.ListFollowers(targetUID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	return toProfiles(creators), &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

func (s *followService) GetFollowing(ctx context.Context, actorUID string, page, limit int) ([]*domain.ProfileResponse, *common.Meta, error) {
	page, limit = clampPage(page, limit)

	creators, total, err := s.repo.ListFollowing(actorUID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	return toProfiles(creators), &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// Recount reconciles the cached counters against the edge table
func (s *followService) Recount(ctx context.Context, uid string) (*domain.CounterRecount, error) {
	recount, err := s.repo.RecountCounters(uid)
	if err != nil {
		return nil, err
	}
	if recount.Drifted {
		pkglogger.GetLogger().Warn().
			Str("uid", uid).
			Int("followers_before", recount.FollowersBefore).
			Int("followers_after", recount.FollowersAfter).
			Int("following_before", recount.FollowingBefore).
			Int("following_after", recount.FollowingAfter).
			Msg("follow counters drifted, reconciled")
		s.invalidateProfiles(ctx, uid, "")
	}
	return recount, nil
}

// invalidateProfiles drops the cached public profiles for the actor (by
// UID lookup) and the target (handle already known). Profiles are cached
// under handles, so UIDs are resolved first.
func (s *followService) invalidateProfiles(ctx context.Context, actorUID, targetHandle string) {
	if s.cache == nil {
		return
	}
	if targetHandle != "" {
		_ = s.cache.InvalidateProfile(ctx, targetHandle)
	}
	if actor, err := s.creatorRepo.FindByUID(actorUID); err == nil && actor != nil {
		_ = s.cache.InvalidateProfile(ctx, actor.Handle)
	}
}

func toProfiles(creators []*domain.Creator) []*domain.ProfileResponse {
	profiles := make([]*domain.ProfileResponse, len(creators))
	for i, c := range creators {
		profiles[i] = c.ToProfileResponse()
	}
	return profiles
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
