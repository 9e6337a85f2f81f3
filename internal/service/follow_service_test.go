package service

import (
	"context"
	"testing"

	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFollow_Self(t *testing.T) {
	svc := NewFollowService(new(MockFollowRepository), new(MockCreatorRepository), nil, nil)

	_, err := svc.Follow(context.Background(), "uid-1", "uid-1")
	assert.ErrorIs(t, err, common.ErrSelfFollow)
}

func TestFollow_TargetNotFound(t *testing.T) {
	followRepo := new(MockFollowRepository)
	creatorRepo := new(MockCreatorRepository)
	creatorRepo.On("FindByUID", "ghost").Return(nil, nil)

	svc := NewFollowService(followRepo, creatorRepo, nil, nil)

	_, err := svc.Follow(context.Background(), "uid-1", "ghost")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
	creatorRepo.AssertExpectations(t)
}

func TestFollow_AlreadyFollowing(t *testing.T) {
	followRepo := new(MockFollowRepository)
	creatorRepo := new(MockCreatorRepository)
	creatorRepo.On("FindByUID", "uid-2").Return(&domain.Creator{UID: "uid-2", Handle: "bob"}, nil)
	followRepo.On("Exists", "uid-1", "uid-2").Return(true, nil)

	svc := NewFollowService(followRepo, creatorRepo, nil, nil)

	_, err := svc.Follow(context.Background(), "uid-1", "uid-2")
	assert.ErrorIs(t, err, common.ErrAlreadyFollowing)
	followRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFollow_Success(t *testing.T) {
	followRepo := new(MockFollowRepository)
	creatorRepo := new(MockCreatorRepository)
	awards := new(MockGamificationService)

	target := &domain.Creator{UID: "uid-2", Handle: "bob", FollowersCount: 9}
	creatorRepo.On("FindByUID", "uid-2").Return(target, nil)
	followRepo.On("Exists", "uid-1", "uid-2").Return(false, nil)
	followRepo.On("Create", "uid-1", "uid-2").Return(nil)
	awards.On("AwardFollowerMilestone", mock.Anything, "uid-2", 10).Return(nil)

	svc := NewFollowService(followRepo, creatorRepo, awards, nil)

	result, err := svc.Follow(context.Background(), "uid-1", "uid-2")
	assert.NoError(t, err)
	assert.True(t, result.Following)
	assert.Equal(t, 10, result.FollowersCount)
	followRepo.AssertExpectations(t)
	awards.AssertExpectations(t)
}

func TestFollow_MilestoneFailureDoesNotFailFollow(t *testing.T) {
	followRepo := new(MockFollowRepository)
	creatorRepo := new(MockCreatorRepository)
	awards := new(MockGamificationService)

	creatorRepo.On("FindByUID", "uid-2").Return(&domain.Creator{UID: "uid-2", Handle: "bob"}, nil)
	followRepo.On("Exists", "uid-1", "uid-2").Return(false, nil)
	followRepo.On("Create", "uid-1", "uid-2").Return(nil)
	awards.On("AwardFollowerMilestone", mock.Anything, "uid-2", 1).Return(assert.AnError)

	svc := NewFollowService(followRepo, creatorRepo, awards, nil)

	result, err := svc.Follow(context.Background(), "uid-1", "uid-2")
	assert.NoError(t, err)
	assert.True(t, result.Following)
}

func TestUnfollow_NotFollowing(t *testing.T) {
	followRepo := new(MockFollowRepository)
	creatorRepo := new(MockCreatorRepository)
	followRepo.On("Delete", "uid-1", "uid-2").Return(common.ErrNotFollowing)

	svc := NewFollowService(followRepo, creatorRepo, nil, nil)

	_, err := svc.Unfollow(context.Background(), "uid-1", "uid-2")
	assert.ErrorIs(t, err, common.ErrNotFollowing)
}

func TestUnfollow_Success(t *testing.T) {
	followRepo := new(MockFollowRepository)
	creatorRepo := new(MockCreatorRepository)
	followRepo.On("Delete", "uid-1", "uid-2").Return(nil)
	creatorRepo.On("FindByUID", "uid-2").Return(&domain.Creator{UID: "uid-2", Handle: "bob", FollowersCount: 4}, nil)

	svc := NewFollowService(followRepo, creatorRepo, nil, nil)

	result, err := svc.Unfollow(context.Background(), "uid-1", "uid-2")
	assert.NoError(t, err)
	assert.False(t, result.Following)
	assert.Equal(t, 4, result.FollowersCount)
}

func TestIsFollowing(t *testing.T) {
	followRepo := new(MockFollowRepository)
	followRepo.On("Exists", "uid-1", "uid-2").Return(true, nil)
	followRepo.On("Exists", "ghost", "uid-2").Return(false, nil)

	svc := NewFollowService(followRepo, new(MockCreatorRepository), nil, nil)

	following, err := svc.IsFollowing(context.Background(), "uid-1", "uid-2")
	assert.NoError(t, err)
	assert.True(t, following)

	// A missing actor is simply not following
	following, err = svc.IsFollowing(context.Background(), "ghost", "uid-2")
	assert.NoError(t, err)
	assert.False(t, following)
}

func TestGetFollowers_ClampsPagination(t *testing.T) {
	followRepo := new(MockFollowRepository)
	followRepo.On("ListFollowers", "uid-2", 1, 20).Return([]*domain.Creator{}, int64(0), nil)

	svc := NewFollowService(followRepo, new(MockCreatorRepository), nil, nil)

	_, meta, err := svc.GetFollowers(context.Background(), "uid-2", -5, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	followRepo.AssertExpectations(t)
}

func TestRecount_ReportsDrift(t *testing.T) {
	followRepo := new(MockFollowRepository)
	creatorRepo := new(MockCreatorRepository)
	followRepo.On("RecountCounters", "uid-1").Return(&domain.CounterRecount{
		UID:             "uid-1",
		FollowersBefore: 7,
		FollowersAfter:  5,
		FollowingBefore: 3,
		FollowingAfter:  3,
		Drifted:         true,
	}, nil)

	svc := NewFollowService(followRepo, creatorRepo, nil, nil)

	result, err := svc.Recount(context.Background(), "uid-1")
	assert.NoError(t, err)
	assert.True(t, result.Drifted)
	assert.Equal(t, 5, result.FollowersAfter)
}
