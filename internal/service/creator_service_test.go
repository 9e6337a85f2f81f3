package service

import (
	"context"
	"testing"

	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCreatorFixture() (*MockCreatorRepository, *MockFollowRepository, CreatorService) {
	creatorRepo := new(MockCreatorRepository)
	followRepo := new(MockFollowRepository)
	follows := NewFollowService(followRepo, creatorRepo, nil, nil)
	svc := NewCreatorService(creatorRepo, follows, nil)
	return creatorRepo, followRepo, svc
}

func TestGetProfile_NotFound(t *testing.T) {
	creatorRepo, _, svc := newCreatorFixture()

	creatorRepo.On("FindByHandle", "ghost").Return(nil, nil)

	_, err := svc.GetProfile(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestGetProfile_AnonymousViewer(t *testing.T) {
	creatorRepo, followRepo, svc := newCreatorFixture()

	creatorRepo.On("FindByHandle", "bob").Return(&domain.Creator{
		UID: "uid-bob", Handle: "bob", DisplayName: "Bob", FollowersCount: 42,
	}, nil)

	profile, err := svc.GetProfile(context.Background(), "bob", "")
	assert.NoError(t, err)
	assert.Equal(t, "uid-bob", profile.UID)
	assert.Equal(t, 42, profile.FollowersCount)
	assert.False(t, profile.IsFollowing)
	followRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestGetProfile_ViewerFollowing(t *testing.T) {
	creatorRepo, followRepo, svc := newCreatorFixture()

	creatorRepo.On("FindByHandle", "bob").Return(&domain.Creator{
		UID: "uid-bob", Handle: "bob",
	}, nil)
	followRepo.On("Exists", "uid-alice", "uid-bob").Return(true, nil)

	profile, err := svc.GetProfile(context.Background(), "bob", "uid-alice")
	assert.NoError(t, err)
	assert.True(t, profile.IsFollowing)
}

func TestGetProfile_OwnProfileSkipsFollowCheck(t *testing.T) {
	creatorRepo, followRepo, svc := newCreatorFixture()

	creatorRepo.On("FindByHandle", "bob").Return(&domain.Creator{
		UID: "uid-bob", Handle: "bob",
	}, nil)

	profile, err := svc.GetProfile(context.Background(), "bob", "uid-bob")
	assert.NoError(t, err)
	assert.False(t, profile.IsFollowing)
	followRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}
