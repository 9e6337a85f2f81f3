package service

import (
	"context"

	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	"github.com/sortmyai/sortmyai-backend/internal/ws"
	"github.com/stretchr/testify/mock"
)

// MockCreatorRepository is a mock implementation of CreatorRepository
type MockCreatorRepository struct {
	mock.Mock
}

func (m *MockCreatorRepository) Create(creator *domain.Creator) error {
	args := m.Called(creator)
	return args.Error(0)
}

func (m *MockCreatorRepository) FindByUID(uid string) (*domain.Creator, error) {
	args := m.Called(uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockCreatorRepository) FindByHandle(handle string) (*domain.Creator, error) {
	args := m.Called(handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockCreatorRepository) FindByEmail(email string) (*domain.Creator, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockCreatorRepository) FindByUIDs(uids []string) ([]*domain.Creator, error) {
	args := m.Called(uids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Creator), args.Error(1)
}

func (m *MockCreatorRepository) UpdateFields(uid string, fields map[string]interface{}) error {
	args := m.Called(uid, fields)
	return args.Error(0)
}

// MockFollowRepository is a mock implementation of FollowRepository
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(followerUID, followeeUID string) error {
	args := m.Called(followerUID, followeeUID)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(followerUID, followeeUID string) error {
	args := m.Called(followerUID, followeeUID)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(followerUID, followeeUID string) (bool, error) {
	args := m.Called(followerUID, followeeUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) ListFollowers(followeeUID string, page, limit int) ([]*domain.Creator, int64, error) {
	args := m.Called(followeeUID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Creator), args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowRepository) ListFollowing(followerUID string, page, limit int) ([]*domain.Creator, int64, error) {
	args := m.Called(followerUID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Creator), args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowRepository) RecountCounters(uid string) (*domain.CounterRecount, error) {
	args := m.Called(uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CounterRecount), args.Error(1)
}

// MockConversationRepository is a mock implementation of ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) GetOrCreate(userA, userB string) (*domain.Conversation, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindByID(id string) (*domain.Conversation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) ListForUser(uid string) ([]*domain.Conversation, error) {
	args := m.Called(uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) UpdateStatus(id, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockConversationRepository) CountPendingFor(uid string) (int64, error) {
	args := m.Called(uid)
	return args.Get(0).(int64), args.Error(1)
}

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(msg *domain.Message, firstMessage bool) error {
	args := m.Called(msg, firstMessage)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByConversation(conversationID string, page, limit int) ([]*domain.Message, int64, error) {
	args := m.Called(conversationID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) MarkConversationRead(conversationID, receiverUID string) (int64, error) {
	args := m.Called(conversationID, receiverUID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) UnreadByConversation(receiverUID string) ([]repository.UnreadCount, error) {
	args := m.Called(receiverUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UnreadCount), args.Error(1)
}

func (m *MockMessageRepository) TotalUnread(receiverUID string) (int64, error) {
	args := m.Called(receiverUID)
	return args.Get(0).(int64), args.Error(1)
}

// MockXPRepository is a mock implementation of XPRepository
type MockXPRepository struct {
	mock.Mock
}

func (m *MockXPRepository) AddXP(uid string, amount int, reason, refID string, newLevel int) (int, error) {
	args := m.Called(uid, amount, reason, refID, newLevel)
	return args.Int(0), args.Error(1)
}

func (m *MockXPRepository) TotalXP(uid string) (int, error) {
	args := m.Called(uid)
	return args.Int(0), args.Error(1)
}

func (m *MockXPRepository) GetHistory(uid string, page, limit int) ([]domain.XPEvent, int64, error) {
	args := m.Called(uid, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.XPEvent), args.Get(1).(int64), args.Error(2)
}

func (m *MockXPRepository) HasEventToday(uid, reason string, dayStart string) (bool, error) {
	args := m.Called(uid, reason, dayStart)
	return args.Bool(0), args.Error(1)
}

func (m *MockXPRepository) GrantBadge(uid, badgeID string) (bool, error) {
	args := m.Called(uid, badgeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockXPRepository) ListBadges(uid string) ([]domain.BadgeResponse, error) {
	args := m.Called(uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BadgeResponse), args.Error(1)
}

func (m *MockXPRepository) SeedBadges(badges []domain.Badge) error {
	args := m.Called(badges)
	return args.Error(0)
}

// MockToolRepository is a mock implementation of ToolRepository
type MockToolRepository struct {
	mock.Mock
}

func (m *MockToolRepository) Create(tool *domain.Tool) error {
	args := m.Called(tool)
	return args.Error(0)
}

func (m *MockToolRepository) FindByID(id string) (*domain.Tool, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}

func (m *MockToolRepository) FindBySlug(slug string) (*domain.Tool, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}

func (m *MockToolRepository) FindByIDs(ids []string) ([]*domain.Tool, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tool), args.Error(1)
}

func (m *MockToolRepository) List(category string, page, limit int) ([]*domain.Tool, int64, error) {
	args := m.Called(category, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Tool), args.Get(1).(int64), args.Error(2)
}

func (m *MockToolRepository) SearchLike(query string, page, limit int) ([]*domain.Tool, int64, error) {
	args := m.Called(query, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Tool), args.Get(1).(int64), args.Error(2)
}

func (m *MockToolRepository) AddUpvote(toolID, voterUID string) error {
	args := m.Called(toolID, voterUID)
	return args.Error(0)
}

func (m *MockToolRepository) RemoveUpvote(toolID, voterUID string) error {
	args := m.Called(toolID, voterUID)
	return args.Error(0)
}

func (m *MockToolRepository) HasUpvoted(toolID, voterUID string) (bool, error) {
	args := m.Called(toolID, voterUID)
	return args.Bool(0), args.Error(1)
}

// MockGamificationService is a mock implementation of GamificationService
type MockGamificationService struct {
	mock.Mock
}

func (m *MockGamificationService) AwardDailyLogin(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockGamificationService) AwardToolSubmitted(ctx context.Context, uid, toolID string) error {
	args := m.Called(ctx, uid, toolID)
	return args.Error(0)
}

func (m *MockGamificationService) AwardPortfolioItem(ctx context.Context, uid, itemID string) error {
	args := m.Called(ctx, uid, itemID)
	return args.Error(0)
}

func (m *MockGamificationService) AwardFollowerMilestone(ctx context.Context, uid string, followerCount int) error {
	args := m.Called(ctx, uid, followerCount)
	return args.Error(0)
}

func (m *MockGamificationService) GetSummary(ctx context.Context, uid string) (*domain.XPSummary, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.XPSummary), args.Error(1)
}

func (m *MockGamificationService) GetBadges(ctx context.Context, uid string) ([]domain.BadgeResponse, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BadgeResponse), args.Error(1)
}

func (m *MockGamificationService) GetHistory(ctx context.Context, uid string, page, limit int) ([]domain.XPEvent, *common.Meta, error) {
	args := m.Called(ctx, uid, page, limit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.XPEvent), args.Get(1).(*common.Meta), args.Error(2)
}

// mockNotifier records which creators were flagged for a summary push
type mockNotifier struct {
	changed [][]string
}

func (n *mockNotifier) ConversationChanged(uids ...string) {
	n.changed = append(n.changed, uids)
}

// mockPusher records pushed websocket events per creator
type mockPusher struct {
	events map[string][]*ws.Event
}

func newMockPusher() *mockPusher {
	return &mockPusher{events: map[string][]*ws.Event{}}
}

func (p *mockPusher) SendToUser(uid string, event *ws.Event) {
	p.events[uid] = append(p.events[uid], event)
}
