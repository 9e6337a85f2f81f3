package service

import (
	"context"
	"testing"

	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	"github.com/sortmyai/sortmyai-backend/internal/ws"
	"github.com/stretchr/testify/assert"
)

func TestNotifierGetSummary(t *testing.T) {
	convRepo := new(MockConversationRepository)
	msgRepo := new(MockMessageRepository)
	svc := NewNotifierService(convRepo, msgRepo, nil)

	msgRepo.On("UnreadByConversation", "alice").Return([]repository.UnreadCount{
		{ConversationID: "conv-1", Count: 2},
		{ConversationID: "conv-2", Count: 5},
	}, nil)
	convRepo.On("CountPendingFor", "alice").Return(int64(1), nil)

	summary, err := svc.GetSummary(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), summary.UnreadConversationCount)
	assert.Equal(t, int64(7), summary.TotalUnreadMessages)
	assert.Equal(t, int64(1), summary.PendingRequestsCount)
}

func TestNotifierGetSummary_Empty(t *testing.T) {
	convRepo := new(MockConversationRepository)
	msgRepo := new(MockMessageRepository)
	svc := NewNotifierService(convRepo, msgRepo, nil)

	msgRepo.On("UnreadByConversation", "alice").Return([]repository.UnreadCount{}, nil)
	convRepo.On("CountPendingFor", "alice").Return(int64(0), nil)

	summary, err := svc.GetSummary(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), summary.UnreadConversationCount)
	assert.Equal(t, int64(0), summary.TotalUnreadMessages)
	assert.Equal(t, int64(0), summary.PendingRequestsCount)
}

func TestConversationChanged_PushesRecomputedSummaries(t *testing.T) {
	convRepo := new(MockConversationRepository)
	msgRepo := new(MockMessageRepository)
	pusher := newMockPusher()
	svc := NewNotifierService(convRepo, msgRepo, pusher)

	msgRepo.On("UnreadByConversation", "alice").Return([]repository.UnreadCount{
		{ConversationID: "conv-1", Count: 3},
	}, nil)
	convRepo.On("CountPendingFor", "alice").Return(int64(0), nil)
	msgRepo.On("UnreadByConversation", "bob").Return([]repository.UnreadCount{}, nil)
	convRepo.On("CountPendingFor", "bob").Return(int64(2), nil)

	svc.ConversationChanged("alice", "bob")

	assert.Len(t, pusher.events["alice"], 1)
	assert.Len(t, pusher.events["bob"], 1)

	event := pusher.events["alice"][0]
	assert.Equal(t, ws.EventSummary, event.Type)
	summary := event.Payload.(*domain.NotificationSummary)
	assert.Equal(t, int64(3), summary.TotalUnreadMessages)

	bobSummary := pusher.events["bob"][0].Payload.(*domain.NotificationSummary)
	assert.Equal(t, int64(2), bobSummary.PendingRequestsCount)
}

func TestConversationChanged_RecomputeFailureSkipsPush(t *testing.T) {
	convRepo := new(MockConversationRepository)
	msgRepo := new(MockMessageRepository)
	pusher := newMockPusher()
	svc := NewNotifierService(convRepo, msgRepo, pusher)

	msgRepo.On("UnreadByConversation", "alice").Return(nil, assert.AnError)

	svc.ConversationChanged("alice")

	assert.Empty(t, pusher.events["alice"])
}

func TestConversationChanged_NilPusher(t *testing.T) {
	svc := NewNotifierService(new(MockConversationRepository), new(MockMessageRepository), nil)
	// must not panic or hit the repos
	svc.ConversationChanged("alice")
}
