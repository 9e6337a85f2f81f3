package service

import (
	"context"
	"testing"
	"time"

	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newConversationFixture() (*MockConversationRepository, *MockMessageRepository, *MockCreatorRepository, *mockNotifier, ConversationService) {
	convRepo := new(MockConversationRepository)
	msgRepo := new(MockMessageRepository)
	creatorRepo := new(MockCreatorRepository)
	notifier := &mockNotifier{}
	svc := NewConversationService(convRepo, msgRepo, creatorRepo, notifier, nil)
	return convRepo, msgRepo, creatorRepo, notifier, svc
}

func TestSendMessage_FirstMessageCreatesPendingRequest(t *testing.T) {
	convRepo, msgRepo, creatorRepo, notifier, svc := newConversationFixture()

	creatorRepo.On("FindByUID", "bob").Return(&domain.Creator{UID: "bob"}, nil)
	convRepo.On("GetOrCreate", "alice", "bob").Return(&domain.Conversation{
		ID:       "conv-1",
		PairKey:  domain.PairKey("alice", "bob"),
		UserAUID: "alice",
		UserBUID: "bob",
		Status:   "",
	}, nil)
	msgRepo.On("Create", mock.MatchedBy(func(m *domain.Message) bool {
		return m.ConversationID == "conv-1" && m.SenderUID == "alice" && m.ReceiverUID == "bob"
	}), true).Return(nil)

	resp, err := svc.SendMessage(context.Background(), "alice", &domain.SendMessageRequest{
		ToUID:   "bob",
		Content: "hi there",
	})
	assert.NoError(t, err)
	assert.Equal(t, "hi there", resp.Content)
	// Both participants get a summary push
	assert.Len(t, notifier.changed, 1)
	assert.ElementsMatch(t, []string{"alice", "bob"}, notifier.changed[0])
	msgRepo.AssertExpectations(t)
}

func TestSendMessage_PendingAcceptsRepliesWithoutAccepting(t *testing.T) {
	convRepo, msgRepo, creatorRepo, _, svc := newConversationFixture()

	creatorRepo.On("FindByUID", "alice").Return(&domain.Creator{UID: "alice"}, nil)
	convRepo.On("GetOrCreate", "bob", "alice").Return(&domain.Conversation{
		ID:          "conv-1",
		UserAUID:    "alice",
		UserBUID:    "bob",
		Status:      domain.ConversationPending,
		RequesterID: "alice",
	}, nil)
	// Reply into a pending conversation is not a first message and must
	// not restamp the request
	msgRepo.On("Create", mock.Anything, false).Return(nil)

	_, err := svc.SendMessage(context.Background(), "bob", &domain.SendMessageRequest{
		ToUID:   "alice",
		Content: "replying before accepting",
	})
	assert.NoError(t, err)
	convRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	msgRepo.AssertExpectations(t)
}

func TestSendMessage_RejectedConversationRefusesSends(t *testing.T) {
	convRepo, msgRepo, creatorRepo, _, svc := newConversationFixture()

	creatorRepo.On("FindByUID", "bob").Return(&domain.Creator{UID: "bob"}, nil)
	convRepo.On("GetOrCreate", "alice", "bob").Return(&domain.Conversation{
		ID:          "conv-1",
		UserAUID:    "alice",
		UserBUID:    "bob",
		Status:      domain.ConversationRejected,
		RequesterID: "alice",
	}, nil)

	_, err := svc.SendMessage(context.Background(), "alice", &domain.SendMessageRequest{
		ToUID:   "bob",
		Content: "hello again",
	})
	assert.ErrorIs(t, err, common.ErrConversationRejected)
	msgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMessage_Validation(t *testing.T) {
	_, _, creatorRepo, _, svc := newConversationFixture()

	t.Run("self message", func(t *testing.T) {
		_, err := svc.SendMessage(context.Background(), "alice", &domain.SendMessageRequest{ToUID: "alice", Content: "hi"})
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.SendMessage(context.Background(), "alice", &domain.SendMessageRequest{ToUID: "bob", Content: ""})
		assert.ErrorIs(t, err, common.ErrEmptyMessage)
	})

	t.Run("unknown receiver", func(t *testing.T) {
		creatorRepo.On("FindByUID", "ghost").Return(nil, nil)
		_, err := svc.SendMessage(context.Background(), "alice", &domain.SendMessageRequest{ToUID: "ghost", Content: "hi"})
		assert.ErrorIs(t, err, common.ErrUserNotFound)
	})
}

func TestRespondToRequest_Accept(t *testing.T) {
	convRepo, _, _, notifier, svc := newConversationFixture()

	convRepo.On("FindByID", "conv-1").Return(&domain.Conversation{
		ID:          "conv-1",
		UserAUID:    "alice",
		UserBUID:    "bob",
		Status:      domain.ConversationPending,
		RequesterID: "alice",
	}, nil)
	convRepo.On("UpdateStatus", "conv-1", domain.ConversationAccepted).Return(nil)

	conv, err := svc.RespondToRequest(context.Background(), "conv-1", "bob", "accept")
	assert.NoError(t, err)
	assert.Equal(t, domain.ConversationAccepted, conv.Status)
	assert.Len(t, notifier.changed, 1)
	assert.ElementsMatch(t, []string{"alice", "bob"}, notifier.changed[0])
}

func TestRespondToRequest_Reject(t *testing.T) {
	convRepo, _, _, _, svc := newConversationFixture()

	convRepo.On("FindByID", "conv-1").Return(&domain.Conversation{
		ID:          "conv-1",
		UserAUID:    "alice",
		UserBUID:    "bob",
		Status:      domain.ConversationPending,
		RequesterID: "alice",
	}, nil)
	convRepo.On("UpdateStatus", "conv-1", domain.ConversationRejected).Return(nil)

	conv, err := svc.RespondToRequest(context.Background(), "conv-1", "bob", "reject")
	assert.NoError(t, err)
	assert.Equal(t, domain.ConversationRejected, conv.Status)
}

func TestRespondToRequest_RequesterCannotRespond(t *testing.T) {
	convRepo, _, _, _, svc := newConversationFixture()

	convRepo.On("FindByID", "conv-1").Return(&domain.Conversation{
		ID:          "conv-1",
		UserAUID:    "alice",
		UserBUID:    "bob",
		Status:      domain.ConversationPending,
		RequesterID: "alice",
	}, nil)

	_, err := svc.RespondToRequest(context.Background(), "conv-1", "alice", "accept")
	assert.ErrorIs(t, err, common.ErrNotAuthorized)
	convRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestRespondToRequest_Guards(t *testing.T) {
	convRepo, _, _, _, svc := newConversationFixture()

	t.Run("not found", func(t *testing.T) {
		convRepo.On("FindByID", "missing").Return(nil, nil)
		_, err := svc.RespondToRequest(context.Background(), "missing", "bob", "accept")
		assert.ErrorIs(t, err, common.ErrConversationNotFound)
	})

	t.Run("outsider", func(t *testing.T) {
		convRepo.On("FindByID", "conv-2").Return(&domain.Conversation{
			ID: "conv-2", UserAUID: "alice", UserBUID: "bob",
			Status: domain.ConversationPending, RequesterID: "alice",
		}, nil)
		_, err := svc.RespondToRequest(context.Background(), "conv-2", "mallory", "accept")
		assert.ErrorIs(t, err, common.ErrNotParticipant)
	})

	t.Run("already decided", func(t *testing.T) {
		convRepo.On("FindByID", "conv-3").Return(&domain.Conversation{
			ID: "conv-3", UserAUID: "alice", UserBUID: "bob",
			Status: domain.ConversationAccepted, RequesterID: "alice",
		}, nil)
		_, err := svc.RespondToRequest(context.Background(), "conv-3", "bob", "reject")
		assert.ErrorIs(t, err, common.ErrInvalidState)
	})
}

func TestGetMessages_ParticipantGate(t *testing.T) {
	convRepo, _, _, _, svc := newConversationFixture()

	convRepo.On("FindByID", "conv-1").Return(&domain.Conversation{
		ID: "conv-1", UserAUID: "alice", UserBUID: "bob",
		Status: domain.ConversationAccepted,
	}, nil)

	_, _, err := svc.GetMessages(context.Background(), "conv-1", "mallory", 1, 20)
	assert.ErrorIs(t, err, common.ErrNotParticipant)
}

func TestGetMessagePreviews(t *testing.T) {
	convRepo, msgRepo, creatorRepo, _, svc := newConversationFixture()

	lastAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	convRepo.On("ListForUser", "alice").Return([]*domain.Conversation{
		{
			ID: "conv-1", UserAUID: "alice", UserBUID: "bob",
			Status: domain.ConversationAccepted, RequesterID: "alice",
			LastMessageText: "see you", LastMessageAt: &lastAt,
		},
		{
			ID: "conv-2", UserAUID: "alice", UserBUID: "carol",
			Status: domain.ConversationPending, RequesterID: "carol",
			LastMessageText: "hello",
		},
	}, nil)
	msgRepo.On("UnreadByConversation", "alice").Return([]repository.UnreadCount{
		{ConversationID: "conv-2", Count: 3},
	}, nil)
	creatorRepo.On("FindByUIDs", []string{"bob", "carol"}).Return([]*domain.Creator{
		{UID: "bob", Handle: "bob", DisplayName: "Bob"},
		{UID: "carol", Handle: "carol", DisplayName: "Carol"},
	}, nil)

	previews, err := svc.GetMessagePreviews(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Len(t, previews, 2)

	assert.Equal(t, "bob", previews[0].CounterpartUID)
	assert.True(t, previews[0].IsRequester)
	assert.Equal(t, int64(0), previews[0].UnreadCount)
	assert.Equal(t, "see you", previews[0].LastMessageText)

	assert.Equal(t, "carol", previews[1].CounterpartUID)
	assert.False(t, previews[1].IsRequester)
	assert.Equal(t, int64(3), previews[1].UnreadCount)
	assert.Equal(t, "Carol", previews[1].CounterpartName)
}

func TestMarkConversationRead(t *testing.T) {
	convRepo, msgRepo, _, notifier, svc := newConversationFixture()

	convRepo.On("FindByID", "conv-1").Return(&domain.Conversation{
		ID: "conv-1", UserAUID: "alice", UserBUID: "bob",
		Status: domain.ConversationAccepted,
	}, nil)

	t.Run("flips unread and notifies", func(t *testing.T) {
		msgRepo.On("MarkConversationRead", "conv-1", "alice").Return(int64(2), nil).Once()

		flipped, err := svc.MarkConversationRead(context.Background(), "conv-1", "alice")
		assert.NoError(t, err)
		assert.Equal(t, int64(2), flipped)
		assert.Len(t, notifier.changed, 1)
		assert.Equal(t, []string{"alice"}, notifier.changed[0])
	})

	t.Run("nothing to flip, no push", func(t *testing.T) {
		msgRepo.On("MarkConversationRead", "conv-1", "alice").Return(int64(0), nil).Once()

		flipped, err := svc.MarkConversationRead(context.Background(), "conv-1", "alice")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), flipped)
		assert.Len(t, notifier.changed, 1) // unchanged from previous subtest
	})
}

func TestPairKey_Deterministic(t *testing.T) {
	assert.Equal(t, domain.PairKey("alice", "bob"), domain.PairKey("bob", "alice"))
	assert.Equal(t, "alice:bob", domain.PairKey("bob", "alice"))
	assert.NotEqual(t, domain.PairKey("alice", "bob"), domain.PairKey("alice", "carol"))
}
