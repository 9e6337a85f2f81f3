package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	pkgcache "github.com/sortmyai/sortmyai-backend/pkg/cache"
)

// Notifier is told when conversation data changed for some creators so
// it can recompute and push fresh summaries. Implemented by
// NotifierService; nil disables push.
type Notifier interface {
	ConversationChanged(uids ...string)
}

// ConversationService manages pairwise conversations with the
// pending/accepted/rejected request gate
type ConversationService interface {
	SendMessage(ctx context.Context, senderUID string, req *domain.SendMessageRequest) (*domain.MessageResponse, error)
	RespondToRequest(ctx context.Context, conversationID, responderUID, decision string) (*domain.Conversation, error)
	GetMessages(ctx context.Context, conversationID, viewerUID string, page, limit int) ([]*domain.MessageResponse, *common.Meta, error)
	GetMessagePreviews(ctx context.Context, viewerUID string) ([]*domain.MessagePreview, error)
	MarkConversationRead(ctx context.Context, conversationID, viewerUID string) (int64, error)
}

type conversationService struct {
	convRepo    repository.ConversationRepository
	msgRepo     repository.MessageRepository
	creatorRepo repository.CreatorRepository
	notifier    Notifier
	cache       pkgcache.Service
}

// NewConversationService creates a new ConversationService
func NewConversationService(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	creatorRepo repository.CreatorRepository,
	notifier Notifier,
	cache pkgcache.Service,
) ConversationService {
	return &conversationService{
		convRepo:    convRepo,
		msgRepo:     msgRepo,
		creatorRepo: creatorRepo,
		notifier:    notifier,
		cache:       cache,
	}
}

// SendMessage appends a message to the pair's conversation, creating it
// when absent. The first message stamps the conversation pending with
// the sender as requester. Messages into a rejected conversation are
// refused; a pending conversation still accepts messages from either
// side and responding in text does not accept the request.
func (s *conversationService) SendMessage(ctx context.Context, senderUID string, req *domain.SendMessageRequest) (*domain.MessageResponse, error) {
	if senderUID == req.ToUID {
		return nil, common.ErrInvalidInput
	}
	if req.Content == "" {
		return nil, common.ErrEmptyMessage
	}

	receiver, err := s.creatorRepo.FindByUID(req.ToUID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, common.ErrUserNotFound
	}

	conv, err := s.convRepo.GetOrCreate(senderUID, req.ToUID)
	if err != nil {
		return nil, err
	}

	if conv.Status == domain.ConversationRejected {
		return nil, common.ErrConversationRejected
	}

	firstMessage := conv.Status == ""

	msg := &domain.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		SenderUID:      senderUID,
		ReceiverUID:    req.ToUID,
		Content:        req.Content,
		AttachmentKey:  req.AttachmentKey,
		SentAt:         time.Now(),
	}

	if err := s.msgRepo.Create(msg, firstMessage); err != nil {
		return nil, err
	}

	s.invalidateAndNotify(ctx, senderUID, req.ToUID)

	return msg.ToResponse(), nil
}

// RespondToRequest lets the non-requester accept or reject a pending
// conversation
func (s *conversationService) RespondToRequest(ctx context.Context, conversationID, responderUID, decision string) (*domain.Conversation, error) {
	conv, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, common.ErrConversationNotFound
	}
	if !conv.HasParticipant(responderUID) {
		return nil, common.ErrNotParticipant
	}
	if conv.RequesterID == responderUID {
		return nil, common.ErrNotAuthorized
	}
	if conv.Status != domain.ConversationPending {
		return nil, common.ErrInvalidState
	}

	status := domain.ConversationRejected
	if decision == "accept" {
		status = domain.ConversationAccepted
	}

	if err := s.convRepo.UpdateStatus(conversationID, status); err != nil {
		return nil, err
	}
	conv.Status = status

	s.invalidateAndNotify(ctx, conv.UserAUID, conv.UserBUID)

	return conv, nil
}

func (s *conversationService) GetMessages(ctx context.Context, conversationID, viewerUID string, page, limit int) ([]*domain.MessageResponse, *common.Meta, error) {
	page, limit = clampPage(page, limit)

	conv, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		return nil, nil, err
	}
	if conv == nil {
		return nil, nil, common.ErrConversationNotFound
	}
	if !conv.HasParticipant(viewerUID) {
		return nil, nil, common.ErrNotParticipant
	}

	messages, total, err := s.msgRepo.ListByConversation(conversationID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = m.ToResponse()
	}

	return responses, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// GetMessagePreviews builds the derived per-conversation summaries for
// the viewer: one conversation query, one grouped unread query, one
// batch counterpart lookup.
func (s *conversationService) GetMessagePreviews(ctx context.Context, viewerUID string) ([]*domain.MessagePreview, error) {
	if s.cache != nil {
		if data, err := s.cache.GetPreviews(ctx, viewerUID); err == nil && data != nil {
			var cached []*domain.MessagePreview
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	convs, err := s.convRepo.ListForUser(viewerUID)
	if err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return []*domain.MessagePreview{}, nil
	}

	unread, err := s.msgRepo.UnreadByConversation(viewerUID)
	if err != nil {
		return nil, err
	}
	unreadByConv := make(map[string]int64, len(unread))
	for _, u := range unread {
		unreadByConv[u.ConversationID] = u.Count
	}

	counterpartUIDs := make([]string, 0, len(convs))
	for _, conv := range convs {
		counterpartUIDs = append(counterpartUIDs, conv.Counterpart(viewerUID))
	}
	counterparts, err := s.creatorRepo.FindByUIDs(counterpartUIDs)
	if err != nil {
		return nil, err
	}
	byUID := make(map[string]*domain.Creator, len(counterparts))
	for _, c := range counterparts {
		byUID[c.UID] = c
	}

	previews := make([]*domain.MessagePreview, 0, len(convs))
	for _, conv := range convs {
		counterpartUID := conv.Counterpart(viewerUID)

		preview := &domain.MessagePreview{
			ConversationID:  conv.ID,
			Status:          conv.Status,
			IsRequester:     conv.RequesterID == viewerUID,
			UnreadCount:     unreadByConv[conv.ID],
			CounterpartUID:  counterpartUID,
			LastMessageText: conv.LastMessageText,
		}
		if conv.LastMessageAt != nil {
			preview.LastMessageAt = conv.LastMessageAt.Format(time.RFC3339)
		}
		if counterpart, ok := byUID[counterpartUID]; ok {
			preview.CounterpartHandle = counterpart.Handle
			preview.CounterpartName = counterpart.DisplayName
			preview.CounterpartAvatar = counterpart.AvatarKey
		}

		previews = append(previews, preview)
	}

	if s.cache != nil {
		_ = s.cache.SetPreviews(ctx, viewerUID, previews)
	}

	return previews, nil
}

// MarkConversationRead flips unread messages addressed to the viewer and
// pushes a fresh summary. The caller may zero its local badge
// optimistically; the pushed recompute is authoritative.
func (s *conversationService) MarkConversationRead(ctx context.Context, conversationID, viewerUID string) (int64, error) {
	conv, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		return 0, err
	}
	if conv == nil {
		return 0, common.ErrConversationNotFound
	}
	if !conv.HasParticipant(viewerUID) {
		return 0, common.ErrNotParticipant
	}

	flipped, err := s.msgRepo.MarkConversationRead(conversationID, viewerUID)
	if err != nil {
		return 0, err
	}

	if flipped > 0 {
		s.invalidateAndNotify(ctx, viewerUID)
	}

	return flipped, nil
}

func (s *conversationService) invalidateAndNotify(ctx context.Context, uids ...string) {
	if s.cache != nil {
		_ = s.cache.InvalidatePreviews(ctx, uids...)
	}
	if s.notifier != nil {
		s.notifier.ConversationChanged(uids...)
	}
}
