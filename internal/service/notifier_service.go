package service

import (
	"context"

	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	"github.com/sortmyai/sortmyai-backend/internal/ws"
	pkglogger "github.com/sortmyai/sortmyai-backend/pkg/logger"
)

// SummaryPusher delivers a summary event to a connected creator.
// Satisfied by *ws.Hub; nil-safe for tests and hub-less deployments.
type SummaryPusher interface {
	SendToUser(uid string, event *ws.Event)
}

// NotifierService derives the live unread/pending view for each creator.
// It never merges: every change triggers a full recompute from the
// store, and the latest recompute wins.
type NotifierService interface {
	Notifier
	GetSummary(ctx context.Context, uid string) (*domain.NotificationSummary, error)
}

type notifierService struct {
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	pusher   SummaryPusher
}

// NewNotifierService creates a new NotifierService
func NewNotifierService(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	pusher SummaryPusher,
) NotifierService {
	return &notifierService{
		convRepo: convRepo,
		msgRepo:  msgRepo,
		pusher:   pusher,
	}
}

// GetSummary recomputes the summary from the store
func (s *notifierService) GetSummary(ctx context.Context, uid string) (*domain.NotificationSummary, error) {
	unread, err := s.msgRepo.UnreadByConversation(uid)
	if err != nil {
		return nil, err
	}

	var totalUnread int64
	for _, u := range unread {
		totalUnread += u.Count
	}

	pending, err := s.convRepo.CountPendingFor(uid)
	if err != nil {
		return nil, err
	}

	return &domain.NotificationSummary{
		UnreadConversationCount: int64(len(unread)),
		TotalUnreadMessages:     totalUnread,
		PendingRequestsCount:    pending,
	}, nil
}

// ConversationChanged recomputes and pushes a fresh summary to each
// affected creator. Push failures only cost a push; the next REST read
// recomputes from the store anyway.
func (s *notifierService) ConversationChanged(uids ...string) {
	if s.pusher == nil {
		return
	}
	for _, uid := range uids {
		summary, err := s.GetSummary(context.Background(), uid)
		if err != nil {
			pkglogger.GetLogger().Warn().Err(err).
				Str("uid", uid).
				Msg("summary recompute failed")
			continue
		}
		s.pusher.SendToUser(uid, &ws.Event{
			Type:    ws.EventSummary,
			Payload: summary,
		})
	}
}
