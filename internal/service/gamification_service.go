package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	pkglogger "github.com/sortmyai/sortmyai-backend/pkg/logger"
)

// XP amounts per action
const (
	xpDailyLogin        = 10
	xpToolSubmitted     = 50
	xpPortfolioItem     = 30
	xpFollowerMilestone = 100
)

// Level thresholds (cumulative XP required for each level)
var levelThresholds = []int{
	0,      // Level 1
	100,    // Level 2
	300,    // Level 3
	600,    // Level 4
	1000,   // Level 5
	1500,   // Level 6
	2100,   // Level 7
	2800,   // Level 8
	3600,   // Level 9
	4500,   // Level 10
	5500,   // Level 11
	6600,   // Level 12
	7800,   // Level 13
	9100,   // Level 14
	10500,  // Level 15
}

// Follower counts that trigger a milestone award
var followerMilestones = map[int]string{
	10:   "followers_10",
	100:  "followers_100",
	1000: "followers_1000",
}

// GamificationService awards XP, levels, streaks and badges
type GamificationService interface {
	AwardDailyLogin(ctx context.Context, uid string) error
	AwardToolSubmitted(ctx context.Context, uid, toolID string) error
	AwardPortfolioItem(ctx context.Context, uid, itemID string) error
	AwardFollowerMilestone(ctx context.Context, uid string, followerCount int) error
	GetSummary(ctx context.Context, uid string) (*domain.XPSummary, error)
	GetBadges(ctx context.Context, uid string) ([]domain.BadgeResponse, error)
	GetHistory(ctx context.Context, uid string, page, limit int) ([]domain.XPEvent, *common.Meta, error)
}

type gamificationService struct {
	repo        repository.XPRepository
	creatorRepo repository.CreatorRepository
}

// NewGamificationService creates a new GamificationService
func NewGamificationService(repo repository.XPRepository, creatorRepo repository.CreatorRepository) GamificationService {
	return &gamificationService{repo: repo, creatorRepo: creatorRepo}
}

func calculateLevelInfo(totalXP int) (currentLevel, nextLevel, nextLevelXP, xpToNext, progress int) {
	currentLevel = 1
	for i, threshold := range levelThresholds {
		if totalXP >= threshold {
			currentLevel = i + 1
		} else {
			break
		}
	}

	if currentLevel >= len(levelThresholds) {
		// Max level reached
		nextLevel = currentLevel
		nextLevelXP = levelThresholds[len(levelThresholds)-1]
		xpToNext = 0
		progress = 100
	} else {
		nextLevel = currentLevel + 1
		nextLevelXP = levelThresholds[currentLevel]
		prevLevelXP := 0
		if currentLevel > 1 {
			prevLevelXP = levelThresholds[currentLevel-1]
		}
		xpToNext = nextLevelXP - totalXP
		levelRange := nextLevelXP - prevLevelXP
		if levelRange > 0 {
			progress = (totalXP - prevLevelXP) * 100 / levelRange
		}
	}

	return
}

// addXP appends to the ledger and refreshes the cached level column
func (s *gamificationService) addXP(uid string, amount int, reason, refID string) (int, error) {
	current, err := s.repo.TotalXP(uid)
	if err != nil {
		return 0, err
	}
	newLevel, _, _, _, _ := calculateLevelInfo(current + amount)
	return s.repo.AddXP(uid, amount, reason, refID, newLevel)
}

// AwardDailyLogin grants login XP once per UTC day and advances the
// streak: consecutive days extend it, a gap resets it to 1.
func (s *gamificationService) AwardDailyLogin(ctx context.Context, uid string) error {
	creator, err := s.creatorRepo.FindByUID(uid)
	if err != nil {
		return err
	}
	if creator == nil {
		return common.ErrUserNotFound
	}

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	if creator.LastActiveDate != nil {
		lastDay := creator.LastActiveDate.UTC().Truncate(24 * time.Hour)
		if lastDay.Equal(today) {
			return nil // already counted today
		}
	}

	dayStart := today.Format("2006-01-02 15:04:05")
	awarded, err := s.repo.HasEventToday(uid, domain.XPReasonDailyLogin, dayStart)
	if err != nil {
		return err
	}
	if awarded {
		return nil
	}

	streak := 1
	if creator.LastActiveDate != nil {
		lastDay := creator.LastActiveDate.UTC().Truncate(24 * time.Hour)
		if lastDay.Equal(today.Add(-24 * time.Hour)) {
			streak = creator.CurrentStreak + 1
		}
	}

	longest := creator.LongestStreak
	if streak > longest {
		longest = streak
	}

	if err := s.creatorRepo.UpdateFields(uid, map[string]interface{}{
		"last_active_date": now,
		"current_streak":   streak,
		"longest_streak":   longest,
	}); err != nil {
		return err
	}

	if _, err := s.addXP(uid, xpDailyLogin, domain.XPReasonDailyLogin, ""); err != nil {
		return err
	}

	if streak >= 7 {
		s.grantBadge(uid, "streak_7")
	}
	if streak >= 30 {
		s.grantBadge(uid, "streak_30")
	}
	return nil
}

// AwardToolSubmitted grants XP for cataloging a tool
func (s *gamificationService) AwardToolSubmitted(ctx context.Context, uid, toolID string) error {
	if _, err := s.addXP(uid, xpToolSubmitted, domain.XPReasonToolSubmitted, toolID); err != nil {
		return err
	}
	s.grantBadge(uid, "first_tool")
	return nil
}

// AwardPortfolioItem grants XP for adding a portfolio item
func (s *gamificationService) AwardPortfolioItem(ctx context.Context, uid, itemID string) error {
	if _, err := s.addXP(uid, xpPortfolioItem, domain.XPReasonPortfolioItem, itemID); err != nil {
		return err
	}
	s.grantBadge(uid, "first_portfolio")
	return nil
}

// AwardFollowerMilestone grants XP and a badge when a follower count
// crosses a milestone. Called with the count after the follow; a badge
// already held makes the call a no-op.
func (s *gamificationService) AwardFollowerMilestone(ctx context.Context, uid string, followerCount int) error {
	badgeID, ok := followerMilestones[followerCount]
	if !ok {
		return nil
	}

	granted, err := s.repo.GrantBadge(uid, badgeID)
	if err != nil {
		return err
	}
	if !granted {
		return nil // milestone already awarded
	}

	_, err = s.addXP(uid, xpFollowerMilestone, domain.XPReasonFollowerMilestone, fmt.Sprintf("%d", followerCount))
	return err
}

func (s *gamificationService) GetSummary(ctx context.Context, uid string) (*domain.XPSummary, error) {
	creator, err := s.creatorRepo.FindByUID(uid)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, common.ErrUserNotFound
	}

	currentLevel, nextLevel, nextLevelXP, xpToNext, progress := calculateLevelInfo(creator.XP)

	return &domain.XPSummary{
		TotalXP:       creator.XP,
		CurrentLevel:  currentLevel,
		NextLevel:     nextLevel,
		NextLevelXP:   nextLevelXP,
		XPToNext:      xpToNext,
		Progress:      progress,
		CurrentStreak: creator.CurrentStreak,
		LongestStreak: creator.LongestStreak,
	}, nil
}

func (s *gamificationService) GetBadges(ctx context.Context, uid string) ([]domain.BadgeResponse, error) {
	return s.repo.ListBadges(uid)
}

func (s *gamificationService) GetHistory(ctx context.Context, uid string, page, limit int) ([]domain.XPEvent, *common.Meta, error) {
	page, limit = clampPage(page, limit)

	events, total, err := s.repo.GetHistory(uid, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return events, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

func (s *gamificationService) grantBadge(uid, badgeID string) {
	if _, err := s.repo.GrantBadge(uid, badgeID); err != nil {
		pkglogger.GetLogger().Warn().Err(err).
			Str("uid", uid).
			Str("badge", badgeID).
			Msg("badge grant failed")
	}
}

// DefaultBadges returns the built-in badge definitions for seeding
func DefaultBadges() []domain.Badge {
	return []domain.Badge{
		{ID: "first_tool", Name: "Cataloger", Description: "Submitted a first AI tool"},
		{ID: "first_portfolio", Name: "Showcase", Description: "Added a first portfolio item"},
		{ID: "followers_10", Name: "Rising", Description: "Reached 10 followers"},
		{ID: "followers_100", Name: "Popular", Description: "Reached 100 followers"},
		{ID: "followers_1000", Name: "Star", Description: "Reached 1000 followers"},
		{ID: "streak_7", Name: "Regular", Description: "7-day activity streak"},
		{ID: "streak_30", Name: "Devoted", Description: "30-day activity streak"},
	}
}
