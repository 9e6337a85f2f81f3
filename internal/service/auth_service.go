package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	pkgcache "github.com/sortmyai/sortmyai-backend/pkg/cache"
	pkgjwt "github.com/sortmyai/sortmyai-backend/pkg/jwt"
	pkglogger "github.com/sortmyai/sortmyai-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult bundles the account and its tokens
type LoginResult struct {
	Creator *domain.CreatorResponse `json:"creator"`
	Tokens  *pkgjwt.TokenPair       `json:"tokens"`
}

// AuthService account registration and login
type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*LoginResult, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*pkgjwt.TokenPair, error)
	GetMe(ctx context.Context, uid string) (*domain.CreatorResponse, error)
	UpdateProfile(ctx context.Context, uid string, req *domain.UpdateProfileRequest) (*domain.CreatorResponse, error)
}

type authService struct {
	creatorRepo repository.CreatorRepository
	jwtManager  *pkgjwt.Manager
	awards      GamificationService
	cache       pkgcache.Service
}

// NewAuthService creates a new AuthService
func NewAuthService(creatorRepo repository.CreatorRepository, jwtManager *pkgjwt.Manager, awards GamificationService, cache pkgcache.Service) AuthService {
	return &authService{
		creatorRepo: creatorRepo,
		jwtManager:  jwtManager,
		awards:      awards,
		cache:       cache,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*LoginResult, error) {
	if existing, err := s.creatorRepo.FindByEmail(req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, common.ErrUserAlreadyExists
	}
	if existing, err := s.creatorRepo.FindByHandle(req.Handle); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, common.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	creator := &domain.Creator{
		UID:          uuid.New().String(),
		Handle:       req.Handle,
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
		Level:        1,
	}

	if err := s.creatorRepo.Create(creator); err != nil {
		return nil, err
	}

	tokens, err := s.jwtManager.GenerateTokenPair(creator.UID, creator.Handle)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Creator: creator.ToResponse(), Tokens: tokens}, nil
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*LoginResult, error) {
	creator, err := s.creatorRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creator.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	tokens, err := s.jwtManager.GenerateTokenPair(creator.UID, creator.Handle)
	if err != nil {
		return nil, err
	}

	// Daily login is a gamification concern; a failed award never fails
	// the login
	if s.awards != nil {
		if err := s.awards.AwardDailyLogin(ctx, creator.UID); err != nil {
			pkglogger.GetLogger().Warn().Err(err).
				Str("uid", creator.UID).
				Msg("daily login award failed")
		}
	}

	return &LoginResult{Creator: creator.ToResponse(), Tokens: tokens}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*pkgjwt.TokenPair, error) {
	claims, err := s.jwtManager.VerifyToken(refreshToken)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	return s.jwtManager.GenerateTokenPair(claims.UserID, claims.Handle)
}

func (s *authService) GetMe(ctx context.Context, uid string) (*domain.CreatorResponse, error) {
	creator, err := s.creatorRepo.FindByUID(uid)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, common.ErrUserNotFound
	}
	return creator.ToResponse(), nil
}

func (s *authService) UpdateProfile(ctx context.Context, uid string, req *domain.UpdateProfileRequest) (*domain.CreatorResponse, error) {
	creator, err := s.creatorRepo.FindByUID(uid)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, common.ErrUserNotFound
	}

	fields := map[string]interface{}{}
	if req.DisplayName != nil {
		fields["display_name"] = *req.DisplayName
		creator.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
		creator.Bio = *req.Bio
	}
	if req.AvatarKey != nil {
		fields["avatar_key"] = *req.AvatarKey
		creator.AvatarKey = *req.AvatarKey
	}
	if len(fields) == 0 {
		return creator.ToResponse(), nil
	}

	if err := s.creatorRepo.UpdateFields(uid, fields); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateProfile(ctx, creator.Handle)
	}

	return creator.ToResponse(), nil
}
