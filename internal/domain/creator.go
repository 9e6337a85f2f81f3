package domain

import "time"

// Creator is a SortMyAI account. followers_count/following_count/xp/level
// are denormalized aggregates; the follows and xp_events tables are the
// source of truth and counters are updated in the same transaction as the
// row they summarize.
type Creator struct {
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	LastActiveDate *time.Time `gorm:"column:last_active_date" json:"-"`

	UID          string `gorm:"column:uid;primaryKey;size:36" json:"uid"`
	Handle       string `gorm:"column:handle;uniqueIndex;size:30" json:"handle"`
	Email        string `gorm:"column:email;uniqueIndex" json:"email"`
	DisplayName  string `gorm:"column:display_name" json:"display_name"`
	Bio          string `gorm:"column:bio;type:text" json:"bio,omitempty"`
	AvatarKey    string `gorm:"column:avatar_key" json:"avatar_key,omitempty"`
	PasswordHash string `gorm:"column:password_hash" json:"-"`

	FollowersCount int `gorm:"column:followers_count;default:0" json:"followers_count"`
	FollowingCount int `gorm:"column:following_count;default:0" json:"following_count"`
	XP             int `gorm:"column:xp;default:0" json:"xp"`
	Level          int `gorm:"column:level;default:1" json:"level"`
	CurrentStreak  int `gorm:"column:current_streak;default:0" json:"current_streak"`
	LongestStreak  int `gorm:"column:longest_streak;default:0" json:"longest_streak"`
}

func (Creator) TableName() string {
	return "creators"
}

// RegisterRequest is the signup request body
type RegisterRequest struct {
	Handle      string `json:"handle" binding:"required,min=3,max=30,alphanum"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=80"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the profile edit request body
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty" binding:"omitempty,min=1,max=80"`
	Bio         *string `json:"bio,omitempty" binding:"omitempty,max=2000"`
	AvatarKey   *string `json:"avatar_key,omitempty"`
}

// CreatorResponse is the private view of an account
type CreatorResponse struct {
	UID            string `json:"uid"`
	Handle         string `json:"handle"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio,omitempty"`
	AvatarKey      string `json:"avatar_key,omitempty"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	XP             int    `json:"xp"`
	Level          int    `json:"level"`
	CurrentStreak  int    `json:"current_streak"`
	CreatedAt      string `json:"created_at"`
}

// ToResponse converts Creator to CreatorResponse
func (c *Creator) ToResponse() *CreatorResponse {
	return &CreatorResponse{
		UID:            c.UID,
		Handle:         c.Handle,
		Email:          c.Email,
		DisplayName:    c.DisplayName,
		Bio:            c.Bio,
		AvatarKey:      c.AvatarKey,
		FollowersCount: c.FollowersCount,
		FollowingCount: c.FollowingCount,
		XP:             c.XP,
		Level:          c.Level,
		CurrentStreak:  c.CurrentStreak,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}

// ProfileResponse is the public view of a creator
type ProfileResponse struct {
	UID            string `json:"uid"`
	Handle         string `json:"handle"`
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio,omitempty"`
	AvatarKey      string `json:"avatar_key,omitempty"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	Level          int    `json:"level"`
	CreatedAt      string `json:"created_at"`
	IsFollowing    bool   `json:"is_following"`
}

// ToProfileResponse converts Creator to ProfileResponse
func (c *Creator) ToProfileResponse() *ProfileResponse {
	return &ProfileResponse{
		UID:            c.UID,
		Handle:         c.Handle,
		DisplayName:    c.DisplayName,
		Bio:            c.Bio,
		AvatarKey:      c.AvatarKey,
		FollowersCount: c.FollowersCount,
		FollowingCount: c.FollowingCount,
		Level:          c.Level,
		CreatedAt:      c.CreatedAt.Format("2006-01-02"),
	}
}
