package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Relationship errors
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this creator")
	ErrNotFollowing     = errors.New("not following this creator")

	// Conversation errors
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrNotAuthorized        = errors.New("requester cannot respond to their own request")
	ErrInvalidState         = errors.New("conversation is not pending")
	ErrConversationRejected = errors.New("conversation request was rejected")
	ErrEmptyMessage         = errors.New("message content is empty")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Catalog errors
	ErrToolNotFound   = errors.New("tool not found")
	ErrAlreadyUpvoted = errors.New("already upvoted this tool")
	ErrNotUpvoted     = errors.New("tool not upvoted")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
