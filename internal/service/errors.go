package service

import "errors"

// Domain errors. All of these are user-facing validation outcomes the
// handlers map to 4xx statuses; none is fatal. Storage constraint violations
// are translated into these at the service boundary and never escape raw.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrAuthRequired       = errors.New("authentication required")
	ErrNotOwner           = errors.New("only the author may modify this post")
	ErrPrivatePost        = errors.New("this post is private")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrNotFollowing       = errors.New("not following this user")
)
