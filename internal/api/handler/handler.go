package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Handler bundles the services every route delegates to.
type Handler struct {
	authService service.AuthService
	postService service.PostService
	feedService service.FeedService
	relService  service.RelationshipService
}

func New(auth service.AuthService, posts service.PostService, feeds service.FeedService, rels service.RelationshipService) *Handler {
	return &Handler{
		authService: auth,
		postService: posts,
		feedService: feeds,
		relService:  rels,
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a storage or programming failure and becomes a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrNotOwner), errors.Is(err, service.ErrPrivatePost):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPostNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrAlreadyFollowing):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrSelfFollow), errors.Is(err, service.ErrNotFollowing):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
