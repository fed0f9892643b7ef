package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Follow makes the caller follow the user in the path
// @Summary Follow a user
// @Tags relations
// @Produce json
// @Param id path int true "user id to follow"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/users/{id}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.relService.Follow(c.Request.Context(), middleware.CurrentUserID(c), targetID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// Unfollow removes the caller's follow edge to the user in the path
// @Summary Unfollow a user
// @Tags relations
// @Produce json
// @Param id path int true "user id to unfollow"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/users/{id}/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.relService.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), targetID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListFollowing lists ids the user follows
// @Summary List following
// @Tags relations
// @Produce json
// @Param id path int true "user id"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := paging(c)
	list, err := h.relService.Following(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListFollowers lists ids following the user
// @Summary List followers
// @Tags relations
// @Produce json
// @Param id path int true "user id"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := paging(c)
	list, err := h.relService.Followers(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
