package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/pkg/response"
)

func paging(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}

// GlobalFeed lists public posts, newest first
// @Summary Global feed
// @Tags feeds
// @Produce json
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/posts [get]
func (h *Handler) GlobalFeed(c *gin.Context) {
	page, pageSize := paging(c)
	posts, err := h.feedService.GlobalFeed(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": posts})
}

// FollowingFeed lists posts by users the caller follows
// @Summary Following feed
// @Tags feeds
// @Produce json
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) FollowingFeed(c *gin.Context) {
	page, pageSize := paging(c)
	posts, err := h.feedService.FollowingFeed(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": posts})
}

// TagFeed lists posts whose tags contain the given substring
// @Summary Tag feed
// @Tags feeds
// @Produce json
// @Param tag path string true "tag substring"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/tags/{tag} [get]
func (h *Handler) TagFeed(c *gin.Context) {
	page, pageSize := paging(c)
	posts, err := h.feedService.TagFeed(c.Request.Context(), c.Param("tag"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "tag": c.Param("tag"), "list": posts})
}
