package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

type postRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required"`
	Public  bool   `json:"public"`
	Tags    string `json:"tags" binding:"max=200"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// CreatePost creates a post owned by the caller
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body postRequest true "post fields"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.postService.Create(c.Request.Context(), middleware.CurrentUserID(c), service.PostUpdate{
		Title: req.Title, Content: req.Content, Public: req.Public, Tags: req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, p)
}

// GetPost returns one post, honoring its visibility flag
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.postService.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, p)
}

// UpdatePost replaces the editable fields; author only
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "post id"
// @Param request body postRequest true "post fields"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.postService.Update(c.Request.Context(), middleware.CurrentUserID(c), id, service.PostUpdate{
		Title: req.Title, Content: req.Content, Public: req.Public, Tags: req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, p)
}

// DeletePost removes a post and its comments; author only
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.postService.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// AddComment appends a comment to a post the caller can view
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "post id"
// @Param request body commentRequest true "comment body"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.postService.AddComment(c.Request.Context(), middleware.CurrentUserID(c), id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, cm)
}

// ListComments returns a post's comments in creation order
// @Summary List comments
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cs, err := h.postService.ListComments(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, cs)
}
