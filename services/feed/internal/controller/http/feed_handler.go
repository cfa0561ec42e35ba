package http

import (
	"errors"
	"net/http"
	"strconv"

	"scroll-feed/pkg/logger"
	"scroll-feed/pkg/middleware"
	"scroll-feed/services/feed/internal/entity"
	"scroll-feed/services/feed/internal/usecase"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase usecase.FeedUseCase
	logger      *logger.Logger
}

func NewFeedHandler(feedUseCase usecase.FeedUseCase, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
		logger:      logger,
	}
}

// RepostEligibility is the response of the repost eligibility endpoint.
type RepostEligibility struct {
	PostID    string `json:"postId"`
	CanRepost bool   `json:"canRepost"`
}

// GetFeed godoc
// @Summary      Get a feed page
// @Description  Composes one page of the discovery, following, saved or profile feed. Anonymous callers get discovery and profile feeds only.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        mode query string false "discovery (default), following or saved"
// @Param        targetAuthorId query string false "Author whose profile feed to return; overrides mode"
// @Param        cursor query string false "Opaque cursor from the previous page"
// @Param        limit query int false "Page size (1-100, default 20)"
// @Param        contentKind query string false "text, image, video, audio or panoramic"
// @Success      200  {object}  entity.FeedPage
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	req, ok := h.feedRequest(c)
	if !ok {
		return
	}
	h.serveFeed(c, req)
}

// GetUserPosts godoc
// @Summary      Get an author's posts
// @Description  Profile feed of one author, filtered by what the caller may see
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Author ID"
// @Param        cursor query string false "Opaque cursor from the previous page"
// @Param        limit query int false "Page size (1-100, default 20)"
// @Param        contentKind query string false "text, image, video, audio or panoramic"
// @Success      200  {object}  entity.FeedPage
// @Failure      400  {object}  map[string]interface{}
// @Router       /users/{id}/posts [get]
func (h *FeedHandler) GetUserPosts(c *gin.Context) {
	req, ok := h.feedRequest(c)
	if !ok {
		return
	}
	req.TargetAuthorID = c.Param("id")
	h.serveFeed(c, req)
}

// GetPost godoc
// @Summary      Get a single post
// @Description  Returns the post if the caller may see it; invisible posts are reported as not found
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.FeedItem
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id} [get]
func (h *FeedHandler) GetPost(c *gin.Context) {
	item, err := h.feedUseCase.GetPost(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetRepostEligibility godoc
// @Summary      Check repost eligibility
// @Description  Whether the caller may repost the post right now
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        viaRepost query bool false "The post is being viewed through someone else's repost"
// @Success      200  {object}  RepostEligibility
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id}/repost-eligibility [get]
func (h *FeedHandler) GetRepostEligibility(c *gin.Context) {
	viaRepost := false
	if raw := c.Query("viaRepost"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "viaRepost must be a boolean"})
			return
		}
		viaRepost = parsed
	}

	postID := c.Param("id")
	ok, err := h.feedUseCase.CanRepost(c.Request.Context(), c.GetString(middleware.ContextUserID), postID, viaRepost)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, RepostEligibility{PostID: postID, CanRepost: ok})
}

func (h *FeedHandler) feedRequest(c *gin.Context) (usecase.FeedRequest, bool) {
	req := usecase.FeedRequest{
		ViewerID:       c.GetString(middleware.ContextUserID),
		Mode:           entity.Mode(c.Query("mode")),
		TargetAuthorID: c.Query("targetAuthorId"),
		Cursor:         c.Query("cursor"),
		ContentKind:    c.Query("contentKind"),
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 100"})
			return req, false
		}
		req.Limit = limit
	}
	return req, true
}

func (h *FeedHandler) serveFeed(c *gin.Context, req usecase.FeedRequest) {
	page, err := h.feedUseCase.GetFeed(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// writeError maps use case errors to responses. Unexpected errors are
// already logged by the use case and surface as a generic 500.
func (h *FeedHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, usecase.ErrInvalidCursor),
		errors.Is(err, usecase.ErrInvalidLimit),
		errors.Is(err, usecase.ErrInvalidMode),
		errors.Is(err, usecase.ErrInvalidContentKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, usecase.ErrTimeout):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Feed temporarily unavailable", "retryable": true})
	default:
		h.logger.Debug("Request %s failed: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
