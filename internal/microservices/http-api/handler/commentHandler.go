package handler

import (
	"errors"
	"net/http"
	"strconv"

	"commenthub/internal/microservices/http-api/dto"
	"commenthub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment-related routes
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup, optionalAuth, requireAuth, submitLimit gin.HandlerFunc) {
	nodeComments := router.Group("/nodes/:model/:id/comments")
	{
		// Public routes
		nodeComments.GET("", h.ListByNode)      // Approved comments for a node
		nodeComments.GET("/check", h.Precheck)  // Display-only pipeline run, creates nothing

		// Submission works anonymously too, identity is attached when present
		nodeComments.POST("", submitLimit, optionalAuth, h.Submit)
	}

	comments := router.Group("/comments")
	{
		comments.GET("", h.Feed)                          // Newest approved comments across all nodes
		comments.DELETE("/:id", requireAuth, h.Delete)    // Delete a comment (user's own)
	}
}

// Submit runs the full submission pipeline for a node comment
// POST /api/nodes/:model/:id/comments
func (h *CommentHandler) Submit(c *gin.Context) {
	model := c.Param("model")
	foreignKey, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node ID"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &service.SubmitCommentInput{
		Model:      model,
		ForeignKey: foreignKey,
		ParentID:   req.ParentID,
		Fields:     &req,
		IP:         c.ClientIP(),
	}
	if userID, exists := c.Get("userID"); exists {
		input.UserID = userID.(string)
	}

	result, err := h.commentService.Submit(c.Request.Context(), input)
	if err != nil {
		h.renderSubmitError(c, err)
		return
	}

	message := "Your comment will appear after moderation."
	if result.Status == "approved" {
		message = "Your comment has been added successfully."
	}

	c.JSON(http.StatusCreated, dto.SubmitCommentResponse{
		ID:          result.CommentID,
		Status:      result.Status,
		RedirectURL: result.RedirectURL,
		Message:     message,
	})
}

// Precheck runs the pipeline without submitted data: target resolution,
// level validation and the commentability precondition, creating nothing
// GET /api/nodes/:model/:id/comments/check?parent_id=N
func (h *CommentHandler) Precheck(c *gin.Context) {
	model := c.Param("model")
	foreignKey, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node ID"})
		return
	}

	input := &service.SubmitCommentInput{
		Model:      model,
		ForeignKey: foreignKey,
		IP:         c.ClientIP(),
	}
	if rawParent := c.Query("parent_id"); rawParent != "" {
		parentID, err := strconv.ParseInt(rawParent, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent ID"})
			return
		}
		input.ParentID = &parentID
	}

	result, err := h.commentService.Submit(c.Request.Context(), input)
	if err != nil {
		h.renderSubmitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PrecheckCommentResponse{
		Commentable: true,
		RedirectURL: result.RedirectURL,
	})
}

// Delete deletes a comment owned by the caller
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	affected, err := h.commentService.DeleteComment(c.Request.Context(), commentID, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete comment"})
		return
	}

	// Ownership mismatch or missing comment both read as zero affected
	c.JSON(http.StatusOK, dto.DeleteCommentResponse{Affected: affected})
}

// ListByNode retrieves approved comments for a node with pagination
// GET /api/nodes/:model/:id/comments?page=1&page_size=20
func (h *CommentHandler) ListByNode(c *gin.Context) {
	model := c.Param("model")
	foreignKey, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	comments, err := h.commentService.GetNodeComments(c.Request.Context(), model, foreignKey, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrUnknownModel) || errors.Is(err, service.ErrInvalidTarget) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Feed retrieves the newest approved comments across all nodes
// GET /api/comments
func (h *CommentHandler) Feed(c *gin.Context) {
	comments, err := h.commentService.GetFeed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comments})
}

// renderSubmitError translates pipeline errors into HTTP responses.
// Rejections carry their specific reason; infrastructure failures don't
// leak details.
func (h *CommentHandler) renderSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownModel), errors.Is(err, service.ErrInvalidTarget):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMaxLevelReached),
		errors.Is(err, service.ErrCommentsNotAllowed),
		errors.Is(err, service.ErrLikelySpam),
		errors.Is(err, service.ErrInvalidCaptcha):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProtectionUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": service.ErrProtectionUnavailable.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save comment"})
	}
}
