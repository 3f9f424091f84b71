package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commenthub/internal/microservices/http-api/dto"
	"commenthub/internal/microservices/http-api/models"
	"commenthub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// Rejection reasons: expected, user-correctable failures. The pipeline
// halts at the first one and the handler turns it into a message.
var (
	ErrUnknownModel          = errors.New("model not configured for comments")
	ErrInvalidTarget         = errors.New("invalid id")
	ErrCommentsNotAllowed    = errors.New("comments are not allowed")
	ErrMaxLevelReached       = errors.New("maximum level reached")
	ErrLikelySpam            = errors.New("the comment appears to be spam")
	ErrInvalidCaptcha        = errors.New("invalid captcha entry")
	ErrProtectionUnavailable = errors.New("comment protection service unavailable")
)

// ErrStorage marks infrastructure failures, as opposed to the policy
// rejections above. Callers distinguish the two with errors.Is.
var ErrStorage = errors.New("comment storage failure")

// SubmitCommentInput carries one submission through the pipeline. Fields
// is nil for a display-only precheck: the gates still run but nothing is
// created. UserID is empty for anonymous authors.
type SubmitCommentInput struct {
	Model      string
	ForeignKey int64
	ParentID   *int64
	Fields     *dto.CreateCommentDTO
	IP         string
	UserID     string
}

// SubmissionResult is the terminal success state of the pipeline
type SubmissionResult struct {
	Created     bool
	CommentID   int64
	Status      string
	RedirectURL string
}

type CommentService interface {
	Submit(ctx context.Context, input *SubmitCommentInput) (*SubmissionResult, error)
	DeleteComment(ctx context.Context, commentID int64, userID string) (int64, error)
	GetNodeComments(ctx context.Context, model string, foreignKey int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
	GetFeed(ctx context.Context) ([]dto.CommentResponse, error)
}

type commentService struct {
	commentRepo   repository.CommentRepository
	nodeRepo      repository.NodeRepository
	policies      *PolicyRegistry
	classifier    SpamClassifier
	verifier      CaptchaVerifier
	notifier      NotificationService
	maxLevel      int
	feedLimit     int
	notifyEnabled bool
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	nodeRepo repository.NodeRepository,
	policies *PolicyRegistry,
	classifier SpamClassifier,
	verifier CaptchaVerifier,
	notifier NotificationService,
	maxLevel int,
	feedLimit int,
	notifyEnabled bool,
) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		nodeRepo:      nodeRepo,
		policies:      policies,
		classifier:    classifier,
		verifier:      verifier,
		notifier:      notifier,
		maxLevel:      maxLevel,
		feedLimit:     feedLimit,
		notifyEnabled: notifyEnabled,
	}
}

// Submit runs the full submission pipeline: resolve the target, validate
// the reply level, run the gate chain, create the comment and attempt a
// notification. A precheck (Fields == nil) stops after the gates.
func (s *commentService) Submit(ctx context.Context, input *SubmitCommentInput) (*SubmissionResult, error) {
	policy, ok := s.policies.Get(input.Model)
	if !ok {
		return nil, ErrUnknownModel
	}

	// Resolve target: must exist with approved status
	node, err := s.nodeRepo.FindApproved(ctx, input.Model, input.ForeignKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTarget
		}
		return nil, fmt.Errorf("%w: resolving target: %v", ErrStorage, err)
	}

	// Validate reply nesting depth against the configured maximum
	level, err := s.replyLevel(ctx, input.ParentID)
	if err != nil {
		return nil, err
	}

	// Commentability is a hard precondition, checked before any other
	// gate: a closed target never reaches the spam or captcha services
	if !policy.Commentable || !node.CommentStatus {
		return nil, ErrCommentsNotAllowed
	}

	sub := &submission{
		policy: policy,
		node:   node,
	}
	if input.Fields != nil {
		sub.fields = &SpamFields{
			Name:    input.Fields.Name,
			Email:   input.Fields.Email,
			Website: input.Fields.Website,
			Body:    input.Fields.Body,
			IP:      input.IP,
		}
		sub.captcha = input.Fields.CaptchaResponse
	}

	gates := []gate{
		spamGate(s.classifier),
		captchaGate(s.verifier),
	}
	if err := runGates(ctx, gates, sub); err != nil {
		return nil, err
	}

	// Display-only invocation: gates passed, nothing to create
	if input.Fields == nil {
		return &SubmissionResult{Created: false, RedirectURL: node.Path}, nil
	}

	comment, err := s.create(ctx, input, node, policy, level)
	if err != nil {
		return nil, err
	}

	// Best-effort notification: its outcome never changes the result
	if s.notifyEnabled {
		s.notifier.NotifyNewComment(ctx, node, comment)
	}

	return &SubmissionResult{
		Created:     true,
		CommentID:   comment.ID,
		Status:      comment.Status,
		RedirectURL: fmt.Sprintf("%s#comment-%d", node.URL, comment.ID),
	}, nil
}

// replyLevel computes the nesting depth of the new comment and rejects
// replies past the configured maximum. A missing parentID is a top-level
// comment, always valid at level 0.
func (s *commentService) replyLevel(ctx context.Context, parentID *int64) (int, error) {
	if parentID == nil {
		return 0, nil
	}

	parent, err := s.commentRepo.GetByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrMaxLevelReached
		}
		return 0, fmt.Errorf("%w: resolving parent comment: %v", ErrStorage, err)
	}

	level := parent.Level + 1
	if level > s.maxLevel {
		return 0, ErrMaxLevelReached
	}
	return level, nil
}

// create persists the comment once all gates have passed
func (s *commentService) create(ctx context.Context, input *SubmitCommentInput, node *models.Node, policy CommentPolicy, level int) (*models.Comment, error) {
	status := models.CommentStatusPending
	if policy.AutoApprove {
		status = models.CommentStatusApproved
	}

	comment := &models.Comment{
		Model:      input.Model,
		ForeignKey: node.ID,
		ParentID:   input.ParentID,
		Level:      level,
		Name:       input.Fields.Name,
		Email:      input.Fields.Email,
		Website:    input.Fields.Website,
		Body:       input.Fields.Body,
		IP:         input.IP,
		Status:     status,
		Weight:     time.Now().Unix(),
	}
	if input.UserID != "" {
		userID := input.UserID
		comment.UserID = &userID
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// Counter drift here is tolerable, the comment itself is saved
	_ = s.nodeRepo.IncrementCommentCount(ctx, node.ID)

	return comment, nil
}

// DeleteComment removes a comment owned by the caller and reports how
// many rows were affected. An ownership mismatch is a no-op, not an
// error: affected is 0 and the comment stays.
func (s *commentService) DeleteComment(ctx context.Context, commentID int64, userID string) (int64, error) {
	affected, err := s.commentRepo.DeleteOwned(ctx, commentID, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return affected, nil
}

// GetNodeComments retrieves approved comments for a target item with pagination
func (s *commentService) GetNodeComments(ctx context.Context, model string, foreignKey int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	if _, ok := s.policies.Get(model); !ok {
		return nil, ErrUnknownModel
	}

	if _, err := s.nodeRepo.FindApproved(ctx, model, foreignKey); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTarget
		}
		return nil, fmt.Errorf("%w: resolving target: %v", ErrStorage, err)
	}

	comments, total, err := s.commentRepo.GetApprovedByTarget(ctx, model, foreignKey, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentResponses = append(commentResponses, *dto.FromModelToCommentResponse(&comment))
	}

	return dto.NewPaginatedCommentResponse(commentResponses, int(total), page, pageSize), nil
}

// GetFeed retrieves the newest approved comments across all targets
func (s *commentService) GetFeed(ctx context.Context) ([]dto.CommentResponse, error) {
	comments, err := s.commentRepo.GetRecentApproved(ctx, s.feedLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentResponses = append(commentResponses, *dto.FromModelToCommentResponse(&comment))
	}
	return commentResponses, nil
}
