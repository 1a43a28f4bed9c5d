package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yatube/yatube/internal/app/models"
	"github.com/yatube/yatube/internal/app/models/dto"
	"github.com/yatube/yatube/internal/app/repositories"
	"github.com/yatube/yatube/internal/pkg/apperrors"
)

// CommentService defines the interface for comment operations
type CommentService interface {
	AddComment(ctx context.Context, postID, authorID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
}

// commentServiceImpl implements CommentService
type commentServiceImpl struct {
	commentRepo repositories.ICommentRepository
	postRepo    repositories.IPostRepository
	logger      zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repositories.ICommentRepository,
	postRepo repositories.IPostRepository,
	logger zerolog.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		logger:      logger,
	}
}

// AddComment attaches a comment by authorID to the given post
func (s *commentServiceImpl) AddComment(ctx context.Context, postID, authorID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	// The post must exist; an unknown post is an error even for an empty body
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.ErrEmptyComment
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     req.Text,
	}

	id, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	// Re-read for the author join
	created, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving created comment: %w", err)
	}

	s.logger.Info().Int64("commentID", id).Int64("postID", postID).Int64("authorID", authorID).Msg("Comment added")

	response := dto.FromComment(created)
	return &response, nil
}
