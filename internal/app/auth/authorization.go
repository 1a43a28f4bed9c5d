package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yatube/yatube/internal/app/repositories"
	"github.com/yatube/yatube/internal/pkg/apperrors"
	"github.com/yatube/yatube/internal/pkg/logger"
)

// AuthorizationService answers ownership questions for content that only
// its author may change.
type AuthorizationService struct {
	postRepo repositories.IPostRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(postRepo repositories.IPostRepository) *AuthorizationService {
	return &AuthorizationService{
		postRepo: postRepo,
	}
}

// CanModifyPost reports whether userID wrote the post.
func (s *AuthorizationService) CanModifyPost(ctx context.Context, postID, userID int64) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			return false, err
		}
		logger.Error().Err(err).Int64("postID", postID).Msg("Error loading post for ownership check")
		return false, fmt.Errorf("failed to check post ownership: %w", err)
	}

	return post.AuthorID == userID, nil
}

// ValidatePostOwnership returns apperrors.ErrNotPostAuthor when userID is
// not the author of the post, and apperrors.ErrPostNotFound when the post
// does not exist.
func (s *AuthorizationService) ValidatePostOwnership(ctx context.Context, postID, userID int64) error {
	canModify, err := s.CanModifyPost(ctx, postID, userID)
	if err != nil {
		return err
	}

	if !canModify {
		return apperrors.ErrNotPostAuthor
	}

	return nil
}
