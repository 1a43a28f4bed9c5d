package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yatube/yatube/internal/app/models/dto"
	"github.com/yatube/yatube/internal/app/repositories"
	"github.com/yatube/yatube/internal/pkg/apperrors"
	"github.com/yatube/yatube/internal/pkg/helpers"
)

// GroupService defines the interface for group operations
type GroupService interface {
	GetAllGroups(ctx context.Context) (*dto.GroupListResponse, error)
	GetGroupPage(ctx context.Context, slug string, page int) (*dto.GroupPageResponse, error)
}

// groupServiceImpl implements GroupService
type groupServiceImpl struct {
	groupRepo    repositories.IGroupRepository
	postRepo     repositories.IPostRepository
	postsPerPage int
	logger       zerolog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(
	groupRepo repositories.IGroupRepository,
	postRepo repositories.IPostRepository,
	postsPerPage int,
	logger zerolog.Logger,
) GroupService {
	if postsPerPage <= 0 {
		postsPerPage = helpers.DefaultPageSize
	}
	return &groupServiceImpl{
		groupRepo:    groupRepo,
		postRepo:     postRepo,
		postsPerPage: postsPerPage,
		logger:       logger,
	}
}

// GetAllGroups retrieves all groups
func (s *groupServiceImpl) GetAllGroups(ctx context.Context) (*dto.GroupListResponse, error) {
	groups, err := s.groupRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting groups: %w", err)
	}

	return &dto.GroupListResponse{
		Groups: dto.FromGroups(groups),
	}, nil
}

// GetGroupPage returns a group's metadata with one page of its posts,
// newest first
func (s *groupServiceImpl) GetGroupPage(ctx context.Context, slug string, page int) (*dto.GroupPageResponse, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrGroupNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error retrieving group: %w", err)
	}

	filter := repositories.PostFilter{GroupID: &group.ID}

	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting posts: %w", err)
	}

	page = helpers.ClampPage(page, total, s.postsPerPage)

	posts, err := s.postRepo.GetAll(ctx, filter, page, s.postsPerPage)
	if err != nil {
		return nil, fmt.Errorf("error getting posts: %w", err)
	}

	return &dto.GroupPageResponse{
		Group:      dto.FromGroup(group),
		Posts:      dto.FromPosts(posts),
		Pagination: helpers.NewPaginationInfo(total, page, s.postsPerPage),
	}, nil
}
