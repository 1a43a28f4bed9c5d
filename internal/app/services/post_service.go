package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/yatube/yatube/internal/app/auth"
	"github.com/yatube/yatube/internal/app/models"
	"github.com/yatube/yatube/internal/app/models/dto"
	"github.com/yatube/yatube/internal/app/repositories"
	"github.com/yatube/yatube/internal/pkg/apperrors"
	"github.com/yatube/yatube/internal/pkg/filestorage"
	"github.com/yatube/yatube/internal/pkg/helpers"
)

// postImageSubPath is the media subdirectory for uploaded post images
const postImageSubPath = "posts"

// PostService defines the interface for post operations
type PostService interface {
	// Listing pages
	GetIndexPage(ctx context.Context, page int) (*dto.PostListResponse, error)
	GetFeedPage(ctx context.Context, userID int64, page int) (*dto.PostListResponse, error)
	GetProfilePage(ctx context.Context, username string, viewerID *int64, page int) (*dto.ProfileResponse, error)
	GetPostDetail(ctx context.Context, postID int64) (*dto.PostDetailResponse, error)

	// Forms and writes
	GetCreateForm(ctx context.Context) (*dto.PostFormResponse, error)
	GetEditForm(ctx context.Context, postID, userID int64) (*dto.PostFormResponse, error)
	CreatePost(ctx context.Context, authorID int64, req *dto.PostFormRequest, image *multipart.FileHeader) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, postID, userID int64, req *dto.PostFormRequest, image *multipart.FileHeader) (*dto.PostResponse, error)
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	postRepo     repositories.IPostRepository
	userRepo     repositories.IUserRepository
	groupRepo    repositories.IGroupRepository
	commentRepo  repositories.ICommentRepository
	followRepo   repositories.IFollowRepository
	authzService *auth.AuthorizationService
	fileStorage  filestorage.FileStorage
	postsPerPage int
	logger       zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.IPostRepository,
	userRepo repositories.IUserRepository,
	groupRepo repositories.IGroupRepository,
	commentRepo repositories.ICommentRepository,
	followRepo repositories.IFollowRepository,
	authzService *auth.AuthorizationService,
	fileStorage filestorage.FileStorage,
	postsPerPage int,
	logger zerolog.Logger,
) PostService {
	if postsPerPage <= 0 {
		postsPerPage = helpers.DefaultPageSize
	}
	return &postServiceImpl{
		postRepo:     postRepo,
		userRepo:     userRepo,
		groupRepo:    groupRepo,
		commentRepo:  commentRepo,
		followRepo:   followRepo,
		authzService: authzService,
		fileStorage:  fileStorage,
		postsPerPage: postsPerPage,
		logger:       logger,
	}
}

// listPage counts the matching posts, clamps the requested page into range
// and fetches that page, newest first.
func (s *postServiceImpl) listPage(ctx context.Context, filter repositories.PostFilter, page int) ([]dto.PostResponse, dto.PaginationInfo, int64, error) {
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, 0, fmt.Errorf("error counting posts: %w", err)
	}

	page = helpers.ClampPage(page, total, s.postsPerPage)

	posts, err := s.postRepo.GetAll(ctx, filter, page, s.postsPerPage)
	if err != nil {
		return nil, dto.PaginationInfo{}, 0, fmt.Errorf("error getting posts: %w", err)
	}

	return dto.FromPosts(posts), helpers.NewPaginationInfo(total, page, s.postsPerPage), total, nil
}

// GetIndexPage returns one page of all posts
func (s *postServiceImpl) GetIndexPage(ctx context.Context, page int) (*dto.PostListResponse, error) {
	posts, pagination, _, err := s.listPage(ctx, repositories.PostFilter{}, page)
	if err != nil {
		return nil, err
	}

	return &dto.PostListResponse{
		Posts:      posts,
		Pagination: pagination,
	}, nil
}

// GetFeedPage returns one page of posts by authors the user follows
func (s *postServiceImpl) GetFeedPage(ctx context.Context, userID int64, page int) (*dto.PostListResponse, error) {
	filter := repositories.PostFilter{FollowerID: &userID}
	posts, pagination, _, err := s.listPage(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	return &dto.PostListResponse{
		Posts:      posts,
		Pagination: pagination,
	}, nil
}

// GetProfilePage returns an author's profile with one page of their posts.
// The Following flag is resolved against the viewer when one is given.
func (s *postServiceImpl) GetProfilePage(ctx context.Context, username string, viewerID *int64, page int) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	filter := repositories.PostFilter{AuthorID: &user.ID}
	posts, pagination, total, err := s.listPage(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	followersCount, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error counting followers: %w", err)
	}

	following := false
	if viewerID != nil && *viewerID != user.ID {
		following, err = s.followRepo.Exists(ctx, *viewerID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("error checking follow state: %w", err)
		}
	}

	return &dto.ProfileResponse{
		Author:         dto.FromUser(user),
		PostCount:      total,
		FollowersCount: followersCount,
		Following:      following,
		Posts:          posts,
		Pagination:     pagination,
	}, nil
}

// GetPostDetail returns a single post with its author's total post count
// and its comments, oldest first
func (s *postServiceImpl) GetPostDetail(ctx context.Context, postID int64) (*dto.PostDetailResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	postCount, err := s.postRepo.CountByAuthorID(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("error counting author posts: %w", err)
	}

	comments, err := s.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving comments: %w", err)
	}

	return &dto.PostDetailResponse{
		Post:      dto.FromPost(post),
		PostCount: postCount,
		Comments:  dto.FromComments(comments),
	}, nil
}

// GetCreateForm returns the context of the post creation form
func (s *postServiceImpl) GetCreateForm(ctx context.Context) (*dto.PostFormResponse, error) {
	groups, err := s.groupRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting groups: %w", err)
	}

	return &dto.PostFormResponse{
		IsEdit: false,
		Groups: dto.FromGroups(groups),
	}, nil
}

// GetEditForm returns the edit form context pre-filled with the post's
// current values. Only the author may request it.
func (s *postServiceImpl) GetEditForm(ctx context.Context, postID, userID int64) (*dto.PostFormResponse, error) {
	if err := s.authzService.ValidatePostOwnership(ctx, postID, userID); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	groups, err := s.groupRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting groups: %w", err)
	}

	postResponse := dto.FromPost(post)
	return &dto.PostFormResponse{
		IsEdit: true,
		Post:   &postResponse,
		Groups: dto.FromGroups(groups),
	}, nil
}

// resolveGroup checks that a submitted group id refers to an existing group
func (s *postServiceImpl) resolveGroup(ctx context.Context, groupID *int64) error {
	if groupID == nil {
		return nil
	}

	if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
		if errors.Is(err, apperrors.ErrGroupNotFound) {
			return apperrors.NewBadRequestError(fmt.Sprintf("group %d does not exist", *groupID))
		}
		return fmt.Errorf("error checking group: %w", err)
	}

	return nil
}

// saveImage validates and stores an uploaded post image, returning its URL
func (s *postServiceImpl) saveImage(image *multipart.FileHeader) (*string, error) {
	if image == nil {
		return nil, nil
	}

	if err := filestorage.ValidateImageExtension(image.Filename); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidImage, err.Error())
	}

	imageURL, err := s.fileStorage.SaveFileWithPath(image, postImageSubPath)
	if err != nil {
		return nil, fmt.Errorf("error saving image: %w", err)
	}

	return &imageURL, nil
}

// CreatePost creates a new post owned by authorID
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID int64, req *dto.PostFormRequest, image *multipart.FileHeader) (*dto.PostResponse, error) {
	if err := s.resolveGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}

	imageURL, err := s.saveImage(image)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     req.Text,
		AuthorID: authorID,
		GroupID:  req.GroupID,
		ImageURL: imageURL,
	}

	id, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	// Re-read for the author and group joins
	created, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving created post: %w", err)
	}

	s.logger.Info().Int64("postID", id).Int64("authorID", authorID).Msg("Post created")

	response := dto.FromPost(created)
	return &response, nil
}

// UpdatePost updates the text, group and image of a post. Only the author
// may edit, and the author never changes.
func (s *postServiceImpl) UpdatePost(ctx context.Context, postID, userID int64, req *dto.PostFormRequest, image *multipart.FileHeader) (*dto.PostResponse, error) {
	if err := s.authzService.ValidatePostOwnership(ctx, postID, userID); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	if err := s.resolveGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}

	post.Text = req.Text
	post.GroupID = req.GroupID

	// A newly uploaded image replaces (and removes) the previous one;
	// without an upload the current image is kept.
	if image != nil {
		imageURL, err := s.saveImage(image)
		if err != nil {
			return nil, err
		}

		if post.ImageURL != nil {
			if err := s.fileStorage.DeleteFile(*post.ImageURL); err != nil {
				s.logger.Warn().Err(err).Str("path", *post.ImageURL).Msg("Failed to delete replaced image")
			}
		}
		post.ImageURL = imageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("error updating post: %w", err)
	}

	// Re-read for the refreshed group join
	updated, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving updated post: %w", err)
	}

	s.logger.Info().Int64("postID", postID).Int64("authorID", userID).Msg("Post updated")

	response := dto.FromPost(updated)
	return &response, nil
}
