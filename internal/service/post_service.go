package service

import (
	"context"
	"errors"
	"strings"

	"graphblog/internal/config"
	"graphblog/internal/logger"
	"graphblog/internal/models"
	"graphblog/internal/repository"
	"graphblog/internal/storage"
)

// keepImageURL is what clients send when the image was not changed.
const keepImageURL = "undefined"

type PostService interface {
	CreatePost(ctx context.Context, userID string, input models.PostInput) (*models.Post, error)
	GetPosts(ctx context.Context, page int) (*models.PostPage, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	GetPostsByIDs(ctx context.Context, postIDs []string) ([]*models.Post, error)
	UpdatePost(ctx context.Context, userID, postID string, input models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
	log      *logger.Logger
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository,
	storage storage.Storage, cfg *config.Config, log *logger.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
		log:      log,
	}
}

func normalizePostInput(input models.PostInput) models.PostInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	return input
}

func (p *postService) CreatePost(ctx context.Context, userID string, input models.PostInput) (*models.Post, error) {
	input = normalizePostInput(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	creator, err := p.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewUnauthenticatedError("Invalid user.")
		}
		return nil, NewInternalError(err)
	}

	post := &models.Post{
		Title:     input.Title,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		CreatorID: creator.UserID,
	}

	err = p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, NewInternalError(err)
	}

	err = p.userRepo.AddPost(ctx, creator.UserID, post.PostID)
	if err != nil {
		return nil, NewInternalError(err)
	}

	return post, nil
}

func (p *postService) GetPosts(ctx context.Context, page int) (*models.PostPage, error) {
	if page < 1 {
		page = 1
	}

	perPage := p.cfg.PostsPerPage
	if perPage < 1 {
		perPage = config.DefaultPostsPerPage
	}

	total, err := p.postRepo.Count(ctx)
	if err != nil {
		return nil, NewInternalError(err)
	}

	posts, err := p.postRepo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, NewInternalError(err)
	}

	return &models.PostPage{Posts: posts, TotalPosts: total}, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("No post found!", err)
		}
		return nil, NewInternalError(err)
	}

	return post, nil
}

func (p *postService) GetPostsByIDs(ctx context.Context, postIDs []string) ([]*models.Post, error) {
	posts, err := p.postRepo.GetByIDs(ctx, postIDs)
	if err != nil {
		return nil, NewInternalError(err)
	}

	return posts, nil
}

// ownPost loads the post and checks that userID created it.
func (p *postService) ownPost(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := p.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.CreatorID != userID {
		return nil, NewForbiddenError()
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, userID, postID string, input models.PostInput) (*models.Post, error) {
	post, err := p.ownPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	input = normalizePostInput(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Content = input.Content
	if input.ImageURL != "" && input.ImageURL != keepImageURL {
		post.ImageURL = input.ImageURL
	}

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("No post found!", err)
		}
		return nil, NewInternalError(err)
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := p.ownPost(ctx, userID, postID)
	if err != nil {
		return err
	}

	if post.ImageURL != "" {
		if err := p.storage.DeleteImage(ctx, post.ImageURL); err != nil {
			p.log.Warnw("Не удалось удалить изображение поста", "postID", postID, "path", post.ImageURL, "error", err)
		}
	}

	err = p.postRepo.Delete(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError("No post found!", err)
		}
		return NewInternalError(err)
	}

	err = p.userRepo.RemovePost(ctx, post.CreatorID, postID)
	if err != nil {
		return NewInternalError(err)
	}

	return nil
}
