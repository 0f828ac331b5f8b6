package repository

import (
	"context"
	"errors"

	"graphblog/internal/models"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound       = errors.New("не найден")
	ErrDuplicateEmail = errors.New("email уже зарегистрирован")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateStatus(ctx context.Context, userID, status string) error
	AddPost(ctx context.Context, userID, postID string) error
	RemovePost(ctx context.Context, userID, postID string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetByIDs(ctx context.Context, postIDs []string) ([]*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}

type HealthRepository interface {
	Ping(ctx context.Context) error
}

type Repository struct {
	User   UserRepository
	Post   PostRepository
	Health HealthRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:   NewUserRepository(db),
		Post:   NewPostRepository(db),
		Health: NewHealthRepository(db),
	}
}
