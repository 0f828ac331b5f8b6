package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"graphblog/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (post_id, title, content, image_url, creator_id, created_at, updated_at)
        VALUES
        (:post_id, :title, :content, :image_url, :creator_id, :created_at, :updated_at)
    `

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
	}

	query := `
        SELECT * FROM posts
        WHERE post_id = $1
    `

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

// GetByIDs returns the posts in the order of postIDs, skipping unknown ids.
func (r *PostRepositoryImpl) GetByIDs(ctx context.Context, postIDs []string) ([]*models.Post, error) {
	if len(postIDs) == 0 {
		return []*models.Post{}, nil
	}

	query := `SELECT * FROM posts WHERE post_id = ANY($1)`

	var posts []*models.Post
	err := r.DB.SelectContext(ctx, &posts, query, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	byID := make(map[string]*models.Post, len(posts))
	for _, post := range posts {
		byID[post.PostID] = post
	}

	ordered := make([]*models.Post, 0, len(posts))
	for _, id := range postIDs {
		if post, ok := byID[id]; ok {
			ordered = append(ordered, post)
		}
	}

	return ordered, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	query := `
        SELECT * FROM posts
        ORDER BY created_at DESC, post_id DESC
        LIMIT $1 OFFSET $2
    `

	posts := []*models.Post{}
	err := r.DB.SelectContext(ctx, &posts, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int

	err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}

	return count, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			image_url = :image_url,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	post.UpdatedAt = time.Now()

	result, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	return checkAffected(result, fmt.Sprintf("пост с ID %s", post.PostID))
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.DB.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	return checkAffected(result, fmt.Sprintf("пост с ID %s", postID))
}
