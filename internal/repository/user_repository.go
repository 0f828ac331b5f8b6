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

// postgres unique_violation
const uniqueViolation = "23505"

type userRepository struct {
	db *sqlx.DB
}

// userRow keeps the owner's post references as a text[] column.
type userRow struct {
	models.User
	PostIDs pq.StringArray `db:"post_ids"`
}

func (r userRow) toModel() *models.User {
	user := r.User
	user.PostIDs = []string(r.PostIDs)
	if user.PostIDs == nil {
		user.PostIDs = []string{}
	}
	return &user
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	if user.Status == "" {
		user.Status = models.DefaultUserStatus
	}
	if user.PostIDs == nil {
		user.PostIDs = []string{}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (user_id, email, name, password_hash, status, post_ids, created_at, updated_at)
		VALUES (:user_id, :email, :name, :password_hash, :status, :post_ids, :created_at, :updated_at)
	`

	row := userRow{User: *user, PostIDs: pq.StringArray(user.PostIDs)}

	_, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("пользователь с email %s: %w", user.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("пользователь с ID %s: %w", userID, ErrNotFound)
	}

	var row userRow

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &row, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с ID %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return row.toModel(), nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var row userRow

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &row, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	return row.toModel(), nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, userID, status string) error {
	query := `UPDATE users SET status = $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении статуса: %w", err)
	}

	return checkAffected(result, fmt.Sprintf("пользователь с ID %s", userID))
}

func (r *userRepository) AddPost(ctx context.Context, userID, postID string) error {
	query := `UPDATE users SET post_ids = array_append(post_ids, $1), updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, postID, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении поста пользователю: %w", err)
	}

	return checkAffected(result, fmt.Sprintf("пользователь с ID %s", userID))
}

func (r *userRepository) RemovePost(ctx context.Context, userID, postID string) error {
	query := `UPDATE users SET post_ids = array_remove(post_ids, $1), updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, postID, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста у пользователя: %w", err)
	}

	return checkAffected(result, fmt.Sprintf("пользователь с ID %s", userID))
}

func checkAffected(result sql.Result, what string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}

	return nil
}
