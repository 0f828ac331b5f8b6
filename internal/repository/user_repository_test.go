package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"graphblog/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{
	"user_id", "email", "name", "password_hash", "status", "post_ids", "created_at", "updated_at",
}

const insertUserSQL = `
	INSERT INTO users (user_id, email, name, password_hash, status, post_ids, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

func newUserRepoMock(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUserRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	ctx := context.Background()

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		user := &models.User{
			Email:        "test@example.com",
			Name:         "Test",
			PasswordHash: "hash",
		}

		mock.ExpectExec(insertUserSQL).
			WithArgs(
				sqlmock.AnyArg(), // user_id будет сгенерирован в репозитории
				"test@example.com",
				"Test",
				"hash",
				models.DefaultUserStatus,
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user)

		require.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.Equal(t, models.DefaultUserStatus, user.Status)
		assert.Empty(t, user.PostIDs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка при дублировании email", func(t *testing.T) {
		user := &models.User{Email: "test@example.com", Name: "Test", PasswordHash: "hash"}

		mock.ExpectExec(insertUserSQL).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.CreateUser(ctx, user)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		user := &models.User{Email: "x@example.com", Name: "X", PasswordHash: "hash"}

		mock.ExpectExec(insertUserSQL).
			WillReturnError(errors.New("connection failed"))

		err := repo.CreateUser(ctx, user)

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateEmail)
		assert.Contains(t, err.Error(), "ошибка при создании пользователя")
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	ctx := context.Background()
	userID := uuid.New().String()
	postID := uuid.New().String()
	now := time.Now()

	t.Run("Успешное получение пользователя по ID", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow(userID, "test@example.com", "Test", "hash", "I am new!", "{"+postID+"}", now, now)

		mock.ExpectQuery(`SELECT * FROM users WHERE user_id = $1`).
			WithArgs(userID).
			WillReturnRows(rows)

		user, err := repo.GetUserByID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, "test@example.com", user.Email)
		assert.Equal(t, []string{postID}, user.PostIDs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE user_id = $1`).
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByID(ctx, userID)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Некорректный ID не доходит до БД", func(t *testing.T) {
		user, err := repo.GetUserByID(ctx, "not-a-uuid")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE user_id = $1`).
			WithArgs(userID).
			WillReturnError(errors.New("connection failed"))

		user, err := repo.GetUserByID(ctx, userID)

		assert.Nil(t, user)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка при получении пользователя")
	})
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	ctx := context.Background()
	email := "test@example.com"

	t.Run("Успешное получение по email", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow(uuid.New().String(), email, "Test", "hash", "busy", "{}", time.Now(), time.Now())

		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs(email).
			WillReturnRows(rows)

		user, err := repo.GetUserByEmail(ctx, email)

		require.NoError(t, err)
		assert.Equal(t, email, user.Email)
		assert.Equal(t, "busy", user.Status)
		assert.Empty(t, user.PostIDs)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs(email).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUserByEmail(ctx, email)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_UpdateStatus(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("Успешное обновление статуса", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET status = $1, updated_at = $2 WHERE user_id = $3`).
			WithArgs("writing", sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, userID, "writing"))
	})

	t.Run("Пользователь не найден при обновлении", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET status = $1, updated_at = $2 WHERE user_id = $3`).
			WithArgs("writing", sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(ctx, userID, "writing"), ErrNotFound)
	})
}

func TestUserRepository_PostReferences(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	ctx := context.Background()
	userID := uuid.New().String()
	postID := uuid.New().String()

	t.Run("Добавление ссылки на пост", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET post_ids = array_append(post_ids, $1), updated_at = $2 WHERE user_id = $3`).
			WithArgs(postID, sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.AddPost(ctx, userID, postID))
	})

	t.Run("Удаление ссылки на пост", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET post_ids = array_remove(post_ids, $1), updated_at = $2 WHERE user_id = $3`).
			WithArgs(postID, sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.RemovePost(ctx, userID, postID))
	})

	t.Run("Владелец не найден", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET post_ids = array_remove(post_ids, $1), updated_at = $2 WHERE user_id = $3`).
			WithArgs(postID, sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.RemovePost(ctx, userID, postID), ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
