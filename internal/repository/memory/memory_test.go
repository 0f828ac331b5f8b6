package memory

import (
	"context"
	"testing"
	"time"

	"graphblog/internal/models"
	"graphblog/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	user := &models.User{Email: "a@b.com", Name: "A", PasswordHash: "hash"}
	require.NoError(t, repo.User.CreateUser(ctx, user))
	assert.NotEmpty(t, user.UserID)
	assert.Equal(t, models.DefaultUserStatus, user.Status)

	t.Run("Дубликат email", func(t *testing.T) {
		err := repo.User.CreateUser(ctx, &models.User{Email: "A@B.com", Name: "B"})
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})

	t.Run("Поиск по email", func(t *testing.T) {
		found, err := repo.User.GetUserByEmail(ctx, "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, user.UserID, found.UserID)
	})

	t.Run("Ссылки на посты", func(t *testing.T) {
		require.NoError(t, repo.User.AddPost(ctx, user.UserID, "p1"))
		require.NoError(t, repo.User.AddPost(ctx, user.UserID, "p2"))
		require.NoError(t, repo.User.RemovePost(ctx, user.UserID, "p1"))

		found, err := repo.User.GetUserByID(ctx, user.UserID)
		require.NoError(t, err)
		assert.Equal(t, []string{"p2"}, found.PostIDs)
	})

	t.Run("Возвращается копия", func(t *testing.T) {
		found, err := repo.User.GetUserByID(ctx, user.UserID)
		require.NoError(t, err)
		found.Status = "changed"

		again, err := repo.User.GetUserByID(ctx, user.UserID)
		require.NoError(t, err)
		assert.NotEqual(t, "changed", again.Status)
	})

	t.Run("Неизвестный пользователь", func(t *testing.T) {
		_, err := repo.User.GetUserByID(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, repo.User.UpdateStatus(ctx, "nope", "x"), repository.ErrNotFound)
	})
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		post := &models.Post{Title: title, Content: "content", CreatorID: "u1"}
		require.NoError(t, repo.Post.Create(ctx, post))
		ids = append(ids, post.PostID)
		time.Sleep(time.Millisecond)
	}

	t.Run("Пагинация от новых к старым", func(t *testing.T) {
		page, err := repo.Post.List(ctx, 2, 0)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "third", page[0].Title)
		assert.Equal(t, "second", page[1].Title)

		page, err = repo.Post.List(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "first", page[0].Title)

		page, err = repo.Post.List(ctx, 2, 10)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("Выборка по списку id сохраняет порядок", func(t *testing.T) {
		posts, err := repo.Post.GetByIDs(ctx, []string{ids[2], "missing", ids[0]})
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "third", posts[0].Title)
		assert.Equal(t, "first", posts[1].Title)
	})

	t.Run("Обновление и удаление", func(t *testing.T) {
		post, err := repo.Post.GetByID(ctx, ids[0])
		require.NoError(t, err)

		post.Title = "updated"
		require.NoError(t, repo.Post.Update(ctx, post))

		stored, err := repo.Post.GetByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, "updated", stored.Title)

		require.NoError(t, repo.Post.Delete(ctx, ids[0]))
		assert.ErrorIs(t, repo.Post.Delete(ctx, ids[0]), repository.ErrNotFound)

		count, err := repo.Post.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
