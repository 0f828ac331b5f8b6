// Package memory keeps users and posts in process memory. It backs the
// "memory" database driver and the end-to-end tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"graphblog/internal/models"
	"graphblog/internal/repository"

	"github.com/google/uuid"
)

type store struct {
	mu    sync.RWMutex
	users map[string]*models.User
	posts map[string]*models.Post
}

func NewRepository() *repository.Repository {
	s := &store{
		users: make(map[string]*models.User),
		posts: make(map[string]*models.Post),
	}

	return &repository.Repository{
		User:   &userRepository{s: s},
		Post:   &postRepository{s: s},
		Health: &healthRepository{},
	}
}

type healthRepository struct{}

func (h *healthRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.PostIDs = append([]string{}, u.PostIDs...)
	return &c
}

func copyPost(p *models.Post) *models.Post {
	c := *p
	return &c
}

type userRepository struct {
	s *store
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("пользователь с email %s: %w", user.Email, repository.ErrDuplicateEmail)
		}
	}

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

	r.s.users[user.UserID] = copyUser(user)
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[userID]
	if !ok {
		return nil, fmt.Errorf("пользователь с ID %s: %w", userID, repository.ErrNotFound)
	}
	return copyUser(user), nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if strings.EqualFold(user.Email, email) {
			return copyUser(user), nil
		}
	}
	return nil, fmt.Errorf("пользователь с email %s: %w", email, repository.ErrNotFound)
}

// update applies fn to the stored user under the write lock.
func (r *userRepository) update(userID string, fn func(u *models.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[userID]
	if !ok {
		return fmt.Errorf("пользователь с ID %s: %w", userID, repository.ErrNotFound)
	}

	fn(user)
	user.UpdatedAt = time.Now()
	return nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, userID, status string) error {
	return r.update(userID, func(u *models.User) {
		u.Status = status
	})
}

func (r *userRepository) AddPost(ctx context.Context, userID, postID string) error {
	return r.update(userID, func(u *models.User) {
		u.PostIDs = append(u.PostIDs, postID)
	})
}

func (r *userRepository) RemovePost(ctx context.Context, userID, postID string) error {
	return r.update(userID, func(u *models.User) {
		kept := u.PostIDs[:0]
		for _, id := range u.PostIDs {
			if id != postID {
				kept = append(kept, id)
			}
		}
		u.PostIDs = kept
	})
}

type postRepository struct {
	s *store
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	r.s.posts[post.PostID] = copyPost(post)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	post, ok := r.s.posts[postID]
	if !ok {
		return nil, fmt.Errorf("пост с ID %s: %w", postID, repository.ErrNotFound)
	}
	return copyPost(post), nil
}

func (r *postRepository) GetByIDs(ctx context.Context, postIDs []string) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	posts := make([]*models.Post, 0, len(postIDs))
	for _, id := range postIDs {
		if post, ok := r.s.posts[id]; ok {
			posts = append(posts, copyPost(post))
		}
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*models.Post, 0, len(r.s.posts))
	for _, post := range r.s.posts {
		all = append(all, copyPost(post))
	}

	// newest first, id as a tie-breaker for equal timestamps
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].PostID > all[j].PostID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*models.Post{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *postRepository) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.posts), nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[post.PostID]
	if !ok {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, repository.ErrNotFound)
	}

	post.UpdatedAt = time.Now()
	stored.Title = post.Title
	stored.Content = post.Content
	stored.ImageURL = post.ImageURL
	stored.UpdatedAt = post.UpdatedAt
	return nil
}

func (r *postRepository) Delete(ctx context.Context, postID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[postID]; !ok {
		return fmt.Errorf("пост с ID %s: %w", postID, repository.ErrNotFound)
	}
	delete(r.s.posts, postID)
	return nil
}
