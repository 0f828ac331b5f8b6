package graph

import (
	"context"
	"time"

	"graphblog/internal/models"

	"github.com/graph-gophers/graphql-go"
)

// ISO 8601 with milliseconds, always UTC
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

type postResolver struct {
	r    *Resolver
	post *models.Post
}

func (p *postResolver) ID() graphql.ID {
	return graphql.ID(p.post.PostID)
}

func (p *postResolver) Title() string {
	return p.post.Title
}

func (p *postResolver) Content() string {
	return p.post.Content
}

func (p *postResolver) ImageURL() string {
	return p.post.ImageURL
}

func (p *postResolver) Creator(ctx context.Context) (*userResolver, error) {
	user, err := p.r.svc.User.GetUser(ctx, p.post.CreatorID)
	if err != nil {
		return nil, err
	}
	return &userResolver{r: p.r, user: user}, nil
}

func (p *postResolver) CreatedAt() string {
	return formatTime(p.post.CreatedAt)
}

func (p *postResolver) UpdatedAt() string {
	return formatTime(p.post.UpdatedAt)
}

type userResolver struct {
	r    *Resolver
	user *models.User
}

func (u *userResolver) ID() graphql.ID {
	return graphql.ID(u.user.UserID)
}

func (u *userResolver) Name() string {
	return u.user.Name
}

func (u *userResolver) Email() string {
	return u.user.Email
}

func (u *userResolver) Status() string {
	return u.user.Status
}

// Posts resolves the owned posts in the owner's reference order.
func (u *userResolver) Posts(ctx context.Context) ([]*postResolver, error) {
	posts, err := u.r.svc.Post.GetPostsByIDs(ctx, u.user.PostIDs)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*postResolver, 0, len(posts))
	for _, post := range posts {
		resolvers = append(resolvers, &postResolver{r: u.r, post: post})
	}
	return resolvers, nil
}

type authDataResolver struct {
	auth *models.AuthData
}

func (a *authDataResolver) Token() string {
	return a.auth.Token
}

func (a *authDataResolver) UserID() string {
	return a.auth.UserID
}

type postDataResolver struct {
	r    *Resolver
	page *models.PostPage
}

func (p *postDataResolver) Posts() []*postResolver {
	resolvers := make([]*postResolver, 0, len(p.page.Posts))
	for _, post := range p.page.Posts {
		resolvers = append(resolvers, &postResolver{r: p.r, post: post})
	}
	return resolvers
}

func (p *postDataResolver) TotalPosts() int32 {
	return int32(p.page.TotalPosts)
}
