package graph

import (
	"context"

	"graphblog/internal/logger"
	"graphblog/internal/middleware"
	"graphblog/internal/models"
	"graphblog/internal/service"

	"github.com/graph-gophers/graphql-go"
)

// Resolver serves both the RootQuery and the RootMutation types.
type Resolver struct {
	svc *service.Service
	log *logger.Logger
}

func NewResolver(svc *service.Service, log *logger.Logger) *Resolver {
	return &Resolver{svc: svc, log: log}
}

func requireAuth(ctx context.Context) (middleware.Identity, error) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		return middleware.Identity{}, service.NewUnauthenticatedError("")
	}
	return identity, nil
}

type userInputArgs struct {
	Email    string
	Name     string
	Password string
}

type postInputArgs struct {
	Title    string
	Content  string
	ImageURL string
}

func (in *postInputArgs) toModel() models.PostInput {
	if in == nil {
		return models.PostInput{}
	}
	return models.PostInput{Title: in.Title, Content: in.Content, ImageURL: in.ImageURL}
}

func (r *Resolver) CreateUser(ctx context.Context, args struct{ UserInput *userInputArgs }) (*userResolver, error) {
	var input models.UserInput
	if args.UserInput != nil {
		input = models.UserInput{
			Email:    args.UserInput.Email,
			Name:     args.UserInput.Name,
			Password: args.UserInput.Password,
		}
	}

	user, err := r.svc.Auth.CreateUser(ctx, input)
	if err != nil {
		return nil, err
	}

	return &userResolver{r: r, user: user}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct {
	Email    string
	Password string
}) (*authDataResolver, error) {
	auth, err := r.svc.Auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, err
	}

	return &authDataResolver{auth: auth}, nil
}

func (r *Resolver) CreatePost(ctx context.Context, args struct{ PostInput *postInputArgs }) (*postResolver, error) {
	identity, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	post, err := r.svc.Post.CreatePost(ctx, identity.UserID, args.PostInput.toModel())
	if err != nil {
		return nil, err
	}

	return &postResolver{r: r, post: post}, nil
}

func (r *Resolver) Posts(ctx context.Context, args struct{ Page *int32 }) (*postDataResolver, error) {
	if _, err := requireAuth(ctx); err != nil {
		return nil, err
	}

	page := 1
	if args.Page != nil {
		page = int(*args.Page)
	}

	result, err := r.svc.Post.GetPosts(ctx, page)
	if err != nil {
		return nil, err
	}

	return &postDataResolver{r: r, page: result}, nil
}

func (r *Resolver) Post(ctx context.Context, args struct{ ID graphql.ID }) (*postResolver, error) {
	if _, err := requireAuth(ctx); err != nil {
		return nil, err
	}

	post, err := r.svc.Post.GetPost(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}

	return &postResolver{r: r, post: post}, nil
}

func (r *Resolver) UpdatePost(ctx context.Context, args struct {
	ID        graphql.ID
	PostInput *postInputArgs
}) (*postResolver, error) {
	identity, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	post, err := r.svc.Post.UpdatePost(ctx, identity.UserID, string(args.ID), args.PostInput.toModel())
	if err != nil {
		return nil, err
	}

	return &postResolver{r: r, post: post}, nil
}

func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID graphql.ID }) (*bool, error) {
	identity, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.svc.Post.DeletePost(ctx, identity.UserID, string(args.ID)); err != nil {
		return nil, err
	}

	deleted := true
	return &deleted, nil
}

func (r *Resolver) User(ctx context.Context) (*userResolver, error) {
	identity, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	user, err := r.svc.User.GetUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	return &userResolver{r: r, user: user}, nil
}

func (r *Resolver) UpdateStatus(ctx context.Context, args struct{ Status string }) (*userResolver, error) {
	identity, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	user, err := r.svc.User.UpdateStatus(ctx, identity.UserID, args.Status)
	if err != nil {
		return nil, err
	}

	return &userResolver{r: r, user: user}, nil
}
