// Package mongodb stores users and posts as MongoDB documents. The owner's
// post references live in the user document's "posts" array.
package mongodb

import (
	"context"
	"fmt"

	"graphblog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	postsCollection = "posts"
)

func NewRepository(db *mongo.Database) *repository.Repository {
	return &repository.Repository{
		User:   NewUserRepository(db),
		Post:   NewPostRepository(db),
		Health: &healthRepository{client: db.Client()},
	}
}

// EnsureIndexes creates the unique email index and the listing index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индекса users.email: %w", err)
	}

	_, err = db.Collection(postsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индекса posts.createdAt: %w", err)
	}

	return nil
}

type healthRepository struct {
	client *mongo.Client
}

func (r *healthRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDB недоступна: %w", err)
	}
	return nil
}

func parseID(id, what string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s с ID %s: %w", what, id, repository.ErrNotFound)
	}
	return oid, nil
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
