package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"graphblog/internal/models"
	"graphblog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Email     string               `bson:"email"`
	Name      string               `bson:"name"`
	Password  string               `bson:"password"`
	Status    string               `bson:"status"`
	Posts     []primitive.ObjectID `bson:"posts"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func (d *userDocument) toModel() *models.User {
	return &models.User{
		UserID:       d.ID.Hex(),
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.Password,
		Status:       d.Status,
		PostIDs:      hexIDs(d.Posts),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type userRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{users: db.Collection(usersCollection)}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.Status == "" {
		user.Status = models.DefaultUserStatus
	}

	now := time.Now().UTC()
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Email:     user.Email,
		Name:      user.Name,
		Password:  user.PasswordHash,
		Status:    user.Status,
		Posts:     []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("пользователь с email %s: %w", user.Email, repository.ErrDuplicateEmail)
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	user.UserID = doc.ID.Hex()
	user.PostIDs = []string{}
	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	oid, err := parseID(userID, "пользователь")
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": oid}, fmt.Sprintf("пользователь с ID %s", userID))
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, fmt.Sprintf("пользователь с email %s", email))
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M, what string) (*models.User, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", what, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return doc.toModel(), nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, userID, status string) error {
	return r.update(ctx, userID, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
	})
}

func (r *userRepository) AddPost(ctx context.Context, userID, postID string) error {
	pid, err := parseID(postID, "пост")
	if err != nil {
		return err
	}

	return r.update(ctx, userID, bson.M{
		"$push": bson.M{"posts": pid},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *userRepository) RemovePost(ctx context.Context, userID, postID string) error {
	pid, err := parseID(postID, "пост")
	if err != nil {
		return err
	}

	return r.update(ctx, userID, bson.M{
		"$pull": bson.M{"posts": pid},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *userRepository) update(ctx context.Context, userID string, update bson.M) error {
	oid, err := parseID(userID, "пользователь")
	if err != nil {
		return err
	}

	res, err := r.users.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("пользователь с ID %s: %w", userID, repository.ErrNotFound)
	}

	return nil
}
