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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	ImageURL  string             `bson:"imageUrl"`
	Creator   primitive.ObjectID `bson:"creator"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *postDocument) toModel() *models.Post {
	return &models.Post{
		PostID:    d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		ImageURL:  d.ImageURL,
		CreatorID: d.Creator.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type postRepository struct {
	posts *mongo.Collection
}

func NewPostRepository(db *mongo.Database) repository.PostRepository {
	return &postRepository{posts: db.Collection(postsCollection)}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	creator, err := parseID(post.CreatorID, "пользователь")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := postDocument{
		ID:        primitive.NewObjectID(),
		Title:     post.Title,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		Creator:   creator,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.posts.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	post.PostID = doc.ID.Hex()
	post.CreatedAt = now
	post.UpdatedAt = now

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	oid, err := parseID(postID, "пост")
	if err != nil {
		return nil, err
	}

	var doc postDocument
	if err := r.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return doc.toModel(), nil
}

func (r *postRepository) GetByIDs(ctx context.Context, postIDs []string) ([]*models.Post, error) {
	oids := make([]primitive.ObjectID, 0, len(postIDs))
	for _, id := range postIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*models.Post{}, nil
	}

	found, err := r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find())
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Post, len(found))
	for _, post := range found {
		byID[post.PostID] = post
	}

	ordered := make([]*models.Post, 0, len(found))
	for _, id := range postIDs {
		if post, ok := byID[id]; ok {
			ordered = append(ordered, post)
		}
	}

	return ordered, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	return r.find(ctx, bson.M{}, opts)
}

func (r *postRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Post, error) {
	cursor, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка постов: %w", err)
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ошибка при чтении списка постов: %w", err)
	}

	posts := make([]*models.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toModel())
	}

	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (int, error) {
	count, err := r.posts.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}
	return int(count), nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	oid, err := parseID(post.PostID, "пост")
	if err != nil {
		return err
	}

	post.UpdatedAt = time.Now().UTC()

	res, err := r.posts.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":     post.Title,
		"content":   post.Content,
		"imageUrl":  post.ImageURL,
		"updatedAt": post.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, repository.ErrNotFound)
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, postID string) error {
	oid, err := parseID(postID, "пост")
	if err != nil {
		return err
	}

	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, repository.ErrNotFound)
	}

	return nil
}
