package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"photovault/internal/apperr"
	"photovault/internal/models"
)

type mongoUserRepo struct {
	col *mongo.Collection
}

// NewMongoUserRepo wires the users collection and provisions its unique
// indexes on username and email.
func NewMongoUserRepo(ctx context.Context, db *mongo.Database) (UserRepository, error) {
	col := db.Collection("users")
	if err := ensureIndexes(ctx, col,
		uniqueIndex("username"),
		uniqueIndex("email"),
	); err != nil {
		return nil, fmt.Errorf("provision users collection: %w", err)
	}
	return &mongoUserRepo{col: col}, nil
}

func (r *mongoUserRepo) Create(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Active = true
	_, err := r.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.ErrConflict
	}
	return err
}

func (r *mongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id, "active": true})
}

func (r *mongoUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username, "active": true})
}

func (r *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"last_login_at": time.Now().UTC()},
	})
	return err
}
