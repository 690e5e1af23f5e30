package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"photovault/internal/apperr"
	"photovault/internal/models"
)

type mongoPhotoRepo struct {
	col *mongo.Collection
}

// NewMongoPhotoRepo wires the photos collection and provisions its
// (user_id, archived) index used by every gallery read.
func NewMongoPhotoRepo(ctx context.Context, db *mongo.Database) (PhotoRepository, error) {
	col := db.Collection("photos")
	if err := ensureIndexes(ctx, col, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "archived", Value: 1}},
	}); err != nil {
		return nil, fmt.Errorf("provision photos collection: %w", err)
	}
	return &mongoPhotoRepo{col: col}, nil
}

func (r *mongoPhotoRepo) Insert(ctx context.Context, p *models.Photo) error {
	if p.UploadedAt.IsZero() {
		p.UploadedAt = time.Now().UTC()
	}
	normalize(p)
	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *mongoPhotoRepo) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	var p models.Photo
	err := r.col.FindOne(ctx, bson.M{"_id": id, "archived": false}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	normalize(&p)
	return &p, nil
}

func (r *mongoPhotoRepo) ListByUser(ctx context.Context, userID string) ([]models.Photo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID, "archived": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	photos := []models.Photo{}
	for cur.Next(ctx) {
		var p models.Photo
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		normalize(&p)
		photos = append(photos, p)
	}
	return photos, cur.Err()
}

func (r *mongoPhotoRepo) Update(ctx context.Context, id string, upd PhotoUpdate) error {
	set := bson.M{}
	if upd.FileName != nil {
		set["file_name"] = *upd.FileName
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if len(set) == 0 {
		return nil
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "archived": false}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *mongoPhotoRepo) ReplaceImage(ctx context.Context, id string, blobKey, contentType, thumbnail string, size int64, width, height int) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "archived": false}, bson.M{"$set": bson.M{
		"blob_key":     blobKey,
		"content_type": contentType,
		"thumbnail":    thumbnail,
		"size":         size,
		"width":        width,
		"height":       height,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *mongoPhotoRepo) Archive(ctx context.Context, id string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "archived": false}, bson.M{"$set": bson.M{
		"archived":    true,
		"archived_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// normalize substitutes defaults for missing or malformed stored fields so
// old records always decode into a usable shape.
func normalize(p *models.Photo) {
	if p.Category == "" {
		p.Category = models.CategoryOther
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.FileName == "" {
		p.FileName = p.OriginalName
	}
}
