package repository

import (
	"context"
	"time"

	"streamflix/internal/db"
	"streamflix/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{col: db.DB().Collection("ratings")}
}

func (r *RatingRepository) GetOne(ctx context.Context, profileID primitive.ObjectID, videoID int) (*models.RatingDoc, error) {
	var d models.RatingDoc
	err := r.col.FindOne(ctx, bson.M{"profileId": profileID, "videoId": videoID}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &d, err
}

// UpsertRating guarda el pulgar con timestamp epoch.
func (r *RatingRepository) UpsertRating(ctx context.Context, profileID primitive.ObjectID, videoID int, value string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"profileId": profileID, "videoId": videoID},
		bson.M{"$set": bson.M{
			"value":     value,
			"timestamp": time.Now().Unix(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *RatingRepository) GetByProfile(ctx context.Context, profileID primitive.ObjectID, limit, offset int) ([]models.RatingDoc, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"profileId": profileID},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(int64(limit)).
			SetSkip(int64(offset)),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.RatingDoc
	for cur.Next(ctx) {
		var d models.RatingDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, cur.Err()
}

func (r *RatingRepository) GetAllByProfile(ctx context.Context, profileID primitive.ObjectID) ([]models.RatingDoc, error) {
	return r.GetByProfile(ctx, profileID, 10000, 0)
}
