package repository

import (
	"context"

	"streamflix/internal/db"
	"streamflix/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RecommendationRepository struct {
	col *mongo.Collection
}

func NewRecommendationRepository() *RecommendationRepository {
	return &RecommendationRepository{col: db.DB().Collection("recommendations")}
}

func (r *RecommendationRepository) Insert(ctx context.Context, rec *models.Recommendation) error {
	if rec.ID == "" {
		rec.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, rec)
	return err
}

// Latest devuelve las últimas corridas guardadas para un perfil.
func (r *RecommendationRepository) Latest(ctx context.Context, profileID primitive.ObjectID, limit int) ([]models.Recommendation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"profileId": profileID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Recommendation
	for cur.Next(ctx) {
		var rec models.Recommendation
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, cur.Err()
}
