package repository

import (
	"context"

	"streamflix/internal/db"
	"streamflix/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{col: db.DB().Collection("profiles")}
}

func (r *ProfileRepository) Insert(ctx context.Context, p *models.ProfileDoc) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProfileDoc, error) {
	var p models.ProfileDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &p, err
}

func (r *ProfileRepository) ListByUser(ctx context.Context, userID int) ([]models.ProfileDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ProfileDoc
	for cur.Next(ctx) {
		var p models.ProfileDoc
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

func (r *ProfileRepository) CountByUser(ctx context.Context, userID int) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"userId": userID})
}

// UpdateByID aplica un $set parcial sobre el perfil.
func (r *ProfileRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ProfileRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
