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

type TitleRequestRepository struct {
	col *mongo.Collection
}

func NewTitleRequestRepository() *TitleRequestRepository {
	return &TitleRequestRepository{col: db.DB().Collection("title_requests")}
}

func (r *TitleRequestRepository) Insert(ctx context.Context, req *models.TitleRequest) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, req)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *TitleRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.TitleRequest, error) {
	var tr models.TitleRequest
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&tr)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &tr, err
}

func (r *TitleRequestRepository) ListByUser(ctx context.Context, userID, limit, offset int) ([]models.TitleRequest, error) {
	return r.find(ctx, bson.M{"userId": userID}, limit, offset)
}

// ListAll lista pedidos, opcionalmente filtrados por status.
func (r *TitleRequestRepository) ListAll(ctx context.Context, status string, limit, offset int) ([]models.TitleRequest, error) {
	filter := bson.M{}
	if status != "" && status != "all" {
		filter["status"] = status
	}
	return r.find(ctx, filter, limit, offset)
}

// UpdateStatus cambia el estado y campos asociados del pedido.
func (r *TitleRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *TitleRequestRepository) find(ctx context.Context, filter bson.M, limit, offset int) ([]models.TitleRequest, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TitleRequest
	for cur.Next(ctx) {
		var tr models.TitleRequest
		if err := cur.Decode(&tr); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, cur.Err()
}
