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

type WatchRepository struct {
	col *mongo.Collection
}

func NewWatchRepository() *WatchRepository {
	return &WatchRepository{col: db.DB().Collection("watch_entries")}
}

func (r *WatchRepository) GetOne(ctx context.Context, profileID primitive.ObjectID, videoID int) (*models.WatchEntryDoc, error) {
	var w models.WatchEntryDoc
	err := r.col.FindOne(ctx, bson.M{"profileId": profileID, "videoId": videoID}).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &w, err
}

// UpsertProgress guarda posición/completado sin pisar el flag de Mi Lista.
func (r *WatchRepository) UpsertProgress(ctx context.Context, profileID primitive.ObjectID, videoID, positionSeconds int, completed bool) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"profileId": profileID, "videoId": videoID},
		bson.M{
			"$set": bson.M{
				"positionSeconds": positionSeconds,
				"completed":       completed,
				"updatedAt":       time.Now().UTC(),
			},
			"$setOnInsert": bson.M{"inList": false},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// SetInList marca o desmarca Mi Lista sin tocar el progreso.
func (r *WatchRepository) SetInList(ctx context.Context, profileID primitive.ObjectID, videoID int, inList bool) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"profileId": profileID, "videoId": videoID},
		bson.M{
			"$set": bson.M{
				"inList":    inList,
				"updatedAt": time.Now().UTC(),
			},
			"$setOnInsert": bson.M{
				"positionSeconds": 0,
				"completed":       false,
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// ContinueWatching: con progreso, sin terminar, más recientes primero.
func (r *WatchRepository) ContinueWatching(ctx context.Context, profileID primitive.ObjectID, limit int) ([]models.WatchEntryDoc, error) {
	filter := bson.M{
		"profileId":       profileID,
		"completed":       false,
		"positionSeconds": bson.M{"$gt": 0},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetLimit(int64(limit))

	return r.find(ctx, filter, opts)
}

// ListInList devuelve las entradas marcadas en Mi Lista.
func (r *WatchRepository) ListInList(ctx context.Context, profileID primitive.ObjectID, limit int) ([]models.WatchEntryDoc, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetLimit(int64(limit))

	return r.find(ctx, bson.M{"profileId": profileID, "inList": true}, opts)
}

// GetAllByProfile trae todo el historial (para recomendaciones).
func (r *WatchRepository) GetAllByProfile(ctx context.Context, profileID primitive.ObjectID) ([]models.WatchEntryDoc, error) {
	return r.find(ctx, bson.M{"profileId": profileID}, options.Find().SetLimit(10000))
}

func (r *WatchRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.WatchEntryDoc, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.WatchEntryDoc
	for cur.Next(ctx) {
		var w models.WatchEntryDoc
		if err := cur.Decode(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, cur.Err()
}
