package repository

import (
	"context"

	"streamflix/internal/db"
	"streamflix/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{col: db.DB().Collection("categories")}
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.CategoryDoc, error) {
	var c models.CategoryDoc
	err := r.col.FindOne(ctx, bson.M{"_id": slug}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &c, err
}

// ListOrdered devuelve todas las categorías ordenadas por posición.
func (r *CategoryRepository) ListOrdered(ctx context.Context) ([]models.CategoryDoc, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CategoryDoc
	for cur.Next(ctx) {
		var c models.CategoryDoc
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

// Upsert inserta o reemplaza la categoría por slug.
func (r *CategoryRepository) Upsert(ctx context.Context, c *models.CategoryDoc) error {
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": c.Slug},
		c,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, slug string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": slug})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
