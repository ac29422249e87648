package repository

import (
	"context"

	"streamflix/internal/db"
	"streamflix/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VideoRepository struct {
	col *mongo.Collection
}

func NewVideoRepository() *VideoRepository {
	return &VideoRepository{col: db.DB().Collection("videos")}
}

func (r *VideoRepository) GetByID(ctx context.Context, videoID int) (*models.VideoDoc, error) {
	var v models.VideoDoc
	err := r.col.FindOne(ctx, bson.M{"videoId": videoID}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &v, err
}

func (r *VideoRepository) GetByIDs(ctx context.Context, videoIDs []int) ([]models.VideoDoc, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"videoId": bson.M{"$in": videoIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeVideos(ctx, cur)
}

func (r *VideoRepository) FindByTitleYear(ctx context.Context, title string, year *int) (*models.VideoDoc, error) {
	filter := bson.M{"title": title}
	if year != nil {
		filter["year"] = *year
	}
	var v models.VideoDoc
	err := r.col.FindOne(ctx, filter).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &v, err
}

func (r *VideoRepository) GetNextVideoID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "videoId", Value: -1}})
	var v models.VideoDoc
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return v.VideoID + 1, nil
}

func (r *VideoRepository) Insert(ctx context.Context, v *models.VideoDoc) error {
	_, err := r.col.InsertOne(ctx, v)
	return err
}

func (r *VideoRepository) Update(ctx context.Context, v *models.VideoDoc) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"videoId": v.VideoID}, v)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SearchParams agrupa los filtros de búsqueda del catálogo.
type SearchParams struct {
	Query       string
	Genre       string
	YearFrom    int
	YearTo      int
	MaxMaturity []string // clasificaciones permitidas, vacío = todas
	OnlyReady   bool
	Limit       int
	Offset      int
}

func (r *VideoRepository) Search(ctx context.Context, p SearchParams) ([]models.VideoDoc, error) {
	filter := bson.M{}

	if p.Query != "" {
		filter["title"] = bson.M{"$regex": p.Query, "$options": "i"}
	}
	if p.Genre != "" {
		// genres es un array, esto busca que contenga ese género
		filter["genres"] = p.Genre
	}
	if p.YearFrom > 0 || p.YearTo > 0 {
		yearCond := bson.M{}
		if p.YearFrom > 0 {
			yearCond["$gte"] = p.YearFrom
		}
		if p.YearTo > 0 {
			yearCond["$lte"] = p.YearTo
		}
		filter["year"] = yearCond
	}
	if len(p.MaxMaturity) > 0 {
		filter["maturityRating"] = bson.M{"$in": p.MaxMaturity}
	}
	if p.OnlyReady {
		filter["asset.status"] = models.AssetStatusReady
	}

	opts := options.Find().
		SetLimit(int64(p.Limit)).
		SetSkip(int64(p.Offset))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeVideos(ctx, cur)
}

// Top por popularidad (vistas) o por likes.
func (r *VideoRepository) Top(ctx context.Context, metric string, maxMaturity []string, limit int) ([]models.VideoDoc, error) {
	sortField := "viewStats.count" // popular
	if metric == "liked" {
		sortField = "ratingStats.likes"
	}

	filter := bson.M{}
	if len(maxMaturity) > 0 {
		filter["maturityRating"] = bson.M{"$in": maxMaturity}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeVideos(ctx, cur)
}

// CountByAssetStatus cuenta videos por estado de asset (para el admin).
func (r *VideoRepository) CountByAssetStatus(ctx context.Context, status string) (int64, error) {
	if status == models.AssetStatusNone {
		// incluye documentos viejos sin bloque asset
		return r.col.CountDocuments(ctx, bson.M{"$or": bson.A{
			bson.M{"asset": bson.M{"$exists": false}},
			bson.M{"asset.status": models.AssetStatusNone},
		}})
	}
	return r.col.CountDocuments(ctx, bson.M{"asset.status": status})
}

func (r *VideoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// ListByAssetStatus lista videos en los estados pedidos, más viejos primero.
func (r *VideoRepository) ListByAssetStatus(ctx context.Context, statuses []string, limit int) ([]models.VideoDoc, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "asset.updatedAt", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"asset.status": bson.M{"$in": statuses}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeVideos(ctx, cur)
}

// UpdateAsset reemplaza el bloque asset del video.
func (r *VideoRepository) UpdateAsset(ctx context.Context, videoID int, asset *models.AssetInfo) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"videoId": videoID},
		bson.M{"$set": bson.M{"asset": asset}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncView incrementa el contador de vistas y actualiza lastViewedAt.
func (r *VideoRepository) IncView(ctx context.Context, videoID int, nowRFC3339 string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"videoId": videoID},
		bson.M{
			"$inc": bson.M{"viewStats.count": 1},
			"$set": bson.M{"viewStats.lastViewedAt": nowRFC3339},
		},
	)
	return err
}

// IncRatingCounters ajusta los contadores de pulgares con deltas (+1/-1/0).
func (r *VideoRepository) IncRatingCounters(ctx context.Context, videoID, likesDelta, dislikesDelta int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"videoId": videoID},
		bson.M{"$inc": bson.M{
			"ratingStats.likes":    likesDelta,
			"ratingStats.dislikes": dislikesDelta,
		}},
	)
	return err
}

func decodeVideos(ctx context.Context, cur *mongo.Cursor) ([]models.VideoDoc, error) {
	var out []models.VideoDoc
	for cur.Next(ctx) {
		var v models.VideoDoc
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}
