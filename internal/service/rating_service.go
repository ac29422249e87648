package service

import (
	"context"
	"fmt"

	"streamflix/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingStore es lo que el servicio necesita de la colección de pulgares.
type RatingStore interface {
	GetOne(ctx context.Context, profileID primitive.ObjectID, videoID int) (*models.RatingDoc, error)
	UpsertRating(ctx context.Context, profileID primitive.ObjectID, videoID int, value string) error
	GetByProfile(ctx context.Context, profileID primitive.ObjectID, limit, offset int) ([]models.RatingDoc, error)
	GetAllByProfile(ctx context.Context, profileID primitive.ObjectID) ([]models.RatingDoc, error)
}

type RatingService struct {
	ratings RatingStore
	videos  VideoStore
}

func NewRatingService(r RatingStore, v VideoStore) *RatingService {
	return &RatingService{ratings: r, videos: v}
}

// ratingDeltas calcula el ajuste de contadores al pasar de prev a next.
// prev vacío significa que no había pulgar.
func ratingDeltas(prev, next string) (likes, dislikes int) {
	if prev == next {
		return 0, 0
	}
	switch prev {
	case models.RatingUp:
		likes--
	case models.RatingDown:
		dislikes--
	}
	switch next {
	case models.RatingUp:
		likes++
	case models.RatingDown:
		dislikes++
	}
	return likes, dislikes
}

// AddOrUpdate guarda el pulgar y ajusta los contadores del video de forma
// incremental, nunca recontando la colección.
func (s *RatingService) AddOrUpdate(ctx context.Context, profileID primitive.ObjectID, videoID int, value string) error {
	if value != models.RatingUp && value != models.RatingDown {
		return fmt.Errorf("invalid rating value (must be up|down)")
	}

	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("video %d not found", videoID)
	}

	prev, err := s.ratings.GetOne(ctx, profileID, videoID)
	if err != nil {
		return err
	}
	prevValue := ""
	if prev != nil {
		prevValue = prev.Value
	}

	if err := s.ratings.UpsertRating(ctx, profileID, videoID, value); err != nil {
		return err
	}

	likes, dislikes := ratingDeltas(prevValue, value)
	if likes == 0 && dislikes == 0 {
		return nil
	}
	return s.videos.IncRatingCounters(ctx, videoID, likes, dislikes)
}

func (s *RatingService) GetByProfile(ctx context.Context, profileID primitive.ObjectID, limit, offset int) ([]models.RatingDoc, error) {
	return s.ratings.GetByProfile(ctx, profileID, limit, offset)
}
