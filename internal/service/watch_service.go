package service

import (
	"context"
	"fmt"
	"time"

	"streamflix/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WatchStore es lo que los servicios necesitan del historial de visualización.
type WatchStore interface {
	GetOne(ctx context.Context, profileID primitive.ObjectID, videoID int) (*models.WatchEntryDoc, error)
	UpsertProgress(ctx context.Context, profileID primitive.ObjectID, videoID, positionSeconds int, completed bool) error
	SetInList(ctx context.Context, profileID primitive.ObjectID, videoID int, inList bool) error
	ContinueWatching(ctx context.Context, profileID primitive.ObjectID, limit int) ([]models.WatchEntryDoc, error)
	ListInList(ctx context.Context, profileID primitive.ObjectID, limit int) ([]models.WatchEntryDoc, error)
	GetAllByProfile(ctx context.Context, profileID primitive.ObjectID) ([]models.WatchEntryDoc, error)
}

type WatchService struct {
	watch  WatchStore
	videos VideoStore
}

func NewWatchService(watch WatchStore, videos VideoStore) *WatchService {
	return &WatchService{watch: watch, videos: videos}
}

// SaveProgress upsertea el progreso de un perfil sobre un video.
// Si la posición pasa el 95%% de la duración lo marcamos completado.
func (s *WatchService) SaveProgress(ctx context.Context, profileID primitive.ObjectID, videoID, positionSeconds int, completed bool) error {
	if positionSeconds < 0 {
		return fmt.Errorf("positionSeconds cannot be negative")
	}

	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("video %d not found", videoID)
	}

	if !completed && v.DurationSeconds > 0 {
		if float64(positionSeconds) >= 0.95*float64(v.DurationSeconds) {
			completed = true
		}
	}

	return s.watch.UpsertProgress(ctx, profileID, videoID, positionSeconds, completed)
}

// ContinueWatching devuelve las entradas con su video resuelto.
func (s *WatchService) ContinueWatching(ctx context.Context, profileID primitive.ObjectID, limit int) ([]models.ContinueWatchingItem, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.watch.ContinueWatching(ctx, profileID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.ContinueWatchingItem, 0, len(entries))
	for _, e := range entries {
		v, err := s.videos.GetByID(ctx, e.VideoID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		out = append(out, models.ContinueWatchingItem{
			Video:           *v,
			PositionSeconds: e.PositionSeconds,
			UpdatedAt:       e.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// ================== MI LISTA ==================

func (s *WatchService) AddToList(ctx context.Context, profileID primitive.ObjectID, videoID int) error {
	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("video %d not found", videoID)
	}
	return s.watch.SetInList(ctx, profileID, videoID, true)
}

func (s *WatchService) RemoveFromList(ctx context.Context, profileID primitive.ObjectID, videoID int) error {
	return s.watch.SetInList(ctx, profileID, videoID, false)
}

func (s *WatchService) MyList(ctx context.Context, profileID primitive.ObjectID, limit int) ([]models.VideoDoc, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := s.watch.ListInList(ctx, profileID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.VideoDoc, 0, len(entries))
	for _, e := range entries {
		v, err := s.videos.GetByID(ctx, e.VideoID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}
