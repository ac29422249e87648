package service

import (
	"context"
	"fmt"
	"time"

	"streamflix/internal/models"
	"streamflix/internal/signer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrVideoNotReady   = fmt.Errorf("video is not ready for playback")
	ErrMaturityBlocked = fmt.Errorf("video not allowed for this profile")
)

type PlaybackService struct {
	videos VideoStore
	watch  WatchStore
	signer *signer.Signer

	assetBase string
	urlTTL    time.Duration
}

func NewPlaybackService(videos VideoStore, watch WatchStore, sg *signer.Signer, assetBase string, urlTTLSeconds int) *PlaybackService {
	return &PlaybackService{
		videos:    videos,
		watch:     watch,
		signer:    sg,
		assetBase: assetBase,
		urlTTL:    time.Duration(urlTTLSeconds) * time.Second,
	}
}

// Play valida que el video sea reproducible para el perfil y devuelve el
// ticket con las URLs prefirmadas de cada rendition.
func (s *PlaybackService) Play(ctx context.Context, profile *models.ProfileDoc, videoID int) (*models.PlaybackTicket, error) {
	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}

	if models.MaturityRank(v.MaturityRating) > models.MaturityRank(profile.MaturityLimit) {
		return nil, ErrMaturityBlocked
	}
	if v.Asset == nil || v.Asset.Status != models.AssetStatusReady || len(v.Asset.Renditions) == 0 {
		return nil, ErrVideoNotReady
	}

	sessionID := uuid.NewString()

	ticket := &models.PlaybackTicket{
		SessionID:       sessionID,
		VideoID:         v.VideoID,
		ThumbnailURL:    v.ThumbnailURL,
		DurationSeconds: v.DurationSeconds,
	}

	for _, r := range v.Asset.Renditions {
		path := fmt.Sprintf("/stream/%d/%s", v.VideoID, r.File)
		u, exp := s.signer.SignedURL(s.assetBase, path, sessionID, s.urlTTL)
		ticket.ExpiresAt = exp
		ticket.Renditions = append(ticket.Renditions, models.RenditionURL{
			Name:   r.Name,
			Width:  r.Width,
			Height: r.Height,
			URL:    u,
		})
	}

	// posición para resume, si ya lo estaba viendo
	entry, err := s.watch.GetOne(ctx, profile.ID, videoID)
	if err == nil && entry != nil && !entry.Completed {
		ticket.ResumeFrom = entry.PositionSeconds
	}

	// contar la vista; no rompemos el play si falla
	now := time.Now().UTC().Format(time.RFC3339)
	_ = s.videos.IncView(ctx, videoID, now)

	return ticket, nil
}

// SessionHeartbeat procesa un latido del player (vía WS) y persiste la
// posición reportada.
func (s *PlaybackService) SessionHeartbeat(ctx context.Context, profileID primitive.ObjectID, videoID, positionSeconds int) error {
	if positionSeconds < 0 {
		return fmt.Errorf("positionSeconds cannot be negative")
	}
	return s.watch.UpsertProgress(ctx, profileID, videoID, positionSeconds, false)
}
