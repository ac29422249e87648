package service

import (
	"context"
	"log"
	"time"

	"streamflix/internal/models"
	"streamflix/internal/transcode"
)

// AssetVideoStore es la vista de la colección de videos que usa el admin
// de assets.
type AssetVideoStore interface {
	Count(ctx context.Context) (int64, error)
	CountByAssetStatus(ctx context.Context, status string) (int64, error)
	ListByAssetStatus(ctx context.Context, statuses []string, limit int) ([]models.VideoDoc, error)
	UpdateAsset(ctx context.Context, videoID int, asset *models.AssetInfo) error
}

// AdminAssetsService orquesta el mantenimiento de assets del catálogo.
type AdminAssetsService struct {
	videos   AssetVideoStore
	dispatch DispatchFunc
}

func NewAdminAssetsService(videos AssetVideoStore, dispatch DispatchFunc) *AdminAssetsService {
	return &AdminAssetsService{videos: videos, dispatch: dispatch}
}

// ---------------------- SUMMARY / PENDING ----------------------

// GetSummary cuenta videos por estado de asset.
func (s *AdminAssetsService) GetSummary(ctx context.Context) (*models.AdminAssetSummary, error) {
	total, err := s.videos.Count(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, st := range []string{
		models.AssetStatusNone,
		models.AssetStatusPending,
		models.AssetStatusProcessing,
		models.AssetStatusReady,
		models.AssetStatusFailed,
	} {
		n, err := s.videos.CountByAssetStatus(ctx, st)
		if err != nil {
			return nil, err
		}
		counts[st] = n
	}

	return &models.AdminAssetSummary{
		TotalVideos: total,
		NoSource:    counts[models.AssetStatusNone],
		Pending:     counts[models.AssetStatusPending],
		Processing:  counts[models.AssetStatusProcessing],
		Ready:       counts[models.AssetStatusReady],
		Failed:      counts[models.AssetStatusFailed],
	}, nil
}

// GetPending lista videos con fuente registrada pero sin renditions.
func (s *AdminAssetsService) GetPending(ctx context.Context, includeFailed bool, limit int) ([]models.PendingAssetVideo, error) {
	if limit <= 0 {
		limit = 50
	}

	statuses := []string{models.AssetStatusPending, models.AssetStatusProcessing}
	if includeFailed {
		statuses = append(statuses, models.AssetStatusFailed)
	}

	vids, err := s.videos.ListByAssetStatus(ctx, statuses, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.PendingAssetVideo, 0, len(vids))
	for _, v := range vids {
		p := models.PendingAssetVideo{
			VideoID: v.VideoID,
			Title:   v.Title,
		}
		if v.Asset != nil {
			p.Status = v.Asset.Status
			p.SourceKey = v.Asset.SourceKey
			p.Error = v.Asset.Error
		}
		out = append(out, p)
	}
	return out, nil
}

// ---------------------- REQUEUE ----------------------

// RequeueMissing re-despacha tareas de renditions para videos estancados.
func (s *AdminAssetsService) RequeueMissing(ctx context.Context, req models.RequeueAssetsRequest) (*models.RequeueAssetsResult, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	pending, err := s.GetPending(ctx, req.IncludeFailed, req.Limit)
	if err != nil {
		return nil, err
	}

	result := &models.RequeueAssetsResult{Dispatched: []int{}}

	for _, p := range pending {
		if p.SourceKey == "" {
			continue
		}

		ctxTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
		resp, err := s.dispatch(ctxTimeout, &transcode.PrepareTask{
			VideoID:   p.VideoID,
			SourceKey: p.SourceKey,
		})
		cancel()
		if err != nil {
			log.Printf("[admin-assets] requeue de video %d falló: %v", p.VideoID, err)
			result.Errors++
			continue
		}

		asset := &models.AssetInfo{
			Status:    resp.Status,
			SourceKey: p.SourceKey,
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if resp.Status == models.AssetStatusReady {
			asset.Renditions = resp.Renditions
		} else {
			asset.Error = resp.Error
		}

		if err := s.videos.UpdateAsset(ctx, p.VideoID, asset); err != nil {
			log.Printf("[admin-assets] error guardando asset de video %d: %v", p.VideoID, err)
			result.Errors++
			continue
		}

		result.Dispatched = append(result.Dispatched, p.VideoID)
	}

	return result, nil
}
