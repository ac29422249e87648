package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"streamflix/internal/cache"
	"streamflix/internal/models"
	"streamflix/internal/repository"
	"streamflix/internal/transcode"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrVideoAlreadyExists = fmt.Errorf("video already exists")
	ErrInvalidMaturity    = fmt.Errorf("invalid maturity (must be G|PG|PG-13|R)")
)

// VideoStore es lo que los servicios necesitan de la colección de videos.
type VideoStore interface {
	GetByID(ctx context.Context, videoID int) (*models.VideoDoc, error)
	GetByIDs(ctx context.Context, videoIDs []int) ([]models.VideoDoc, error)
	FindByTitleYear(ctx context.Context, title string, year *int) (*models.VideoDoc, error)
	GetNextVideoID(ctx context.Context) (int, error)
	Insert(ctx context.Context, v *models.VideoDoc) error
	Update(ctx context.Context, v *models.VideoDoc) error
	Search(ctx context.Context, p repository.SearchParams) ([]models.VideoDoc, error)
	Top(ctx context.Context, metric string, maxMaturity []string, limit int) ([]models.VideoDoc, error)
	UpdateAsset(ctx context.Context, videoID int, asset *models.AssetInfo) error
	IncView(ctx context.Context, videoID int, nowRFC3339 string) error
	IncRatingCounters(ctx context.Context, videoID, likesDelta, dislikesDelta int) error
}

type CategoryStore interface {
	GetBySlug(ctx context.Context, slug string) (*models.CategoryDoc, error)
	ListOrdered(ctx context.Context) ([]models.CategoryDoc, error)
	Upsert(ctx context.Context, c *models.CategoryDoc) error
	Delete(ctx context.Context, slug string) error
}

// DispatchFunc manda una tarea de renditions a los nodos de assets.
type DispatchFunc func(ctx context.Context, task *transcode.PrepareTask) (*transcode.PrepareResult, error)

type CatalogService struct {
	videos     VideoStore
	categories CategoryStore
	watch      WatchStore
	dispatch   DispatchFunc
}

func NewCatalogService(videos VideoStore, categories CategoryStore, watch WatchStore, dispatch DispatchFunc) *CatalogService {
	return &CatalogService{
		videos:     videos,
		categories: categories,
		watch:      watch,
		dispatch:   dispatch,
	}
}

// allowedMaturities devuelve las clasificaciones visibles bajo un límite.
func allowedMaturities(limit string) []string {
	all := []string{models.MaturityG, models.MaturityPG, models.MaturityPG13, models.MaturityR}
	rank := models.MaturityRank(limit)
	out := make([]string, 0, rank+1)
	for _, m := range all {
		if models.MaturityRank(m) <= rank {
			out = append(out, m)
		}
	}
	return out
}

// ================== LECTURA PÚBLICA ==================

func (s *CatalogService) GetVideo(ctx context.Context, id int) (*models.VideoDoc, error) {
	return s.videos.GetByID(ctx, id)
}

// Search aplica los filtros públicos del catálogo. Si maxMaturity viene
// seteado, actúa como techo: solo se devuelven clasificaciones hasta esa.
func (s *CatalogService) Search(ctx context.Context, p repository.SearchParams, maxMaturity string) ([]models.VideoDoc, error) {
	if maxMaturity != "" {
		if !validMaturity(maxMaturity) {
			return nil, ErrInvalidMaturity
		}
		p.MaxMaturity = allowedMaturities(maxMaturity)
	}
	return s.videos.Search(ctx, p)
}

func (s *CatalogService) Top(ctx context.Context, metric string, limit int) ([]models.VideoDoc, error) {
	return s.videos.Top(ctx, metric, nil, limit)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.CategoryDoc, error) {
	return s.categories.ListOrdered(ctx)
}

// resolveRow arma la fila de una categoría respetando el límite de madurez.
func (s *CatalogService) resolveRow(ctx context.Context, c models.CategoryDoc, maturities []string, perRow int) (models.CategoryRow, error) {
	row := models.CategoryRow{Slug: c.Slug, Title: c.Title, Videos: []models.VideoDoc{}}

	switch c.Kind {
	case models.CategoryKindCurated:
		vids, err := s.videos.GetByIDs(ctx, c.VideoIDs)
		if err != nil {
			return row, err
		}
		// respetamos el orden curado de videoIds
		byID := make(map[int]models.VideoDoc, len(vids))
		for _, v := range vids {
			byID[v.VideoID] = v
		}
		rank := models.MaturityRank(maturities[len(maturities)-1])
		for _, id := range c.VideoIDs {
			v, ok := byID[id]
			if !ok {
				continue
			}
			if models.MaturityRank(v.MaturityRating) > rank {
				continue
			}
			row.Videos = append(row.Videos, v)
			if len(row.Videos) >= perRow {
				break
			}
		}
	default: // genre
		vids, err := s.videos.Search(ctx, repository.SearchParams{
			Genre:       c.Genre,
			MaxMaturity: maturities,
			OnlyReady:   true,
			Limit:       perRow,
		})
		if err != nil {
			return row, err
		}
		row.Videos = vids
	}
	return row, nil
}

func homeCacheKey(profileID primitive.ObjectID) string {
	return fmt.Sprintf("home:profile:%s", profileID.Hex())
}

// Home arma la pantalla principal para un perfil: fila de Seguir Viendo +
// filas de categorías. Cachea 5 minutos en Redis.
func (s *CatalogService) Home(ctx context.Context, profile *models.ProfileDoc) (*models.HomeScreen, error) {
	var cached models.HomeScreen
	if ok, err := cache.GetJSON(ctx, homeCacheKey(profile.ID), &cached); err == nil && ok {
		return &cached, nil
	}

	maturities := allowedMaturities(profile.MaturityLimit)

	home := &models.HomeScreen{
		ContinueWatching: []models.ContinueWatchingItem{},
		Rows:             []models.CategoryRow{},
	}

	// 1) Seguir viendo
	entries, err := s.watch.ContinueWatching(ctx, profile.ID, 10)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		v, err := s.videos.GetByID(ctx, e.VideoID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		home.ContinueWatching = append(home.ContinueWatching, models.ContinueWatchingItem{
			Video:           *v,
			PositionSeconds: e.PositionSeconds,
			UpdatedAt:       e.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	// 2) Filas de categorías
	cats, err := s.categories.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		row, err := s.resolveRow(ctx, c, maturities, 20)
		if err != nil {
			return nil, err
		}
		if len(row.Videos) == 0 {
			continue
		}
		home.Rows = append(home.Rows, row)
	}

	if err := cache.SetJSON(ctx, homeCacheKey(profile.ID), home, 5*60); err != nil {
		log.Printf("[catalog] error cacheando home en Redis: %v", err)
	}

	return home, nil
}

// CategoryVideos resuelve una sola categoría para un perfil.
func (s *CatalogService) CategoryVideos(ctx context.Context, slug string, profile *models.ProfileDoc, limit int) (*models.CategoryRow, error) {
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	row, err := s.resolveRow(ctx, *c, allowedMaturities(profile.MaturityLimit), limit)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ================== ADMIN ==================

func (s *CatalogService) invalidateHome(ctx context.Context) {
	if err := cache.DelPrefix(ctx, "home:profile:"); err != nil {
		log.Printf("[catalog] error invalidando cache de home: %v", err)
	}
}

func (s *CatalogService) CreateVideo(ctx context.Context, req *models.VideoCreateRequest) (*models.VideoDoc, error) {
	existing, err := s.videos.FindByTitleYear(ctx, req.Title, req.Year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrVideoAlreadyExists
	}

	maturity := req.MaturityRating
	if maturity == "" {
		maturity = models.MaturityPG13
	}
	if !validMaturity(maturity) {
		return nil, fmt.Errorf("invalid maturityRating (must be G|PG|PG-13|R)")
	}

	nextID, err := s.videos.GetNextVideoID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	v := &models.VideoDoc{
		VideoID:         nextID,
		Title:           req.Title,
		Year:            req.Year,
		Genres:          req.Genres,
		MaturityRating:  maturity,
		Synopsis:        req.Synopsis,
		Cast:            req.Cast,
		Director:        req.Director,
		DurationSeconds: req.DurationSeconds,
		ThumbnailURL:    req.ThumbnailURL,
		Asset:           &models.AssetInfo{Status: models.AssetStatusNone, UpdatedAt: now},
		ViewStats:       &models.ViewStats{},
		RatingStats:     &models.RatingStats{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.videos.Insert(ctx, v); err != nil {
		return nil, err
	}
	s.invalidateHome(ctx)
	return v, nil
}

func (s *CatalogService) UpdateVideo(ctx context.Context, id int, req *models.VideoUpdateRequest) (*models.VideoDoc, error) {
	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}

	if req.Title != nil {
		v.Title = *req.Title
	}
	if req.Year != nil {
		v.Year = req.Year
	}
	if req.Genres != nil {
		v.Genres = req.Genres
	}
	if req.MaturityRating != nil {
		if !validMaturity(*req.MaturityRating) {
			return nil, fmt.Errorf("invalid maturityRating (must be G|PG|PG-13|R)")
		}
		v.MaturityRating = *req.MaturityRating
	}
	if req.Synopsis != nil {
		v.Synopsis = *req.Synopsis
	}
	if req.Cast != nil {
		v.Cast = req.Cast
	}
	if req.Director != nil {
		v.Director = *req.Director
	}
	if req.DurationSeconds != nil {
		v.DurationSeconds = *req.DurationSeconds
	}
	if req.ThumbnailURL != nil {
		v.ThumbnailURL = *req.ThumbnailURL
	}
	v.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.videos.Update(ctx, v); err != nil {
		return nil, err
	}
	s.invalidateHome(ctx)
	return v, nil
}

func (s *CatalogService) UpsertCategory(ctx context.Context, c *models.CategoryDoc) error {
	if c.Slug == "" || c.Title == "" {
		return fmt.Errorf("slug and title are required")
	}
	switch c.Kind {
	case models.CategoryKindGenre:
		if c.Genre == "" {
			return fmt.Errorf("genre is required for kind=genre")
		}
	case models.CategoryKindCurated:
		// lista vacía es válida, la fila simplemente no se muestra
	default:
		return fmt.Errorf("invalid kind (must be genre|curated)")
	}

	if err := s.categories.Upsert(ctx, c); err != nil {
		return err
	}
	s.invalidateHome(ctx)
	return nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	if err := s.categories.Delete(ctx, slug); err != nil {
		return err
	}
	s.invalidateHome(ctx)
	return nil
}

// RegisterSource registra el archivo fuente de un video y despacha la tarea
// de renditions a los nodos de assets. El video queda pending hasta que el
// nodo responda.
func (s *CatalogService) RegisterSource(ctx context.Context, videoID int, sourceKey string) (*models.VideoDoc, error) {
	if sourceKey == "" {
		return nil, fmt.Errorf("sourceKey is required")
	}

	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	v.Asset = &models.AssetInfo{
		Status:    models.AssetStatusPending,
		SourceKey: sourceKey,
		UpdatedAt: now,
	}
	if err := s.videos.UpdateAsset(ctx, videoID, v.Asset); err != nil {
		return nil, err
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := s.dispatch(ctxTimeout, &transcode.PrepareTask{
		VideoID:   videoID,
		SourceKey: sourceKey,
	})
	if err != nil {
		// el video queda pending, el admin puede re-encolar después
		log.Printf("[catalog] despacho de renditions falló para video %d: %v", videoID, err)
		return v, nil
	}

	v.Asset = assetFromResult(v.Asset, resp)
	if err := s.videos.UpdateAsset(ctx, videoID, v.Asset); err != nil {
		return nil, err
	}
	s.invalidateHome(ctx)
	return v, nil
}

// assetFromResult aplica el resultado de un nodo sobre el bloque asset.
func assetFromResult(prev *models.AssetInfo, resp *transcode.PrepareResult) *models.AssetInfo {
	now := time.Now().UTC().Format(time.RFC3339)
	asset := &models.AssetInfo{
		Status:    resp.Status,
		SourceKey: prev.SourceKey,
		UpdatedAt: now,
	}
	if resp.Status == models.AssetStatusReady {
		asset.Renditions = resp.Renditions
	} else {
		asset.Error = resp.Error
	}
	return asset
}
