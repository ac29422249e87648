package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"streamflix/internal/cache"
	"streamflix/internal/models"
	"streamflix/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultK = 20
	MaxK     = 50 // por seguridad, no deja pedir 1000 ítems
)

// candidatos que se traen del catálogo antes de puntuar
const candidatePool = 200

// RecommendationStore persiste el historial de corridas.
type RecommendationStore interface {
	Insert(ctx context.Context, rec *models.Recommendation) error
	Latest(ctx context.Context, profileID primitive.ObjectID, limit int) ([]models.Recommendation, error)
}

type RecommendService struct {
	watch   WatchStore
	ratings RatingStore
	videos  VideoStore
	recRepo RecommendationStore
}

func NewRecommendService(watch WatchStore, ratings RatingStore, videos VideoStore, recRepo RecommendationStore) *RecommendService {
	return &RecommendService{
		watch:   watch,
		ratings: ratings,
		videos:  videos,
		recRepo: recRepo,
	}
}

// ====== Petición de recomendaciones ======

type RecRequest struct {
	Profile *models.ProfileDoc
	K       int
	Refresh bool

	// OnProgress, si viene, se invoca al entrar a cada etapa del cálculo
	// (el WS lo usa para avisar avance al cliente).
	OnProgress func(stage string)
}

func (r *RecRequest) progress(stage string) {
	if r.OnProgress != nil {
		r.OnProgress(stage)
	}
}

func recCacheKey(profileID primitive.ObjectID, k int) string {
	// cachea por perfil + k (refresh solo decide si usar cache)
	return fmt.Sprintf("rec:profile:%s:k:%d", profileID.Hex(), k)
}

// genreAffinity arma el perfil de gustos por género a partir del historial
// y los pulgares. Completar un título pesa doble; un pulgar abajo resta.
func genreAffinity(watched []models.WatchEntryDoc, ratings []models.RatingDoc, videosByID map[int]models.VideoDoc) map[string]float64 {
	aff := make(map[string]float64)

	for _, w := range watched {
		v, ok := videosByID[w.VideoID]
		if !ok {
			continue
		}
		weight := 1.0
		if w.Completed {
			weight = 2.0
		}
		for _, g := range v.Genres {
			aff[g] += weight
		}
	}

	for _, r := range ratings {
		v, ok := videosByID[r.VideoID]
		if !ok {
			continue
		}
		var weight float64
		switch r.Value {
		case models.RatingUp:
			weight = 2.0
		case models.RatingDown:
			weight = -2.0
		}
		for _, g := range v.Genres {
			aff[g] += weight
		}
	}

	return aff
}

// scoreCandidate puntúa un candidato: afinidad de géneros normalizada por
// cantidad de géneros del video + un prior chico de popularidad.
func scoreCandidate(v models.VideoDoc, aff map[string]float64, maxViews float64) float64 {
	if len(v.Genres) == 0 {
		return 0
	}

	var sum float64
	for _, g := range v.Genres {
		sum += aff[g]
	}
	score := sum / float64(len(v.Genres))

	if maxViews > 0 && v.ViewStats != nil {
		score += 0.1 * float64(v.ViewStats.Count) / maxViews
	}
	return score
}

// Recommend calcula las recomendaciones básicas por perfil.
func (s *RecommendService) Recommend(ctx context.Context, req RecRequest) ([]models.RecItem, error) {
	// defaults y límites para K
	if req.K <= 0 {
		req.K = DefaultK
	} else if req.K > MaxK {
		req.K = MaxK
	}

	profileID := req.Profile.ID

	// 1) Cache Redis (solo si refresh = false)
	var cached []models.RecItem
	if !req.Refresh {
		if ok, err := cache.GetJSON(ctx, recCacheKey(profileID, req.K), &cached); err == nil && ok {
			return cached, nil
		}
	}

	// 2) Señales del perfil
	req.progress("señales")
	watched, err := s.watch.GetAllByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.GetAllByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	maturities := allowedMaturities(req.Profile.MaturityLimit)

	// cold start: sin señales devolvemos lo más visto
	if len(watched) == 0 && len(ratings) == 0 {
		top, err := s.videos.Top(ctx, "popular", maturities, req.K)
		if err != nil {
			return nil, err
		}
		items := make([]models.RecItem, 0, len(top))
		for i, v := range top {
			items = append(items, models.RecItem{VideoID: v.VideoID, Score: float64(len(top) - i)})
		}
		return items, nil
	}

	// 3) Videos de las señales (para saber sus géneros)
	seen := make(map[int]bool, len(watched))
	disliked := make(map[int]bool)
	signalIDs := make([]int, 0, len(watched)+len(ratings))
	for _, w := range watched {
		seen[w.VideoID] = true
		signalIDs = append(signalIDs, w.VideoID)
	}
	for _, r := range ratings {
		if r.Value == models.RatingDown {
			disliked[r.VideoID] = true
		}
		if !seen[r.VideoID] {
			signalIDs = append(signalIDs, r.VideoID)
		}
	}

	signalVideos, err := s.videos.GetByIDs(ctx, signalIDs)
	if err != nil {
		return nil, err
	}
	videosByID := make(map[int]models.VideoDoc, len(signalVideos))
	for _, v := range signalVideos {
		videosByID[v.VideoID] = v
	}

	aff := genreAffinity(watched, ratings, videosByID)

	// 4) Candidatos: catálogo reproducible dentro del límite de madurez
	req.progress("candidatos")
	candidates, err := s.videos.Search(ctx, repository.SearchParams{
		MaxMaturity: maturities,
		OnlyReady:   true,
		Limit:       candidatePool,
	})
	if err != nil {
		return nil, err
	}

	var maxViews float64
	for _, c := range candidates {
		if c.ViewStats != nil && float64(c.ViewStats.Count) > maxViews {
			maxViews = float64(c.ViewStats.Count)
		}
	}

	// 5) Puntuar, excluyendo visto y con pulgar abajo
	req.progress("puntuación")
	var items []models.RecItem
	for _, c := range candidates {
		if seen[c.VideoID] || disliked[c.VideoID] {
			continue
		}
		score := scoreCandidate(c, aff, maxViews)
		if score <= 0 {
			continue
		}
		items = append(items, models.RecItem{VideoID: c.VideoID, Score: score})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	if len(items) > req.K {
		items = items[:req.K]
	}

	// 5.5) Guardar historial en Mongo (no rompemos la respuesta si falla)
	if s.recRepo != nil {
		hist := &models.Recommendation{
			ProfileID: profileID,
			Algo:      "genre-affinity",
			Params: map[string]any{
				"k":       req.K,
				"refresh": req.Refresh,
			},
			Items:     items,
			CreatedAt: time.Now(),
		}
		if err := s.recRepo.Insert(ctx, hist); err != nil {
			log.Printf("[recommend] error guardando corrida en Mongo: %v", err)
		}
	}

	// 6) Cachear en Redis (1 hora)
	if err := cache.SetJSON(ctx, recCacheKey(profileID, req.K), items, 60*60); err != nil {
		log.Printf("[recommend] error cacheando en Redis: %v", err)
	}

	return items, nil
}

// History devuelve las últimas corridas guardadas de un perfil.
func (s *RecommendService) History(ctx context.Context, profileID primitive.ObjectID, limit int) ([]models.Recommendation, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.recRepo.Latest(ctx, profileID, limit)
}
