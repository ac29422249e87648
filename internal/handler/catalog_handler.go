package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"streamflix/internal/models"
	"streamflix/internal/repository"
	"streamflix/internal/service"

	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	svc      *service.CatalogService
	profiles *service.ProfileService
}

func NewCatalogHandler(s *service.CatalogService, p *service.ProfileService) *CatalogHandler {
	return &CatalogHandler{svc: s, profiles: p}
}

// @Summary Detalle de un video
// @Tags catalog
// @Produce json
// @Param id path int true "videoId"
// @Success 200 {object} models.VideoDoc
// @Router /videos/{id} [get]
func (h *CatalogHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	v, err := h.svc.GetVideo(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if v == nil {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// @Summary Buscar / listar videos (paginado)
// @Tags catalog
// @Produce json
// @Param q query string false "búsqueda por título"
// @Param genre query string false "filtrar por género"
// @Param year_from query int false "año desde"
// @Param year_to query int false "año hasta"
// @Param maturity query string false "techo de clasificación (G|PG|PG-13|R)"
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset"
// @Success 200 {array} models.VideoDoc
// @Router /videos/search [get]
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query().Get("q")
	genre := r.URL.Query().Get("genre")
	maturity := r.URL.Query().Get("maturity")

	yearFrom, _ := strconv.Atoi(r.URL.Query().Get("year_from"))
	yearTo, _ := strconv.Atoi(r.URL.Query().Get("year_to"))

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	videos, err := h.svc.Search(r.Context(), repository.SearchParams{
		Query:    q,
		Genre:    genre,
		YearFrom: yearFrom,
		YearTo:   yearTo,
		Limit:    limit,
		Offset:   offset,
	}, maturity)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMaturity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if videos == nil {
		videos = []models.VideoDoc{}
	}
	_ = json.NewEncoder(w).Encode(videos)
}

// @Summary Top videos (popularidad o likes)
// @Tags catalog
// @Produce json
// @Param metric query string false "popular|liked (default: popular)"
// @Param limit query int false "límite (default: 20)"
// @Success 200 {array} models.VideoDoc
// @Router /videos/top [get]
func (h *CatalogHandler) Top(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = "popular"
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	videos, err := h.svc.Top(r.Context(), metric, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if videos == nil {
		videos = []models.VideoDoc{}
	}
	_ = json.NewEncoder(w).Encode(videos)
}

// @Summary Listar categorías
// @Tags catalog
// @Produce json
// @Success 200 {array} models.CategoryDoc
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	cats, err := h.svc.ListCategories(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if cats == nil {
		cats = []models.CategoryDoc{}
	}
	_ = json.NewEncoder(w).Encode(cats)
}

// ownedProfile resuelve el perfil del path validando pertenencia.
func (h *CatalogHandler) ownedProfile(w http.ResponseWriter, r *http.Request) (*models.ProfileDoc, bool) {
	pid, ok := profileIDParam(w, r)
	if !ok {
		return nil, false
	}
	p, err := h.profiles.GetOwned(r.Context(), UserIDFromContext(r.Context()), pid)
	if err != nil {
		writeProfileErr(w, r, err)
		return nil, false
	}
	return p, true
}

// @Summary Home del perfil (Seguir viendo + filas de categorías)
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param pid path string true "profileId"
// @Success 200 {object} models.HomeScreen
// @Router /me/profiles/{pid}/home [get]
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	p, ok := h.ownedProfile(w, r)
	if !ok {
		return
	}

	home, err := h.svc.Home(r.Context(), p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(home)
}

// @Summary Videos de una categoría para un perfil
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param pid path string true "profileId"
// @Param slug path string true "slug de la categoría"
// @Param limit query int false "límite (default: 20)"
// @Success 200 {object} models.CategoryRow
// @Router /me/profiles/{pid}/categories/{slug} [get]
func (h *CatalogHandler) CategoryVideos(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	p, ok := h.ownedProfile(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	row, err := h.svc.CategoryVideos(r.Context(), chi.URLParam(r, "slug"), p, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if row == nil {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(row)
}

// ====== ADMIN: videos y categorías ======

// @Summary Crear video (ADMIN)
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.VideoCreateRequest true "datos del video"
// @Success 201 {object} models.VideoDoc
// @Router /admin/videos [post]
func (h *CatalogHandler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.VideoCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, "body inválido (title requerido)", http.StatusBadRequest)
		return
	}

	v, err := h.svc.CreateVideo(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrVideoAlreadyExists) {
			http.Error(w, "ya existe un video con ese título y año", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(v)
}

// @Summary Actualizar video (ADMIN)
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "videoId"
// @Param body body models.VideoUpdateRequest true "campos a actualizar"
// @Success 200 {object} models.VideoDoc
// @Router /admin/videos/{id} [put]
func (h *CatalogHandler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var req models.VideoUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}

	v, err := h.svc.UpdateVideo(r.Context(), id, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if v == nil {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

type registerSourceRequest struct {
	SourceKey string `json:"sourceKey"`
}

// @Summary Registrar archivo fuente de un video (ADMIN)
// @Description Marca el asset como pending y despacha la tarea de renditions a los nodos de assets.
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "videoId"
// @Param body body registerSourceRequest true "sourceKey"
// @Success 200 {object} models.VideoDoc
// @Router /admin/videos/{id}/source [post]
func (h *CatalogHandler) RegisterSource(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var req registerSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SourceKey == "" {
		http.Error(w, "body inválido (sourceKey requerido)", http.StatusBadRequest)
		return
	}

	v, err := h.svc.RegisterSource(r.Context(), id, req.SourceKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if v == nil {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// @Summary Crear/actualizar categoría (ADMIN)
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CategoryDoc true "categoría"
// @Success 200 {object} models.CategoryDoc
// @Router /admin/categories [put]
func (h *CatalogHandler) UpsertCategory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var c models.CategoryDoc
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}

	if err := h.svc.UpsertCategory(r.Context(), &c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(c)
}

// @Summary Borrar categoría (ADMIN)
// @Tags catalog
// @Security BearerAuth
// @Param slug path string true "slug"
// @Success 204
// @Router /admin/categories/{slug} [delete]
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCategory(r.Context(), chi.URLParam(r, "slug")); err != nil {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
