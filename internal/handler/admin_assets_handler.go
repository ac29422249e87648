package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"streamflix/internal/models"
	"streamflix/internal/service"

	"github.com/go-chi/chi/v5"
)

// AdminAssetsHandler expone el mantenimiento de assets del catálogo.
type AdminAssetsHandler struct {
	svc *service.AdminAssetsService
}

func NewAdminAssetsHandler(s *service.AdminAssetsService) *AdminAssetsHandler {
	return &AdminAssetsHandler{svc: s}
}

// MountAdminAssetsRoutes monta las rutas bajo /admin/assets.
func MountAdminAssetsRoutes(r chi.Router, h *AdminAssetsHandler) {
	r.Route("/admin/assets", func(r chi.Router) {
		r.Get("/summary", h.Summary)
		r.Get("/pending", h.Pending)
		r.Post("/requeue-missing", h.RequeueMissing)
	})
}

// @Summary Resumen de assets del catálogo (ADMIN)
// @Tags admin-assets
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.AdminAssetSummary
// @Router /admin/assets/summary [get]
func (h *AdminAssetsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := h.svc.GetSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(summary)
}

// @Summary Videos con assets pendientes (ADMIN)
// @Tags admin-assets
// @Security BearerAuth
// @Produce json
// @Param include_failed query bool false "incluir videos con asset failed"
// @Param limit query int false "límite (default: 50)"
// @Success 200 {array} models.PendingAssetVideo
// @Router /admin/assets/pending [get]
func (h *AdminAssetsHandler) Pending(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	includeFailed := r.URL.Query().Get("include_failed") == "true"
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	pending, err := h.svc.GetPending(r.Context(), includeFailed, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if pending == nil {
		pending = []models.PendingAssetVideo{}
	}
	_ = json.NewEncoder(w).Encode(pending)
}

// @Summary Re-encolar renditions faltantes (ADMIN)
// @Tags admin-assets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.RequeueAssetsRequest true "parámetros"
// @Success 200 {object} models.RequeueAssetsResult
// @Router /admin/assets/requeue-missing [post]
func (h *AdminAssetsHandler) RequeueMissing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.RequeueAssetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.RequeueMissing(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(result)
}
