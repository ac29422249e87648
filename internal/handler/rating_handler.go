package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"streamflix/internal/models"
	"streamflix/internal/service"
)

type RatingHandler struct {
	svc      *service.RatingService
	profiles *service.ProfileService
}

func NewRatingHandler(s *service.RatingService, profiles *service.ProfileService) *RatingHandler {
	return &RatingHandler{svc: s, profiles: profiles}
}

type ratingRequest struct {
	VideoID int    `json:"videoId"`
	Value   string `json:"value"` // up|down
}

// @Summary Poner pulgar a un video
// @Tags ratings
// @Security BearerAuth
// @Accept json
// @Param pid path string true "profileId"
// @Param body body ratingRequest true "pulgar"
// @Success 204
// @Router /me/profiles/{pid}/ratings [post]
func (h *RatingHandler) PostRating(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	p, err := h.profiles.GetOwned(r.Context(), UserIDFromContext(r.Context()), pid)
	if err != nil {
		writeProfileErr(w, r, err)
		return
	}

	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.AddOrUpdate(r.Context(), p.ID, req.VideoID, req.Value); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Listar pulgares del perfil
// @Tags ratings
// @Security BearerAuth
// @Produce json
// @Param pid path string true "profileId"
// @Param limit query int false "límite (default: 100)"
// @Param offset query int false "offset"
// @Success 200 {array} models.RatingDoc
// @Router /me/profiles/{pid}/ratings [get]
func (h *RatingHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	pid, ok := profileIDParam(w, r)
	if !ok {
		return
	}
	p, err := h.profiles.GetOwned(r.Context(), UserIDFromContext(r.Context()), pid)
	if err != nil {
		writeProfileErr(w, r, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 100
	}

	list, err := h.svc.GetByProfile(r.Context(), p.ID, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.RatingDoc{}
	}
	_ = json.NewEncoder(w).Encode(list)
}
