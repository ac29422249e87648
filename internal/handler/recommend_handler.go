package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"streamflix/internal/models"
	"streamflix/internal/service"
)

type RecommendHandler struct {
	svc      *service.RecommendService
	profiles *service.ProfileService
}

func NewRecommendHandler(s *service.RecommendService, profiles *service.ProfileService) *RecommendHandler {
	return &RecommendHandler{svc: s, profiles: profiles}
}

func (h *RecommendHandler) ownedProfile(w http.ResponseWriter, r *http.Request) (*models.ProfileDoc, bool) {
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

// @Summary Recomendaciones para un perfil
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param pid path string true "profileId"
// @Param k query int false "cantidad de recomendaciones (máx 50)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} models.RecItem
// @Router /me/profiles/{pid}/recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	p, ok := h.ownedProfile(w, r)
	if !ok {
		return
	}
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	refresh := r.URL.Query().Get("refresh") == "true"

	items, err := h.svc.Recommend(r.Context(), service.RecRequest{
		Profile: p,
		K:       k,
		Refresh: refresh,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.RecItem{}
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Historial de corridas de recomendaciones
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param pid path string true "profileId"
// @Param limit query int false "límite (default: 10)"
// @Success 200 {array} models.Recommendation
// @Router /me/profiles/{pid}/recommendations/history [get]
func (h *RecommendHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	p, ok := h.ownedProfile(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.svc.History(r.Context(), p.ID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []models.Recommendation{}
	}
	_ = json.NewEncoder(w).Encode(runs)
}

// @Summary Recomendaciones en tiempo real (WebSocket)
// @Tags recommend
// @Security BearerAuth
// @Param pid path string true "profileId"
// @Param k query int false "cantidad de recomendaciones (máx 50)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 101
// @Router /me/profiles/{pid}/ws/recommendations [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedProfile(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "no se pudo abrir el WebSocket", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	refresh := r.URL.Query().Get("refresh") == "true"

	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "conexión WS abierta, calculando recomendaciones…",
	})

	// un frame de avance por cada etapa del cálculo
	items, err := h.svc.Recommend(r.Context(), service.RecRequest{
		Profile: p,
		K:       k,
		Refresh: refresh,
		OnProgress: func(stage string) {
			conn.WriteJSON(map[string]any{
				"type":  "progress",
				"stage": stage,
			})
		},
	})
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	conn.WriteJSON(map[string]any{
		"type":        "recommendations",
		"profileId":   p.ID.Hex(),
		"items":       items,
		"generatedAt": time.Now(),
	})
}
