package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"streamflix/internal/models"
	"streamflix/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type PlaybackHandler struct {
	svc      *service.PlaybackService
	watch    *service.WatchService
	profiles *service.ProfileService
}

func NewPlaybackHandler(s *service.PlaybackService, watch *service.WatchService, profiles *service.ProfileService) *PlaybackHandler {
	return &PlaybackHandler{svc: s, watch: watch, profiles: profiles}
}

func (h *PlaybackHandler) ownedProfile(w http.ResponseWriter, r *http.Request) (*models.ProfileDoc, bool) {
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

// @Summary Iniciar reproducción
// @Description Devuelve el ticket con URLs prefirmadas por rendition y la posición de resume.
// @Tags playback
// @Security BearerAuth
// @Produce json
// @Param pid path string true "profileId"
// @Param id path int true "videoId"
// @Success 200 {object} models.PlaybackTicket
// @Failure 403 {string} string "video no permitido para el perfil"
// @Failure 409 {string} string "video sin asset listo"
// @Router /me/profiles/{pid}/videos/{id}/play [post]
func (h *PlaybackHandler) Play(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	p, ok := h.ownedProfile(w, r)
	if !ok {
		return
	}
	videoID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	ticket, err := h.svc.Play(r.Context(), p, videoID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMaturityBlocked):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, service.ErrVideoNotReady):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	if ticket == nil {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(ticket)
}

type progressRequest struct {
	PositionSeconds int  `json:"positionSeconds"`
	Completed       bool `json:"completed"`
}

// @Summary Guardar progreso de reproducción
// @Tags playback
// @Security BearerAuth
// @Accept json
// @Param pid path string true "profileId"
// @Param id path int true "videoId"
// @Param body body progressRequest true "progreso"
// @Success 204
// @Router /me/profiles/{pid}/videos/{id}/progress [put]
func (h *PlaybackHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedProfile(w, r)
	if !ok {
		return
	}
	videoID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.watch.SaveProgress(r.Context(), p.ID, videoID, req.PositionSeconds, req.Completed); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Seguir viendo
// @Tags playback
// @Security BearerAuth
// @Produce json
// @Param pid path string true "profileId"
// @Param limit query int false "límite (default: 10)"
// @Success 200 {array} models.ContinueWatchingItem
// @Router /me/profiles/{pid}/continue-watching [get]
func (h *PlaybackHandler) ContinueWatching(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	p, ok := h.ownedProfile(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.watch.ContinueWatching(r.Context(), p.ID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.ContinueWatchingItem{}
	}
	_ = json.NewEncoder(w).Encode(items)
}

// ====== MI LISTA ======

// @Summary Agregar a Mi Lista
// @Tags playback
// @Security BearerAuth
// @Param pid path string true "profileId"
// @Param id path int true "videoId"
// @Success 204
// @Router /me/profiles/{pid}/list/{id} [post]
func (h *PlaybackHandler) AddToList(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedProfile(w, r)
	if !ok {
		return
	}
	videoID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	if err := h.watch.AddToList(r.Context(), p.ID, videoID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Sacar de Mi Lista
// @Tags playback
// @Security BearerAuth
// @Param pid path string true "profileId"
// @Param id path int true "videoId"
// @Success 204
// @Router /me/profiles/{pid}/list/{id} [delete]
func (h *PlaybackHandler) RemoveFromList(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedProfile(w, r)
	if !ok {
		return
	}
	videoID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	if err := h.watch.RemoveFromList(r.Context(), p.ID, videoID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Mi Lista
// @Tags playback
// @Security BearerAuth
// @Produce json
// @Param pid path string true "profileId"
// @Param limit query int false "límite (default: 50)"
// @Success 200 {array} models.VideoDoc
// @Router /me/profiles/{pid}/list [get]
func (h *PlaybackHandler) MyList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	p, ok := h.ownedProfile(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	videos, err := h.watch.MyList(r.Context(), p.ID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if videos == nil {
		videos = []models.VideoDoc{}
	}
	_ = json.NewEncoder(w).Encode(videos)
}

// ====== HEARTBEATS POR WEBSOCKET ======

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type heartbeatMessage struct {
	VideoID         int `json:"videoId"`
	PositionSeconds int `json:"positionSeconds"`
}

// @Summary Latidos de reproducción (WebSocket)
// @Description El player manda {videoId, positionSeconds} y el servidor persiste y acusa recibo.
// @Tags playback
// @Security BearerAuth
// @Param pid path string true "profileId"
// @Success 101
// @Router /me/profiles/{pid}/ws/progress [get]
func (h *PlaybackHandler) ProgressWS(w http.ResponseWriter, r *http.Request) {
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

	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "conexión WS abierta, mandá latidos {videoId, positionSeconds}",
	})

	for {
		var hb heartbeatMessage
		if err := conn.ReadJSON(&hb); err != nil {
			// cierre del cliente o mensaje malformado, terminamos la sesión
			return
		}

		if err := h.svc.SessionHeartbeat(r.Context(), p.ID, hb.VideoID, hb.PositionSeconds); err != nil {
			log.Printf("[playback] heartbeat inválido de perfil %s: %v", p.ID.Hex(), err)
			conn.WriteJSON(map[string]any{"type": "error", "error": err.Error()})
			continue
		}

		conn.WriteJSON(map[string]any{
			"type":            "ack",
			"videoId":         hb.VideoID,
			"positionSeconds": hb.PositionSeconds,
		})
	}
}
