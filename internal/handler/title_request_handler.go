package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"streamflix/internal/models"
	"streamflix/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TitleRequestHandler struct {
	svc *service.TitleRequestService
}

func NewTitleRequestHandler(s *service.TitleRequestService) *TitleRequestHandler {
	return &TitleRequestHandler{svc: s}
}

func requestIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "request id inválido", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return id, true
}

type createTitleRequest struct {
	Title   string `json:"title"`
	Year    *int   `json:"year"`
	Comment string `json:"comment"`
}

// @Summary Pedir un título que falta en el catálogo
// @Tags title-requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body createTitleRequest true "pedido"
// @Success 201 {object} models.TitleRequest
// @Router /me/title-requests [post]
func (h *TitleRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	var req createTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tr, err := h.svc.Create(r.Context(), userID, service.CreateTitleRequestData{
		Title:   req.Title,
		Year:    req.Year,
		Comment: req.Comment,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(tr)
}

// @Summary Listar mis pedidos de títulos
// @Tags title-requests
// @Security BearerAuth
// @Produce json
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset"
// @Success 200 {array} models.TitleRequest
// @Router /me/title-requests [get]
func (h *TitleRequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	list, err := h.svc.ListMine(r.Context(), userID, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.TitleRequest{}
	}
	_ = json.NewEncoder(w).Encode(list)
}

// @Summary Listar todos los pedidos (ADMIN)
// @Tags title-requests
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending|approved|rejected|all (default: all)"
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset"
// @Success 200 {array} models.TitleRequest
// @Router /admin/title-requests [get]
func (h *TitleRequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := r.URL.Query().Get("status")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	list, err := h.svc.ListAll(r.Context(), status, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.TitleRequest{}
	}
	_ = json.NewEncoder(w).Encode(list)
}

// @Summary Aprobar un pedido (ADMIN)
// @Description Crea el video en el catálogo y marca el pedido como approved.
// @Tags title-requests
// @Security BearerAuth
// @Produce json
// @Param id path string true "requestId"
// @Success 200 {object} models.TitleRequest
// @Failure 409 {string} string "el pedido no está pending"
// @Router /admin/title-requests/{id}/approve [post]
func (h *TitleRequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := requestIDParam(w, r)
	if !ok {
		return
	}

	tr, err := h.svc.Approve(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequestNotPending) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if tr == nil {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(tr)
}

// @Summary Rechazar un pedido (ADMIN)
// @Tags title-requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "requestId"
// @Param body body models.RejectTitleRequest true "motivo"
// @Success 200 {object} models.TitleRequest
// @Failure 409 {string} string "el pedido no está pending"
// @Router /admin/title-requests/{id}/reject [post]
func (h *TitleRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := requestIDParam(w, r)
	if !ok {
		return
	}

	var body models.RejectTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tr, err := h.svc.Reject(r.Context(), id, body.Reason)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequestNotPending) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if tr == nil {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(tr)
}
