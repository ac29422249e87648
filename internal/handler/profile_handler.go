package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"streamflix/internal/models"
	"streamflix/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(s *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: s}
}

// profileIDParam parsea el ObjectID del path. Devuelve false si es inválido
// (ya respondió 400).
func profileIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "pid"))
	if err != nil {
		http.Error(w, "profile id inválido", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return id, true
}

func writeProfileErr(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrProfileNotFound) {
		http.NotFound(w, r)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

type createProfileRequest struct {
	Name            string   `json:"name"`
	AvatarColor     string   `json:"avatarColor"`
	Kids            bool     `json:"kids"`
	MaturityLimit   string   `json:"maturityLimit"`
	PreferredGenres []string `json:"preferredGenres"`
}

// @Summary Crear perfil
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body createProfileRequest true "datos"
// @Success 201 {object} models.ProfileDoc
// @Failure 400 {object} map[string]string
// @Router /me/profiles [post]
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Create(r.Context(), userID, service.CreateProfileData{
		Name:            req.Name,
		AvatarColor:     req.AvatarColor,
		Kids:            req.Kids,
		MaturityLimit:   req.MaturityLimit,
		PreferredGenres: req.PreferredGenres,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// @Summary Listar perfiles de la cuenta
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.ProfileDoc
// @Router /me/profiles [get]
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	profiles, err := h.svc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if profiles == nil {
		profiles = []models.ProfileDoc{}
	}
	_ = json.NewEncoder(w).Encode(profiles)
}

// @Summary Obtener un perfil propio
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Param pid path string true "profileId"
// @Success 200 {object} models.ProfileDoc
// @Router /me/profiles/{pid} [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	pid, ok := profileIDParam(w, r)
	if !ok {
		return
	}

	p, err := h.svc.GetOwned(r.Context(), userID, pid)
	if err != nil {
		writeProfileErr(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(p)
}

type updateProfileRequest struct {
	Name            *string   `json:"name"`
	AvatarColor     *string   `json:"avatarColor"`
	Kids            *bool     `json:"kids"`
	MaturityLimit   *string   `json:"maturityLimit"`
	PreferredGenres *[]string `json:"preferredGenres"`
}

// @Summary Actualizar un perfil propio
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param pid path string true "profileId"
// @Param body body updateProfileRequest true "campos a actualizar"
// @Success 200 {object} map[string]any
// @Router /me/profiles/{pid} [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	pid, ok := profileIDParam(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.svc.Update(r.Context(), userID, pid, service.UpdateProfileData{
		Name:            req.Name,
		AvatarColor:     req.AvatarColor,
		Kids:            req.Kids,
		MaturityLimit:   req.MaturityLimit,
		PreferredGenres: req.PreferredGenres,
	})
	if err != nil {
		writeProfileErr(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"updated": true})
}

// @Summary Borrar un perfil propio
// @Tags profiles
// @Security BearerAuth
// @Param pid path string true "profileId"
// @Success 204
// @Router /me/profiles/{pid} [delete]
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	pid, ok := profileIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), userID, pid); err != nil {
		writeProfileErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
