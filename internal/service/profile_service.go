package service

import (
	"context"
	"fmt"
	"time"

	"streamflix/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileStore es lo que los servicios necesitan de la colección de perfiles.
type ProfileStore interface {
	Insert(ctx context.Context, p *models.ProfileDoc) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProfileDoc, error)
	ListByUser(ctx context.Context, userID int) ([]models.ProfileDoc, error)
	CountByUser(ctx context.Context, userID int) (int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// Se devuelve como not found para no filtrar existencia de perfiles ajenos.
var ErrProfileNotFound = fmt.Errorf("profile not found")

type ProfileService struct {
	profiles ProfileStore
}

type CreateProfileData struct {
	Name            string
	AvatarColor     string
	Kids            bool
	MaturityLimit   string
	PreferredGenres []string
}

type UpdateProfileData struct {
	Name            *string
	AvatarColor     *string
	Kids            *bool
	MaturityLimit   *string
	PreferredGenres *[]string
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func validMaturity(m string) bool {
	switch m {
	case models.MaturityG, models.MaturityPG, models.MaturityPG13, models.MaturityR:
		return true
	}
	return false
}

// Create agrega un perfil a la cuenta. Respeta el tope por cuenta y la
// unicidad de nombre dentro de la cuenta.
func (s *ProfileService) Create(ctx context.Context, userID int, data CreateProfileData) (*models.ProfileDoc, error) {
	if data.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	count, err := s.profiles.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxProfilesPerUser {
		return nil, fmt.Errorf("profile limit reached (%d per account)", models.MaxProfilesPerUser)
	}

	existing, err := s.profiles.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.Name == data.Name {
			return nil, fmt.Errorf("profile name already in use")
		}
	}

	limit := data.MaturityLimit
	if limit == "" {
		limit = models.MaturityR
	}
	if !validMaturity(limit) {
		return nil, fmt.Errorf("invalid maturityLimit (must be G|PG|PG-13|R)")
	}
	// perfiles infantiles siempre quedan en PG como máximo
	if data.Kids && models.MaturityRank(limit) > models.MaturityRank(models.MaturityPG) {
		limit = models.MaturityPG
	}

	now := time.Now().UTC()
	p := &models.ProfileDoc{
		UserID:          userID,
		Name:            data.Name,
		AvatarColor:     data.AvatarColor,
		Kids:            data.Kids,
		MaturityLimit:   limit,
		PreferredGenres: data.PreferredGenres,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := s.profiles.Insert(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (s *ProfileService) List(ctx context.Context, userID int) ([]models.ProfileDoc, error) {
	return s.profiles.ListByUser(ctx, userID)
}

// GetOwned trae el perfil solo si pertenece a la cuenta.
func (s *ProfileService) GetOwned(ctx context.Context, userID int, profileID primitive.ObjectID) (*models.ProfileDoc, error) {
	p, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.UserID != userID {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (s *ProfileService) Update(ctx context.Context, userID int, profileID primitive.ObjectID, data UpdateProfileData) error {
	p, err := s.GetOwned(ctx, userID, profileID)
	if err != nil {
		return err
	}

	update := bson.M{}

	if data.Name != nil {
		if *data.Name == "" {
			return fmt.Errorf("name cannot be empty")
		}
		siblings, err := s.profiles.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, sib := range siblings {
			if sib.ID != profileID && sib.Name == *data.Name {
				return fmt.Errorf("profile name already in use")
			}
		}
		update["name"] = *data.Name
	}
	if data.AvatarColor != nil {
		update["avatarColor"] = *data.AvatarColor
	}

	kids := p.Kids
	if data.Kids != nil {
		kids = *data.Kids
		update["kids"] = kids
	}

	limit := p.MaturityLimit
	if data.MaturityLimit != nil {
		if !validMaturity(*data.MaturityLimit) {
			return fmt.Errorf("invalid maturityLimit (must be G|PG|PG-13|R)")
		}
		limit = *data.MaturityLimit
	}
	if kids && models.MaturityRank(limit) > models.MaturityRank(models.MaturityPG) {
		limit = models.MaturityPG
	}
	if limit != p.MaturityLimit || data.MaturityLimit != nil || data.Kids != nil {
		update["maturityLimit"] = limit
	}

	if data.PreferredGenres != nil {
		update["preferredGenres"] = *data.PreferredGenres
	}

	if len(update) == 0 {
		return fmt.Errorf("no fields to update")
	}
	update["updatedAt"] = time.Now().UTC()

	return s.profiles.UpdateByID(ctx, profileID, update)
}

// Delete borra un perfil propio. El último perfil de la cuenta no se borra.
func (s *ProfileService) Delete(ctx context.Context, userID int, profileID primitive.ObjectID) error {
	if _, err := s.GetOwned(ctx, userID, profileID); err != nil {
		return err
	}

	count, err := s.profiles.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return fmt.Errorf("cannot delete the last profile of the account")
	}

	return s.profiles.DeleteByID(ctx, profileID)
}
