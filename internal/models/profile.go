package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Clasificaciones de madurez, de menor a mayor.
const (
	MaturityG    = "G"
	MaturityPG   = "PG"
	MaturityPG13 = "PG-13"
	MaturityR    = "R"
)

// MaturityRank devuelve el orden de una clasificación (G=0 .. R=3).
// Clasificaciones desconocidas cuentan como R para no filtrar de menos.
func MaturityRank(rating string) int {
	switch rating {
	case MaturityG:
		return 0
	case MaturityPG:
		return 1
	case MaturityPG13:
		return 2
	default:
		return 3
	}
}

// Límite por cuenta, igual que el producto real.
const MaxProfilesPerUser = 5

// ProfileDoc es un contexto de visualización dentro de una cuenta.
type ProfileDoc struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          int                `json:"userId" bson:"userId"`
	Name            string             `json:"name" bson:"name"`
	AvatarColor     string             `json:"avatarColor,omitempty" bson:"avatarColor,omitempty"`
	Kids            bool               `json:"kids" bson:"kids"`
	MaturityLimit   string             `json:"maturityLimit" bson:"maturityLimit"` // G|PG|PG-13|R
	PreferredGenres []string           `json:"preferredGenres,omitempty" bson:"preferredGenres,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}
