package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RecItem struct {
	VideoID int     `bson:"videoId" json:"videoId"`
	Score   float64 `bson:"score"  json:"score"`
}

// Recommendation es el historial de una corrida de recomendaciones.
type Recommendation struct {
	ID        string             `bson:"_id,omitempty" json:"id"`
	ProfileID primitive.ObjectID `bson:"profileId"     json:"profileId"`
	Algo      string             `bson:"algo"          json:"algo"`
	Params    any                `bson:"params"        json:"params"`
	Items     []RecItem          `bson:"items"         json:"items"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}
