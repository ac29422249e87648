package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Valores de pulgar permitidos.
const (
	RatingUp   = "up"
	RatingDown = "down"
)

// Lo que está en Mongo.
type RatingDoc struct {
	ProfileID primitive.ObjectID `json:"profileId" bson:"profileId"`
	VideoID   int                `json:"videoId" bson:"videoId"`
	Value     string             `json:"value" bson:"value"` // up|down
	Timestamp int64              `json:"timestamp" bson:"timestamp"`
}
