package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WatchEntryDoc guarda el progreso de un perfil sobre un video.
// También lleva el flag de Mi Lista para no duplicar colecciones.
type WatchEntryDoc struct {
	ProfileID       primitive.ObjectID `json:"profileId" bson:"profileId"`
	VideoID         int                `json:"videoId" bson:"videoId"`
	PositionSeconds int                `json:"positionSeconds" bson:"positionSeconds"`
	Completed       bool               `json:"completed" bson:"completed"`
	InList          bool               `json:"inList" bson:"inList"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ContinueWatchingItem es una entrada de la fila "Seguir viendo".
type ContinueWatchingItem struct {
	Video           VideoDoc `json:"video"`
	PositionSeconds int      `json:"positionSeconds"`
	UpdatedAt       string   `json:"updatedAt"`
}
