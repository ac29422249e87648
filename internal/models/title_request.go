package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Estados posibles del pedido de título.
const (
	TitleRequestStatusPending  = "pending"
	TitleRequestStatusApproved = "approved"
	TitleRequestStatusRejected = "rejected"
)

// TitleRequest es un pedido de usuario para sumar un título al catálogo.
type TitleRequest struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          int                `json:"userId" bson:"userId"`
	Status          string             `json:"status" bson:"status"` // pending|approved|rejected
	Title           string             `json:"title" bson:"title"`
	Year            *int               `json:"year,omitempty" bson:"year,omitempty"`
	Comment         string             `json:"comment,omitempty" bson:"comment,omitempty"`
	ApprovedVideoID *int               `json:"approvedVideoId,omitempty" bson:"approvedVideoId,omitempty"`
	Reason          string             `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Body para rechazar un pedido.
type RejectTitleRequest struct {
	Reason string `json:"reason"`
}
