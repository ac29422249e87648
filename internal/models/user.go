package models

// Planes de suscripción permitidos.
const (
	PlanBasic    = "basic"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

type UserDoc struct {
	UserID       int    `json:"userId" bson:"userId"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"passwordHash" bson:"passwordHash"`
	Role         string `json:"role" bson:"role"` // user|admin
	Plan         string `json:"plan" bson:"plan"` // basic|standard|premium
	CreatedAt    string `json:"createdAt" bson:"createdAt"`
	UpdatedAt    string `json:"updatedAt" bson:"updatedAt"`
}
