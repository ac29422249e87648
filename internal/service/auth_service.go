package service

import (
	"context"
	"fmt"
	"time"

	"streamflix/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// UserStore es lo que el servicio necesita de la colección de usuarios.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.UserDoc, error)
	FindByID(ctx context.Context, userID int) (*models.UserDoc, error)
	GetNextUserID(ctx context.Context) (int, error)
	Insert(ctx context.Context, u *models.UserDoc) error
	UpdateByID(ctx context.Context, userID int, update bson.M) error
	Search(ctx context.Context, role, q string, limit, offset int) ([]models.UserDoc, error)
}

type AuthService struct {
	users     UserStore
	profiles  ProfileStore
	jwtSecret []byte
}

type RegisterUserData struct {
	Email    string
	Password string
	Role     string
	Plan     string
}

type UpdateUserData struct {
	Email    *string
	Role     *string
	Password *string
	Plan     *string
}

func NewAuthService(users UserStore, profiles ProfileStore, secret string) *AuthService {
	return &AuthService{users: users, profiles: profiles, jwtSecret: []byte(secret)}
}

func validPlan(plan string) bool {
	return plan == models.PlanBasic || plan == models.PlanStandard || plan == models.PlanPremium
}

// ================== REGISTER & LOGIN ==================

// Register crea la cuenta y su perfil por defecto.
func (s *AuthService) Register(ctx context.Context, data RegisterUserData) (*models.UserDoc, error) {
	existing, err := s.users.FindByEmail(ctx, data.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	nextID, err := s.users.GetNextUserID(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := data.Role
	if role == "" {
		role = "user"
	}
	if role != "user" && role != "admin" {
		return nil, fmt.Errorf("invalid role (must be user|admin)")
	}

	plan := data.Plan
	if plan == "" {
		plan = models.PlanBasic
	}
	if !validPlan(plan) {
		return nil, fmt.Errorf("invalid plan (must be basic|standard|premium)")
	}

	now := time.Now().UTC().Format(time.RFC3339)

	u := &models.UserDoc{
		UserID:       nextID,
		Email:        data.Email,
		PasswordHash: string(hash),
		Role:         role,
		Plan:         plan,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}

	// perfil por defecto de la cuenta; una cuenta sin perfiles no puede
	// hacer nada, así que si falla, falla el registro
	nowT := time.Now().UTC()
	_, err = s.profiles.Insert(ctx, &models.ProfileDoc{
		UserID:        u.UserID,
		Name:          "Principal",
		MaturityLimit: models.MaturityR,
		CreatedAt:     nowT,
		UpdatedAt:     nowT,
	})
	if err != nil {
		return nil, fmt.Errorf("creating default profile: %w", err)
	}

	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserDoc, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		// mismo mensaje que password malo, no filtramos existencia
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.UserID,
		"role": u.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	sToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return sToken, u, nil
}

// ================== UPDATE / LIST ==================

// UpdateUser actualiza campos opcionales de un usuario.
func (s *AuthService) UpdateUser(ctx context.Context, userID int, data UpdateUserData) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user not found")
	}

	update := bson.M{}

	if data.Email != nil {
		if *data.Email == "" {
			return fmt.Errorf("email cannot be empty")
		}
		existing, err := s.users.FindByEmail(ctx, *data.Email)
		if err != nil {
			return err
		}
		if existing != nil && existing.UserID != userID {
			return fmt.Errorf("email already in use")
		}
		update["email"] = *data.Email
	}

	if data.Role != nil {
		if *data.Role != "user" && *data.Role != "admin" {
			return fmt.Errorf("invalid role (must be user|admin)")
		}
		update["role"] = *data.Role
	}

	if data.Password != nil {
		if *data.Password == "" {
			return fmt.Errorf("password cannot be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*data.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		update["passwordHash"] = string(hash)
	}

	if data.Plan != nil {
		if !validPlan(*data.Plan) {
			return fmt.Errorf("invalid plan (must be basic|standard|premium)")
		}
		update["plan"] = *data.Plan
	}

	if len(update) == 0 {
		return fmt.Errorf("no fields to update")
	}

	update["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	return s.users.UpdateByID(ctx, userID, update)
}

func (s *AuthService) ListUsers(ctx context.Context, role, q string, limit, offset int) ([]models.UserDoc, error) {
	return s.users.Search(ctx, role, q, limit, offset)
}

func (s *AuthService) GetUserByID(ctx context.Context, userID int) (*models.UserDoc, error) {
	return s.users.FindByID(ctx, userID)
}
