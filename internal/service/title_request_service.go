package service

import (
	"context"
	"fmt"
	"time"

	"streamflix/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrTitleRequestNotPending = fmt.Errorf("title request is not pending")

// TitleRequestStore es lo que el servicio necesita de la colección de pedidos.
type TitleRequestStore interface {
	Insert(ctx context.Context, req *models.TitleRequest) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.TitleRequest, error)
	ListByUser(ctx context.Context, userID, limit, offset int) ([]models.TitleRequest, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]models.TitleRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, update bson.M) error
}

type TitleRequestService struct {
	requests TitleRequestStore
	catalog  *CatalogService
}

func NewTitleRequestService(requests TitleRequestStore, catalog *CatalogService) *TitleRequestService {
	return &TitleRequestService{requests: requests, catalog: catalog}
}

type CreateTitleRequestData struct {
	Title   string
	Year    *int
	Comment string
}

func (s *TitleRequestService) Create(ctx context.Context, userID int, data CreateTitleRequestData) (*models.TitleRequest, error) {
	if data.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	now := time.Now().UTC()
	tr := &models.TitleRequest{
		UserID:    userID,
		Status:    models.TitleRequestStatusPending,
		Title:     data.Title,
		Year:      data.Year,
		Comment:   data.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.requests.Insert(ctx, tr)
	if err != nil {
		return nil, err
	}
	tr.ID = id
	return tr, nil
}

func (s *TitleRequestService) ListMine(ctx context.Context, userID, limit, offset int) ([]models.TitleRequest, error) {
	return s.requests.ListByUser(ctx, userID, limit, offset)
}

func (s *TitleRequestService) ListAll(ctx context.Context, status string, limit, offset int) ([]models.TitleRequest, error) {
	return s.requests.ListAll(ctx, status, limit, offset)
}

// Approve crea el video en el catálogo a partir del pedido y lo marca
// approved con el videoId resultante. Solo pedidos pending.
func (s *TitleRequestService) Approve(ctx context.Context, id primitive.ObjectID) (*models.TitleRequest, error) {
	tr, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, nil
	}
	if tr.Status != models.TitleRequestStatusPending {
		return nil, ErrTitleRequestNotPending
	}

	video, err := s.catalog.CreateVideo(ctx, &models.VideoCreateRequest{
		Title: tr.Title,
		Year:  tr.Year,
	})
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"status":          models.TitleRequestStatusApproved,
		"approvedVideoId": video.VideoID,
	}
	if err := s.requests.UpdateStatus(ctx, id, update); err != nil {
		return nil, err
	}

	tr.Status = models.TitleRequestStatusApproved
	tr.ApprovedVideoID = &video.VideoID
	return tr, nil
}

// Reject marca el pedido como rechazado con un motivo. Solo pedidos pending.
func (s *TitleRequestService) Reject(ctx context.Context, id primitive.ObjectID, reason string) (*models.TitleRequest, error) {
	tr, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, nil
	}
	if tr.Status != models.TitleRequestStatusPending {
		return nil, ErrTitleRequestNotPending
	}

	update := bson.M{
		"status": models.TitleRequestStatusRejected,
		"reason": reason,
	}
	if err := s.requests.UpdateStatus(ctx, id, update); err != nil {
		return nil, err
	}

	tr.Status = models.TitleRequestStatusRejected
	tr.Reason = reason
	return tr, nil
}
