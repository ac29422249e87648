package service

import (
	"context"
	"testing"

	"streamflix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTitleRequestFixture() (*TitleRequestService, *fakeTitleRequestStore, *fakeVideoStore) {
	requests := newFakeTitleRequestStore()
	videos := newFakeVideoStore()
	catalog := NewCatalogService(videos, newFakeCategoryStore(), newFakeWatchStore(), noDispatch)
	return NewTitleRequestService(requests, catalog), requests, videos
}

func TestTitleRequestCreate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTitleRequestFixture()

	year := 2010
	tr, err := svc.Create(ctx, 1, CreateTitleRequestData{Title: "Inception", Year: &year, Comment: "por favor"})
	require.NoError(t, err)
	assert.False(t, tr.ID.IsZero())
	assert.Equal(t, models.TitleRequestStatusPending, tr.Status)

	_, err = svc.Create(ctx, 1, CreateTitleRequestData{})
	assert.ErrorContains(t, err, "title is required")
}

func TestTitleRequestApprove(t *testing.T) {
	ctx := context.Background()
	svc, requests, videos := newTitleRequestFixture()

	year := 2010
	tr, err := svc.Create(ctx, 1, CreateTitleRequestData{Title: "Inception", Year: &year})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TitleRequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedVideoID)

	// el video quedó creado en el catálogo
	v, _ := videos.GetByID(ctx, *approved.ApprovedVideoID)
	require.NotNil(t, v)
	assert.Equal(t, "Inception", v.Title)

	// aprobar dos veces es conflicto
	_, err = svc.Approve(ctx, tr.ID)
	assert.ErrorIs(t, err, ErrTitleRequestNotPending)

	got, _ := requests.FindByID(ctx, tr.ID)
	assert.Equal(t, models.TitleRequestStatusApproved, got.Status)
}

func TestTitleRequestReject(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTitleRequestFixture()

	tr, err := svc.Create(ctx, 1, CreateTitleRequestData{Title: "Inception"})
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, tr.ID, "ya está en otro catálogo")
	require.NoError(t, err)
	assert.Equal(t, models.TitleRequestStatusRejected, rejected.Status)
	assert.Equal(t, "ya está en otro catálogo", rejected.Reason)

	// un pedido rechazado no se puede aprobar después
	_, err = svc.Approve(ctx, tr.ID)
	assert.ErrorIs(t, err, ErrTitleRequestNotPending)
}
