package service

import (
	"context"
	"testing"

	"streamflix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSaveProgressAutoComplete(t *testing.T) {
	ctx := context.Background()
	profileID := primitive.NewObjectID()

	videos := newFakeVideoStore(&models.VideoDoc{VideoID: 1, Title: "Matrix", DurationSeconds: 1000})
	watch := newFakeWatchStore()
	svc := NewWatchService(watch, videos)

	// por debajo del 95% queda como progreso normal
	require.NoError(t, svc.SaveProgress(ctx, profileID, 1, 900, false))
	e, _ := watch.GetOne(ctx, profileID, 1)
	assert.False(t, e.Completed)
	assert.Equal(t, 900, e.PositionSeconds)

	// al pasar el 95% se marca completado solo
	require.NoError(t, svc.SaveProgress(ctx, profileID, 1, 960, false))
	e, _ = watch.GetOne(ctx, profileID, 1)
	assert.True(t, e.Completed)
}

func TestSaveProgressValidations(t *testing.T) {
	ctx := context.Background()
	profileID := primitive.NewObjectID()
	svc := NewWatchService(newFakeWatchStore(), newFakeVideoStore())

	err := svc.SaveProgress(ctx, profileID, 1, -5, false)
	assert.ErrorContains(t, err, "cannot be negative")

	err = svc.SaveProgress(ctx, profileID, 99, 10, false)
	assert.ErrorContains(t, err, "not found")
}

func TestContinueWatching(t *testing.T) {
	ctx := context.Background()
	profileID := primitive.NewObjectID()

	videos := newFakeVideoStore(
		&models.VideoDoc{VideoID: 1, Title: "Matrix", DurationSeconds: 8000},
		&models.VideoDoc{VideoID: 2, Title: "Dune", DurationSeconds: 9000},
	)
	watch := newFakeWatchStore()
	svc := NewWatchService(watch, videos)

	require.NoError(t, svc.SaveProgress(ctx, profileID, 1, 1200, false))
	require.NoError(t, svc.SaveProgress(ctx, profileID, 2, 9000, false)) // completado

	items, err := svc.ContinueWatching(ctx, profileID, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Matrix", items[0].Video.Title)
	assert.Equal(t, 1200, items[0].PositionSeconds)
}

func TestMyList(t *testing.T) {
	ctx := context.Background()
	profileID := primitive.NewObjectID()

	videos := newFakeVideoStore(
		&models.VideoDoc{VideoID: 1, Title: "Matrix"},
		&models.VideoDoc{VideoID: 2, Title: "Dune"},
	)
	watch := newFakeWatchStore()
	svc := NewWatchService(watch, videos)

	require.NoError(t, svc.AddToList(ctx, profileID, 1))
	require.NoError(t, svc.AddToList(ctx, profileID, 2))
	require.NoError(t, svc.RemoveFromList(ctx, profileID, 2))

	// agregar un video inexistente falla
	err := svc.AddToList(ctx, profileID, 99)
	assert.ErrorContains(t, err, "not found")

	list, err := svc.MyList(ctx, profileID, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Matrix", list[0].Title)
}
