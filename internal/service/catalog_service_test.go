package service

import (
	"context"
	"fmt"
	"testing"

	"streamflix/internal/models"
	"streamflix/internal/repository"
	"streamflix/internal/transcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func readyAsset(files ...string) *models.AssetInfo {
	a := &models.AssetInfo{Status: models.AssetStatusReady}
	for _, f := range files {
		a.Renditions = append(a.Renditions, models.Rendition{Name: "720p", File: f, Width: 1280, Height: 720})
	}
	return a
}

func noDispatch(_ context.Context, _ *transcode.PrepareTask) (*transcode.PrepareResult, error) {
	return nil, fmt.Errorf("no hay nodos en este test")
}

func TestAllowedMaturities(t *testing.T) {
	assert.Equal(t, []string{"G"}, allowedMaturities(models.MaturityG))
	assert.Equal(t, []string{"G", "PG"}, allowedMaturities(models.MaturityPG))
	assert.Equal(t, []string{"G", "PG", "PG-13"}, allowedMaturities(models.MaturityPG13))
	assert.Equal(t, []string{"G", "PG", "PG-13", "R"}, allowedMaturities(models.MaturityR))
	// desconocido cuenta como R
	assert.Len(t, allowedMaturities("XXX"), 4)
}

func TestSearchMaturityCeiling(t *testing.T) {
	ctx := context.Background()
	videos := newFakeVideoStore(
		&models.VideoDoc{VideoID: 1, Title: "Matrix", MaturityRating: models.MaturityR},
		&models.VideoDoc{VideoID: 2, Title: "Shrek", MaturityRating: models.MaturityPG},
		&models.VideoDoc{VideoID: 3, Title: "Coco", MaturityRating: models.MaturityG},
	)
	svc := NewCatalogService(videos, newFakeCategoryStore(), newFakeWatchStore(), noDispatch)

	t.Run("sin techo devuelve todo", func(t *testing.T) {
		out, err := svc.Search(ctx, repository.SearchParams{Limit: 20}, "")
		require.NoError(t, err)
		assert.Len(t, out, 3)
	})

	t.Run("techo PG excluye los R", func(t *testing.T) {
		out, err := svc.Search(ctx, repository.SearchParams{Limit: 20}, models.MaturityPG)
		require.NoError(t, err)
		require.Len(t, out, 2)
		for _, v := range out {
			assert.NotEqual(t, models.MaturityR, v.MaturityRating)
		}
	})

	t.Run("techo inválido", func(t *testing.T) {
		_, err := svc.Search(ctx, repository.SearchParams{Limit: 20}, "NC-17")
		assert.ErrorIs(t, err, ErrInvalidMaturity)
	})
}

func TestCategoryVideosCurated(t *testing.T) {
	ctx := context.Background()
	videos := newFakeVideoStore(
		&models.VideoDoc{VideoID: 1, Title: "Matrix", MaturityRating: models.MaturityR, Asset: readyAsset("720p.mp4")},
		&models.VideoDoc{VideoID: 2, Title: "Shrek", MaturityRating: models.MaturityPG, Asset: readyAsset("720p.mp4")},
		&models.VideoDoc{VideoID: 3, Title: "Coco", MaturityRating: models.MaturityG, Asset: readyAsset("720p.mp4")},
	)
	cats := newFakeCategoryStore(&models.CategoryDoc{
		Slug:     "destacados",
		Title:    "Destacados",
		Kind:     models.CategoryKindCurated,
		VideoIDs: []int{3, 1, 2, 99}, // 99 no existe
		Position: 0,
	})
	svc := NewCatalogService(videos, cats, newFakeWatchStore(), noDispatch)

	adulto := &models.ProfileDoc{ID: primitive.NewObjectID(), MaturityLimit: models.MaturityR}
	row, err := svc.CategoryVideos(ctx, "destacados", adulto, 20)
	require.NoError(t, err)
	require.NotNil(t, row)

	// respeta el orden curado y saltea los que no existen
	require.Len(t, row.Videos, 3)
	assert.Equal(t, "Coco", row.Videos[0].Title)
	assert.Equal(t, "Matrix", row.Videos[1].Title)
	assert.Equal(t, "Shrek", row.Videos[2].Title)

	// un perfil infantil no ve el título R
	peque := &models.ProfileDoc{ID: primitive.NewObjectID(), Kids: true, MaturityLimit: models.MaturityPG}
	row, err = svc.CategoryVideos(ctx, "destacados", peque, 20)
	require.NoError(t, err)
	require.Len(t, row.Videos, 2)
	assert.Equal(t, "Coco", row.Videos[0].Title)
	assert.Equal(t, "Shrek", row.Videos[1].Title)
}

func TestCategoryVideosGenre(t *testing.T) {
	ctx := context.Background()
	videos := newFakeVideoStore(
		&models.VideoDoc{VideoID: 1, Title: "Matrix", Genres: []string{"scifi"}, MaturityRating: models.MaturityPG13, Asset: readyAsset("720p.mp4")},
		&models.VideoDoc{VideoID: 2, Title: "Dune", Genres: []string{"scifi"}, MaturityRating: models.MaturityPG13}, // sin asset listo
		&models.VideoDoc{VideoID: 3, Title: "Coco", Genres: []string{"familia"}, MaturityRating: models.MaturityG, Asset: readyAsset("720p.mp4")},
	)
	cats := newFakeCategoryStore(&models.CategoryDoc{
		Slug:  "scifi",
		Title: "Ciencia Ficción",
		Kind:  models.CategoryKindGenre,
		Genre: "scifi",
	})
	svc := NewCatalogService(videos, cats, newFakeWatchStore(), noDispatch)

	profile := &models.ProfileDoc{ID: primitive.NewObjectID(), MaturityLimit: models.MaturityR}
	row, err := svc.CategoryVideos(ctx, "scifi", profile, 20)
	require.NoError(t, err)

	// solo los reproducibles del género
	require.Len(t, row.Videos, 1)
	assert.Equal(t, "Matrix", row.Videos[0].Title)

	// slug inexistente devuelve nil sin error
	row, err = svc.CategoryVideos(ctx, "nada", profile, 20)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestHome(t *testing.T) {
	ctx := context.Background()
	profileID := primitive.NewObjectID()
	videos := newFakeVideoStore(
		&models.VideoDoc{VideoID: 1, Title: "Matrix", Genres: []string{"scifi"}, MaturityRating: models.MaturityPG13, DurationSeconds: 8000, Asset: readyAsset("720p.mp4")},
		&models.VideoDoc{VideoID: 2, Title: "Coco", Genres: []string{"familia"}, MaturityRating: models.MaturityG, Asset: readyAsset("720p.mp4")},
	)
	cats := newFakeCategoryStore(
		&models.CategoryDoc{Slug: "scifi", Title: "Ciencia Ficción", Kind: models.CategoryKindGenre, Genre: "scifi", Position: 1},
		&models.CategoryDoc{Slug: "familia", Title: "Familia", Kind: models.CategoryKindGenre, Genre: "familia", Position: 0},
		&models.CategoryDoc{Slug: "terror", Title: "Terror", Kind: models.CategoryKindGenre, Genre: "terror", Position: 2},
	)
	watch := newFakeWatchStore()
	require.NoError(t, watch.UpsertProgress(ctx, profileID, 1, 1200, false))

	svc := NewCatalogService(videos, cats, watch, noDispatch)
	profile := &models.ProfileDoc{ID: profileID, MaturityLimit: models.MaturityR}

	home, err := svc.Home(ctx, profile)
	require.NoError(t, err)

	require.Len(t, home.ContinueWatching, 1)
	assert.Equal(t, "Matrix", home.ContinueWatching[0].Video.Title)
	assert.Equal(t, 1200, home.ContinueWatching[0].PositionSeconds)

	// las filas vacías (terror) no aparecen, el resto respeta position
	require.Len(t, home.Rows, 2)
	assert.Equal(t, "familia", home.Rows[0].Slug)
	assert.Equal(t, "scifi", home.Rows[1].Slug)
}

func TestCreateVideo(t *testing.T) {
	ctx := context.Background()
	videos := newFakeVideoStore()
	svc := NewCatalogService(videos, newFakeCategoryStore(), newFakeWatchStore(), noDispatch)

	year := 1999
	v, err := svc.CreateVideo(ctx, &models.VideoCreateRequest{Title: "Matrix", Year: &year, Genres: []string{"scifi"}})
	require.NoError(t, err)
	assert.Equal(t, 1, v.VideoID)
	// sin clasificación explícita queda en PG-13
	assert.Equal(t, models.MaturityPG13, v.MaturityRating)
	assert.Equal(t, models.AssetStatusNone, v.Asset.Status)

	// mismo título + año es duplicado
	_, err = svc.CreateVideo(ctx, &models.VideoCreateRequest{Title: "Matrix", Year: &year})
	assert.ErrorIs(t, err, ErrVideoAlreadyExists)

	// mismo título con otro año no
	otro := 2021
	v2, err := svc.CreateVideo(ctx, &models.VideoCreateRequest{Title: "Matrix", Year: &otro})
	require.NoError(t, err)
	assert.Equal(t, 2, v2.VideoID)
}

func TestUpdateVideoPartial(t *testing.T) {
	ctx := context.Background()
	videos := newFakeVideoStore(&models.VideoDoc{VideoID: 1, Title: "Matrix", MaturityRating: models.MaturityPG13, Director: "Wachowski"})
	svc := NewCatalogService(videos, newFakeCategoryStore(), newFakeWatchStore(), noDispatch)

	titulo := "The Matrix"
	v, err := svc.UpdateVideo(ctx, 1, &models.VideoUpdateRequest{Title: &titulo})
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", v.Title)
	// lo no enviado no se toca
	assert.Equal(t, "Wachowski", v.Director)

	mala := "NC-17"
	_, err = svc.UpdateVideo(ctx, 1, &models.VideoUpdateRequest{MaturityRating: &mala})
	assert.ErrorContains(t, err, "invalid maturityRating")

	v, err = svc.UpdateVideo(ctx, 99, &models.VideoUpdateRequest{Title: &titulo})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestUpsertCategoryValidations(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(newFakeVideoStore(), newFakeCategoryStore(), newFakeWatchStore(), noDispatch)

	err := svc.UpsertCategory(ctx, &models.CategoryDoc{Slug: "", Title: "X", Kind: models.CategoryKindGenre})
	assert.ErrorContains(t, err, "required")

	err = svc.UpsertCategory(ctx, &models.CategoryDoc{Slug: "x", Title: "X", Kind: models.CategoryKindGenre})
	assert.ErrorContains(t, err, "genre is required")

	err = svc.UpsertCategory(ctx, &models.CategoryDoc{Slug: "x", Title: "X", Kind: "playlist"})
	assert.ErrorContains(t, err, "invalid kind")

	err = svc.UpsertCategory(ctx, &models.CategoryDoc{Slug: "x", Title: "X", Kind: models.CategoryKindCurated})
	assert.NoError(t, err)
}

func TestRegisterSource(t *testing.T) {
	ctx := context.Background()

	t.Run("nodo responde ready", func(t *testing.T) {
		videos := newFakeVideoStore(&models.VideoDoc{VideoID: 1, Title: "Matrix"})
		dispatch := func(_ context.Context, task *transcode.PrepareTask) (*transcode.PrepareResult, error) {
			return &transcode.PrepareResult{
				VideoID:    task.VideoID,
				Status:     models.AssetStatusReady,
				Renditions: transcode.DefaultLadder,
			}, nil
		}
		svc := NewCatalogService(videos, newFakeCategoryStore(), newFakeWatchStore(), dispatch)

		v, err := svc.RegisterSource(ctx, 1, "matrix.mp4")
		require.NoError(t, err)
		assert.Equal(t, models.AssetStatusReady, v.Asset.Status)
		assert.Equal(t, "matrix.mp4", v.Asset.SourceKey)
		assert.Len(t, v.Asset.Renditions, len(transcode.DefaultLadder))

		got, _ := videos.GetByID(ctx, 1)
		assert.Equal(t, models.AssetStatusReady, got.Asset.Status)
	})

	t.Run("despacho falla, queda pending", func(t *testing.T) {
		videos := newFakeVideoStore(&models.VideoDoc{VideoID: 1, Title: "Matrix"})
		svc := NewCatalogService(videos, newFakeCategoryStore(), newFakeWatchStore(), noDispatch)

		v, err := svc.RegisterSource(ctx, 1, "matrix.mp4")
		require.NoError(t, err)
		assert.Equal(t, models.AssetStatusPending, v.Asset.Status)

		got, _ := videos.GetByID(ctx, 1)
		assert.Equal(t, models.AssetStatusPending, got.Asset.Status)
	})

	t.Run("nodo responde failed", func(t *testing.T) {
		videos := newFakeVideoStore(&models.VideoDoc{VideoID: 1, Title: "Matrix"})
		dispatch := func(_ context.Context, task *transcode.PrepareTask) (*transcode.PrepareResult, error) {
			return &transcode.PrepareResult{VideoID: task.VideoID, Status: models.AssetStatusFailed, Error: "fuente no encontrada"}, nil
		}
		svc := NewCatalogService(videos, newFakeCategoryStore(), newFakeWatchStore(), dispatch)

		v, err := svc.RegisterSource(ctx, 1, "matrix.mp4")
		require.NoError(t, err)
		assert.Equal(t, models.AssetStatusFailed, v.Asset.Status)
		assert.Equal(t, "fuente no encontrada", v.Asset.Error)
		assert.Empty(t, v.Asset.Renditions)
	})

	t.Run("validaciones", func(t *testing.T) {
		videos := newFakeVideoStore(&models.VideoDoc{VideoID: 1, Title: "Matrix"})
		svc := NewCatalogService(videos, newFakeCategoryStore(), newFakeWatchStore(), noDispatch)

		_, err := svc.RegisterSource(ctx, 1, "")
		assert.ErrorContains(t, err, "sourceKey is required")

		v, err := svc.RegisterSource(ctx, 99, "x.mp4")
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}
