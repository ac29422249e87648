package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	_ "streamflix/docs" // swagger docs

	"streamflix/internal/cache"
	"streamflix/internal/config"
	"streamflix/internal/db"
	"streamflix/internal/handler"
	"streamflix/internal/repository"
	"streamflix/internal/service"
	"streamflix/internal/signer"
	"streamflix/internal/transcode"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Streamflix API
// @version 1.0
// @description API de streaming (catálogo, perfiles, playback firmado, recomendaciones)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	videoRepo := repository.NewVideoRepository()
	categoryRepo := repository.NewCategoryRepository()
	watchRepo := repository.NewWatchRepository()
	ratingRepo := repository.NewRatingRepository()
	recRepo := repository.NewRecommendationRepository()
	titleReqRepo := repository.NewTitleRequestRepository()

	// ==================================
	// Leer direcciones de nodos de assets
	// ==================================
	var assetNodes []string
	if env := os.Getenv("ASSET_NODE_ADDRS"); env != "" {
		for _, v := range strings.Split(env, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				assetNodes = append(assetNodes, v)
			}
		}
	}

	// fallback por si no hay variable de entorno (útil en local sin Docker)
	if len(assetNodes) == 0 {
		assetNodes = []string{"localhost:9101"}
	}

	dispatch := func(ctx context.Context, task *transcode.PrepareTask) (*transcode.PrepareResult, error) {
		return transcode.Dispatch(ctx, assetNodes, task)
	}

	// services
	profileSvc := service.NewProfileService(profileRepo)
	authSvc := service.NewAuthService(userRepo, profileRepo, cfg.JWTSecret)
	catalogSvc := service.NewCatalogService(videoRepo, categoryRepo, watchRepo, dispatch)
	watchSvc := service.NewWatchService(watchRepo, videoRepo)
	urlSigner := signer.New(cfg.URLSigningKey)
	playbackSvc := service.NewPlaybackService(videoRepo, watchRepo, urlSigner, cfg.AssetBaseURL, cfg.URLTTLSeconds)
	ratingSvc := service.NewRatingService(ratingRepo, videoRepo)
	recSvc := service.NewRecommendService(watchRepo, ratingRepo, videoRepo, recRepo)
	titleReqSvc := service.NewTitleRequestService(titleReqRepo, catalogSvc)
	adminAssetsSvc := service.NewAdminAssetsService(videoRepo, dispatch)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc, profileSvc)
	playbackH := handler.NewPlaybackHandler(playbackSvc, watchSvc, profileSvc)
	ratingH := handler.NewRatingHandler(ratingSvc, profileSvc)
	recH := handler.NewRecommendHandler(recSvc, profileSvc)
	titleReqH := handler.NewTitleRequestHandler(titleReqSvc)
	adminAssetsH := handler.NewAdminAssetsHandler(adminAssetsSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Catálogo (público)
	r.Get("/videos/search", catalogH.Search)
	r.Get("/videos/top", catalogH.Top)
	r.Get("/videos/{id}", catalogH.GetVideo)
	r.Get("/categories", catalogH.ListCategories)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		// ---- Endpoints /me (USER normal) ----
		r.Route("/me", func(r chi.Router) {
			r.Get("/profiles", profileH.List)
			r.Post("/profiles", profileH.Create)

			r.Route("/profiles/{pid}", func(r chi.Router) {
				r.Get("/", profileH.Get)
				r.Put("/", profileH.Update)
				r.Delete("/", profileH.Delete)

				r.Get("/home", catalogH.Home)
				r.Get("/categories/{slug}", catalogH.CategoryVideos)

				r.Post("/videos/{id}/play", playbackH.Play)
				r.Put("/videos/{id}/progress", playbackH.SaveProgress)
				r.Get("/continue-watching", playbackH.ContinueWatching)

				r.Get("/list", playbackH.MyList)
				r.Post("/list/{id}", playbackH.AddToList)
				r.Delete("/list/{id}", playbackH.RemoveFromList)

				r.Get("/ratings", ratingH.GetRatings)
				r.Post("/ratings", ratingH.PostRating)

				r.Get("/recommendations", recH.GetRecommendations)
				r.Get("/recommendations/history", recH.GetHistory)

				// WebSockets
				r.Get("/ws/progress", playbackH.ProgressWS)
				r.Get("/ws/recommendations", recH.GetRecommendationsWS)
			})

			// pedidos de títulos (USER)
			r.Get("/title-requests", titleReqH.ListMine)
			r.Post("/title-requests", titleReqH.Create)
		})

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			// gestión de usuarios
			r.Get("/users", authH.ListUsers)
			r.Get("/users/{id}", authH.GetUserByID)
			r.Put("/users/{id}/update", authH.UpdateUser)

			// gestión de catálogo
			r.Post("/admin/videos", catalogH.CreateVideo)
			r.Put("/admin/videos/{id}", catalogH.UpdateVideo)
			r.Post("/admin/videos/{id}/source", catalogH.RegisterSource)
			r.Put("/admin/categories", catalogH.UpsertCategory)
			r.Delete("/admin/categories/{slug}", catalogH.DeleteCategory)

			// pedidos de títulos (ADMIN)
			r.Get("/admin/title-requests", titleReqH.ListAll)
			r.Post("/admin/title-requests/{id}/approve", titleReqH.Approve)
			r.Post("/admin/title-requests/{id}/reject", titleReqH.Reject)

			// --- mantenimiento de assets ---
			handler.MountAdminAssetsRoutes(r, adminAssetsH)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
