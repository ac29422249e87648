package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"streamflix/internal/config"
	"streamflix/internal/db"
	"streamflix/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// seedFile es el formato del catálogo de arranque.
type seedFile struct {
	Videos     []models.VideoDoc    `json:"videos"`
	Categories []models.CategoryDoc `json:"categories"`
}

// Carga un catálogo inicial (videos + categorías) en Mongo con semántica
// de upsert, para levantar un entorno local con datos.
func main() {
	path := flag.String("file", "seed/catalog.json", "archivo JSON con el catálogo inicial")
	flag.Parse()

	cfg := config.Load()
	db.InitMongo(cfg)

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("[seed] no se pudo leer %s: %v", *path, err)
	}

	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatalf("[seed] JSON inválido: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)

	videos := db.DB().Collection("videos")
	for i := range data.Videos {
		v := &data.Videos[i]
		if v.CreatedAt == "" {
			v.CreatedAt = now
		}
		v.UpdatedAt = now
		if v.Asset == nil {
			v.Asset = &models.AssetInfo{Status: models.AssetStatusNone, UpdatedAt: now}
		}
		if v.ViewStats == nil {
			v.ViewStats = &models.ViewStats{}
		}
		if v.RatingStats == nil {
			v.RatingStats = &models.RatingStats{}
		}

		_, err := videos.ReplaceOne(ctx,
			bson.M{"videoId": v.VideoID},
			v,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			log.Fatalf("[seed] error upserteando video %d: %v", v.VideoID, err)
		}
	}
	log.Printf("[seed] %d videos cargados", len(data.Videos))

	categories := db.DB().Collection("categories")
	for i := range data.Categories {
		c := &data.Categories[i]
		_, err := categories.ReplaceOne(ctx,
			bson.M{"_id": c.Slug},
			c,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			log.Fatalf("[seed] error upserteando categoría %s: %v", c.Slug, err)
		}
	}
	log.Printf("[seed] %d categorías cargadas", len(data.Categories))
}
