package db

import (
	"context"
	"log"
	"time"

	"streamflix/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client
var mongoDB *mongo.Database

func InitMongo(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("[mongo] error conectando: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("[mongo] ping falló: %v", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDB)
	log.Printf("[mongo] conectado a %s / DB=%s\n", cfg.MongoURI, cfg.MongoDB)

	ensureIndexes(ctx)
}

// ensureIndexes crea los índices que usan las queries más calientes del
// catálogo. Si alguno falla solo lo logueamos: el API puede operar igual.
func ensureIndexes(ctx context.Context) {
	idx := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"videos": {
			{Keys: bson.D{{Key: "videoId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "genres", Value: 1}}},
			{Keys: bson.D{{Key: "viewStats.count", Value: -1}}},
		},
		"profiles": {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		"watch_entries": {
			{Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "videoId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "updatedAt", Value: -1}}},
		},
		"ratings": {
			{Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "videoId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for coll, models := range idx {
		if _, err := mongoDB.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			log.Printf("[mongo] no se pudieron crear índices de %s: %v", coll, err)
		}
	}
}

func DB() *mongo.Database {
	return mongoDB
}

func Close(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	return mongoClient.Disconnect(ctx)
}
