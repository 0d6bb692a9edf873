package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"pet-adoption-api/internal/config"
)

// Colecciones (mismos nombres que usa la app).
const (
	colUsers     = "usuarios"
	colShelters  = "refugios"
	colAnimals   = "animales"
	colAdoptions = "solicitudes_adopcion"
)

// Open conecta, hace ping y devuelve la base configurada.
func Open(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetMaxPoolSize(cfg.PoolSize).
		SetMaxConnIdleTime(60 * time.Second).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes crea los índices que usan las consultas. Es idempotente.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		colShelters: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		colAnimals: {
			{Keys: bson.D{{Key: "adoptado", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "idRefugio", Value: 1}}},
		},
		colAdoptions: {
			{Keys: bson.D{{Key: "idRefugio", Value: 1}, {Key: "estado", Value: 1}, {Key: "fechaSolicitud", Value: -1}}},
			{Keys: bson.D{{Key: "idUsuario", Value: 1}, {Key: "fechaSolicitud", Value: -1}}},
		},
	}

	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes %s: %w", col, err)
		}
	}
	return nil
}

func newestFirst(field string) *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: field, Value: -1}})
}
