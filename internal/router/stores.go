package router

import (
	"context"
	"fmt"

	"pet-adoption-api/internal/adapters/files/disk"
	fmem "pet-adoption-api/internal/adapters/files/memory"
	fminio "pet-adoption-api/internal/adapters/files/minio"
	fs3 "pet-adoption-api/internal/adapters/files/s3"
	mem "pet-adoption-api/internal/adapters/storage/memory"
	mgo "pet-adoption-api/internal/adapters/storage/mongo"
	pg "pet-adoption-api/internal/adapters/storage/postgres"
	"pet-adoption-api/internal/config"
	"pet-adoption-api/internal/domain/adoptions"
	"pet-adoption-api/internal/domain/animals"
	"pet-adoption-api/internal/domain/shelters"
	"pet-adoption-api/internal/domain/users"
	"pet-adoption-api/internal/ports/files"
)

// Stores son los repos de los cuatro módulos sobre un mismo backend.
type Stores struct {
	Users     users.Repository
	Shelters  shelters.Repository
	Animals   animals.Repository
	Adoptions adoptions.Repository
}

func MemoryStores() Stores {
	return Stores{
		Users:     mem.NewUserRepo(),
		Shelters:  mem.NewShelterRepo(),
		Animals:   mem.NewAnimalRepo(),
		Adoptions: mem.NewAdoptionRepo(),
	}
}

// OpenStores abre el backend de STORE_DRIVER y prepara esquema/índices.
// close libera la conexión.
func OpenStores(ctx context.Context, cfg *config.Config) (Stores, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.Store.Driver {
	case "", "memory":
		return MemoryStores(), noop, nil

	case "mongo", "mongodb":
		client, db, err := mgo.Open(ctx, cfg.MongoDB)
		if err != nil {
			return Stores{}, noop, err
		}
		if err := mgo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return Stores{}, noop, err
		}
		return Stores{
			Users:     mgo.NewUsersRepo(db),
			Shelters:  mgo.NewSheltersRepo(db),
			Animals:   mgo.NewAnimalsRepo(db),
			Adoptions: mgo.NewAdoptionsRepo(db),
		}, client.Disconnect, nil

	case "postgres":
		db, err := pg.Open(cfg.Store.DSN)
		if err != nil {
			return Stores{}, noop, err
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return Stores{}, noop, err
		}
		return Stores{
			Users:     pg.NewUsersRepo(db),
			Shelters:  pg.NewSheltersRepo(db),
			Animals:   pg.NewAnimalsRepo(db),
			Adoptions: pg.NewAdoptionsRepo(db),
		}, func(context.Context) error { return db.Close() }, nil
	}

	return Stores{}, noop, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
}

// OpenFileStore arma el almacenamiento de adjuntos de FILE_STORAGE.
func OpenFileStore(ctx context.Context, cfg *config.Config) (files.Storage, error) {
	switch cfg.Files.Driver {
	case "", "disk":
		st, err := disk.New(cfg.Files.UploadDir)
		if err != nil {
			return nil, err
		}
		return st, nil
	case "memory":
		return fmem.New(), nil
	case "minio":
		st, err := fminio.New(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		return st, nil
	case "s3", "r2":
		return fs3.New(cfg.S3), nil
	}
	return nil, fmt.Errorf("unknown FILE_STORAGE %q", cfg.Files.Driver)
}
