package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"pet-adoption-api/internal/domain/animals"
)

type AnimalsRepo struct {
	col *mongo.Collection
}

func NewAnimalsRepo(db *mongo.Database) *AnimalsRepo {
	return &AnimalsRepo{col: db.Collection(colAnimals)}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	var a animals.Animal
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) ListAvailable(ctx context.Context) ([]animals.Animal, error) {
	return r.find(ctx, bson.M{"adoptado": false})
}

func (r *AnimalsRepo) ListByShelter(ctx context.Context, shelterID string) ([]animals.Animal, error) {
	return r.find(ctx, bson.M{"idRefugio": shelterID})
}

func (r *AnimalsRepo) SetAdopted(ctx context.Context, id string, adopted bool) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"adoptado": adopted, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) find(ctx context.Context, filter bson.M) ([]animals.Animal, error) {
	cur, err := r.col.Find(ctx, filter, newestFirst("createdAt"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]animals.Animal, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
