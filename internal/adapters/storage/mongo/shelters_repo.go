package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"pet-adoption-api/internal/domain/shelters"
)

type SheltersRepo struct {
	col *mongo.Collection
}

func NewSheltersRepo(db *mongo.Database) *SheltersRepo {
	return &SheltersRepo{col: db.Collection(colShelters)}
}

func (r *SheltersRepo) Create(ctx context.Context, s shelters.Shelter) error {
	_, err := r.col.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return shelters.ErrConflict
	}
	return err
}

func (r *SheltersRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *SheltersRepo) GetByEmail(ctx context.Context, email string) (shelters.Shelter, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *SheltersRepo) List(ctx context.Context) ([]shelters.Shelter, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]shelters.Shelter, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SheltersRepo) findOne(ctx context.Context, filter bson.M) (shelters.Shelter, error) {
	var s shelters.Shelter
	if err := r.col.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shelters.Shelter{}, shelters.ErrNotFound
		}
		return shelters.Shelter{}, err
	}
	return s, nil
}
