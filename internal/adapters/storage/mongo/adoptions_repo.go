package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"pet-adoption-api/internal/domain/adoptions"
)

type AdoptionsRepo struct {
	col *mongo.Collection
}

func NewAdoptionsRepo(db *mongo.Database) *AdoptionsRepo {
	return &AdoptionsRepo{col: db.Collection(colAdoptions)}
}

func (r *AdoptionsRepo) Create(ctx context.Context, req adoptions.Request) error {
	_, err := r.col.InsertOne(ctx, req)
	return err
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	var req adoptions.Request
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return adoptions.Request{}, adoptions.ErrNotFound
		}
		return adoptions.Request{}, err
	}
	return req, nil
}

// UpdateStatus filtra también por el estado actual: si otro request ya
// moderó la solicitud no hay match.
func (r *AdoptionsRepo) UpdateStatus(ctx context.Context, id string, from, to adoptions.Status, at time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "estado": from},
		bson.M{"$set": bson.M{"estado": to, "updatedAt": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return adoptions.ErrNotFound
	}
	return adoptions.ErrInvalidTransition
}

func (r *AdoptionsRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Request, error) {
	return r.find(ctx, bson.M{"idUsuario": userID})
}

func (r *AdoptionsRepo) ListByShelter(ctx context.Context, shelterID string, status adoptions.Status) ([]adoptions.Request, error) {
	filter := bson.M{"idRefugio": shelterID}
	if status != "" {
		filter["estado"] = status
	}
	return r.find(ctx, filter)
}

func (r *AdoptionsRepo) find(ctx context.Context, filter bson.M) ([]adoptions.Request, error) {
	cur, err := r.col.Find(ctx, filter, newestFirst("fechaSolicitud"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]adoptions.Request, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
