package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"pet-adoption-api/internal/domain/users"
)

type UsersRepo struct {
	col *mongo.Collection
}

func NewUsersRepo(db *mongo.Database) *UsersRepo {
	return &UsersRepo{col: db.Collection(colUsers)}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return users.ErrConflict
	}
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) findOne(ctx context.Context, filter bson.M) (users.User, error) {
	var u users.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}
