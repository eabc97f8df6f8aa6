package stores

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/telugujayaprakash/myprofileDashboard/database"
	"github.com/telugujayaprakash/myprofileDashboard/models"
)

type mongoOTPStore struct {
	coll *mongo.Collection
}

func NewOTPStore(db *mongo.Database) OTPStore {
	return &mongoOTPStore{coll: db.Collection(database.OTPCollection)}
}

// Insert relies on the unique email index: while a challenge is outstanding
// a second insert for the same email fails with ErrDuplicate. Expired
// challenges are swept by the TTL index on expiresAt.
func (s *mongoOTPStore) Insert(ctx context.Context, challenge *models.OTPChallenge) error {
	_, err := s.coll.InsertOne(ctx, challenge)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *mongoOTPStore) FindByEmail(ctx context.Context, email string) (*models.OTPChallenge, error) {
	var challenge models.OTPChallenge
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&challenge)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (s *mongoOTPStore) DeleteByEmail(ctx context.Context, email string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"email": email})
	return err
}
