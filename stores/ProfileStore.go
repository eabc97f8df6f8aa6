package stores

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/telugujayaprakash/myprofileDashboard/database"
	"github.com/telugujayaprakash/myprofileDashboard/models"
)

type mongoProfileStore struct {
	coll *mongo.Collection
}

func NewProfileStore(db *mongo.Database) ProfileStore {
	return &mongoProfileStore{coll: db.Collection(database.ProfileCollection)}
}

func (s *mongoProfileStore) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.coll.FindOne(ctx, bson.M{"userid": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *mongoProfileStore) EnsureExists(ctx context.Context, userID, username string) error {
	skeleton := models.NewProfile(userID, username)
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$setOnInsert": skeleton},
		options.Update().SetUpsert(true),
	)
	// A concurrent EnsureExists can race the upsert into the unique index;
	// the document exists either way.
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (s *mongoProfileStore) UpdateData(ctx context.Context, userID string, upd ProfileDataUpdate) (*models.Profile, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.DisplayPicture != nil {
		set["displayPicture"] = *upd.DisplayPicture
	}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Profession != nil {
		set["profession"] = *upd.Profession
	}
	if upd.DateOfBirth != nil {
		set["dateOfBirth"] = *upd.DateOfBirth
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.RelationshipStatus != nil {
		set["relationshipStatus"] = *upd.RelationshipStatus
	}
	if upd.SocialMediaLinks != nil {
		set["socialMediaLinks"] = upd.SocialMediaLinks
	}
	if upd.IsProfileComplete != nil {
		set["isProfileComplete"] = *upd.IsProfileComplete
	}

	var profile models.Profile
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddFollowEdge updates the two profile documents with $addToSet, actor
// first. $addToSet keeps both sides idempotent, so a concurrent duplicate
// follow cannot push a second copy of either edge.
func (s *mongoProfileStore) AddFollowEdge(ctx context.Context, actorID, targetID string) (int, int, error) {
	actor, err := s.updateAdjacency(ctx, actorID, bson.M{"$addToSet": bson.M{"following": targetID}})
	if err != nil {
		return 0, 0, err
	}
	target, err := s.updateAdjacency(ctx, targetID, bson.M{"$addToSet": bson.M{"followers": actorID}})
	if err != nil {
		return len(actor.Following), 0, err
	}
	return len(actor.Following), len(target.Followers), nil
}

func (s *mongoProfileStore) RemoveFollowEdge(ctx context.Context, actorID, targetID string) (int, int, error) {
	actor, err := s.updateAdjacency(ctx, actorID, bson.M{"$pull": bson.M{"following": targetID}})
	if err != nil {
		return 0, 0, err
	}
	target, err := s.updateAdjacency(ctx, targetID, bson.M{"$pull": bson.M{"followers": actorID}})
	if err != nil {
		return len(actor.Following), 0, err
	}
	return len(actor.Following), len(target.Followers), nil
}

func (s *mongoProfileStore) updateAdjacency(ctx context.Context, userID string, update bson.M) (*models.Profile, error) {
	update["$set"] = bson.M{"updatedAt": time.Now().UTC()}

	var profile models.Profile
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
