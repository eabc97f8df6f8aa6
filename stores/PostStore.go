package stores

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/telugujayaprakash/myprofileDashboard/database"
	"github.com/telugujayaprakash/myprofileDashboard/models"
)

type mongoPostStore struct {
	coll *mongo.Collection
}

func NewPostStore(db *mongo.Database) PostStore {
	return &mongoPostStore{coll: db.Collection(database.PostCollection)}
}

func (s *mongoPostStore) Insert(ctx context.Context, post *models.Post) error {
	_, err := s.coll.InsertOne(ctx, post)
	return err
}

func (s *mongoPostStore) findOne(ctx context.Context, filter bson.M) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOne(ctx, filter).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *mongoPostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *mongoPostStore) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.findOne(ctx, bson.M{"_id": id, "isActive": true})
}

func (s *mongoPostStore) FindActiveByAuthors(ctx context.Context, authorIDs []string, limit int) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}

	filter := bson.M{"userid": bson.M{"$in": authorIDs}, "isActive": true}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ToggleLike runs a single pipeline update: membership is flipped with
// $setDifference/$concatArrays and the count is recomputed with $size in the
// same document write, so two racing toggles by one user converge instead of
// double-counting.
func (s *mongoPostStore) ToggleLike(ctx context.Context, id primitive.ObjectID, userID string) (*models.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"likes.users": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{userID, "$likes.users"}},
				bson.M{"$setDifference": bson.A{"$likes.users", bson.A{userID}}},
				bson.M{"$concatArrays": bson.A{"$likes.users", bson.A{userID}}},
			}},
		}}},
		{{Key: "$set", Value: bson.M{
			"likes.count": bson.M{"$size": "$likes.users"},
			"updatedAt":   time.Now().UTC(),
		}}},
	}
	return s.updateActive(ctx, id, pipeline)
}

func (s *mongoPostStore) AddShare(ctx context.Context, id primitive.ObjectID, userID string) (*models.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"shares.users": bson.M{"$setUnion": bson.A{"$shares.users", bson.A{userID}}},
		}}},
		{{Key: "$set", Value: bson.M{
			"shares.count": bson.M{"$size": "$shares.users"},
			"updatedAt":    time.Now().UTC(),
		}}},
	}
	return s.updateActive(ctx, id, pipeline)
}

func (s *mongoPostStore) AppendComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return s.updateActive(ctx, id, update)
}

func (s *mongoPostStore) updateActive(ctx context.Context, id primitive.ObjectID, update interface{}) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "isActive": true},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *mongoPostStore) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoPostStore) Search(ctx context.Context, query string, limit int) ([]models.Post, error) {
	filter := bson.M{
		"textmsg":  primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"},
		"isActive": true,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
