package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/telugujayaprakash/myprofileDashboard/config"
)

const (
	UserCollection    = "users"
	ProfileCollection = "profiles"
	PostCollection    = "posts"
	OTPCollection     = "otps"
)

// Connect opens the Mongo client and pings the deployment. The caller owns
// the returned client and must Disconnect it on shutdown.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("database: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("database: ping: %w", err)
	}
	return client, client.Database(cfg.DBName), nil
}

// EnsureIndexes creates the indexes the stores rely on:
// unique userid/username/email on users, unique userid on profiles,
// unique email plus a TTL sweep on otps, and the feed sort indexes on posts.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection(UserCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("database: user indexes: %w", err)
	}

	profileIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}},
	}
	if _, err := db.Collection(ProfileCollection).Indexes().CreateMany(ctx, profileIndexes); err != nil {
		return fmt.Errorf("database: profile indexes: %w", err)
	}

	// expireAfterSeconds 0 deletes each challenge at its own expiresAt.
	otpIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	}
	if _, err := db.Collection(OTPCollection).Indexes().CreateMany(ctx, otpIndexes); err != nil {
		return fmt.Errorf("database: otp indexes: %w", err)
	}

	postIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userid", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := db.Collection(PostCollection).Indexes().CreateMany(ctx, postIndexes); err != nil {
		return fmt.Errorf("database: post indexes: %w", err)
	}

	return nil
}
