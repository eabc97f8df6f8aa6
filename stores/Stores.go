// Package stores holds the MongoDB persistence layer. The interfaces here
// are what the services depend on; the in-memory fakes used by tests
// implement the same contracts.
package stores

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/telugujayaprakash/myprofileDashboard/models"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate document")
)

// AccountUpdate carries the mutable account fields. Nil means "leave as is";
// a pointer to the empty string clears the field (phone only).
type AccountUpdate struct {
	Username    *string
	Email       *string
	PhoneNumber *string
}

// ProfileDataUpdate carries the profile attribute fields. Adjacency lists
// are deliberately absent: only the follow-edge operations touch those.
type ProfileDataUpdate struct {
	// Username syncs the denormalized copy after an account rename.
	Username           *string
	DisplayPicture     *string
	Name               *string
	Profession         *string
	DateOfBirth        *time.Time
	Status             *string
	RelationshipStatus *string
	SocialMediaLinks   []models.SocialLink
	IsProfileComplete  *bool
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	UpdateAccount(ctx context.Context, userID string, upd AccountUpdate) (*models.User, error)
	Search(ctx context.Context, query string, limit int) ([]models.User, error)
}

type ProfileStore interface {
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// EnsureExists lazily creates an empty profile for accounts that predate
	// profile creation. Existing documents are left untouched.
	EnsureExists(ctx context.Context, userID, username string) error
	UpdateData(ctx context.Context, userID string, upd ProfileDataUpdate) (*models.Profile, error)
	// AddFollowEdge atomically adds targetID to the actor's following set and
	// actorID to the target's followers set ($addToSet both sides). Returns
	// the resulting following count of the actor and followers count of the
	// target.
	AddFollowEdge(ctx context.Context, actorID, targetID string) (followingCount, followersCount int, err error)
	RemoveFollowEdge(ctx context.Context, actorID, targetID string) (followingCount, followersCount int, err error)
}

type PostStore interface {
	Insert(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// FindActiveByAuthors returns active posts by the given authors, newest
	// first. limit <= 0 means no limit.
	FindActiveByAuthors(ctx context.Context, authorIDs []string, limit int) ([]models.Post, error)
	// ToggleLike flips the caller's membership in likes.users and recomputes
	// likes.count from the set, all in one atomic update on the active post.
	ToggleLike(ctx context.Context, id primitive.ObjectID, userID string) (*models.Post, error)
	// AddShare adds the caller to shares.users if absent ($setUnion); a
	// repeat call leaves the document unchanged.
	AddShare(ctx context.Context, id primitive.ObjectID, userID string) (*models.Post, error)
	AppendComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.Post, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	Search(ctx context.Context, query string, limit int) ([]models.Post, error)
}

type OTPStore interface {
	// Insert fails with ErrDuplicate while a challenge for the same email is
	// outstanding.
	Insert(ctx context.Context, challenge *models.OTPChallenge) error
	FindByEmail(ctx context.Context, email string) (*models.OTPChallenge, error)
	DeleteByEmail(ctx context.Context, email string) error
}
