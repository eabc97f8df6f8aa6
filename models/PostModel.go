package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MaxPostTextLen    = 1000
	MaxCommentTextLen = 500
)

// Comment is embedded in its post. Comments are append-only; there is no
// edit or delete path for an individual comment.
type Comment struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Reaction is a set of userids plus a cached count. Count is always the
// cardinality of Users, recomputed whenever the set changes; it is never
// incremented on its own.
type Reaction struct {
	Count int      `json:"count" bson:"count"`
	Users []string `json:"users" bson:"users"`
}

func (r Reaction) Has(userID string) bool {
	for _, id := range r.Users {
		if id == userID {
			return true
		}
	}
	return false
}

// Post is a text post with embedded reactions and comments. IsActive is the
// soft-delete flag: inactive posts are invisible to every read path.
type Post struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	UserID    string             `json:"userid" bson:"userid"`
	Username  string             `json:"username" bson:"username"`
	TextMsg   string             `json:"textmsg" bson:"textmsg"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	Likes     Reaction           `json:"likes" bson:"likes"`
	Shares    Reaction           `json:"shares" bson:"shares"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewPost builds an active post with empty reaction sets and comment list.
func NewPost(userID, username, text string) *Post {
	now := time.Now().UTC()
	return &Post{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Username:  username,
		TextMsg:   text,
		Comments:  []Comment{},
		Likes:     Reaction{Count: 0, Users: []string{}},
		Shares:    Reaction{Count: 0, Users: []string{}},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RecentComments returns the newest n comments, oldest of those first,
// matching the comment preview the post listings send.
func (p *Post) RecentComments(n int) []Comment {
	if len(p.Comments) <= n {
		return p.Comments
	}
	return p.Comments[len(p.Comments)-n:]
}
