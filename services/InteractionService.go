package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/telugujayaprakash/myprofileDashboard/apperr"
	"github.com/telugujayaprakash/myprofileDashboard/models"
	"github.com/telugujayaprakash/myprofileDashboard/stores"
)

// InteractionService handles likes, shares and comments. Like is a flip,
// share is an idempotent add; both run as single atomic post updates with
// the count recomputed from the user set.
type InteractionService struct {
	users stores.UserStore
	posts stores.PostStore
}

func NewInteractionService(users stores.UserStore, posts stores.PostStore) *InteractionService {
	return &InteractionService{users: users, posts: posts}
}

type LikeResult struct {
	Liked bool
	Likes models.Reaction
}

func (s *InteractionService) ToggleLike(ctx context.Context, postID, userID string) (*LikeResult, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.ToggleLike(ctx, id, userID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, apperr.Internal(err)
	}

	return &LikeResult{Liked: post.Likes.Has(userID), Likes: post.Likes}, nil
}

func (s *InteractionService) ToggleShare(ctx context.Context, postID, userID string) (*models.Reaction, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.AddShare(ctx, id, userID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, apperr.Internal(err)
	}

	return &post.Shares, nil
}

type CommentResult struct {
	Comment       models.Comment
	CommentsCount int
}

func (s *InteractionService) AddComment(ctx context.Context, postID, userID, text string) (*CommentResult, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.InvalidInput("Comment cannot be empty")
	}
	if len(text) > models.MaxCommentTextLen {
		return nil, apperr.InvalidInput("Comment is too long")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}

	comment := models.Comment{
		UserID:    user.UserID,
		Username:  user.Username,
		Comment:   text,
		CreatedAt: time.Now().UTC(),
	}

	post, err := s.posts.AppendComment(ctx, id, comment)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, apperr.Internal(err)
	}

	return &CommentResult{Comment: comment, CommentsCount: len(post.Comments)}, nil
}

func parsePostID(postID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidInput("Invalid post ID")
	}
	return id, nil
}
