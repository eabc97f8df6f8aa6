package services

import (
	"context"
	"errors"
	"strings"

	"github.com/telugujayaprakash/myprofileDashboard/apperr"
	"github.com/telugujayaprakash/myprofileDashboard/models"
	"github.com/telugujayaprakash/myprofileDashboard/stores"
)

const (
	// FeedLimit caps the feed; there is no cursor continuation.
	FeedLimit = 50
	// ProfilePostsLimit caps the posts embedded in a profile view.
	ProfilePostsLimit = 20
)

type PostService struct {
	users    stores.UserStore
	profiles stores.ProfileStore
	posts    stores.PostStore
}

func NewPostService(users stores.UserStore, profiles stores.ProfileStore, posts stores.PostStore) *PostService {
	return &PostService{users: users, profiles: profiles, posts: posts}
}

func (s *PostService) Create(ctx context.Context, userID, text string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.InvalidInput("Post content cannot be empty")
	}
	if len(text) > models.MaxPostTextLen {
		return nil, apperr.InvalidInput("Post content is too long")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}

	post := models.NewPost(user.UserID, user.Username, text)
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, apperr.Internal(err)
	}
	return post, nil
}

// Feed returns active posts by the users the caller follows, newest first,
// capped at FeedLimit. The caller's own posts are never included: the feed
// is what others post, by design.
func (s *PostService) Feed(ctx context.Context, userID string) ([]models.Post, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("User profile not found")
		}
		return nil, apperr.Internal(err)
	}

	posts, err := s.posts.FindActiveByAuthors(ctx, profile.Following, FeedLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return posts, nil
}

// UserPosts lists an author's active posts, newest first, with no limit and
// no follow-relationship requirement. Public.
func (s *PostService) UserPosts(ctx context.Context, username string) (*models.User, []models.Post, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, nil, apperr.NotFound("User not found")
		}
		return nil, nil, apperr.Internal(err)
	}

	posts, err := s.posts.FindActiveByAuthors(ctx, []string{user.UserID}, 0)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	return user, posts, nil
}

func (s *PostService) Details(ctx context.Context, postID string) (*models.Post, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, apperr.Internal(err)
	}
	return post, nil
}

// Delete soft-deletes: the post keeps its likes, shares and comments but
// disappears from every read path. Owner only.
func (s *PostService) Delete(ctx context.Context, postID, userID string) error {
	id, err := parsePostID(postID)
	if err != nil {
		return err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return apperr.NotFound("Post not found")
		}
		return apperr.Internal(err)
	}

	if post.UserID != userID {
		return apperr.Forbidden("You can only delete your own posts")
	}

	if err := s.posts.SoftDelete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
