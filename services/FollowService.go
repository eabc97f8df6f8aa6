package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/telugujayaprakash/myprofileDashboard/apperr"
	"github.com/telugujayaprakash/myprofileDashboard/stores"
)

// FollowService owns the mutual-consistency protocol between a user's
// following list and the other user's followers list. Nothing else in the
// codebase edits those arrays.
type FollowService struct {
	users    stores.UserStore
	profiles stores.ProfileStore
	log      *zap.Logger
}

func NewFollowService(users stores.UserStore, profiles stores.ProfileStore, log *zap.Logger) *FollowService {
	return &FollowService{users: users, profiles: profiles, log: log}
}

type FollowCounts struct {
	FollowingCount int `json:"followingCount"`
	FollowersCount int `json:"followersCount"`
}

func (s *FollowService) Follow(ctx context.Context, actorID, targetUsername string) (*FollowCounts, error) {
	target, err := s.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}

	if target.UserID == actorID {
		return nil, apperr.InvalidOperation("You cannot follow yourself")
	}

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("Authenticated user not found")
		}
		return nil, apperr.Internal(err)
	}

	// Accounts can predate their profile documents; synthesize empty ones
	// rather than failing.
	if err := s.profiles.EnsureExists(ctx, actor.UserID, actor.Username); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.profiles.EnsureExists(ctx, target.UserID, target.Username); err != nil {
		return nil, apperr.Internal(err)
	}

	actorProfile, err := s.profiles.FindByUserID(ctx, actorID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if actorProfile.IsFollowing(target.UserID) {
		return nil, apperr.Conflict("You are already following this user")
	}

	followingCount, followersCount, err := s.profiles.AddFollowEdge(ctx, actorID, target.UserID)
	if err != nil {
		// The actor side may already be written. $addToSet keeps a repaired
		// retry idempotent, so log the pair loudly and surface the failure
		// instead of silently desyncing.
		s.log.Warn("follow edge partially applied",
			zap.String("actor", actorID),
			zap.String("target", target.UserID),
			zap.Error(err))
		return nil, apperr.Internal(err)
	}

	return &FollowCounts{FollowingCount: followingCount, FollowersCount: followersCount}, nil
}

func (s *FollowService) Unfollow(ctx context.Context, actorID, targetUsername string) (*FollowCounts, error) {
	target, err := s.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}

	actorProfile, err := s.profiles.FindByUserID(ctx, actorID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("Your profile not found")
		}
		return nil, apperr.Internal(err)
	}

	if !actorProfile.IsFollowing(target.UserID) {
		return nil, apperr.InvalidOperation("You are not following this user")
	}

	followingCount, followersCount, err := s.profiles.RemoveFollowEdge(ctx, actorID, target.UserID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("Target user profile not found")
		}
		s.log.Warn("unfollow edge partially applied",
			zap.String("actor", actorID),
			zap.String("target", target.UserID),
			zap.Error(err))
		return nil, apperr.Internal(err)
	}

	return &FollowCounts{FollowingCount: followingCount, FollowersCount: followersCount}, nil
}

// IsFollowing reports whether the actor currently follows the named user.
// A missing actor profile simply means "not following".
func (s *FollowService) IsFollowing(ctx context.Context, actorID, targetUsername string) (bool, error) {
	target, err := s.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return false, apperr.NotFound("User not found")
		}
		return false, apperr.Internal(err)
	}

	actorProfile, err := s.profiles.FindByUserID(ctx, actorID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return false, nil
		}
		return false, apperr.Internal(err)
	}

	return actorProfile.IsFollowing(target.UserID), nil
}
