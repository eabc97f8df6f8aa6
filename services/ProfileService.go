package services

import (
	"context"
	"errors"
	"time"

	"github.com/telugujayaprakash/myprofileDashboard/apperr"
	"github.com/telugujayaprakash/myprofileDashboard/models"
	"github.com/telugujayaprakash/myprofileDashboard/stores"
)

const maxStatusLen = 200

type ProfileService struct {
	users    stores.UserStore
	profiles stores.ProfileStore
	posts    stores.PostStore
}

func NewProfileService(users stores.UserStore, profiles stores.ProfileStore, posts stores.PostStore) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, posts: posts}
}

// ProfileView bundles what a profile page needs. Profile may be nil when the
// account predates profile creation. The controller decides which fields
// each viewer tier may see.
type ProfileView struct {
	User        *models.User
	Profile     *models.Profile
	Posts       []models.Post
	IsOwn       bool
	IsFollowing bool
}

// View resolves a profile page for a viewer. viewerID is empty for
// anonymous visitors.
func (s *ProfileService) View(ctx context.Context, username, viewerID string) (*ProfileView, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}

	profile, err := s.profiles.FindByUserID(ctx, user.UserID)
	if err != nil && !errors.Is(err, stores.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	posts, err := s.posts.FindActiveByAuthors(ctx, []string{user.UserID}, ProfilePostsLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	view := &ProfileView{
		User:    user,
		Profile: profile,
		Posts:   posts,
		IsOwn:   viewerID != "" && viewerID == user.UserID,
	}

	if viewerID != "" && !view.IsOwn {
		viewerProfile, err := s.profiles.FindByUserID(ctx, viewerID)
		if err != nil && !errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.Internal(err)
		}
		if viewerProfile != nil {
			view.IsFollowing = viewerProfile.IsFollowing(user.UserID)
		}
	}

	return view, nil
}

// UpdateAccount changes the mutable account fields, holding username and
// email unique across accounts.
func (s *ProfileService) UpdateAccount(ctx context.Context, userID string, upd stores.AccountUpdate) (*models.User, error) {
	current, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("Authenticated user not found")
		}
		return nil, apperr.Internal(err)
	}

	if upd.Username != nil && *upd.Username != current.Username {
		if _, err := s.users.FindByUsername(ctx, *upd.Username); err == nil {
			return nil, apperr.Conflict("Username already taken")
		} else if !errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.Internal(err)
		}
	}
	if upd.Email != nil && *upd.Email != current.Email {
		if _, err := s.users.FindByEmail(ctx, *upd.Email); err == nil {
			return nil, apperr.Conflict("Email already taken")
		} else if !errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.Internal(err)
		}
	}

	user, err := s.users.UpdateAccount(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			// Lost a race with another update between the check and the write.
			return nil, apperr.Conflict("Username or email already taken")
		}
		return nil, apperr.Internal(err)
	}

	// Keep the denormalized username on the profile in step.
	if upd.Username != nil && *upd.Username != current.Username {
		if err := s.profiles.EnsureExists(ctx, user.UserID, user.Username); err != nil {
			return nil, apperr.Internal(err)
		}
		if _, err := s.profiles.UpdateData(ctx, user.UserID, stores.ProfileDataUpdate{Username: upd.Username}); err != nil {
			return nil, apperr.Internal(err)
		}
	}

	return user, nil
}

// ProfileDataInput is the raw attribute update from the client. Nil fields
// are untouched; invalid social links are dropped rather than rejected.
type ProfileDataInput struct {
	DisplayPicture     *string
	Name               *string
	Profession         *string
	DateOfBirth        *time.Time
	Status             *string
	RelationshipStatus *string
	SocialMediaLinks   []models.SocialLink
}

func (s *ProfileService) UpdateProfileData(ctx context.Context, userID string, in ProfileDataInput) (*models.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}

	if in.Status != nil && len(*in.Status) > maxStatusLen {
		return nil, apperr.InvalidInput("Status must be at most 200 characters")
	}
	if in.RelationshipStatus != nil && !models.ValidRelationshipStatus(*in.RelationshipStatus) {
		return nil, apperr.InvalidInput("Invalid relationship status")
	}

	upd := stores.ProfileDataUpdate{
		DisplayPicture:     in.DisplayPicture,
		Name:               in.Name,
		Profession:         in.Profession,
		DateOfBirth:        in.DateOfBirth,
		Status:             in.Status,
		RelationshipStatus: in.RelationshipStatus,
	}

	if in.SocialMediaLinks != nil {
		valid := []models.SocialLink{}
		for _, link := range in.SocialMediaLinks {
			if link.Platform != "" && link.URL != "" && models.ValidSocialPlatform(link.Platform) {
				valid = append(valid, link)
			}
		}
		upd.SocialMediaLinks = valid
	}

	if err := s.profiles.EnsureExists(ctx, user.UserID, user.Username); err != nil {
		return nil, apperr.Internal(err)
	}

	profile, err := s.profiles.UpdateData(ctx, userID, upd)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// Name plus profession is the completeness bar.
	if !profile.IsProfileComplete && profile.Name != "" && profile.Profession != "" {
		complete := true
		profile, err = s.profiles.UpdateData(ctx, userID, stores.ProfileDataUpdate{IsProfileComplete: &complete})
		if err != nil {
			return nil, apperr.Internal(err)
		}
	}

	return profile, nil
}
