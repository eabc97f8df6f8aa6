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
	SearchLimit       = 20
	minSearchQueryLen = 2
)

type SearchService struct {
	users    stores.UserStore
	profiles stores.ProfileStore
	posts    stores.PostStore
}

func NewSearchService(users stores.UserStore, profiles stores.ProfileStore, posts stores.PostStore) *SearchService {
	return &SearchService{users: users, profiles: profiles, posts: posts}
}

// UserResult is the denormalized card a user search returns.
type UserResult struct {
	UserID         string `json:"userid"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Profession     string `json:"profession"`
	DisplayPicture string `json:"displayPicture,omitempty"`
}

func normalizeQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSearchQueryLen {
		return "", apperr.InvalidInput("Search query must be at least 2 characters")
	}
	return query, nil
}

func (s *SearchService) Users(ctx context.Context, query string) ([]UserResult, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}

	users, err := s.users.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	results := make([]UserResult, 0, len(users))
	for _, user := range users {
		result := UserResult{
			UserID:     user.UserID,
			Username:   user.Username,
			Name:       user.Username,
			Profession: "Not specified",
		}
		profile, err := s.profiles.FindByUserID(ctx, user.UserID)
		if err != nil && !errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.Internal(err)
		}
		if profile != nil {
			if profile.Name != "" {
				result.Name = profile.Name
			}
			if profile.Profession != "" {
				result.Profession = profile.Profession
			}
			result.DisplayPicture = profile.DisplayPicture
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *SearchService) Posts(ctx context.Context, query string) ([]models.Post, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return posts, nil
}
