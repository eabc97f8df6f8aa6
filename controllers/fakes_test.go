package controllers_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/telugujayaprakash/myprofileDashboard/models"
	"github.com/telugujayaprakash/myprofileDashboard/stores"
)

// In-memory stores for the handler tests, mirroring the Mongo semantics the
// services rely on. The service tests carry their own copies; each package
// stays self-contained.

type memStores struct {
	mu         sync.Mutex
	users      map[string]*models.User
	profiles   map[string]*models.Profile
	posts      map[primitive.ObjectID]*models.Post
	challenges map[string]*models.OTPChallenge
}

func newMemStores() *memStores {
	return &memStores{
		users:      map[string]*models.User{},
		profiles:   map[string]*models.Profile{},
		posts:      map[primitive.ObjectID]*models.Post{},
		challenges: map[string]*models.OTPChallenge{},
	}
}

type memUserStore struct{ m *memStores }
type memProfileStore struct{ m *memStores }
type memPostStore struct{ m *memStores }
type memOTPStore struct{ m *memStores }

func (s memUserStore) Insert(_ context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return stores.ErrDuplicate
		}
	}
	cp := *user
	s.m.users[user.UserID] = &cp
	return nil
}

func (s memUserStore) findBy(match func(*models.User) bool) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, stores.ErrNotFound
}

func (s memUserStore) FindByID(_ context.Context, userID string) (*models.User, error) {
	return s.findBy(func(u *models.User) bool { return u.UserID == userID })
}

func (s memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findBy(func(u *models.User) bool { return u.Email == email })
}

func (s memUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return s.findBy(func(u *models.User) bool { return u.Username == username })
}

func (s memUserStore) FindByEmailOrUsername(_ context.Context, email, username string) (*models.User, error) {
	return s.findBy(func(u *models.User) bool { return u.Email == email || u.Username == username })
}

func (s memUserStore) UpdateAccount(_ context.Context, userID string, upd stores.AccountUpdate) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[userID]
	if !ok {
		return nil, stores.ErrNotFound
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PhoneNumber != nil {
		u.PhoneNumber = *upd.PhoneNumber
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (s memUserStore) Search(_ context.Context, query string, limit int) ([]models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	results := []models.User{}
	for _, u := range s.m.users {
		if u.IsActive && strings.Contains(strings.ToLower(u.Username), strings.ToLower(query)) {
			results = append(results, *u)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Username < results[j].Username })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s memProfileStore) FindByUserID(_ context.Context, userID string) (*models.Profile, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.profiles[userID]
	if !ok {
		return nil, stores.ErrNotFound
	}
	cp := *p
	cp.Following = append([]string{}, p.Following...)
	cp.Followers = append([]string{}, p.Followers...)
	return &cp, nil
}

func (s memProfileStore) EnsureExists(_ context.Context, userID, username string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.profiles[userID]; !ok {
		s.m.profiles[userID] = models.NewProfile(userID, username)
	}
	return nil
}

func (s memProfileStore) UpdateData(_ context.Context, userID string, upd stores.ProfileDataUpdate) (*models.Profile, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.profiles[userID]
	if !ok {
		return nil, stores.ErrNotFound
	}
	if upd.Username != nil {
		p.Username = *upd.Username
	}
	if upd.DisplayPicture != nil {
		p.DisplayPicture = *upd.DisplayPicture
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Profession != nil {
		p.Profession = *upd.Profession
	}
	if upd.DateOfBirth != nil {
		p.DateOfBirth = upd.DateOfBirth
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.RelationshipStatus != nil {
		p.RelationshipStatus = *upd.RelationshipStatus
	}
	if upd.SocialMediaLinks != nil {
		p.SocialMediaLinks = upd.SocialMediaLinks
	}
	if upd.IsProfileComplete != nil {
		p.IsProfileComplete = *upd.IsProfileComplete
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (s memProfileStore) AddFollowEdge(_ context.Context, actorID, targetID string) (int, int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	actor, ok := s.m.profiles[actorID]
	if !ok {
		return 0, 0, stores.ErrNotFound
	}
	actor.Following = addToSet(actor.Following, targetID)
	target, ok := s.m.profiles[targetID]
	if !ok {
		return len(actor.Following), 0, stores.ErrNotFound
	}
	target.Followers = addToSet(target.Followers, actorID)
	return len(actor.Following), len(target.Followers), nil
}

func (s memProfileStore) RemoveFollowEdge(_ context.Context, actorID, targetID string) (int, int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	actor, ok := s.m.profiles[actorID]
	if !ok {
		return 0, 0, stores.ErrNotFound
	}
	actor.Following = removeFromSet(actor.Following, targetID)
	target, ok := s.m.profiles[targetID]
	if !ok {
		return len(actor.Following), 0, stores.ErrNotFound
	}
	target.Followers = removeFromSet(target.Followers, actorID)
	return len(actor.Following), len(target.Followers), nil
}

func (s memPostStore) Insert(_ context.Context, post *models.Post) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.posts[post.ID] = clonePost(post)
	return nil
}

func (s memPostStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[id]
	if !ok {
		return nil, stores.ErrNotFound
	}
	return clonePost(p), nil
}

func (s memPostStore) FindActiveByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[id]
	if !ok || !p.IsActive {
		return nil, stores.ErrNotFound
	}
	return clonePost(p), nil
}

func (s memPostStore) FindActiveByAuthors(_ context.Context, authorIDs []string, limit int) ([]models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	authors := map[string]bool{}
	for _, id := range authorIDs {
		authors[id] = true
	}
	results := []models.Post{}
	for _, p := range s.m.posts {
		if p.IsActive && authors[p.UserID] {
			results = append(results, *clonePost(p))
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s memPostStore) ToggleLike(_ context.Context, id primitive.ObjectID, userID string) (*models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[id]
	if !ok || !p.IsActive {
		return nil, stores.ErrNotFound
	}
	if p.Likes.Has(userID) {
		p.Likes.Users = removeFromSet(p.Likes.Users, userID)
	} else {
		p.Likes.Users = addToSet(p.Likes.Users, userID)
	}
	p.Likes.Count = len(p.Likes.Users)
	return clonePost(p), nil
}

func (s memPostStore) AddShare(_ context.Context, id primitive.ObjectID, userID string) (*models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[id]
	if !ok || !p.IsActive {
		return nil, stores.ErrNotFound
	}
	p.Shares.Users = addToSet(p.Shares.Users, userID)
	p.Shares.Count = len(p.Shares.Users)
	return clonePost(p), nil
}

func (s memPostStore) AppendComment(_ context.Context, id primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[id]
	if !ok || !p.IsActive {
		return nil, stores.ErrNotFound
	}
	p.Comments = append(p.Comments, comment)
	return clonePost(p), nil
}

func (s memPostStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[id]
	if !ok {
		return stores.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (s memPostStore) Search(_ context.Context, query string, limit int) ([]models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	results := []models.Post{}
	for _, p := range s.m.posts {
		if p.IsActive && strings.Contains(strings.ToLower(p.TextMsg), strings.ToLower(query)) {
			results = append(results, *clonePost(p))
		}
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s memOTPStore) Insert(_ context.Context, challenge *models.OTPChallenge) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.challenges[challenge.Email]; ok {
		return stores.ErrDuplicate
	}
	cp := *challenge
	s.m.challenges[challenge.Email] = &cp
	return nil
}

func (s memOTPStore) FindByEmail(_ context.Context, email string) (*models.OTPChallenge, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.challenges[email]
	if !ok {
		return nil, stores.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s memOTPStore) DeleteByEmail(_ context.Context, email string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.challenges, email)
	return nil
}

type captureMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{codes: map[string]string{}}
}

func (m *captureMailer) SendOTP(email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = code
	return nil
}

func (m *captureMailer) codeFor(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}

func addToSet(set []string, value string) []string {
	for _, v := range set {
		if v == value {
			return set
		}
	}
	return append(set, value)
}

func removeFromSet(set []string, value string) []string {
	out := set[:0]
	for _, v := range set {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

func clonePost(p *models.Post) *models.Post {
	cp := *p
	cp.Comments = append([]models.Comment{}, p.Comments...)
	cp.Likes.Users = append([]string{}, p.Likes.Users...)
	cp.Shares.Users = append([]string{}, p.Shares.Users...)
	return &cp
}
